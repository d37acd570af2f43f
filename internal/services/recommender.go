package services

import (
	"fmt"
	"sort"

	"traffic-route-service/internal/domain"
)

// Rank orders scored candidates into a fully deterministic total order:
// descending score, ties broken by ascending length then ascending candidate
// index. Ranks are assigned 1..N on new copies; the input is not modified.
func Rank(scored []domain.ScoredCandidate) ([]domain.ScoredCandidate, error) {
	if len(scored) == 0 {
		return nil, fmt.Errorf("rank candidates: %w", domain.ErrEmptyCandidateSet)
	}

	ranked := make([]domain.ScoredCandidate, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].LengthDegrees != ranked[j].LengthDegrees {
			return ranked[i].LengthDegrees < ranked[j].LengthDegrees
		}
		return ranked[i].Index < ranked[j].Index
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// Recommend selects the rank-1 candidate and builds the justification
// string. The justification format is a presentation contract, not free
// text: length is rounded to 2 decimals (kilometers) and score to 4.
func Recommend(scored []domain.ScoredCandidate) (*domain.Recommendation, error) {
	ranked, err := Rank(scored)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	chosen := ranked[0]
	return &domain.Recommendation{
		Chosen:       chosen,
		Alternatives: ranked,
		Justification: fmt.Sprintf("Route %d recommended: length %.2f km, score %.4f",
			chosen.Index, chosen.LengthKm, chosen.Score),
	}, nil
}

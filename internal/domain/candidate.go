package domain

// One complete simple path between a resolved start and end node.
//
// A PathCandidate is derived data: once computed by the alternative finder it
// is never mutated. Index is the candidate's position in the finder's
// length-ordered output and doubles as its public candidate ID.
type PathCandidate struct {
	Index         int
	Nodes         []int
	LengthDegrees float64
	LengthKm      float64
	Segments      int
}

// A PathCandidate annotated with its suitability score and final rank.
// Rank 1 is best. The scorer returns new ScoredCandidate values; it never
// writes back into the candidate set it reads from.
type ScoredCandidate struct {
	PathCandidate
	Score float64
	Rank  int
}

// The chosen candidate plus all ranked alternatives and a justification
// string. Constructed fresh per request, never stored.
type Recommendation struct {
	Chosen        ScoredCandidate
	Alternatives  []ScoredCandidate
	Justification string
}

package config

import (
	"fmt"
	"os"
	"time"

	"traffic-route-service/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Environment variable that overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Config paths searched in order; the first file found wins.
var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

// Config holds all application settings. Loading order: built-in defaults,
// then an optional YAML file, then environment variables. Immutable after
// Load and safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Network  NetworkConfig  `koanf:"network"`
	Routing  RoutingConfig  `koanf:"routing"`
	Scoring  ScoringConfig  `koanf:"scoring"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Port         int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"gt=0"`
}

// PostgreSQL traffic store. An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// Redis cache in front of the traffic reader. An empty address disables it.
type RedisConfig struct {
	Addr string        `koanf:"addr"`
	TTL  time.Duration `koanf:"ttl" validate:"gt=0"`
}

type NetworkConfig struct {
	SnapToleranceDegrees float64 `koanf:"snap_tolerance_degrees" validate:"gt=0"`
	DedupeEpsilonDegrees float64 `koanf:"dedupe_epsilon_degrees" validate:"gt=0"`
	MaxNodes             int     `koanf:"max_nodes" validate:"gt=0"`
	MaxEdges             int     `koanf:"max_edges" validate:"gt=0"`
}

type RoutingConfig struct {
	DefaultAlternatives int     `koanf:"default_alternatives" validate:"min=1"`
	MaxAlternatives     int     `koanf:"max_alternatives" validate:"min=1"`
	EdgePenaltyFactor   float64 `koanf:"edge_penalty_factor" validate:"gt=1"`
}

type ScoringConfig struct {
	LengthWeight      float64 `koanf:"length_weight" validate:"gte=0,lte=1"`
	TrafficWeight     float64 `koanf:"traffic_weight" validate:"gte=0,lte=1"`
	ConditionWeight   float64 `koanf:"condition_weight" validate:"gte=0,lte=1"`
	FreeFlowSpeedKmh  float64 `koanf:"free_flow_speed_kmh" validate:"gt=0"`
	ReferenceCapacity float64 `koanf:"reference_capacity" validate:"gt=0"`
}

// Weights converts the configured weights into the scorer's type. The
// sum-to-1 invariant is enforced separately in Load.
func (c ScoringConfig) Weights() services.Weights {
	return services.Weights{
		Length:    c.LengthWeight,
		Traffic:   c.TrafficWeight,
		Condition: c.ConditionWeight,
	}
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{URL: ""},
		Redis: RedisConfig{
			Addr: "",
			TTL:  30 * time.Second,
		},
		Network: NetworkConfig{
			SnapToleranceDegrees: 0.01,
			DedupeEpsilonDegrees: 1e-6,
			MaxNodes:             50000,
			MaxEdges:             200000,
		},
		Routing: RoutingConfig{
			DefaultAlternatives: 3,
			MaxAlternatives:     10,
			EdgePenaltyFactor:   2.0,
		},
		Scoring: ScoringConfig{
			LengthWeight:      0.5,
			TrafficWeight:     0.3,
			ConditionWeight:   0.2,
			FreeFlowSpeedKmh:  80,
			ReferenceCapacity: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// envKeys maps recognized environment variables onto config keys.
// Unlisted variables are ignored rather than guessed at.
var envKeys = map[string]string{
	"PORT":                   "server.port",
	"DATABASE_URL":           "database.url",
	"REDIS_ADDR":             "redis.addr",
	"REDIS_TTL":              "redis.ttl",
	"SNAP_TOLERANCE_DEGREES": "network.snap_tolerance_degrees",
	"NETWORK_MAX_NODES":      "network.max_nodes",
	"NETWORK_MAX_EDGES":      "network.max_edges",
	"DEFAULT_ALTERNATIVES":   "routing.default_alternatives",
	"MAX_ALTERNATIVES":       "routing.max_alternatives",
	"EDGE_PENALTY_FACTOR":    "routing.edge_penalty_factor",
	"LENGTH_WEIGHT":          "scoring.length_weight",
	"TRAFFIC_WEIGHT":         "scoring.traffic_weight",
	"CONDITION_WEIGHT":       "scoring.condition_weight",
	"FREE_FLOW_SPEED_KMH":    "scoring.free_flow_speed_kmh",
	"REFERENCE_CAPACITY":     "scoring.reference_capacity",
	"LOG_LEVEL":              "logging.level",
	"LOG_FORMAT":             "logging.format",
}

// Load builds the effective configuration: defaults, optional YAML file,
// then environment overrides, followed by struct validation and the scoring
// weight invariant.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load config: defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config: file %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(key string) string {
		return envKeys[key]
	}), nil); err != nil {
		return nil, fmt.Errorf("load config: environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("load config: validate: %w", err)
	}

	if err := cfg.Scoring.Weights().Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.Routing.DefaultAlternatives > cfg.Routing.MaxAlternatives {
		return nil, fmt.Errorf("load config: default_alternatives %d exceeds max_alternatives %d",
			cfg.Routing.DefaultAlternatives, cfg.Routing.MaxAlternatives)
	}

	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

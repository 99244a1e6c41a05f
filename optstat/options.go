package optstat

import (
	"log/slog"
	"math"
	"math/rand/v2"
)

// Config holds construction parameters for the optimal statistic.
type Config struct {
	// ORF selects the overlap reduction function: "hd", "dipole" or
	// "monopole".
	ORF string

	// Gamma is the fixed spectral index of the common-process power law.
	Gamma float64

	// VaryGamma makes the engine read the spectral index from the parameter
	// assignment of each evaluation (falling back to Gamma when absent).
	VaryGamma bool

	// GammaParam is the parameter name consulted when VaryGamma is set.
	GammaParam string

	// Logger receives non-fatal warnings (missing parameters, chain shape
	// mismatches). Defaults to slog.Default().
	Logger *slog.Logger

	// Rand is the source for posterior row draws and any other internal
	// randomness. Defaults to an unseeded PCG source.
	Rand *rand.Rand
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the standard configuration: Hellings-Downs
// correlations and a fixed spectral index of 13/3, the value expected for a
// background of circular supermassive black-hole binaries.
func DefaultConfig() Config {
	return Config{
		ORF:        "hd",
		Gamma:      13.0 / 3.0,
		GammaParam: "gw_gamma",
	}
}

// WithORF selects the overlap reduction function by name.
func WithORF(name string) Option {
	return func(cfg *Config) {
		cfg.ORF = name
	}
}

// WithGamma fixes the common-process spectral index. Any finite value is
// accepted, including 0 (a flat spectrum); NaN and Inf are ignored.
func WithGamma(gamma float64) Option {
	return func(cfg *Config) {
		if !math.IsNaN(gamma) && !math.IsInf(gamma, 0) {
			cfg.Gamma = gamma
		}
	}
}

// WithVaryingGamma lets each evaluation take the spectral index from its
// parameter assignment instead of the fixed configuration value.
func WithVaryingGamma() Option {
	return func(cfg *Config) {
		cfg.VaryGamma = true
	}
}

// WithLogger sets the warning logger.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithRand sets the random source used for posterior draws.
func WithRand(r *rand.Rand) Option {
	return func(cfg *Config) {
		if r != nil {
			cfg.Rand = r
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

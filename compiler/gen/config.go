package gen

import (
	"log/slog"
	"runtime"
	"slices"
	"time"
)

// DefaultTimestamp is the stamp of the first migration in a bundle. It sorts
// after the 0001_01_01 stamps of Laravel's skeleton migrations and never
// shares a file name with them.
var DefaultTimestamp = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Config holds the bundle generation settings.
type Config struct {
	// Target is the output directory of WriteDir.
	Target string

	// Force lets WriteDir replace files that already exist under Target.
	Force bool

	// Namespace of the generated model classes.
	Namespace string

	// Workers bounds the number of files generated or written in parallel.
	Workers int

	// Timestamp is the stamp of the first migration. Each following
	// migration advances it by one second.
	Timestamp time.Time

	// Logger receives per-file and summary records.
	Logger *slog.Logger

	// Features holds the enabled feature-flags.
	Features []Feature
}

// DefaultConfig returns a Config with every default feature enabled.
func DefaultConfig() *Config {
	return &Config{
		Namespace: DefaultNamespace,
		Workers:   runtime.GOMAXPROCS(0),
		Timestamp: DefaultTimestamp,
		Logger:    slog.New(slog.DiscardHandler),
		Features:  DefaultFeatures(),
	}
}

// FeatureEnabled reports if the given feature name is enabled.
// It's exported to be used by the CLI and by tests.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	if _, ok := LookupFeature(name); !ok {
		return false, NewConfigError("Features", name, "unexpected feature name")
	}
	return c.HasFeature(name), nil
}

// HasFeature reports if the feature name is enabled, without validating it.
func (c *Config) HasFeature(name string) bool {
	return slices.ContainsFunc(c.Features, func(f Feature) bool {
		return f.Name == name
	})
}

// logger returns the configured logger, or a discarding one.
func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

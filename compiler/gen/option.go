package gen

import (
	"errors"
	"log/slog"
	"slices"
	"time"
)

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
// The directory where the bundle will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithForce allows WriteDir to overwrite existing files.
func WithForce() Option {
	return func(c *Config) error {
		c.Force = true
		return nil
	}
}

// WithNamespace sets the namespace of the generated model classes.
func WithNamespace(ns string) Option {
	return func(c *Config) error {
		if ns == "" {
			return NewConfigError("Namespace", nil, "namespace cannot be empty")
		}
		c.Namespace = ns
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithTimestamp sets the stamp of the first migration in the bundle.
func WithTimestamp(t time.Time) Option {
	return func(c *Config) error {
		if t.IsZero() {
			return NewConfigError("Timestamp", nil, "timestamp cannot be zero")
		}
		c.Timestamp = t
		return nil
	}
}

// WithLogger sets the logger used by the bundle writer.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithFeatures enables specific features.
// Features already enabled are kept once.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if !c.HasFeature(f.Name) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithoutFeatures disables features by name.
func WithoutFeatures(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if _, ok := LookupFeature(name); !ok {
				return NewConfigError("Features", name, "unexpected feature name")
			}
			c.Features = slices.DeleteFunc(c.Features, func(f Feature) bool {
				return f.Name == name
			})
		}
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config from DefaultConfig and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

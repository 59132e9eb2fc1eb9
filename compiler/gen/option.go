package gen

import (
	"errors"
	"path"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

// DefaultHeader is the header of every generated file.
const DefaultHeader = "Code generated by variantgen, DO NOT EDIT."

// Config holds the configuration of a synthesis run.
type Config struct {
	// Target is the directory the generated files are written to.
	Target string
	// Package is the import path of the target package. The descriptors
	// generated into Target belong to this package.
	Package string
	// Header is written at the top of each generated file.
	Header string
	// Workers is the number of types generated in parallel.
	Workers int
	// Logger receives structured logs of the run.
	Logger *zap.Logger
	// Reporter receives the violations of all types.
	Reporter Reporter
	// Emitter renders the descriptions to Go files.
	Emitter Emitter
	// Force regenerates every type, ignoring the incremental cache.
	Force bool
	// NoCache disables reading and writing the incremental cache file.
	NoCache bool
}

// PackageName returns the name of the target package.
func (c *Config) PackageName() string {
	if c.Package != "" {
		return path.Base(c.Package)
	}
	return filepath.Base(c.Target)
}

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the output package import path.
// For example: "github.com/org/project/domain".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithWorkers sets the number of types generated in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger of the run.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithReporter sets the reporter receiving violations.
func WithReporter(r Reporter) Option {
	return func(c *Config) error {
		if r == nil {
			return NewConfigError("Reporter", nil, "reporter cannot be nil")
		}
		c.Reporter = r
		return nil
	}
}

// WithEmitter sets the emitter rendering the generated members.
func WithEmitter(e Emitter) Option {
	return func(c *Config) error {
		if e == nil {
			return NewConfigError("Emitter", nil, "emitter cannot be nil")
		}
		c.Emitter = e
		return nil
	}
}

// WithForce regenerates every type, even if it did not change.
func WithForce(force bool) Option {
	return func(c *Config) error {
		c.Force = force
		return nil
	}
}

// WithoutCache disables the incremental cache file.
func WithoutCache() Option {
	return func(c *Config) error {
		c.NoCache = true
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

// NewConfig creates a new Config with the given options and fills the
// defaults of the options left unset.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if c.Header == "" {
		c.Header = DefaultHeader
	}
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Reporter == nil {
		c.Reporter = NopReporter
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

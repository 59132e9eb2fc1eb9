// Package cmd implements the variantgen command line.
package cmd

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConfigName is the base name of the configuration file looked up in the
// working directory.
const ConfigName = "variantgen"

// Options are the settings of a run. They are read, by increasing
// precedence, from variantgen.yaml, VARIANTGEN_* environment variables and
// command line flags.
type Options struct {
	// Descriptors are the descriptor files or directories used when no
	// argument is given.
	Descriptors []string      `mapstructure:"descriptors"`
	Target      string        `mapstructure:"target"`
	Package     string        `mapstructure:"package"`
	Header      string        `mapstructure:"header"`
	Workers     int           `mapstructure:"workers"`
	Force       bool          `mapstructure:"force"`
	NoCache     bool          `mapstructure:"no-cache"`
	Verbose     bool          `mapstructure:"verbose"`
	Debounce    time.Duration `mapstructure:"debounce"`
}

// app holds the state shared by the subcommands of one invocation.
type app struct {
	v    *viper.Viper
	opts Options
	log  *zap.Logger
}

// NewRootCmd returns the variantgen command with all its subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:   "variantgen",
		Short: "Generate Go code for closed variant types",
		Long: `variantgen turns declarative descriptions of variant types into Go code.

Each type is described in a *.variant.yaml file, either as a wrapper around a
single key value or as a closed union of cases. variantgen generates the
factories, accessors, equality, hashing, operators, exhaustive dispatch and
text conversion of each type, honoring the feature flags of the descriptor.

Examples:
  variantgen generate ./domain          # Generate next to the descriptors
  variantgen generate -o gen ./domain   # Write to another directory
  variantgen watch ./domain             # Regenerate on every change
  variantgen resolve ./domain           # Print the resolved configurations
  variantgen features                   # List the feature flags`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	f := root.PersistentFlags()
	f.String("config", "", "Config file (default: ./variantgen.yaml)")
	f.StringP("target", "o", "", "Output directory (default: the directory of the descriptors)")
	f.StringP("package", "p", "", "Import path of the generated package")
	f.String("header", "", "Header comment of the generated files")
	f.IntP("workers", "j", 0, "Types generated in parallel (default: GOMAXPROCS)")
	f.Bool("force", false, "Regenerate every type, ignoring the cache")
	f.Bool("no-cache", false, "Do not read or write the incremental cache")
	f.BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newGenerateCmd(a),
		newWatchCmd(a),
		newResolveCmd(a),
		newFeaturesCmd(),
	)
	return root
}

// init reads the configuration and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	v := a.v
	v.SetEnvPrefix("VARIANTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	v.SetDefault("debounce", 500*time.Millisecond)
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind flags")
	}
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "read config")
		}
	}
	if err := v.Unmarshal(&a.opts); err != nil {
		return errors.Wrap(err, "decode config")
	}
	log, err := newLogger(a.opts.Verbose)
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	a.log = log
	if used := v.ConfigFileUsed(); used != "" {
		a.log.Debug("config loaded", zap.String("file", used))
	}
	return nil
}

// newLogger returns a console logger: warnings and errors by default, debug
// output when verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// paths returns the descriptor paths of the run: the arguments, or the
// configured descriptors, or the working directory.
func (a *app) paths(args []string) []string {
	switch {
	case len(args) > 0:
		return args
	case len(a.opts.Descriptors) > 0:
		return a.opts.Descriptors
	default:
		return []string{"."}
	}
}

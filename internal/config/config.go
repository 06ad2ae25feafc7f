// Package config loads generator settings from rowmapper.yaml, ROWMAPPER_*
// environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"rowmapper-generator/internal/analyze"
	"rowmapper-generator/internal/gen"
	"rowmapper-generator/internal/logger"
	"rowmapper-generator/internal/plan"
)

// FileName is the config file looked up in the working directory.
const FileName = "rowmapper"

// EnvPrefix prefixes every environment override, e.g. ROWMAPPER_OUTPUT_DIR.
const EnvPrefix = "ROWMAPPER"

// Config represents the generator configuration
type Config struct {
	// Packages are the package patterns scanned for mappable types.
	Packages []string `mapstructure:"packages"`
	// Dir is the directory patterns are resolved from.
	Dir string `mapstructure:"dir"`
	// Tag is the struct tag key binding fields to columns.
	Tag      string       `mapstructure:"tag"`
	Output   OutputConfig `mapstructure:"output"`
	Manifest string       `mapstructure:"manifest"`
	// Lock is a reviewed manifest the resolved bindings must match.
	Lock     string       `mapstructure:"lock"`
	DryRun   bool         `mapstructure:"dry_run"`
	Comments bool         `mapstructure:"comments"`
	Log      LogConfig    `mapstructure:"log"`
}

// OutputConfig selects where mappers are generated.
type OutputConfig struct {
	// Package is the import path of a separate mapper package; empty keeps
	// every mapper next to its type.
	Package string `mapstructure:"package"`
	// Name is the package name of Package, defaulting to its last element.
	Name string `mapstructure:"name"`
	// Dir is the directory of Package.
	Dir string `mapstructure:"dir"`
	// Suffix is appended to the type name to name its mapper.
	Suffix string `mapstructure:"suffix"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// NewViper returns a viper instance with defaults and environment support.
// An empty file searches rowmapper.yaml in the working directory.
func NewViper(file string) *viper.Viper {
	v := viper.New()

	v.SetDefault("packages", []string{"./..."})
	v.SetDefault("dir", "")
	v.SetDefault("tag", analyze.DefaultTagKey)
	v.SetDefault("output.package", "")
	v.SetDefault("output.name", "")
	v.SetDefault("output.dir", "")
	v.SetDefault("output.suffix", plan.DefaultConfig().MapperSuffix)
	v.SetDefault("manifest", "")
	v.SetDefault("lock", "")
	v.SetDefault("dry_run", false)
	v.SetDefault("comments", true)
	v.SetDefault("log.level", string(logger.InfoLevel))
	v.SetDefault("log.json", false)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file, if any, and unmarshals the merged settings.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Output.Package != "" && config.Output.Name == "" {
		config.Output.Name = path.Base(config.Output.Package)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

var logLevels = []string{
	string(logger.DebugLevel),
	string(logger.InfoLevel),
	string(logger.WarnLevel),
	string(logger.ErrorLevel),
	string(logger.DisabledLevel),
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if len(c.Packages) == 0 {
		errs = append(errs, errors.New("packages: at least one package pattern is required"))
	}

	if c.Tag == "" || strings.ContainsAny(c.Tag, " \t:\"`") {
		errs = append(errs, fmt.Errorf("tag: %q is not a valid struct tag key", c.Tag))
	}

	if c.Output.Package != "" && c.Output.Dir == "" {
		errs = append(errs, fmt.Errorf("output.dir is required with output.package %s", c.Output.Package))
	}

	if c.Output.Package == "" && c.Output.Dir != "" {
		errs = append(errs, errors.New("output.dir requires output.package"))
	}

	if c.Output.Suffix == "" {
		errs = append(errs, errors.New("output.suffix must not be empty"))
	}

	if c.Lock != "" && c.Lock == c.Manifest {
		errs = append(errs, fmt.Errorf("manifest and lock must be different files, both are %s", c.Lock))
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level: %q is not one of %s", c.Log.Level, strings.Join(logLevels, ", ")))
	}

	return errors.Join(errs...)
}

// AnalyzeConfig returns the scanner settings.
func (c *Config) AnalyzeConfig() analyze.Config {
	return analyze.Config{
		TagKey: c.Tag,
		Dir:    c.Dir,
	}
}

// ResolutionConfig returns the resolver settings.
func (c *Config) ResolutionConfig() plan.ResolutionConfig {
	return plan.ResolutionConfig{
		OutputPkgPath: c.Output.Package,
		OutputPkgName: c.Output.Name,
		OutputDir:     c.Output.Dir,
		MapperSuffix:  c.Output.Suffix,
	}
}

// GeneratorConfig returns the code generation settings.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	cfg := gen.DefaultGeneratorConfig()
	cfg.GenerateComments = c.Comments

	return cfg
}

// LoggerConfig returns the logger settings.
func (c *Config) LoggerConfig() *logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = logger.LogLevel(c.Log.Level)
	cfg.JSON = c.Log.JSON

	return cfg
}

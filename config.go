// Package snappeg holds the configuration shared by the snappeg command and
// its embedders. The engine itself lives in the peg, cursor and charclass
// packages.
package snappeg

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/shibukawa/snappeg/cursor"
)

// Calculator modes
const (
	ModeInt     = "int"
	ModeDecimal = "decimal"
)

// Config represents the snappeg configuration
type Config struct {
	Input InputConfig `yaml:"input"`
	Calc  CalcConfig  `yaml:"calc"`
	Cache CacheConfig `yaml:"cache"`
	Trace TraceConfig `yaml:"trace"`
}

// InputConfig controls how source bytes are decoded
type InputConfig struct {
	TabWidth int  `yaml:"tab_width"`
	Strict   bool `yaml:"strict"`
}

// CalcConfig selects the calculator used by the eval command
type CalcConfig struct {
	Mode              string `yaml:"mode"`
	DivisionPrecision int32  `yaml:"division_precision"`
}

// CacheConfig sizes the grammar node cache
type CacheConfig struct {
	Size int `yaml:"size"`
}

// TraceConfig controls rule tracing
type TraceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	// Output is a file path; empty means stderr.
	Output string `yaml:"output"`
}

// LoadConfig loads configuration from the specified file. A missing file
// yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := DefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var config Config

	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			TabWidth: cursor.DefaultTabWidth,
		},
		Calc: CalcConfig{
			Mode:              ModeInt,
			DivisionPrecision: 16,
		},
		Cache: CacheConfig{
			Size: 256,
		},
		Trace: TraceConfig{
			Level: "debug",
		},
	}
}

func validateConfig(config *Config) error {
	if config.Input.TabWidth < 0 {
		return fmt.Errorf("%w: input.tab_width must be non-negative, got %d", ErrConfigValidation, config.Input.TabWidth)
	}

	switch config.Calc.Mode {
	case "", ModeInt, ModeDecimal:
	default:
		return fmt.Errorf("%w: %w '%s': must be one of int, decimal", ErrConfigValidation, ErrUnknownCalcMode, config.Calc.Mode)
	}

	if config.Calc.DivisionPrecision < 0 {
		return fmt.Errorf("%w: calc.division_precision must be non-negative, got %d", ErrConfigValidation, config.Calc.DivisionPrecision)
	}

	if config.Cache.Size < 0 {
		return fmt.Errorf("%w: cache.size must be non-negative, got %d", ErrConfigValidation, config.Cache.Size)
	}

	if config.Trace.Level != "" {
		if _, err := logrus.ParseLevel(config.Trace.Level); err != nil {
			return fmt.Errorf("%w: trace.level: %w", ErrConfigValidation, err)
		}
	}

	return nil
}

func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Input.TabWidth == 0 {
		config.Input.TabWidth = defaults.Input.TabWidth
	}

	if config.Calc.Mode == "" {
		config.Calc.Mode = defaults.Calc.Mode
	}

	if config.Calc.DivisionPrecision == 0 {
		config.Calc.DivisionPrecision = defaults.Calc.DivisionPrecision
	}

	if config.Cache.Size == 0 {
		config.Cache.Size = defaults.Cache.Size
	}

	if config.Trace.Level == "" {
		config.Trace.Level = defaults.Trace.Level
	}
}

// CursorOptions converts the input section to iterator options
func (c *Config) CursorOptions() []cursor.Option {
	return []cursor.Option{
		cursor.WithTabWidth(c.Input.TabWidth),
		cursor.WithStrict(c.Input.Strict),
	}
}

// TraceLevel returns the configured log level for rule tracing
func (c *Config) TraceLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Trace.Level)
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}

func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareEnvVar   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return bareEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(config *Config) {
	config.Calc.Mode = expandEnvVars(config.Calc.Mode)
	config.Trace.Level = expandEnvVars(config.Trace.Level)
	config.Trace.Output = expandEnvVars(config.Trace.Output)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

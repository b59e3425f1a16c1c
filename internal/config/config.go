// Package config loads CLI settings from defaults, an optional YAML file,
// a .env file, PDFEXTRACT_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pyhub-apps/pdfextract-golang/pkg/extractors"
	"github.com/pyhub-apps/pdfextract-golang/pkg/logging"
	"github.com/pyhub-apps/pdfextract-golang/pkg/pdf"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "PDFEXTRACT"

// Config holds the settings shared by the command line tools
type Config struct {
	Backend           string  `mapstructure:"backend"`
	XTolerance        float64 `mapstructure:"x_tolerance"`
	YTolerance        float64 `mapstructure:"y_tolerance"`
	BlockGap          float64 `mapstructure:"block_gap"`
	LogLevel          string  `mapstructure:"log_level"`
	LogJSON           bool    `mapstructure:"log_json"`
	RelaxedValidation bool    `mapstructure:"relaxed_validation"`
	Indent            int     `mapstructure:"indent"`
}

// flagKeys maps flag names to configuration keys
var flagKeys = map[string]string{
	"backend":     "backend",
	"x-tolerance": "x_tolerance",
	"y-tolerance": "y_tolerance",
	"block-gap":   "block_gap",
	"log-level":   "log_level",
	"log-json":    "log_json",
	"relaxed":     "relaxed_validation",
	"indent":      "indent",
}

// RegisterFlags defines the shared flags on flags
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "path to a YAML config file")
	flags.String("backend", "", "PDF backend: ledongthuc, dslipak or mupdf (default: try each)")
	flags.Float64("x-tolerance", extractors.DefaultXTolerance, "horizontal gap that separates words")
	flags.Float64("y-tolerance", extractors.DefaultYTolerance, "vertical distance that separates lines")
	flags.Float64("block-gap", extractors.DefaultBlockGap, "line gap, in line heights, that starts a new block")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Bool("log-json", false, "write logs as JSON")
	flags.Bool("relaxed", true, "use relaxed pdfcpu validation")
	flags.Int("indent", 2, "JSON indentation width")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", "")
	v.SetDefault("x_tolerance", extractors.DefaultXTolerance)
	v.SetDefault("y_tolerance", extractors.DefaultYTolerance)
	v.SetDefault("block_gap", extractors.DefaultBlockGap)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
	v.SetDefault("relaxed_validation", true)
	v.SetDefault("indent", 2)
}

// Load builds the configuration. An empty configPath searches the working
// directory for pdfextract.yaml and uses defaults when there is none; an
// explicit path must exist. flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("pdfextract")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Allow environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDotEnv loads the given .env files, or ./.env when none are named.
// Missing files are skipped and variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	return nil
}

// Validate checks value ranges and names
func (c *Config) Validate() error {
	if c.Backend != "" && !pdf.IsBackend(c.Backend) {
		return fmt.Errorf("invalid config: %w: %q", pdf.ErrUnknownBackend, c.Backend)
	}
	if c.XTolerance < 0 || c.YTolerance < 0 {
		return fmt.Errorf("invalid config: tolerances must not be negative (x=%g, y=%g)", c.XTolerance, c.YTolerance)
	}
	if c.BlockGap < 0 {
		return fmt.Errorf("invalid config: block_gap must not be negative (%g)", c.BlockGap)
	}
	if c.Indent < 0 {
		return fmt.Errorf("invalid config: indent must not be negative (%d)", c.Indent)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Organizer returns a TextOrganizer using the configured tolerances
func (c *Config) Organizer() *extractors.TextOrganizer {
	return extractors.NewTextOrganizer(
		extractors.WithXTolerance(c.XTolerance),
		extractors.WithYTolerance(c.YTolerance),
		extractors.WithBlockGap(c.BlockGap),
	)
}

// Logging returns the logger configuration
func (c *Config) Logging() logging.Config {
	level, _ := logging.ParseLevel(c.LogLevel)
	return logging.Config{Level: level, JSON: c.LogJSON}
}

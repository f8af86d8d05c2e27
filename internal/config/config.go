// Package config holds the command line and environment configuration for
// the docket parser.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Document type selection
	TypeAuto    = "auto"
	TypeDocket  = "docket"
	TypeSummary = "summary"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultXTolerance  = 0.3
	DefaultYTolerance  = 1.0
)

// Config holds all configuration for the docket parser CLI
type Config struct {
	// DocumentType forces a grammar, or "auto" to detect from the text
	DocumentType string

	// Extraction configuration
	MaxFileSize int64 // Maximum PDF file size in bytes
	XTolerance  float64
	YTolerance  float64

	// Output configuration
	Pretty bool // Indent the JSON output

	// Application configuration
	Version  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DocumentType: TypeAuto,
		MaxFileSize:  DefaultMaxFileSize,
		XTolerance:   DefaultXTolerance,
		YTolerance:   DefaultYTolerance,
		Pretty:       false,
		Version:      "1.0.0",
		LogLevel:     DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("DOCKET_PARSER")
	viper.AutomaticEnv()

	viper.SetDefault("type", cfg.DocumentType)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("xtolerance", cfg.XTolerance)
	viper.SetDefault("ytolerance", cfg.YTolerance)
	viper.SetDefault("pretty", cfg.Pretty)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("type", cfg.DocumentType, "Document type: 'auto', 'docket' or 'summary'")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Float64("xtolerance", cfg.XTolerance, "Horizontal spacing tolerance, in font-size units")
	pflag.Float64("ytolerance", cfg.YTolerance, "Vertical same-line tolerance, in text-space units")
	pflag.Bool("pretty", cfg.Pretty, "Indent the JSON output")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("type", pflag.Lookup("type"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("xtolerance", pflag.Lookup("xtolerance"))
	_ = viper.BindPFlag("ytolerance", pflag.Lookup("ytolerance"))
	_ = viper.BindPFlag("pretty", pflag.Lookup("pretty"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s: %s [options] <file>\n", os.Args[0], os.Args[0])
		fmt.Fprintf(os.Stderr, "\nDocket Parser - structured records from PA court dockets and summaries\n\n")
		fmt.Fprintf(os.Stderr, "The file may be a court PDF or previously extracted annotated text (.txt).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s docket.pdf                     # detect the document type\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --type=summary summary.pdf     # force the summary grammar\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --pretty docket.pdf            # indented JSON\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  DOCKET_PARSER_TYPE         Document type\n")
		fmt.Fprintf(os.Stderr, "  DOCKET_PARSER_MAXFILESIZE  Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  DOCKET_PARSER_XTOLERANCE   Horizontal spacing tolerance\n")
		fmt.Fprintf(os.Stderr, "  DOCKET_PARSER_YTOLERANCE   Vertical same-line tolerance\n")
		fmt.Fprintf(os.Stderr, "  DOCKET_PARSER_PRETTY       Indent the JSON output\n")
		fmt.Fprintf(os.Stderr, "  DOCKET_PARSER_LOGLEVEL     Log level\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.DocumentType = viper.GetString("type")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.XTolerance = viper.GetFloat64("xtolerance")
	cfg.YTolerance = viper.GetFloat64("ytolerance")
	cfg.Pretty = viper.GetBool("pretty")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.DocumentType {
	case TypeAuto, TypeDocket, TypeSummary:
	default:
		return fmt.Errorf("invalid document type: %s (must be one of: auto, docket, summary)", c.DocumentType)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.XTolerance <= 0 || c.YTolerance <= 0 {
		return errors.New("tolerances must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{DocumentType: %s, MaxFileSize: %d, XTolerance: %g, YTolerance: %g, Pretty: %t, LogLevel: %s}",
		c.DocumentType, c.MaxFileSize, c.XTolerance, c.YTolerance, c.Pretty, c.LogLevel)
}

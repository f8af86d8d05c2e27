package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Helper function to reset pflag.CommandLine for testing
func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	viper.Reset()
}

// Helper function to clear environment variables
func clearEnvVars() {
	os.Unsetenv("DOCKET_PARSER_TYPE")
	os.Unsetenv("DOCKET_PARSER_MAXFILESIZE")
	os.Unsetenv("DOCKET_PARSER_XTOLERANCE")
	os.Unsetenv("DOCKET_PARSER_YTOLERANCE")
	os.Unsetenv("DOCKET_PARSER_PRETTY")
	os.Unsetenv("DOCKET_PARSER_LOGLEVEL")
}

func TestLoadFromFlags_DefaultConfig(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()
	resetFlags()
	clearEnvVars()
	os.Args = []string{"docket-parser", "input.pdf"}

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() error: %v", err)
	}

	if cfg.DocumentType != TypeAuto {
		t.Errorf("Expected document type 'auto', got '%s'", cfg.DocumentType)
	}
	if cfg.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("Expected max file size %d, got %d", int64(DefaultMaxFileSize), cfg.MaxFileSize)
	}
	if cfg.Pretty {
		t.Error("Expected pretty output to be off by default")
	}
}

func TestLoadFromFlags_CommandLineFlags(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()
	resetFlags()
	clearEnvVars()
	os.Args = []string{
		"docket-parser",
		"--type=summary",
		"--pretty",
		"--xtolerance=0.5",
		"--loglevel=debug",
		"input.pdf",
	}

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() error: %v", err)
	}

	if cfg.DocumentType != TypeSummary {
		t.Errorf("Expected document type 'summary', got '%s'", cfg.DocumentType)
	}
	if !cfg.Pretty {
		t.Error("Expected pretty output to be on")
	}
	if cfg.XTolerance != 0.5 {
		t.Errorf("Expected x tolerance 0.5, got %g", cfg.XTolerance)
	}
	if !cfg.IsDebug() {
		t.Error("Expected debug logging to be on")
	}
	if args := pflag.Args(); len(args) != 1 || args[0] != "input.pdf" {
		t.Errorf("Expected one positional argument 'input.pdf', got %v", args)
	}
}

func TestLoadFromFlags_EnvironmentVariables(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()
	resetFlags()
	clearEnvVars()
	os.Setenv("DOCKET_PARSER_TYPE", "docket")
	os.Setenv("DOCKET_PARSER_LOGLEVEL", "warn")
	os.Args = []string{"docket-parser", "input.pdf"}

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() error: %v", err)
	}

	if cfg.DocumentType != TypeDocket {
		t.Errorf("Expected document type 'docket', got '%s'", cfg.DocumentType)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected log level 'warn', got '%s'", cfg.LogLevel)
	}
}

func TestLoadFromFlags_InvalidConfiguration(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()
	resetFlags()
	clearEnvVars()
	os.Args = []string{"docket-parser", "--type=transcript", "input.pdf"}

	if _, err := LoadFromFlags(); err == nil {
		t.Error("Expected an error for an invalid document type")
	}
}

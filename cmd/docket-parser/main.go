package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"

	"github.com/joshuagerstein/PAcourt-document-parser/internal/config"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/extraction"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/parsing"
	"github.com/joshuagerstein/PAcourt-document-parser/internal/visitor"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging keeps diagnostics on stderr so stdout stays valid JSON
func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	args := pflag.Args()
	if len(args) != 1 {
		pflag.Usage()
		os.Exit(2)
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	record, docType, err := run(cfg, args[0])
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", args[0], err)
	}
	if cfg.IsDebug() {
		log.Printf("Parsed %s as %s", args[0], docType)
	}

	var out []byte
	if cfg.Pretty {
		out, err = json.MarshalIndent(record, "", "  ")
	} else {
		out, err = json.Marshal(record)
	}
	if err != nil {
		log.Fatalf("Failed to encode record: %v", err)
	}
	fmt.Println(string(out))
}

// run loads the document text and parses it according to the configured
// document type. A .txt file is taken as already extracted annotated text;
// anything else goes through PDF extraction.
func run(cfg *config.Config, path string) (visitor.Record, parsing.DocumentType, error) {
	var text string
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", path, err)
		}
		text = string(data)
	} else {
		extractor := extraction.NewExtractor()
		extractor.XTolerance = cfg.XTolerance
		extractor.YTolerance = cfg.YTolerance
		extractor.MaxFileSize = cfg.MaxFileSize
		extracted, err := extractor.Extract(path)
		if err != nil {
			return nil, "", fmt.Errorf("extracting %s: %w", path, err)
		}
		text = extracted
	}

	switch cfg.DocumentType {
	case config.TypeDocket:
		record, err := parsing.Parse(text, parsing.Docket)
		return record, parsing.Docket, err
	case config.TypeSummary:
		record, err := parsing.Parse(text, parsing.CourtSummary)
		return record, parsing.CourtSummary, err
	default:
		return parsing.ParseDocument(text)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Docket Parser\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}

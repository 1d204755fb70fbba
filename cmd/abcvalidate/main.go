// Command abcvalidate repairs and checks an ABC Supply order payload file
// and prints {payload, report, hasErrors}.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/erp/supplierorders/internal/infrastructure/logger"
	"github.com/erp/supplierorders/internal/infrastructure/supplier/abcvalidate"
)

// Exit codes
const (
	exitOK       = 0
	exitFindings = 1
	exitUsage    = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, time.Now))
}

func run(args []string, stdout, stderr io.Writer, now func() time.Time) int {
	fs := flag.NewFlagSet("abcvalidate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		format   string
		rules    string
		logLevel string
		strict   bool
	)
	fs.StringVar(&format, "format", "json", "Output format (json, yaml)")
	fs.StringVar(&rules, "rules", "", "Path to ABC validation rules (default: embedded)")
	fs.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.BoolVar(&strict, "strict", false, "Exit 1 when any order still has errors")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: abcvalidate [flags] <payload.json>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	if format != "json" && format != "yaml" {
		fmt.Fprintf(stderr, "unknown format %q\n", format)
		return exitUsage
	}

	log, err := logger.New(&logger.Config{
		Service:    "abcvalidate",
		Level:      logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return exitUsage
	}
	defer func() {
		_ = log.Sync()
	}()

	var cfg *abcvalidate.Config
	if rules != "" {
		cfg, err = abcvalidate.LoadFile(rules)
		if err != nil {
			log.Error("Failed to load validation rules", zap.String("path", rules), zap.Error(err))
			return exitUsage
		}
	}
	validator, err := abcvalidate.New(cfg)
	if err != nil {
		log.Error("Invalid validation rules", zap.Error(err))
		return exitUsage
	}

	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("Unable to read payload", zap.String("path", path), zap.Error(err))
		return exitUsage
	}

	result, err := validator.ValidateJSON(data, abcvalidate.Options{Now: now()})
	if err != nil {
		log.Error("Unable to decode payload", zap.String("path", path), zap.Error(err))
		return exitUsage
	}

	log.Info("Payload validated",
		zap.String("path", path),
		zap.Int("orders", len(result.Report)),
		zap.Int("fixes", result.FixCount()),
		zap.Int("warnings", result.WarningCount()),
		zap.Int("errors", result.ErrorCount()),
	)

	if err := write(stdout, format, result); err != nil {
		log.Error("Failed to write result", zap.Error(err))
		return exitUsage
	}

	if strict && result.HasErrors {
		return exitFindings
	}
	return exitOK
}

func write(w io.Writer, format string, result abcvalidate.Result) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlResult(result)); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}

// yamlResult swaps json.Number leaves for untagged scalars so numbers are
// emitted unquoted with their original digits.
func yamlResult(result abcvalidate.Result) map[string]any {
	payload := make([]any, len(result.Payload))
	for i, o := range result.Payload {
		payload[i] = yamlValue(o)
	}
	return map[string]any{
		"payload":   payload,
		"report":    result.Report,
		"hasErrors": result.HasErrors,
	}
}

func yamlValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		tag := "!!int"
		if _, err := t.Int64(); err != nil {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = yamlValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = yamlValue(val)
		}
		return out
	default:
		return v
	}
}

package main

// Rewrite a file or stdin with the configured providers:
//   go run ./cmd/humanize -in essay.docx -readability "High School" -strength 0.5

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"humanizer-backend/internal/bootstrap"
	"humanizer-backend/internal/extract"
	"humanizer-backend/internal/humanize"
	"humanizer-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	inPath := flag.String("in", "", "Path to a .txt, .md, .docx or .pdf file (default: stdin)")
	readability := flag.String("readability", string(humanize.DefaultReadability), "Target reading level")
	purpose := flag.String("purpose", string(humanize.DefaultPurpose), "Writing purpose")
	strength := flag.Float64("strength", humanize.DefaultStrength, "Rewrite strength between 0.1 and 0.9")
	outPath := flag.String("out", "", "Path to write the rewritten text (optional)")
	asJSON := flag.Bool("json", false, "Print the strategy and text as JSON")
	localOnly := flag.Bool("local", false, "Skip remote providers and use the rule-based rewrite")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	text, err := readInput(ctx, *inPath)
	if err != nil {
		exitErr(err.Error())
	}

	if *localOnly {
		cfg.Humanize = config.HumanizeConfig{FillerRate: cfg.Humanize.FillerRate}
	}
	humanizer, strategies, err := bootstrap.BuildHumanizer(cfg)
	if err != nil {
		exitErr(fmt.Sprintf("build humanizer: %v", err))
	}
	_, _ = fmt.Fprintf(os.Stderr, "strategies: %s\n", strings.Join(strategies, " -> "))

	out, err := humanizer.Humanize(ctx, humanize.Request{
		Text: text,
		Options: humanize.Options{
			Readability: humanize.ParseReadability(*readability),
			Purpose:     humanize.ParsePurpose(*purpose),
			Strength:    humanize.ParseStrength(json.RawMessage(strconv.FormatFloat(*strength, 'f', -1, 64))),
		},
	})
	if err != nil {
		exitErr(fmt.Sprintf("humanize: %v", err))
	}

	result := []byte(out.HumanizedText)
	if *asJSON {
		result, err = json.MarshalIndent(map[string]string{
			"strategy":      out.Strategy,
			"humanizedText": out.HumanizedText,
		}, "", "  ")
		if err != nil {
			exitErr(fmt.Sprintf("format json: %v", err))
		}
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, result, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}
	if _, err := os.Stdout.Write(result); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(result) == 0 || result[len(result)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func readInput(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(bytes.TrimSpace(raw)), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	name := filepath.Base(path)
	text, err := extract.ExtractTextFromBytes(ctx, raw, extract.FileType(http.DetectContentType(raw), name, raw), name)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	return text, nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	extractor "github.com/reddy-gopal/question-extractor"
	"github.com/reddy-gopal/question-extractor/internal/config"
	"github.com/reddy-gopal/question-extractor/internal/fileutil"
	"github.com/reddy-gopal/question-extractor/internal/sheets"
)

// Sentinel errors for CLI operations.
var (
	ErrReadInput    = errors.New("failed to read input")
	ErrEncodeOutput = errors.New("failed to encode output")
	ErrWriteOutput  = errors.New("failed to write output")
)

// newLogger builds the run logger honoring --quiet and --verbose.
func newLogger(f *cliFlags) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	switch {
	case f.quiet:
		logger.SetLevel(log.ErrorLevel)
	case f.verbose:
		logger.SetLevel(log.DebugLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// run orchestrates one extraction: read HTML, extract questions, write
// JSON, optionally upload to Google Sheets.
func run(ctx context.Context, flags *cliFlags, fs *flag.FlagSet) error {
	logger := newLogger(flags)

	cfg := config.DefaultConfig()
	if flags.config != "" {
		loaded, err := config.LoadConfig(flags.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(fs, flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Debug("reading input", "path", cfg.Input.Path)
	data, err := fileutil.ReadInput(cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	var opts []extractor.Option
	if cfg.Extract.Workers > 0 {
		opts = append(opts, extractor.WithWorkers(cfg.Extract.Workers))
	}
	if cfg.Extract.MinQuestionLength > 0 {
		opts = append(opts, extractor.WithMinQuestionLength(cfg.Extract.MinQuestionLength))
	}
	if len(cfg.Extract.Units) > 0 {
		opts = append(opts, extractor.WithUnits(cfg.Extract.Units...))
	}

	ex := extractor.NewExtractor(opts...)
	res, err := ex.Extract(ctx, extractor.Input{HTML: string(data)})
	if err != nil {
		return err
	}

	logger.Info("extraction complete", "questions", len(res.Questions), "skipped", res.Skipped)
	if res.Skipped > 0 {
		logger.Warn("question blocks skipped", "count", res.Skipped)
	}

	out, err := json.MarshalIndent(res.Questions, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeOutput, err)
	}
	out = append(out, '\n')

	if err := fileutil.WriteOutput(cfg.Output.Path, out); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	logger.Debug("wrote output", "path", cfg.Output.Path)

	if cfg.Sheets.Enabled {
		return uploadQuestions(ctx, logger, cfg, res.Questions)
	}
	return nil
}

// uploadQuestions replaces the configured worksheet with the extracted
// records.
func uploadQuestions(ctx context.Context, logger *log.Logger, cfg *config.Config, questions []extractor.Question) error {
	logger.Debug("connecting to sheets", "spreadsheet", cfg.Sheets.SpreadsheetID)
	client, err := sheets.New(ctx, cfg.Sheets.CredentialsFile)
	if err != nil {
		return err
	}

	rows := sheets.Flatten(questions)
	if err := client.Upload(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.Worksheet, rows); err != nil {
		return err
	}

	logger.Info("upload complete", "rows", len(rows)-1, "worksheet", cfg.Sheets.Worksheet)
	return nil
}

package main

import (
	"os"

	flag "github.com/spf13/pflag"

	"github.com/reddy-gopal/question-extractor/internal/config"
)

// cliFlags holds all flags for the extract run.
type cliFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool

	input             string
	output            string
	workers           int
	minQuestionLength int
	units             []string

	upload        bool
	spreadsheetID string
	worksheet     string
	credentials   string

	positional []string
}

// parseFlags parses command-line flags. The returned FlagSet is needed for
// Changed checks when merging flags over a config file.
func parseFlags(args []string) (*cliFlags, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("qextract", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.StringVarP(&f.input, "input", "i", "", "HTML file to read (\"-\" = stdin)")
	fs.StringVarP(&f.output, "output", "o", "", "JSON file to write (\"-\" = stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.IntVar(&f.minQuestionLength, "min-question-length", 0, "question length below which the fallback container is used")
	fs.StringArrayVarP(&f.units, "unit", "u", nil, "extra unit abbreviation exempt from subscripting (repeatable)")

	fs.BoolVar(&f.upload, "upload", false, "upload results to Google Sheets")
	fs.StringVar(&f.spreadsheetID, "spreadsheet", "", "target spreadsheet ID")
	fs.StringVar(&f.worksheet, "worksheet", "", "target worksheet name (created if missing)")
	fs.StringVar(&f.credentials, "credentials", "", "service account credentials JSON file")

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.positional = fs.Args()

	return f, fs, nil
}

// mergeFlags applies explicitly set CLI flags over the loaded config
// (CLI wins). A positional argument names the input file when --input is
// not given.
func mergeFlags(fs *flag.FlagSet, f *cliFlags, cfg *config.Config) {
	switch {
	case fs.Changed("input"):
		cfg.Input.Path = f.input
	case len(f.positional) > 0:
		cfg.Input.Path = f.positional[0]
	}

	if fs.Changed("output") {
		cfg.Output.Path = f.output
	}
	if fs.Changed("workers") {
		cfg.Extract.Workers = f.workers
	}
	if fs.Changed("min-question-length") {
		cfg.Extract.MinQuestionLength = f.minQuestionLength
	}
	if fs.Changed("unit") {
		cfg.Extract.Units = append(cfg.Extract.Units, f.units...)
	}

	if fs.Changed("upload") {
		cfg.Sheets.Enabled = f.upload
	}
	if fs.Changed("spreadsheet") {
		cfg.Sheets.SpreadsheetID = f.spreadsheetID
	}
	if fs.Changed("worksheet") {
		cfg.Sheets.Worksheet = f.worksheet
	}
	if fs.Changed("credentials") {
		cfg.Sheets.CredentialsFile = f.credentials
	}
}

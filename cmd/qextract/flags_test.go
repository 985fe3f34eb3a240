package main

import (
	"testing"

	"github.com/reddy-gopal/question-extractor/internal/config"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	f, _, err := parseFlags([]string{
		"-i", "in.html", "-o", "out.json", "-w", "3",
		"--min-question-length", "40",
		"-u", "T2", "-u", "mX",
		"--upload", "--spreadsheet", "abc", "--worksheet", "Run1",
		"--credentials", "creds.json",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if f.input != "in.html" || f.output != "out.json" {
		t.Errorf("io flags = %q, %q", f.input, f.output)
	}
	if f.workers != 3 {
		t.Errorf("workers = %d, want 3", f.workers)
	}
	if f.minQuestionLength != 40 {
		t.Errorf("minQuestionLength = %d, want 40", f.minQuestionLength)
	}
	if len(f.units) != 2 || f.units[0] != "T2" || f.units[1] != "mX" {
		t.Errorf("units = %v, want [T2 mX]", f.units)
	}
	if !f.upload || f.spreadsheetID != "abc" || f.worksheet != "Run1" || f.credentials != "creds.json" {
		t.Errorf("sheets flags = %v %q %q %q", f.upload, f.spreadsheetID, f.worksheet, f.credentials)
	}
}

func TestParseFlagsUnknown(t *testing.T) {
	t.Parallel()

	if _, _, err := parseFlags([]string{"--bogus"}); err == nil {
		t.Error("expected error for unknown flag, got nil")
	}
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("explicit flags override config", func(t *testing.T) {
		t.Parallel()

		f, fs, err := parseFlags([]string{"-i", "cli.html", "-w", "5"})
		if err != nil {
			t.Fatal(err)
		}

		cfg := config.DefaultConfig()
		cfg.Input.Path = "config.html"
		cfg.Output.Path = "config.json"
		cfg.Extract.Workers = 2

		mergeFlags(fs, f, cfg)

		if cfg.Input.Path != "cli.html" {
			t.Errorf("Input.Path = %q, want cli.html", cfg.Input.Path)
		}
		if cfg.Extract.Workers != 5 {
			t.Errorf("Extract.Workers = %d, want 5", cfg.Extract.Workers)
		}
		// Untouched flags leave config values alone.
		if cfg.Output.Path != "config.json" {
			t.Errorf("Output.Path = %q, want config.json", cfg.Output.Path)
		}
	})

	t.Run("positional argument names input", func(t *testing.T) {
		t.Parallel()

		f, fs, err := parseFlags([]string{"exam.html"})
		if err != nil {
			t.Fatal(err)
		}

		cfg := config.DefaultConfig()
		mergeFlags(fs, f, cfg)

		if cfg.Input.Path != "exam.html" {
			t.Errorf("Input.Path = %q, want exam.html", cfg.Input.Path)
		}
	})

	t.Run("input flag beats positional", func(t *testing.T) {
		t.Parallel()

		f, fs, err := parseFlags([]string{"-i", "flag.html", "positional.html"})
		if err != nil {
			t.Fatal(err)
		}

		cfg := config.DefaultConfig()
		mergeFlags(fs, f, cfg)

		if cfg.Input.Path != "flag.html" {
			t.Errorf("Input.Path = %q, want flag.html", cfg.Input.Path)
		}
	})

	t.Run("units extend config list", func(t *testing.T) {
		t.Parallel()

		f, fs, err := parseFlags([]string{"-u", "T2"})
		if err != nil {
			t.Fatal(err)
		}

		cfg := config.DefaultConfig()
		cfg.Extract.Units = []string{"mX"}
		mergeFlags(fs, f, cfg)

		if len(cfg.Extract.Units) != 2 || cfg.Extract.Units[0] != "mX" || cfg.Extract.Units[1] != "T2" {
			t.Errorf("Extract.Units = %v, want [mX T2]", cfg.Extract.Units)
		}
	})
}

package main

import (
	"errors"
	"os"

	extractor "github.com/reddy-gopal/question-extractor"
	"github.com/reddy-gopal/question-extractor/internal/config"
	"github.com/reddy-gopal/question-extractor/internal/fileutil"
	"github.com/reddy-gopal/question-extractor/internal/sheets"
)

// Exit codes for the qextract CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful extraction
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input document
	ExitIO      = 3 // File not found, permission denied
	ExitUpload  = 4 // Google Sheets upload errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Upload errors (exit 4)
	if errors.Is(err, sheets.ErrCreateService) ||
		errors.Is(err, sheets.ErrOpenSpreadsheet) ||
		errors.Is(err, sheets.ErrCreateWorksheet) ||
		errors.Is(err, sheets.ErrUploadRows) {
		return ExitUpload
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrEmptyPath) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, extractor.ErrEmptyDocument) ||
		errors.Is(err, extractor.ErrParseDocument) {
		return ExitUsage
	}

	return ExitGeneral
}

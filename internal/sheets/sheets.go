// Package sheets uploads extracted question records to a Google Sheets
// worksheet. Records are flattened to one row per question with the
// options spread across fixed columns.
package sheets

import (
	"context"
	"errors"
	"fmt"

	gsheets "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"

	extractor "github.com/reddy-gopal/question-extractor"
)

// Sentinel errors for upload failures.
var (
	ErrCreateService   = errors.New("failed to create sheets service")
	ErrOpenSpreadsheet = errors.New("failed to open spreadsheet")
	ErrCreateWorksheet = errors.New("failed to create worksheet")
	ErrUploadRows      = errors.New("failed to upload rows")
)

// headerRow labels the flattened columns, written as the first row of the
// worksheet on every upload.
var headerRow = []interface{}{
	"Subject", "Question_No", "Question_Type", "Question_HTML",
	"Correct_Answer",
	"Option_A_Text", "Option_B_Text", "Option_C_Text", "Option_D_Text",
	"Solution_HTML",
}

// optionLetters fixes the option column order.
var optionLetters = []string{"A", "B", "C", "D"}

// Client wraps the Sheets API for question uploads.
type Client struct {
	svc *gsheets.Service
}

// New creates a Client authenticated with the given service account
// credentials file.
func New(ctx context.Context, credentialsFile string) (*Client, error) {
	svc, err := gsheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateService, err)
	}
	return &Client{svc: svc}, nil
}

// Flatten converts question records to spreadsheet rows, header first.
// Missing options leave their column empty.
func Flatten(questions []extractor.Question) [][]interface{} {
	rows := make([][]interface{}, 0, len(questions)+1)
	rows = append(rows, headerRow)

	for _, q := range questions {
		row := []interface{}{
			q.Subject, q.Number, q.Type, q.Question,
			q.CorrectAnswer,
		}
		for _, letter := range optionLetters {
			row = append(row, q.Options[letter])
		}
		row = append(row, q.Solution)
		rows = append(rows, row)
	}
	return rows
}

// Upload replaces the contents of the named worksheet with rows, creating
// the worksheet if the spreadsheet does not have one by that name.
func (c *Client) Upload(ctx context.Context, spreadsheetID, worksheet string, rows [][]interface{}) error {
	if err := c.ensureWorksheet(ctx, spreadsheetID, worksheet); err != nil {
		return err
	}

	rangeRef := fmt.Sprintf("%s!A1", worksheet)

	_, err := c.svc.Spreadsheets.Values.Clear(spreadsheetID, worksheet, &gsheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUploadRows, err)
	}

	_, err = c.svc.Spreadsheets.Values.Update(spreadsheetID, rangeRef, &gsheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUploadRows, err)
	}
	return nil
}

// ensureWorksheet adds a sheet named worksheet when the spreadsheet lacks
// one.
func (c *Client) ensureWorksheet(ctx context.Context, spreadsheetID, worksheet string) error {
	ss, err := c.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOpenSpreadsheet, err)
	}

	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == worksheet {
			return nil
		}
	}

	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{Title: worksheet},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateWorksheet, err)
	}
	return nil
}

package googlesheets

import "errors"

var (
	// ErrMissingSpreadsheetID is returned when no spreadsheet is configured
	ErrMissingSpreadsheetID = errors.New("spreadsheet id is required")

	// ErrUnknownSheet is returned when a tab could not be created or found
	ErrUnknownSheet = errors.New("sheet not found in spreadsheet")
)

package xlsx

import "errors"

var (
	// ErrMissingFilePath is returned when file path is not specified
	ErrMissingFilePath = errors.New("file path is required")

	// ErrInvalidExtension is returned when the file name doesn't end in .xlsx
	ErrInvalidExtension = errors.New("file path must end with .xlsx")
)

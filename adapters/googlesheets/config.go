package googlesheets

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config represents configuration specific to the Google Sheets publisher
type Config struct {
	SpreadsheetID string `validate:"required"`
	// ClearSheets clears values and formats of every target tab before writing
	ClearSheets bool
}

var validate = validator.New()

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingSpreadsheetID, err)
	}
	return nil
}

package xlsx

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds configuration for the xlsx exporter
type Config struct {
	FilePath string `validate:"required,xlsxpath"` // Path of the .xlsx file to write
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("xlsxpath", func(fl validator.FieldLevel) bool {
		return strings.EqualFold(filepath.Ext(fl.Field().String()), ".xlsx")
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var verrs validator.ValidationErrors
	if err := validate.Struct(c); !errors.As(err, &verrs) {
		return err
	}
	if verrs[0].Tag() == "required" {
		return fmt.Errorf("%w: %v", ErrMissingFilePath, verrs)
	}
	return fmt.Errorf("%w: %v", ErrInvalidExtension, verrs)
}

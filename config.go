package sheetxml

import "github.com/go-logr/logr"

// Config represents configuration for a Document
type Config struct {
	Logger           logr.Logger // Receives warnings and debug traces (default: discard)
	Indent           bool        // Pretty-print the generated XML
	StrictSheetNames bool        // Reject empty and duplicate sheet names instead of tolerating them
	MaxRetries       int         // Maximum number of retries for Export (default: 3)
}

// DefaultConfig returns the configuration used when New receives nil
func DefaultConfig() *Config {
	return &Config{
		Logger:     logr.Discard(),
		MaxRetries: 3,
	}
}

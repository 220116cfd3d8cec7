package sheetxml

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Document is a workbook under construction: an ordered list of sheets
// plus the settings shared by all of them.
type Document struct {
	config       Config
	author       string
	sheets       []*Sheet
	defaultStyle *Style
	columns      []float64
	options      *SheetOptions
}

// New creates an empty document written by author
func New(author string, config *Config) *Document {
	// Use default config if not provided
	if config == nil {
		config = DefaultConfig()
	}

	cfg := *config
	if cfg.Logger.GetSink() == nil {
		cfg.Logger = DefaultConfig().Logger
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultConfig().MaxRetries
	}

	return &Document{
		config: cfg,
		author: author,
		sheets: []*Sheet{},
	}
}

// Author returns the author written into the document properties
func (d *Document) Author() string { return d.author }

// SetDefaultFontStyle sets the style every cell inherits from
func (d *Document) SetDefaultFontStyle(style Style) error {
	s, err := style.normalize()
	if err != nil {
		return err
	}
	d.defaultStyle = &s
	return nil
}

// DefaultStyle returns the document default style, if one is set
func (d *Document) DefaultStyle() (Style, bool) {
	if d.defaultStyle == nil {
		return Style{}, false
	}
	return *d.defaultStyle, true
}

// SetColumnSize sets the column widths (in points) used by every sheet
// that has no widths of its own. Index i is column i.
func (d *Document) SetColumnSize(widths ...float64) error {
	if err := checkWidths(widths); err != nil {
		return err
	}
	d.columns = append([]float64(nil), widths...)
	return nil
}

// ColumnSize returns the document-wide column widths
func (d *Document) ColumnSize() []float64 {
	return append([]float64(nil), d.columns...)
}

// SetSheetOptions sets the display options written into every worksheet
func (d *Document) SetSheetOptions(options SheetOptions) error {
	if err := options.check(); err != nil {
		return err
	}
	d.options = &options
	return nil
}

// SheetOptions returns the worksheet display options, if set
func (d *Document) SheetOptions() (SheetOptions, bool) {
	if d.options == nil {
		return SheetOptions{}, false
	}
	return *d.options, true
}

// AddSheet appends a new sheet and returns it. Without StrictSheetNames an
// empty name is replaced by "SheetN" and duplicate names are accepted.
func (d *Document) AddSheet(name string) (*Sheet, error) {
	if name == "" {
		if d.config.StrictSheetNames {
			return nil, fmt.Errorf("%w: empty sheet name", ErrInvalidArgument)
		}
		name = fmt.Sprintf("Sheet%d", len(d.sheets)+1)
		d.config.Logger.Info("empty sheet name replaced", "name", name)
	}

	if _, exists := d.Sheet(name); exists {
		if d.config.StrictSheetNames {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSheet, name)
		}
		d.config.Logger.Info("duplicate sheet name, consuming applications may refuse the document", "name", name)
	}

	sheet := newSheet(name, d.config.Logger)
	d.sheets = append(d.sheets, sheet)
	return sheet, nil
}

// Sheets returns the document's sheet list itself, not a copy
func (d *Document) Sheets() []*Sheet {
	return d.sheets
}

// Sheet returns the first sheet called name
func (d *Document) Sheet(name string) (*Sheet, bool) {
	for _, s := range d.sheets {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}

// WriteSheetToFile writes the generated document to fileName
func (d *Document) WriteSheetToFile(fileName string) error {
	return d.WriteSheetToFileInPath(fileName, "")
}

// WriteSheetToFileInPath writes the generated document to fileName inside
// dir, creating dir if it doesn't exist
func (d *Document) WriteSheetToFileInPath(fileName, dir string) error {
	if fileName == "" {
		return fmt.Errorf("%w: empty file name", ErrInvalidArgument)
	}

	data, err := d.GenerateSheet()
	if err != nil {
		return err
	}

	path := fileName
	if dir != "" {
		path = filepath.Join(dir, fileName)
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %w", ErrIOFailure, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	d.config.Logger.V(1).Info("document written", "path", path, "bytes", len(data))
	return nil
}

// WriteTo writes the generated document to w
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := d.GenerateSheet()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return int64(n), nil
}

package sheetxml

import (
	"fmt"
	"math"

	"github.com/go-logr/logr"
)

// row keeps the cell values of a row together with its overrides, so
// values, formatting and configuration can never drift apart.
type row struct {
	values []Value
	format Formatting
	config Configuration
}

// Sheet is a single worksheet of a Document
type Sheet struct {
	name    string
	rows    []row
	columns []float64 // per-sheet column widths, nil falls back to the document
	logger  logr.Logger
}

func newSheet(name string, logger logr.Logger) *Sheet {
	return &Sheet{
		name:   name,
		rows:   []row{},
		logger: logger.WithValues("sheet", name),
	}
}

// Name returns the sheet (tab) name
func (s *Sheet) Name() string { return s.name }

// Len returns the number of rows, deleted rows included
func (s *Sheet) Len() int { return len(s.rows) }

// RowOption attaches formatting or configuration to a row added with AddRow
type RowOption func(*pendingRow) error

type pendingRow struct {
	cells     int
	format    Formatting
	config    Configuration
	formatSet bool
	configSet bool
}

func (p *pendingRow) setFormat(f Formatting) error {
	if p.formatSet {
		return fmt.Errorf("%w: formatting given more than once", ErrInvalidArgument)
	}
	if f.cells != nil && len(f.cells) != p.cells {
		return fmt.Errorf("%w: %d cell styles for %d entries", ErrInvalidArgument, len(f.cells), p.cells)
	}
	p.format, p.formatSet = f, true
	return nil
}

func (p *pendingRow) setConfig(c Configuration) error {
	if p.configSet {
		return fmt.Errorf("%w: configuration given more than once", ErrInvalidArgument)
	}
	if c.cells != nil && len(c.cells) != p.cells {
		return fmt.Errorf("%w: %d cell configurations for %d entries", ErrInvalidArgument, len(c.cells), p.cells)
	}
	p.config, p.configSet = c, true
	return nil
}

// WithRowStyle applies one style to every cell of the row
func WithRowStyle(style Style) RowOption {
	return func(p *pendingRow) error {
		return p.setFormat(Uniform(style))
	}
}

// WithCellStyles sets one style per cell; nil entries fall back to the
// document default. The number of styles must match the number of entries.
func WithCellStyles(styles ...*Style) RowOption {
	return func(p *pendingRow) error {
		return p.setFormat(PerCell(styles...))
	}
}

// WithFormatting accepts either a single style for the whole row or one
// style per entry.
func WithFormatting(styles ...Style) RowOption {
	return func(p *pendingRow) error {
		switch {
		case len(styles) == 1:
			return p.setFormat(Uniform(styles[0]))
		case len(styles) == p.cells && p.cells > 0:
			return p.setFormat(PerCell(pointers(styles)...))
		default:
			return fmt.Errorf("%w: %d styles for %d entries, want 1 or %d", ErrInvalidArgument, len(styles), p.cells, p.cells)
		}
	}
}

// WithRowConfig applies one configuration to every cell of the row
func WithRowConfig(config CellConfig) RowOption {
	return func(p *pendingRow) error {
		return p.setConfig(Uniform(config))
	}
}

// WithCellConfigs sets one configuration per cell; nil entries leave the
// cell unconfigured.
func WithCellConfigs(configs ...*CellConfig) RowOption {
	return func(p *pendingRow) error {
		return p.setConfig(PerCell(configs...))
	}
}

// WithConfigurations accepts either a single configuration for the whole
// row or one configuration per entry.
func WithConfigurations(configs ...CellConfig) RowOption {
	return func(p *pendingRow) error {
		switch {
		case len(configs) == 1:
			return p.setConfig(Uniform(configs[0]))
		case len(configs) == p.cells && p.cells > 0:
			return p.setConfig(PerCell(pointers(configs)...))
		default:
			return fmt.Errorf("%w: %d configurations for %d entries, want 1 or %d", ErrInvalidArgument, len(configs), p.cells, p.cells)
		}
	}
}

func pointers[T any](in []T) []*T {
	out := make([]*T, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}

// AddRow appends a row. Entries may be numbers, strings or nil (empty cell).
// On error the sheet is left unchanged.
func (s *Sheet) AddRow(entries []interface{}, opts ...RowOption) error {
	values, err := valuesOf(entries)
	if err != nil {
		return err
	}

	p := &pendingRow{cells: len(values)}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return err
		}
	}

	format, err := p.format.mapEntries(Style.normalize)
	if err != nil {
		return err
	}
	config, err := p.config.mapEntries(CellConfig.normalize)
	if err != nil {
		return err
	}

	s.rows = append(s.rows, row{values: values, format: format, config: config})
	s.logger.V(1).Info("row added", "row", len(s.rows)-1, "cells", len(values))
	return nil
}

func (s *Sheet) checkIndex(index int) error {
	if index < 0 || index >= len(s.rows) {
		return fmt.Errorf("%w: index %d, sheet %q has %d rows", ErrOutOfRange, index, s.name, len(s.rows))
	}
	return nil
}

// ReplaceRow overwrites the values of an existing row. Its formatting and
// configuration stay in place; rows with per-cell overrides keep their width.
func (s *Sheet) ReplaceRow(index int, entries []interface{}) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	values, err := valuesOf(entries)
	if err != nil {
		return err
	}

	r := &s.rows[index]
	for _, n := range []int{r.format.Len(), r.config.Len()} {
		if n > 0 && n != len(values) {
			return fmt.Errorf("%w: row %d has per-cell overrides for %d cells, got %d entries", ErrInvalidArgument, index, n, len(values))
		}
	}
	r.values = values
	return nil
}

// DeleteRow clears the values of a row. The row keeps its position, its
// width and its overrides, so later rows keep their indices.
func (s *Sheet) DeleteRow(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	r := &s.rows[index]
	r.values = make([]Value, len(r.values))
	return nil
}

// Row returns a copy of the values of a row
func (s *Sheet) Row(index int) ([]Value, error) {
	if err := s.checkIndex(index); err != nil {
		return nil, err
	}
	out := make([]Value, len(s.rows[index].values))
	copy(out, s.rows[index].values)
	return out, nil
}

// Formatting returns the style override of a row
func (s *Sheet) Formatting(index int) (Formatting, error) {
	if err := s.checkIndex(index); err != nil {
		return Formatting{}, err
	}
	return s.rows[index].format, nil
}

// Configuration returns the directive override of a row
func (s *Sheet) Configuration(index int) (Configuration, error) {
	if err := s.checkIndex(index); err != nil {
		return Configuration{}, err
	}
	return s.rows[index].config, nil
}

// SetColumnSize sets column widths (in points) for this sheet only,
// replacing the document-wide widths. No arguments restore the fallback.
func (s *Sheet) SetColumnSize(widths ...float64) error {
	if err := checkWidths(widths); err != nil {
		return err
	}
	if len(widths) == 0 {
		s.columns = nil
		return nil
	}
	s.columns = append([]float64(nil), widths...)
	return nil
}

// ColumnSize returns the per-sheet column widths
func (s *Sheet) ColumnSize() []float64 {
	return append([]float64(nil), s.columns...)
}

func checkWidths(widths []float64) error {
	for i, w := range widths {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: invalid width %v for column %d", ErrInvalidArgument, w, i)
		}
	}
	return nil
}

package sheetxml

import "fmt"

// firstStyleID is the number of the first generated style. Lower ids are
// reserved by spreadsheet applications for their built-in styles.
const firstStyleID = 21

// Layout is a resolved, read-only view of a Document: every cell carries
// its effective style and configuration, and styles are deduplicated.
type Layout struct {
	Author string
	Styles []Style // index i has id StyleID(i)
	Sheets []LayoutSheet
}

// LayoutSheet is a resolved sheet
type LayoutSheet struct {
	Name    string
	Columns []float64
	Options *SheetOptions
	Rows    [][]LayoutCell
}

// LayoutCell is a resolved cell. Style is -1 when the cell has no style.
type LayoutCell struct {
	Value  Value
	Style  int
	Config CellConfig
}

// HasStyle reports whether the cell references a style
func (c LayoutCell) HasStyle() bool { return c.Style >= 0 }

// StyleID returns the document identifier of the style at index i
func StyleID(i int) string {
	return fmt.Sprintf("s%d", firstStyleID+i)
}

// registry hands out style indices in first-seen order
type registry struct {
	index  map[Style]int
	styles []Style
}

func newRegistry() *registry {
	return &registry{index: make(map[Style]int)}
}

func (r *registry) id(s Style) int {
	if i, ok := r.index[s]; ok {
		return i
	}
	i := len(r.styles)
	r.styles = append(r.styles, s)
	r.index[s] = i
	return i
}

// Layout resolves the document. Every cell gets the first override found
// (cell, then row) layered on the document default; configuration has no
// document tier. The document is not modified.
func (d *Document) Layout() (*Layout, error) {
	reg := newRegistry()
	layout := &Layout{
		Author: d.author,
		Sheets: make([]LayoutSheet, 0, len(d.sheets)),
	}

	for _, sheet := range d.sheets {
		ls := LayoutSheet{
			Name:    sheet.name,
			Columns: append([]float64(nil), d.columns...),
			Rows:    make([][]LayoutCell, len(sheet.rows)),
		}
		if sheet.columns != nil {
			ls.Columns = append([]float64(nil), sheet.columns...)
		}
		if d.options != nil && !d.options.IsZero() {
			opts := *d.options
			ls.Options = &opts
		}

		for ri, r := range sheet.rows {
			cells, err := d.resolveRow(reg, r)
			if err != nil {
				return nil, fmt.Errorf("sheet %q row %d: %w", sheet.name, ri, err)
			}
			ls.Rows[ri] = cells
		}
		layout.Sheets = append(layout.Sheets, ls)
	}

	layout.Styles = reg.styles
	return layout, nil
}

func (d *Document) resolveRow(reg *registry, r row) ([]LayoutCell, error) {
	n := len(r.values)
	cells := make([]LayoutCell, n)
	for col, v := range r.values {
		override, err := r.format.at(col, n)
		if err != nil {
			return nil, err
		}
		config, err := r.config.at(col, n)
		if err != nil {
			return nil, err
		}

		cell := LayoutCell{Value: v, Style: -1}
		if style, ok := d.effectiveStyle(override); ok {
			cell.Style = reg.id(style)
		}
		if config != nil {
			cell.Config = *config
		}
		cells[col] = cell
	}
	return cells, nil
}

func (d *Document) effectiveStyle(override *Style) (Style, bool) {
	var base Style
	if d.defaultStyle != nil {
		base = *d.defaultStyle
	}
	if override != nil {
		base = base.Merge(*override)
	}
	base = base.resolved()
	if base.IsZero() {
		return Style{}, false
	}
	return base, true
}

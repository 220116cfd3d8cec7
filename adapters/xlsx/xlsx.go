package xlsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/xuri/excelize/v2"

	sheetxml "github.com/ideamans/go-sheetxml"
	"github.com/ideamans/go-sheetxml/internal/r1c1"
)

// defaultSheet is the sheet excelize creates with every new file
const defaultSheet = "Sheet1"

// Built-in number formats matching the SpreadsheetML named formats
var namedFormats = map[string]int{
	"General":        0,
	"General Number": 0,
	"0":              1,
	"Fixed":          2,
	"0.00":           2,
	"Standard":       4,
	"Percent":        10,
	"Scientific":     11,
	"Short Date":     14,
}

var _ sheetxml.Exporter = (*Exporter)(nil)

// Exporter implements the sheetxml.Exporter interface for .xlsx files
type Exporter struct {
	config *Config
	logger logr.Logger
	mu     sync.Mutex
}

// New creates a new xlsx exporter with the given configuration
func New(config *Config) (*Exporter, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create a copy of config to avoid external modifications
	configCopy := *config

	return &Exporter{
		config: &configCopy,
		logger: logr.Discard(),
	}, nil
}

// WithLogger sets the logger used to report features xlsx can't carry
func (e *Exporter) WithLogger(logger logr.Logger) *Exporter {
	e.logger = logger
	return e
}

// Export writes the layout as a new .xlsx file, replacing any existing one
func (e *Exporter) Export(ctx context.Context, layout *sheetxml.Layout) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check if context is cancelled
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := e.build(f, layout); err != nil {
		return err
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(e.config.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := f.SaveAs(e.config.FilePath); err != nil {
		return fmt.Errorf("failed to save xlsx file: %w", err)
	}
	return nil
}

func (e *Exporter) build(f *excelize.File, layout *sheetxml.Layout) error {
	if err := f.SetDocProps(&excelize.DocProperties{Creator: layout.Author}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	styles, err := registerStyles(f, layout.Styles)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	for i, sheet := range layout.Sheets {
		key := strings.ToLower(sheet.Name)
		if seen[key] {
			return fmt.Errorf("%w: %q", sheetxml.ErrDuplicateSheet, sheet.Name)
		}
		seen[key] = true

		if i == 0 {
			if sheet.Name != defaultSheet {
				if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
					return fmt.Errorf("failed to rename sheet: %w", err)
				}
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}

		if err := e.writeSheet(f, sheet, styles, layout.Author); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)
	return nil
}

func (e *Exporter) writeSheet(f *excelize.File, sheet sheetxml.LayoutSheet, styles []int, author string) error {
	name := sheet.Name

	for i, w := range sheet.Columns {
		if w == 0 {
			continue
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, col, col, pointsToChars(w)); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range sheet.Rows {
		for c, cell := range row {
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := e.writeCell(f, name, ref, r+1, c+1, cell, styles, author); err != nil {
				return fmt.Errorf("cell %s: %w", ref, err)
			}
		}
	}

	if opts := sheet.Options; opts != nil {
		if opts.Zoom > 0 {
			zoom := float64(opts.Zoom)
			if err := f.SetSheetView(name, 0, &excelize.ViewOptions{ZoomScale: &zoom}); err != nil {
				return fmt.Errorf("failed to set zoom: %w", err)
			}
		}
		if strings.TrimSpace(opts.Custom) != "" {
			e.logger.Info("custom worksheet options have no xlsx equivalent, skipped", "sheet", name)
		}
	}
	return nil
}

func (e *Exporter) writeCell(f *excelize.File, sheet, ref string, row, col int, cell sheetxml.LayoutCell, styles []int, author string) error {
	switch v := cell.Value; v.Kind() {
	case sheetxml.KindNumber:
		n, _ := v.Float()
		if err := f.SetCellFloat(sheet, ref, n, -1, 64); err != nil {
			return err
		}
	case sheetxml.KindText:
		if err := f.SetCellStr(sheet, ref, v.String()); err != nil {
			return err
		}
	}

	if cell.HasStyle() {
		if err := f.SetCellStyle(sheet, ref, ref, styles[cell.Style]); err != nil {
			return err
		}
	}

	cfg := cell.Config
	if cfg.Formula != "" {
		if err := f.SetCellFormula(sheet, ref, r1c1.ToA1(cfg.Formula, row, col)); err != nil {
			return err
		}
	}
	if cfg.HRef != "" {
		link, linkType := cfg.HRef, "External"
		if strings.HasPrefix(link, "#") {
			link, linkType = strings.TrimPrefix(link, "#"), "Location"
		}
		var opts []excelize.HyperlinkOpts
		if cfg.ScreenTip != "" {
			tip := cfg.ScreenTip
			opts = append(opts, excelize.HyperlinkOpts{Tooltip: &tip})
		}
		if err := f.SetCellHyperLink(sheet, ref, link, linkType, opts...); err != nil {
			return err
		}
	}
	if cfg.MergeAcross > 0 || cfg.MergeDown > 0 {
		end, err := excelize.CoordinatesToCellName(col+cfg.MergeAcross, row+cfg.MergeDown)
		if err != nil {
			return err
		}
		if err := f.MergeCell(sheet, ref, end); err != nil {
			return err
		}
	}
	if cfg.Comment != "" {
		if err := f.AddComment(sheet, excelize.Comment{Cell: ref, Author: author, Text: cfg.Comment}); err != nil {
			return err
		}
	}
	return nil
}

// registerStyles creates one excelize style per layout style, keeping indices
func registerStyles(f *excelize.File, styles []sheetxml.Style) ([]int, error) {
	ids := make([]int, len(styles))
	for i, s := range styles {
		id, err := f.NewStyle(toExcelizeStyle(s))
		if err != nil {
			return nil, fmt.Errorf("failed to create style %s: %w", sheetxml.StyleID(i), err)
		}
		ids[i] = id
	}
	return ids, nil
}

func toExcelizeStyle(s sheetxml.Style) *excelize.Style {
	style := &excelize.Style{}

	if s.Bold.IsOn() || s.Italic.IsOn() || s.Underline.IsOn() || s.FontName != "" || s.FontSize != 0 || s.FontColor != "" {
		style.Font = &excelize.Font{
			Bold:   s.Bold.IsOn(),
			Italic: s.Italic.IsOn(),
			Family: s.FontName,
			Size:   s.FontSize,
			Color:  strings.TrimPrefix(s.FontColor, "#"),
		}
		if s.Underline.IsOn() {
			style.Font.Underline = "single"
		}
	}

	if s.BackgroundColor != "" {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{strings.TrimPrefix(s.BackgroundColor, "#")},
		}
	}

	if s.Horizontal != "" || s.Vertical != "" || s.WrapText.IsOn() {
		style.Alignment = &excelize.Alignment{
			Horizontal: horizontal(s.Horizontal),
			Vertical:   vertical(s.Vertical),
			WrapText:   s.WrapText.IsOn(),
		}
	}

	for _, p := range s.Borders.Positions() {
		style.Border = append(style.Border, excelize.Border{
			Type:  strings.ToLower(p),
			Color: "000000",
			Style: 1,
		})
	}

	if format := s.Format(); format != "" {
		if id, ok := namedFormats[format]; ok {
			style.NumFmt = id
		} else {
			custom := format
			style.CustomNumFmt = &custom
		}
	}
	return style
}

func horizontal(a sheetxml.HAlign) string {
	switch a {
	case sheetxml.HAlignLeft:
		return "left"
	case sheetxml.HAlignCenter:
		return "center"
	case sheetxml.HAlignRight:
		return "right"
	case sheetxml.HAlignAutomatic:
		return "general"
	default:
		return ""
	}
}

func vertical(a sheetxml.VAlign) string {
	switch a {
	case sheetxml.VAlignTop:
		return "top"
	case sheetxml.VAlignCenter:
		return "center"
	case sheetxml.VAlignBottom, sheetxml.VAlignAutomatic:
		return "bottom"
	default:
		return ""
	}
}

// pointsToChars converts a width in points into the character units xlsx uses
func pointsToChars(points float64) float64 {
	px := points * 4 / 3
	chars := (px - 5) / 7
	if chars < 0 {
		return 0
	}
	return chars
}

package googlesheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	sheetxml "github.com/ideamans/go-sheetxml"
	"github.com/ideamans/go-sheetxml/internal/r1c1"
)

// pixels per point at 96 dpi
const pixelsPerPoint = 4.0 / 3.0

var _ sheetxml.Exporter = (*Publisher)(nil)

// Publisher implements the sheetxml.Exporter interface for Google Sheets.
// Every sheet of a layout is written to the tab with the same title,
// creating missing tabs first.
type Publisher struct {
	service       *sheets.Service
	spreadsheetID string
	clear         bool
	logger        logr.Logger
}

// NewPublisher creates a new Google Sheets publisher with provided options
func NewPublisher(ctx context.Context, config Config, opts ...option.ClientOption) (*Publisher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Publisher{
		service:       service,
		spreadsheetID: config.SpreadsheetID,
		clear:         config.ClearSheets,
		logger:        logr.Discard(),
	}, nil
}

// WithLogger sets the logger used to report features Google Sheets can't carry
func (p *Publisher) WithLogger(logger logr.Logger) *Publisher {
	p.logger = logger
	return p
}

// Export writes the layout into the spreadsheet in a single batch update
func (p *Publisher) Export(ctx context.Context, layout *sheetxml.Layout) error {
	// Tab titles are unique regardless of case, two sheets would share a tab
	seen := make(map[string]bool, len(layout.Sheets))
	for _, sheet := range layout.Sheets {
		key := strings.ToLower(sheet.Name)
		if seen[key] {
			return fmt.Errorf("%w: %q", sheetxml.ErrDuplicateSheet, sheet.Name)
		}
		seen[key] = true
	}

	ids, err := p.ensureSheets(ctx, layout)
	if err != nil {
		return err
	}

	var requests []*sheets.Request
	for _, sheet := range layout.Sheets {
		id, ok := ids[sheet.Name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSheet, sheet.Name)
		}
		if p.clear {
			requests = append(requests, &sheets.Request{
				UpdateCells: &sheets.UpdateCellsRequest{
					Range:  &sheets.GridRange{SheetId: id},
					Fields: "userEnteredValue,userEnteredFormat",
				},
			})
		}
		requests = append(requests, p.sheetRequests(id, sheet, layout.Styles)...)
	}

	if len(requests) == 0 {
		return nil
	}

	_, err = p.service.Spreadsheets.BatchUpdate(p.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update spreadsheet: %w", err)
	}
	return nil
}

// ensureSheets maps sheet titles to tab ids, adding the tabs that don't exist yet
func (p *Publisher) ensureSheets(ctx context.Context, layout *sheetxml.Layout) (map[string]int64, error) {
	resp, err := p.service.Spreadsheets.Get(p.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	ids := make(map[string]int64)
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			ids[s.Properties.Title] = s.Properties.SheetId
		}
	}

	var missing []*sheets.Request
	for _, sheet := range layout.Sheets {
		if _, ok := ids[sheet.Name]; ok {
			continue
		}
		ids[sheet.Name] = -1
		missing = append(missing, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: sheet.Name},
			},
		})
	}
	if len(missing) == 0 {
		return ids, nil
	}

	added, err := p.service.Spreadsheets.BatchUpdate(p.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: missing,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to add sheets: %w", err)
	}
	for _, reply := range added.Replies {
		if reply == nil || reply.AddSheet == nil || reply.AddSheet.Properties == nil {
			continue
		}
		props := reply.AddSheet.Properties
		ids[props.Title] = props.SheetId
	}

	for title, id := range ids {
		if id < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSheet, title)
		}
	}
	p.logger.V(1).Info("sheets added", "count", len(missing))
	return ids, nil
}

func (p *Publisher) sheetRequests(id int64, sheet sheetxml.LayoutSheet, styles []sheetxml.Style) []*sheets.Request {
	var requests []*sheets.Request

	for i, w := range sheet.Columns {
		if w == 0 {
			continue
		}
		requests = append(requests, &sheets.Request{
			UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
				Range: &sheets.DimensionRange{
					SheetId:    id,
					Dimension:  "COLUMNS",
					StartIndex: int64(i),
					EndIndex:   int64(i + 1),
				},
				Properties: &sheets.DimensionProperties{PixelSize: int64(w*pixelsPerPoint + 0.5)},
				Fields:     "pixelSize",
			},
		})
	}

	if len(sheet.Rows) > 0 {
		rows := make([]*sheets.RowData, len(sheet.Rows))
		for r, cells := range sheet.Rows {
			data := &sheets.RowData{Values: make([]*sheets.CellData, len(cells))}
			for c, cell := range cells {
				data.Values[c] = p.cellData(sheet.Name, r+1, c+1, cell, styles)

				cfg := cell.Config
				if cfg.MergeAcross > 0 || cfg.MergeDown > 0 {
					requests = append(requests, &sheets.Request{
						MergeCells: &sheets.MergeCellsRequest{
							Range: &sheets.GridRange{
								SheetId:          id,
								StartRowIndex:    int64(r),
								EndRowIndex:      int64(r + cfg.MergeDown + 1),
								StartColumnIndex: int64(c),
								EndColumnIndex:   int64(c + cfg.MergeAcross + 1),
							},
							MergeType: "MERGE_ALL",
						},
					})
				}
			}
			rows[r] = data
		}

		// cells go first so merges keep the top-left value
		requests = append([]*sheets.Request{{
			UpdateCells: &sheets.UpdateCellsRequest{
				Start:  &sheets.GridCoordinate{SheetId: id},
				Rows:   rows,
				Fields: "userEnteredValue,userEnteredFormat,note",
			},
		}}, requests...)
	}

	if opts := sheet.Options; opts != nil {
		if opts.Zoom > 0 {
			p.logger.Info("zoom has no Google Sheets equivalent, skipped", "sheet", sheet.Name, "zoom", opts.Zoom)
		}
		if strings.TrimSpace(opts.Custom) != "" {
			p.logger.Info("custom worksheet options have no Google Sheets equivalent, skipped", "sheet", sheet.Name)
		}
	}
	return requests
}

func (p *Publisher) cellData(sheetName string, row, col int, cell sheetxml.LayoutCell, styles []sheetxml.Style) *sheets.CellData {
	data := &sheets.CellData{Note: cell.Config.Comment}

	value := &sheets.ExtendedValue{}
	switch v := cell.Value; v.Kind() {
	case sheetxml.KindNumber:
		n, _ := v.Float()
		value.NumberValue = &n
	case sheetxml.KindText:
		s := v.String()
		value.StringValue = &s
	}

	cfg := cell.Config
	switch {
	case cfg.Formula != "":
		formula := "=" + r1c1.ToA1(cfg.Formula, row, col)
		value = &sheets.ExtendedValue{FormulaValue: &formula}
		if cfg.HRef != "" {
			p.logger.Info("hyperlink dropped on formula cell", "sheet", sheetName, "row", row, "column", col)
		}
	case cfg.HRef != "":
		label := cell.Value.String()
		if label == "" {
			label = cfg.HRef
		}
		formula := fmt.Sprintf("=HYPERLINK(%s,%s)", quote(cfg.HRef), quote(label))
		value = &sheets.ExtendedValue{FormulaValue: &formula}
	}
	if value.NumberValue != nil || value.StringValue != nil || value.FormulaValue != nil {
		data.UserEnteredValue = value
	}

	if cell.HasStyle() {
		data.UserEnteredFormat = cellFormat(styles[cell.Style])
	}
	return data
}

// quote renders s as a spreadsheet string literal
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func cellFormat(s sheetxml.Style) *sheets.CellFormat {
	f := &sheets.CellFormat{}

	if s.Bold.IsOn() || s.Italic.IsOn() || s.Underline.IsOn() || s.FontName != "" || s.FontSize != 0 || s.FontColor != "" {
		f.TextFormat = &sheets.TextFormat{
			Bold:       s.Bold.IsOn(),
			Italic:     s.Italic.IsOn(),
			Underline:  s.Underline.IsOn(),
			FontFamily: s.FontName,
			FontSize:   int64(s.FontSize + 0.5),
		}
		if s.FontColor != "" {
			f.TextFormat.ForegroundColor = parseColor(s.FontColor)
		}
	}

	if s.BackgroundColor != "" {
		f.BackgroundColor = parseColor(s.BackgroundColor)
	}

	switch s.Horizontal {
	case sheetxml.HAlignLeft:
		f.HorizontalAlignment = "LEFT"
	case sheetxml.HAlignCenter:
		f.HorizontalAlignment = "CENTER"
	case sheetxml.HAlignRight:
		f.HorizontalAlignment = "RIGHT"
	}
	switch s.Vertical {
	case sheetxml.VAlignTop:
		f.VerticalAlignment = "TOP"
	case sheetxml.VAlignCenter:
		f.VerticalAlignment = "MIDDLE"
	case sheetxml.VAlignBottom:
		f.VerticalAlignment = "BOTTOM"
	}
	if s.WrapText.IsOn() {
		f.WrapStrategy = "WRAP"
	}

	if s.Borders != 0 {
		solid := func(pos sheetxml.Border) *sheets.Border {
			if !s.Borders.Has(pos) {
				return nil
			}
			return &sheets.Border{Style: "SOLID"}
		}
		f.Borders = &sheets.Borders{
			Top:    solid(sheetxml.BorderTop),
			Bottom: solid(sheetxml.BorderBottom),
			Left:   solid(sheetxml.BorderLeft),
			Right:  solid(sheetxml.BorderRight),
		}
	}

	if format := s.Format(); format != "" {
		f.NumberFormat = numberFormat(format)
	}
	return f
}

func numberFormat(format string) *sheets.NumberFormat {
	switch format {
	case sheetxml.FixedFormat:
		return &sheets.NumberFormat{Type: "NUMBER", Pattern: "0.00"}
	case "Standard":
		return &sheets.NumberFormat{Type: "NUMBER", Pattern: "#,##0.00"}
	case "Percent":
		return &sheets.NumberFormat{Type: "PERCENT", Pattern: "0.00%"}
	case "Scientific":
		return &sheets.NumberFormat{Type: "SCIENTIFIC", Pattern: "0.00E+00"}
	case "Short Date":
		return &sheets.NumberFormat{Type: "DATE"}
	case "General", "General Number":
		return &sheets.NumberFormat{Type: "NUMBER"}
	default:
		return &sheets.NumberFormat{Type: "NUMBER", Pattern: format}
	}
}

// parseColor turns "#RRGGBB" into a Color with channels in [0, 1]
func parseColor(hex string) *sheets.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return nil
	}
	return &sheets.Color{
		Red:   float64(n>>16&0xff) / 255,
		Green: float64(n>>8&0xff) / 255,
		Blue:  float64(n&0xff) / 255,
	}
}

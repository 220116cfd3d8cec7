package sheetxml

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// XML namespaces of the SpreadsheetML 2003 format
const (
	nsSpreadsheet = "urn:schemas-microsoft-com:office:spreadsheet"
	nsOffice      = "urn:schemas-microsoft-com:office:office"
	nsExcel       = "urn:schemas-microsoft-com:office:excel"
	nsHTML        = "http://www.w3.org/TR/REC-html40"
)

// placeholderSheet names the worksheet written for a document without sheets
const placeholderSheet = "Sheet1"

const msoApplication = `<?mso-application progid="Excel.Sheet"?>` + "\n"

// workbookXML is the document root
type workbookXML struct {
	XMLName    xml.Name              `xml:"Workbook"`
	Xmlns      string                `xml:"xmlns,attr"`
	XmlnsO     string                `xml:"xmlns:o,attr"`
	XmlnsX     string                `xml:"xmlns:x,attr"`
	XmlnsSS    string                `xml:"xmlns:ss,attr"`
	XmlnsHTML  string                `xml:"xmlns:html,attr"`
	Properties documentPropertiesXML `xml:"DocumentProperties"`
	Styles     stylesXML             `xml:"Styles"`
	Worksheets []worksheetXML        `xml:"Worksheet"`
}

type documentPropertiesXML struct {
	Xmlns  string `xml:"xmlns,attr"`
	Author string `xml:"Author"`
}

type stylesXML struct {
	Style []styleXML `xml:"Style"`
}

type styleXML struct {
	ID           string           `xml:"ss:ID,attr"`
	Alignment    *alignmentXML    `xml:"Alignment"`
	Borders      *bordersXML      `xml:"Borders"`
	Font         *fontXML         `xml:"Font"`
	Interior     *interiorXML     `xml:"Interior"`
	NumberFormat *numberFormatXML `xml:"NumberFormat"`
}

type alignmentXML struct {
	Horizontal string `xml:"ss:Horizontal,attr,omitempty"`
	Vertical   string `xml:"ss:Vertical,attr,omitempty"`
	WrapText   string `xml:"ss:WrapText,attr,omitempty"`
}

type bordersXML struct {
	Border []borderXML `xml:"Border"`
}

type borderXML struct {
	Position  string `xml:"ss:Position,attr"`
	LineStyle string `xml:"ss:LineStyle,attr"`
	Weight    int    `xml:"ss:Weight,attr"`
}

type fontXML struct {
	FontName  string `xml:"ss:FontName,attr,omitempty"`
	Size      string `xml:"ss:Size,attr,omitempty"`
	Color     string `xml:"ss:Color,attr,omitempty"`
	Bold      string `xml:"ss:Bold,attr,omitempty"`
	Italic    string `xml:"ss:Italic,attr,omitempty"`
	Underline string `xml:"ss:Underline,attr,omitempty"`
}

type interiorXML struct {
	Color   string `xml:"ss:Color,attr"`
	Pattern string `xml:"ss:Pattern,attr"`
}

type numberFormatXML struct {
	Format string `xml:"ss:Format,attr"`
}

type worksheetXML struct {
	Name    string               `xml:"ss:Name,attr"`
	Table   tableXML             `xml:"Table"`
	Options *worksheetOptionsXML `xml:"WorksheetOptions"`
}

type tableXML struct {
	Columns []columnXML `xml:"Column"`
	Rows    []rowXML    `xml:"Row"`
}

type columnXML struct {
	Index        int    `xml:"ss:Index,attr,omitempty"` // 1-based, only after a skipped column
	AutoFitWidth string `xml:"ss:AutoFitWidth,attr"`
	Width        string `xml:"ss:Width,attr"`
}

type rowXML struct {
	Cells []cellXML `xml:"Cell"`
}

type cellXML struct {
	StyleID     string      `xml:"ss:StyleID,attr,omitempty"`
	HRef        string      `xml:"ss:HRef,attr,omitempty"`
	ScreenTip   string      `xml:"x:HRefScreenTip,attr,omitempty"`
	Formula     string      `xml:"ss:Formula,attr,omitempty"`
	MergeAcross int         `xml:"ss:MergeAcross,attr,omitempty"`
	MergeDown   int         `xml:"ss:MergeDown,attr,omitempty"`
	Data        *dataXML    `xml:"Data"`
	Comment     *commentXML `xml:"Comment"`
}

type dataXML struct {
	Type  string `xml:"ss:Type,attr"`
	Value string `xml:",chardata"`
}

type commentXML struct {
	Data commentDataXML `xml:"ss:Data"`
}

type commentDataXML struct {
	Xmlns string `xml:"xmlns,attr"`
	Text  string `xml:",chardata"`
}

type worksheetOptionsXML struct {
	Xmlns  string `xml:"xmlns,attr"`
	Zoom   int    `xml:"Zoom,omitempty"`
	Custom string `xml:",innerxml"`
}

// GenerateSheet renders the whole document. The output only depends on
// the document state, so repeated calls return identical bytes.
func (d *Document) GenerateSheet() ([]byte, error) {
	layout, err := d.Layout()
	if err != nil {
		return nil, err
	}

	b := bytebufferpool.Get()
	defer bytebufferpool.Put(b)

	b.WriteString(xml.Header)
	b.WriteString(msoApplication)

	enc := xml.NewEncoder(b)
	if d.config.Indent {
		enc.Indent("", " ")
	}
	if err := enc.Encode(newWorkbookXML(layout)); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	b.WriteString("\n")

	out := make([]byte, b.Len())
	copy(out, b.B)

	d.config.Logger.V(1).Info("document generated", "sheets", len(layout.Sheets), "styles", len(layout.Styles), "bytes", len(out))
	return out, nil
}

func newWorkbookXML(layout *Layout) *workbookXML {
	wb := &workbookXML{
		Xmlns:      nsSpreadsheet,
		XmlnsO:     nsOffice,
		XmlnsX:     nsExcel,
		XmlnsSS:    nsSpreadsheet,
		XmlnsHTML:  nsHTML,
		Properties: documentPropertiesXML{Xmlns: nsOffice, Author: layout.Author},
		Worksheets: make([]worksheetXML, 0, len(layout.Sheets)),
	}

	for i, s := range layout.Styles {
		wb.Styles.Style = append(wb.Styles.Style, newStyleXML(StyleID(i), s))
	}
	for _, s := range layout.Sheets {
		wb.Worksheets = append(wb.Worksheets, newWorksheetXML(s))
	}
	// Spreadsheet applications refuse a workbook without worksheets
	if len(wb.Worksheets) == 0 {
		wb.Worksheets = append(wb.Worksheets, newWorksheetXML(LayoutSheet{Name: placeholderSheet}))
	}
	return wb
}

func newStyleXML(id string, s Style) styleXML {
	x := styleXML{ID: id}

	if s.Horizontal != "" || s.Vertical != "" || s.WrapText.IsOn() {
		x.Alignment = &alignmentXML{
			Horizontal: string(s.Horizontal),
			Vertical:   string(s.Vertical),
		}
		if s.WrapText.IsOn() {
			x.Alignment.WrapText = "1"
		}
	}

	if positions := s.Borders.Positions(); len(positions) > 0 {
		x.Borders = &bordersXML{}
		for _, p := range positions {
			x.Borders.Border = append(x.Borders.Border, borderXML{Position: p, LineStyle: "Continuous", Weight: 1})
		}
	}

	font := fontXML{
		FontName: s.FontName,
		Color:    s.FontColor,
		Bold:     flag(s.Bold),
		Italic:   flag(s.Italic),
	}
	if s.FontSize > 0 {
		font.Size = strconv.FormatFloat(s.FontSize, 'f', -1, 64)
	}
	if s.Underline.IsOn() {
		font.Underline = "Single"
	}
	if font != (fontXML{}) {
		x.Font = &font
	}

	if s.BackgroundColor != "" {
		x.Interior = &interiorXML{Color: s.BackgroundColor, Pattern: "Solid"}
	}

	if f := s.Format(); f != "" {
		x.NumberFormat = &numberFormatXML{Format: f}
	}
	return x
}

func flag(f Flag) string {
	if f.IsOn() {
		return "1"
	}
	return ""
}

func newWorksheetXML(s LayoutSheet) worksheetXML {
	ws := worksheetXML{
		Name: s.Name,
		Table: tableXML{
			Rows: make([]rowXML, len(s.Rows)),
		},
	}

	// Width 0 keeps the application default, the next column then needs an index
	skipped := false
	for i, w := range s.Columns {
		if w == 0 {
			skipped = true
			continue
		}
		col := columnXML{AutoFitWidth: "0", Width: strconv.FormatFloat(w, 'f', -1, 64)}
		if skipped {
			col.Index = i + 1
			skipped = false
		}
		ws.Table.Columns = append(ws.Table.Columns, col)
	}

	for ri, cells := range s.Rows {
		row := rowXML{Cells: make([]cellXML, len(cells))}
		for ci, c := range cells {
			row.Cells[ci] = newCellXML(c)
		}
		ws.Table.Rows[ri] = row
	}

	if s.Options != nil {
		ws.Options = &worksheetOptionsXML{
			Xmlns:  nsExcel,
			Zoom:   s.Options.Zoom,
			Custom: s.Options.Custom,
		}
	}
	return ws
}

func newCellXML(c LayoutCell) cellXML {
	x := cellXML{
		HRef:        c.Config.HRef,
		ScreenTip:   c.Config.ScreenTip,
		Formula:     c.Config.Formula,
		MergeAcross: c.Config.MergeAcross,
		MergeDown:   c.Config.MergeDown,
	}
	if c.HasStyle() {
		x.StyleID = StyleID(c.Style)
	}
	if !c.Value.IsEmpty() {
		x.Data = &dataXML{Type: c.Value.Kind().String(), Value: c.Value.String()}
	}
	if c.Config.Comment != "" {
		x.Comment = &commentXML{Data: commentDataXML{Xmlns: nsHTML, Text: c.Config.Comment}}
	}
	return x
}

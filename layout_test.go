package sheetxml_test

import (
	"reflect"
	"testing"

	sheetxml "github.com/ideamans/go-sheetxml"
)

func TestLayout_FallbackOrder(t *testing.T) {
	doc := sheetxml.New("tester", nil)
	if err := doc.SetDefaultFontStyle(sheetxml.Style{FontName: "Arial", FontSize: 10}); err != nil {
		t.Fatal(err)
	}
	sheet, _ := doc.AddSheet("Sheet1")

	italic := sheetxml.Style{Italic: sheetxml.On, FontSize: 14}
	if err := sheet.AddRow([]interface{}{1, 2}, sheetxml.WithCellStyles(&italic, nil)); err != nil {
		t.Fatal(err)
	}
	if err := sheet.AddRow([]interface{}{3, 4}, sheetxml.WithRowStyle(sheetxml.Style{Bold: sheetxml.On})); err != nil {
		t.Fatal(err)
	}
	if err := sheet.AddRow([]interface{}{5}); err != nil {
		t.Fatal(err)
	}

	layout, err := doc.Layout()
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	rows := layout.Sheets[0].Rows
	style := func(r, c int) sheetxml.Style {
		cell := rows[r][c]
		if !cell.HasStyle() {
			t.Fatalf("cell (%d,%d) has no style", r, c)
		}
		return layout.Styles[cell.Style]
	}

	tests := []struct {
		name string
		r, c int
		want sheetxml.Style
	}{
		{"cell override", 0, 0, sheetxml.Style{FontName: "Arial", FontSize: 14, Italic: sheetxml.On}},
		{"nil cell entry uses default", 0, 1, sheetxml.Style{FontName: "Arial", FontSize: 10}},
		{"row override", 1, 0, sheetxml.Style{FontName: "Arial", FontSize: 10, Bold: sheetxml.On}},
		{"row override second cell", 1, 1, sheetxml.Style{FontName: "Arial", FontSize: 10, Bold: sheetxml.On}},
		{"no override uses default", 2, 0, sheetxml.Style{FontName: "Arial", FontSize: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := style(tt.r, tt.c); got != tt.want {
				t.Errorf("style = %+v, want %+v", got, tt.want)
			}
		})
	}

	if len(layout.Styles) != 3 {
		t.Errorf("len(Styles) = %d, want 3", len(layout.Styles))
	}
	if rows[0][1].Style != rows[2][0].Style {
		t.Error("default style not shared between cells")
	}
}

func TestLayout_FlagSwitchedOff(t *testing.T) {
	doc := sheetxml.New("tester", nil)
	if err := doc.SetDefaultFontStyle(sheetxml.Style{FontName: "Arial", Bold: sheetxml.On, WrapText: sheetxml.On}); err != nil {
		t.Fatal(err)
	}
	sheet, _ := doc.AddSheet("Sheet1")
	plain := sheetxml.Style{Bold: sheetxml.Off, Italic: sheetxml.On}
	if err := sheet.AddRow([]interface{}{1, 2}, sheetxml.WithCellStyles(&plain, nil)); err != nil {
		t.Fatal(err)
	}
	if err := sheet.AddRow([]interface{}{3}, sheetxml.WithRowStyle(sheetxml.Style{Bold: sheetxml.Off})); err != nil {
		t.Fatal(err)
	}

	layout, err := doc.Layout()
	if err != nil {
		t.Fatal(err)
	}
	rows := layout.Sheets[0].Rows

	want := sheetxml.Style{FontName: "Arial", Italic: sheetxml.On, WrapText: sheetxml.On}
	if got := layout.Styles[rows[0][0].Style]; got != want {
		t.Errorf("cell style = %+v, want %+v", got, want)
	}
	if got := layout.Styles[rows[0][1].Style]; !got.Bold.IsOn() {
		t.Errorf("default cell style = %+v, want bold", got)
	}

	notBold := sheetxml.Style{FontName: "Arial", WrapText: sheetxml.On}
	if got := layout.Styles[rows[1][0].Style]; got != notBold {
		t.Errorf("row style = %+v, want %+v", got, notBold)
	}
	if len(layout.Styles) != 3 {
		t.Errorf("len(Styles) = %d, want 3", len(layout.Styles))
	}
}

func TestLayout_FlagOffWithoutDefault(t *testing.T) {
	doc := sheetxml.New("tester", nil)
	sheet, _ := doc.AddSheet("Sheet1")
	if err := sheet.AddRow([]interface{}{1}, sheetxml.WithRowStyle(sheetxml.Style{Bold: sheetxml.Off})); err != nil {
		t.Fatal(err)
	}

	layout, err := doc.Layout()
	if err != nil {
		t.Fatal(err)
	}
	if cell := layout.Sheets[0].Rows[0][0]; cell.HasStyle() || len(layout.Styles) != 0 {
		t.Errorf("cell = %+v, styles = %v, want no style", cell, layout.Styles)
	}
}

func TestLayout_ShortColorsShareStyle(t *testing.T) {
	doc := sheetxml.New("tester", nil)
	sheet, _ := doc.AddSheet("Sheet1")
	if err := sheet.AddRow([]interface{}{1, 2}, sheetxml.WithCellStyles(
		&sheetxml.Style{FontColor: "#abc"},
		&sheetxml.Style{FontColor: "#AABBCC"},
	)); err != nil {
		t.Fatal(err)
	}

	layout, err := doc.Layout()
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Styles) != 1 || layout.Styles[0].FontColor != "#AABBCC" {
		t.Errorf("Styles = %+v, want one style with #AABBCC", layout.Styles)
	}
}

func TestLayout_NoStyles(t *testing.T) {
	doc := sheetxml.New("tester", nil)
	sheet, _ := doc.AddSheet("Sheet1")
	if err := sheet.AddRow([]interface{}{1, "hello"}); err != nil {
		t.Fatal(err)
	}

	layout, err := doc.Layout()
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Styles) != 0 {
		t.Errorf("len(Styles) = %d, want 0", len(layout.Styles))
	}
	for _, cell := range layout.Sheets[0].Rows[0] {
		if cell.HasStyle() {
			t.Errorf("cell %v has style %d", cell.Value, cell.Style)
		}
	}
}

func TestLayout_StyleDedup(t *testing.T) {
	doc := sheetxml.New("tester", nil)
	bold := sheetxml.Style{Bold: sheetxml.On, FontColor: "ff0000"}

	a, _ := doc.AddSheet("A")
	b, _ := doc.AddSheet("B")
	if err := a.AddRow([]interface{}{1}, sheetxml.WithRowStyle(bold)); err != nil {
		t.Fatal(err)
	}
	// same style once colors are normalized
	if err := b.AddRow([]interface{}{2}, sheetxml.WithCellStyles(&sheetxml.Style{Bold: sheetxml.On, FontColor: "#FF0000"})); err != nil {
		t.Fatal(err)
	}

	layout, err := doc.Layout()
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Styles) != 1 {
		t.Fatalf("len(Styles) = %d, want 1", len(layout.Styles))
	}
	if layout.Sheets[0].Rows[0][0].Style != 0 || layout.Sheets[1].Rows[0][0].Style != 0 {
		t.Error("cells don't share style 0")
	}
	if id := sheetxml.StyleID(0); id != "s21" {
		t.Errorf("StyleID(0) = %q, want s21", id)
	}
}

func TestLayout_Configuration(t *testing.T) {
	doc := sheetxml.New("tester", nil)
	sheet, _ := doc.AddSheet("Sheet1")
	link := sheetxml.CellConfig{HRef: " https://example.com ", ScreenTip: "go"}
	if err := sheet.AddRow([]interface{}{"a", "b"}, sheetxml.WithRowConfig(link)); err != nil {
		t.Fatal(err)
	}
	if err := sheet.AddRow([]interface{}{"c", "d"}, sheetxml.WithCellConfigs(nil, &sheetxml.CellConfig{Formula: "RC[-1]"})); err != nil {
		t.Fatal(err)
	}

	layout, err := doc.Layout()
	if err != nil {
		t.Fatal(err)
	}
	rows := layout.Sheets[0].Rows
	for c := 0; c < 2; c++ {
		if rows[0][c].Config.HRef != "https://example.com" {
			t.Errorf("row 0 cell %d HRef = %q", c, rows[0][c].Config.HRef)
		}
	}
	if !rows[1][0].Config.IsZero() {
		t.Errorf("row 1 cell 0 config = %+v, want zero", rows[1][0].Config)
	}
	if rows[1][1].Config.Formula != "=RC[-1]" {
		t.Errorf("row 1 cell 1 formula = %q, want =RC[-1]", rows[1][1].Config.Formula)
	}
}

func TestLayout_ColumnsAndOptions(t *testing.T) {
	doc := sheetxml.New("tester", nil)
	if err := doc.SetColumnSize(40, 60); err != nil {
		t.Fatal(err)
	}
	if err := doc.SetSheetOptions(sheetxml.SheetOptions{Zoom: 80}); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.AddSheet("Shared"); err != nil {
		t.Fatal(err)
	}
	own, _ := doc.AddSheet("Own")
	if err := own.SetColumnSize(100); err != nil {
		t.Fatal(err)
	}

	layout, err := doc.Layout()
	if err != nil {
		t.Fatal(err)
	}
	if got := layout.Sheets[0].Columns; !reflect.DeepEqual(got, []float64{40, 60}) {
		t.Errorf("Shared columns = %v", got)
	}
	if got := layout.Sheets[1].Columns; !reflect.DeepEqual(got, []float64{100}) {
		t.Errorf("Own columns = %v", got)
	}
	if opts := layout.Sheets[1].Options; opts == nil || opts.Zoom != 80 {
		t.Errorf("Options = %+v, want Zoom 80", opts)
	}

	// the layout is detached from the document
	layout.Sheets[0].Columns[0] = 1
	layout.Sheets[0].Options.Zoom = 1
	if doc.ColumnSize()[0] != 40 {
		t.Error("layout columns alias the document")
	}
	if opts, _ := doc.SheetOptions(); opts.Zoom != 80 {
		t.Error("layout options alias the document")
	}
}

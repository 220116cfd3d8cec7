package sheetxml_test

import (
	"errors"
	"reflect"
	"testing"

	sheetxml "github.com/ideamans/go-sheetxml"
)

func newSheet(t *testing.T) *sheetxml.Sheet {
	t.Helper()
	doc := sheetxml.New("tester", nil)
	sheet, err := doc.AddSheet("Sheet1")
	if err != nil {
		t.Fatalf("AddSheet() error = %v", err)
	}
	return sheet
}

func TestSheet_AddRow(t *testing.T) {
	bold := sheetxml.Style{Bold: sheetxml.On}

	tests := []struct {
		name    string
		entries []interface{}
		opts    []sheetxml.RowOption
		wantErr error
	}{
		{name: "plain", entries: []interface{}{1, "a", nil}},
		{name: "empty row", entries: []interface{}{}},
		{name: "row style", entries: []interface{}{1, 2}, opts: []sheetxml.RowOption{sheetxml.WithRowStyle(bold)}},
		{name: "legacy single style", entries: []interface{}{1, 2, 3}, opts: []sheetxml.RowOption{sheetxml.WithFormatting(bold)}},
		{name: "legacy per cell", entries: []interface{}{1, 2}, opts: []sheetxml.RowOption{sheetxml.WithFormatting(bold, sheetxml.Style{})}},
		{name: "cell styles", entries: []interface{}{1, 2}, opts: []sheetxml.RowOption{sheetxml.WithCellStyles(&bold, nil)}},
		{name: "style and config", entries: []interface{}{1}, opts: []sheetxml.RowOption{
			sheetxml.WithRowStyle(bold),
			sheetxml.WithRowConfig(sheetxml.CellConfig{HRef: "https://example.com"}),
		}},
		{
			name:    "formatting length mismatch",
			entries: []interface{}{1, 2, 3},
			opts:    []sheetxml.RowOption{sheetxml.WithFormatting(bold, bold)},
			wantErr: sheetxml.ErrInvalidArgument,
		},
		{
			name:    "cell styles length mismatch",
			entries: []interface{}{1, 2, 3},
			opts:    []sheetxml.RowOption{sheetxml.WithCellStyles(&bold)},
			wantErr: sheetxml.ErrInvalidArgument,
		},
		{
			name:    "configuration length mismatch",
			entries: []interface{}{1, 2, 3},
			opts:    []sheetxml.RowOption{sheetxml.WithConfigurations(sheetxml.CellConfig{}, sheetxml.CellConfig{})},
			wantErr: sheetxml.ErrInvalidArgument,
		},
		{
			name:    "formatting twice",
			entries: []interface{}{1},
			opts:    []sheetxml.RowOption{sheetxml.WithRowStyle(bold), sheetxml.WithRowStyle(bold)},
			wantErr: sheetxml.ErrInvalidArgument,
		},
		{
			name:    "invalid style",
			entries: []interface{}{1},
			opts:    []sheetxml.RowOption{sheetxml.WithRowStyle(sheetxml.Style{FontColor: "nope"})},
			wantErr: sheetxml.ErrInvalidArgument,
		},
		{
			name:    "negative merge",
			entries: []interface{}{1},
			opts:    []sheetxml.RowOption{sheetxml.WithRowConfig(sheetxml.CellConfig{MergeDown: -1})},
			wantErr: sheetxml.ErrInvalidArgument,
		},
		{name: "unsupported entry", entries: []interface{}{map[string]int{}}, wantErr: sheetxml.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := newSheet(t)
			err := sheet.AddRow(tt.entries, tt.opts...)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("AddRow() error = %v, want %v", err, tt.wantErr)
				}
				if sheet.Len() != 0 {
					t.Errorf("Len() = %d after failed AddRow, want 0", sheet.Len())
				}
				return
			}
			if err != nil {
				t.Fatalf("AddRow() error = %v", err)
			}
			if sheet.Len() != 1 {
				t.Errorf("Len() = %d, want 1", sheet.Len())
			}
			row, _ := sheet.Row(0)
			if len(row) != len(tt.entries) {
				t.Errorf("Row(0) has %d cells, want %d", len(row), len(tt.entries))
			}
		})
	}
}

func TestSheet_FormattingAlignment(t *testing.T) {
	sheet := newSheet(t)
	bold := sheetxml.Style{Bold: sheetxml.On}

	if err := sheet.AddRow([]interface{}{1}); err != nil {
		t.Fatal(err)
	}
	if err := sheet.AddRow([]interface{}{2, 3}, sheetxml.WithRowStyle(bold)); err != nil {
		t.Fatal(err)
	}
	if err := sheet.AddRow([]interface{}{4, 5}, sheetxml.WithCellConfigs(nil, &sheetxml.CellConfig{Comment: "c"})); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < sheet.Len(); i++ {
		if _, err := sheet.Formatting(i); err != nil {
			t.Errorf("Formatting(%d) error = %v", i, err)
		}
		if _, err := sheet.Configuration(i); err != nil {
			t.Errorf("Configuration(%d) error = %v", i, err)
		}
	}

	f0, _ := sheet.Formatting(0)
	if !f0.IsEmpty() {
		t.Errorf("Formatting(0) = %+v, want empty", f0)
	}
	f1, _ := sheet.Formatting(1)
	if s, ok := f1.Row(); !ok || s != bold {
		t.Errorf("Formatting(1).Row() = %+v, %v, want bold", s, ok)
	}
	c2, _ := sheet.Configuration(2)
	if cells, ok := c2.Cells(); !ok || cells[0] != nil || cells[1].Comment != "c" {
		t.Errorf("Configuration(2).Cells() = %v, %v", cells, ok)
	}
}

func TestSheet_ReplaceRow(t *testing.T) {
	sheet := newSheet(t)
	bold := sheetxml.Style{Bold: sheetxml.On}
	if err := sheet.AddRow([]interface{}{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := sheet.AddRow([]interface{}{3, 4}, sheetxml.WithCellStyles(&bold, nil)); err != nil {
		t.Fatal(err)
	}

	if err := sheet.ReplaceRow(0, []interface{}{"x", "y", "z"}); err != nil {
		t.Fatalf("ReplaceRow(0) error = %v", err)
	}
	row, _ := sheet.Row(0)
	want := []sheetxml.Value{sheetxml.Text("x"), sheetxml.Text("y"), sheetxml.Text("z")}
	if !reflect.DeepEqual(row, want) {
		t.Errorf("Row(0) = %v, want %v", row, want)
	}

	if err := sheet.ReplaceRow(1, []interface{}{5}); !errors.Is(err, sheetxml.ErrInvalidArgument) {
		t.Errorf("ReplaceRow(1) with fewer cells error = %v, want ErrInvalidArgument", err)
	}
	if err := sheet.ReplaceRow(1, []interface{}{5, 6}); err != nil {
		t.Errorf("ReplaceRow(1) error = %v", err)
	}
	f1, _ := sheet.Formatting(1)
	if cells, ok := f1.Cells(); !ok || cells[0] == nil || !cells[0].Bold.IsOn() {
		t.Errorf("Formatting(1) lost after ReplaceRow: %v", cells)
	}
	if sheet.Len() != 2 {
		t.Errorf("Len() = %d, want 2", sheet.Len())
	}
}

func TestSheet_DeleteRow(t *testing.T) {
	sheet := newSheet(t)
	for _, entries := range [][]interface{}{{1, "a"}, {2, "b"}, {3, "c"}} {
		if err := sheet.AddRow(entries, sheetxml.WithRowStyle(sheetxml.Style{Italic: sheetxml.On})); err != nil {
			t.Fatal(err)
		}
	}

	if err := sheet.DeleteRow(1); err != nil {
		t.Fatalf("DeleteRow(1) error = %v", err)
	}
	if sheet.Len() != 3 {
		t.Errorf("Len() = %d after delete, want 3", sheet.Len())
	}

	row, _ := sheet.Row(1)
	if len(row) != 2 {
		t.Fatalf("Row(1) has %d cells, want 2", len(row))
	}
	for i, v := range row {
		if !v.IsEmpty() {
			t.Errorf("Row(1)[%d] = %v, want empty", i, v)
		}
	}

	row, _ = sheet.Row(2)
	if row[1].String() != "c" {
		t.Errorf("Row(2)[1] = %v, want c", row[1])
	}
	if f, _ := sheet.Formatting(1); f.IsEmpty() {
		t.Error("Formatting(1) cleared by DeleteRow")
	}
}

func TestSheet_IndexBoundaries(t *testing.T) {
	sheet := newSheet(t)
	if err := sheet.AddRow([]interface{}{1}); err != nil {
		t.Fatal(err)
	}

	for _, index := range []int{-1, 1, 100} {
		if err := sheet.ReplaceRow(index, []interface{}{2}); !errors.Is(err, sheetxml.ErrOutOfRange) {
			t.Errorf("ReplaceRow(%d) error = %v, want ErrOutOfRange", index, err)
		}
		if err := sheet.DeleteRow(index); !errors.Is(err, sheetxml.ErrOutOfRange) {
			t.Errorf("DeleteRow(%d) error = %v, want ErrOutOfRange", index, err)
		}
		if _, err := sheet.Row(index); !errors.Is(err, sheetxml.ErrOutOfRange) {
			t.Errorf("Row(%d) error = %v, want ErrOutOfRange", index, err)
		}
	}

	empty := newSheet(t)
	if err := empty.DeleteRow(0); !errors.Is(err, sheetxml.ErrOutOfRange) {
		t.Errorf("DeleteRow(0) on empty sheet error = %v, want ErrOutOfRange", err)
	}
}

func TestSheet_RowIsCopy(t *testing.T) {
	sheet := newSheet(t)
	if err := sheet.AddRow([]interface{}{1}); err != nil {
		t.Fatal(err)
	}
	row, _ := sheet.Row(0)
	row[0] = sheetxml.Text("changed")

	again, _ := sheet.Row(0)
	if again[0].Kind() != sheetxml.KindNumber {
		t.Errorf("Row(0)[0] = %v, want unchanged number", again[0])
	}
}

func TestSheet_SetColumnSize(t *testing.T) {
	sheet := newSheet(t)
	if err := sheet.SetColumnSize(10, 0, 30); err != nil {
		t.Fatalf("SetColumnSize() error = %v", err)
	}
	if got := sheet.ColumnSize(); !reflect.DeepEqual(got, []float64{10, 0, 30}) {
		t.Errorf("ColumnSize() = %v", got)
	}
	if err := sheet.SetColumnSize(-5); !errors.Is(err, sheetxml.ErrInvalidArgument) {
		t.Errorf("SetColumnSize(-5) error = %v, want ErrInvalidArgument", err)
	}
	if err := sheet.SetColumnSize(); err != nil || sheet.ColumnSize() != nil {
		t.Errorf("SetColumnSize() reset = %v, %v", sheet.ColumnSize(), err)
	}
}

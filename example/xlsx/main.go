package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/stdr"

	sheetxml "github.com/ideamans/go-sheetxml"
	"github.com/ideamans/go-sheetxml/adapters/xlsx"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	doc := sheetxml.New("Inventory", &sheetxml.Config{Logger: logger})
	if err := doc.SetSheetOptions(sheetxml.SheetOptions{Zoom: 125}); err != nil {
		return err
	}

	sheet, err := doc.AddSheet("Stock")
	if err != nil {
		return err
	}
	if err := sheet.SetColumnSize(150, 60); err != nil {
		return err
	}

	if err := sheet.AddRow([]interface{}{"Item", "Count"}, sheetxml.WithRowStyle(sheetxml.Style{
		Bold:       sheetxml.On,
		Horizontal: sheetxml.HAlignCenter,
		Borders:    sheetxml.BorderAll,
	})); err != nil {
		return err
	}

	items := []struct {
		name  string
		count int
		url   string
	}{
		{"Widget", 12, "https://example.com/widget"},
		{"Gadget", 0, "https://example.com/gadget"},
	}
	for _, it := range items {
		opts := []sheetxml.RowOption{
			sheetxml.WithCellConfigs(&sheetxml.CellConfig{HRef: it.url, ScreenTip: "Product page"}, nil),
		}
		if it.count == 0 {
			opts = append(opts, sheetxml.WithRowStyle(sheetxml.Style{FontColor: "#C00000"}))
		}
		if err := sheet.AddRow([]interface{}{it.name, it.count}, opts...); err != nil {
			return err
		}
	}

	exporter, err := xlsx.New(&xlsx.Config{FilePath: "out/inventory.xlsx"})
	if err != nil {
		return err
	}
	if err := doc.Export(context.Background(), exporter.WithLogger(logger)); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	fmt.Println("Wrote out/inventory.xlsx")
	return nil
}

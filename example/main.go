package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/stdr"

	sheetxml "github.com/ideamans/go-sheetxml"
	"github.com/ideamans/go-sheetxml/adapters/googlesheets"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	stdr.SetVerbosity(1)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	doc := sheetxml.New("Sales team", &sheetxml.Config{Logger: logger, Indent: true})
	if err := doc.SetDefaultFontStyle(sheetxml.Style{FontName: "Calibri", FontSize: 11}); err != nil {
		return err
	}
	if err := doc.SetColumnSize(120, 80, 80); err != nil {
		return err
	}

	sheet, err := doc.AddSheet("Q1")
	if err != nil {
		return err
	}

	header := sheetxml.Style{Bold: sheetxml.On, BackgroundColor: "#DDEBF7", Borders: sheetxml.BorderBottom}
	if err := sheet.AddRow([]interface{}{"Region", "Units", "Revenue"}, sheetxml.WithRowStyle(header)); err != nil {
		return fmt.Errorf("failed to add header: %w", err)
	}

	money := sheetxml.Style{FixedDecimal: sheetxml.On}
	data := [][]interface{}{
		{"North", 120, 4800.5},
		{"South", 95, 3610},
		{"West", 143, 5577.25},
	}
	for _, entries := range data {
		if err := sheet.AddRow(entries, sheetxml.WithCellStyles(nil, nil, &money)); err != nil {
			return fmt.Errorf("failed to add row: %w", err)
		}
	}

	total := sheetxml.CellConfig{Formula: "SUM(R[-3]C:R[-1]C)"}
	if err := sheet.AddRow([]interface{}{"Total", nil, nil},
		sheetxml.WithCellStyles(&sheetxml.Style{Bold: sheetxml.On}, nil, &money),
		sheetxml.WithCellConfigs(nil, &total, &total),
	); err != nil {
		return fmt.Errorf("failed to add totals: %w", err)
	}

	if err := doc.WriteSheetToFileInPath("sales.xml", "out"); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	fmt.Println("Wrote out/sales.xml")

	// Publishing to Google Sheets needs a service account with edit access
	spreadsheetID := os.Getenv("SPREADSHEET_ID")
	if spreadsheetID == "" {
		return nil
	}

	publisher, err := googlesheets.NewWithJSONKeyFile(ctx, googlesheets.Config{
		SpreadsheetID: spreadsheetID,
		ClearSheets:   true,
	}, "./service-account.json")
	if err != nil {
		return fmt.Errorf("failed to create publisher: %w", err)
	}

	if err := doc.Export(ctx, publisher.WithLogger(logger)); err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}
	fmt.Println("Published to spreadsheet", spreadsheetID)
	return nil
}

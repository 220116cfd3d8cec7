package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sheetxml "github.com/ideamans/go-sheetxml"
)

func newValidateCommand() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate <workbook.yaml>",
		Short: "Check a workbook description without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0], &sheetxml.Config{Logger: newLogger(), StrictSheetNames: strict})
			if err != nil {
				return err
			}
			layout, err := doc.Layout()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range layout.Sheets {
				fmt.Fprintf(out, "%s: %d rows\n", s.Name, len(s.Rows))
			}
			fmt.Fprintf(out, "%d sheets, %d styles\n", len(layout.Sheets), len(layout.Styles))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject empty and duplicate sheet names")
	return cmd
}

package main

import (
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"
)

var verbosity int

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheetxml",
		Short: "Build spreadsheets from YAML workbook descriptions",
		Long: `Build SpreadsheetML 2003 documents from YAML workbook descriptions.

Commands:
  build     Write the workbook as SpreadsheetML, and optionally as .xlsx
  validate  Check a description and report its sheets and styles

Examples:
  sheetxml build report.yaml -o report.xml
  sheetxml build report.yaml --xlsx report.xlsx
  sheetxml validate report.yaml`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().IntVarP(&verbosity, "verbose", "v", 0, "Log verbosity (0 warnings only, 1 debug traces)")

	cmd.AddCommand(newBuildCommand())
	cmd.AddCommand(newValidateCommand())
	return cmd
}

func newLogger() logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.New(log.New(os.Stderr, "sheetxml: ", 0))
}

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	sheetxml "github.com/ideamans/go-sheetxml"
	"github.com/ideamans/go-sheetxml/adapters/xlsx"
	"github.com/ideamans/go-sheetxml/internal/template"
)

type buildOptions struct {
	output string
	xlsx   string
	indent bool
	strict bool
}

func newBuildCommand() *cobra.Command {
	opts := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build <workbook.yaml>",
		Short: "Write a workbook description as SpreadsheetML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "SpreadsheetML output path (default: input name with .xml)")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "Also write an .xlsx file to this path")
	cmd.Flags().BoolVar(&opts.indent, "indent", false, "Pretty-print the generated XML")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Reject empty and duplicate sheet names")
	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, input string, opts *buildOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger()

	doc, err := loadDocument(input, &sheetxml.Config{
		Logger:           logger,
		Indent:           opts.indent,
		StrictSheetNames: opts.strict,
	})
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".xml"
	}
	if err := doc.WriteSheetToFile(output); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)

	if opts.xlsx != "" {
		exporter, err := xlsx.New(&xlsx.Config{FilePath: opts.xlsx})
		if err != nil {
			return err
		}
		if err := doc.Export(ctx, exporter.WithLogger(logger)); err != nil {
			return fmt.Errorf("writing %s: %w", opts.xlsx, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.xlsx)
	}
	return nil
}

func loadDocument(path string, config *sheetxml.Config) (*sheetxml.Document, error) {
	wb, err := template.Load(path)
	if err != nil {
		return nil, err
	}
	doc, err := wb.Document(config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

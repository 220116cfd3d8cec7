// Package template loads YAML workbook descriptions and turns them into
// sheetxml documents.
package template

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	sheetxml "github.com/ideamans/go-sheetxml"
)

// Workbook is the root of a YAML workbook description
type Workbook struct {
	Author       string                    `yaml:"author"`
	DefaultStyle *StyleTemplate            `yaml:"default_style,omitempty"`
	Styles       map[string]*StyleTemplate `yaml:"styles,omitempty"`
	Columns      []float64                 `yaml:"columns,omitempty"`
	Options      *OptionsTemplate          `yaml:"options,omitempty"`
	Sheets       []SheetTemplate           `yaml:"sheets"`
}

// OptionsTemplate mirrors sheetxml.SheetOptions
type OptionsTemplate struct {
	Zoom   int    `yaml:"zoom,omitempty"`
	Custom string `yaml:"custom,omitempty"`
}

// SheetTemplate describes one worksheet
type SheetTemplate struct {
	Name    string        `yaml:"name"`
	Columns []float64     `yaml:"columns,omitempty"`
	Rows    []RowTemplate `yaml:"rows"`
}

// RowTemplate describes one row. Style and Config apply to the whole row,
// CellStyles and CellConfigs to single cells; "" and null skip a cell.
type RowTemplate struct {
	Cells       []interface{}     `yaml:"cells"`
	Style       string            `yaml:"style,omitempty"`
	CellStyles  []string          `yaml:"cell_styles,omitempty"`
	Config      *ConfigTemplate   `yaml:"config,omitempty"`
	CellConfigs []*ConfigTemplate `yaml:"cell_configs,omitempty"`
}

// StyleTemplate is the YAML form of sheetxml.Style. Flags left out inherit,
// false switches off a flag set by the default style.
type StyleTemplate struct {
	Font       string   `yaml:"font,omitempty"`
	Size       float64  `yaml:"size,omitempty"`
	Color      string   `yaml:"color,omitempty"`
	Bold       *bool    `yaml:"bold,omitempty"`
	Italic     *bool    `yaml:"italic,omitempty"`
	Underline  *bool    `yaml:"underline,omitempty"`
	Background string   `yaml:"background,omitempty"`
	Horizontal string   `yaml:"horizontal,omitempty"`
	Vertical   string   `yaml:"vertical,omitempty"`
	Wrap       *bool    `yaml:"wrap,omitempty"`
	Borders    []string `yaml:"borders,omitempty"`
	Fixed      *bool    `yaml:"fixed,omitempty"`
	Format     string   `yaml:"format,omitempty"`
}

// ConfigTemplate is the YAML form of sheetxml.CellConfig
type ConfigTemplate struct {
	HRef        string `yaml:"href,omitempty"`
	ScreenTip   string `yaml:"tip,omitempty"`
	Formula     string `yaml:"formula,omitempty"`
	MergeAcross int    `yaml:"merge_across,omitempty"`
	MergeDown   int    `yaml:"merge_down,omitempty"`
	Comment     string `yaml:"comment,omitempty"`
}

var borderNames = map[string]sheetxml.Border{
	"top":    sheetxml.BorderTop,
	"bottom": sheetxml.BorderBottom,
	"left":   sheetxml.BorderLeft,
	"right":  sheetxml.BorderRight,
	"all":    sheetxml.BorderAll,
}

// Load reads a workbook description from a YAML file
func Load(path string) (*Workbook, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a workbook description from r
func Parse(r io.Reader) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}

	var wb Workbook
	if err := yaml.Unmarshal(data, &wb); err != nil {
		return nil, fmt.Errorf("parsing YAML workbook: %w", err)
	}
	return &wb, nil
}

// Document builds a sheetxml document from the description
func (wb *Workbook) Document(config *sheetxml.Config) (*sheetxml.Document, error) {
	doc := sheetxml.New(wb.Author, config)

	if wb.DefaultStyle != nil {
		style, err := wb.DefaultStyle.Style()
		if err != nil {
			return nil, fmt.Errorf("default_style: %w", err)
		}
		if err := doc.SetDefaultFontStyle(style); err != nil {
			return nil, fmt.Errorf("default_style: %w", err)
		}
	}
	if len(wb.Columns) > 0 {
		if err := doc.SetColumnSize(wb.Columns...); err != nil {
			return nil, fmt.Errorf("columns: %w", err)
		}
	}
	if wb.Options != nil {
		if err := doc.SetSheetOptions(sheetxml.SheetOptions{Zoom: wb.Options.Zoom, Custom: wb.Options.Custom}); err != nil {
			return nil, fmt.Errorf("options: %w", err)
		}
	}

	styles := make(map[string]sheetxml.Style, len(wb.Styles))
	for name, st := range wb.Styles {
		style, err := st.Style()
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
		styles[name] = style
	}

	for i, st := range wb.Sheets {
		sheet, err := doc.AddSheet(st.Name)
		if err != nil {
			return nil, fmt.Errorf("sheet[%d]: %w", i, err)
		}
		if len(st.Columns) > 0 {
			if err := sheet.SetColumnSize(st.Columns...); err != nil {
				return nil, fmt.Errorf("sheet[%d] %q columns: %w", i, st.Name, err)
			}
		}
		for j, rt := range st.Rows {
			opts, err := rt.options(styles)
			if err != nil {
				return nil, fmt.Errorf("sheet[%d] %q row[%d]: %w", i, st.Name, j, err)
			}
			if err := sheet.AddRow(rt.Cells, opts...); err != nil {
				return nil, fmt.Errorf("sheet[%d] %q row[%d]: %w", i, st.Name, j, err)
			}
		}
	}
	return doc, nil
}

func (rt RowTemplate) options(styles map[string]sheetxml.Style) ([]sheetxml.RowOption, error) {
	lookup := func(name string) (sheetxml.Style, error) {
		style, ok := styles[name]
		if !ok {
			return sheetxml.Style{}, fmt.Errorf("unknown style %q", name)
		}
		return style, nil
	}

	var opts []sheetxml.RowOption
	switch {
	case rt.Style != "" && len(rt.CellStyles) > 0:
		return nil, fmt.Errorf("style and cell_styles are exclusive")
	case rt.Style != "":
		style, err := lookup(rt.Style)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sheetxml.WithRowStyle(style))
	case len(rt.CellStyles) > 0:
		cells := make([]*sheetxml.Style, len(rt.CellStyles))
		for i, name := range rt.CellStyles {
			if name == "" {
				continue
			}
			style, err := lookup(name)
			if err != nil {
				return nil, err
			}
			cells[i] = &style
		}
		opts = append(opts, sheetxml.WithCellStyles(cells...))
	}

	switch {
	case rt.Config != nil && len(rt.CellConfigs) > 0:
		return nil, fmt.Errorf("config and cell_configs are exclusive")
	case rt.Config != nil:
		opts = append(opts, sheetxml.WithRowConfig(rt.Config.CellConfig()))
	case len(rt.CellConfigs) > 0:
		cells := make([]*sheetxml.CellConfig, len(rt.CellConfigs))
		for i, ct := range rt.CellConfigs {
			if ct != nil {
				c := ct.CellConfig()
				cells[i] = &c
			}
		}
		opts = append(opts, sheetxml.WithCellConfigs(cells...))
	}
	return opts, nil
}

// Style converts the template into a sheetxml.Style
func (st *StyleTemplate) Style() (sheetxml.Style, error) {
	s := sheetxml.Style{
		FontName:        st.Font,
		FontSize:        st.Size,
		FontColor:       st.Color,
		Bold:            flag(st.Bold),
		Italic:          flag(st.Italic),
		Underline:       flag(st.Underline),
		BackgroundColor: st.Background,
		Horizontal:      sheetxml.HAlign(titleCase(st.Horizontal)),
		Vertical:        sheetxml.VAlign(titleCase(st.Vertical)),
		WrapText:        flag(st.Wrap),
		FixedDecimal:    flag(st.Fixed),
		NumberFormat:    st.Format,
	}
	for _, name := range st.Borders {
		b, ok := borderNames[strings.ToLower(name)]
		if !ok {
			return sheetxml.Style{}, fmt.Errorf("unknown border %q", name)
		}
		s.Borders |= b
	}
	return s, nil
}

// CellConfig converts the template into a sheetxml.CellConfig
func (ct *ConfigTemplate) CellConfig() sheetxml.CellConfig {
	return sheetxml.CellConfig{
		HRef:        ct.HRef,
		ScreenTip:   ct.ScreenTip,
		Formula:     ct.Formula,
		MergeAcross: ct.MergeAcross,
		MergeDown:   ct.MergeDown,
		Comment:     ct.Comment,
	}
}

func flag(b *bool) sheetxml.Flag {
	if b == nil {
		return sheetxml.Unset
	}
	return sheetxml.FlagOf(*b)
}

// titleCase turns "left" into "Left" so YAML can use lower case alignments
func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

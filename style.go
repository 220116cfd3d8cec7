package sheetxml

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HAlign is the horizontal alignment of a cell
type HAlign string

const (
	HAlignAutomatic HAlign = "Automatic"
	HAlignLeft      HAlign = "Left"
	HAlignCenter    HAlign = "Center"
	HAlignRight     HAlign = "Right"
)

// VAlign is the vertical alignment of a cell
type VAlign string

const (
	VAlignAutomatic VAlign = "Automatic"
	VAlignTop       VAlign = "Top"
	VAlignCenter    VAlign = "Center"
	VAlignBottom    VAlign = "Bottom"
)

// Border is a set of cell edges that get a continuous line
type Border uint8

const (
	BorderTop Border = 1 << iota
	BorderBottom
	BorderLeft
	BorderRight

	BorderAll = BorderTop | BorderBottom | BorderLeft | BorderRight
)

// Has reports whether every edge of e is set in b
func (b Border) Has(e Border) bool { return b&e == e }

// Positions returns the SpreadsheetML position names of the set edges
// in the order spreadsheet applications write them.
func (b Border) Positions() []string {
	var out []string
	for _, p := range []struct {
		edge Border
		name string
	}{
		{BorderLeft, "Left"},
		{BorderTop, "Top"},
		{BorderRight, "Right"},
		{BorderBottom, "Bottom"},
	} {
		if b.Has(p.edge) {
			out = append(out, p.name)
		}
	}
	return out
}

// Flag is a style switch that can be left unset. The zero value inherits
// the setting of the style underneath, Off overrides it.
type Flag uint8

const (
	Unset Flag = iota
	On
	Off
)

// IsOn reports whether the flag is switched on
func (f Flag) IsOn() bool { return f == On }

// FlagOf returns On for true and Off for false
func FlagOf(b bool) Flag {
	if b {
		return On
	}
	return Off
}

// FixedFormat is the named number format used for FixedDecimal styles
const FixedFormat = "Fixed"

// Style describes the formatting of a cell. The zero value of every
// field means "not set", so a Style can be layered over another one.
// Colors are #RRGGBB; #RGB and a missing # are accepted and expanded.
type Style struct {
	FontName        string
	FontSize        float64 `validate:"gte=0,lte=409"`
	FontColor       string  `validate:"omitempty,len=7,hexcolor"`
	Bold            Flag    `validate:"lte=2"`
	Italic          Flag    `validate:"lte=2"`
	Underline       Flag    `validate:"lte=2"`
	BackgroundColor string  `validate:"omitempty,len=7,hexcolor"`
	Horizontal      HAlign  `validate:"omitempty,oneof=Automatic Left Center Right"`
	Vertical        VAlign  `validate:"omitempty,oneof=Automatic Top Center Bottom"`
	WrapText        Flag    `validate:"lte=2"`
	Borders         Border  `validate:"lte=15"`
	FixedDecimal    Flag    `validate:"lte=2"`
	NumberFormat    string  // raw format string, takes precedence over FixedDecimal
}

var validate = validator.New()

// IsZero reports whether no field of the style is set
func (s Style) IsZero() bool {
	return s == Style{}
}

// Merge returns s with every field set in over applied on top of it.
// Border edges accumulate.
func (s Style) Merge(over Style) Style {
	out := s
	if over.FontName != "" {
		out.FontName = over.FontName
	}
	if over.FontSize != 0 {
		out.FontSize = over.FontSize
	}
	if over.FontColor != "" {
		out.FontColor = over.FontColor
	}
	if over.BackgroundColor != "" {
		out.BackgroundColor = over.BackgroundColor
	}
	if over.Horizontal != "" {
		out.Horizontal = over.Horizontal
	}
	if over.Vertical != "" {
		out.Vertical = over.Vertical
	}
	if over.NumberFormat != "" {
		out.NumberFormat = over.NumberFormat
	}
	out.Bold = out.Bold.merge(over.Bold)
	out.Italic = out.Italic.merge(over.Italic)
	out.Underline = out.Underline.merge(over.Underline)
	out.WrapText = out.WrapText.merge(over.WrapText)
	out.FixedDecimal = out.FixedDecimal.merge(over.FixedDecimal)
	out.Borders |= over.Borders
	return out
}

func (f Flag) merge(over Flag) Flag {
	if over != Unset {
		return over
	}
	return f
}

// resolved drops switched-off flags so that a style with Bold: Off renders
// and deduplicates like one that never set it.
func (s Style) resolved() Style {
	for _, f := range []*Flag{&s.Bold, &s.Italic, &s.Underline, &s.WrapText, &s.FixedDecimal} {
		if *f == Off {
			*f = Unset
		}
	}
	return s
}

// Format returns the number format written for the style, or "" for none
func (s Style) Format() string {
	if s.NumberFormat != "" {
		return s.NumberFormat
	}
	if s.FixedDecimal.IsOn() {
		return FixedFormat
	}
	return ""
}

// normalize canonicalises colors so equal styles compare equal, then validates
func (s Style) normalize() (Style, error) {
	s.FontColor = normalizeColor(s.FontColor)
	s.BackgroundColor = normalizeColor(s.BackgroundColor)
	if err := validate.Struct(s); err != nil {
		return Style{}, fmt.Errorf("%w: style: %v", ErrInvalidArgument, err)
	}
	return s, nil
}

func normalizeColor(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return ""
	}
	c = strings.ToUpper(strings.TrimPrefix(c, "#"))
	if len(c) == 3 {
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	}
	return "#" + c
}

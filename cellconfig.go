package sheetxml

import (
	"fmt"
	"strings"
)

// CellConfig carries per-cell directives that are not formatting.
// The zero value of every field means "not set".
type CellConfig struct {
	HRef        string // hyperlink target
	ScreenTip   string // tooltip shown for the hyperlink
	Formula     string // R1C1 formula, e.g. "=SUM(R[-2]C:R[-1]C)"
	MergeAcross int    `validate:"gte=0"`
	MergeDown   int    `validate:"gte=0"`
	Comment     string
}

// IsZero reports whether no directive is set
func (c CellConfig) IsZero() bool {
	return c == CellConfig{}
}

func (c CellConfig) normalize() (CellConfig, error) {
	c.HRef = strings.TrimSpace(c.HRef)
	if c.Formula != "" && !strings.HasPrefix(c.Formula, "=") {
		c.Formula = "=" + c.Formula
	}
	if err := validate.Struct(c); err != nil {
		return CellConfig{}, fmt.Errorf("%w: cell config: %v", ErrInvalidArgument, err)
	}
	return c, nil
}

// SheetOptions are worksheet display settings
type SheetOptions struct {
	Zoom   int    `validate:"omitempty,min=10,max=400"` // percent; 0 leaves the application default
	Custom string // raw XML inserted verbatim into the worksheet options block
}

// IsZero reports whether the options would produce no markup
func (o SheetOptions) IsZero() bool {
	return o.Zoom == 0 && strings.TrimSpace(o.Custom) == ""
}

func (o SheetOptions) check() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: sheet options: %v", ErrInvalidArgument, err)
	}
	return nil
}

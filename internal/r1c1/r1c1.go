// Package r1c1 rewrites R1C1-style cell references into A1 notation.
package r1c1

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// r1c1Ref matches a single-cell R1C1 reference: RC, R2C3, R[-1]C, RC[2], ...
// The last group catches names that only start like a reference.
var r1c1Ref = regexp.MustCompile(`\bR(\[-?\d+\]|\d+)?C(\[-?\d+\]|\d+)?(\w*)`)

// ToA1 rewrites the R1C1 cell references of formula relative to the cell
// at (row, col), both 1-based. References that would leave the sheet are
// kept as written.
func ToA1(formula string, row, col int) string {
	formula = strings.TrimPrefix(formula, "=")
	return r1c1Ref.ReplaceAllStringFunc(formula, func(ref string) string {
		m := r1c1Ref.FindStringSubmatch(ref)
		if m[3] != "" {
			return ref
		}
		r, rAbs, ok := resolvePart(m[1], row)
		if !ok {
			return ref
		}
		c, cAbs, ok := resolvePart(m[2], col)
		if !ok {
			return ref
		}
		name, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return ref
		}

		var b strings.Builder
		if cAbs {
			b.WriteByte('$')
		}
		b.WriteString(name)
		if rAbs {
			b.WriteByte('$')
		}
		b.WriteString(strconv.Itoa(r))
		return b.String()
	})
}

// resolvePart turns "", "[n]" or "n" into a 1-based index
func resolvePart(part string, current int) (index int, absolute bool, ok bool) {
	switch {
	case part == "":
		return current, false, true
	case strings.HasPrefix(part, "["):
		offset, err := strconv.Atoi(strings.Trim(part, "[]"))
		if err != nil {
			return 0, false, false
		}
		index = current + offset
	default:
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, false, false
		}
		index, absolute = n, true
	}
	return index, absolute, index >= 1
}

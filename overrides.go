package sheetxml

import "fmt"

// Overrides holds the per-row settings of one kind (formatting or
// configuration): nothing, one value for the whole row, or one optional
// value per cell.
type Overrides[T comparable] struct {
	row   *T
	cells []*T
}

// Formatting is the style override of a row
type Formatting = Overrides[Style]

// Configuration is the directive override of a row
type Configuration = Overrides[CellConfig]

// Uniform returns an override applying v to every cell of a row
func Uniform[T comparable](v T) Overrides[T] {
	return Overrides[T]{row: &v}
}

// PerCell returns an override with one entry per cell; nil entries leave
// the cell without override.
func PerCell[T comparable](cells ...*T) Overrides[T] {
	out := Overrides[T]{cells: make([]*T, len(cells))}
	for i, c := range cells {
		if c != nil {
			v := *c
			out.cells[i] = &v
		}
	}
	return out
}

// IsEmpty reports whether no override is set
func (o Overrides[T]) IsEmpty() bool {
	return o.row == nil && o.cells == nil
}

// Row returns the row-wide value if the override is uniform
func (o Overrides[T]) Row() (T, bool) {
	if o.row == nil {
		var zero T
		return zero, false
	}
	return *o.row, true
}

// Cells returns a copy of the per-cell entries if the override is per cell
func (o Overrides[T]) Cells() ([]*T, bool) {
	if o.cells == nil {
		return nil, false
	}
	out := make([]*T, len(o.cells))
	copy(out, o.cells)
	return out, true
}

// Len returns the number of per-cell entries, or 0 for empty/uniform overrides
func (o Overrides[T]) Len() int {
	return len(o.cells)
}

// at resolves the override for column col of a row with n cells.
// A per-cell entry wins over the row-wide value.
func (o Overrides[T]) at(col, n int) (*T, error) {
	if o.cells != nil {
		if len(o.cells) != n {
			return nil, fmt.Errorf("%w: %d per-cell overrides for %d cells", ErrInvariantViolation, len(o.cells), n)
		}
		if o.cells[col] != nil {
			return o.cells[col], nil
		}
	}
	return o.row, nil
}

// mapEntries returns a copy with every set entry passed through fn
func (o Overrides[T]) mapEntries(fn func(T) (T, error)) (Overrides[T], error) {
	var out Overrides[T]
	if o.row != nil {
		v, err := fn(*o.row)
		if err != nil {
			return Overrides[T]{}, err
		}
		out.row = &v
	}
	if o.cells != nil {
		out.cells = make([]*T, len(o.cells))
		for i, c := range o.cells {
			if c == nil {
				continue
			}
			v, err := fn(*c)
			if err != nil {
				return Overrides[T]{}, fmt.Errorf("cell %d: %w", i, err)
			}
			out.cells[i] = &v
		}
	}
	return out, nil
}

// Package frame provides the small column-oriented table the simulation
// engine moves between its stages: numeric and string columns keyed by name,
// with the row-aligned operations (merge suffixing, column drops, dedupe,
// concatenation) the feature transform needs.
package frame

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// Frame is a fixed-length table of named columns. A column is either numeric
// or string, never both.
type Frame struct {
	order []string
	num   map[string][]float64
	str   map[string][]string
	n     int
}

// New creates an empty frame with capacity for n rows.
func New(n int) *Frame {
	return &Frame{
		num: make(map[string][]float64),
		str: make(map[string][]string),
		n:   n,
	}
}

// Len returns the row count.
func (f *Frame) Len() int { return f.n }

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Has reports whether a column exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.num[name]
	if !ok {
		_, ok = f.str[name]
	}
	return ok
}

// IsNumeric reports whether the named column exists and is numeric.
func (f *Frame) IsNumeric(name string) bool {
	_, ok := f.num[name]
	return ok
}

// Num returns the numeric column's backing slice. Mutations are visible to
// the frame.
func (f *Frame) Num(name string) ([]float64, bool) {
	col, ok := f.num[name]
	return col, ok
}

// Str returns the string column's backing slice.
func (f *Frame) Str(name string) ([]string, bool) {
	col, ok := f.str[name]
	return col, ok
}

// SetNum adds or replaces a numeric column. The value count must match the
// frame length, and the name must not belong to an existing string column.
func (f *Frame) SetNum(name string, vals []float64) error {
	if len(vals) != f.n {
		return eris.Errorf("frame: column %s has %d values, frame has %d rows", name, len(vals), f.n)
	}
	if _, ok := f.str[name]; ok {
		return eris.Errorf("frame: column %s already exists as a string column", name)
	}
	if _, ok := f.num[name]; !ok {
		f.order = append(f.order, name)
	}
	f.num[name] = vals
	return nil
}

// SetStr adds or replaces a string column.
func (f *Frame) SetStr(name string, vals []string) error {
	if len(vals) != f.n {
		return eris.Errorf("frame: column %s has %d values, frame has %d rows", name, len(vals), f.n)
	}
	if _, ok := f.num[name]; ok {
		return eris.Errorf("frame: column %s already exists as a numeric column", name)
	}
	if _, ok := f.str[name]; !ok {
		f.order = append(f.order, name)
	}
	f.str[name] = vals
	return nil
}

// Drop removes the named columns. Missing names are ignored; the caller
// decides whether absence matters.
func (f *Frame) Drop(names ...string) {
	dropped := make(map[string]bool, len(names))
	for _, name := range names {
		if f.Has(name) {
			dropped[name] = true
			delete(f.num, name)
			delete(f.str, name)
		}
	}
	if len(dropped) == 0 {
		return
	}
	kept := f.order[:0]
	for _, name := range f.order {
		if !dropped[name] {
			kept = append(kept, name)
		}
	}
	f.order = kept
}

// Rename changes a column's name in place, preserving its position.
func (f *Frame) Rename(old, new string) error {
	if !f.Has(old) {
		return eris.Errorf("frame: rename of missing column %s", old)
	}
	if old == new {
		return nil
	}
	if f.Has(new) {
		return eris.Errorf("frame: rename target %s already exists", new)
	}
	if col, ok := f.num[old]; ok {
		f.num[new] = col
		delete(f.num, old)
	}
	if col, ok := f.str[old]; ok {
		f.str[new] = col
		delete(f.str, old)
	}
	for i, name := range f.order {
		if name == old {
			f.order[i] = new
			break
		}
	}
	return nil
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	out := New(f.n)
	out.order = make([]string, len(f.order))
	copy(out.order, f.order)
	for name, col := range f.num {
		dup := make([]float64, len(col))
		copy(dup, col)
		out.num[name] = dup
	}
	for name, col := range f.str {
		dup := make([]string, len(col))
		copy(dup, col)
		out.str[name] = dup
	}
	return out
}

// Filter returns a new frame containing only rows where keep is true.
func (f *Frame) Filter(keep []bool) (*Frame, error) {
	if len(keep) != f.n {
		return nil, eris.Errorf("frame: filter mask has %d entries, frame has %d rows", len(keep), f.n)
	}
	count := 0
	for _, k := range keep {
		if k {
			count++
		}
	}
	out := New(count)
	for _, name := range f.order {
		if col, ok := f.num[name]; ok {
			vals := make([]float64, 0, count)
			for i, k := range keep {
				if k {
					vals = append(vals, col[i])
				}
			}
			_ = out.SetNum(name, vals)
			continue
		}
		col := f.str[name]
		vals := make([]string, 0, count)
		for i, k := range keep {
			if k {
				vals = append(vals, col[i])
			}
		}
		_ = out.SetStr(name, vals)
	}
	return out, nil
}

// DedupeBy drops rows whose key columns repeat an earlier row's values,
// keeping the first occurrence. The result is densely reindexed. Key columns
// must be string columns.
func (f *Frame) DedupeBy(cols ...string) (*Frame, error) {
	keys := make([][]string, 0, len(cols))
	for _, name := range cols {
		col, ok := f.str[name]
		if !ok {
			return nil, eris.Errorf("frame: dedupe key %s is not a string column", name)
		}
		keys = append(keys, col)
	}
	seen := make(map[string]bool, f.n)
	keep := make([]bool, f.n)
	var b strings.Builder
	for i := 0; i < f.n; i++ {
		b.Reset()
		for _, col := range keys {
			b.WriteString(col[i])
			b.WriteByte(0x1f)
		}
		key := b.String()
		if !seen[key] {
			seen[key] = true
			keep[i] = true
		}
	}
	return f.Filter(keep)
}

// Concat stacks frames row-wise. Columns form the union in first-seen order;
// rows missing a numeric column are filled with NaN, a string column with "".
// A column that changes type between frames is an error.
func Concat(frames ...*Frame) (*Frame, error) {
	total := 0
	for _, f := range frames {
		total += f.n
	}
	out := New(total)

	numeric := make(map[string]bool)
	for _, f := range frames {
		for _, name := range f.order {
			isNum := f.IsNumeric(name)
			if prev, seen := numeric[name]; seen {
				if prev != isNum {
					return nil, eris.Errorf("frame: concat column %s changes type", name)
				}
				continue
			}
			numeric[name] = isNum
			out.order = append(out.order, name)
		}
	}

	for _, name := range out.order {
		if numeric[name] {
			vals := make([]float64, 0, total)
			for _, f := range frames {
				if col, ok := f.num[name]; ok {
					vals = append(vals, col...)
					continue
				}
				for i := 0; i < f.n; i++ {
					vals = append(vals, math.NaN())
				}
			}
			out.num[name] = vals
			continue
		}
		vals := make([]string, 0, total)
		for _, f := range frames {
			if col, ok := f.str[name]; ok {
				vals = append(vals, col...)
				continue
			}
			vals = append(vals, make([]string, f.n)...)
		}
		out.str[name] = vals
	}
	return out, nil
}

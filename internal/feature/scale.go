package feature

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/stat"

	"github.com/sells-group/bracket-cli/internal/frame"
)

// Scaler standardizes numeric columns (subtract mean, divide by standard
// deviation) using statistics fit once on the training partition. It is
// applied — never re-fit — to whatever partition is being transformed.
type Scaler struct {
	cols []string
	mean map[string]float64
	std  map[string]float64
}

// FitScaler computes per-column means and population standard deviations
// over the numeric columns of f, excluding the named columns. NaN entries
// (e.g. stats absent for older years) are ignored during fitting. A constant
// column gets unit scale so transforming it centers without blowing up.
func FitScaler(f *frame.Frame, exclude ...string) (*Scaler, error) {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	s := &Scaler{
		mean: make(map[string]float64),
		std:  make(map[string]float64),
	}
	for _, name := range f.Columns() {
		if skip[name] || !f.IsNumeric(name) {
			continue
		}
		col, _ := f.Num(name)
		vals := make([]float64, 0, len(col))
		for _, v := range col {
			if !math.IsNaN(v) {
				vals = append(vals, v)
			}
		}
		mean, std := 0.0, 1.0
		if len(vals) > 0 {
			mean = stat.Mean(vals, nil)
			std = stat.PopStdDev(vals, nil)
		}
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.cols = append(s.cols, name)
		s.mean[name] = mean
		s.std[name] = std
	}
	sort.Strings(s.cols)

	if len(s.cols) == 0 {
		return nil, eris.New("feature: no numeric columns to fit scaler on")
	}
	return s, nil
}

// Cols returns the fitted feature columns in sorted order.
func (s *Scaler) Cols() []string {
	out := make([]string, len(s.cols))
	copy(out, s.cols)
	return out
}

// Has reports whether the scaler was fit on the named column.
func (s *Scaler) Has(name string) bool {
	_, ok := s.mean[name]
	return ok
}

// Transform standardizes every fitted column of f in place. A fitted column
// missing from the frame is a data-integrity error: the classifier's input
// schema must match training feature-for-feature. NaN values propagate.
func (s *Scaler) Transform(f *frame.Frame) error {
	for _, name := range s.cols {
		col, ok := f.Num(name)
		if !ok {
			return eris.Errorf("feature: trained column %s missing from input", name)
		}
		mean, std := s.mean[name], s.std[name]
		for i := range col {
			col[i] = (col[i] - mean) / std
		}
	}
	return nil
}

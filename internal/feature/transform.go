// Package feature converts merged matchup tables into the numeric form the
// classifier expects, applying the exact derivations and scaling basis used
// at training time.
package feature

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/bracket-cli/internal/frame"
)

// Transformer holds everything fit on the historical corpus: the basic-stat
// column list, the conference vocabulary, and the scaler. Fit once, then
// applied to any partition.
type Transformer struct {
	// BasicCols are the cleaned basic season-stat column names, the only
	// stats eligible for per-game conversion.
	BasicCols []string
	Vocab     *ConfVocab
	Scaler    *Scaler
}

// Fit builds the conference vocabulary from the full corpus and fits the
// scaler on the training partition after running the non-scaling steps on a
// copy of it. The target column, if present, is removed before fitting.
func (t *Transformer) Fit(corpus, train *frame.Frame) error {
	var confVals [][]string
	for _, col := range []string{ColConfFavorite, ColConfUnderdog} {
		vals, ok := corpus.Str(col)
		if !ok {
			return eris.Errorf("feature: fit corpus missing %s", col)
		}
		confVals = append(confVals, vals)
	}
	t.Vocab = FitConfVocab(confVals...)

	prepped, _, err := t.engineer(train.Copy())
	if err != nil {
		return eris.Wrap(err, "feature: fit")
	}
	prepped.Drop(ColTarget)

	scaler, err := FitScaler(prepped, ColConfFavorite, ColConfUnderdog)
	if err != nil {
		return err
	}
	t.Scaler = scaler
	return nil
}

// Transform runs the full fixed-order step sequence on a copy of f and
// returns the classifier-ready frame plus the per-step report. Every step is
// idempotent on its own output.
func (t *Transformer) Transform(f *frame.Frame) (*frame.Frame, Report, error) {
	if t.Scaler == nil {
		return nil, nil, eris.New("feature: transformer not fitted")
	}

	out, report, err := t.engineer(f.Copy())
	if err != nil {
		return nil, report, err
	}

	if err := t.checkClosed(out); err != nil {
		return nil, report, err
	}
	if err := t.Scaler.Transform(out); err != nil {
		return nil, report, err
	}
	return out, report, nil
}

// engineer applies steps 1-5: round normalization, per-game averages,
// win-loss percentages, conference encoding, and underdog-relative
// differencing.
func (t *Transformer) engineer(f *frame.Frame) (*frame.Frame, Report, error) {
	var report Report

	if err := NormalizeRounds(f); err != nil {
		return nil, report, err
	}
	report = append(report, TotalsToPerGame(f, t.BasicCols))
	report = append(report, RecordsToWinPct(f))
	if err := EncodeConferences(f, t.Vocab); err != nil {
		return nil, report, err
	}
	report = append(report, UnderdogRelative(f))
	return f, report, nil
}

// checkClosed verifies the engineered frame carries exactly the features the
// scaler was fit on, plus the unscaled conference codes and optionally the
// target. Anything else reached the feature set by accident and is rejected
// rather than silently passed to the classifier.
func (t *Transformer) checkClosed(f *frame.Frame) error {
	for _, name := range f.Columns() {
		switch name {
		case ColConfFavorite, ColConfUnderdog, ColTarget:
			continue
		}
		if !f.IsNumeric(name) {
			return eris.Errorf("feature: unexpected non-numeric column %s in classifier input", name)
		}
		if !t.Scaler.Has(name) {
			return eris.Errorf("feature: column %s not part of the fitted feature set", name)
		}
	}
	return nil
}

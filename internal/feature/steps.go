package feature

import (
	"math"
	"sort"
	"strings"

	"github.com/sells-group/bracket-cli/internal/frame"
	"github.com/sells-group/bracket-cli/internal/model"
)

// StepReport records which columns a transform step touched and which it
// skipped, so features dropped by design stay distinguishable from features
// dropped by accident.
type StepReport struct {
	Step    string   `json:"step"`
	Applied []string `json:"applied,omitempty"`
	Skipped []string `json:"skipped,omitempty"`
}

// Report collects the step reports of one full transform.
type Report []StepReport

// Skipped aggregates skipped columns across all steps.
func (r Report) Skipped() []string {
	var out []string
	for _, s := range r {
		out = append(out, s.Skipped...)
	}
	return out
}

// NormalizeRounds converts a string Round column to its numeric codes. A
// numeric Round column is left alone, and an absent column is a no-op:
// pure-prediction rows may not carry a round until the driver attaches one.
func NormalizeRounds(f *frame.Frame) error {
	if f.IsNumeric(ColRound) {
		return nil
	}
	labels, ok := f.Str(ColRound)
	if !ok {
		return nil
	}
	codes := make([]float64, len(labels))
	for i, label := range labels {
		r, err := model.RoundFromLabel(label)
		if err != nil {
			return err
		}
		codes[i] = float64(r)
	}
	f.Drop(ColRound)
	return f.SetNum(ColRound, codes)
}

// perGameExcluded reports whether a basic stat stays a season-level value:
// game counts, wins, strength-of-schedule, percentages, and conference
// columns are already rate-like.
func perGameExcluded(col string) bool {
	switch col {
	case "G", "W", "SRS":
		return true
	}
	return strings.Contains(col, "%") || strings.Contains(col, "Conf")
}

// TotalsToPerGame converts season-total counting stats into per-game
// averages for both sides of each matchup, dropping the totals afterward.
// Stats already dropped upstream are skipped, which also makes a second
// application a no-op.
func TotalsToPerGame(f *frame.Frame, basicCols []string) StepReport {
	report := StepReport{Step: "totals_to_per_game"}

	for _, side := range sides {
		games, ok := f.Num("G_" + side)
		if !ok {
			report.Skipped = append(report.Skipped, "G_"+side)
			continue
		}
		for _, col := range basicCols {
			if perGameExcluded(col) {
				continue
			}
			name := col + "_" + side
			totals, ok := f.Num(name)
			if !ok {
				report.Skipped = append(report.Skipped, name)
				continue
			}
			avg := make([]float64, len(totals))
			for i := range totals {
				if games[i] == 0 {
					avg[i] = math.NaN()
					continue
				}
				// One decimal, ties to even, matching the derivation the
				// classifier was trained on.
				avg[i] = math.RoundToEven(totals[i]/games[i]*10) / 10
			}
			f.Drop(name)
			if err := f.SetNum(col+"/Game_"+side, avg); err != nil {
				report.Skipped = append(report.Skipped, name)
				continue
			}
			report.Applied = append(report.Applied, name)
		}
	}
	return report
}

// recordSplits are the win-loss splits converted to percentages.
var recordSplits = [...]string{"Conf", "Home", "Away"}

// RecordsToWinPct converts win-loss record splits into win percentages,
// dropping the loss column to break the linear dependence. A 0-0 record
// yields NaN, which the scaler propagates.
func RecordsToWinPct(f *frame.Frame) StepReport {
	report := StepReport{Step: "records_to_win_pct"}

	for _, side := range sides {
		for _, split := range recordSplits {
			wName := split + "_W_" + side
			lName := split + "_L_" + side
			wins, okW := f.Num(wName)
			losses, okL := f.Num(lName)
			if !okW || !okL {
				report.Skipped = append(report.Skipped, wName)
				continue
			}
			pct := make([]float64, len(wins))
			for i := range wins {
				total := wins[i] + losses[i]
				if total == 0 {
					pct[i] = math.NaN()
					continue
				}
				pct[i] = wins[i] / total
			}
			if err := f.SetNum(split+"_W-L%_"+side, pct); err != nil {
				report.Skipped = append(report.Skipped, wName)
				continue
			}
			f.Drop(lName)
			report.Applied = append(report.Applied, wName)
		}
	}
	return report
}

// relativeExcluded lists stems kept as paired columns: rounds and seeds are
// positional, conferences are categorical, and the target is not a feature.
func relativeExcluded(stem string) bool {
	switch stem {
	case "Round", "Seed", "Conf", "Team", "Score", ColTarget:
		return true
	}
	return false
}

// UnderdogRelative replaces each favorite/underdog column pair with a single
// signed underdog-relative column (underdog minus favorite). Stems are
// matched by exact name minus the side suffix, never by table position,
// since round-dependent columns vary.
func UnderdogRelative(f *frame.Frame) StepReport {
	report := StepReport{Step: "underdog_relative"}

	stemSet := make(map[string]bool)
	for _, col := range f.Columns() {
		if stem, ok := strings.CutSuffix(col, "_"+SideFavorite); ok {
			stemSet[stem] = true
		} else if stem, ok := strings.CutSuffix(col, "_"+SideUnderdog); ok {
			stemSet[stem] = true
		}
	}
	stems := make([]string, 0, len(stemSet))
	for stem := range stemSet {
		if !relativeExcluded(stem) {
			stems = append(stems, stem)
		}
	}
	sort.Strings(stems)

	for _, stem := range stems {
		favName := stem + "_" + SideFavorite
		undName := stem + "_" + SideUnderdog
		fav, okF := f.Num(favName)
		und, okU := f.Num(undName)
		if !okF || !okU {
			report.Skipped = append(report.Skipped, stem)
			continue
		}
		rel := make([]float64, len(fav))
		for i := range fav {
			rel[i] = und[i] - fav[i]
		}
		if err := f.SetNum("Underdog_Rel_"+stem, rel); err != nil {
			report.Skipped = append(report.Skipped, stem)
			continue
		}
		f.Drop(favName, undName)
		report.Applied = append(report.Applied, stem)
	}
	return report
}

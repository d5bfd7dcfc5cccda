package feature

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bracket-cli/internal/frame"
)

// ErrUnseenConference is returned when a prediction-time conference value was
// not part of the vocabulary the encoder was fit on. Defaulting silently
// would hand the classifier an input it was never trained on.
var ErrUnseenConference = eris.New("feature: unseen conference value")

// ConfVocab is the categorical encoding for conference names, fit once on
// the full historical corpus and shared by every partition thereafter.
type ConfVocab struct {
	classes []string
	codes   map[string]float64
}

// FitConfVocab builds a vocabulary from every conference value observed in
// the corpus. Codes are assigned in sorted class order.
func FitConfVocab(values ...[]string) *ConfVocab {
	set := make(map[string]bool)
	for _, vals := range values {
		for _, v := range vals {
			set[v] = true
		}
	}
	classes := make([]string, 0, len(set))
	for v := range set {
		classes = append(classes, v)
	}
	sort.Strings(classes)

	codes := make(map[string]float64, len(classes))
	for i, c := range classes {
		codes[c] = float64(i)
	}
	return &ConfVocab{classes: classes, codes: codes}
}

// Classes returns the vocabulary's classes in code order.
func (v *ConfVocab) Classes() []string {
	out := make([]string, len(v.classes))
	copy(out, v.classes)
	return out
}

// Code returns the numeric code for a conference value.
func (v *ConfVocab) Code(conf string) (float64, error) {
	code, ok := v.codes[conf]
	if !ok {
		return 0, eris.Wrapf(ErrUnseenConference, "%q", conf)
	}
	return code, nil
}

// EncodeConferences replaces the string conference columns with their
// vocabulary codes. Already-numeric columns are left alone; an unseen value
// is a data-integrity error for the whole frame.
func EncodeConferences(f *frame.Frame, vocab *ConfVocab) error {
	if vocab == nil {
		return eris.New("feature: conference vocabulary not fitted")
	}
	for _, col := range []string{ColConfFavorite, ColConfUnderdog} {
		if f.IsNumeric(col) {
			continue
		}
		vals, ok := f.Str(col)
		if !ok {
			continue
		}
		codes := make([]float64, len(vals))
		for i, v := range vals {
			code, err := vocab.Code(v)
			if err != nil {
				return eris.Wrapf(err, "feature: encode %s row %d", col, i)
			}
			codes[i] = code
		}
		f.Drop(col)
		if err := f.SetNum(col, codes); err != nil {
			return err
		}
	}
	return nil
}

// Package names reconciles team naming differences between the season-stats,
// coach-ranking, and bracket data sources. The dictionaries are plain
// configuration passed into merge steps — never process-wide mutable state —
// so multiple years can be processed side by side without cross-contamination.
package names

import (
	"os"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Dictionary maps a team name in one source to its spelling in another.
type Dictionary map[string]string

// Apply returns the mapped name, or the input unchanged when no entry exists.
func (d Dictionary) Apply(name string) string {
	if mapped, ok := d[name]; ok {
		return mapped
	}
	return name
}

// Normalizer holds the cross-source dictionaries for one dataset. The zero
// value (or nil) performs no renaming.
type Normalizer struct {
	// SeasonToCoach maps season-stats school names to coach-ranking names.
	SeasonToCoach Dictionary `yaml:"season_to_coach"`
	// CoachToBracket maps coach-ranking names to bracket listing names.
	CoachToBracket Dictionary `yaml:"coach_to_bracket"`
	// SeasonToBracket holds current-year overrides applied last, for bracket
	// sources that deviate from both of the above.
	SeasonToBracket Dictionary `yaml:"season_to_bracket"`
}

// CoachName maps a season-stats school name into the coach-ranking source.
func (n *Normalizer) CoachName(school string) string {
	if n == nil {
		return school
	}
	return n.SeasonToCoach.Apply(school)
}

// BracketName maps a season-stats school name all the way into the bracket
// source, chaining the dictionaries in source order.
func (n *Normalizer) BracketName(school string) string {
	if n == nil {
		return school
	}
	name := n.SeasonToCoach.Apply(school)
	name = n.CoachToBracket.Apply(name)
	return n.SeasonToBracket.Apply(name)
}

var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Key returns a folded comparison key for a team name: diacritics stripped,
// case lowered, whitespace collapsed. Used for defensive lookups when two
// sources agree on a team but disagree on punctuation or casing.
func Key(name string) string {
	folded, _, err := transform.String(foldChain, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// Load reads a normalizer from a YAML file.
func Load(path string) (*Normalizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "names: read %s", path)
	}
	var n Normalizer
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, eris.Wrapf(err, "names: parse %s", path)
	}
	return &n, nil
}

// Default returns the built-in dictionaries covering the known divergences
// between the three data sources.
func Default() *Normalizer {
	return &Normalizer{
		SeasonToCoach: Dictionary{
			"Brigham Young":             "BYU",
			"Cal State Long Beach":      "Long Beach State",
			"Central Connecticut State": "Central Connecticut",
			"Central Florida":           "UCF",
			"Connecticut":               "UConn",
			"Detroit Mercy":             "Detroit",
			"East Tennessee State":      "ETSU",
			"Illinois-Chicago":          "UIC",
			"Long Island University":    "LIU",
			"Louisiana State":           "LSU",
			"Maryland-Baltimore County": "UMBC",
			"Massachusetts":             "UMass",
			"Massachusetts-Lowell":      "UMass-Lowell",
			"Mississippi":               "Ole Miss",
			"Missouri-Kansas City":      "UMKC",
			"Nevada-Las Vegas":          "UNLV",
			"North Carolina":            "UNC",
			"North Carolina State":      "NC State",
			"North Carolina-Asheville":  "UNC Asheville",
			"North Carolina-Greensboro": "UNC Greensboro",
			"North Carolina-Wilmington": "UNC Wilmington",
			"Pennsylvania":              "Penn",
			"Pittsburgh":                "Pitt",
			"SIU Edwardsville":          "SIU-Edwardsville",
			"Saint Joseph's":            "St. Joseph's",
			"Saint Mary's (CA)":         "Saint Mary's",
			"Saint Peter's":             "St. Peter's",
			"South Carolina Upstate":    "USC Upstate",
			"Southern California":       "USC",
			"Southern Methodist":        "SMU",
			"Southern Mississippi":      "Southern Miss",
			"Tennessee-Martin":          "UT-Martin",
			"Texas Christian":           "TCU",
			"Texas-El Paso":             "UTEP",
			"Texas-San Antonio":         "UTSA",
			"UC Davis":                  "UC-Davis",
			"UC Irvine":                 "UC-Irvine",
			"UC Santa Barbara":          "UCSB",
			"University of California":  "California",
			"Virginia Commonwealth":     "VCU",
		},
		CoachToBracket: Dictionary{
			"UAB": "Alabama-Birmingham",
		},
		SeasonToBracket: Dictionary{},
	}
}

// Package provider loads season statistics and bracket listings from YAML
// fixture files, so a tournament year can be simulated entirely offline.
// Files live under <dir>/seasons/<year>.yaml and <dir>/brackets/<year>.yaml.
package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/bracket-cli/internal/model"
)

// Fixture implements the season and bracket provider contracts from files on
// disk.
type Fixture struct {
	dir string
}

// NewFixture creates a fixture provider rooted at dir.
func NewFixture(dir string) *Fixture {
	return &Fixture{dir: dir}
}

type seasonFile struct {
	Year      int      `yaml:"year"`
	StatCols  []string `yaml:"stat_cols"`
	BasicCols []string `yaml:"basic_cols"`
	Teams     []struct {
		School string             `yaml:"school"`
		Conf   string             `yaml:"conf"`
		Stats  map[string]float64 `yaml:"stats"`
	} `yaml:"teams"`
}

type bracketFile struct {
	Year   int `yaml:"year"`
	Rounds []struct {
		Round    string `yaml:"round"`
		Matchups []struct {
			A slotFile `yaml:"a"`
			B slotFile `yaml:"b"`
		} `yaml:"matchups"`
	} `yaml:"rounds"`
}

type slotFile struct {
	Seed  int      `yaml:"seed"`
	Name  string   `yaml:"name"`
	Score *float64 `yaml:"score"`
}

// Season loads a year's season table. Duplicate school entries keep the
// first listing.
func (p *Fixture) Season(_ context.Context, year int) (*model.SeasonTable, error) {
	path := filepath.Join(p.dir, "seasons", fmt.Sprintf("%d.yaml", year))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "provider: read season %d", year)
	}

	var sf seasonFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, eris.Wrapf(err, "provider: parse %s", path)
	}
	if len(sf.Teams) == 0 {
		return nil, eris.Errorf("provider: season %d lists no teams", year)
	}

	table := &model.SeasonTable{
		Year:      year,
		StatCols:  sf.StatCols,
		BasicCols: sf.BasicCols,
		Teams:     make(map[string]model.SeasonTeam, len(sf.Teams)),
	}
	dupes := 0
	for _, t := range sf.Teams {
		if _, seen := table.Teams[t.School]; seen {
			dupes++
			continue
		}
		table.Teams[t.School] = model.SeasonTeam{School: t.School, Conf: t.Conf, Stats: t.Stats}
	}
	if dupes > 0 {
		zap.L().Warn("provider: duplicate season teams skipped",
			zap.Int("year", year),
			zap.Int("duplicates", dupes),
		)
	}
	return table, nil
}

// Rounds loads a year's known bracket rounds in play order. Round labels are
// validated against the fixed round set, and each round's matchups must all
// belong to the round that names them.
func (p *Fixture) Rounds(_ context.Context, year int) ([][]model.Matchup, error) {
	path := filepath.Join(p.dir, "brackets", fmt.Sprintf("%d.yaml", year))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "provider: read bracket %d", year)
	}

	var bf bracketFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, eris.Wrapf(err, "provider: parse %s", path)
	}

	rounds := make([][]model.Matchup, 0, len(bf.Rounds))
	prev := model.Round(-1)
	for _, rf := range bf.Rounds {
		round, err := model.RoundFromLabel(rf.Round)
		if err != nil {
			return nil, eris.Wrapf(err, "provider: bracket %d", year)
		}
		if round <= prev {
			return nil, eris.Errorf("provider: bracket %d lists %s out of order", year, rf.Round)
		}
		prev = round

		matchups := make([]model.Matchup, 0, len(rf.Matchups))
		for _, mf := range rf.Matchups {
			matchups = append(matchups, model.Matchup{
				Round: round,
				A:     model.TeamSlot{Seed: mf.A.Seed, Name: mf.A.Name, Score: mf.A.Score},
				B:     model.TeamSlot{Seed: mf.B.Seed, Name: mf.B.Name, Score: mf.B.Score},
			})
		}
		rounds = append(rounds, matchups)
	}
	return rounds, nil
}

// Package selectors holds every CSS selector, marker and literal prefix the
// scraper depends on, keyed by (scope, field). The target markup is third
// party, so a markup change should only ever need a YAML edit here.
package selectors

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Scope string

const (
	Navigation     Scope = "navigation"
	TeamSheet      Scope = "teamSheet"
	Header         Scope = "header"
	ActionLog      Scope = "actionLog"
	ScoreBreakdown Scope = "scoreBreakdown"
	Statistics     Scope = "statistics"
)

// Field names shared across scopes.
const (
	Root = "root"

	Frame       = "frame"
	FixtureList = "fixtureList"
	OpenFixture = "openFixture"
	Detail      = "detail"
	TabButton   = "tabButton"

	Date              = "date"
	ClockIcon         = "clockIcon"
	Time              = "time"
	Venue             = "venue"
	HomeName          = "homeName"
	HomeLogo          = "homeLogo"
	AwayName          = "awayName"
	AwayLogo          = "awayLogo"
	Score             = "score"
	MatchStatus       = "matchStatus"
	MatchStatusPrefix = "matchStatusPrefix"
	Competition       = "competition"
	CompetitionPrefix = "competitionPrefix"
	MatchID           = "matchId"
	MatchIDPrefix     = "matchIdPrefix"

	Item         = "item"
	Minute       = "minute"
	ExtraTime    = "extraTime"
	Type         = "type"
	ContentBlock = "contentBlock"
	Icon         = "icon"

	Row      = "row"
	Cell     = "cell"
	TeamName = "teamName"
	TableEl  = "table"
)

// required lists every key the navigator and extractors look up.
var required = map[Scope][]string{
	Navigation:     {Frame, FixtureList, OpenFixture, Detail, TabButton},
	TeamSheet:      {Root},
	Header:         {Root, Date, ClockIcon, Time, Venue, HomeName, HomeLogo, AwayName, AwayLogo, Score, MatchStatus, Competition, MatchID},
	ActionLog:      {Root, Item, Minute, ExtraTime, Type, ContentBlock, Icon},
	ScoreBreakdown: {Root, Row, Cell},
	Statistics:     {Root, TeamName, TableEl, Row, Cell},
}

// Table is a versioned selector table.
type Table struct {
	Version   string                      `yaml:"version"`
	Selectors map[Scope]map[string]string `yaml:"selectors"`
}

// Default returns the embedded selector table.
func Default() *Table {
	t, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("selectors: embedded table is invalid: %v", err))
	}
	return t
}

// Parse decodes a YAML selector table without applying defaults.
func Parse(data []byte) (*Table, error) {
	t := &Table{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse selector table: %w", err)
	}
	if t.Selectors == nil {
		t.Selectors = make(map[Scope]map[string]string)
	}
	return t, nil
}

// Load reads an override table from path and layers it over the default
// table. Keys missing from the file keep their default value.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selector table %s: %w", path, err)
	}
	override, err := Parse(data)
	if err != nil {
		return nil, err
	}

	merged := Default()
	merged.Merge(override)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// Merge copies every non-empty key of other into t.
func (t *Table) Merge(other *Table) {
	if other.Version != "" {
		t.Version = other.Version
	}
	for scope, fields := range other.Selectors {
		if t.Selectors[scope] == nil {
			t.Selectors[scope] = make(map[string]string)
		}
		for field, sel := range fields {
			if sel != "" {
				t.Selectors[scope][field] = sel
			}
		}
	}
}

// Get returns the selector for (scope, field), or "" if it is not set.
func (t *Table) Get(scope Scope, field string) string {
	return t.Selectors[scope][field]
}

// Validate reports every required key that is missing.
func (t *Table) Validate() error {
	var missing []string
	for scope, fields := range required {
		for _, f := range fields {
			if strings.TrimSpace(t.Get(scope, f)) == "" {
				missing = append(missing, string(scope)+"."+f)
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("selector table %q is missing: %s", t.Version, strings.Join(missing, ", "))
	}
	return nil
}

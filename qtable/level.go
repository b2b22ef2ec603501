package qtable

import (
	"fmt"
	"strings"
)

// Level is the coarse bucket an agent's view of a resource falls into.
type Level int

const (
	Low Level = iota
	Medium
	High
)

// Levels lists every Level in ascending order.
var Levels = [...]Level{Low, Medium, High}

func (l Level) String() string {
	switch l {
	case Low:
		return "LOW"
	case Medium:
		return "MEDIUM"
	case High:
		return "HIGH"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) valid() bool {
	return l >= Low && l <= High
}

// ParseLevel accepts LOW, MEDIUM or HIGH in any case.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

// CommonsLevel buckets the size of the shared resource pool.
func CommonsLevel(pool float64) Level {
	switch {
	case pool < 3:
		return Low
	case pool < 8:
		return Medium
	}
	return High
}

// ScoreLevel buckets an agent's own resource score.
func ScoreLevel(score float64) Level {
	switch {
	case score < 2:
		return Low
	case score < 7:
		return Medium
	}
	return High
}

// StateKey identifies one agent state: how full the commons is and how well
// off the agent is.
type StateKey struct {
	Commons Level
	Score   Level
}

// StateOf returns the state an agent is in given raw pool and score values.
func StateOf(pool, score float64) StateKey {
	return StateKey{Commons: CommonsLevel(pool), Score: ScoreLevel(score)}
}

// ColumnName is the CSV header the experiment logger uses for k.
func (k StateKey) ColumnName() string {
	return k.Commons.String() + "_" + k.Score.String()
}

func (k StateKey) String() string {
	return fmt.Sprintf("commons: %s score: %s", k.Commons, k.Score)
}

// ParseColumnName is the inverse of ColumnName.
func ParseColumnName(name string) (StateKey, error) {
	commons, score, ok := strings.Cut(name, "_")
	if !ok {
		return StateKey{}, fmt.Errorf("column %q is not COMMONS_SCORE", name)
	}
	c, err := ParseLevel(commons)
	if err != nil {
		return StateKey{}, fmt.Errorf("column %q: %w", name, err)
	}
	s, err := ParseLevel(score)
	if err != nil {
		return StateKey{}, fmt.Errorf("column %q: %w", name, err)
	}
	return StateKey{Commons: c, Score: s}, nil
}

// AllKeys returns every state, commons level major and score level minor.
func AllKeys() []StateKey {
	keys := make([]StateKey, 0, len(Levels)*len(Levels))
	for _, c := range Levels {
		for _, s := range Levels {
			keys = append(keys, StateKey{Commons: c, Score: s})
		}
	}
	return keys
}

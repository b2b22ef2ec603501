package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/commonsplot/table"
)

var ErrMissingMetric = errors.New("table has no column for metric")

// Metric is a per-generation statistic the experiment logs.
type Metric int

const (
	EpochsSurvived Metric = iota
	AgentsAlive
)

var metricInfo = map[Metric]struct {
	name    string
	label   string
	columns []string
}{
	EpochsSurvived: {"epochs", "Epochs survived", []string{"epochs_ran", "epochs_stats"}},
	AgentsAlive:    {"agents_alive", "Agents alive", []string{"agents_alive"}},
}

func (m Metric) String() string {
	if info, ok := metricInfo[m]; ok {
		return info.name
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// Label is the axis label for the metric.
func (m Metric) Label() string {
	return metricInfo[m].label
}

// Columns lists the column names the metric has been logged under, preferred
// name first.
func (m Metric) Columns() []string {
	return append([]string(nil), metricInfo[m].columns...)
}

// ParseMetric accepts a metric name or any of its column names.
func ParseMetric(s string) (Metric, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range []Metric{EpochsSurvived, AgentsAlive} {
		if s == m.String() || lo.Contains(m.Columns(), s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q", s)
}

// Extract returns the metric's column from t, trying each known column name.
func (m Metric) Extract(t *table.Table) (table.Series, error) {
	col, ok := lo.Find(m.Columns(), t.HasColumn)
	if !ok {
		return nil, fmt.Errorf("%w %s (looked for %v)", ErrMissingMetric, m, m.Columns())
	}
	return t.Column(col)
}

func (m *Metric) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseMetric(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Metric) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

package chart

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidPlan = errors.New("invalid plan")

// Plan is a YAML file naming a run set and the charts to draw from its
// average:
//
//	data_path: results/commons
//	filename: generations.csv
//	runs: 10
//	charts:
//	  - metric: epochs
//	    smoothing: 1000
//	  - metric: agents_alive
//	    bin_size: 50
//	    normalize: true
type Plan struct {
	DataPath string `yaml:"data_path"`
	Filename string `yaml:"filename"`
	Runs     int    `yaml:"runs"`
	Charts   []Kind `yaml:"charts"`
}

func LoadPlan(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := ParsePlan(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func ParsePlan(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	p := &Plan{}
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Plan) Validate() error {
	if p.Filename == "" {
		return fmt.Errorf("%w: filename is required", ErrInvalidPlan)
	}
	if p.Runs < 1 {
		return fmt.Errorf("%w: runs must be at least 1, got %d", ErrInvalidPlan, p.Runs)
	}
	if len(p.Charts) == 0 {
		return fmt.Errorf("%w: no charts", ErrInvalidPlan)
	}
	for i, k := range p.Charts {
		if err := k.Validate(); err != nil {
			return fmt.Errorf("%w: chart %d: %w", ErrInvalidPlan, i, err)
		}
	}
	return nil
}

func (p *Plan) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}

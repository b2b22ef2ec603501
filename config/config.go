package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug           = "debug"
	ConfigDataPath        = "data-path"
	ConfigResultsFilename = "results-filename"
	ConfigNumRuns         = "num-runs"
	ConfigLoadConcurrency = "load-concurrency"
	ConfigConfidence      = "confidence"
	ConfigOutputPath      = "output-path"
	ConfigStorePath       = "store-path"
	ConfigPlanPath        = "plan-path"
	ConfigQTablePath      = "qtable-path"
	ConfigWalkLength      = "walk-length"
	ConfigBinSize         = "bin-size"
	ConfigSmoothingWindow = "smoothing-window"
	ConfigHistogramBins   = "histogram-bins"
	ConfigChartWidth      = "chart-width"
	ConfigChartRows       = "chart-rows"
)

const envPrefix = "COMMONSPLOT"

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config holding only the defaults.
func DefaultConfig() *Config {
	c := &Config{viper.New()}
	fs := flagSet()
	// defaults come from the flag definitions
	c.BindPFlags(fs)
	return c
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("commonsplot", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigDataPath, "./data", "directory holding one numbered subdirectory per run")
	fs.String(ConfigResultsFilename, "generations.csv", "per-run results file name")
	fs.Int(ConfigNumRuns, 1, "number of runs to average")
	fs.Int(ConfigLoadConcurrency, 0, "run files read at once; 0 means one per CPU")
	fs.Float64(ConfigConfidence, 95, "two-tailed confidence level, in percent, for run spread; 0 turns it off")
	fs.String(ConfigOutputPath, "", "write the averaged table to this CSV file")
	fs.String(ConfigStorePath, "", "sqlite file to cache averaged tables in")
	fs.String(ConfigPlanPath, "", "YAML chart plan")
	fs.String(ConfigQTablePath, "", "agent expected-value CSV to chart")
	fs.Int(ConfigWalkLength, 0, "chart a synthetic random walk of this many points")
	fs.Int(ConfigBinSize, 0, "bin size for charts without a plan; 0 turns binning off")
	fs.Int(ConfigSmoothingWindow, 0, "moving-average window for charts without a plan; 0 turns it off")
	fs.Int(ConfigHistogramBins, 10, "histogram buckets")
	fs.Int(ConfigChartWidth, 40, "width of the longest bar")
	fs.Int(ConfigChartRows, 25, "maximum rows in a trend chart")
	return fs
}

// Load parses command-line args over the defaults. Every setting can also be
// given as an environment variable, e.g. COMMONSPLOT_NUM_RUNS.
func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		c.Viper = viper.New()
	}
	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return c.BindPFlags(fs)
}

// SanitizedSettings returns the settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

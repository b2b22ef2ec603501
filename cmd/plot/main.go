// plot draws experiment results as text charts: the averaged metrics named by
// a chart plan (or a single run set given by flags), an agent's Q-table of
// expected values, or a synthetic random walk.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/domino14/commonsplot/chart"
	"github.com/domino14/commonsplot/config"
	"github.com/domino14/commonsplot/logging"
	"github.com/domino14/commonsplot/qtable"
	"github.com/domino14/commonsplot/render"
	"github.com/domino14/commonsplot/resultstore"
	"github.com/domino14/commonsplot/runset"
	"github.com/domino14/commonsplot/stats"
	"github.com/domino14/commonsplot/table"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.Setup(os.Stderr, cfg.GetBool(config.ConfigDebug))
	log.Debug().Interface("settings", cfg.SanitizedSettings()).Msg("loaded-config")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := render.Options{
		HistogramBins: cfg.GetInt(config.ConfigHistogramBins),
		Width:         cfg.GetInt(config.ConfigChartWidth),
		MaxPoints:     cfg.GetInt(config.ConfigChartRows),
	}

	var err error
	switch {
	case cfg.GetInt(config.ConfigWalkLength) > 0:
		err = plotWalk(cfg, opts)
	case cfg.GetString(config.ConfigQTablePath) != "":
		err = plotQTable(cfg.GetString(config.ConfigQTablePath), opts)
	default:
		err = plotRunSet(ctx, cfg, opts)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("plot-failed")
	}
}

// plotWalk shows a raw random walk next to its binned version.
func plotWalk(cfg *config.Config, opts render.Options) error {
	walk := stats.RandomWalk(cfg.GetInt(config.ConfigWalkLength))
	if err := render.Series(os.Stdout, "Random walk", walk, opts); err != nil {
		return err
	}
	binsize := cfg.GetInt(config.ConfigBinSize)
	if binsize <= 0 {
		binsize = 10
	}
	binned, err := stats.Bin(walk, binsize)
	if err != nil {
		return err
	}
	return render.Series(os.Stdout, fmt.Sprintf("Random walk (bins of %d)", binsize), binned, opts)
}

func plotQTable(path string, opts render.Options) error {
	t, err := table.LoadCSV(path)
	if err != nil {
		return err
	}
	ev, err := qtable.FromTable(t)
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Int("actions", ev.NumActions()).Msg("loaded-qtable")
	return render.QTable(os.Stdout, ev.Normalized(), opts)
}

// planFromConfig builds a plan from the plan file if one is given, otherwise
// from flags, charting both metrics.
func planFromConfig(cfg *config.Config) (*chart.Plan, error) {
	if path := cfg.GetString(config.ConfigPlanPath); path != "" {
		return chart.LoadPlan(path)
	}
	p := &chart.Plan{
		DataPath: cfg.GetString(config.ConfigDataPath),
		Filename: cfg.GetString(config.ConfigResultsFilename),
		Runs:     cfg.GetInt(config.ConfigNumRuns),
	}
	for _, m := range []chart.Metric{chart.EpochsSurvived, chart.AgentsAlive} {
		p.Charts = append(p.Charts, chart.Kind{
			Metric:    m,
			Smoothing: cfg.GetInt(config.ConfigSmoothingWindow),
			BinSize:   cfg.GetInt(config.ConfigBinSize),
		})
	}
	return p, p.Validate()
}

func plotRunSet(ctx context.Context, cfg *config.Config, opts render.Options) error {
	plan, err := planFromConfig(cfg)
	if err != nil {
		return err
	}
	avg, err := averaged(ctx, cfg, plan)
	if err != nil {
		return err
	}
	for _, k := range plan.Charts {
		s, err := k.Series(avg)
		if errors.Is(err, chart.ErrMissingMetric) {
			log.Warn().Err(err).Msg("skipping-chart")
			continue
		}
		if err != nil {
			return err
		}
		if err := render.Series(os.Stdout, k.DisplayTitle(), s, opts); err != nil {
			return err
		}
	}
	return nil
}

// averaged returns the plan's run-set average, from the result store when
// one is configured and already holds it.
func averaged(ctx context.Context, cfg *config.Config, plan *chart.Plan) (*table.Table, error) {
	agg := &runset.Aggregator{Concurrency: cfg.GetInt(config.ConfigLoadConcurrency)}
	storePath := cfg.GetString(config.ConfigStorePath)
	if storePath == "" {
		return agg.Average(ctx, plan.DataPath, plan.Filename, plan.Runs)
	}

	store, err := resultstore.Open(ctx, storePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	key := resultstore.Key{BasePath: plan.DataPath, Filename: plan.Filename, Runs: plan.Runs}
	avg, err := store.Load(ctx, key)
	if err == nil {
		log.Info().Str("store", storePath).Msg("using-stored-average")
		return avg, nil
	}
	if !errors.Is(err, resultstore.ErrNotStored) {
		return nil, err
	}
	avg, err = agg.Average(ctx, plan.DataPath, plan.Filename, plan.Runs)
	if err != nil {
		return nil, err
	}
	return avg, store.Save(ctx, key, avg)
}

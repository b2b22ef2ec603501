// aggregate averages the per-run result tables of an experiment and prints a
// summary, optionally saving the average as CSV and into a result store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/commonsplot/config"
	"github.com/domino14/commonsplot/logging"
	"github.com/domino14/commonsplot/render"
	"github.com/domino14/commonsplot/resultstore"
	"github.com/domino14/commonsplot/runset"
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

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("aggregate-failed")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	basePath := cfg.GetString(config.ConfigDataPath)
	filename := cfg.GetString(config.ConfigResultsFilename)
	n := cfg.GetInt(config.ConfigNumRuns)
	confidence := cfg.GetFloat64(config.ConfigConfidence)

	agg := &runset.Aggregator{Concurrency: cfg.GetInt(config.ConfigLoadConcurrency)}
	start := time.Now()
	log.Info().Str("path", basePath).Str("file", filename).Int("runs", n).Msg("averaging-runs")

	var (
		summary *runset.Summary
		err     error
	)
	if confidence > 0 {
		summary, err = agg.Summarize(ctx, basePath, filename, n, confidence)
		if err != nil {
			return err
		}
	} else {
		mean, err := agg.Average(ctx, basePath, filename, n)
		if err != nil {
			return err
		}
		summary = &runset.Summary{Runs: n, Mean: mean}
	}
	log.Info().Dur("took", time.Since(start)).Int("rows", summary.Mean.NumRows()).Msg("averaged-runs")

	if summary.HalfWidth != nil {
		err = render.Summary(os.Stdout, summary.Mean, summary.HalfWidth, summary.Runs, summary.Confidence)
	} else {
		err = render.TableSummary(os.Stdout, summary.Mean)
	}
	if err != nil {
		return err
	}

	if out := cfg.GetString(config.ConfigOutputPath); out != "" {
		if err := summary.Mean.SaveCSV(out); err != nil {
			return err
		}
		log.Info().Str("path", out).Msg("wrote-average")
	}
	if storePath := cfg.GetString(config.ConfigStorePath); storePath != "" {
		store, err := resultstore.Open(ctx, storePath)
		if err != nil {
			return err
		}
		defer store.Close()
		key := resultstore.Key{BasePath: basePath, Filename: filename, Runs: n}
		if err := store.Save(ctx, key, summary.Mean); err != nil {
			return err
		}
		log.Info().Str("store", storePath).Msg("stored-average")
	}
	return nil
}

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/vedantvakharia/desimcore/pkg/config"
	"github.com/vedantvakharia/desimcore/pkg/devs"
	"github.com/vedantvakharia/desimcore/pkg/logger"
	"github.com/vedantvakharia/desimcore/pkg/metrics"
	"github.com/vedantvakharia/desimcore/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
)

// maxArrivalRate bounds the -arrival-rate flag; the Poisson process
// underneath ExpFloat64 degenerates (near-zero interarrival delays) well
// before this point, so anything above it is almost certainly a typo.
const maxArrivalRate = 1000.0

func priorityFromName(name string) devs.Priority {
	switch name {
	case "high":
		return devs.PriorityHigh
	case "low":
		return devs.PriorityLow
	default:
		return devs.PriorityDefault
	}
}

func main() {
	var configPath string
	var modeOverride string
	var endOverride float64
	var logLevel string
	var arrivalRate float64

	flag.StringVar(&configPath, "config", "", "path to a run config YAML file (optional)")
	flag.StringVar(&modeOverride, "mode", "", "override config mode: devs or abm")
	flag.Float64Var(&endOverride, "end", 0, "override config end_time (0 keeps the config value)")
	flag.StringVar(&logLevel, "log-level", "", "override config log_level")
	flag.Float64Var(&arrivalRate, "arrival-rate", 1.0, "DEVS mode: mean arrivals per time unit")
	flag.Parse()

	cfg := &config.RunConfig{
		Mode:            "devs",
		EndTime:         10,
		LogLevel:        "info",
		DefaultPriority: "default",
		Metrics:         config.MetricsConfig{Enabled: true},
	}
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "desimctl:", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if modeOverride != "" {
		cfg.Mode = modeOverride
	}
	if endOverride != 0 {
		cfg.EndTime = endOverride
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger.SetDefault(logger.NewText(cfg.LogLevel, os.Stdout))
	runID := utils.GenerateRunID()
	log := logger.Named("desimctl").With("run_id", runID)

	registry := prometheus.NewRegistry()
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		c, err := metrics.NewCollector(registry)
		if err != nil {
			log.Error("failed to build metrics collector", "error", err)
			os.Exit(1)
		}
		collector = c
	}

	model := newDemoModel(cfg.Seed, log)
	priority := priorityFromName(cfg.DefaultPriority)

	var runErr error
	switch cfg.Mode {
	case "abm":
		runErr = runABM(cfg, model, collector, log)
	case "devs":
		runErr = runDEVS(cfg, model, collector, priority, arrivalRate, log)
	default:
		fmt.Fprintf(os.Stderr, "desimctl: unknown mode %q (must be devs or abm)\n", cfg.Mode)
		os.Exit(1)
	}
	if runErr != nil {
		log.Error("run failed", "error", runErr)
		os.Exit(1)
	}

	log.Info("run complete",
		"mode", cfg.Mode,
		"final_time", utils.Round(model.Time(), 3),
		"steps", model.Steps(),
		"arrivals", model.arrivals,
		"population", model.population,
	)

	if collector == nil {
		return
	}

	if gaps := collector.GapSummary(); gaps.Mean != 0 || gaps.StdDev != 0 {
		log.Info("inter-event gap summary",
			"mean", utils.Round(gaps.Mean, 4),
			"stddev", utils.Round(gaps.StdDev, 4),
			"p50", utils.Round(gaps.P50, 4),
			"p95", utils.Round(gaps.P95, 4),
		)
	}
	snapshot, err := collector.Snapshot()
	if err != nil {
		log.Error("failed to render metrics snapshot", "error", err)
		os.Exit(1)
	}
	if cfg.Metrics.DumpPath != "" {
		if err := collector.DumpToFile(cfg.Metrics.DumpPath); err != nil {
			log.Error("failed to dump metrics", "error", err)
			os.Exit(1)
		}
		log.Info("metrics written", "path", cfg.Metrics.DumpPath)
		return
	}
	fmt.Println(snapshot)
}

func runDEVS(cfg *config.RunConfig, model *demoModel, collector *metrics.Collector, priority devs.Priority, arrivalRate float64, log *slog.Logger) error {
	sim := devs.NewDEVSimulator()
	if collector != nil {
		sim.SetObserver(collector)
	}
	if err := sim.Setup(model); err != nil {
		return err
	}
	arrivalRate = utils.ClampFloat64(arrivalRate, 0.001, maxArrivalRate)
	if err := model.scheduleArrivals(sim, arrivalRate, priority); err != nil {
		return err
	}
	log.Info("starting devs run", "end_time", cfg.EndTime, "arrival_rate", arrivalRate, "priority", priority)
	return sim.RunUntil(cfg.EndTime)
}

func runABM(cfg *config.RunConfig, model *demoModel, collector *metrics.Collector, log *slog.Logger) error {
	sim := devs.NewABMSimulator()
	if collector != nil {
		sim.SetObserver(collector)
	}
	if err := sim.Setup(model); err != nil {
		return err
	}
	log.Info("starting abm run", "end_tick", cfg.EndTime)
	return sim.RunUntil(cfg.EndTime)
}

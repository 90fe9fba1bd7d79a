package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/crewhealth/config"
	"github.com/pthm-cable/crewhealth/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	scenarioPath := flag.String("scenario", "", "Path to scenario.yaml (empty = built-in scenario)")
	loadPath := flag.String("load", "", "Restore crew health from a saved file")
	savePath := flag.String("save", "", "Write crew health to this file when the run ends")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	days := flag.Float64("days", 30, "Simulated days to run")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	report := flag.Bool("report", true, "Print a roster report when the run ends")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	scn, err := game.LoadScenario(*scenarioPath)
	if err != nil {
		slog.Error("failed to load scenario", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGameWithOptions(game.Options{
		Scenario:  scn,
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Logger:    logger,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	if *loadPath != "" {
		if err := g.Load(*loadPath); err != nil {
			slog.Error("failed to load save", "path", *loadPath, "error", err)
			os.Exit(1)
		}
	}

	slog.Info("starting simulation",
		"run_id", g.RunID(),
		"seed", rngSeed,
		"days", *days,
		"kerbals", g.Statuses().Len(),
	)

	start := time.Now()
	g.Run(*days)
	slog.Info("simulation finished",
		"tick", g.Tick(),
		"sim_days", g.SimDays(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if *report {
		game.SetLogWriter(os.Stderr)
		g.LogRoster()
	}

	if *savePath != "" {
		if err := g.Save(*savePath); err != nil {
			slog.Error("failed to save", "path", *savePath, "error", err)
		}
	}

	if err := g.Unload(); err != nil {
		slog.Error("failed to write output", "error", err)
		os.Exit(1)
	}
}

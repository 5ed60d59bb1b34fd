package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/talgya/gridlands/internal/agents"
	"github.com/talgya/gridlands/internal/engine"
	"github.com/talgya/gridlands/internal/entropy"
	"github.com/talgya/gridlands/internal/persistence"
	"github.com/talgya/gridlands/internal/world"
)

var (
	seedFlag   int64
	ticksFlag  int
	agentsFlag int
)

// runCmd executes a full simulation run and writes the configured sinks.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation and record its event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.World.Seed = seedFlag
		}
		if cmd.Flags().Changed("ticks") {
			cfg.Run.Ticks = ticksFlag
		}
		if cmd.Flags().Changed("agents") {
			cfg.Run.Agents = agentsFlag
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		store, err := cfg.BuildStore()
		if err != nil {
			return fmt.Errorf("build world: %w", err)
		}
		w, err := world.NewWorld(store)
		if err != nil {
			return err
		}
		slog.Info("world ready",
			"size", fmt.Sprintf("%dx%d", w.Width(), w.Height()),
			"strategy", cfg.World.Strategy,
			"seed", cfg.World.Seed,
		)

		src := entropy.NewSource(cfg.World.Seed)
		spawner := agents.NewSpawner(src)
		population, err := spawner.SpawnInto(w, cfg.Run.Agents)
		if err != nil {
			return fmt.Errorf("spawn agents: %w", err)
		}

		metric, err := cfg.DistanceMetric()
		if err != nil {
			return err
		}
		sched, err := engine.NewScheduler(w, engine.Config{
			PerceptionRadius: cfg.Run.PerceptionRadius,
			Metric:           metric,
		})
		if err != nil {
			return err
		}
		for _, a := range population {
			if err := sched.Register(a, engine.ForagerPolicy{}); err != nil {
				return fmt.Errorf("register %s: %w", a.Name, err)
			}
		}

		sched.Run(cfg.Run.Ticks)

		summary := engine.Summarize(w.Events())
		printSummary(summary)

		if cfg.Sink.EventLog != "" {
			if err := writeEventLog(cfg.Sink.EventLog, w.Events()); err != nil {
				return fmt.Errorf("write event log: %w", err)
			}
		}
		if cfg.Sink.Database != "" {
			if err := saveRun(cfg.Sink.Database, w, cfg.World.Seed); err != nil {
				return fmt.Errorf("save run: %w", err)
			}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Int64Var(&seedFlag, "seed", 42, "World generation seed")
	runCmd.Flags().IntVar(&ticksFlag, "ticks", 100, "Number of ticks to run")
	runCmd.Flags().IntVar(&agentsFlag, "agents", 8, "Number of agents to spawn")
}

// saveRun persists the event log and run metadata to the SQLite sink.
func saveRun(path string, w *world.World, seed int64) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	db, err := persistence.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveLog(w.Events()); err != nil {
		return err
	}
	if err := db.SaveMeta("seed", strconv.FormatInt(seed, 10)); err != nil {
		return err
	}
	if err := db.SaveMeta("last_tick", strconv.FormatUint(w.Tick(), 10)); err != nil {
		return err
	}
	slog.Info("run saved", "path", path)
	return nil
}

// writeEventLog dumps the log as one line per event, for eyeballing runs.
func writeEventLog(path string, log *world.EventLog) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for e := range log.All() {
		if _, err := fmt.Fprintf(f, "t=%d %s %s %v\n", e.Tick, e.Kind, e.Position, e.Payload); err != nil {
			return err
		}
	}
	return nil
}

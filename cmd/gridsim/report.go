package main

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/gridlands/internal/engine"
	"github.com/talgya/gridlands/internal/persistence"
	"github.com/talgya/gridlands/internal/world"
)

var dbPathFlag string

// reportCmd summarizes a previously saved run from its SQLite sink.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize a saved run from the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := dbPathFlag
		if path == "" {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path = cfg.Sink.Database
		}
		if path == "" {
			return fmt.Errorf("no database path: pass --db or set sink.database in the config")
		}

		db, err := persistence.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()

		events, err := db.LoadEvents()
		if err != nil {
			return err
		}
		log := world.NewEventLog()
		for _, e := range events {
			log.Append(e)
		}

		if seed, err := db.GetMeta("seed"); err == nil {
			fmt.Printf("Run seed: %s\n", seed)
		}
		printSummary(engine.Summarize(log))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&dbPathFlag, "db", "", "Path to the run database")
}

// printSummary renders a run summary for the terminal.
func printSummary(s engine.Summary) {
	fmt.Printf("\nRan %s over %s.\n",
		plural(int(s.Ticks), "tick"), plural(s.TotalEvents, "event"))
	fmt.Printf("Harvested %s of resources (%d depletions, %d exhaustions, %d skipped commands).\n",
		humanize.FtoaWithDigits(s.HarvestedTotal, 1), s.Depletions, s.Exhaustions, s.Skipped)

	kinds := make([]string, 0, len(s.Harvested))
	for kind := range s.Harvested {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("  %-10s %s\n", kind, humanize.FtoaWithDigits(s.Harvested[kind], 1))
	}

	counts := make([]string, 0, len(s.Counts))
	for kind := range s.Counts {
		counts = append(counts, kind)
	}
	sort.Strings(counts)
	fmt.Println("\nEvents by kind:")
	for _, kind := range counts {
		fmt.Printf("  %-22s %s\n", kind, humanize.Comma(int64(s.Counts[kind])))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(int64(n)), noun)
}

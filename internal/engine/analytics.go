package engine

import (
	"github.com/talgya/gridlands/internal/world"
)

// Summary aggregates a run from its event log. It is computed by reading
// the log only; analytics never write to it.
type Summary struct {
	Ticks          uint64             `json:"ticks"`
	TotalEvents    int                `json:"total_events"`
	Counts         map[string]int     `json:"counts"`
	Harvested      map[string]float64 `json:"harvested"`
	HarvestedTotal float64            `json:"harvested_total"`
	Depletions     int                `json:"depletions"`
	Exhaustions    int                `json:"exhaustions"`
	Skipped        int                `json:"skipped"`
}

// Summarize walks the event log once and tallies per-kind counts and
// harvest volumes.
func Summarize(log *world.EventLog) Summary {
	s := Summary{
		Counts:    make(map[string]int),
		Harvested: make(map[string]float64),
	}
	for e := range log.All() {
		s.TotalEvents++
		s.Counts[string(e.Kind)]++
		if e.Tick > s.Ticks {
			s.Ticks = e.Tick
		}
		switch e.Kind {
		case world.EventResourceHarvested:
			kind, _ := e.Payload["resource"].(string)
			actual, _ := e.Payload["actual"].(float64)
			s.Harvested[kind] += actual
			s.HarvestedTotal += actual
		case world.EventResourceDepleted:
			s.Depletions++
		case world.EventResourceExhausted:
			s.Exhaustions++
		case world.EventCommandSkipped:
			s.Skipped++
		}
	}
	return s
}

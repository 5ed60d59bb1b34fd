package world

import (
	"fmt"
	"iter"
)

// EventKind labels what happened.
type EventKind string

const (
	EventTick                EventKind = "tick"
	EventAgentPlaced         EventKind = "agent_placed"
	EventAgentRemoved        EventKind = "agent_removed"
	EventAgentMoved          EventKind = "agent_moved"
	EventAgentRested         EventKind = "agent_rested"
	EventResourceHarvested   EventKind = "resource_harvested"
	EventResourceDepleted    EventKind = "resource_depleted"
	EventResourceRegenerated EventKind = "resource_regenerated"
	EventResourceExhausted   EventKind = "resource_exhausted"
	EventCommandSkipped      EventKind = "command_skipped"
)

// Event is an immutable record of one world-changing occurrence. Once
// appended to the log it is never mutated or reordered.
type Event struct {
	Kind     EventKind      `json:"kind"`
	Position Position       `json:"position"`
	Tick     uint64         `json:"tick"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// String renders the event the way run logs print it.
func (e Event) String() string {
	return fmt.Sprintf("[T=%d] %s @ %s", e.Tick, e.Kind, e.Position)
}

// EventLog is the append-only, tick-ordered record of world events. The
// single writer is the World, which appends at its current tick, so
// entries are naturally ordered; readers only ever receive copies.
type EventLog struct {
	events []Event
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Append records an event. The payload is copied so later mutation of the
// caller's map cannot rewrite history.
func (l *EventLog) Append(e Event) {
	e.Payload = clonePayload(e.Payload)
	l.events = append(l.events, e)
}

// clonePayload copies a payload map. Readers get clones too, so no caller
// ever holds a mutable reference into the log.
func clonePayload(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	cloned := make(map[string]any, len(payload))
	for k, v := range payload {
		cloned[k] = v
	}
	return cloned
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int {
	return len(l.events)
}

// All yields every event in append order.
func (l *EventLog) All() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for _, e := range l.events {
			e.Payload = clonePayload(e.Payload)
			if !yield(e) {
				return
			}
		}
	}
}

// Filter returns events matching the criteria: kind (empty matches all)
// and an inclusive tick range (toTick of 0 means unbounded).
func (l *EventLog) Filter(kind EventKind, fromTick, toTick uint64) []Event {
	var matched []Event
	for _, e := range l.events {
		if kind != "" && e.Kind != kind {
			continue
		}
		if e.Tick < fromTick {
			continue
		}
		if toTick != 0 && e.Tick > toTick {
			continue
		}
		e.Payload = clonePayload(e.Payload)
		matched = append(matched, e)
	}
	return matched
}

// CountByKind tallies events per kind across the whole log.
func (l *EventLog) CountByKind() map[EventKind]int {
	counts := make(map[EventKind]int)
	for _, e := range l.events {
		counts[e.Kind]++
	}
	return counts
}

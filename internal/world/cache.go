package world

import (
	"container/list"
	"fmt"
	"log/slog"
)

// CellGenerator produces the cell for a position. The rule must be
// deterministic and idempotent per position: regenerating an evicted cell
// yields the same immutable attributes every time. Mutable state (partial
// harvests, occupancy) is exactly what the cache must not lose, which is
// why modified cells are pinned rather than flushed.
type CellGenerator interface {
	CellAt(pos Position) *Cell
}

// GeneratorFunc adapts a plain function to CellGenerator.
type GeneratorFunc func(pos Position) *Cell

// CellAt calls f.
func (f GeneratorFunc) CellAt(pos Position) *Cell { return f(pos) }

// Evictable is the eviction-exemption predicate: only unoccupied,
// unmodified cells may be dropped from the cache. Everything else would
// lose state the generation rule cannot reproduce.
func Evictable(c *Cell) bool {
	return !c.Occupied() && !c.Modified()
}

// cacheEntry pairs a resident cell with its recency bookkeeping.
type cacheEntry struct {
	cell       *Cell
	elem       *list.Element // position in the recency list
	lastAccess uint64
}

// LazyStore materializes cells on first access from a deterministic
// generation rule and bounds the resident set with an LRU cache.
//
// Eviction policy: least-recently-accessed first, skipping pinned cells
// (see Evictable). If every resident cell is pinned the store temporarily
// exceeds its capacity instead of failing the access; the overflow drains
// once a candidate unpins.
type LazyStore struct {
	width    int
	height   int
	capacity int
	rule     CellGenerator

	entries map[Position]*cacheEntry
	recency *list.List // front = most recently accessed, values are Position

	accessClock uint64
	evictions   uint64
}

// NewLazyStore creates a lazy store over the given generation rule with a
// bounded resident set.
func NewLazyStore(width, height, capacity int, rule CellGenerator) (*LazyStore, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("lazy store %dx%d: %w", width, height, ErrInvalidConfig)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("lazy store capacity %d: %w", capacity, ErrInvalidConfig)
	}
	if rule == nil {
		return nil, fmt.Errorf("lazy store needs a generation rule: %w", ErrInvalidConfig)
	}
	return &LazyStore{
		width:    width,
		height:   height,
		capacity: capacity,
		rule:     rule,
		entries:  make(map[Position]*cacheEntry, capacity),
		recency:  list.New(),
	}, nil
}

// GetCell returns the resident cell at pos, materializing it from the
// generation rule on first access.
func (s *LazyStore) GetCell(pos Position) (*Cell, error) {
	if !pos.InBounds(s.width, s.height) {
		return nil, fmt.Errorf("get %s: %w", pos, ErrOutOfBounds)
	}
	s.accessClock++

	if entry, ok := s.entries[pos]; ok {
		entry.lastAccess = s.accessClock
		s.recency.MoveToFront(entry.elem)
		return entry.cell, nil
	}

	cell := s.rule.CellAt(pos)
	s.insert(pos, cell)
	return cell, nil
}

// SetCell replaces the cell at pos, making it resident.
func (s *LazyStore) SetCell(pos Position, cell *Cell) error {
	if !pos.InBounds(s.width, s.height) {
		return fmt.Errorf("set %s: %w", pos, ErrOutOfBounds)
	}
	s.accessClock++

	if entry, ok := s.entries[pos]; ok {
		entry.cell = cell
		entry.lastAccess = s.accessClock
		s.recency.MoveToFront(entry.elem)
		return nil
	}
	s.insert(pos, cell)
	return nil
}

// insert makes a cell resident and trims the cache back to capacity. The
// cell being inserted is never an eviction candidate: the caller is about
// to hand it out, and dropping it would return a non-resident pointer
// whose mutations the store silently forgets.
func (s *LazyStore) insert(pos Position, cell *Cell) {
	entry := &cacheEntry{
		cell:       cell,
		lastAccess: s.accessClock,
	}
	entry.elem = s.recency.PushFront(pos)
	s.entries[pos] = entry

	for len(s.entries) > s.capacity {
		if !s.evictOldest(entry.elem) {
			// Every other resident cell is pinned. Run over capacity
			// rather than fail the access; drains when a candidate
			// unpins.
			slog.Debug("cell cache over capacity, all residents pinned",
				"resident", len(s.entries), "capacity", s.capacity)
			return
		}
	}
}

// evictOldest drops the least-recently-accessed evictable cell, never
// touching keep. Returns false when no other resident cell is evictable.
func (s *LazyStore) evictOldest(keep *list.Element) bool {
	for elem := s.recency.Back(); elem != nil && elem != keep; elem = elem.Prev() {
		pos := elem.Value.(Position)
		entry := s.entries[pos]
		if !Evictable(entry.cell) {
			continue
		}
		s.recency.Remove(elem)
		delete(s.entries, pos)
		s.evictions++
		return true
	}
	return false
}

// HasCell reports whether pos is currently resident. It does not
// materialize the cell or touch recency.
func (s *LazyStore) HasCell(pos Position) bool {
	_, ok := s.entries[pos]
	return ok
}

// Width returns the grid width.
func (s *LazyStore) Width() int { return s.width }

// Height returns the grid height.
func (s *LazyStore) Height() int { return s.height }

// Resident returns the number of cells currently in memory.
func (s *LazyStore) Resident() int { return len(s.entries) }

// Evictions returns the number of cells dropped so far.
func (s *LazyStore) Evictions() uint64 { return s.evictions }

// Token is a capability presented to a guarded store for mutable access.
type Token string

// GuardedStore wraps a store with capability checks on mutation. Reads of
// immutable views are unrestricted; obtaining a mutable cell reference or
// replacing a cell requires a registered token.
type GuardedStore struct {
	inner CellStore
	valid map[Token]struct{}
}

// NewGuardedStore wraps inner, accepting the given tokens for mutation.
func NewGuardedStore(inner CellStore, tokens ...Token) *GuardedStore {
	valid := make(map[Token]struct{}, len(tokens))
	for _, t := range tokens {
		valid[t] = struct{}{}
	}
	return &GuardedStore{inner: inner, valid: valid}
}

// ReadCell returns a value copy of the cell at pos. No token is needed;
// the copy shares no mutable state with the store.
func (g *GuardedStore) ReadCell(pos Position) (Cell, error) {
	cell, err := g.inner.GetCell(pos)
	if err != nil {
		return Cell{}, err
	}
	return cell.Snapshot(), nil
}

// View returns a CellStore bound to the token. Mutating calls through the
// view fail with ErrAccessDenied unless the token is registered.
func (g *GuardedStore) View(token Token) CellStore {
	return &guardedView{store: g, token: token}
}

func (g *GuardedStore) authorized(token Token) bool {
	_, ok := g.valid[token]
	return ok
}

// guardedView is a token-bound handle on a GuardedStore.
type guardedView struct {
	store *GuardedStore
	token Token
}

func (v *guardedView) GetCell(pos Position) (*Cell, error) {
	if !v.store.authorized(v.token) {
		return nil, fmt.Errorf("mutable get %s: %w", pos, ErrAccessDenied)
	}
	return v.store.inner.GetCell(pos)
}

func (v *guardedView) SetCell(pos Position, cell *Cell) error {
	if !v.store.authorized(v.token) {
		return fmt.Errorf("set %s: %w", pos, ErrAccessDenied)
	}
	return v.store.inner.SetCell(pos, cell)
}

func (v *guardedView) HasCell(pos Position) bool { return v.store.inner.HasCell(pos) }
func (v *guardedView) Width() int                { return v.store.inner.Width() }
func (v *guardedView) Height() int               { return v.store.inner.Height() }
func (v *guardedView) Resident() int             { return v.store.inner.Resident() }

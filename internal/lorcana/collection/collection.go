// Package collection maintains owned card quantities keyed by equivalence
// class and answers the ownership queries used by set progress, deck
// completion, and export.
package collection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/identity"
)

// DefaultCondition is assigned to entries created without an explicit
// condition.
const DefaultCondition = "Near Mint"

// Entry is one physical lot of owned copies. The face is a denormalized
// copy, not a live catalog pointer: the catalog may be swapped underneath
// a long-lived collection.
type Entry struct {
	Face      card.Face
	Quantity  int
	DateAdded time.Time
	Condition string
}

// Key returns the entry's equivalence key. Every entry maps to exactly
// one key; the aggregator never counts a lot under two keys.
func (e Entry) Key() identity.Key {
	return identity.ForFace(e.Face)
}

// Store is the persistence collaborator. The aggregator is the source of
// truth for reconciliation semantics; the store only mirrors its state.
type Store interface {
	UpsertEntry(ctx context.Context, e Entry) error
	DeleteLot(ctx context.Context, key identity.Key, setName string, variant card.Variant) error
	DeleteByKey(ctx context.Context, key identity.Key) error
}

// Aggregator holds the collection state. All mutations are atomic per
// call and serialized by the internal lock, so a cancelled import batch
// leaves a consistent partially-applied collection, never a torn one.
// Reads observe a consistent snapshot relative to in-flight writes.
type Aggregator struct {
	mu      sync.RWMutex
	entries map[identity.Key][]*Entry

	store  Store // optional
	logger *slog.Logger
	now    func() time.Time
}

// Config configures an aggregator.
type Config struct {
	// Store mirrors mutations to durable storage. Optional; store errors
	// are logged, not propagated, because the in-memory state stays
	// authoritative either way.
	Store  Store
	Logger *slog.Logger
}

// New creates an empty aggregator.
func New(config Config) *Aggregator {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Aggregator{
		entries: make(map[identity.Key][]*Entry),
		store:   config.Store,
		logger:  config.Logger,
		now:     time.Now,
	}
}

// Restore replaces the aggregator contents with previously persisted
// entries, typically at startup. Entries with non-positive quantities are
// dropped.
func (a *Aggregator) Restore(entries []Entry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = make(map[identity.Key][]*Entry, len(entries))
	for _, e := range entries {
		if e.Quantity <= 0 {
			continue
		}
		entry := e
		key := entry.Key()
		a.entries[key] = append(a.entries[key], &entry)
	}
}

// Add increments the owned quantity for face by quantity. When a lot for
// the same key, set, and variant already exists its quantity grows;
// otherwise a new lot is created with the default condition.
func (a *Aggregator) Add(ctx context.Context, face card.Face, quantity int) {
	if quantity <= 0 {
		return
	}
	key := identity.ForFace(face)

	a.mu.Lock()
	var changed *Entry
	for _, e := range a.entries[key] {
		if e.Face.SetName == face.SetName && e.Face.Variant == face.Variant {
			e.Quantity += quantity
			changed = e
			break
		}
	}
	if changed == nil {
		changed = &Entry{
			Face:      face,
			Quantity:  quantity,
			DateAdded: a.now(),
			Condition: DefaultCondition,
		}
		a.entries[key] = append(a.entries[key], changed)
	}
	snapshot := *changed
	a.mu.Unlock()

	a.persistUpsert(ctx, snapshot)
}

// Remove deletes every lot matching face's equivalence key.
func (a *Aggregator) Remove(ctx context.Context, face card.Face) {
	key := identity.ForFace(face)

	a.mu.Lock()
	_, existed := a.entries[key]
	delete(a.entries, key)
	a.mu.Unlock()

	if existed {
		a.persistDelete(ctx, key)
	}
}

// SetQuantity sets the quantity of the lot matching face's set and
// variant. Negative values clamp to zero; zero deletes the lot. When no
// matching lot exists and n is positive, one is created.
func (a *Aggregator) SetQuantity(ctx context.Context, face card.Face, n int) {
	if n < 0 {
		n = 0
	}
	key := identity.ForFace(face)

	a.mu.Lock()
	lots := a.entries[key]
	var changed *Entry
	for i, e := range lots {
		if e.Face.SetName != face.SetName || e.Face.Variant != face.Variant {
			continue
		}
		if n == 0 {
			a.entries[key] = append(lots[:i], lots[i+1:]...)
			if len(a.entries[key]) == 0 {
				delete(a.entries, key)
			}
		} else {
			e.Quantity = n
			changed = e
		}
		break
	}
	if changed == nil && n > 0 && !a.hasLotLocked(key, face) {
		changed = &Entry{
			Face:      face,
			Quantity:  n,
			DateAdded: a.now(),
			Condition: DefaultCondition,
		}
		a.entries[key] = append(a.entries[key], changed)
	}

	var snapshot Entry
	if changed != nil {
		snapshot = *changed
	}
	a.mu.Unlock()

	if changed != nil {
		a.persistUpsert(ctx, snapshot)
	} else if n == 0 {
		a.persistDeleteLot(ctx, key, face)
	}
}

// OwnedQuantity sums quantities over every lot sharing face's key: all
// sets, and both normal and foil printings for the fungible class.
func (a *Aggregator) OwnedQuantity(face card.Face) int {
	key := identity.ForFace(face)

	a.mu.RLock()
	defer a.mu.RUnlock()

	total := 0
	for _, e := range a.entries[key] {
		total += e.Quantity
	}
	return total
}

// IsOwned reports whether any copy matching face's key is owned.
func (a *Aggregator) IsOwned(face card.Face) bool {
	return a.OwnedQuantity(face) > 0
}

// Entries returns a copy of every lot in the collection. Order is not
// specified; callers needing determinism sort the result.
func (a *Aggregator) Entries() []Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []Entry
	for _, lots := range a.entries {
		for _, e := range lots {
			out = append(out, *e)
		}
	}
	return out
}

func (a *Aggregator) hasLotLocked(key identity.Key, face card.Face) bool {
	for _, e := range a.entries[key] {
		if e.Face.SetName == face.SetName && e.Face.Variant == face.Variant {
			return true
		}
	}
	return false
}

func (a *Aggregator) persistUpsert(ctx context.Context, e Entry) {
	if a.store == nil {
		return
	}
	if err := a.store.UpsertEntry(ctx, e); err != nil {
		a.logger.Warn("Failed to persist collection entry",
			"card", e.Face.Name,
			"set", e.Face.SetName,
			"error", err)
	}
}

func (a *Aggregator) persistDeleteLot(ctx context.Context, key identity.Key, face card.Face) {
	if a.store == nil {
		return
	}
	if err := a.store.DeleteLot(ctx, key, face.SetName, face.Variant); err != nil {
		a.logger.Warn("Failed to delete persisted lot",
			"card", face.Name,
			"set", face.SetName,
			"error", err)
	}
}

func (a *Aggregator) persistDelete(ctx context.Context, key identity.Key) {
	if a.store == nil {
		return
	}
	if err := a.store.DeleteByKey(ctx, key); err != nil {
		a.logger.Warn("Failed to delete persisted entries", "error", err)
	}
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/collection"
	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/identity"
)

// CollectionStore persists collection entries. It implements the
// aggregator's Store interface.
type CollectionStore struct {
	db *DB
}

// NewCollectionStore creates a store over the given database.
func NewCollectionStore(db *DB) *CollectionStore {
	return &CollectionStore{db: db}
}

// UpsertEntry inserts or updates one lot, keyed by its natural identity
// (name, set, variant, unique ID).
func (s *CollectionStore) UpsertEntry(ctx context.Context, e collection.Entry) error {
	query := `
		INSERT INTO collected_entries (
			card_id, name, set_name, collector_number, unique_id, variant,
			cost, rarity, ink_color, card_text, quantity, date_added, condition
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, set_name, variant, unique_id) DO UPDATE SET
			quantity = excluded.quantity,
			condition = excluded.condition
	`
	_, err := s.db.Conn().ExecContext(ctx, query,
		e.Face.ID, e.Face.Name, e.Face.SetName, e.Face.CollectorNumber,
		e.Face.UniqueID, string(e.Face.Variant),
		e.Face.Cost, e.Face.Rarity, e.Face.InkColor, e.Face.CardText,
		e.Quantity, e.DateAdded, e.Condition,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert collection entry: %w", err)
	}
	return nil
}

// DeleteLot removes the single lot matching the key plus set and variant.
func (s *CollectionStore) DeleteLot(ctx context.Context, key identity.Key, setName string, variant card.Variant) error {
	where, args := keyPredicate(key)
	query := fmt.Sprintf("DELETE FROM collected_entries WHERE %s AND set_name = ? AND variant = ?", where)
	args = append(args, setName, string(variant))

	if _, err := s.db.Conn().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete collection lot: %w", err)
	}
	return nil
}

// DeleteByKey removes every lot sharing the equivalence key.
func (s *CollectionStore) DeleteByKey(ctx context.Context, key identity.Key) error {
	where, args := keyPredicate(key)
	query := "DELETE FROM collected_entries WHERE " + where

	if _, err := s.db.Conn().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete collection entries: %w", err)
	}
	return nil
}

// keyPredicate translates an equivalence key into a SQL predicate. The
// three key shapes mirror identity.ForFace: unique-ID alone, distinct
// (name, variant) without a unique ID, or fungible name.
func keyPredicate(key identity.Key) (string, []any) {
	switch {
	case key.UniqueID != "":
		return "unique_id = ?", []any{key.UniqueID}
	case key.Variant != "":
		return "name = ? AND variant = ? AND unique_id = ''",
			[]any{key.Name, string(key.Variant)}
	default:
		return "name = ? AND variant IN (?, ?)",
			[]any{key.Name, string(card.VariantNormal), string(card.VariantFoil)}
	}
}

// LoadEntries reads every persisted lot, for restoring the aggregator at
// startup.
func (s *CollectionStore) LoadEntries(ctx context.Context) ([]collection.Entry, error) {
	query := `
		SELECT card_id, name, set_name, collector_number, unique_id, variant,
		       cost, rarity, ink_color, card_text, quantity, date_added, condition
		FROM collected_entries
		ORDER BY name, set_name, variant
	`
	rows, err := s.db.Conn().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []collection.Entry
	for rows.Next() {
		var e collection.Entry
		var number sql.NullInt64
		var variant string
		err := rows.Scan(
			&e.Face.ID, &e.Face.Name, &e.Face.SetName, &number,
			&e.Face.UniqueID, &variant,
			&e.Face.Cost, &e.Face.Rarity, &e.Face.InkColor, &e.Face.CardText,
			&e.Quantity, &e.DateAdded, &e.Condition,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection entry: %w", err)
		}
		if number.Valid {
			n := int(number.Int64)
			e.Face.CollectorNumber = &n
		}
		e.Face.Variant = card.Variant(variant)
		e.Face.Printing = card.ResolvePrinting(e.Face)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collection entries: %w", err)
	}
	return entries, nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/deck"
)

// Deck is a stored deck with its requirements in build order.
type Deck struct {
	ID           int64
	Name         string
	Requirements []deck.Requirement
}

// DeckStore persists decks and their requirements.
type DeckStore struct {
	db *DB
}

// NewDeckStore creates a deck store over the given database.
func NewDeckStore(db *DB) *DeckStore {
	return &DeckStore{db: db}
}

// SaveDeck inserts a deck and its requirements in one transaction and
// returns the new deck ID.
func (s *DeckStore) SaveDeck(ctx context.Context, name string, requirements []deck.Requirement) (int64, error) {
	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, "INSERT INTO decks (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert deck: %w", err)
	}
	deckID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read deck id: %w", err)
	}

	for i, r := range requirements {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO deck_requirements (
				deck_id, position, card_id, name, set_name, unique_id, variant, quantity
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			deckID, i, r.CardID, r.Name, r.SetName, r.UniqueID, string(r.Variant), r.Quantity,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert deck requirement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit deck: %w", err)
	}
	return deckID, nil
}

// GetDeck loads a deck with its requirements in stored order. Returns
// nil when no deck has the given ID.
func (s *DeckStore) GetDeck(ctx context.Context, id int64) (*Deck, error) {
	d := &Deck{ID: id}
	err := s.db.Conn().QueryRowContext(ctx,
		"SELECT name FROM decks WHERE id = ?", id).Scan(&d.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT card_id, name, set_name, unique_id, variant, quantity
		FROM deck_requirements
		WHERE deck_id = ?
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck requirements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r deck.Requirement
		var variant string
		if err := rows.Scan(&r.CardID, &r.Name, &r.SetName, &r.UniqueID, &variant, &r.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan deck requirement: %w", err)
		}
		r.Variant = card.Variant(variant)
		d.Requirements = append(d.Requirements, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deck requirements: %w", err)
	}
	return d, nil
}

// ListDecks returns every stored deck without requirements.
func (s *DeckStore) ListDecks(ctx context.Context) ([]Deck, error) {
	rows, err := s.db.Conn().QueryContext(ctx, "SELECT id, name FROM decks ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var decks []Deck
	for rows.Next() {
		var d Deck
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate decks: %w", err)
	}
	return decks, nil
}

// DeleteDeck removes a deck and its requirements.
func (s *DeckStore) DeleteDeck(ctx context.Context, id int64) error {
	if _, err := s.db.Conn().ExecContext(ctx, "DELETE FROM decks WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	return nil
}

package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/collection"
)

// StarterDeck is a preconstructed deck list shipped with the card data.
type StarterDeck struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	SetName string        `json:"setName"`
	Cards   []StarterCard `json:"cards"`
}

// StarterCard is one line of a starter deck list.
type StarterCard struct {
	Name     string `json:"name"`
	UniqueID string `json:"uniqueId,omitempty"`
	Variant  string `json:"variant,omitempty"`
	Quantity int    `json:"quantity"`
}

type starterDeckFile struct {
	StarterDecks []StarterDeck `json:"starterDecks"`
}

// LoadStarterDecks reads the starter deck data file.
func LoadStarterDecks(path string) ([]StarterDeck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read starter decks: %w", err)
	}
	var file starterDeckFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid starter deck data: %w", err)
	}
	return file.StarterDecks, nil
}

// Requirements converts the deck list into reconciler requirements in
// stored order.
func (d StarterDeck) Requirements() []Requirement {
	reqs := make([]Requirement, 0, len(d.Cards))
	for _, c := range d.Cards {
		variant := card.VariantNormal
		if v, ok := card.ParseVariant(c.Variant); ok {
			variant = v
		}
		reqs = append(reqs, Requirement{
			Name:     c.Name,
			SetName:  d.SetName,
			UniqueID: c.UniqueID,
			Variant:  variant,
			Quantity: c.Quantity,
		})
	}
	return reqs
}

// CatalogSource resolves deck lines to catalog faces.
type CatalogSource interface {
	FindByName(name string) []card.Face
}

// AddToCollection adds every card of the starter deck to the aggregator,
// resolving each line against the catalog. Lines naming no catalog card
// are returned so the caller can surface them; the rest still apply.
func (d StarterDeck) AddToCollection(ctx context.Context, catalog CatalogSource, agg *collection.Aggregator) (unresolved []string, err error) {
	for _, c := range d.Cards {
		select {
		case <-ctx.Done():
			return unresolved, ctx.Err()
		default:
		}

		faces := catalog.FindByName(c.Name)
		if len(faces) == 0 {
			unresolved = append(unresolved, c.Name)
			continue
		}

		face := faces[0]
		for _, f := range faces {
			if f.SetName == d.SetName {
				face = f
				break
			}
		}
		agg.Add(ctx, face, c.Quantity)
	}
	return unresolved, nil
}

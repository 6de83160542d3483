// Package deck projects collection completion against deck requirements.
package deck

import (
	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
)

// Requirement is one card line of a deck, captured at deck-build time.
// Ownership is always computed against the live collection, never stored.
type Requirement struct {
	CardID   string
	Name     string
	SetName  string
	UniqueID string
	Variant  card.Variant
	Quantity int
}

// Face reconstructs the card face the requirement's equivalence key is
// derived from. The fungible class ignores set entirely when matching
// owned entries, so a deck built from one printing is satisfied by any
// printing; that is the observed product behavior, kept as is.
func (r Requirement) Face() card.Face {
	return card.Face{
		ID:       r.CardID,
		Name:     r.Name,
		SetName:  r.SetName,
		UniqueID: r.UniqueID,
		Variant:  r.Variant,
	}
}

// Shortfall is a requirement the collection does not yet satisfy.
type Shortfall struct {
	Requirement Requirement
	Needed      int
}

// Ownership is the slice of the aggregator the reconciler consumes.
type Ownership interface {
	OwnedQuantity(face card.Face) int
}

// PriceProvider supplies market prices. A nil price is not an error; the
// card simply contributes nothing to the completion cost.
type PriceProvider interface {
	Price(face card.Face) *float64
}

// Reconciler computes deck completion against a collection.
type Reconciler struct {
	prices PriceProvider
}

// NewReconciler creates a reconciler. prices may be nil when no pricing
// collaborator is available.
func NewReconciler(prices PriceProvider) *Reconciler {
	return &Reconciler{prices: prices}
}

// MissingCards reports each requirement the collection cannot cover and
// how many copies remain. Requirements are visited in stored deck order,
// so output order is reproducible.
func (r *Reconciler) MissingCards(requirements []Requirement, owned Ownership) []Shortfall {
	var missing []Shortfall
	for _, req := range requirements {
		have := owned.OwnedQuantity(req.Face())
		if have < req.Quantity {
			missing = append(missing, Shortfall{Requirement: req, Needed: req.Quantity - have})
		}
	}
	return missing
}

// CostToComplete sums needed-copies times unit price over every
// shortfall. Cards without a price contribute zero.
func (r *Reconciler) CostToComplete(requirements []Requirement, owned Ownership) float64 {
	total := 0.0
	if r.prices == nil {
		return total
	}
	for _, s := range r.MissingCards(requirements, owned) {
		price := r.prices.Price(s.Requirement.Face())
		if price == nil {
			continue
		}
		total += float64(s.Needed) * *price
	}
	return total
}

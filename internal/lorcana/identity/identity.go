// Package identity decides when two card faces denote the same card for
// collection aggregation. It is pure and total: Key never fails and never
// touches I/O.
//
// The rules:
//
//   - Fungible variants (Normal, Foil) key on the card name alone. Set and
//     foil treatment are display/export concerns, not ownership identity.
//   - Distinct variants (Enchanted, Epic, Iconic, Promo, Borderless) key on
//     (name, variant), so an Enchanted "Elsa" is never folded into Normal
//     "Elsa" ownership.
//   - A distinct-variant face with a non-empty unique ID keys on that ID
//     alone. Cross-region promos of the same name stay separate buckets.
package identity

import "github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"

// Key is the aggregation identity of a card face. It is a value type with
// structural equality; exactly one of the shapes below is populated:
//
//	{UniqueID: id}               identified distinct printing
//	{Name: n, Variant: v}        distinct variant without unique ID
//	{Name: n}                    fungible class
type Key struct {
	UniqueID string
	Name     string
	Variant  card.Variant
}

// ForFace computes the equivalence key for a face.
func ForFace(f card.Face) Key {
	if f.Variant.IsDistinct() {
		if f.UniqueID != "" {
			return Key{UniqueID: f.UniqueID}
		}
		return Key{Name: f.Name, Variant: f.Variant}
	}
	return Key{Name: f.Name}
}

// Matches reports whether two faces share an equivalence key.
func Matches(a, b card.Face) bool {
	return ForFace(a) == ForFace(b)
}

// Package card defines the canonical card model shared by the catalog,
// collection, import/export, and deck packages.
package card

import (
	"strconv"
	"strings"
)

// Variant identifies the printing treatment of a card face.
type Variant string

const (
	VariantNormal     Variant = "Normal"
	VariantFoil       Variant = "Foil"
	VariantEnchanted  Variant = "Enchanted"
	VariantEpic       Variant = "Epic"
	VariantIconic     Variant = "Iconic"
	VariantPromo      Variant = "Promo"
	VariantBorderless Variant = "Borderless"
)

// Variants lists every known variant in canonical order.
var Variants = []Variant{
	VariantNormal,
	VariantFoil,
	VariantEnchanted,
	VariantEpic,
	VariantIconic,
	VariantPromo,
	VariantBorderless,
}

// ParseVariant maps a string to a known Variant, case-insensitively.
// Returns false when the string names no known variant.
func ParseVariant(s string) (Variant, bool) {
	for _, v := range Variants {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}

// IsFungible reports whether the variant belongs to the fungible class.
// Normal and foil copies of the same card are interchangeable for
// ownership purposes; every other variant is a distinct collectible.
func (v Variant) IsFungible() bool {
	return v == VariantNormal || v == VariantFoil || v == ""
}

// IsDistinct reports whether the variant is its own collectible identity.
func (v Variant) IsDistinct() bool {
	return !v.IsFungible()
}

// Face represents one printing of a card: a specific set and variant.
// Faces are immutable catalog entries; the collection stores denormalized
// copies so a catalog reload never invalidates owned entries.
type Face struct {
	// ID is an opaque stable identifier assigned by the catalog data.
	ID string `json:"id"`

	Name    string `json:"name"`
	SetName string `json:"setName"`

	// CollectorNumber is the number within the set. Nil when the data
	// source does not carry one (some promo printings).
	CollectorNumber *int `json:"cardNumber,omitempty"`

	// UniqueID has the form "<SET>-<NUM>" (e.g. "TFC-004"). Promo and
	// regional printings carry it to keep them apart from same-named
	// cards. Empty when absent.
	UniqueID string `json:"uniqueId,omitempty"`

	Variant Variant `json:"variant"`

	Cost   int    `json:"cost"`
	Rarity string `json:"rarity"`

	// InkColor may be empty or a dual-color string like "Amber-Steel".
	// Absence of color data must never exclude a face from matching.
	InkColor string `json:"color,omitempty"`

	CardText string `json:"bodyText,omitempty"`

	// Printing is resolved once at catalog load time. See ResolvePrinting.
	Printing Printing `json:"-"`
}

// PrintingKind tags how a face can be pinned to a physical printing.
type PrintingKind int

const (
	// PrintingUnidentified means the face has neither a unique ID nor a
	// collector number.
	PrintingUnidentified PrintingKind = iota

	// PrintingIdentified means the face carries an explicit unique ID.
	PrintingIdentified

	// PrintingNumbered means the face is located by set and collector
	// number only.
	PrintingNumbered
)

// Printing is the resolved printing identity of a face. Resolving it once
// at load time keeps the optional-field branching out of the equivalence
// and export code paths.
type Printing struct {
	Kind     PrintingKind
	UniqueID string
	SetName  string
	Number   int // 0 when no number could be resolved
}

// ResolvePrinting derives the printing identity from a face's raw fields.
// An identified face still resolves a number from the unique ID suffix
// when possible, so exporters need no second parse.
func ResolvePrinting(f Face) Printing {
	if f.UniqueID != "" {
		n := 0
		if f.CollectorNumber != nil {
			n = *f.CollectorNumber
		} else {
			n = numberFromUniqueID(f.UniqueID)
		}
		return Printing{Kind: PrintingIdentified, UniqueID: f.UniqueID, SetName: f.SetName, Number: n}
	}
	if f.CollectorNumber != nil {
		return Printing{Kind: PrintingNumbered, SetName: f.SetName, Number: *f.CollectorNumber}
	}
	return Printing{Kind: PrintingUnidentified, SetName: f.SetName}
}

// numberFromUniqueID parses the integer suffix of a "<SET>-<NUM>" ID.
// Returns 0 when the suffix is missing or not numeric.
func numberFromUniqueID(uniqueID string) int {
	idx := strings.LastIndex(uniqueID, "-")
	if idx < 0 || idx == len(uniqueID)-1 {
		return 0
	}
	n, err := strconv.Atoi(uniqueID[idx+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

package collectionexport

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
)

// DreambornHeader is the bulk dialect's fixed header line.
const DreambornHeader = "Set Number,Card Number,Variant,Count"

// unknownSetNumber is the sentinel for sets the dialect has no code for.
const unknownSetNumber = "999"

// setNumbers maps known set names to the dialect's 3-digit set codes, in
// release order of the card data files.
var setNumbers = map[string]string{
	"The First Chapter":     "001",
	"Rise of the Floodborn": "002",
	"Into the Inklands":     "003",
	"Ursula's Return":       "004",
	"Shimmering Skies":      "005",
	"Azurite Sea":           "006",
	"Fabled":                "007",
	"Archazia's Island":     "008",
	"Reign of Jafar":        "009",
	"Whispers in the Well":  "010",
}

// DreambornResult carries the rendered text plus skip diagnostics.
type DreambornResult struct {
	Content string
	// Skipped counts rows omitted because no card number could be
	// resolved. Skips are logged, never fatal.
	Skipped int
}

// dreambornVariant maps a variant onto the dialect's lowercase token.
// The switch is exhaustive over the enum so a newly added variant fails
// to compile without an explicit mapping decision here.
func dreambornVariant(v card.Variant) string {
	switch v {
	case card.VariantFoil:
		return "foil"
	case card.VariantEnchanted:
		return "enchanted"
	case card.VariantPromo:
		return "promo"
	case card.VariantBorderless:
		return "borderless"
	case card.VariantNormal, card.VariantEpic, card.VariantIconic:
		// The dialect has no slot for Epic or Iconic; folding them into
		// normal is deliberate lossy behavior, not a bug.
		return "normal"
	default:
		return "normal"
	}
}

// DreambornBulk renders one row per (set number, card number, variant,
// count), sorted by set then card number. The card number comes from the
// collector number when present, otherwise from the numeric suffix of
// the unique ID; rows resolving neither are skipped and counted.
func DreambornBulk(faces []card.Face, quantity QuantityFunc, logger *slog.Logger) DreambornResult {
	if logger == nil {
		logger = slog.Default()
	}

	type row struct {
		setNumber  string
		cardNumber int
		variant    string
		count      int
	}

	rows := make([]row, 0, len(faces))
	skipped := 0
	for _, f := range faces {
		number := resolveCardNumber(f)
		if number == 0 {
			skipped++
			logger.Warn("Skipping card with unresolvable number",
				"card", f.Name,
				"set", f.SetName,
				"uniqueId", f.UniqueID)
			continue
		}

		setNumber, ok := setNumbers[f.SetName]
		if !ok {
			setNumber = unknownSetNumber
		}

		rows = append(rows, row{
			setNumber:  setNumber,
			cardNumber: number,
			variant:    dreambornVariant(f.Variant),
			count:      quantity(f),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].setNumber != rows[j].setNumber {
			return rows[i].setNumber < rows[j].setNumber
		}
		return rows[i].cardNumber < rows[j].cardNumber
	})

	var sb strings.Builder
	sb.WriteString(DreambornHeader)
	sb.WriteString("\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%d,%s,%d\n", r.setNumber, r.cardNumber, r.variant, r.count))
	}

	return DreambornResult{Content: sb.String(), Skipped: skipped}
}

// resolveCardNumber returns the card's number within its set, or 0 when
// no number can be resolved.
func resolveCardNumber(f card.Face) int {
	if f.CollectorNumber != nil && *f.CollectorNumber > 0 {
		return *f.CollectorNumber
	}
	// Printing is resolved at catalog load; for denormalized faces that
	// predate resolution, fall back to re-deriving it.
	if f.Printing.Number > 0 {
		return f.Printing.Number
	}
	return card.ResolvePrinting(f).Number
}

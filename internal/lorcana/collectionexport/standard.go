// Package collectionexport renders collection state into the supported
// CSV dialects. Both formatters are pure functions of the export set and
// a quantity lookup, so identical input always produces byte-identical
// output.
package collectionexport

import (
	"fmt"
	"strings"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
)

// Column identifies one Standard CSV column.
type Column string

const (
	ColumnCardName Column = "Card Name"
	ColumnSetName  Column = "Set Name"
	ColumnVariant  Column = "Variant"
	ColumnQuantity Column = "Quantity"
)

// canonicalColumns is the fixed order columns appear in regardless of the
// order the caller selected them.
var canonicalColumns = []Column{ColumnCardName, ColumnSetName, ColumnVariant, ColumnQuantity}

// AllColumns returns the full column set in canonical order.
func AllColumns() []Column {
	out := make([]Column, len(canonicalColumns))
	copy(out, canonicalColumns)
	return out
}

// QuantityFunc resolves the owned quantity for a face. Formatters prefer
// it over counting rows so fungible-class aggregation stays in one place.
type QuantityFunc func(card.Face) int

// StandardCSV renders one row per distinct (name, set, variant) triple in
// the export set, with the selected columns in canonical order. String
// fields are double-quoted unconditionally with embedded quotes doubled.
// A row's quantity sums over every face folding into its triple, so lots
// kept apart by unique ID still count once each.
func StandardCSV(faces []card.Face, quantity QuantityFunc, columns []Column) (string, error) {
	selected := selectColumns(columns)
	if len(selected) == 0 {
		return "", fmt.Errorf("no columns selected")
	}

	type triple struct {
		name, set string
		variant   card.Variant
	}
	type faceID struct {
		triple   triple
		uniqueID string
	}

	var order []triple
	totals := make(map[triple]int, len(faces))
	counted := make(map[faceID]bool, len(faces))
	rows := make(map[triple]card.Face, len(faces))

	for _, f := range faces {
		t := triple{name: f.Name, set: f.SetName, variant: f.Variant}
		id := faceID{triple: t, uniqueID: f.UniqueID}
		if counted[id] {
			continue
		}
		counted[id] = true
		if _, ok := rows[t]; !ok {
			rows[t] = f
			order = append(order, t)
		}
		totals[t] += quantity(f)
	}

	var sb strings.Builder
	header := make([]string, len(selected))
	for i, c := range selected {
		header[i] = string(c)
	}
	sb.WriteString(strings.Join(header, ","))
	sb.WriteString("\n")

	for _, t := range order {
		f := rows[t]
		fields := make([]string, 0, len(selected))
		for _, c := range selected {
			switch c {
			case ColumnCardName:
				fields = append(fields, quote(f.Name))
			case ColumnSetName:
				fields = append(fields, quote(f.SetName))
			case ColumnVariant:
				fields = append(fields, quote(string(f.Variant)))
			case ColumnQuantity:
				fields = append(fields, fmt.Sprintf("%d", totals[t]))
			}
		}
		sb.WriteString(strings.Join(fields, ","))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// selectColumns filters the canonical order down to the caller's
// selection. Unknown column names are ignored.
func selectColumns(columns []Column) []Column {
	if len(columns) == 0 {
		return AllColumns()
	}
	want := make(map[Column]bool, len(columns))
	for _, c := range columns {
		want[c] = true
	}
	var out []Column
	for _, c := range canonicalColumns {
		if want[c] {
			out = append(out, c)
		}
	}
	return out
}

// quote wraps a field in double quotes, doubling embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

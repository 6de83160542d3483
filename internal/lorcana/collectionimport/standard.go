package collectionimport

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
)

// parseStandard parses Standard CSV rows into records. The dialect is the
// exporter's own output: a header naming a subset of the canonical columns,
// one row per (name, set, variant) with its quantity. Set and variant
// columns become matching hints, so a full export re-imports to the same
// collection contents.
func parseStandard(input string) []Record {
	reader := csv.NewReader(strings.NewReader(input))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		rows = splitRowsLoose(input)
	}
	if len(rows) == 0 {
		return nil
	}

	name, set, variant, qty := -1, -1, -1, -1
	for i, col := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "card name", "name":
			name = i
		case "set name", "set":
			set = i
		case "variant":
			variant = i
		case "quantity", "count":
			qty = i
		}
	}

	start := 1
	if name < 0 {
		// No recognizable header; assume the canonical column order.
		name, set, variant, qty = 0, 1, 2, 3
		start = 0
	}

	var records []Record
	for _, row := range rows[start:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, parseStandardRow(row, name, set, variant, qty))
	}
	return records
}

// parseStandardRow converts one data row into a record. A quantity cell
// that is present but not a positive integer fails the record rather than
// silently defaulting.
func parseStandardRow(row []string, name, set, variant, qty int) Record {
	rec := Record{OriginalLine: strings.Join(row, ","), Quantity: 1}

	if name < len(row) {
		rec.Name = strings.TrimSpace(row[name])
	}
	if set >= 0 && set < len(row) {
		rec.SetHint = strings.TrimSpace(row[set])
	}
	if variant >= 0 && variant < len(row) {
		if v, ok := card.ParseVariant(strings.TrimSpace(row[variant])); ok {
			rec.VariantHint = v
			rec.HasVariant = true
		}
	}
	if qty >= 0 && qty < len(row) {
		cell := strings.TrimSpace(row[qty])
		if cell != "" {
			n, err := strconv.Atoi(cell)
			if err != nil || n < 1 {
				rec.Reason = "unparseable quantity"
				return rec
			}
			rec.Quantity = n
		}
	}
	return rec
}

package collectionimport

import (
	"encoding/csv"
	"sort"
	"strconv"
	"strings"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
)

// dreambornColumns maps the header tokens the Dreamborn dialect uses to
// card variants. "normal" and "foil" are independent quantity columns on
// one row; the remaining columns appear only in extended exports.
var dreambornColumns = map[string]card.Variant{
	"normal":     card.VariantNormal,
	"foil":       card.VariantFoil,
	"enchanted":  card.VariantEnchanted,
	"promo":      card.VariantPromo,
	"borderless": card.VariantBorderless,
}

// parseDreamborn parses Dreamborn CSV rows into records. A single row
// may yield several records, one per non-zero variant column. Rows
// without a usable name come back as records with an empty name so the
// failure surfaces in the result instead of being dropped.
func parseDreamborn(input string) []Record {
	reader := csv.NewReader(strings.NewReader(input))
	reader.FieldsPerRecord = -1 // rows may vary; validate per row
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		// encoding/csv gives up on structurally broken input; fall back
		// to per-line parsing so good rows still import.
		rows = splitRowsLoose(input)
	}
	if len(rows) == 0 {
		return nil
	}

	layout, start := detectLayout(rows)

	var records []Record
	for _, row := range rows[start:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, parseRow(row, layout)...)
	}
	return records
}

// layout maps column indexes for one Dreamborn file.
type layout struct {
	name     int
	set      int // -1 when absent
	variants map[int]card.Variant
}

// defaultLayout matches the headerless bulk form: normal, foil, "name", set.
func defaultLayout() layout {
	return layout{
		name: 2,
		set:  3,
		variants: map[int]card.Variant{
			0: card.VariantNormal,
			1: card.VariantFoil,
		},
	}
}

// detectLayout inspects the first row for a header. Returns the column
// layout and the index of the first data row.
func detectLayout(rows [][]string) (layout, int) {
	header := rows[0]
	l := layout{name: -1, set: -1, variants: make(map[int]card.Variant)}
	for i, col := range header {
		token := strings.ToLower(strings.TrimSpace(col))
		switch token {
		case "name", "card name":
			l.name = i
		case "set", "set name":
			l.set = i
		default:
			if v, ok := dreambornColumns[token]; ok {
				l.variants[i] = v
			}
		}
	}

	if l.name >= 0 && len(l.variants) > 0 {
		return l, 1
	}
	return defaultLayout(), 0
}

// parseRow converts one data row into zero or more records.
func parseRow(row []string, l layout) []Record {
	original := strings.Join(row, ",")

	if l.name >= len(row) {
		return []Record{{OriginalLine: original, Quantity: 1}}
	}
	name := strings.TrimSpace(row[l.name])
	if name == "" {
		return []Record{{OriginalLine: original, Quantity: 1}}
	}

	setHint := ""
	if l.set >= 0 && l.set < len(row) {
		setHint = strings.TrimSpace(row[l.set])
	}

	cols := make([]int, 0, len(l.variants))
	for i := range l.variants {
		cols = append(cols, i)
	}
	sort.Ints(cols)

	var records []Record
	sawInvalid := false
	for _, i := range cols {
		variant := l.variants[i]
		if i >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[i])
		qty, err := strconv.Atoi(cell)
		if err != nil {
			if cell != "" {
				sawInvalid = true
			}
			continue
		}
		if qty <= 0 {
			continue
		}
		records = append(records, Record{
			OriginalLine: original,
			Name:         name,
			SetHint:      setHint,
			VariantHint:  variant,
			HasVariant:   true,
			Quantity:     qty,
		})
	}

	// A named row whose quantity cells all failed to parse must surface
	// as a failure, not vanish from the result.
	if len(records) == 0 && sawInvalid {
		return []Record{{OriginalLine: original, Name: name, Quantity: 1, Reason: "unparseable quantity"}}
	}
	return records
}

// splitRowsLoose is the fallback row splitter for malformed CSV: it
// splits on commas and strips surrounding quotes, which is enough for
// the bulk dialect's simple quoting.
func splitRowsLoose(input string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.Trim(strings.TrimSpace(fields[i]), `"`)
		}
		rows = append(rows, fields)
	}
	return rows
}

func isBlankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

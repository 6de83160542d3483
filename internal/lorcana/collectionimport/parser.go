// Package collectionimport converts raw import text into catalog-matched
// card records. Parsing never mutates collection state; applying a result
// is a separate, explicit step.
package collectionimport

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/collection"
)

// Format selects the import dialect.
type Format string

const (
	// FormatAuto detects the dialect from the input itself.
	FormatAuto Format = "auto"
	// FormatFreeText is a plain card list, one card per line.
	FormatFreeText Format = "freetext"
	// FormatStandard is the Standard CSV dialect the exporter emits.
	FormatStandard Format = "standard"
	// FormatDreamborn is the Dreamborn CSV dialect.
	FormatDreamborn Format = "dreamborn"
)

// Record is one parsed import line before catalog matching. Records are
// ephemeral; they live only for the duration of one import session.
type Record struct {
	OriginalLine string
	Name         string
	SetHint      string
	VariantHint  card.Variant
	HasVariant   bool
	Quantity     int

	// Reason marks a record whose line could not be parsed at all (for
	// example an unparseable quantity cell). Such records skip matching
	// and surface in Result.Failed with this reason.
	Reason string
}

// Match pairs a matched catalog face with the imported quantity.
type Match struct {
	Face     card.Face
	Quantity int
}

// Failure describes a line that could not be parsed or matched. Failures
// are ordinary result values, never errors: the batch always continues.
type Failure struct {
	OriginalLine string
	Reason       string
}

// Result is the outcome of one import session.
type Result struct {
	Successful    []Match
	Failed        []Failure
	RowsProcessed int
}

// CatalogSource is the slice of the catalog the parser needs.
type CatalogSource interface {
	FindByName(name string) []card.Face
}

// ProgressFunc receives fractional progress in [0, 1] after each record.
type ProgressFunc func(fraction float64)

// Parser parses and matches import text against the catalog.
type Parser struct {
	catalog CatalogSource
	logger  *slog.Logger
}

// NewParser creates an import parser backed by the given catalog.
func NewParser(catalog CatalogSource, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{catalog: catalog, logger: logger}
}

// Quantity prefix: "2x " or "2× ", case-insensitive.
var quantityPrefix = regexp.MustCompile(`(?i)^(\d+)\s*[x×]\s+`)

// Trailing parenthesized hint: "Elsa - Snow Queen (Foil)".
var trailingParen = regexp.MustCompile(`^(.*?)\s*\(([^)]+)\)\s*$`)

// Headerless Dreamborn row: leading integer, integer, quoted name.
var dreambornRow = regexp.MustCompile(`^\d+,\d+,"[^"]+",`)

// DetectFormat inspects the first few non-empty lines and guesses the
// dialect. Detection is heuristic; callers can always pass an explicit
// format to Parse instead.
func DetectFormat(input string) Format {
	lines := strings.Split(input, "\n")
	checked := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "normal") &&
			strings.Contains(lower, "foil") &&
			strings.Contains(lower, "name") {
			return FormatDreamborn
		}
		if dreambornRow.MatchString(line) {
			return FormatDreamborn
		}
		if strings.Contains(lower, "card name") {
			return FormatStandard
		}
		checked++
		if checked >= 5 {
			break
		}
	}
	return FormatFreeText
}

// Parse parses the input in the given dialect, matches every record
// against the catalog, and reports progress after each record. The
// context is checked before each record; cancelling returns the records
// matched so far along with ctx.Err().
func (p *Parser) Parse(ctx context.Context, input string, format Format, progress ProgressFunc) (*Result, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("empty import text")
	}

	if format == FormatAuto || format == "" {
		format = DetectFormat(input)
		p.logger.Debug("Detected import format", "format", format)
	}

	var records []Record
	switch format {
	case FormatFreeText:
		records = parseFreeText(input)
	case FormatStandard:
		records = parseStandard(input)
	case FormatDreamborn:
		records = parseDreamborn(input)
	default:
		return nil, fmt.Errorf("unsupported import format: %s", format)
	}

	result := &Result{}
	total := len(records)
	for i, rec := range records {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if rec.Reason != "" {
			result.Failed = append(result.Failed, Failure{
				OriginalLine: rec.OriginalLine,
				Reason:       rec.Reason,
			})
		} else if rec.Name == "" {
			result.Failed = append(result.Failed, Failure{
				OriginalLine: rec.OriginalLine,
				Reason:       "missing card name",
			})
		} else if face, ok := p.match(rec); ok {
			result.Successful = append(result.Successful, Match{Face: face, Quantity: rec.Quantity})
		} else {
			result.Failed = append(result.Failed, Failure{
				OriginalLine: rec.OriginalLine,
				Reason:       "card not found",
			})
		}
		result.RowsProcessed++

		if progress != nil {
			progress(float64(i+1) / float64(total))
		}
	}

	p.logger.Info("Import parsed",
		"format", format,
		"matched", len(result.Successful),
		"failed", len(result.Failed))
	return result, nil
}

// parseFreeText applies the line grammar: [<N>x ]<Card Name>[ (<Variant>)].
// Blank lines are skipped; quantity defaults to 1.
func parseFreeText(input string) []Record {
	var records []Record
	for _, raw := range strings.Split(input, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		rec := Record{OriginalLine: line, Quantity: 1}
		rest := line

		if m := quantityPrefix.FindStringSubmatch(rest); m != nil {
			if q, err := strconv.Atoi(m[1]); err == nil && q >= 1 {
				rec.Quantity = q
				rest = rest[len(m[0]):]
			}
		}

		// A trailing parenthesized token is a variant hint only when it
		// names a known variant; otherwise it stays part of the name.
		if m := trailingParen.FindStringSubmatch(rest); m != nil {
			if v, ok := card.ParseVariant(m[2]); ok {
				rec.VariantHint = v
				rec.HasVariant = true
				rest = m[1]
			}
		}

		rec.Name = strings.TrimSpace(rest)
		records = append(records, rec)
	}
	return records
}

// match finds the best catalog face for a record. Matching requires exact
// case-insensitive name equality; there is no fuzzy matching, which keeps
// false positives out of the collection. Among same-named faces a set
// hint is preferred first, then a variant hint, then the Normal face.
func (p *Parser) match(rec Record) (card.Face, bool) {
	candidates := p.catalog.FindByName(rec.Name)
	if len(candidates) == 0 {
		return card.Face{}, false
	}

	best := candidates[0]
	bestScore := -1
	for _, f := range candidates {
		score := 0
		if rec.SetHint != "" && strings.EqualFold(f.SetName, rec.SetHint) {
			score += 4
		}
		if rec.HasVariant {
			if f.Variant == rec.VariantHint {
				score += 2
			}
		} else if f.Variant == card.VariantNormal {
			score += 1
		}
		if score > bestScore {
			best = f
			bestScore = score
		}
	}
	return best, true
}

// Apply adds every successful match to the aggregator. It is the explicit
// confirmation step after the user reviews the parse result. Each add is
// an independent atomic unit, so cancellation leaves a consistent,
// partially-applied collection.
func Apply(ctx context.Context, result *Result, agg *collection.Aggregator) (applied int, err error) {
	for _, m := range result.Successful {
		select {
		case <-ctx.Done():
			return applied, ctx.Err()
		default:
		}
		agg.Add(ctx, m.Face, m.Quantity)
		applied++
	}
	return applied, nil
}

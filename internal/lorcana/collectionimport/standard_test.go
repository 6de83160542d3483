package collectionimport

import (
	"context"
	"testing"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/collection"
	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/collectionexport"
)

func TestParse_StandardCSV(t *testing.T) {
	input := `Card Name,Set Name,Variant,Quantity
"Elsa - Snow Queen","Azurite Sea","Normal",2
"Mickey Mouse - Brave Little Tailor","The First Chapter","Enchanted",1`

	result, err := newTestParser().Parse(context.Background(), input, FormatStandard, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(result.Successful) != 2 {
		t.Fatalf("Successful = %d, want 2 (failed: %v)", len(result.Successful), result.Failed)
	}
	if result.Successful[0].Face.ID != "6" || result.Successful[0].Quantity != 2 {
		t.Errorf("first match = %+v, want 2x Azurite Sea Elsa", result.Successful[0])
	}
	if result.Successful[1].Face.Variant != card.VariantEnchanted || result.Successful[1].Quantity != 1 {
		t.Errorf("second match = %+v, want 1x enchanted Mickey", result.Successful[1])
	}
}

func TestParse_StandardCSVAutoDetected(t *testing.T) {
	input := `Card Name,Quantity
"Ariel - On Human Legs",3`

	result, err := newTestParser().Parse(context.Background(), input, FormatAuto, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(result.Successful) != 1 || result.Successful[0].Quantity != 3 {
		t.Fatalf("Successful = %+v, want 3x Ariel", result.Successful)
	}
}

func TestParseStandard_ColumnSubsetsAndOrder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Record
	}{
		{
			name:  "all columns",
			input: "Card Name,Set Name,Variant,Quantity\n\"Elsa - Snow Queen\",\"Fabled\",\"Foil\",4",
			want:  Record{Name: "Elsa - Snow Queen", SetHint: "Fabled", VariantHint: card.VariantFoil, HasVariant: true, Quantity: 4},
		},
		{
			name:  "name and quantity only",
			input: "Card Name,Quantity\n\"Elsa - Snow Queen\",2",
			want:  Record{Name: "Elsa - Snow Queen", Quantity: 2},
		},
		{
			name:  "missing quantity column defaults to one",
			input: "Card Name,Variant\n\"Elsa - Snow Queen\",\"Normal\"",
			want:  Record{Name: "Elsa - Snow Queen", VariantHint: card.VariantNormal, HasVariant: true, Quantity: 1},
		},
		{
			name:  "headerless canonical order",
			input: `"Elsa - Snow Queen","Fabled","Normal",2`,
			want:  Record{Name: "Elsa - Snow Queen", SetHint: "Fabled", VariantHint: card.VariantNormal, HasVariant: true, Quantity: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := parseStandard(tt.input)
			if len(records) != 1 {
				t.Fatalf("parseStandard() returned %d records, want 1", len(records))
			}
			got := records[0]
			got.OriginalLine = ""
			if got != tt.want {
				t.Errorf("parseStandard() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseStandard_UnparseableQuantityFails(t *testing.T) {
	input := `Card Name,Quantity
"Elsa - Snow Queen",many`

	result, err := newTestParser().Parse(context.Background(), input, FormatStandard, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(result.Successful) != 0 {
		t.Errorf("Successful = %v, want none", result.Successful)
	}
	if len(result.Failed) != 1 || result.Failed[0].Reason != "unparseable quantity" {
		t.Fatalf("Failed = %v, want one 'unparseable quantity'", result.Failed)
	}
}

func TestStandardCSV_RoundTrip(t *testing.T) {
	catalog := &stubCatalog{faces: testFaces()}
	ctx := context.Background()

	original := collection.New(collection.Config{})
	original.Add(ctx, testFaces()[0], 2) // Mickey normal, TFC
	original.Add(ctx, testFaces()[2], 1) // Mickey enchanted, TFC
	original.Add(ctx, testFaces()[5], 3) // Elsa normal, Azurite Sea

	entries := original.Entries()
	faces := make([]card.Face, len(entries))
	quantities := make(map[card.Face]int, len(entries))
	for i, e := range entries {
		faces[i] = e.Face
		quantities[e.Face] += e.Quantity
	}

	exported, err := collectionexport.StandardCSV(faces, func(f card.Face) int {
		return quantities[f]
	}, nil)
	if err != nil {
		t.Fatalf("StandardCSV() error = %v", err)
	}

	// Re-importing a full export reproduces the same lots.
	result, err := NewParser(catalog, nil).Parse(ctx, exported, FormatAuto, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(result.Failed) != 0 {
		t.Fatalf("Failed = %v, want none", result.Failed)
	}

	restored := collection.New(collection.Config{})
	if _, err := Apply(ctx, result, restored); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	type lot struct {
		name, set string
		variant   card.Variant
	}
	lots := func(entries []collection.Entry) map[lot]int {
		out := make(map[lot]int)
		for _, e := range entries {
			out[lot{e.Face.Name, e.Face.SetName, e.Face.Variant}] += e.Quantity
		}
		return out
	}

	want := lots(original.Entries())
	got := lots(restored.Entries())
	if len(got) != len(want) {
		t.Fatalf("restored %d lots, want %d", len(got), len(want))
	}
	for l, qty := range want {
		if got[l] != qty {
			t.Errorf("lot %v = %d, want %d", l, got[l], qty)
		}
	}
}

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
)

func writeDataFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "01-the-first-chapter.json", `{
		"setName": "The First Chapter",
		"cards": [
			{"id": "tfc-1", "name": "Elsa - Snow Queen", "cardNumber": 4, "uniqueId": "TFC-004", "variant": "normal", "cost": 8, "rarity": "Legendary"},
			{"id": "tfc-2", "name": "Elsa - Snow Queen", "cardNumber": 207, "uniqueId": "TFC-207", "variant": "enchanted", "cost": 8, "rarity": "Enchanted"}
		]
	}`)
	writeDataFile(t, dir, "02-azurite-sea.json", `{
		"setName": "Azurite Sea",
		"cards": [
			{"id": "azs-1", "name": "Elsa - Snow Queen", "cardNumber": 42, "uniqueId": "AZS-042", "variant": "normal", "cost": 8, "rarity": "Legendary"}
		]
	}`)

	svc := NewService(nil)
	if err := svc.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	if svc.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", svc.Len())
	}

	found := svc.FindByName("elsa - snow queen")
	if len(found) != 3 {
		t.Fatalf("FindByName() returned %d faces, want 3", len(found))
	}
	// Lexical file order puts The First Chapter before Azurite Sea.
	if found[0].SetName != "The First Chapter" || found[2].SetName != "Azurite Sea" {
		t.Errorf("catalog order not preserved: %q then %q", found[0].SetName, found[2].SetName)
	}

	inSet := svc.CardsForSet("Azurite Sea")
	if len(inSet) != 1 || inSet[0].ID != "azs-1" {
		t.Errorf("CardsForSet() = %v, want single azs-1", inSet)
	}
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	svc := NewService(nil)
	if err := svc.LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("LoadDir() on a missing directory should fail")
	}
}

func TestLoadDir_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "bad.json", `{"setName": "Broken", "cards": [`)

	svc := NewService(nil)
	if err := svc.LoadDir(dir); err == nil {
		t.Fatal("LoadDir() should surface parse errors")
	}
}

func TestLoadDir_LegacyFields(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "legacy.json", `{
		"setName": "Rise of the Floodborn",
		"cards": [
			{"id": "rf-1", "Name": "Gaston - Arrogant Hunter", "Card_Num": 110, "Unique_ID": "ROF-110", "Cost": 2, "Rarity": "Common", "Color": "Ruby", "Body_Text": "Reckless."},
			{"id": "rf-2", "Name": "Gaston - Arrogant Hunter", "Card_Num": 215, "Unique_ID": "ROF-215", "Cost": 2, "Rarity": "Enchanted"}
		]
	}`)

	svc := NewService(nil)
	if err := svc.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	faces := svc.FindByName("Gaston - Arrogant Hunter")
	if len(faces) != 2 {
		t.Fatalf("FindByName() returned %d faces, want 2", len(faces))
	}

	f := faces[0]
	if f.CollectorNumber == nil || *f.CollectorNumber != 110 {
		t.Errorf("CollectorNumber = %v, want 110", f.CollectorNumber)
	}
	if f.UniqueID != "ROF-110" || f.Cost != 2 || f.InkColor != "Ruby" || f.CardText != "Reckless." {
		t.Errorf("legacy fields not mapped: %+v", f)
	}
	if f.Variant != card.VariantNormal {
		t.Errorf("Variant = %q, want normal", f.Variant)
	}
	// Legacy files carry no variant field; the rarity marks the printing.
	if faces[1].Variant != card.VariantEnchanted {
		t.Errorf("Variant = %q, want enchanted inferred from rarity", faces[1].Variant)
	}
}

func TestReplace_ResolvesPrintings(t *testing.T) {
	n := 42
	svc := NewService(nil)
	svc.Replace([]card.Face{
		{ID: "a", Name: "Ariel - Spectacular Singer", CollectorNumber: &n},
		{ID: "b", Name: "Ariel - Spectacular Singer", UniqueID: "TFC-139"},
		{ID: "c", Name: "Ariel - Spectacular Singer"},
	})

	faces := svc.AllCards()
	if faces[0].Printing.Kind != card.PrintingNumbered || faces[0].Printing.Number != 42 {
		t.Errorf("numbered printing not resolved: %+v", faces[0].Printing)
	}
	if faces[1].Printing.Kind != card.PrintingIdentified {
		t.Errorf("identified printing not resolved: %+v", faces[1].Printing)
	}
	if faces[2].Printing.Kind != card.PrintingUnidentified {
		t.Errorf("unidentified printing not resolved: %+v", faces[2].Printing)
	}
}

func TestVariantFromRarity(t *testing.T) {
	tests := []struct {
		rarity string
		want   card.Variant
	}{
		{"Enchanted", card.VariantEnchanted},
		{"enchanted", card.VariantEnchanted},
		{"Epic", card.VariantEpic},
		{"Iconic", card.VariantIconic},
		{"Promo", card.VariantPromo},
		{"Legendary", card.VariantNormal},
		{"", card.VariantNormal},
	}

	for _, tt := range tests {
		t.Run(tt.rarity, func(t *testing.T) {
			if got := variantFromRarity(tt.rarity); got != tt.want {
				t.Errorf("variantFromRarity(%q) = %q, want %q", tt.rarity, got, tt.want)
			}
		})
	}
}

package catalog

import (
	"testing"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
)

func testCatalog() *Service {
	svc := NewService(nil)
	svc.Replace([]card.Face{
		{ID: "tfc-elsa-n", Name: "Elsa - Snow Queen", SetName: "The First Chapter", Variant: card.VariantNormal},
		{ID: "tfc-elsa-e", Name: "Elsa - Snow Queen", SetName: "The First Chapter", Variant: card.VariantEnchanted},
		{ID: "azs-elsa-n", Name: "Elsa - Snow Queen", SetName: "Azurite Sea", Variant: card.VariantNormal},
		{ID: "p1-elsa", Name: "Elsa - Snow Queen", SetName: "Promo Set 1", Variant: card.VariantPromo, UniqueID: "P1-031"},
		{ID: "tfc-olaf", Name: "Olaf - Friendly Snowman", SetName: "The First Chapter", Variant: card.VariantNormal},
	})
	return svc
}

func TestBuildGroup_SpansVariantsAndSets(t *testing.T) {
	svc := testCatalog()

	g := svc.BuildGroup(svc.AllCards()[0])
	if len(g.Cards) != 3 {
		t.Fatalf("group has %d cards, want 3 (promo excluded)", len(g.Cards))
	}
	if !g.IsReprint() {
		t.Error("IsReprint() = false, want true")
	}
	if g.PrimaryCard().ID != "tfc-elsa-n" {
		t.Errorf("PrimaryCard() = %s, want first face in catalog order", g.PrimaryCard().ID)
	}
	for _, f := range g.Cards {
		if f.UniqueID != "" {
			t.Errorf("unique-ID face %s leaked into a name group", f.ID)
		}
	}
}

func TestBuildGroup_UniqueIDSingleton(t *testing.T) {
	svc := testCatalog()

	promo := svc.AllCards()[3]
	g := svc.BuildGroup(promo)
	if len(g.Cards) != 1 || g.Cards[0].ID != "p1-elsa" {
		t.Fatalf("promo group = %v, want singleton", g.Cards)
	}
	if g.IsReprint() {
		t.Error("a singleton group must not read as a reprint")
	}
}

func TestBuildGroup_UnknownFaceFallsBackToItself(t *testing.T) {
	svc := testCatalog()

	stray := card.Face{ID: "x", Name: "Card Not In Catalog"}
	g := svc.BuildGroup(stray)
	if len(g.Cards) != 1 || g.Cards[0].ID != "x" {
		t.Fatalf("group for unknown face = %v, want the face itself", g.Cards)
	}
}

func TestBuildAllGroups(t *testing.T) {
	svc := testCatalog()

	groups := svc.BuildAllGroups()
	// One name group per distinct name plus one singleton per unique ID.
	if len(groups) != 3 {
		t.Fatalf("BuildAllGroups() returned %d groups, want 3", len(groups))
	}
	if groups[0].Name != "Elsa - Snow Queen" || len(groups[0].Cards) != 3 {
		t.Errorf("first group = %q with %d cards", groups[0].Name, len(groups[0].Cards))
	}
	if groups[1].Cards[0].UniqueID != "P1-031" {
		t.Errorf("second group should be the promo singleton, got %+v", groups[1].Cards[0])
	}
	if groups[2].Name != "Olaf - Friendly Snowman" {
		t.Errorf("third group = %q, want Olaf", groups[2].Name)
	}
}

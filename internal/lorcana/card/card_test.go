package card

import "testing"

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in     string
		want   Variant
		wantOK bool
	}{
		{"Normal", VariantNormal, true},
		{"normal", VariantNormal, true},
		{"FOIL", VariantFoil, true},
		{"enchanted", VariantEnchanted, true},
		{"Epic", VariantEpic, true},
		{"iconic", VariantIconic, true},
		{"promo", VariantPromo, true},
		{"Borderless", VariantBorderless, true},
		{"holo", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseVariant(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseVariant(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestVariantClasses(t *testing.T) {
	fungible := []Variant{VariantNormal, VariantFoil, ""}
	for _, v := range fungible {
		if !v.IsFungible() || v.IsDistinct() {
			t.Errorf("%q should be fungible", v)
		}
	}

	distinct := []Variant{VariantEnchanted, VariantEpic, VariantIconic, VariantPromo, VariantBorderless}
	for _, v := range distinct {
		if v.IsFungible() || !v.IsDistinct() {
			t.Errorf("%q should be distinct", v)
		}
	}
}

func TestResolvePrinting(t *testing.T) {
	n := 17

	tests := []struct {
		name string
		face Face
		want Printing
	}{
		{
			name: "unique id with collector number",
			face: Face{SetName: "Fabled", UniqueID: "FAB-017", CollectorNumber: &n},
			want: Printing{Kind: PrintingIdentified, UniqueID: "FAB-017", SetName: "Fabled", Number: 17},
		},
		{
			name: "unique id without collector number parses the suffix",
			face: Face{SetName: "Promo Set 1", UniqueID: "P1-023"},
			want: Printing{Kind: PrintingIdentified, UniqueID: "P1-023", SetName: "Promo Set 1", Number: 23},
		},
		{
			name: "unique id with junk suffix resolves no number",
			face: Face{SetName: "Promo Set 1", UniqueID: "P1-XX"},
			want: Printing{Kind: PrintingIdentified, UniqueID: "P1-XX", SetName: "Promo Set 1"},
		},
		{
			name: "collector number only",
			face: Face{SetName: "Fabled", CollectorNumber: &n},
			want: Printing{Kind: PrintingNumbered, SetName: "Fabled", Number: 17},
		},
		{
			name: "neither",
			face: Face{SetName: "Fabled"},
			want: Printing{Kind: PrintingUnidentified, SetName: "Fabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePrinting(tt.face); got != tt.want {
				t.Errorf("ResolvePrinting() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNumberFromUniqueID(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"TFC-004", 4},
		{"D23-001", 1},
		{"AZS-223", 223},
		{"NODASH", 0},
		{"TRAILING-", 0},
		{"BAD-x1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := numberFromUniqueID(tt.in); got != tt.want {
				t.Errorf("numberFromUniqueID(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

// Package catalog holds the canonical, read-only set of all known card
// printings and answers the lookup queries the rest of the engine runs
// against it.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
)

// Service is an in-memory catalog with name and set indexes. The face
// slice preserves data-file order, which is the stable catalog order used
// for group building and defaults. Replace swaps the whole catalog
// atomically, so readers always see a consistent snapshot.
type Service struct {
	mu     sync.RWMutex
	faces  []card.Face
	byName map[string][]int // lowercased name -> face indexes
	bySet  map[string][]int // set name -> face indexes
	logger *slog.Logger
}

// NewService creates an empty catalog.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		byName: make(map[string][]int),
		bySet:  make(map[string][]int),
		logger: logger,
	}
}

// LoadDir reads every *.json card data file in dir and replaces the
// catalog contents. Files are read in lexical order so the catalog order
// is reproducible.
func (s *Service) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var faces []card.Face
	for _, name := range names {
		path := filepath.Join(dir, name)
		loaded, err := loadFile(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
		faces = append(faces, loaded...)
	}

	s.Replace(faces)
	s.logger.Info("Catalog loaded", "files", len(names), "cards", len(faces))
	return nil
}

// Replace swaps the catalog contents for a new face list and rebuilds the
// indexes. Printing identities are resolved here, once, so downstream
// code never re-derives them.
func (s *Service) Replace(faces []card.Face) {
	byName := make(map[string][]int, len(faces))
	bySet := make(map[string][]int)
	for i := range faces {
		faces[i].Printing = card.ResolvePrinting(faces[i])
		nameKey := strings.ToLower(faces[i].Name)
		byName[nameKey] = append(byName[nameKey], i)
		bySet[faces[i].SetName] = append(bySet[faces[i].SetName], i)
	}

	s.mu.Lock()
	s.faces = faces
	s.byName = byName
	s.bySet = bySet
	s.mu.Unlock()
}

// FindByName returns all faces whose name equals name, case-insensitively,
// in catalog order.
func (s *Service) FindByName(name string) []card.Face {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.byName[strings.ToLower(name)])
}

// AllCards returns every face in catalog order.
func (s *Service) AllCards() []card.Face {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]card.Face, len(s.faces))
	copy(out, s.faces)
	return out
}

// CardsForSet returns every face belonging to the named set.
func (s *Service) CardsForSet(setName string) []card.Face {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.bySet[setName])
}

// Len returns the number of faces in the catalog.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.faces)
}

// collect copies the faces at the given indexes. Callers must hold s.mu.
func (s *Service) collect(idx []int) []card.Face {
	if len(idx) == 0 {
		return nil
	}
	out := make([]card.Face, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.faces[i])
	}
	return out
}

// dataFile mirrors the card data file layout produced by the data
// pipeline: a set header plus a cards array.
type dataFile struct {
	SetName string     `json:"setName"`
	Cards   []cardJSON `json:"cards"`
}

// cardJSON accepts both the current camelCase field spelling and the
// legacy Snake_Case one; older set files were never rewritten.
type cardJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	NameOld  string `json:"Name"`
	SetName  string `json:"setName"`
	SetOld   string `json:"Set_Name"`
	Number   *int   `json:"cardNumber"`
	NumOld   *int   `json:"Card_Num"`
	UniqueID string `json:"uniqueId"`
	UIDOld   string `json:"Unique_ID"`
	Variant  string `json:"variant"`
	VarOld   string `json:"Variant"`
	Cost     int    `json:"cost"`
	CostOld  int    `json:"Cost"`
	Rarity   string `json:"rarity"`
	RarOld   string `json:"Rarity"`
	Color    string `json:"color"`
	ColorOld string `json:"Color"`
	Text     string `json:"bodyText"`
	TextOld  string `json:"Body_Text"`
}

// loadFile parses one card data file into faces.
func loadFile(path string) ([]card.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file dataFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid card data: %w", err)
	}

	faces := make([]card.Face, 0, len(file.Cards))
	for _, c := range file.Cards {
		faces = append(faces, c.toFace(file.SetName))
	}
	return faces, nil
}

func (c cardJSON) toFace(fileSet string) card.Face {
	f := card.Face{
		ID:              c.ID,
		Name:            coalesce(c.Name, c.NameOld),
		SetName:         coalesce(c.SetName, c.SetOld, fileSet),
		CollectorNumber: c.Number,
		UniqueID:        coalesce(c.UniqueID, c.UIDOld),
		Cost:            maxInt(c.Cost, c.CostOld),
		Rarity:          coalesce(c.Rarity, c.RarOld),
		InkColor:        coalesce(c.Color, c.ColorOld),
		CardText:        coalesce(c.Text, c.TextOld),
	}
	if f.CollectorNumber == nil {
		f.CollectorNumber = c.NumOld
	}

	if v, ok := card.ParseVariant(coalesce(c.Variant, c.VarOld)); ok {
		f.Variant = v
	} else {
		// Files that predate the variant field encode it in the rarity.
		f.Variant = variantFromRarity(f.Rarity)
	}
	return f
}

// variantFromRarity infers the variant for legacy data files where only
// the rarity marks special printings.
func variantFromRarity(rarity string) card.Variant {
	switch {
	case strings.EqualFold(rarity, "Enchanted"):
		return card.VariantEnchanted
	case strings.EqualFold(rarity, "Epic"):
		return card.VariantEpic
	case strings.EqualFold(rarity, "Iconic"):
		return card.VariantIconic
	case strings.EqualFold(rarity, "Promo"):
		return card.VariantPromo
	default:
		return card.VariantNormal
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

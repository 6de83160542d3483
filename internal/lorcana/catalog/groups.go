package catalog

import "github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"

// CardGroup is the display-oriented grouping of all printings sharing a
// name. It deliberately spans both the fungible and distinct variant
// classes so an "Add Card" flow can offer Normal, Foil, and Enchanted
// side by side. It is a looser relation than the equivalence key and must
// not be used for ownership aggregation.
type CardGroup struct {
	ID    string
	Name  string
	Cards []card.Face
}

// IsReprint reports whether the group contains more than one printing.
func (g CardGroup) IsReprint() bool {
	return len(g.Cards) > 1
}

// PrimaryCard returns the first face in stable catalog order.
func (g CardGroup) PrimaryCard() card.Face {
	return g.Cards[0]
}

// BuildGroup groups a face with its reprints.
//
// A face carrying a unique ID forms a singleton group: promo and regional
// printings are never auto-grouped with same-named cards, so the add flow
// cannot surprise the user with cross-set aggregation. All other faces
// group with every same-named face in catalog order.
func (s *Service) BuildGroup(face card.Face) CardGroup {
	if face.UniqueID != "" {
		return CardGroup{ID: face.ID, Name: face.Name, Cards: []card.Face{face}}
	}

	same := s.FindByName(face.Name)
	var cards []card.Face
	for _, f := range same {
		if f.UniqueID != "" {
			continue
		}
		cards = append(cards, f)
	}
	if len(cards) == 0 {
		cards = []card.Face{face}
	}
	return CardGroup{ID: cards[0].ID, Name: cards[0].Name, Cards: cards}
}

// BuildAllGroups builds one group per distinct identity in the catalog:
// one per unique-ID printing and one per remaining card name. Groups come
// back in catalog order of their primary card.
func (s *Service) BuildAllGroups() []CardGroup {
	faces := s.AllCards()
	seen := make(map[string]bool, len(faces))

	var groups []CardGroup
	for _, f := range faces {
		var key string
		if f.UniqueID != "" {
			key = "uid:" + f.UniqueID
		} else {
			key = "name:" + f.Name
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		groups = append(groups, s.BuildGroup(f))
	}
	return groups
}

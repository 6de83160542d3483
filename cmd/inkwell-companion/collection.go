package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
)

var (
	collectionSet     string
	collectionVariant string
	collectionQty     int
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Inspect and modify the collection",
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every owned card lot",
	RunE:  runCollectionList,
}

var collectionAddCmd = &cobra.Command{
	Use:   "add <card name>",
	Short: "Add copies of a card to the collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionAdd,
}

var collectionRemoveCmd = &cobra.Command{
	Use:   "remove <card name>",
	Short: "Remove a card (all lots sharing its identity)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionRemove,
}

var collectionSetCmd = &cobra.Command{
	Use:   "set-quantity <card name> <n>",
	Short: "Set the owned quantity of a card lot",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollectionSetQuantity,
}

func init() {
	for _, c := range []*cobra.Command{collectionAddCmd, collectionRemoveCmd, collectionSetCmd} {
		c.Flags().StringVar(&collectionSet, "set", "", "prefer the printing from this set")
		c.Flags().StringVar(&collectionVariant, "variant", "", "card variant (Normal, Foil, Enchanted, ...)")
	}
	collectionAddCmd.Flags().IntVar(&collectionQty, "quantity", 1, "number of copies")

	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionAddCmd)
	collectionCmd.AddCommand(collectionRemoveCmd)
	collectionCmd.AddCommand(collectionSetCmd)
}

func runCollectionList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	entries := a.aggregator.Entries()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Face.Name != entries[j].Face.Name {
			return entries[i].Face.Name < entries[j].Face.Name
		}
		return entries[i].Face.SetName < entries[j].Face.SetName
	})

	total := 0
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%3dx %s [%s, %s] (%s)\n",
			e.Quantity, e.Face.Name, e.Face.SetName, e.Face.Variant, e.Condition)
		total += e.Quantity
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d cards across %d lots\n", total, len(entries))
	return nil
}

func runCollectionAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	face, err := resolveFace(a, args[0])
	if err != nil {
		return err
	}
	a.aggregator.Add(cmd.Context(), face, collectionQty)
	fmt.Fprintf(cmd.OutOrStdout(), "Added %dx %s [%s, %s]. Owned: %d\n",
		collectionQty, face.Name, face.SetName, face.Variant,
		a.aggregator.OwnedQuantity(face))
	return nil
}

func runCollectionRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	face, err := resolveFace(a, args[0])
	if err != nil {
		return err
	}
	a.aggregator.Remove(cmd.Context(), face)
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the collection.\n", face.Name)
	return nil
}

func runCollectionSetQuantity(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}

	face, err := resolveFace(a, args[0])
	if err != nil {
		return err
	}
	a.aggregator.SetQuantity(cmd.Context(), face, n)
	fmt.Fprintf(cmd.OutOrStdout(), "%s now owned: %d\n", face.Name, a.aggregator.OwnedQuantity(face))
	return nil
}

// resolveFace finds the catalog face for a card name plus optional set
// and variant flags, preferring the set hint, then the variant hint,
// then the Normal printing.
func resolveFace(a *app, name string) (card.Face, error) {
	candidates := a.catalog.FindByName(name)
	if len(candidates) == 0 {
		return card.Face{}, fmt.Errorf("card not found: %s", name)
	}

	variant := card.Variant("")
	if collectionVariant != "" {
		v, ok := card.ParseVariant(collectionVariant)
		if !ok {
			return card.Face{}, fmt.Errorf("unknown variant: %s", collectionVariant)
		}
		variant = v
	}

	best := candidates[0]
	bestScore := -1
	for _, f := range candidates {
		score := 0
		if collectionSet != "" && f.SetName == collectionSet {
			score += 4
		}
		if variant != "" {
			if f.Variant == variant {
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
	return best, nil
}

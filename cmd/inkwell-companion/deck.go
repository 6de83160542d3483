package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/deck"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Deck completion against the collection",
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored decks",
	RunE:  runDeckList,
}

var deckStatusCmd = &cobra.Command{
	Use:   "status <deck id>",
	Short: "Show which required cards are still missing",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckStatus,
}

var deckStarterCmd = &cobra.Command{
	Use:   "add-starter <starter deck id>",
	Short: "Add a starter deck's cards to the collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckStarter,
}

func init() {
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckStatusCmd)
	deckCmd.AddCommand(deckStarterCmd)
}

func runDeckList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	decks, err := a.decks.ListDecks(cmd.Context())
	if err != nil {
		return err
	}
	for _, d := range decks {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", d.ID, d.Name)
	}
	return nil
}

func runDeckStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid deck id %q", args[0])
	}

	stored, err := a.decks.GetDeck(cmd.Context(), id)
	if err != nil {
		return err
	}
	if stored == nil {
		return fmt.Errorf("deck %d not found", id)
	}

	reconciler := deck.NewReconciler(nil)
	missing := reconciler.MissingCards(stored.Requirements, a.aggregator)
	if len(missing) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: complete\n", stored.Name)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cards missing\n", stored.Name, len(missing))
	for _, s := range missing {
		fmt.Fprintf(cmd.OutOrStdout(), "  need %dx %s [%s, %s]\n",
			s.Needed, s.Requirement.Name, s.Requirement.SetName, s.Requirement.Variant)
	}
	return nil
}

func runDeckStarter(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	starters, err := deck.LoadStarterDecks(a.cfg.Data.StarterDeckFile)
	if err != nil {
		return err
	}

	for _, d := range starters {
		if d.ID != args[0] {
			continue
		}
		unresolved, err := d.AddToCollection(cmd.Context(), a.catalog, a.aggregator)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added starter deck %q to the collection.\n", d.Name)
		for _, name := range unresolved {
			fmt.Fprintf(cmd.OutOrStdout(), "  not in catalog: %s\n", name)
		}
		return nil
	}
	return fmt.Errorf("starter deck %q not found", args[0])
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/collectionimport"
)

var (
	importFormat string
	importApply  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Parse a card list and match it against the catalog",
	Long: `Import parses a card list file (free text, Standard CSV, or Dreamborn
CSV), matches every line against the catalog, and prints the result.
Nothing touches the collection unless --apply is given; parsing and
applying are separate steps so the result can be reviewed first.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "auto", "import format: auto, freetext, standard, or dreamborn")
	importCmd.Flags().BoolVar(&importApply, "apply", false, "add matched cards to the collection")
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	parser := collectionimport.NewParser(a.catalog, a.logger)

	// Progress can fire once per record; cap terminal updates so huge
	// imports do not drown the output.
	limiter := rate.NewLimiter(rate.Limit(10), 1)
	progress := func(fraction float64) {
		if fraction >= 1 || limiter.Allow() {
			fmt.Fprintf(cmd.OutOrStdout(), "\rMatching... %3.0f%%", fraction*100)
		}
	}

	result, err := parser.Parse(cmd.Context(), string(data),
		collectionimport.Format(importFormat), progress)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())

	fmt.Fprintf(cmd.OutOrStdout(), "Rows processed: %d\n", result.RowsProcessed)
	fmt.Fprintf(cmd.OutOrStdout(), "Matched: %d\n", len(result.Successful))
	for _, m := range result.Successful {
		fmt.Fprintf(cmd.OutOrStdout(), "  %dx %s [%s, %s]\n",
			m.Quantity, m.Face.Name, m.Face.SetName, m.Face.Variant)
	}
	if len(result.Failed) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Failed: %d\n", len(result.Failed))
		for _, f := range result.Failed {
			fmt.Fprintf(cmd.OutOrStdout(), "  %q: %s\n", f.OriginalLine, f.Reason)
		}
	}

	if !importApply {
		fmt.Fprintln(cmd.OutOrStdout(), "Run again with --apply to add the matched cards.")
		return nil
	}

	applied, err := collectionimport.Apply(cmd.Context(), result, a.aggregator)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %d card lots to the collection.\n", applied)
	return nil
}

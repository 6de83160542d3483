package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/card"
	"github.com/inkwellkeeper/inkwell-companion/internal/lorcana/collectionexport"
)

var (
	exportDialect string
	exportColumns []string
	exportOutput  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the collection as CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDialect, "dialect", "", "export dialect: standard or dreamborn (default from config)")
	exportCmd.Flags().StringSliceVar(&exportColumns, "columns", nil, "standard CSV columns (default from config)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	entries := a.aggregator.Entries()
	sort.Slice(entries, func(i, j int) bool {
		ei, ej := entries[i].Face, entries[j].Face
		if ei.Name != ej.Name {
			return ei.Name < ej.Name
		}
		if ei.SetName != ej.SetName {
			return ei.SetName < ej.SetName
		}
		return ei.Variant < ej.Variant
	})

	faces := make([]card.Face, len(entries))
	quantities := make(map[card.Face]int, len(entries))
	for i, e := range entries {
		faces[i] = e.Face
		// Map key is the face value itself; pointer fields differ per
		// entry, so normalize before keying.
		quantities[quantityKey(e.Face)] += e.Quantity
	}
	lookup := func(f card.Face) int {
		return quantities[quantityKey(f)]
	}

	dialect := exportDialect
	if dialect == "" {
		dialect = a.cfg.Export.Dialect
	}

	var content string
	switch dialect {
	case "standard":
		cols := exportColumns
		if cols == nil {
			cols = a.cfg.Export.Columns
		}
		columns := make([]collectionexport.Column, len(cols))
		for i, c := range cols {
			columns[i] = collectionexport.Column(c)
		}
		content, err = collectionexport.StandardCSV(faces, lookup, columns)
		if err != nil {
			return err
		}
	case "dreamborn":
		result := collectionexport.DreambornBulk(faces, lookup, a.logger)
		content = result.Content
		if result.Skipped > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %d rows with unresolvable card numbers.\n", result.Skipped)
		}
	default:
		return fmt.Errorf("unsupported export dialect: %s", dialect)
	}

	if exportOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}
	if err := os.WriteFile(exportOutput, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOutput)
	return nil
}

// quantityKey strips fields that do not participate in the per-row
// quantity identity so faces can key a map.
func quantityKey(f card.Face) card.Face {
	return card.Face{Name: f.Name, SetName: f.SetName, Variant: f.Variant, UniqueID: f.UniqueID}
}

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/marketplace"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List known symptoms by category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(cfg.Engine.CatalogPath)
		if err != nil {
			return err
		}
		if wantJSON(cmd) {
			return printJSON(cmd, catalogJSON(cat))
		}
		r := renderer(cmd)
		return printReport(cmd, r, r.Catalog(cat))
	},
}

var partsCmd = &cobra.Command{
	Use:   "parts <query>",
	Short: "Search the parts directory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := marketplace.Default()
		if err != nil {
			return err
		}
		parts := dir.SearchParts(strings.Join(args, " "))
		if wantJSON(cmd) {
			return printJSON(cmd, nonNil(parts))
		}
		r := renderer(cmd)
		return printReport(cmd, r, r.Parts(parts))
	},
}

var mechanicsCmd = &cobra.Command{
	Use:   "mechanics <query>",
	Short: "Search the mechanics directory by name, city, specialty or service",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := marketplace.Default()
		if err != nil {
			return err
		}
		mechanics := dir.SearchMechanics(strings.Join(args, " "))
		if wantJSON(cmd) {
			return printJSON(cmd, nonNil(mechanics))
		}
		r := renderer(cmd)
		return printReport(cmd, r, r.Mechanics(mechanics))
	},
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func init() {
	addOutputFlags(catalogCmd)
	addOutputFlags(partsCmd)
	addOutputFlags(mechanicsCmd)
}

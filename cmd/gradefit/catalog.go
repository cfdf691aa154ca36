package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/gradefit/internal/catalog"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List and validate major group catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List built-in catalogs with their descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := catalog.List()
			if err != nil {
				return err
			}
			for _, n := range names {
				cat, err := loadCatalog(n)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), listLine(cat))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <name-or-path>",
		Short: "Load a catalog and report the first malformed record, if any",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d major groups, %s\n", cat.Name, cat.Len(), cat.Hash)
			return nil
		},
	})

	return cmd
}

// listLine is "name: description" with the description folded onto one line.
func listLine(cat *catalog.Catalog) string {
	desc := strings.Join(strings.Fields(cat.Description), " ")
	if desc == "" {
		return cat.Name
	}
	return cat.Name + ": " + desc
}

// loadCatalog resolves a catalog reference. Malformed data exits 5; an
// unknown name or unreadable file exits 3.
func loadCatalog(ref string) (*catalog.Catalog, error) {
	cat, err := catalog.Resolve(ref)
	if err != nil {
		var ce *catalog.CatalogError
		if errors.As(err, &ce) {
			return nil, exitError(5, "invalid catalog: %v", err)
		}
		return nil, exitError(3, "failed to load catalog: %v", err)
	}
	return cat, nil
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpn-kit/mpn-go/pkg/catalog"
	"github.com/mpn-kit/mpn-go/pkg/component"
)

func newCatalogCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List or export the loaded catalog",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List providers with their priority, types and rule counts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cat, err := a.loadCatalog()
				if err != nil {
					return err
				}
				for _, p := range cat.Providers {
					types := make([]string, 0, len(p.SupportedTypes()))
					for _, t := range p.SupportedTypes() {
						types = append(types, string(t))
					}
					fmt.Fprintf(a.stdout, "%-12s %-24s priority=%-3d rules=%-3d types=%s\n",
						p.ID(), p.Name(), p.Priority(), len(cat.Registry.Rules(p.ID())), strings.Join(types, ","))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "types",
			Short: "Print the component type taxonomy",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cat, err := a.loadCatalog()
				if err != nil {
					return err
				}
				for _, t := range cat.Taxonomy.Types() {
					if cat.Taxonomy.IsBase(t) {
						a.printTypeTree(cat.Taxonomy, t, 0)
					}
				}
				return nil
			},
		},
		newCatalogExportCommand(a),
	)
	return cmd
}

func (a *app) printTypeTree(tx *component.Taxonomy, t component.Type, depth int) {
	fmt.Fprintf(a.stdout, "%s%s\n", strings.Repeat("  ", depth), t)
	for _, child := range tx.Refinements(t) {
		a.printTypeTree(tx, child, depth+1)
	}
}

func newCatalogExportCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a CBOR snapshot of the catalog",
		Long: `Write the vendor definitions, resolved taxonomy and rule table as a CBOR
snapshot for offline inspection.

Example:
  mpnctl catalog export -o catalog.cbor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			data, err := catalog.EncodeSnapshot(cat)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = a.stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing snapshot: %w", err)
			}
			fmt.Fprintf(a.stderr, "wrote %d bytes (%d vendors) to %s\n", len(data), len(cat.Vendors), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (a *app) loadCatalog() (*catalog.Catalog, error) {
	s, err := a.settings()
	if err != nil {
		return nil, err
	}
	return a.catalog(s)
}

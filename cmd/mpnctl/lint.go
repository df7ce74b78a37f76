package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpn-kit/mpn-go/pkg/catalog/lint"
)

func newLintCommand(a *app) *cobra.Command {
	var (
		disable     []string
		minSeverity string
		listRules   bool
	)
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check vendor catalogs for problems",
		Long: `Run the catalog rules over the configured vendor catalogs.

Examples:
  mpnctl lint --catalog ./vendors
  mpnctl lint --builtin=false --catalog acme.yaml --disable CAT-006
  mpnctl lint --rules`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := lint.NewDefaultRegistry()
			if listRules {
				for _, r := range reg.AllRules() {
					fmt.Fprintf(a.stdout, "%s  %-8s %-12s %s\n", r.ID(), r.DefaultSeverity(), r.Category(), r.Name())
				}
				return nil
			}

			floor, err := lint.ParseSeverity(minSeverity)
			if err != nil {
				return err
			}
			for _, id := range disable {
				if reg.GetRule(id) == nil {
					return fmt.Errorf("unknown rule %s", id)
				}
				reg.Disable(id)
			}

			s, err := a.settings()
			if err != nil {
				return err
			}
			vendors, err := a.vendors(s)
			if err != nil {
				return err
			}

			violations := lint.FilterBySeverity(reg.RunRules(vendors), floor)
			for _, v := range violations {
				fmt.Fprintln(a.stdout, v)
			}
			fmt.Fprintf(a.stdout, "%d vendor(s), %d finding(s)\n", len(vendors), len(violations))
			if lint.HasErrors(violations) {
				return fmt.Errorf("catalog has errors")
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&disable, "disable", nil, "rule IDs to skip")
	cmd.Flags().StringVar(&minSeverity, "severity", "info", "lowest severity to report (error, warning, info)")
	cmd.Flags().BoolVar(&listRules, "rules", false, "list the available rules and exit")
	return cmd
}

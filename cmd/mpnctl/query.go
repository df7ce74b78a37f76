package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpn-kit/mpn-go/pkg/classify"
	"github.com/mpn-kit/mpn-go/pkg/component"
	"github.com/mpn-kit/mpn-go/pkg/engine"
)

func newClassifyCommand(a *app) *cobra.Command {
	var (
		asType string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "classify <mpn>...",
		Short: "Classify part numbers",
		Long: `Classify part numbers and print type, owner, series, package and capabilities.

Examples:
  mpnctl classify SN74HC00N 24LC256-I/SN
  mpnctl classify --as logic_ic SN74LVC1G00DBVR
  mpnctl classify --json QCC3056 | jq .capabilities`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			missing := false
			for _, mpn := range args {
				var (
					res classify.Result
					err error
				)
				if asType != "" {
					res, err = sess.ClassifyAs(mpn, component.Type(asType))
				} else {
					res, err = sess.Classify(mpn)
				}
				if err != nil && !isNotFound(err) {
					return err
				}
				if err != nil {
					missing = true
				}
				if asJSON {
					if werr := writeJSONLine(a.stdout, toJSON(mpn, res, err)); werr != nil {
						return werr
					}
					continue
				}
				formatResult(a.stdout, mpn, res, err)
			}
			if missing {
				return errUnclassified
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&asType, "as", "", "only accept classifications as this type or a refinement of it")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per line")
	return cmd
}

func newCompareCommand(a *app) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "compare <required> <candidate>",
		Short: "Explain whether a candidate may replace a required part",
		Long: `Explain whether a candidate may replace a required part.

The decision is not symmetric: a higher-ranked series or a superset of
capabilities may replace a lower one, not the other way around.

Examples:
  mpnctl compare QCC3034 QCC3056
  mpnctl compare -q SN74HC00N SN74LS00N && echo ok`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			v, err := sess.Explain(args[0], args[1])
			if err != nil {
				return err
			}
			if !quiet {
				formatVerdict(a.stdout, args[0], args[1], v)
			}
			if !v.Replaceable {
				return errNotReplaceable
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing; report the decision in the exit status")
	return cmd
}

func newRankCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rank <required> <candidate>...",
		Short: "Order admissible substitutes for a required part",
		Long: `Print the candidates that may replace the required part, closest series first.

Example:
  mpnctl rank QCC3034 QCC5171 QCC3056 QCC3020`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			ranked, err := sess.Rank(args[0], args[1:]...)
			if err != nil {
				return err
			}
			for i, c := range ranked {
				fmt.Fprintf(a.stdout, "%d. %-24s distance=%d %s\n", i+1, c.MPN, c.Distance, c.Verdict.Stage)
			}
			if len(ranked) == 0 {
				return errNotReplaceable
			}
			return nil
		},
	}
}

func newExtractCommand(a *app, use, short string, extract func(*engine.Engine, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <mpn>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			missing := false
			for _, mpn := range args {
				v, err := extract(sess.Engine, mpn)
				switch {
				case isNotFound(err):
					missing = true
					fmt.Fprintf(a.stdout, "%s\t-\n", mpn)
				case err != nil:
					return err
				default:
					fmt.Fprintf(a.stdout, "%s\t%s\n", mpn, v)
				}
			}
			if missing {
				return errUnclassified
			}
			return nil
		},
	}
}

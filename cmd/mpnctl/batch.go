package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mpn-kit/mpn-go/pkg/engine"
	"github.com/mpn-kit/mpn-go/pkg/metrics"
)

// record is one input line split into fields.
type record struct {
	line   int
	fields []string
}

// readRecords returns the lines of r that hold at least one field, split on
// whitespace, commas or semicolons. Comment lines start with #.
func readRecords(r io.Reader) ([]record, error) {
	var out []record
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == ';'
		})
		if len(fields) == 0 {
			continue
		}
		out = append(out, record{line: n, fields: fields})
	}
	return out, sc.Err()
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}

func newBatchCommand(a *app) *cobra.Command {
	var (
		pairs     bool
		asJSON    bool
		showStats bool
	)
	cmd := &cobra.Command{
		Use:   "batch <file|->",
		Short: "Classify or compare part numbers read from a file",
		Long: `Classify one part number per line, or with --pairs compare a required and a
candidate part per line. Fields may be separated by spaces, tabs, commas or
semicolons. Lines without fields or starting with # are ignored. Use - to read from standard input.

Examples:
  mpnctl batch bom.txt
  mpnctl batch --pairs --stats substitutes.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args[0])
			if err != nil {
				return err
			}
			records, err := readRecords(in)
			_ = in.Close()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			col, err := metrics.NewCollector(reg)
			if err != nil {
				return err
			}
			sess, err := a.open(col)
			if err != nil {
				return err
			}
			defer sess.Close()

			if pairs {
				err = a.runPairs(cmd, sess.Engine, records, asJSON)
			} else {
				err = a.runClassify(cmd, sess.Engine, records, asJSON)
			}
			if err != nil {
				return err
			}

			if showStats {
				return printSummary(a.stderr, reg)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&pairs, "pairs", false, "each line holds a required and a candidate part number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per line")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print a metrics summary to stderr")
	return cmd
}

func (a *app) runClassify(cmd *cobra.Command, eng *engine.Engine, records []record, asJSON bool) error {
	mpns := make([]string, len(records))
	for i, r := range records {
		mpns[i] = r.fields[0]
	}
	out, err := eng.ClassifyAll(cmd.Context(), mpns)
	for _, c := range out {
		if asJSON {
			if werr := writeJSONLine(a.stdout, toJSON(c.MPN, c.Result, c.Err)); werr != nil {
				return werr
			}
			continue
		}
		formatResult(a.stdout, c.MPN, c.Result, c.Err)
	}
	return err
}

type verdictJSON struct {
	Required    string   `json:"required"`
	Candidate   string   `json:"candidate"`
	Replaceable bool     `json:"replaceable"`
	Stage       string   `json:"stage"`
	Reason      string   `json:"reason"`
	Unmet       []string `json:"unmet,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func (a *app) runPairs(cmd *cobra.Command, eng *engine.Engine, records []record, asJSON bool) error {
	pairs := make([]engine.Pair, 0, len(records))
	for _, r := range records {
		if len(r.fields) < 2 {
			return fmt.Errorf("line %d: want a required and a candidate part number", r.line)
		}
		pairs = append(pairs, engine.Pair{Required: r.fields[0], Candidate: r.fields[1]})
	}

	out, err := eng.CompareAll(cmd.Context(), pairs)
	for _, c := range out {
		if asJSON {
			vj := verdictJSON{
				Required:    c.Required,
				Candidate:   c.Candidate,
				Replaceable: c.Verdict.Replaceable,
				Stage:       c.Verdict.Stage.String(),
				Reason:      c.Verdict.Reason,
			}
			for _, u := range c.Verdict.Unmet {
				vj.Unmet = append(vj.Unmet, u.String())
			}
			if c.Err != nil {
				vj.Error = c.Err.Error()
			}
			if werr := writeJSONLine(a.stdout, vj); werr != nil {
				return werr
			}
			continue
		}
		if c.Err != nil {
			fmt.Fprintf(a.stdout, "%s\t%s\terror\t%v\n", c.Required, c.Candidate, c.Err)
			continue
		}
		fmt.Fprintf(a.stdout, "%s\t%s\t%s\t%s\n", c.Required, c.Candidate, yesNo(c.Verdict.Replaceable), c.Verdict.Reason)
	}
	return err
}

func printSummary(w io.Writer, g prometheus.Gatherer) error {
	samples, err := metrics.Summarize(g)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Metrics:")
	for _, s := range samples {
		fmt.Fprintf(w, "  %s{%s} %g\n", s.Name, s.LabelString(), s.Value)
	}
	return nil
}

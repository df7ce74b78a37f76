package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpn-kit/mpn-go/pkg/trace"
)

// logFilter holds the raw filter flags of the log commands.
type logFilter struct {
	operation string
	outcome   string
	mpn       string
	owner     string
	since     string
}

func (f *logFilter) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.operation, "operation", "", "filter by operation (classify, classify_as, replacement, extract_series, extract_package, rank)")
	cmd.Flags().StringVar(&f.outcome, "outcome", "", "filter by outcome (hit, miss, error)")
	cmd.Flags().StringVar(&f.mpn, "mpn", "", "filter by required or candidate part number")
	cmd.Flags().StringVar(&f.owner, "owner", "", "filter by provider owner")
	cmd.Flags().StringVar(&f.since, "since", "", "only events at or after this RFC 3339 time")
}

func (f *logFilter) build() (trace.Filter, error) {
	var filter trace.Filter
	if f.operation != "" {
		op, err := trace.ParseOperation(f.operation)
		if err != nil {
			return filter, err
		}
		filter.Operation = &op
	}
	if f.outcome != "" {
		o, err := trace.ParseOutcome(f.outcome)
		if err != nil {
			return filter, err
		}
		filter.Outcome = &o
	}
	if f.since != "" {
		ts, err := time.Parse(time.RFC3339, f.since)
		if err != nil {
			return filter, fmt.Errorf("invalid --since: %w", err)
		}
		filter.TimeStart = &ts
	}
	filter.MPN = f.mpn
	filter.Owner = f.owner
	return filter, nil
}

func newLogCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "View and summarize decision trace files",
		Long: `Read trace files written with --trace-file.

Examples:
  mpnctl log view run.mtrace
  mpnctl log view --operation replacement --outcome miss run.mtrace
  mpnctl log stats run.mtrace`,
	}

	var vf logFilter
	view := &cobra.Command{
		Use:   "view <file>",
		Short: "Print events in human-readable form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := vf.build()
			if err != nil {
				return err
			}
			return runLogView(args[0], filter, a.stdout)
		},
	}
	vf.register(view)

	var sf logFilter
	stats := &cobra.Command{
		Use:   "stats <file>",
		Short: "Summarize events by operation, outcome and owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := sf.build()
			if err != nil {
				return err
			}
			return runLogStats(args[0], filter, a.stdout)
		},
	}
	sf.register(stats)

	cmd.AddCommand(view, stats)
	return cmd
}

// eachEvent calls fn for every event in path that matches filter.
func eachEvent(path string, filter trace.Filter, fn func(trace.Event)) error {
	reader, err := trace.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		fn(event)
	}
}

func runLogView(path string, filter trace.Filter, w io.Writer) error {
	return eachEvent(path, filter, func(ev trace.Event) {
		formatEvent(w, ev)
	})
}

// formatEvent writes a header line and the payload details of one event.
func formatEvent(w io.Writer, ev trace.Event) {
	ts := ev.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	id := ev.ID
	if len(id) > 8 {
		id = id[:8]
	}
	fmt.Fprintf(w, "%s [%s] %s %s %s", ts, id, ev.Operation, ev.Outcome, ev.MPN)
	if ev.Candidate != "" {
		fmt.Fprintf(w, " -> %s", ev.Candidate)
	}
	fmt.Fprintf(w, " (%s)\n", ev.Duration)

	if c := ev.Classification; c != nil {
		fmt.Fprintf(w, "  Owner: %s  Type: %s  Base: %s\n", c.Owner, c.Type, c.Base)
		if c.Series != "" || c.Package != "" {
			fmt.Fprintf(w, "  Series: %s  Package: %s\n", c.Series, c.Package)
		}
	}
	if r := ev.Replacement; r != nil {
		fmt.Fprintf(w, "  Replaceable: %s  Stage: %s\n", yesNo(r.Replaceable), r.Stage)
		if r.Reason != "" {
			fmt.Fprintf(w, "  Reason: %s\n", r.Reason)
		}
		for _, u := range r.Unmet {
			fmt.Fprintf(w, "  Unmet: %s\n", u)
		}
	}
	if ev.Error != nil {
		fmt.Fprintf(w, "  Error: %s\n", ev.Error.Message)
	}
	fmt.Fprintln(w)
}

// logStats holds aggregate statistics about a trace file.
type logStats struct {
	Total       int
	ByOperation map[trace.Operation]int
	ByOutcome   map[trace.Outcome]int
	ByOwner     map[string]int
	ByStage     map[string]int
	Slowest     time.Duration
	TimeRange   struct {
		Start time.Time
		End   time.Time
	}
}

func collectStats(path string, filter trace.Filter) (*logStats, error) {
	st := &logStats{
		ByOperation: make(map[trace.Operation]int),
		ByOutcome:   make(map[trace.Outcome]int),
		ByOwner:     make(map[string]int),
		ByStage:     make(map[string]int),
	}
	err := eachEvent(path, filter, func(ev trace.Event) {
		st.Total++
		st.ByOperation[ev.Operation]++
		st.ByOutcome[ev.Outcome]++
		for _, o := range ev.Owners() {
			st.ByOwner[o]++
		}
		if ev.Replacement != nil {
			st.ByStage[ev.Replacement.Stage]++
		}
		if ev.Duration > st.Slowest {
			st.Slowest = ev.Duration
		}
		if st.TimeRange.Start.IsZero() || ev.Timestamp.Before(st.TimeRange.Start) {
			st.TimeRange.Start = ev.Timestamp
		}
		if ev.Timestamp.After(st.TimeRange.End) {
			st.TimeRange.End = ev.Timestamp
		}
	})
	return st, err
}

func runLogStats(path string, filter trace.Filter, w io.Writer) error {
	st, err := collectStats(path, filter)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Events: %d\n", st.Total)
	if st.Total == 0 {
		return nil
	}
	fmt.Fprintf(w, "Time range: %s - %s\n",
		st.TimeRange.Start.UTC().Format(time.RFC3339), st.TimeRange.End.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Slowest: %s\n", st.Slowest)

	fmt.Fprintln(w, "\nBy operation:")
	ops := make([]trace.Operation, 0, len(st.ByOperation))
	for op := range st.ByOperation {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	for _, op := range ops {
		fmt.Fprintf(w, "  %-16s %d\n", op, st.ByOperation[op])
	}

	fmt.Fprintln(w, "\nBy outcome:")
	for _, o := range []trace.Outcome{trace.OutcomeHit, trace.OutcomeMiss, trace.OutcomeError} {
		if n := st.ByOutcome[o]; n > 0 {
			fmt.Fprintf(w, "  %-16s %d\n", o, n)
		}
	}

	printCounts(w, "By owner:", st.ByOwner)
	printCounts(w, "By deciding stage:", st.ByStage)
	return nil
}

func printCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "\n%s\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-16s %d\n", k, counts[k])
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mpn-kit/mpn-go/pkg/classify"
	"github.com/mpn-kit/mpn-go/pkg/resolve"
)

// resultJSON is the machine-readable form of a classification.
type resultJSON struct {
	MPN          string            `json:"mpn"`
	Normalized   string            `json:"normalized,omitempty"`
	Type         string            `json:"type,omitempty"`
	Base         string            `json:"base,omitempty"`
	Owner        string            `json:"owner,omitempty"`
	Series       string            `json:"series,omitempty"`
	Package      string            `json:"package,omitempty"`
	Capabilities map[string]string `json:"capabilities,omitempty"`
	Error        string            `json:"error,omitempty"`
}

func toJSON(mpn string, res classify.Result, err error) resultJSON {
	out := resultJSON{MPN: mpn}
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.Normalized = res.Normalized
	out.Type = string(res.Type)
	out.Base = string(res.Base)
	out.Owner = res.Owner
	out.Series = res.Series
	out.Package = res.Package
	if len(res.Capabilities) > 0 {
		out.Capabilities = make(map[string]string, len(res.Capabilities))
		for _, c := range res.Capabilities {
			out.Capabilities[c.Name] = c.Value()
		}
	}
	return out
}

func writeJSONLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// formatResult writes one classification per line:
//
//	SN74HC00N  LOGIC_IC (IC)  owner=ti series=SN74HC package=PDIP function==0
func formatResult(w io.Writer, mpn string, res classify.Result, err error) {
	if err != nil {
		fmt.Fprintf(w, "%-24s -  %v\n", mpn, err)
		return
	}
	typ := string(res.Type)
	if res.Base != res.Type {
		typ += " (" + string(res.Base) + ")"
	}
	fmt.Fprintf(w, "%-24s %s  owner=%s", mpn, typ, res.Owner)
	if res.Series != "" {
		fmt.Fprintf(w, " series=%s", res.Series)
	}
	if res.Package != "" {
		fmt.Fprintf(w, " package=%s", res.Package)
	}
	for _, c := range res.Capabilities {
		fmt.Fprintf(w, " %s=%s", c.Name, c.Value())
	}
	fmt.Fprintln(w)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// formatVerdict writes a replacement verdict with its deciding stage.
func formatVerdict(w io.Writer, required, candidate string, v resolve.Verdict) {
	fmt.Fprintf(w, "%s -> %s: %s\n", required, candidate, yesNo(v.Replaceable))
	fmt.Fprintf(w, "  Stage:  %s\n", v.Stage)
	fmt.Fprintf(w, "  Reason: %s\n", v.Reason)
	if v.Required.Owner != "" {
		fmt.Fprintf(w, "  Required:  owner=%s type=%s series=%s\n", v.Required.Owner, v.Required.Type, v.Required.Series)
	}
	if v.Candidate.Owner != "" {
		fmt.Fprintf(w, "  Candidate: owner=%s type=%s series=%s\n", v.Candidate.Owner, v.Candidate.Type, v.Candidate.Series)
	}
	if v.Stage >= resolve.StageSeries && v.Series.Family != "" {
		fmt.Fprintf(w, "  Series: %s in family %s (rank %d -> %d)\n",
			v.Series.Relation, v.Series.Family, v.Series.RequiredRank, v.Series.CandidateRank)
	} else if v.Stage >= resolve.StageSeries {
		fmt.Fprintf(w, "  Series: %s\n", v.Series.Relation)
	}
	if len(v.Unmet) > 0 {
		unmet := make([]string, len(v.Unmet))
		for i, u := range v.Unmet {
			unmet[i] = u.String()
		}
		fmt.Fprintf(w, "  Unmet:  %s\n", strings.Join(unmet, "; "))
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/HartBrook/lyra/internal/analyze"
	"github.com/HartBrook/lyra/internal/optimize"
)

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return dim("N/A")
	}
	return s
}

func listOr(items []string, empty string) string {
	if len(items) == 0 {
		return dim(empty)
	}
	return strings.Join(items, ", ")
}

func renderAnalysis(w io.Writer, a analyze.Analysis) {
	d := a.Deconstruct
	fmt.Fprintln(w, bold("Deconstruct"))
	printInfo(w, "Intent", orNA(d.Intent))
	printInfo(w, "Entities", listOr(d.Entities, "N/A"))
	printInfo(w, "Context", orNA(d.Context))
	printInfo(w, "Output specs", orNA(d.OutputSpecs))
	printInfo(w, "Constraints", optimize.FormatConstraints(d.Constraints))
	printInfo(w, "Missing", listOr(d.Missing, "None"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, bold("Diagnose"))
	if len(a.Diagnose.Issues) == 0 {
		fmt.Fprintf(w, "  %s %s\n", successIcon, "No issues found")
		return
	}
	for _, issue := range a.Diagnose.Issues {
		fmt.Fprintf(w, "  %s %s\n", warningIcon, issue)
	}
}

func renderCandidate(w io.Writer, c optimize.Candidate) {
	fmt.Fprintf(w, "%s %s\n", bold("Candidate "+c.Label),
		dim(fmt.Sprintf("(Strategy: %s, ~%d tokens)", orNA(c.Strategy), c.TokenEstimate)))
	for _, line := range strings.Split(c.Prompt, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if c.Rationale != "" {
		printInfo(w, "Rationale", c.Rationale)
	}
}

func renderCandidates(w io.Writer, candidates []optimize.Candidate) {
	for i, c := range candidates {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderCandidate(w, c)
	}
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

package eval

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/fatih/color"
)

// Result is the full evaluation of one candidate.
type Result struct {
	Label         string     `json:"label"`
	Strategy      string     `json:"strategy"`
	TokenEstimate int        `json:"token_estimate"`
	Scores        Scores     `json:"scores"`
	Heuristics    Heuristics `json:"heuristics"`
}

// Combine pairs candidates with their judge scores and computes heuristics.
// scores must be in candidate order, as returned by Judge.Evaluate.
func Combine(candidates []optimize.Candidate, scores []Scores) []Result {
	results := make([]Result, 0, len(candidates))
	for i, c := range candidates {
		r := Result{
			Label:         c.Label,
			Strategy:      c.Strategy,
			TokenEstimate: c.TokenEstimate,
			Heuristics:    Analyze(c.Prompt),
		}
		if i < len(scores) {
			r.Scores = scores[i]
		}
		results = append(results, r)
	}
	return results
}

// Best returns the index of the result with the highest overall score.
// Ties go to the earlier candidate. It returns -1 for no results.
func Best(results []Result) int {
	best := -1
	for i, r := range results {
		if best == -1 || r.Scores.Overall > results[best].Scores.Overall {
			best = i
		}
	}
	return best
}

// OutputFormat specifies the output format for results.
type OutputFormat string

const (
	OutputFormatTable  OutputFormat = "table"
	OutputFormatJSON   OutputFormat = "json"
	OutputFormatGitHub OutputFormat = "github"
)

// Formatter formats evaluation results for output.
type Formatter struct {
	Writer io.Writer
	Format OutputFormat
}

// NewFormatter creates a new result formatter.
func NewFormatter(w io.Writer, format OutputFormat) *Formatter {
	return &Formatter{
		Writer: w,
		Format: format,
	}
}

// FormatResults formats the results of one evaluation run.
func (f *Formatter) FormatResults(results []Result) error {
	switch f.Format {
	case OutputFormatJSON:
		return f.formatJSON(results)
	case OutputFormatGitHub:
		return f.formatGitHub(results)
	default:
		return f.formatTable(results)
	}
}

// formatTable outputs results in human-readable form.
func (f *Formatter) formatTable(results []Result) error {
	warnIcon := color.New(color.FgYellow).Sprint("⚠")
	bestIcon := color.New(color.FgGreen).Sprint("★")
	dimColor := color.New(color.Faint)
	boldColor := color.New(color.Bold)

	best := Best(results)
	for i, r := range results {
		marker := " "
		if i == best {
			marker = bestIcon
		}
		fmt.Fprintf(f.Writer, "\n%s %s %s\n", marker, boldColor.Sprintf("Candidate %s", r.Label), dimColor.Sprint(r.Strategy))

		for _, c := range Rubric {
			fmt.Fprintf(f.Writer, "    %-20s %d/5\n", c.Name, r.Scores.Get(c.Name))
		}
		fmt.Fprintf(f.Writer, "    %-20s %d/5\n", boldColor.Sprint("Overall"), r.Scores.Overall)

		h := r.Heuristics
		fmt.Fprintf(f.Writer, "    %s\n", dimColor.Sprintf(
			"%d words, ~%d tokens, Flesch %.1f, spec coverage %.1f%%, role %s, constraints %s",
			h.Length, r.TokenEstimate, h.Flesch, h.SpecCoverage, yesNo(h.HasRole), yesNo(h.HasConstraints),
		))
		if h.PIIFlag {
			fmt.Fprintf(f.Writer, "    %s possible sensitive data (PII) mentioned\n", warnIcon)
		}
	}

	if best >= 0 {
		fmt.Fprintf(f.Writer, "\n%s Candidate %s (overall %d/5)\n",
			color.New(color.FgGreen).Sprint("Recommended:"),
			results[best].Label,
			results[best].Scores.Overall,
		)
	}

	return nil
}

// JSONOutput represents the JSON output format.
type JSONOutput struct {
	Best    string   `json:"best,omitempty"`
	Results []Result `json:"results"`
}

// formatJSON outputs results in JSON format.
func (f *Formatter) formatJSON(results []Result) error {
	output := JSONOutput{Results: results}
	if output.Results == nil {
		output.Results = []Result{}
	}
	if best := Best(results); best >= 0 {
		output.Best = results[best].Label
	}

	encoder := json.NewEncoder(f.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// formatGitHub outputs GitHub Actions annotations for low scores and PII flags.
func (f *Formatter) formatGitHub(results []Result) error {
	flagged := 0
	for _, r := range results {
		if r.Heuristics.PIIFlag {
			fmt.Fprintf(f.Writer, "::warning::Candidate %s may contain sensitive data\n", r.Label)
			flagged++
		}
		if r.Scores.Overall < defaultScore {
			fmt.Fprintf(f.Writer, "::warning::Candidate %s scored %d/5 overall\n", r.Label, r.Scores.Overall)
			flagged++
		}
	}

	if flagged == 0 {
		fmt.Fprintf(f.Writer, "::notice::All %d candidates passed evaluation\n", len(results))
	}

	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

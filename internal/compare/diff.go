// Package compare produces A/B views of two candidate prompts.
package compare

import (
	"fmt"
	"strings"

	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/pmezard/go-difflib/difflib"
)

const contextLines = 3

// Diff returns a unified line diff from a's prompt to b's prompt.
// Identical prompts produce "".
func Diff(a, b optimize.Candidate) (string, error) {
	if a.Prompt == b.Prompt {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a.Prompt),
		B:        difflib.SplitLines(b.Prompt),
		FromFile: header(a),
		ToFile:   header(b),
		Context:  contextLines,
	})
}

// Similarity returns the ratio of matching words between the two prompts, from 0 to 1.
func Similarity(a, b optimize.Candidate) float64 {
	m := difflib.NewMatcher(strings.Fields(a.Prompt), strings.Fields(b.Prompt))
	return m.Ratio()
}

func header(c optimize.Candidate) string {
	if c.Strategy == "" {
		return fmt.Sprintf("Candidate %s", c.Label)
	}
	return fmt.Sprintf("Candidate %s (%s)", c.Label, c.Strategy)
}

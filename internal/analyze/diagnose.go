package analyze

import (
	"strings"
	"unicode/utf8"

	"github.com/HartBrook/lyra/internal/optimize"
)

const minClearRunes = 40

// Issues reported by Diagnose, in the order they are checked.
const (
	IssueTooShort   = "Prompt is too short for clarity."
	IssueNoEntities = "No clear entities detected."
	IssueNoContext  = "No context provided."
	IssueNoAction   = "Prompt may lack a clear action or question."
)

// Diagnosis lists the weaknesses found in a prompt.
type Diagnosis struct {
	Issues []string `json:"issues"`
}

// Analysis is the combined result of Deconstruct and Diagnose.
type Analysis struct {
	Deconstruct optimize.Deconstruction `json:"deconstruct"`
	Diagnose    Diagnosis               `json:"diagnose"`
}

// Diagnose checks prompt against its deconstruction.
func Diagnose(prompt string, d optimize.Deconstruction) Diagnosis {
	issues := []string{}
	if utf8.RuneCountInString(prompt) < minClearRunes {
		issues = append(issues, IssueTooShort)
	}
	if len(d.Entities) == 0 {
		issues = append(issues, IssueNoEntities)
	}
	if d.Context == "" {
		issues = append(issues, IssueNoContext)
	}
	lower := strings.ToLower(prompt)
	if !strings.Contains(lower, "how") && !strings.Contains(lower, "what") {
		issues = append(issues, IssueNoAction)
	}
	return Diagnosis{Issues: issues}
}

// Run deconstructs and diagnoses prompt.
func Run(prompt string, c optimize.Constraints) Analysis {
	d := Deconstruct(prompt, c)
	return Analysis{
		Deconstruct: d,
		Diagnose:    Diagnose(prompt, d),
	}
}

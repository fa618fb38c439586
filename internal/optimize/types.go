package optimize

import (
	"strings"

	"github.com/HartBrook/lyra/internal/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TaskType selects the rewriting strategies offered to the model.
type TaskType string

const (
	TaskCreative    TaskType = "Creative"
	TaskTechnical   TaskType = "Technical"
	TaskEducational TaskType = "Educational"
	TaskComplex     TaskType = "Complex"
)

// TaskTypes lists the recognized task types in display order.
var TaskTypes = []TaskType{TaskCreative, TaskTechnical, TaskEducational, TaskComplex}

// Known reports whether t is one of the recognized task types.
func (t TaskType) Known() bool {
	for _, known := range TaskTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTaskType normalizes a user-supplied task type ("technical", "TECHNICAL").
func ParseTaskType(s string) (TaskType, error) {
	t := TaskType(titleCase(s))
	if !t.Known() {
		return t, errors.InvalidTaskType(s)
	}
	return t, nil
}

// Priority is the optional latency/cost trade-off hint.
type Priority string

const (
	PriorityNone    Priority = ""
	PriorityLatency Priority = "Latency"
	PriorityCost    Priority = "Cost"
)

// ParsePriority normalizes a user-supplied priority. "" and "none" mean unset.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return PriorityNone, nil
	}
	p := Priority(titleCase(s))
	if p != PriorityLatency && p != PriorityCost {
		return PriorityNone, errors.InvalidPriority(s)
	}
	return p, nil
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(s)))
}

// Constraints are the optional limits attached to a request.
// Zero values mean "not set".
type Constraints struct {
	WordLimit int      `json:"word_limit,omitempty" yaml:"word_limit,omitempty"`
	Tone      string   `json:"tone,omitempty" yaml:"tone,omitempty"`
	Style     string   `json:"style,omitempty" yaml:"style,omitempty"`
	Audience  string   `json:"audience,omitempty" yaml:"audience,omitempty"`
	Priority  Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Deconstruction is the upstream decomposition of a raw prompt.
type Deconstruction struct {
	Intent      string      `json:"intent"`
	Entities    []string    `json:"entities"`
	Context     string      `json:"context"`
	OutputSpecs string      `json:"output_specs"`
	Constraints Constraints `json:"constraints"`
	Missing     []string    `json:"missing"`
}

// Candidate is one rewritten prompt proposed by the model.
type Candidate struct {
	Label     string `json:"label"`
	Strategy  string `json:"strategy"`
	Technique string `json:"technique"` // same value as Strategy
	Prompt    string `json:"prompt"`
	Rationale string `json:"rationale"`
	// TokenEstimate is computed from Prompt only.
	TokenEstimate int `json:"token_estimate"`
}

// Labels returns the candidate labels in order.
func Labels(candidates []Candidate) []string {
	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.Label
	}
	return labels
}

// Pick returns the index of the candidate with the given label ("b" or "B").
// Candidates labelled "?" can be picked by their 1-based position instead.
func Pick(candidates []Candidate, label string) (int, error) {
	want := strings.ToUpper(strings.TrimSpace(label))
	for i, c := range candidates {
		if c.Label == want {
			return i, nil
		}
	}
	if len(want) == 1 && want[0] >= '1' && want[0] <= '9' {
		if i := int(want[0] - '1'); i < len(candidates) {
			return i, nil
		}
	}
	return -1, errors.CandidateOutOfRange(label, len(candidates))
}

package optimize

import (
	"fmt"
	"strconv"
	"strings"
)

// SystemRole is prepended to every generation request.
const SystemRole = "You are Lyra, a master-level AI prompt engineering specialist."

// CandidateCount is the number of candidates the model is asked for.
const CandidateCount = 3

// MaxCandidateWords caps each rewritten prompt.
const MaxCandidateWords = 250

// PromptPlaceholder marks where the model substitutes its rewritten prompt.
const PromptPlaceholder = "[Prompt goes here]"

// strategies holds the three named approaches offered per task type, in label order.
var strategies = map[TaskType][CandidateCount]string{
	TaskCreative: {
		"Multi-perspective framing with explicit tone and audience.",
		"Role assignment plus layered context.",
		"Constraint-driven (word limit/style) + creativity boost.",
	},
	TaskTechnical: {
		"Constraint-first with acceptance criteria and I/O schema hints.",
		"Role + explicit input/output format specification.",
		"Stepwise instruction with edge case handling.",
	},
	TaskEducational: {
		"Few-shot outline + rubric + explicit learner level.",
		"Outcome verbs and Bloom's taxonomy mapping.",
		"Scenario-based instructional prompt.",
	},
	TaskComplex: {
		"Checklist format, explicit steps, and risk notes.",
		"Assumptions/constraints up front, then deliverable.",
		"Multi-role with input validation and post-conditions.",
	},
}

// Strategies returns the named approaches for a task type, or nil if unknown.
func Strategies(t TaskType) []string {
	s, ok := strategies[t]
	if !ok {
		return nil
	}
	return s[:]
}

// BuildGenerationPrompt creates the instruction text sent to the model.
// An unknown task type yields the preamble and format directive without a
// strategy block.
func BuildGenerationPrompt(d Deconstruction, taskType TaskType, c Constraints) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\nGiven the following intent: %q\n", d.Intent)
	fmt.Fprintf(&b, "Entities: %s\n", strings.Join(d.Entities, ", "))
	fmt.Fprintf(&b, "Context: %s\n", d.Context)
	fmt.Fprintf(&b, "Output specs: %s\n", d.OutputSpecs)
	fmt.Fprintf(&b, "Constraints: %s\n", FormatConstraints(c))
	fmt.Fprintf(&b, "Task type: %s\n", taskType)

	fmt.Fprintf(&b, `
Produce %d optimized prompt candidates as below:
- Label each as "Candidate A", "Candidate B", "Candidate C" without highlighting and numbering.
- For each, specify "Strategy", then show the prompt on a "Prompt" line, then a short "Rationale".
- Max %d words per candidate.
- Each must apply a different optimization approach based on the task type:
`, CandidateCount, MaxCandidateWords)

	b.WriteString(strategyBlock(taskType))

	return b.String()
}

// strategyBlock renders the few-shot candidate layout for a task type.
func strategyBlock(t TaskType) string {
	names := Strategies(t)
	if names == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, name := range names {
		fmt.Fprintf(&b, "Candidate %c:\n", 'A'+i)
		fmt.Fprintf(&b, "Strategy: %s\n", name)
		fmt.Fprintf(&b, "Prompt: \"%s\"\n", PromptPlaceholder)
		b.WriteString("Rationale: ...\n")
	}
	return b.String()
}

// FormatConstraints renders constraints as a mapping literal with unset values as null.
func FormatConstraints(c Constraints) string {
	wordLimit := "null"
	if c.WordLimit > 0 {
		wordLimit = strconv.Itoa(c.WordLimit)
	}

	fields := []string{
		`"word_limit": ` + wordLimit,
		`"tone": ` + quoteOrNull(c.Tone),
		`"style": ` + quoteOrNull(c.Style),
		`"audience": ` + quoteOrNull(c.Audience),
		`"priority": ` + quoteOrNull(string(c.Priority)),
	}
	return "{" + strings.Join(fields, ", ") + "}"
}

func quoteOrNull(s string) string {
	if s == "" {
		return "null"
	}
	return strconv.Quote(s)
}

// Package eval scores candidate prompts with an LLM judge and a set of text heuristics.
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/HartBrook/lyra/internal/optimize"
	"go.uber.org/zap"
)

// Criterion is one weighted rubric entry.
type Criterion struct {
	Name   string
	Weight int
}

// Rubric is the judge's scoring rubric, in report order.
var Rubric = []Criterion{
	{Name: "Clarity", Weight: 30},
	{Name: "Completeness", Weight: 25},
	{Name: "Constraint coverage", Weight: 20},
	{Name: "Testability", Weight: 15},
	{Name: "Safety", Weight: 10},
}

const (
	minScore     = 1
	maxScore     = 5
	defaultScore = 3
)

// JudgeRole is the system prompt given to judge clients.
const JudgeRole = "You are a rigorous prompt evaluator."

// Scores holds the judge's 1-5 score per rubric criterion and the weighted overall.
type Scores struct {
	Criteria map[string]int `json:"criteria"`
	Overall  int            `json:"overall"`
}

// Get returns the score for a criterion name.
func (s Scores) Get(name string) int {
	return s.Criteria[name]
}

// Judge asks a model to score candidates against Rubric.
type Judge struct {
	llm    optimize.Completer
	logger *zap.Logger
}

// JudgeOption configures a Judge.
type JudgeOption func(*Judge)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) JudgeOption {
	return func(j *Judge) {
		j.logger = logger
	}
}

// NewJudge creates a judge backed by llm.
func NewJudge(llm optimize.Completer, opts ...JudgeOption) *Judge {
	j := &Judge{
		llm:    llm,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Evaluate scores each candidate in order, one model call per candidate.
// The first client error aborts the run and is returned as-is.
func (j *Judge) Evaluate(ctx context.Context, candidates []optimize.Candidate) ([]Scores, error) {
	results := make([]Scores, 0, len(candidates))
	for _, c := range candidates {
		resp, err := j.llm.Complete(ctx, JudgePrompt(c.Prompt))
		if err != nil {
			return nil, err
		}
		scores := ParseScores(resp)
		j.logger.Debug("judged candidate",
			zap.String("label", c.Label),
			zap.Int("overall", scores.Overall),
		)
		results = append(results, scores)
	}
	return results, nil
}

// JudgePrompt builds the instruction sent to the judge for one prompt.
func JudgePrompt(prompt string) string {
	names := make([]string, len(Rubric))
	for i, c := range Rubric {
		names[i] = c.Name
	}
	return "You are a rigorous prompt evaluator. For the following prompt, score 1-5 each for:\n" +
		strings.Join(names, ", ") + ".\n" +
		"Provide JSON output like {\"Clarity\":X,...}.\n" +
		fmt.Sprintf("PROMPT:\n%s\n", prompt) +
		"Now, judge:"
}

var jsonSpan = regexp.MustCompile(`(?s)\{.*\}`)

// linePatterns match "Clarity: 4" style lines, one per criterion.
var linePatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(Rubric))
	for _, c := range Rubric {
		m[c.Name] = regexp.MustCompile(regexp.QuoteMeta(c.Name) + `:\s*([1-5])`)
	}
	return m
}()

// ParseScores reads a judge response. It tries the widest {...} span as JSON first,
// then "Criterion: N" lines. Criteria still missing score 3.
func ParseScores(resp string) Scores {
	found, ok := parseJSONScores(resp)
	if !ok {
		found = parseLineScores(resp)
	}

	criteria := make(map[string]int, len(Rubric))
	for _, c := range Rubric {
		if v, ok := found[c.Name]; ok {
			criteria[c.Name] = v
		} else {
			criteria[c.Name] = defaultScore
		}
	}
	return Scores{Criteria: criteria, Overall: Overall(criteria)}
}

// parseJSONScores fails if the span is not JSON or any rubric value present is not a number.
func parseJSONScores(resp string) (map[string]int, bool) {
	span := jsonSpan.FindString(resp)
	if span == "" {
		return nil, false
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return nil, false
	}

	out := make(map[string]int)
	for _, c := range Rubric {
		v, present := raw[c.Name]
		if !present {
			continue
		}
		n, ok := toScore(v)
		if !ok {
			return nil, false
		}
		out[c.Name] = n
	}
	return out, true
}

func parseLineScores(resp string) map[string]int {
	out := make(map[string]int)
	for _, c := range Rubric {
		if m := linePatterns[c.Name].FindStringSubmatch(resp); m != nil {
			out[c.Name] = int(m[1][0] - '0')
		}
	}
	return out
}

// toScore converts a JSON number or numeric string, truncating fractions
// and clamping to the 1-5 scale.
func toScore(v interface{}) (int, bool) {
	var n int
	switch x := v.(type) {
	case float64:
		n = int(x)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		n = i
	default:
		return 0, false
	}
	if n < minScore {
		n = minScore
	}
	if n > maxScore {
		n = maxScore
	}
	return n, true
}

// Overall is the weighted mean of the criteria, rounded down.
func Overall(criteria map[string]int) int {
	sum, weights := 0, 0
	for _, c := range Rubric {
		sum += criteria[c.Name] * c.Weight
		weights += c.Weight
	}
	return sum / weights
}

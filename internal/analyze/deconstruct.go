// Package analyze performs the rule-based first pass over a raw prompt:
// pulling out its parts and flagging obvious weaknesses before any model is called.
package analyze

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/HartBrook/lyra/internal/optimize"
)

const (
	intentRunes  = 128
	excerptRunes = 120
)

// Items reported in Deconstruction.Missing.
const (
	MissingAudience  = "Target audience"
	MissingWordLimit = "Word limit"
)

var (
	entityPattern = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

	contextKeys = []string{"background", "context", "situation"}
	outputKeys  = []string{"output", "deliverable", "result"}
)

// Deconstruct splits prompt into intent, entities, context, and output specs,
// and lists the details that neither the prompt nor c supply.
func Deconstruct(prompt string, c optimize.Constraints) optimize.Deconstruction {
	return optimize.Deconstruction{
		Intent:      intent(prompt),
		Entities:    entities(prompt),
		Context:     excerptAt(prompt, contextKeys),
		OutputSpecs: excerptAt(prompt, outputKeys),
		Constraints: c,
		Missing:     missing(prompt, c),
	}
}

func intent(prompt string) string {
	first, _, _ := strings.Cut(prompt, "\n")
	return strings.TrimSpace(truncateRunes(first, intentRunes))
}

// entities returns capitalized words, lowercased and de-duplicated, in sorted order.
func entities(prompt string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, w := range entityPattern.FindAllString(prompt, -1) {
		w = strings.ToLower(w)
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

// excerptAt returns up to excerptRunes runes starting at the first key found.
// Keys are tried in order; matching ignores case.
func excerptAt(prompt string, keys []string) string {
	runes := []rune(prompt)
	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}

	for _, key := range keys {
		if idx := indexRunes(lower, []rune(key)); idx != -1 {
			end := idx + excerptRunes
			if end > len(runes) {
				end = len(runes)
			}
			return string(runes[idx:end])
		}
	}
	return ""
}

func missing(prompt string, c optimize.Constraints) []string {
	lower := strings.ToLower(prompt)
	out := []string{}
	if !strings.Contains(lower, "audience") && c.Audience == "" {
		out = append(out, MissingAudience)
	}
	if c.WordLimit == 0 && !strings.Contains(lower, "word") {
		out = append(out, MissingWordLimit)
	}
	return out
}

func indexRunes(s, sub []rune) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := range sub {
			if s[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

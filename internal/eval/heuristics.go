package eval

import (
	"math"
	"regexp"
	"strings"
)

// Heuristics are cheap text checks computed without a model call.
type Heuristics struct {
	Length         int     `json:"length"`
	Flesch         float64 `json:"flesch"`
	HasRole        bool    `json:"has_role"`
	HasConstraints bool    `json:"has_constraints"`
	SpecCoverage   float64 `json:"spec_coverage"`
	PIIFlag        bool    `json:"pii_flag"`
}

var (
	vowelGroup = regexp.MustCompile(`[aeiouy]+`)

	piiTerms = []string{
		"ssn", "passport", "address", "phone", "email",
		"patient", "dob", "mrn", "social security", "confidential",
	}

	specTerms = []string{"audience", "format", "length", "role"}
)

// Analyze computes the heuristics for prompt.
func Analyze(prompt string) Heuristics {
	lower := strings.ToLower(prompt)
	return Heuristics{
		Length:         len(strings.Fields(prompt)),
		Flesch:         Flesch(prompt),
		HasRole:        strings.Contains(prompt, "You are "),
		HasConstraints: strings.Contains(prompt, "must") || strings.Contains(prompt, "limit"),
		SpecCoverage:   specCoverage(lower),
		PIIFlag:        containsAny(lower, piiTerms),
	}
}

// Flesch returns the Flesch reading-ease score of text, rounded to one decimal.
// Sentences are counted by periods and syllables by vowel groups.
func Flesch(text string) float64 {
	words := strings.Fields(text)

	sentences := math.Max(float64(strings.Count(text, ".")), 1)
	wordCount := math.Max(float64(len(words)), 1)

	syllables := 0
	for _, w := range words {
		syllables += len(vowelGroup.FindAllString(strings.ToLower(w), -1))
	}

	score := 206.835 - 1.015*(wordCount/sentences) - 84.6*(float64(syllables)/wordCount)
	return round1(score)
}

func specCoverage(lower string) float64 {
	found := 0
	for _, term := range specTerms {
		if strings.Contains(lower, term) {
			found++
		}
	}
	return round1(100 * float64(found) / float64(len(specTerms)))
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

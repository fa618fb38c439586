package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlesch(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "simple sentence", text: "The cat sat.", want: 119.2},
		{name: "empty text", text: "", want: 205.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Flesch(tt.text), 0.001)
		})
	}
}

func TestAnalyze(t *testing.T) {
	h := Analyze("You are a tutor. You must stay under the word limit for this audience and format.")

	assert.Equal(t, 16, h.Length)
	assert.True(t, h.HasRole)
	assert.True(t, h.HasConstraints)
	assert.Equal(t, 50.0, h.SpecCoverage)
	assert.False(t, h.PIIFlag)
}

func TestAnalyze_PII(t *testing.T) {
	tests := []struct {
		prompt string
		want   bool
	}{
		{"Summarize the Patient notes", true},
		{"Include their phone and email", true},
		{"Mark this CONFIDENTIAL", true},
		{"Write a poem about the sea", false},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.prompt).PIIFlag)
		})
	}
}

func TestAnalyze_CaseSensitiveChecks(t *testing.T) {
	h := Analyze("you are helpful. MUST respond.")

	assert.False(t, h.HasRole)
	assert.False(t, h.HasConstraints)
	assert.Equal(t, 0.0, h.SpecCoverage)
}

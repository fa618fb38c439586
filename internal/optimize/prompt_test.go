package optimize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDeconstruction() Deconstruction {
	return Deconstruction{
		Intent:      "Write a product-launch email for our SaaS app",
		Entities:    []string{"saas", "write"},
		Context:     "context: small businesses",
		OutputSpecs: "output: under 120 words",
	}
}

func TestBuildGenerationPrompt(t *testing.T) {
	prompt := BuildGenerationPrompt(sampleDeconstruction(), TaskCreative, Constraints{
		WordLimit: 120,
		Tone:      "friendly",
	})

	assert.Contains(t, prompt, `Given the following intent: "Write a product-launch email for our SaaS app"`)
	assert.Contains(t, prompt, "Entities: saas, write")
	assert.Contains(t, prompt, "Context: context: small businesses")
	assert.Contains(t, prompt, "Output specs: output: under 120 words")
	assert.Contains(t, prompt, `Constraints: {"word_limit": 120, "tone": "friendly", "style": null, "audience": null, "priority": null}`)
	assert.Contains(t, prompt, "Task type: Creative")
}

func TestBuildGenerationPrompt_FormatDirective(t *testing.T) {
	prompt := BuildGenerationPrompt(sampleDeconstruction(), TaskTechnical, Constraints{})

	assert.Contains(t, prompt, "Produce 3 optimized prompt candidates")
	assert.Contains(t, prompt, `"Candidate A", "Candidate B", "Candidate C"`)
	assert.Contains(t, prompt, `"Strategy"`)
	assert.Contains(t, prompt, `"Rationale"`)
	assert.Contains(t, prompt, "Max 250 words per candidate.")
}

func TestBuildGenerationPrompt_StrategyBlockPerTaskType(t *testing.T) {
	for _, taskType := range TaskTypes {
		t.Run(string(taskType), func(t *testing.T) {
			prompt := BuildGenerationPrompt(sampleDeconstruction(), taskType, Constraints{})

			for i, name := range Strategies(taskType) {
				label := "Candidate " + string(rune('A'+i)) + ":"
				assert.Contains(t, prompt, label)
				assert.Contains(t, prompt, "Strategy: "+name)
			}
			assert.Equal(t, 3, strings.Count(prompt, PromptPlaceholder))
		})
	}
}

func TestBuildGenerationPrompt_DistinctStrategies(t *testing.T) {
	seen := map[string]TaskType{}
	for _, taskType := range TaskTypes {
		names := Strategies(taskType)
		assert.Len(t, names, 3)
		for _, name := range names {
			prev, dup := seen[name]
			assert.False(t, dup, "%q used by both %s and %s", name, prev, taskType)
			seen[name] = taskType
		}
	}
}

func TestBuildGenerationPrompt_UnknownTaskType(t *testing.T) {
	prompt := BuildGenerationPrompt(sampleDeconstruction(), TaskType("Poetry"), Constraints{})

	assert.Contains(t, prompt, "Task type: Poetry")
	assert.Contains(t, prompt, "Produce 3 optimized prompt candidates")
	assert.NotContains(t, prompt, "Candidate A:")
	assert.NotContains(t, prompt, PromptPlaceholder)
}

func TestBuildGenerationPrompt_RoundTripsThroughExtractor(t *testing.T) {
	prompt := BuildGenerationPrompt(sampleDeconstruction(), TaskEducational, Constraints{})

	candidates := NewExtractor(NewEstimator(UnavailableLoader)).Extract(prompt)

	assert.Equal(t, []string{"A", "B", "C"}, Labels(candidates))
	for i, c := range candidates {
		assert.Equal(t, Strategies(TaskEducational)[i], c.Strategy)
		assert.Equal(t, PromptPlaceholder, c.Prompt)
	}
}

func TestFormatConstraints(t *testing.T) {
	tests := []struct {
		name string
		c    Constraints
		want string
	}{
		{
			name: "empty",
			c:    Constraints{},
			want: `{"word_limit": null, "tone": null, "style": null, "audience": null, "priority": null}`,
		},
		{
			name: "all set",
			c: Constraints{
				WordLimit: 50,
				Tone:      "formal",
				Style:     "bullet list",
				Audience:  "CFOs",
				Priority:  PriorityCost,
			},
			want: `{"word_limit": 50, "tone": "formal", "style": "bullet list", "audience": "CFOs", "priority": "Cost"}`,
		},
		{
			name: "quotes escaped",
			c:    Constraints{Tone: `say "hi"`},
			want: `{"word_limit": null, "tone": "say \"hi\"", "style": null, "audience": null, "priority": null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatConstraints(tt.c))
		})
	}
}

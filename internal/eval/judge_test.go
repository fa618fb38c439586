package eval

import (
	"context"
	"errors"
	"testing"

	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	responses []string
	err       error
	prompts   []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func TestJudgePrompt(t *testing.T) {
	got := JudgePrompt("Write a haiku.")

	want := "You are a rigorous prompt evaluator. For the following prompt, score 1-5 each for:\n" +
		"Clarity, Completeness, Constraint coverage, Testability, Safety.\n" +
		"Provide JSON output like {\"Clarity\":X,...}.\n" +
		"PROMPT:\nWrite a haiku.\n" +
		"Now, judge:"
	assert.Equal(t, want, got)
}

func TestParseScores(t *testing.T) {
	tests := []struct {
		name    string
		resp    string
		want    map[string]int
		overall int
	}{
		{
			name: "embedded json",
			resp: `Here you go: {"Clarity": 5, "Completeness": 4, "Constraint coverage": 3, "Testability": 2, "Safety": 1} thanks`,
			want: map[string]int{
				"Clarity": 5, "Completeness": 4, "Constraint coverage": 3, "Testability": 2, "Safety": 1,
			},
			overall: 3,
		},
		{
			name: "all fives",
			resp: `{"Clarity":5,"Completeness":5,"Constraint coverage":5,"Testability":5,"Safety":5}`,
			want: map[string]int{
				"Clarity": 5, "Completeness": 5, "Constraint coverage": 5, "Testability": 5, "Safety": 5,
			},
			overall: 5,
		},
		{
			name: "json with string values and missing keys",
			resp: `{"Clarity": "4", "Safety": 2}`,
			want: map[string]int{
				"Clarity": 4, "Completeness": 3, "Constraint coverage": 3, "Testability": 3, "Safety": 2,
			},
			overall: 3,
		},
		{
			name: "out of range values are clamped",
			resp: `{"Clarity": 9, "Completeness": 0}`,
			want: map[string]int{
				"Clarity": 5, "Completeness": 1, "Constraint coverage": 3, "Testability": 3, "Safety": 3,
			},
			overall: 3,
		},
		{
			name: "line fallback",
			resp: "Clarity: 4\nCompleteness: 5\nSafety: 2",
			want: map[string]int{
				"Clarity": 4, "Completeness": 5, "Constraint coverage": 3, "Testability": 3, "Safety": 2,
			},
			overall: 3,
		},
		{
			name: "non-numeric json falls back to lines",
			resp: "{\"Clarity\": true}\nClarity: 2",
			want: map[string]int{
				"Clarity": 2, "Completeness": 3, "Constraint coverage": 3, "Testability": 3, "Safety": 3,
			},
			overall: 2,
		},
		{
			name: "invalid json falls back to lines",
			resp: "{not json}\nClarity: 5",
			want: map[string]int{
				"Clarity": 5, "Completeness": 3, "Constraint coverage": 3, "Testability": 3, "Safety": 3,
			},
			overall: 3,
		},
		{
			name: "nothing parseable",
			resp: "I cannot judge this.",
			want: map[string]int{
				"Clarity": 3, "Completeness": 3, "Constraint coverage": 3, "Testability": 3, "Safety": 3,
			},
			overall: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseScores(tt.resp)
			assert.Equal(t, tt.want, got.Criteria)
			assert.Equal(t, tt.overall, got.Overall)
		})
	}
}

func TestOverall_RoundsDown(t *testing.T) {
	// 4*30 + 4*25 + 4*20 + 5*15 + 5*10 = 425
	criteria := map[string]int{
		"Clarity": 4, "Completeness": 4, "Constraint coverage": 4, "Testability": 5, "Safety": 5,
	}
	assert.Equal(t, 4, Overall(criteria))
}

func TestJudge_Evaluate(t *testing.T) {
	llm := &fakeCompleter{responses: []string{
		`{"Clarity":5,"Completeness":5,"Constraint coverage":5,"Testability":5,"Safety":5}`,
		"Clarity: 1",
	}}
	judge := NewJudge(llm)
	candidates := []optimize.Candidate{
		{Label: "A", Prompt: "first prompt"},
		{Label: "B", Prompt: "second prompt"},
	}

	scores, err := judge.Evaluate(context.Background(), candidates)

	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 5, scores[0].Overall)
	assert.Equal(t, 1, scores[1].Get("Clarity"))
	require.Len(t, llm.prompts, 2)
	assert.Contains(t, llm.prompts[0], "PROMPT:\nfirst prompt\n")
	assert.Contains(t, llm.prompts[1], "PROMPT:\nsecond prompt\n")
}

func TestJudge_Evaluate_Error(t *testing.T) {
	boom := errors.New("connection reset")
	llm := &fakeCompleter{err: boom}

	scores, err := NewJudge(llm).Evaluate(context.Background(), []optimize.Candidate{{Label: "A"}, {Label: "B"}})

	assert.Nil(t, scores)
	assert.Same(t, boom, err)
	assert.Len(t, llm.prompts, 1)
}

func TestJudge_Evaluate_NoCandidates(t *testing.T) {
	llm := &fakeCompleter{}

	scores, err := NewJudge(llm).Evaluate(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, scores)
	assert.Empty(t, llm.prompts)
}

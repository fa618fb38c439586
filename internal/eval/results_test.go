package eval

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []Result {
	candidates := []optimize.Candidate{
		{Label: "A", Strategy: "Role first", Prompt: "You are an editor. Fix this.", TokenEstimate: 8},
		{Label: "B", Strategy: "Checklist", Prompt: "List the patient address.", TokenEstimate: 6},
	}
	scores := []Scores{
		ParseScores("Clarity: 2\nCompleteness: 2\nConstraint coverage: 2\nTestability: 2\nSafety: 2"),
		ParseScores(`{"Clarity":5,"Completeness":4,"Constraint coverage":4,"Testability":4,"Safety":4}`),
	}
	return Combine(candidates, scores)
}

func TestCombine(t *testing.T) {
	results := sampleResults()

	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Label)
	assert.Equal(t, 2, results[0].Scores.Overall)
	assert.True(t, results[0].Heuristics.HasRole)
	assert.Equal(t, 6, results[1].TokenEstimate)
	assert.True(t, results[1].Heuristics.PIIFlag)
}

func TestBest(t *testing.T) {
	assert.Equal(t, 1, Best(sampleResults()))
	assert.Equal(t, -1, Best(nil))

	tied := []Result{{Label: "A", Scores: Scores{Overall: 4}}, {Label: "B", Scores: Scores{Overall: 4}}}
	assert.Equal(t, 0, Best(tied))
}

func TestFormatter_JSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf, OutputFormatJSON).FormatResults(sampleResults()))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "B", out.Best)
	require.Len(t, out.Results, 2)
	assert.Equal(t, 5, out.Results[1].Scores.Get("Clarity"))
}

func TestFormatter_JSON_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf, OutputFormatJSON).FormatResults(nil))

	assert.JSONEq(t, `{"results":[]}`, buf.String())
}

func TestFormatter_Table(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf, OutputFormatTable).FormatResults(sampleResults()))

	out := buf.String()
	assert.Contains(t, out, "Candidate A")
	assert.Contains(t, out, "Constraint coverage")
	assert.Contains(t, out, "possible sensitive data")
	assert.Contains(t, out, "Candidate B (overall 4/5)")
}

func TestFormatter_GitHub(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewFormatter(&buf, OutputFormatGitHub).FormatResults(sampleResults()))

	out := buf.String()
	assert.Contains(t, out, "::warning::Candidate A scored 2/5 overall")
	assert.Contains(t, out, "::warning::Candidate B may contain sensitive data")
	assert.NotContains(t, out, "::notice::")
}

package compare

import (
	"testing"

	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_Identical(t *testing.T) {
	a := optimize.Candidate{Label: "A", Prompt: "Write a haiku."}
	b := optimize.Candidate{Label: "B", Prompt: "Write a haiku."}

	got, err := Diff(a, b)

	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestDiff(t *testing.T) {
	a := optimize.Candidate{Label: "A", Strategy: "Role first", Prompt: "You are a poet.\nWrite a haiku."}
	b := optimize.Candidate{Label: "C", Prompt: "You are a poet.\nWrite a limerick."}

	got, err := Diff(a, b)

	require.NoError(t, err)
	want := "--- Candidate A (Role first)\n" +
		"+++ Candidate C\n" +
		"@@ -1,2 +1,2 @@\n" +
		" You are a poet.\n" +
		"-Write a haiku.\n" +
		"+Write a limerick.\n"
	assert.Equal(t, want, got)
}

func TestSimilarity(t *testing.T) {
	same := optimize.Candidate{Prompt: "write a short poem"}
	assert.Equal(t, 1.0, Similarity(same, same))

	a := optimize.Candidate{Prompt: "write a short poem"}
	b := optimize.Candidate{Prompt: "write a long poem"}
	assert.InDelta(t, 0.75, Similarity(a, b), 0.001)

	assert.Equal(t, 0.0, Similarity(a, optimize.Candidate{Prompt: "something else entirely"}))
}

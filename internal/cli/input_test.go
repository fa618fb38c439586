package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HartBrook/lyra/internal/errors"
	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPrompt(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "prompt.txt")
	require.NoError(t, os.WriteFile(file, []byte("  from a file\n"), 0644))

	tests := []struct {
		name  string
		args  []string
		file  string
		stdin string
		want  string
	}{
		{name: "args are joined", args: []string{"explain", "TCP"}, stdin: "ignored", want: "explain TCP"},
		{name: "file", file: file, want: "from a file"},
		{name: "dash reads stdin", file: "-", stdin: "from stdin\n", want: "from stdin"},
		{name: "piped stdin", stdin: "piped", want: "piped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &app{stdin: strings.NewReader(tt.stdin)}

			got, err := a.readPrompt(tt.args, tt.file)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadPrompt_Empty(t *testing.T) {
	a := &app{stdin: strings.NewReader("   \n")}

	_, err := a.readPrompt(nil, "")

	assert.True(t, errors.HasCode(err, errors.ErrEmptyPrompt))
}

func TestReadPrompt_MissingFile(t *testing.T) {
	a := &app{stdin: strings.NewReader("")}

	_, err := a.readPrompt(nil, filepath.Join(t.TempDir(), "nope.txt"))

	assert.Error(t, err)
}

func TestPromptFlags_Constraints(t *testing.T) {
	f := promptFlags{wordLimit: 120, tone: " warm ", audience: "new hires", priority: "cost"}

	c, err := f.constraints()

	require.NoError(t, err)
	assert.Equal(t, optimize.Constraints{
		WordLimit: 120,
		Tone:      "warm",
		Audience:  "new hires",
		Priority:  optimize.PriorityCost,
	}, c)
}

func TestPromptFlags_InvalidPriority(t *testing.T) {
	f := promptFlags{priority: "speed"}

	_, err := f.constraints()

	assert.True(t, errors.HasCode(err, errors.ErrInvalidPriority))
}

func TestPromptFlags_TaskType(t *testing.T) {
	tests := []struct {
		in       string
		want     optimize.TaskType
		warnings bool
	}{
		{in: "", want: optimize.TaskCreative},
		{in: "technical", want: optimize.TaskTechnical},
		{in: "poetry", want: "Poetry", warnings: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f := promptFlags{taskType: tt.in}

			got, warn := f.parsedTaskType()

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.warnings, warn != "")
		})
	}
}

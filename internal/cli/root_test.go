package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/HartBrook/lyra/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "lyra", cmd.Use)
	for _, name := range []string{"analyze", "generate", "evaluate", "compare", "export", "history", "serve", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		assert.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
}

func TestVersionCmd(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run("version")

	assert.NoError(t, err)
	assert.Equal(t, "lyra "+Version+"\n", out)
}

func TestPrintErr(t *testing.T) {
	t.Run("with hint", func(t *testing.T) {
		var buf bytes.Buffer
		printErr(&buf, fmt.Errorf("wrapped: %w", errors.NoDraft()))

		assert.Contains(t, buf.String(), "✗")
		assert.Contains(t, buf.String(), "wrapped: ")
		assert.Contains(t, buf.String(), errors.NoDraft().Hint)
	})

	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		printErr(&buf, fmt.Errorf("boom"))

		assert.Contains(t, buf.String(), "boom\n")
		assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "no hint line")
	})
}

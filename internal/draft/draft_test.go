package draft

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/HartBrook/lyra/internal/analyze"
	"github.com/HartBrook/lyra/internal/config"
	"github.com/HartBrook/lyra/internal/errors"
	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *config.Paths) {
	t.Helper()
	tempDir := t.TempDir()
	paths := config.NewPathsWithOverrides(filepath.Join(tempDir, "config"), filepath.Join(tempDir, "cache"))
	return NewStore(paths), paths
}

func sampleDraft(prompt string) *Draft {
	a := analyze.Run(prompt, optimize.Constraints{Tone: "formal"})
	candidates := []optimize.Candidate{
		{Label: "A", Strategy: "Role first", Prompt: "You are an analyst.", TokenEstimate: 5},
	}
	return New(prompt, optimize.TaskTechnical, a, candidates, "gpt-4o")
}

func TestHashContent(t *testing.T) {
	// Same content should produce same hash
	hash1 := HashContent("test content")
	hash2 := HashContent("test content")
	assert.Equal(t, hash1, hash2)

	// Different content should produce different hash
	hash3 := HashContent("different content")
	assert.NotEqual(t, hash1, hash3)

	// Hash should be 64 chars (256 bits in hex)
	assert.Len(t, hash1, 64)
}

func TestStore_WriteRead(t *testing.T) {
	store, paths := newTestStore(t)
	d := sampleDraft("Explain goroutines")

	require.NoError(t, store.Write(d))
	assert.FileExists(t, paths.DraftFile)

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, d.SourceHash, got.SourceHash)
	assert.Equal(t, "Explain goroutines", got.Prompt)
	assert.Equal(t, optimize.TaskTechnical, got.TaskType)
	assert.Equal(t, "formal", got.Analysis.Deconstruct.Constraints.Tone)
	assert.Equal(t, d.Candidates, got.Candidates)
	assert.Equal(t, "gpt-4o", got.Model)
}

func TestStore_Read_Missing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Read()

	assert.True(t, errors.HasCode(err, errors.ErrNoDraft))
	assert.False(t, store.Exists())
}

func TestStore_Read_Corrupted(t *testing.T) {
	store, paths := newTestStore(t)
	require.NoError(t, os.MkdirAll(paths.CacheDir, 0755))
	require.NoError(t, os.WriteFile(paths.DraftFile, []byte("not json"), 0644))

	_, err := store.Read()

	assert.True(t, errors.HasCode(err, errors.ErrNoDraft))
	// Corrupted draft is cleaned up
	assert.NoFileExists(t, paths.DraftFile)
}

func TestStore_ReadFor(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Write(sampleDraft("Explain goroutines")))

	d, err := store.ReadFor("Explain goroutines")
	require.NoError(t, err)
	assert.Equal(t, "Explain goroutines", d.Prompt)

	d, err = store.ReadFor("")
	require.NoError(t, err)
	assert.Equal(t, "Explain goroutines", d.Prompt)

	_, err = store.ReadFor("Explain channels")
	assert.True(t, errors.HasCode(err, errors.ErrDraftStale))
}

func TestStore_IsStale(t *testing.T) {
	store, _ := newTestStore(t)
	assert.True(t, store.IsStale("Explain goroutines"))

	require.NoError(t, store.Write(sampleDraft("Explain goroutines")))

	assert.False(t, store.IsStale("Explain goroutines"))
	assert.True(t, store.IsStale("Explain channels"))
}

func TestStore_Clear(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Write(sampleDraft("Explain goroutines")))
	require.True(t, store.Exists())

	require.NoError(t, store.Clear())
	assert.False(t, store.Exists())

	// Clearing again is fine
	assert.NoError(t, store.Clear())
}

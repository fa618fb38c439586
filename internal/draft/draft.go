// Package draft keeps the working analysis and candidates between CLI invocations.
package draft

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/HartBrook/lyra/internal/analyze"
	"github.com/HartBrook/lyra/internal/config"
	"github.com/HartBrook/lyra/internal/errors"
	"github.com/HartBrook/lyra/internal/optimize"
)

// Draft is the most recent generation result.
type Draft struct {
	SourceHash string               `json:"source_hash"`
	Prompt     string               `json:"prompt"`
	TaskType   optimize.TaskType    `json:"task_type"`
	Analysis   analyze.Analysis     `json:"analysis"`
	Candidates []optimize.Candidate `json:"candidates"`
	Model      string               `json:"model,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// New creates a draft for prompt, stamping its hash.
func New(prompt string, taskType optimize.TaskType, a analyze.Analysis, candidates []optimize.Candidate, model string) *Draft {
	return &Draft{
		SourceHash: HashContent(prompt),
		Prompt:     prompt,
		TaskType:   taskType,
		Analysis:   a,
		Candidates: candidates,
		Model:      model,
		CreatedAt:  time.Now(),
	}
}

// Store manages the single draft file.
type Store struct {
	paths *config.Paths
}

// NewStore creates a new draft store.
func NewStore(paths *config.Paths) *Store {
	return &Store{paths: paths}
}

// HashContent generates a SHA256 hash for content.
func HashContent(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// Read returns the stored draft.
// A missing draft is NoDraft. A corrupted one is removed and reported as NoDraft.
func (s *Store) Read() (*Draft, error) {
	data, err := os.ReadFile(s.paths.DraftFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NoDraft()
		}
		return nil, err
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		_ = s.Clear()
		return nil, errors.NoDraft()
	}

	return &d, nil
}

// ReadFor returns the stored draft if it was generated for prompt.
// An empty prompt accepts whichever draft is stored.
func (s *Store) ReadFor(prompt string) (*Draft, error) {
	d, err := s.Read()
	if err != nil {
		return nil, err
	}
	if prompt != "" && d.SourceHash != HashContent(prompt) {
		return nil, errors.DraftStale()
	}
	return d, nil
}

// Write stores d, replacing any previous draft.
func (s *Store) Write(d *Draft) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(s.paths.DraftFile), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.paths.DraftFile, data, 0644)
}

// IsStale reports whether the stored draft is missing or belongs to another prompt.
func (s *Store) IsStale(prompt string) bool {
	d, err := s.Read()
	if err != nil {
		return true
	}
	return d.SourceHash != HashContent(prompt)
}

// Exists checks if a draft is stored.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.paths.DraftFile)
	return err == nil
}

// Clear removes the stored draft.
func (s *Store) Clear() error {
	// Ignore errors for non-existent files
	os.Remove(s.paths.DraftFile)
	return nil
}

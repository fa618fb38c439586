// Package history records finished sessions in a local JSONL log and exports them.
package history

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/HartBrook/lyra/internal/analyze"
	"github.com/HartBrook/lyra/internal/errors"
	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/google/uuid"
)

// TimestampLayout is the layout of Session.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

const tagRunes = 32

// RiskNote is shown with every selected candidate.
const RiskNote = "Avoid sharing sensitive/regulated data; always review LLM outputs for critical use cases."

// now and newID are replaced in tests.
var (
	now   = time.Now
	newID = uuid.NewString
)

// Session is a snapshot of one optimization run and the candidate picked from it.
type Session struct {
	ID          string                  `json:"session_id"`
	Timestamp   string                  `json:"timestamp"`
	Prompt      string                  `json:"prompt"`
	Deconstruct optimize.Deconstruction `json:"deconstruct"`
	Diagnose    analyze.Diagnosis       `json:"diagnose"`
	Candidates  []optimize.Candidate    `json:"candidates"`
	ChosenIdx   int                     `json:"chosen_idx"`
	Constraints optimize.Constraints    `json:"constraints"`
	TaskType    optimize.TaskType       `json:"task_type"`
	Tags        string                  `json:"tags"`
}

// NewSession snapshots an analysis and its candidates with the candidate at chosen selected.
func NewSession(prompt string, a analyze.Analysis, candidates []optimize.Candidate, chosen int, taskType optimize.TaskType) (*Session, error) {
	if chosen < 0 || chosen >= len(candidates) {
		return nil, errors.CandidateOutOfRange(fmt.Sprint(chosen+1), len(candidates))
	}
	return &Session{
		ID:          newID(),
		Timestamp:   now().Format(TimestampLayout),
		Prompt:      prompt,
		Deconstruct: a.Deconstruct,
		Diagnose:    a.Diagnose,
		Candidates:  candidates,
		ChosenIdx:   chosen,
		Constraints: a.Deconstruct.Constraints,
		TaskType:    taskType,
		Tags:        truncate(a.Deconstruct.Intent, tagRunes),
	}, nil
}

// Chosen returns the selected candidate.
func (s *Session) Chosen() (optimize.Candidate, error) {
	if s.ChosenIdx < 0 || s.ChosenIdx >= len(s.Candidates) {
		return optimize.Candidate{}, errors.CandidateOutOfRange(fmt.Sprint(s.ChosenIdx+1), len(s.Candidates))
	}
	return s.Candidates[s.ChosenIdx], nil
}

// Analysis returns the stored deconstruction and diagnosis.
func (s *Session) Analysis() analyze.Analysis {
	return analyze.Analysis{Deconstruct: s.Deconstruct, Diagnose: s.Diagnose}
}

// Preview returns the first n runes of the prompt, marking truncation with "...".
func (s *Session) Preview(n int) string {
	p := strings.Join(strings.Fields(s.Prompt), " ")
	if utf8.RuneCountInString(p) <= n {
		return p
	}
	return truncate(p, n) + "..."
}

// UsageGuide describes how to apply candidate c for a task type.
func UsageGuide(taskType optimize.TaskType, c optimize.Candidate) string {
	return fmt.Sprintf("- Target AI: %s scenario\n- Estimated cost: %d tokens\n- Apply as: input for LLM, API, or workflow.",
		taskType, c.TokenEstimate)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/HartBrook/lyra/internal/analyze"
	"github.com/HartBrook/lyra/internal/compare"
	"github.com/HartBrook/lyra/internal/errors"
	"github.com/HartBrook/lyra/internal/eval"
	"github.com/HartBrook/lyra/internal/history"
	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const previewRunes = 60

// Handler serves the API routes. It keeps no per-request state.
type Handler struct {
	generator  *optimize.Generator
	judge      *eval.Judge
	history    *history.Store
	exportsDir string
	model      string
	metrics    *Metrics
	logger     *zap.Logger
}

// PromptRequest is the body of /analyze and /candidates.
type PromptRequest struct {
	Prompt      string               `json:"prompt"`
	TaskType    string               `json:"task_type"`
	Constraints optimize.Constraints `json:"constraints"`
}

// AnalyzeResponse is returned by /analyze.
type AnalyzeResponse struct {
	analyze.Analysis
	TaskType optimize.TaskType `json:"task_type"`
	Warnings []string          `json:"warnings,omitempty"`
}

// CandidatesResponse is returned by /candidates.
type CandidatesResponse struct {
	TaskType   optimize.TaskType    `json:"task_type"`
	Analysis   analyze.Analysis     `json:"analysis"`
	Candidates []optimize.Candidate `json:"candidates"`
	Tokens     optimize.TokenStats  `json:"tokens"`
	Model      string               `json:"model,omitempty"`
	Warnings   []string             `json:"warnings,omitempty"`
}

// EvaluateRequest is the body of /evaluate.
type EvaluateRequest struct {
	Candidates []optimize.Candidate `json:"candidates" binding:"required"`
}

// CompareRequest is the body of /compare.
type CompareRequest struct {
	A optimize.Candidate `json:"a"`
	B optimize.Candidate `json:"b"`
}

// CompareResponse is returned by /compare.
type CompareResponse struct {
	Diff       string  `json:"diff"`
	Similarity float64 `json:"similarity"`
}

// SessionRequest is the body of POST /sessions.
type SessionRequest struct {
	Prompt      string               `json:"prompt"`
	TaskType    string               `json:"task_type"`
	Constraints optimize.Constraints `json:"constraints"`
	Candidates  []optimize.Candidate `json:"candidates" binding:"required"`
	Chosen      string               `json:"chosen" binding:"required"`
}

// SessionResponse is returned by POST /sessions.
type SessionResponse struct {
	Session    *history.Session `json:"session"`
	MarkdownAt string           `json:"markdown_path"`
	JSONAt     string           `json:"json_path"`
	UsageGuide string           `json:"usage_guide"`
	RiskNote   string           `json:"risk_note"`
}

// SessionSummary is one entry of GET /sessions.
type SessionSummary struct {
	ID        string `json:"session_id"`
	Timestamp string `json:"timestamp"`
	Tags      string `json:"tags"`
	Preview   string `json:"preview"`
}

// Health returns basic health status
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lyra",
		"version": Version,
	})
}

// Analyze runs the rule-based deconstruct and diagnose passes.
func (h *Handler) Analyze(c *gin.Context) {
	req, taskType, warnings, ok := h.bindPrompt(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, AnalyzeResponse{
		Analysis: analyze.Run(req.Prompt, req.Constraints),
		TaskType: taskType,
		Warnings: warnings,
	})
}

// Candidates analyzes the prompt and asks the model for rewritten candidates.
func (h *Handler) Candidates(c *gin.Context) {
	req, taskType, warnings, ok := h.bindPrompt(c)
	if !ok {
		return
	}

	a := analyze.Run(req.Prompt, req.Constraints)

	start := time.Now()
	candidates, err := h.generator.Generate(c.Request.Context(), a.Deconstruct, taskType, req.Constraints)
	h.metrics.observeLLM("generate", time.Since(start), err)
	if err != nil {
		RespondLyraError(c, err)
		return
	}
	h.metrics.observeGeneration(len(candidates))

	if len(candidates) == 0 {
		warnings = append(warnings, "no candidates found in model response")
	}

	c.JSON(http.StatusOK, CandidatesResponse{
		TaskType:   taskType,
		Analysis:   a,
		Candidates: candidates,
		Tokens:     optimize.StatsFor(candidates),
		Model:      h.model,
		Warnings:   warnings,
	})
}

// Evaluate scores candidates with the judge and heuristics.
func (h *Handler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	scores, err := h.judge.Evaluate(c.Request.Context(), req.Candidates)
	h.metrics.observeLLM("evaluate", time.Since(start), err)
	if err != nil {
		RespondLyraError(c, err)
		return
	}

	results := eval.Combine(req.Candidates, scores)
	out := eval.JSONOutput{Results: results}
	if best := eval.Best(results); best >= 0 {
		out.Best = results[best].Label
	}
	c.JSON(http.StatusOK, out)
}

// Compare diffs two candidates.
func (h *Handler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	diff, err := compare.Diff(req.A, req.B)
	if err != nil {
		RespondLyraError(c, err)
		return
	}

	c.JSON(http.StatusOK, CompareResponse{
		Diff:       diff,
		Similarity: compare.Similarity(req.A, req.B),
	})
}

// CreateSession records the chosen candidate in history and exports it.
func (h *Handler) CreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		RespondLyraError(c, errors.EmptyPrompt())
		return
	}

	taskType, _ := parseTaskType(req.TaskType)
	chosen, err := optimize.Pick(req.Candidates, req.Chosen)
	if err != nil {
		RespondLyraError(c, err)
		return
	}

	session, err := history.NewSession(req.Prompt, analyze.Run(req.Prompt, req.Constraints), req.Candidates, chosen, taskType)
	if err != nil {
		RespondLyraError(c, err)
		return
	}

	mdPath, jsonPath, err := history.Export(session, h.exportsDir)
	if err != nil {
		RespondLyraError(c, err)
		return
	}
	if err := h.history.Append(session); err != nil {
		RespondLyraError(c, err)
		return
	}

	h.logger.Info("session saved",
		zap.String("session_id", session.ID),
		zap.String("markdown_path", mdPath),
	)

	c.JSON(http.StatusCreated, SessionResponse{
		Session:    session,
		MarkdownAt: mdPath,
		JSONAt:     jsonPath,
		UsageGuide: history.UsageGuide(taskType, req.Candidates[chosen]),
		RiskNote:   history.RiskNote,
	})
}

// ListSessions returns a summary of every recorded session, newest first.
func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.history.Load()
	if err != nil {
		RespondLyraError(c, err)
		return
	}

	out := make([]SessionSummary, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		out = append(out, SessionSummary{
			ID:        s.ID,
			Timestamp: s.Timestamp,
			Tags:      s.Tags,
			Preview:   s.Preview(previewRunes),
		})
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

// GetSession returns one recorded session.
func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.history.Find(c.Param("id"))
	if err != nil {
		RespondLyraError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// bindPrompt decodes a PromptRequest and validates its prompt and priority.
// Unknown task types are kept and reported as warnings.
func (h *Handler) bindPrompt(c *gin.Context) (PromptRequest, optimize.TaskType, []string, bool) {
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return req, "", nil, false
	}
	if strings.TrimSpace(req.Prompt) == "" {
		RespondLyraError(c, errors.EmptyPrompt())
		return req, "", nil, false
	}

	priority, err := optimize.ParsePriority(string(req.Constraints.Priority))
	if err != nil {
		RespondLyraError(c, err)
		return req, "", nil, false
	}
	req.Constraints.Priority = priority

	var warnings []string
	taskType, err := parseTaskType(req.TaskType)
	if err != nil {
		warnings = append(warnings, err.Error())
	}
	return req, taskType, warnings, true
}

// parseTaskType defaults an empty value to Creative.
func parseTaskType(s string) (optimize.TaskType, error) {
	if strings.TrimSpace(s) == "" {
		return optimize.TaskCreative, nil
	}
	return optimize.ParseTaskType(s)
}

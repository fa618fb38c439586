package optimize

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Completer sends an instruction to an LLM and returns its text response.
// Implementations own their timeout and cancellation behavior.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Generator turns a deconstructed prompt into rewritten candidates.
// It holds no per-call state and is safe for concurrent use.
type Generator struct {
	llm        Completer
	extractor  *Extractor
	systemRole string
	logger     *zap.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithExtractor sets the extractor used to parse responses.
func WithExtractor(x *Extractor) GeneratorOption {
	return func(g *Generator) {
		g.extractor = x
	}
}

// WithSystemRole replaces the role line prepended to each instruction.
func WithSystemRole(role string) GeneratorOption {
	return func(g *Generator) {
		g.systemRole = role
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a generator that calls llm.
func NewGenerator(llm Completer, opts ...GeneratorOption) *Generator {
	g := &Generator{
		llm:        llm,
		systemRole: SystemRole,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.extractor == nil {
		g.extractor = NewExtractor(nil)
	}
	return g
}

// Instruction returns the full text sent to the model.
func (g *Generator) Instruction(d Deconstruction, taskType TaskType, c Constraints) string {
	prompt := BuildGenerationPrompt(d, taskType, c)
	if g.systemRole == "" {
		return prompt
	}
	return g.systemRole + "\n" + prompt
}

// Generate builds the strategy instruction, sends it to the model, and parses
// the response. Errors from the model are returned unchanged. A response with
// fewer than three candidates, or none, is not an error.
func (g *Generator) Generate(ctx context.Context, d Deconstruction, taskType TaskType, c Constraints) ([]Candidate, error) {
	instruction := g.Instruction(d, taskType, c)

	start := time.Now()
	raw, err := g.llm.Complete(ctx, instruction)
	if err != nil {
		g.logger.Debug("candidate generation failed",
			zap.String("task_type", string(taskType)),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	candidates := g.extractor.Extract(raw)

	fields := []zap.Field{
		zap.String("task_type", string(taskType)),
		zap.Int("instruction_bytes", len(instruction)),
		zap.Int("response_bytes", len(raw)),
		zap.Int("candidates", len(candidates)),
		zap.Duration("latency", time.Since(start)),
	}
	if len(candidates) == 0 {
		g.logger.Warn("no candidates found in model response", fields...)
	} else {
		g.logger.Debug("generated candidates", fields...)
	}

	return candidates, nil
}

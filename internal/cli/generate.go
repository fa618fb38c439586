package cli

import (
	"context"
	"fmt"

	"github.com/HartBrook/lyra/internal/analyze"
	"github.com/HartBrook/lyra/internal/draft"
	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/spf13/cobra"
)

// generateOutput is the --json form of generate.
type generateOutput struct {
	TaskType   optimize.TaskType    `json:"task_type"`
	Analysis   analyze.Analysis     `json:"analysis"`
	Candidates []optimize.Candidate `json:"candidates"`
	Tokens     optimize.TokenStats  `json:"tokens"`
	Model      string               `json:"model"`
}

// NewGenerateCmd creates the generate command.
func NewGenerateCmd(a *app) *cobra.Command {
	var flags promptFlags
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Ask the model for three optimized candidates",
		Long: `Analyzes the prompt, sends it to the generation model with three strategies
chosen for the task type, and prints the candidates it returns.

The result is kept as the working draft so evaluate, compare, and export
can use it without calling the model again.`,
		Example: `  lyra generate "Write a blog post about Go generics" --task-type technical
  lyra generate --file prompt.txt --word-limit 200 --tone friendly
  lyra generate "Plan a study schedule" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := a.readPrompt(args, flags.file)
			if err != nil {
				return err
			}
			c, err := flags.constraints()
			if err != nil {
				return err
			}
			taskType, warn := flags.parsedTaskType()
			if warn != "" {
				printWarning(cmd.ErrOrStderr(), "%s; no strategies will be offered", warn)
			}
			return runGenerate(cmd, a, prompt, taskType, c, jsonOut)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the candidates as JSON")

	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, prompt string, taskType optimize.TaskType, c optimize.Constraints, jsonOut bool) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	gen, err := a.generator()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result := analyze.Run(prompt, c)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if !jsonOut {
		fmt.Fprintf(out, "%s %s\n", info("⟳"), fmt.Sprintf("Generating candidates with %s...", cfg.Generation.Model))
	}
	candidates, err := gen.Generate(ctx, result.Deconstruct, taskType, c)
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		printWarning(cmd.ErrOrStderr(), "No candidates found in model response")
		if jsonOut {
			return writeJSON(out, generateOutput{TaskType: taskType, Analysis: result, Candidates: candidates, Model: cfg.Generation.Model})
		}
		return nil
	}

	if err := a.drafts().Write(draft.New(prompt, taskType, result, candidates, cfg.Generation.Model)); err != nil {
		printWarning(cmd.ErrOrStderr(), "Could not save draft: %v", err)
	}

	stats := optimize.StatsFor(candidates)
	if jsonOut {
		return writeJSON(out, generateOutput{
			TaskType:   taskType,
			Analysis:   result,
			Candidates: candidates,
			Tokens:     stats,
			Model:      cfg.Generation.Model,
		})
	}

	fmt.Fprintln(out)
	renderCandidates(out, candidates)
	fmt.Fprintln(out)
	printSuccess(out, "Generated %d candidates (tokens: %d-%d, total %d)", len(candidates), stats.Min, stats.Max, stats.Total)
	fmt.Fprintf(out, "  %s\n", dim("Next: lyra evaluate, lyra compare A B, or lyra export <label>"))
	return nil
}

package cli

import (
	"fmt"

	"github.com/HartBrook/lyra/internal/analyze"
	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/spf13/cobra"
)

// analyzeOutput is the --json form of analyze.
type analyzeOutput struct {
	analyze.Analysis
	TaskType optimize.TaskType `json:"task_type"`
}

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd(a *app) *cobra.Command {
	var flags promptFlags
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "analyze [prompt]",
		Short: "Deconstruct and diagnose a prompt without calling a model",
		Long: `Runs the rule-based passes over a prompt: extracts the intent, entities,
context, and output specs, lists missing information, and flags common
weaknesses. No model is called.`,
		Example: `  lyra analyze "Write a short poem about the sea"
  lyra analyze --file prompt.txt --audience "new hires"
  echo "Explain TCP" | lyra analyze --json`,
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

			out := cmd.OutOrStdout()
			if warn != "" {
				printWarning(cmd.ErrOrStderr(), "%s", warn)
			}

			result := analyze.Run(prompt, c)
			if jsonOut {
				return writeJSON(out, analyzeOutput{Analysis: result, TaskType: taskType})
			}

			fmt.Fprintf(out, "%s %s\n\n", dim("Task type:"), info(string(taskType)))
			renderAnalysis(out, result)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the analysis as JSON")

	return cmd
}

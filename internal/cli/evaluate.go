package cli

import (
	"context"
	"fmt"

	"github.com/HartBrook/lyra/internal/eval"
	"github.com/spf13/cobra"
)

// NewEvaluateCmd creates the evaluate command.
func NewEvaluateCmd(a *app) *cobra.Command {
	var format string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score the draft candidates with an LLM judge and heuristics",
		Long: `Sends each candidate in the working draft to the judge model, which scores it
1-5 on clarity, specificity, completeness, and safety. Readability, length,
and PII heuristics are computed locally. The candidate with the highest
weighted overall score is marked best.`,
		Example: `  lyra evaluate
  lyra evaluate --format json
  lyra evaluate --format github`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOut {
				format = string(eval.OutputFormatJSON)
			}
			outputFormat := eval.OutputFormat(format)
			switch outputFormat {
			case eval.OutputFormatTable, eval.OutputFormatJSON, eval.OutputFormatGitHub:
			default:
				return fmt.Errorf("invalid format %q: must be table, json, or github", format)
			}

			d, err := a.drafts().Read()
			if err != nil {
				return err
			}
			if len(d.Candidates) == 0 {
				printWarning(cmd.ErrOrStderr(), "The draft has no candidates to evaluate")
				return nil
			}

			judge, err := a.judge()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			scores, err := judge.Evaluate(ctx, d.Candidates)
			if err != nil {
				return err
			}

			results := eval.Combine(d.Candidates, scores)
			return eval.NewFormatter(cmd.OutOrStdout(), outputFormat).FormatResults(results)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, or github")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Shorthand for --format json")

	return cmd
}

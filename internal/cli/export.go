package cli

import (
	"fmt"
	"strings"

	"github.com/HartBrook/lyra/internal/history"
	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command.
func NewExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <label>",
		Short: "Save the chosen candidate and record the session",
		Long: `Selects a candidate from the working draft, writes it to the exports
directory as Markdown and JSON, appends the session to history, and prints
a short usage guide.`,
		Example: `  lyra export B
  lyra export a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			store, err := a.history()
			if err != nil {
				return err
			}

			d, err := a.drafts().Read()
			if err != nil {
				return err
			}
			chosen, err := optimize.Pick(d.Candidates, args[0])
			if err != nil {
				return err
			}

			session, err := history.NewSession(d.Prompt, d.Analysis, d.Candidates, chosen, d.TaskType)
			if err != nil {
				return err
			}
			mdPath, jsonPath, err := history.Export(session, cfg.Exports.Dir)
			if err != nil {
				return err
			}
			if err := store.Append(session); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			c := d.Candidates[chosen]
			printSuccess(out, "Exported Candidate %s", c.Label)
			printInfo(out, "Markdown", mdPath)
			printInfo(out, "JSON", jsonPath)
			printInfo(out, "Session", session.ID)
			fmt.Fprintln(out)
			fmt.Fprintln(out, bold("Usage Guide"))
			for _, line := range strings.Split(history.UsageGuide(d.TaskType, c), "\n") {
				fmt.Fprintf(out, "  %s\n", line)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, bold("Risk Notes"))
			fmt.Fprintf(out, "  %s %s\n", warningIcon, history.RiskNote)
			return nil
		},
	}

	return cmd
}

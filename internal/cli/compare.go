package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/HartBrook/lyra/internal/compare"
	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [label-a] [label-b]",
		Short: "Show a unified diff between two draft candidates",
		Example: `  lyra compare          # A against B
  lyra compare a c`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("compare takes zero or two labels, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			labelA, labelB := "A", "B"
			if len(args) == 2 {
				labelA, labelB = args[0], args[1]
			}

			d, err := a.drafts().Read()
			if err != nil {
				return err
			}
			i, err := optimize.Pick(d.Candidates, labelA)
			if err != nil {
				return err
			}
			j, err := optimize.Pick(d.Candidates, labelB)
			if err != nil {
				return err
			}
			ca, cb := d.Candidates[i], d.Candidates[j]

			diff, err := compare.Diff(ca, cb)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if diff == "" {
				printSuccess(out, "Candidates %s and %s are identical", ca.Label, cb.Label)
				return nil
			}
			renderDiff(out, diff)
			fmt.Fprintln(out)
			printInfo(out, "Word similarity", fmt.Sprintf("%.0f%%", compare.Similarity(ca, cb)*100))
			return nil
		},
	}

	return cmd
}

func renderDiff(w io.Writer, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprint(w, bold(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprint(w, info(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(w, success(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(w, danger(line))
		default:
			fmt.Fprint(w, line)
		}
	}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/HartBrook/lyra/internal/draft"
	"github.com/HartBrook/lyra/internal/errors"
	"github.com/HartBrook/lyra/internal/history"
	"github.com/spf13/cobra"
)

const historyPreviewRunes = 60

// NewHistoryCmd creates the history command.
func NewHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, inspect, and restore recorded sessions",
	}

	cmd.AddCommand(newHistoryListCmd(a))
	cmd.AddCommand(newHistoryShowCmd(a))
	cmd.AddCommand(newHistoryRestoreCmd(a))

	return cmd
}

func newHistoryListCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded sessions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.history()
			if err != nil {
				return err
			}
			sessions, err := store.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, dim("No sessions recorded yet. Run lyra export <label> to save one."))
				return nil
			}

			shown := 0
			for i := len(sessions) - 1; i >= 0; i-- {
				if limit > 0 && shown == limit {
					break
				}
				s := sessions[i]
				fmt.Fprintf(out, "%s  %s  %s\n", dim(s.Timestamp), info(shortID(s.ID)), s.Preview(historyPreviewRunes))
				shown++
			}
			if shown < len(sessions) {
				fmt.Fprintf(out, "%s\n", dim(fmt.Sprintf("... %d older sessions (use --limit 0 to show all)", len(sessions)-shown)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum sessions to show (0 for all)")

	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show one recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.findSession(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, s)
			}

			fmt.Fprintf(out, "%s %s\n", bold("Session"), s.ID)
			printInfo(out, "Recorded", s.Timestamp)
			printInfo(out, "Task type", string(s.TaskType))
			printInfo(out, "Tags", orNA(s.Tags))
			fmt.Fprintln(out)
			fmt.Fprintln(out, bold("Prompt"))
			for _, line := range strings.Split(s.Prompt, "\n") {
				fmt.Fprintf(out, "  %s\n", line)
			}
			fmt.Fprintln(out)
			renderAnalysis(out, s.Analysis())
			fmt.Fprintln(out)

			chosen, err := s.Chosen()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\n", bold("Chosen"))
			renderCandidate(out, chosen)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the session as JSON")

	return cmd
}

func newHistoryRestoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <session-id>",
		Short: "Make a recorded session the working draft again",
		Long: `Replaces the working draft with the prompt, analysis, and candidates of a
recorded session so they can be evaluated, compared, or exported again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.findSession(args[0])
			if err != nil {
				return err
			}

			d := draft.New(s.Prompt, s.TaskType, s.Analysis(), s.Candidates, "")
			if err := a.drafts().Write(d); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Restored session %s from %s (%d candidates)", shortID(s.ID), s.Timestamp, len(s.Candidates))
			return nil
		},
	}

	return cmd
}

// findSession looks a session up by full ID or, failing that, by a unique ID prefix.
func (a *app) findSession(id string) (*history.Session, error) {
	store, err := a.history()
	if err != nil {
		return nil, err
	}
	s, err := store.Find(id)
	if err == nil || !errors.HasCode(err, errors.ErrSessionNotFound) {
		return s, err
	}

	sessions, loadErr := store.Load()
	if loadErr != nil {
		return nil, loadErr
	}
	var match *history.Session
	for i := range sessions {
		if strings.HasPrefix(sessions[i].ID, id) {
			if match != nil {
				return nil, err
			}
			match = &sessions[i]
		}
	}
	if match == nil {
		return nil, err
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

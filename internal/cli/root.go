// Package cli implements the lyra command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/HartBrook/lyra/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"

	// Output helpers.
	successIcon = color.New(color.FgGreen).Sprint("✓")
	warningIcon = color.New(color.FgYellow).Sprint("⚠")
	errorIcon   = color.New(color.FgRed).Sprint("✗")

	success = color.New(color.FgGreen).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
	danger  = color.New(color.FgRed).SprintFunc()
	info    = color.New(color.FgCyan).SprintFunc()
	bold    = color.New(color.Bold).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultApp())
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lyra",
		Short: "Turn rough prompts into optimized, model-ready prompts",
		Long: `Lyra analyzes a rough prompt, asks a model for three rewritten candidates
using strategies chosen for the task type, and helps you score, compare,
and save the best one.

A typical session:
  lyra analyze "..."     # rule-based deconstruct and diagnose
  lyra generate "..."    # ask the model for candidates
  lyra evaluate          # score them with an LLM judge and heuristics
  lyra compare A B       # diff two candidates
  lyra export B          # save the chosen prompt and record the session`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, or error (default from config)")

	// Add subcommands
	rootCmd.AddCommand(NewAnalyzeCmd(a))
	rootCmd.AddCommand(NewGenerateCmd(a))
	rootCmd.AddCommand(NewEvaluateCmd(a))
	rootCmd.AddCommand(NewCompareCmd(a))
	rootCmd.AddCommand(NewExportCmd(a))
	rootCmd.AddCommand(NewHistoryCmd(a))
	rootCmd.AddCommand(NewServeCmd(a))
	rootCmd.AddCommand(NewInitCmd(a))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lyra %s\n", Version)
		},
	}
}

// Execute runs the CLI.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printErr(os.Stderr, err)
		return err
	}
	return nil
}

// printErr prints err with its hint when it carries one.
func printErr(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", errorIcon, err.Error())
	if le, ok := errors.From(err); ok && le.Hint != "" {
		fmt.Fprintf(w, "  %s\n", dim(le.Hint))
	}
}

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", successIcon, fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", warningIcon, fmt.Sprintf(format, args...))
}

// printInfo prints an info line.
func printInfo(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s: %s\n", dim(label), value)
}

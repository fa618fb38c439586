package cli

import (
	"io"
	"os"
	"strings"

	"github.com/HartBrook/lyra/internal/errors"
	"github.com/HartBrook/lyra/internal/optimize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// promptFlags are the input and constraint flags shared by analyze and generate.
type promptFlags struct {
	file      string
	taskType  string
	wordLimit int
	tone      string
	style     string
	audience  string
	priority  string
}

func (f *promptFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read the prompt from a file (- for stdin)")
	cmd.Flags().StringVarP(&f.taskType, "task-type", "t", string(optimize.TaskCreative), "Task type: Creative, Technical, Educational, or Complex")
	cmd.Flags().IntVar(&f.wordLimit, "word-limit", 0, "Word limit for the final answer")
	cmd.Flags().StringVar(&f.tone, "tone", "", "Desired tone")
	cmd.Flags().StringVar(&f.style, "style", "", "Desired style")
	cmd.Flags().StringVar(&f.audience, "audience", "", "Intended audience")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Trade-off hint: Latency or Cost")
}

// constraints validates the constraint flags.
func (f *promptFlags) constraints() (optimize.Constraints, error) {
	priority, err := optimize.ParsePriority(f.priority)
	if err != nil {
		return optimize.Constraints{}, err
	}
	return optimize.Constraints{
		WordLimit: f.wordLimit,
		Tone:      strings.TrimSpace(f.tone),
		Style:     strings.TrimSpace(f.style),
		Audience:  strings.TrimSpace(f.audience),
		Priority:  priority,
	}, nil
}

// parsedTaskType returns the task type and a warning when it is not one of the known types.
// Unknown types are kept so generation still runs, but without strategies.
func (f *promptFlags) parsedTaskType() (optimize.TaskType, string) {
	if strings.TrimSpace(f.taskType) == "" {
		return optimize.TaskCreative, ""
	}
	t, err := optimize.ParseTaskType(f.taskType)
	if err != nil {
		return t, err.Error()
	}
	return t, ""
}

// readPrompt takes the prompt from args, then --file, then piped stdin.
func (a *app) readPrompt(args []string, file string) (string, error) {
	var prompt string
	switch {
	case len(args) > 0:
		prompt = strings.Join(args, " ")
	case file == "-":
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", err
		}
		prompt = string(data)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		prompt = string(data)
	case !a.stdinIsTerminal():
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", err
		}
		prompt = string(data)
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.EmptyPrompt()
	}
	return prompt, nil
}

// stdinIsTerminal reports whether stdin is an interactive terminal.
// Readers that are not files are treated as piped input.
func (a *app) stdinIsTerminal() bool {
	f, ok := a.stdin.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/HartBrook/lyra/internal/config"
	"github.com/HartBrook/lyra/internal/llm"
	"github.com/spf13/cobra"
)

// NewInitCmd creates the init command.
func NewInitCmd(a *app) *cobra.Command {
	var force bool
	var provider string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default lyra configuration file",
		Long: `Creates the configuration file with default models, sampling settings,
and storage paths for the chosen provider. Existing files are left alone
unless --force is given.`,
		Example: `  lyra init
  lyra init --provider anthropic --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			path := a.paths.ConfigFile

			if _, err := os.Stat(path); err == nil && !force {
				printWarning(out, "Config already exists at %s", path)
				fmt.Fprintf(out, "  %s\n", dim("Use --force to overwrite it."))
				return nil
			}

			cfg := config.Default(a.paths)
			if p := strings.ToLower(strings.TrimSpace(provider)); p != "" && p != cfg.Provider {
				cfg.Provider = p
				cfg.Generation.Model = config.DefaultModelFor(p)
				cfg.Judge.Model = config.DefaultModelFor(p)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveTo(cfg, path); err != nil {
				return err
			}
			a.cfg = cfg

			printSuccess(out, "Wrote %s", path)
			printInfo(out, "Provider", cfg.Provider)
			printInfo(out, "Model", cfg.Generation.Model)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Set %s in your environment or in a %s file before running generate.\n",
				info(llm.EnvVar(cfg.Provider)), config.DotEnvFile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.Flags().StringVar(&provider, "provider", config.DefaultProvider, "Model provider: openai or anthropic")

	return cmd
}

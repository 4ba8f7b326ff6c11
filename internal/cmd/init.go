package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github3/pkg/config"
	"github3/pkg/github"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize github3 configuration",
		Long:  "Create a default configuration file for github3",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runInit(force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration file without asking")
	return cmd
}

func (a *app) runInit(force bool) error {
	if _, err := os.Stat(a.configPath); err == nil && !force {
		fmt.Fprintf(a.out, "⚠️  Configuration file already exists at: %s\n", a.configPath)
		fmt.Fprint(a.out, "Do you want to overwrite it? (y/N): ")
		response, _ := bufio.NewReader(a.in).ReadString('\n')
		if r := strings.TrimSpace(response); r != "y" && r != "Y" {
			fmt.Fprintln(a.out, "Configuration initialization cancelled.")
			return nil
		}
	}

	defaultConfig := &config.Config{
		GitHub: config.GitHubConfig{
			PerPage: github.DefaultPerPage,
		},
		Log: config.LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}

	if err := defaultConfig.SaveConfigToPath(a.configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(a.out, "✅ Configuration file created at: %s\n", a.configPath)
	fmt.Fprintln(a.out, "📝 Add a token under github.token, or export GITHUB_TOKEN.")
	return nil
}

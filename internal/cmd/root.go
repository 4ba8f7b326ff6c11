package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github3/pkg/config"
	"github3/pkg/fuzzy"
	"github3/pkg/github"
	"github3/pkg/logger"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
)

const defaultLimit = 30

// app is the state shared by every command of one invocation.
type app struct {
	configPath    string
	gitconfigPath string
	limit         int
	output        string
	logLevel      string

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg    *config.Config
	log    zerolog.Logger
	client *github.Client

	newPicker func(in io.Reader, out io.Writer) fuzzy.Picker
}

var rootCmd = newRootCmd(os.Stdin, os.Stdout, os.Stderr)

// Execute runs the command tree against the process streams.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{
		in:        in,
		out:       out,
		errOut:    errOut,
		log:       zerolog.Nop(),
		newPicker: fuzzy.NewPicker,
	}

	cmd := &cobra.Command{
		Use:   "github3",
		Short: "A command-line client for the GitHub REST API",
		Long: `github3 reads users, organizations, repositories, gists and pull requests
from the GitHub REST API.

Listings are fetched lazily, one page at a time, and stop as soon as --limit
items have been printed. Authentication uses GITHUB_TOKEN, the token in
~/.github3/config.yaml, or github.token from your global git configuration.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to the configuration file (default ~/.github3/config.yaml)")
	flags.IntVarP(&a.limit, "limit", "n", defaultLimit, "Maximum number of items to list (0 for no limit)")
	flags.StringVarP(&a.output, "output", "o", outputText, "Output format: text or json")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	cmd.AddCommand(
		newInitCmd(a),
		newAuthCmd(a),
		newUserCmd(a),
		newRepoCmd(a),
		newOrgCmd(a),
		newGistCmd(a),
		newPullCmd(a),
	)
	return cmd
}

// setup loads the configuration and builds the logger. The API client is
// created on first use.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.output != outputText && a.output != outputJSON {
		return fmt.Errorf("unsupported output format %q: use %s or %s", a.output, outputText, outputJSON)
	}
	if a.limit < 0 {
		return fmt.Errorf("--limit must not be negative, got %d", a.limit)
	}

	if a.configPath == "" {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		a.configPath = path
	}
	if a.gitconfigPath == "" {
		if path, err := config.GetGitConfigPath(); err == nil {
			a.gitconfigPath = path
		}
	}

	cfg, err := config.LoadConfigFromPath(a.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", a.configPath, err)
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.log = logger.New(logger.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: a.errOut,
	}).With().Str("command", cmd.CommandPath()).Logger()

	return nil
}

// Client returns the API client, creating it on first use.
func (a *app) Client(ctx context.Context) (*github.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	token, source, err := a.cfg.ResolveToken(a.gitconfigPath)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("source", source).Bool("authenticated", token != "").Msg("resolved token")

	client, err := github.New(ctx, github.Options{
		Token:   token,
		BaseURL: a.cfg.GitHub.BaseURL,
		PerPage: a.cfg.GitHub.PerPage,
		Logger:  a.log,
	})
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

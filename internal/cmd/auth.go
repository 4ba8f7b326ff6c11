package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github3/pkg/config"
	"github3/pkg/github"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect GitHub authentication",
	}

	var scopes []string
	status := &cobra.Command{
		Use:   "status",
		Short: "Show which token is used and what it can access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runAuthStatus(cmd, scopes)
		},
	}
	status.Flags().StringSliceVar(&scopes, "require", nil, "OAuth scopes the token must carry (e.g. repo,gist)")

	cmd.AddCommand(status)
	return cmd
}

func (a *app) runAuthStatus(cmd *cobra.Command, required []string) error {
	_, source, err := a.cfg.ResolveToken(a.gitconfigPath)
	if err != nil {
		return err
	}

	client, err := a.Client(cmd.Context())
	if err != nil {
		return err
	}

	info, err := client.ValidateToken(cmd.Context(), required...)
	if errors.Is(err, github.ErrNotAuthenticated) {
		fmt.Fprintln(a.out, "❌ Not authenticated")
		fmt.Fprintln(a.out, github.GetAuthInstructions())
		return nil
	}
	if info == nil {
		return err
	}

	fmt.Fprintf(a.out, "✅ Logged in to %s as %s\n", client.BaseURL(), info.User)
	if source != config.SourceNone {
		fmt.Fprintf(a.out, "   Token source: %s\n", source)
	}
	if len(info.Scopes) > 0 {
		fmt.Fprintf(a.out, "   Token scopes: %s\n", strings.Join(info.Scopes, ", "))
	} else {
		fmt.Fprintln(a.out, "   Token scopes: none reported")
	}
	return err
}

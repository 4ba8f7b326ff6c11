package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github3/pkg/github"
	"github3/pkg/idl"
)

func newGistCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gist",
		Short: "Work with gists",
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the description of a gist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := &github.Gist{}
			setChanged(cmd, map[string]*idl.Opt[string]{"description": &g.Description})
			if !g.Description.IsSet() {
				return fmt.Errorf("nothing to update: pass --description")
			}
			client, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}
			updated, err := client.Gists.Update(cmd.Context(), args[0], g)
			if err != nil {
				return err
			}
			return a.printModel(github.GistSchema, updated)
		},
	}
	update.Flags().String("description", "", "New description")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show a gist and its files",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				gist, err := client.Gists.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.printModel(github.GistSchema, gist)
			},
		},
		&cobra.Command{
			Use:   "list [user]",
			Short: "List gists",
			Long: `List the gists of a user. Without a user, the authenticated account's gists
are listed, or public gists when no token is configured.`,
			Args: cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var user string
				if len(args) > 0 {
					user = args[0]
				}
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				return a.printList(cmd.Context(), client.Gists.List(user, a.limit), github.GistSchema, gistLine)
			},
		},
		update,
	)
	return cmd
}

func gistLine(m idl.Model) string {
	g, ok := m.(*github.Gist)
	if !ok {
		return ""
	}
	files := strings.Join(g.Files.Keys(), ", ")
	if d := str(g.Description); d != "" {
		return fmt.Sprintf("%s\t%s\t%s", str(g.ID), d, files)
	}
	return fmt.Sprintf("%s\t%s", str(g.ID), files)
}

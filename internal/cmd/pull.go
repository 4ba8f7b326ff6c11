package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github3/pkg/github"
	"github3/pkg/idl"
)

func newPullCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Work with pull requests",
	}

	var state string
	list := &cobra.Command{
		Use:   "list <owner/name>",
		Short: "List the pull requests of a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch state {
			case "", "open", "closed", "all":
			default:
				return fmt.Errorf("invalid state %q: use open, closed or all", state)
			}
			owner, name, err := splitRepo(args[0])
			if err != nil {
				return err
			}
			client, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}
			return a.printList(cmd.Context(), client.Pulls.List(owner, name, state, a.limit), github.PullRequestSchema, pullLine)
		},
	}
	list.Flags().StringVar(&state, "state", "", "Filter by state: open, closed or all (default open)")

	var message, method string
	merge := &cobra.Command{
		Use:   "merge <owner/name> <number>",
		Short: "Merge a pull request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch method {
			case "", github.MergeMethodMerge, github.MergeMethodSquash, github.MergeMethodRebase:
			default:
				return fmt.Errorf("invalid merge method %q: use merge, squash or rebase", method)
			}
			owner, name, number, err := pullArgs(args)
			if err != nil {
				return err
			}
			client, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}
			result, err := client.Pulls.Merge(cmd.Context(), owner, name, number, message, method)
			if err != nil {
				return err
			}
			return a.printModel(github.MergeResultSchema, result)
		},
	}
	merge.Flags().StringVarP(&message, "message", "m", "", "Commit message for the merge")
	merge.Flags().StringVar(&method, "method", "", "Merge method: merge, squash or rebase")

	var head, base string
	create := &cobra.Command{
		Use:   "create <owner/name>",
		Short: "Open a pull request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepo(args[0])
			if err != nil {
				return err
			}
			pr := &github.PullRequest{}
			setChanged(cmd, map[string]*idl.Opt[string]{"title": &pr.Title, "body": &pr.Body})

			client, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}
			created, err := client.Pulls.Create(cmd.Context(), owner, name, head, base, pr)
			if err != nil {
				return err
			}
			a.log.Info().Int64("number", created.Number.Or(0)).Msg("pull request created")
			return a.printModel(github.PullRequestSchema, created)
		},
	}
	create.Flags().String("title", "", "Title of the pull request")
	create.Flags().String("body", "", "Description of the pull request")
	create.Flags().StringVar(&head, "head", "", "Branch with the changes (user:branch for forks)")
	create.Flags().StringVar(&base, "base", "", "Branch to merge into")

	update := &cobra.Command{
		Use:   "update <owner/name> <number>",
		Short: "Edit the title, body or state of a pull request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, number, err := pullArgs(args)
			if err != nil {
				return err
			}
			pr := &github.PullRequest{}
			setChanged(cmd, map[string]*idl.Opt[string]{"title": &pr.Title, "body": &pr.Body, "state": &pr.State})
			if s, ok := pr.State.Get(); ok && s != "open" && s != "closed" {
				return fmt.Errorf("invalid state %q: use open or closed", s)
			}

			client, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}
			updated, err := client.Pulls.Update(cmd.Context(), owner, name, number, pr)
			if err != nil {
				return err
			}
			return a.printModel(github.PullRequestSchema, updated)
		},
	}
	update.Flags().String("title", "", "New title")
	update.Flags().String("body", "", "New description")
	update.Flags().String("state", "", "open or closed")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <owner/name> <number>",
			Short: "Show a pull request",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				owner, name, number, err := pullArgs(args)
				if err != nil {
					return err
				}
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				pr, err := client.Pulls.Get(cmd.Context(), owner, name, number)
				if err != nil {
					return err
				}
				return a.printModel(github.PullRequestSchema, pr)
			},
		},
		list,
		&cobra.Command{
			Use:   "files <owner/name> <number>",
			Short: "List the files changed by a pull request",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				owner, name, number, err := pullArgs(args)
				if err != nil {
					return err
				}
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				return a.printList(cmd.Context(), client.Pulls.Files(owner, name, number, a.limit), github.PullFileSchema, pullFileLine)
			},
		},
		&cobra.Command{
			Use:   "merged <owner/name> <number>",
			Short: "Check whether a pull request has been merged",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				owner, name, number, err := pullArgs(args)
				if err != nil {
					return err
				}
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				ok, err := client.Pulls.IsMerged(cmd.Context(), owner, name, number)
				if err != nil {
					return err
				}
				return a.printBool(ok,
					fmt.Sprintf("%s#%d has been merged", args[0], number),
					fmt.Sprintf("%s#%d has not been merged", args[0], number))
			},
		},
		create,
		update,
		merge,
	)
	return cmd
}

func pullArgs(args []string) (string, string, int, error) {
	owner, name, err := splitRepo(args[0])
	if err != nil {
		return "", "", 0, err
	}
	number, err := parseNumber(args[1])
	if err != nil {
		return "", "", 0, err
	}
	return owner, name, number, nil
}

func pullLine(m idl.Model) string {
	p, ok := m.(*github.PullRequest)
	if !ok {
		return ""
	}
	return fmt.Sprintf("#%d\t%s\t[%s]", p.Number.Or(0), str(p.Title), str(p.State))
}

func pullFileLine(m idl.Model) string {
	f, ok := m.(*github.PullFile)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s\t%s\t+%d -%d", str(f.Status), str(f.Filename), f.Additions.Or(0), f.Deletions.Or(0))
}

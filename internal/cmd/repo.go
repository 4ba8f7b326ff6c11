package cmd

import (
	"bufio"
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/spf13/cobra"

	"github3/pkg/fuzzy"
	"github3/pkg/github"
	"github3/pkg/idl"
	"github3/pkg/resource"
)

func newRepoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Work with repositories",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <owner/name>",
			Short: "Show a repository",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				owner, name, err := splitRepo(args[0])
				if err != nil {
					return err
				}
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				repo, err := client.Repos.Get(cmd.Context(), owner, name)
				if err != nil {
					return err
				}
				return a.printModel(github.RepoSchema, repo)
			},
		},
		a.repoListCmd(),
		&cobra.Command{
			Use:   "collaborators <owner/name>",
			Short: "List the collaborators of a repository",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				owner, name, err := splitRepo(args[0])
				if err != nil {
					return err
				}
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				return a.printList(cmd.Context(), client.Repos.Collaborators(owner, name, a.limit), github.UserSchema, userLine)
			},
		},
		&cobra.Command{
			Use:   "is-collaborator <owner/name> <user>",
			Short: "Check whether a user collaborates on a repository",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				owner, name, err := splitRepo(args[0])
				if err != nil {
					return err
				}
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				ok, err := client.Repos.IsCollaborator(cmd.Context(), owner, name, args[1])
				if err != nil {
					return err
				}
				return a.printBool(ok,
					fmt.Sprintf("%s is a collaborator on %s", args[1], args[0]),
					fmt.Sprintf("%s is not a collaborator on %s", args[1], args[0]))
			},
		},
		a.repoCreateCmd(),
		a.repoUpdateCmd(),
		a.repoDeleteCmd(),
		a.repoPickCmd(),
	)
	return cmd
}

func (a *app) repoListCmd() *cobra.Command {
	var org string

	cmd := &cobra.Command{
		Use:   "list [owner]",
		Short: "List repositories of a user or organization",
		Long: `List repositories of a user, or of an organization with --org.
Without an owner, the configured github.user is used, then the authenticated account.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.repoResult(cmd.Context(), org, args)
			if err != nil {
				return err
			}
			return a.printList(cmd.Context(), result, github.RepoSchema, repoLine)
		},
	}
	cmd.Flags().StringVar(&org, "org", "", "List the repositories of this organization")
	return cmd
}

func (a *app) repoResult(ctx context.Context, org string, args []string) (*resource.Result, error) {
	client, err := a.Client(ctx)
	if err != nil {
		return nil, err
	}
	if org != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("--org and an owner argument are mutually exclusive")
		}
		return client.Repos.ListByOrg(org, a.limit), nil
	}
	owner, err := a.loginArg(args)
	if err != nil {
		return nil, err
	}
	return client.Repos.List(owner, a.limit)
}

func (a *app) repoCreateCmd() *cobra.Command {
	var org, description, homepage string
	var private bool

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := &github.Repo{}
			repo.Name.Assign(args[0])
			if cmd.Flags().Changed("description") {
				repo.Description.Assign(description)
			}
			if cmd.Flags().Changed("homepage") {
				repo.Homepage.Assign(homepage)
			}
			repo.Private.Assign(private)

			client, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}
			created, err := client.Repos.Create(cmd.Context(), org, repo)
			if err != nil {
				return err
			}
			a.log.Info().Str("repo", str(created.FullName)).Msg("repository created")
			return a.printModel(github.RepoSchema, created)
		},
	}

	f := cmd.Flags()
	f.StringVar(&org, "org", "", "Create the repository in this organization")
	f.StringVar(&description, "description", "", "Short description")
	f.StringVar(&homepage, "homepage", "", "Homepage URL")
	f.BoolVar(&private, "private", false, "Make the repository private")
	return cmd
}

func (a *app) repoUpdateCmd() *cobra.Command {
	var private bool

	cmd := &cobra.Command{
		Use:   "update <owner/name>",
		Short: "Edit a repository",
		Long: `Edit a repository. Only the flags given are sent; --name renames the
repository.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepo(args[0])
			if err != nil {
				return err
			}

			repo := &github.Repo{}
			setChanged(cmd, map[string]*idl.Opt[string]{
				"name":           &repo.Name,
				"description":    &repo.Description,
				"homepage":       &repo.Homepage,
				"default-branch": &repo.DefaultBranch,
			})
			if cmd.Flags().Changed("private") {
				repo.Private.Assign(private)
			}

			client, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}
			updated, err := client.Repos.Update(cmd.Context(), owner, name, repo)
			if err != nil {
				return err
			}
			return a.printModel(github.RepoSchema, updated)
		},
	}

	f := cmd.Flags()
	f.String("name", "", "New repository name")
	f.String("description", "", "Short description")
	f.String("homepage", "", "Homepage URL")
	f.String("default-branch", "", "Default branch")
	f.BoolVar(&private, "private", false, "Make the repository private")
	return cmd
}

func (a *app) repoDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <owner/name>",
		Short: "Delete a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepo(args[0])
			if err != nil {
				return err
			}

			if !yes {
				fmt.Fprintf(a.out, "⚠️  This permanently deletes %s. Type the repository name to confirm: ", args[0])
				response, _ := bufio.NewReader(a.in).ReadString('\n')
				if strings.TrimSpace(response) != name {
					fmt.Fprintln(a.out, "Deletion cancelled.")
					return nil
				}
			}

			client, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}
			if err := client.Repos.Delete(cmd.Context(), owner, name); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✅ Deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func (a *app) repoPickCmd() *cobra.Command {
	var org string

	cmd := &cobra.Command{
		Use:   "pick [owner]",
		Short: "Choose a repository interactively and show it",
		Long: `Choose a repository with a fuzzy finder. Repositories are offered as their
pages arrive, so a choice can be made before the listing completes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.repoResult(cmd.Context(), org, args)
			if err != nil {
				return err
			}

			picker := a.newPicker(a.in, a.out)
			selected, err := picker.Pick(cmd.Context(), "Repository>", repoOptions(cmd.Context(), result))
			if err != nil {
				return err
			}

			owner, name, err := splitRepo(selected)
			if err != nil {
				return err
			}
			repo, err := a.client.Repos.Get(cmd.Context(), owner, name)
			if err != nil {
				return err
			}
			return a.printModel(github.RepoSchema, repo)
		},
	}
	cmd.Flags().StringVar(&org, "org", "", "Pick among the repositories of this organization")
	return cmd
}

func repoOptions(ctx context.Context, result *resource.Result) iter.Seq2[fuzzy.Option, error] {
	return func(yield func(fuzzy.Option, error) bool) {
		for model, err := range result.All(ctx) {
			if err != nil {
				yield(fuzzy.Option{}, err)
				return
			}
			repo, ok := model.(*github.Repo)
			if !ok || !repo.FullName.IsSet() {
				continue
			}
			if !yield(fuzzy.Option{Value: repo.FullName.Value(), Description: str(repo.Description)}, nil) {
				return
			}
		}
	}
}

func repoLine(m idl.Model) string {
	r, ok := m.(*github.Repo)
	if !ok {
		return ""
	}
	if d := str(r.Description); d != "" {
		return str(r.FullName) + "\t" + d
	}
	return str(r.FullName)
}

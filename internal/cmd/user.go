package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github3/pkg/github"
	"github3/pkg/idl"
	"github3/pkg/resource"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Work with GitHub users",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <login>",
			Short: "Show a public profile",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				user, err := client.Users.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.printModel(github.UserSchema, user)
			},
		},
		&cobra.Command{
			Use:   "me",
			Short: "Show the authenticated account",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				me, err := client.Users.Me(cmd.Context())
				if err != nil {
					return err
				}
				return a.printModel(github.AuthUserSchema, me)
			},
		},
		a.userListCmd("followers", "List the followers of a user", (*github.UsersService).Followers),
		a.userListCmd("following", "List the accounts a user follows", (*github.UsersService).Following),
		&cobra.Command{
			Use:   "follows <login> <target>",
			Short: "Check whether a user follows another",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				ok, err := client.Users.IsFollowing(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return a.printBool(ok,
					fmt.Sprintf("%s follows %s", args[0], args[1]),
					fmt.Sprintf("%s does not follow %s", args[0], args[1]))
			},
		},
		&cobra.Command{
			Use:   "follow <login>",
			Short: "Follow a user with the authenticated account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				if err := client.Users.Follow(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Now following %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "unfollow <login>",
			Short: "Stop following a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				if err := client.Users.Unfollow(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "No longer following %s\n", args[0])
				return nil
			},
		},
		a.userUpdateCmd(),
	)
	return cmd
}

type userListFunc func(s *github.UsersService, login string, limit int) (*resource.Result, error)

func (a *app) userListCmd(use, short string, list userListFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [login]",
		Short: short,
		Long:  short + ". Without a login, the configured github.user is used, then the authenticated account.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			login, err := a.loginArg(args)
			if err != nil {
				return err
			}
			client, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}
			result, err := list(client.Users, login, a.limit)
			if err != nil {
				return err
			}
			return a.printList(cmd.Context(), result, github.UserSchema, userLine)
		},
	}
}

func (a *app) userUpdateCmd() *cobra.Command {
	var name, email, blog, company, location, bio string
	var hireable bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the authenticated account's profile",
		Long: `Update the authenticated account's profile. Only the flags given are sent;
pass an empty value (e.g. --bio "") to clear a field.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u := &github.AuthUser{}
			setChanged(cmd, map[string]*idl.Opt[string]{
				"name":     &u.Name,
				"email":    &u.Email,
				"blog":     &u.Blog,
				"company":  &u.Company,
				"location": &u.Location,
				"bio":      &u.Bio,
			})
			if cmd.Flags().Changed("hireable") {
				u.Hireable.Assign(hireable)
			}

			client, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}
			updated, err := client.Users.Update(cmd.Context(), u)
			if err != nil {
				return err
			}
			return a.printModel(github.AuthUserSchema, updated)
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Display name")
	f.StringVar(&email, "email", "", "Public email")
	f.StringVar(&blog, "blog", "", "Blog URL")
	f.StringVar(&company, "company", "", "Company")
	f.StringVar(&location, "location", "", "Location")
	f.StringVar(&bio, "bio", "", "Short biography")
	f.BoolVar(&hireable, "hireable", false, "Available for hire")
	return cmd
}

// loginArg returns the login named on the command line, or the configured
// github.user. An empty result means the authenticated account.
func (a *app) loginArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return a.cfg.ResolveUser(a.gitconfigPath)
}

func userLine(m idl.Model) string {
	u, ok := m.(*github.User)
	if !ok {
		return ""
	}
	return str(u.Login)
}

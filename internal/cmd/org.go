package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github3/pkg/github"
	"github3/pkg/idl"
)

func newOrgCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Read organizations and their members",
	}

	var public bool
	members := &cobra.Command{
		Use:   "members <org>",
		Short: "List the members of an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}
			result := client.Orgs.Members(args[0], a.limit)
			if public {
				result = client.Orgs.PublicMembers(args[0], a.limit)
			}
			return a.printList(cmd.Context(), result, github.UserSchema, userLine)
		},
	}
	members.Flags().BoolVar(&public, "public", false, "Only list publicized members")

	var publicOnly bool
	isMember := &cobra.Command{
		Use:   "is-member <org> <user>",
		Short: "Check whether a user belongs to an organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.Client(cmd.Context())
			if err != nil {
				return err
			}
			check := client.Orgs.IsMember
			if publicOnly {
				check = client.Orgs.IsPublicMember
			}
			ok, err := check(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.printBool(ok,
				fmt.Sprintf("%s is a member of %s", args[1], args[0]),
				fmt.Sprintf("%s is not a member of %s", args[1], args[0]))
		},
	}
	isMember.Flags().BoolVar(&publicOnly, "public", false, "Only count publicized membership")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <org>",
			Short: "Show an organization",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.Client(cmd.Context())
				if err != nil {
					return err
				}
				org, err := client.Orgs.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.printModel(github.OrgSchema, org)
			},
		},
		&cobra.Command{
			Use:   "list [login]",
			Short: "List the organizations a user belongs to",
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
				result, err := client.Orgs.List(login, a.limit)
				if err != nil {
					return err
				}
				return a.printList(cmd.Context(), result, github.OrgSchema, orgLine)
			},
		},
		members,
		isMember,
	)
	return cmd
}

func orgLine(m idl.Model) string {
	o, ok := m.(*github.Org)
	if !ok {
		return ""
	}
	if d := str(o.Description); d != "" {
		return str(o.Login) + "\t" + d
	}
	return str(o.Login)
}

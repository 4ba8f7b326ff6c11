package github

import (
	"context"

	"github3/pkg/resource"
)

// OrgsService serves organization endpoints.
type OrgsService struct {
	client *Client
}

// Get fetches an organization.
func (s *OrgsService) Get(ctx context.Context, org string) (*Org, error) {
	return resource.As[*Org](s.client.handler("orgs").GetOne(ctx, OrgSchema, org))
}

// List lists the organizations of login, or of the authenticated account when
// login is empty.
func (s *OrgsService) List(login string, limit int) (*resource.Result, error) {
	h, parts, err := s.client.userHandler(login)
	if err != nil {
		return nil, err
	}
	return h.GetMany(OrgSchema, limit, append(parts, "orgs")...), nil
}

// Members lists the members of org visible to the caller.
func (s *OrgsService) Members(org string, limit int) *resource.Result {
	return s.client.handler("orgs").GetMany(UserSchema, limit, org, "members")
}

// IsMember reports whether user is a member of org.
func (s *OrgsService) IsMember(ctx context.Context, org, user string) (bool, error) {
	return s.client.handler("orgs").Exists(ctx, org, "members", user)
}

// PublicMembers lists the public members of org.
func (s *OrgsService) PublicMembers(org string, limit int) *resource.Result {
	return s.client.handler("orgs").GetMany(UserSchema, limit, org, "public_members")
}

// IsPublicMember reports whether user publicizes membership of org.
func (s *OrgsService) IsPublicMember(ctx context.Context, org, user string) (bool, error) {
	return s.client.handler("orgs").Exists(ctx, org, "public_members", user)
}

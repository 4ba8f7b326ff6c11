package github

import (
	"context"
	"fmt"

	"github3/pkg/convert"
	"github3/pkg/resource"
)

// ReposService serves repository endpoints.
type ReposService struct {
	client *Client
}

// Get fetches owner/name.
func (s *ReposService) Get(ctx context.Context, owner, name string) (*Repo, error) {
	return resource.As[*Repo](s.client.handler("repos").GetOne(ctx, RepoSchema, owner, name))
}

// List lists the repositories of owner, or of the authenticated account when
// owner is empty.
func (s *ReposService) List(owner string, limit int) (*resource.Result, error) {
	h, parts, err := s.client.userHandler(owner)
	if err != nil {
		return nil, err
	}
	return h.GetMany(RepoSchema, limit, append(parts, "repos")...), nil
}

// ListByOrg lists the repositories of an organization.
func (s *ReposService) ListByOrg(org string, limit int) *resource.Result {
	return s.client.handler("orgs").GetMany(RepoSchema, limit, org, "repos")
}

// Collaborators lists the collaborators of owner/name.
func (s *ReposService) Collaborators(owner, name string, limit int) *resource.Result {
	return s.client.handler("repos").GetMany(UserSchema, limit, owner, name, "collaborators")
}

// IsCollaborator reports whether user collaborates on owner/name.
func (s *ReposService) IsCollaborator(ctx context.Context, owner, name, user string) (bool, error) {
	return s.client.handler("repos").Exists(ctx, owner, name, "collaborators", user)
}

// Create creates a repository from the writeable attributes of repo, under
// org or, when org is empty, under the authenticated account.
func (s *ReposService) Create(ctx context.Context, org string, repo *Repo) (*Repo, error) {
	if !s.client.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if err := ValidateRepo(repo); err != nil {
		return nil, err
	}
	body, err := convert.Payload(RepoSchema, repo)
	if err != nil {
		return nil, fmt.Errorf("create repository: %w", err)
	}
	if org == "" {
		return resource.As[*Repo](s.client.handler("user").Create(ctx, RepoSchema, body, "repos"))
	}
	return resource.As[*Repo](s.client.handler("orgs").Create(ctx, RepoSchema, body, org, "repos"))
}

// Update edits owner/name with the attributes of repo that are present and
// writeable. A set name renames the repository.
func (s *ReposService) Update(ctx context.Context, owner, name string, repo *Repo) (*Repo, error) {
	if !s.client.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if repo == nil {
		return nil, &ValidationError{Field: "repository", Message: "repository cannot be nil"}
	}
	if newName, ok := repo.Name.Get(); ok {
		if err := ValidateRepoName(newName); err != nil {
			return nil, err
		}
	}
	return resource.As[*Repo](s.client.handler("repos").Update(ctx, RepoSchema, repo, owner, name))
}

// Delete deletes owner/name.
func (s *ReposService) Delete(ctx context.Context, owner, name string) error {
	if !s.client.Authenticated() {
		return ErrNotAuthenticated
	}
	return s.client.handler("repos").Delete(ctx, owner, name)
}

package github

import (
	"context"

	"github3/pkg/resource"
)

// GistsService serves gist endpoints.
type GistsService struct {
	client *Client
}

// Get fetches a gist. Its files are keyed by filename.
func (s *GistsService) Get(ctx context.Context, id string) (*Gist, error) {
	return resource.As[*Gist](s.client.handler("gists").GetOne(ctx, GistSchema, id))
}

// Update changes the description of a gist owned by the authenticated account.
func (s *GistsService) Update(ctx context.Context, id string, g *Gist) (*Gist, error) {
	if !s.client.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	return resource.As[*Gist](s.client.handler("gists").Update(ctx, GistSchema, g, id))
}

// List lists the gists of user. An empty user lists the authenticated
// account's gists, or public gists for anonymous clients.
func (s *GistsService) List(user string, limit int) *resource.Result {
	if user == "" {
		return s.client.handler("gists").GetMany(GistSchema, limit)
	}
	return s.client.handler("users").GetMany(GistSchema, limit, user, "gists")
}

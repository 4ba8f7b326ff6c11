package github

import (
	"context"
	"fmt"

	"github3/pkg/resource"
)

// UsersService serves the users and user namespaces.
type UsersService struct {
	client *Client
}

// Get fetches a public profile.
func (s *UsersService) Get(ctx context.Context, login string) (*User, error) {
	return resource.As[*User](s.client.handler("users").GetOne(ctx, UserSchema, login))
}

// Me fetches the authenticated account, including its plan.
func (s *UsersService) Me(ctx context.Context) (*AuthUser, error) {
	if !s.client.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	return resource.As[*AuthUser](s.client.handler("user").GetOne(ctx, AuthUserSchema))
}

// Followers lists the followers of login, or of the authenticated account
// when login is empty.
func (s *UsersService) Followers(login string, limit int) (*resource.Result, error) {
	h, parts, err := s.client.userHandler(login)
	if err != nil {
		return nil, err
	}
	return h.GetMany(UserSchema, limit, append(parts, "followers")...), nil
}

// Following lists the accounts login follows, or the authenticated account
// follows when login is empty.
func (s *UsersService) Following(login string, limit int) (*resource.Result, error) {
	h, parts, err := s.client.userHandler(login)
	if err != nil {
		return nil, err
	}
	return h.GetMany(UserSchema, limit, append(parts, "following")...), nil
}

// IsFollowing reports whether login follows target. An empty login means the
// authenticated account.
func (s *UsersService) IsFollowing(ctx context.Context, login, target string) (bool, error) {
	h, parts, err := s.client.userHandler(login)
	if err != nil {
		return false, err
	}
	return h.Exists(ctx, append(parts, "following", target)...)
}

// Follow makes the authenticated account follow login.
func (s *UsersService) Follow(ctx context.Context, login string) error {
	if !s.client.Authenticated() {
		return ErrNotAuthenticated
	}
	if err := ValidateLogin(login); err != nil {
		return err
	}
	ok, err := s.client.handler("user").Put(ctx, nil, "following", login)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("follow %s: server did not confirm", login)
	}
	return nil
}

// Unfollow makes the authenticated account stop following login.
func (s *UsersService) Unfollow(ctx context.Context, login string) error {
	if !s.client.Authenticated() {
		return ErrNotAuthenticated
	}
	if err := ValidateLogin(login); err != nil {
		return err
	}
	return s.client.handler("user").Delete(ctx, "following", login)
}

// Update sends the writeable profile attributes of u and returns the updated
// account.
func (s *UsersService) Update(ctx context.Context, u *AuthUser) (*AuthUser, error) {
	if !s.client.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	return resource.As[*AuthUser](s.client.handler("user").Update(ctx, AuthUserSchema, u))
}

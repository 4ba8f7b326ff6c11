package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/rs/zerolog"

	"github3/pkg/logger"
	"github3/pkg/resource"
)

// ErrNotAuthenticated is returned by calls that need a token when none is set.
var ErrNotAuthenticated = errors.New("not authenticated: no GitHub token configured")

// DefaultPerPage is the page size requested from list endpoints.
const DefaultPerPage = 100

// Options configures a Client.
type Options struct {
	// Token authenticates requests. Empty means anonymous access.
	Token string
	// BaseURL overrides https://api.github.com/, for GitHub Enterprise or tests.
	BaseURL string
	// PerPage is the page size of list endpoints. Zero means DefaultPerPage.
	PerPage int
	// Retry is the retry policy. nil means DefaultRetryConfig.
	Retry *RetryConfig
	// RateLimit configures request pacing. nil means DefaultRateLimiterConfig.
	RateLimit *RateLimiterConfig
	// HTTPClient replaces the client built from Token.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client is the entry point to the endpoint catalog.
type Client struct {
	gh            *github.Client
	transport     *Transport
	authenticated bool
	perPage       int
	log           zerolog.Logger

	Users *UsersService
	Repos *ReposService
	Orgs  *OrgsService
	Gists *GistsService
	Pulls *PullsService
}

// New builds a client from opts.
func New(ctx context.Context, opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient(ctx, opts.Token)
	}

	gh := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		u, err := parseBaseURL(opts.BaseURL)
		if err != nil {
			return nil, err
		}
		gh.BaseURL = u
	}

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	retry := opts.Retry
	if retry == nil {
		retry = DefaultRetryConfig()
	}

	c := &Client{
		gh:            gh,
		authenticated: strings.TrimSpace(opts.Token) != "",
		perPage:       perPage,
		log:           opts.Logger,
	}
	c.transport = NewTransport(gh,
		WithRetryConfig(retry),
		WithRateLimiter(NewRateLimiter(opts.RateLimit)),
		WithTransportLogger(logger.WithComponent(opts.Logger, "transport")),
	)

	c.Users = &UsersService{client: c}
	c.Repos = &ReposService{client: c}
	c.Orgs = &OrgsService{client: c}
	c.Gists = &GistsService{client: c}
	c.Pulls = &PullsService{client: c}
	return c, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", raw)
	}
	return u, nil
}

// Authenticated reports whether the client sends a token.
func (c *Client) Authenticated() bool { return c.authenticated }

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string { return c.gh.BaseURL.String() }

// Transport returns the HTTP collaborator behind the handlers.
func (c *Client) Transport() *Transport { return c.transport }

// handler returns a resource handler rooted at prefix.
func (c *Client) handler(prefix string, opts ...resource.Option) *resource.Handler {
	base := []resource.Option{
		resource.WithPerPage(c.perPage),
		resource.WithLogger(logger.WithComponent(c.log, "resource").With().Str("prefix", prefix).Logger()),
	}
	return resource.NewHandler(c.transport, prefix, append(base, opts...)...)
}

// userHandler returns the handler for per-user endpoints: "user" for the
// authenticated account when login is empty, "users" otherwise. Malformed
// logins are rejected before any request is made.
func (c *Client) userHandler(login string) (*resource.Handler, []string, error) {
	if login == "" {
		if !c.authenticated {
			return nil, nil, ErrNotAuthenticated
		}
		return c.handler("user"), nil, nil
	}
	if err := ValidateLogin(login); err != nil {
		return nil, nil, err
	}
	return c.handler("users"), []string{login}, nil
}

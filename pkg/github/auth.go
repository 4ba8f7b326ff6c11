package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// NewHTTPClient returns an HTTP client that sends token as a bearer
// credential. An empty token yields http.DefaultClient, for anonymous access.
func NewHTTPClient(ctx context.Context, token string) *http.Client {
	token = strings.TrimSpace(token)
	if token == "" {
		return http.DefaultClient
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	return oauth2.NewClient(ctx, ts)
}

// TokenInfo contains information about the authenticated token
type TokenInfo struct {
	User   string   `json:"user"`
	Scopes []string `json:"scopes"`
}

// ValidateToken checks the token against /user and reports the scopes GitHub
// granted it. required scopes that are missing produce an error alongside the
// token info.
func (c *Client) ValidateToken(ctx context.Context, required ...string) (*TokenInfo, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	req, err := c.gh.NewRequest(http.MethodGet, "user", nil)
	if err != nil {
		return nil, err
	}
	var login struct {
		Login string `json:"login"`
	}
	resp, err := c.gh.Do(ctx, req, &login)
	if err != nil {
		return nil, fmt.Errorf("failed to validate GitHub token: %w", WrapGitHubError(err, "user"))
	}

	scopes := []string{}
	if header := resp.Header.Get("X-OAuth-Scopes"); header != "" {
		scopes = strings.Split(strings.ReplaceAll(header, " ", ""), ",")
	}
	info := &TokenInfo{User: login.Login, Scopes: scopes}

	if err := validatePermissions(scopes, required); err != nil {
		return info, err
	}
	return info, nil
}

// validatePermissions checks if the token has required permissions
func validatePermissions(scopes, required []string) error {
	granted := make(map[string]bool, len(scopes))
	for _, scope := range scopes {
		granted[scope] = true
	}

	var missing []string
	for _, r := range required {
		if !granted[r] {
			missing = append(missing, r)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("GitHub token missing required permissions: %s. Please ensure your token has the following scopes: %s",
			strings.Join(missing, ", "), strings.Join(required, ", "))
	}
	return nil
}

// GetAuthInstructions returns instructions for setting up GitHub authentication
func GetAuthInstructions() string {
	return `GitHub authentication is required for this command. Configure a token using one of the following methods:

1. Environment Variable (Recommended for CI/CD):
   export GITHUB_TOKEN="your_personal_access_token"

2. Configuration File:
   Add the following to ~/.github3/config.yaml:

   github:
     token: "your_personal_access_token"

3. Git configuration:
   git config --global github.token "your_personal_access_token"

To create a personal access token:
1. Go to GitHub Settings > Developer settings > Personal access tokens
2. Click "Generate new token (classic)"
3. Select the scopes needed by the commands you run (for example repo, read:org, gist)
4. Copy the generated token and use it with one of the methods above`
}

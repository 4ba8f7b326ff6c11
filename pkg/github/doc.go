// Package github is the HTTP side of github3. Transport carries requests
// through a go-github client with token auth, retries and rate limiting, and
// the services of Client map GitHub's users, repositories, organizations,
// gists and pull requests onto resource handlers and schemas.
//
// The package includes:
// - Transport, the resource.Transport used by every handler
// - Client and its Users, Repos, Orgs, Gists and Pulls services
// - Model types and their schemas
// - GitHubError, the structured error returned for failed calls
package github

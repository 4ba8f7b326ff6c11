package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github3/pkg/convert"
	"github3/pkg/resource"
)

// Merge methods accepted by PullsService.Merge.
const (
	MergeMethodMerge  = "merge"
	MergeMethodSquash = "squash"
	MergeMethodRebase = "rebase"
)

// PullsService serves pull request endpoints.
type PullsService struct {
	client *Client
}

func (s *PullsService) handler() *resource.Handler {
	return s.client.handler("repos")
}

// Get fetches pull request number of owner/repo.
func (s *PullsService) Get(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	return resource.As[*PullRequest](s.handler().GetOne(ctx, PullRequestSchema, owner, repo, "pulls", strconv.Itoa(number)))
}

// List lists pull requests of owner/repo. state is open, closed or all; empty
// leaves the server default.
func (s *PullsService) List(owner, repo, state string, limit int) *resource.Result {
	var query url.Values
	if state != "" {
		query = url.Values{"state": {state}}
	}
	return s.handler().GetManyQuery(PullRequestSchema, limit, query, owner, repo, "pulls")
}

// Create opens a pull request on owner/repo merging head into base. Title and
// body are taken from the writeable attributes of pr.
func (s *PullsService) Create(ctx context.Context, owner, repo, head, base string, pr *PullRequest) (*PullRequest, error) {
	if !s.client.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if head == "" || base == "" {
		return nil, &ValidationError{Field: "head", Message: "head and base branches are required"}
	}
	if pr == nil || !pr.Title.IsSet() {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	body, err := convert.Payload(PullRequestSchema, pr)
	if err != nil {
		return nil, fmt.Errorf("create pull request: %w", err)
	}
	body["head"] = head
	body["base"] = base
	return resource.As[*PullRequest](s.handler().Create(ctx, PullRequestSchema, body, owner, repo, "pulls"))
}

// Update edits the title, body or state of a pull request.
func (s *PullsService) Update(ctx context.Context, owner, repo string, number int, pr *PullRequest) (*PullRequest, error) {
	if !s.client.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	return resource.As[*PullRequest](s.handler().Update(ctx, PullRequestSchema, pr, owner, repo, "pulls", strconv.Itoa(number)))
}

// Files lists the files changed by a pull request.
func (s *PullsService) Files(owner, repo string, number, limit int) *resource.Result {
	return s.handler().GetMany(PullFileSchema, limit, owner, repo, "pulls", strconv.Itoa(number), "files")
}

// IsMerged reports whether a pull request has been merged.
func (s *PullsService) IsMerged(ctx context.Context, owner, repo string, number int) (bool, error) {
	return s.handler().Exists(ctx, owner, repo, "pulls", strconv.Itoa(number), "merge")
}

// Merge merges a pull request. An empty method leaves the repository default.
func (s *PullsService) Merge(ctx context.Context, owner, repo string, number int, message, method string) (*MergeResult, error) {
	if !s.client.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	body := map[string]any{}
	if message != "" {
		body["commit_message"] = message
	}
	if method != "" {
		body["merge_method"] = method
	}
	return resource.As[*MergeResult](s.handler().Do(ctx, http.MethodPut, MergeResultSchema, body,
		owner, repo, "pulls", strconv.Itoa(number), "merge"))
}

package github

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github3/pkg/resource"
)

func TestContinuation(t *testing.T) {
	reqURL, err := url.Parse("https://api.github.com/users/octocat/repos?per_page=2")
	require.NoError(t, err)

	tests := []struct {
		name     string
		resp     *github.Response
		expected string
	}{
		{
			name:     "numbered page",
			resp:     &github.Response{NextPage: 3},
			expected: "https://api.github.com/users/octocat/repos?page=3&per_page=2",
		},
		{
			name:     "page token",
			resp:     &github.Response{NextPageToken: "abc"},
			expected: "https://api.github.com/users/octocat/repos?page_token=abc&per_page=2",
		},
		{
			name:     "after cursor",
			resp:     &github.Response{After: "Y3Vyc29y"},
			expected: "https://api.github.com/users/octocat/repos?after=Y3Vyc29y&per_page=2",
		},
		{
			name:     "last page",
			resp:     &github.Response{},
			expected: "",
		},
		{
			name:     "no response",
			resp:     nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, continuation(reqURL, tt.resp))
		})
	}

	// The request URL is not modified
	assert.Equal(t, "per_page=2", reqURL.RawQuery)
}

func TestTransport_Page(t *testing.T) {
	server := newMockGitHubServer(t, map[string]mockResponse{
		"GET /users/octocat/repos": {Pages: [][]any{
			{map[string]any{"name": "a"}, 42, nil, map[string]any{"name": "b"}},
			{map[string]any{"name": "c"}},
		}},
		"GET /users/octocat": {Body: map[string]any{"login": "octocat"}},
	})
	transport := createTestClient(t, server, "").Transport()
	ctx := context.Background()

	page, err := transport.Page(ctx, "users/octocat/repos")
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	name, _ := page.Records[1].Get("name")
	s, _ := name.Str()
	assert.Equal(t, "b", s)
	require.NotEmpty(t, page.Next)
	assert.Contains(t, page.Next, "page=2")

	last, err := transport.Page(ctx, page.Next)
	require.NoError(t, err)
	assert.Len(t, last.Records, 1)
	assert.Empty(t, last.Next)

	t.Run("object body is not a page", func(t *testing.T) {
		_, err := transport.Page(ctx, "users/octocat")
		var tErr *resource.TransportError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, "list", tErr.Op)
		assert.Contains(t, tErr.Error(), "expected a list")
	})
}

func TestTransport_AfterCursor(t *testing.T) {
	var calls atomic.Int32
	server := newCustomServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("after") == "" {
			w.Header().Set("Link", `<http://`+r.Host+`/orgs/github/members?after=Y3Vyc29y>; rel="next"`)
			w.Write([]byte(`[{"login":"a"}]`))
			return
		}
		w.Write([]byte(`[{"login":"b"}]`))
	})
	client := createTestClient(t, server, "")

	users, err := resource.Collect[*User](context.Background(), client.Orgs.Members("github", 0))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b", users[1].Login.Value())
	assert.Equal(t, int32(2), calls.Load())
}

func TestTransport_Retry(t *testing.T) {
	var calls atomic.Int32
	server := newCustomServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"message":"bad gateway"}`))
			return
		}
		w.Write([]byte(`{"login":"octocat"}`))
	})

	client, err := New(context.Background(), Options{BaseURL: server.URL, Retry: fastRetry(3)})
	require.NoError(t, err)

	user, err := client.Users.Get(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "octocat", user.Login.Value())
	assert.Equal(t, int32(3), calls.Load())
}

func TestTransport_NotFoundIsNotRetried(t *testing.T) {
	server := newMockGitHubServer(t, map[string]mockResponse{})
	client, err := New(context.Background(), Options{BaseURL: server.URL, Retry: fastRetry(3)})
	require.NoError(t, err)

	_, err = client.Users.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, resource.ErrNotFound)
	assert.Len(t, server.Requests(), 1)
}

func TestTransport_UpdatesRateLimiter(t *testing.T) {
	reset := time.Now().Add(time.Hour).Unix()
	server := newMockGitHubServer(t, map[string]mockResponse{
		"GET /users/octocat": {
			Body: map[string]any{"login": "octocat"},
			Headers: map[string]string{
				"X-RateLimit-Limit":     "60",
				"X-RateLimit-Remaining": "42",
				"X-RateLimit-Reset":     strconv.FormatInt(reset, 10),
			},
		},
	})
	client := createTestClient(t, server, "")

	_, err := client.Users.Get(context.Background(), "octocat")
	require.NoError(t, err)

	stats := client.Transport().RateLimiter().Stats()
	assert.Equal(t, 42, stats.RemainingRequests)
	assert.Equal(t, reset, stats.ResetTime.Unix())
}

func TestTransport_AnonymousQuotaIsNotThrottled(t *testing.T) {
	reset := time.Now().Add(time.Hour).Unix()
	server := newMockGitHubServer(t, map[string]mockResponse{
		"GET /users/octocat": {
			Body: map[string]any{"login": "octocat"},
			Headers: map[string]string{
				"X-RateLimit-Limit":     "60",
				"X-RateLimit-Remaining": "59",
				"X-RateLimit-Reset":     strconv.FormatInt(reset, 10),
			},
		},
	})
	client, err := New(context.Background(), Options{BaseURL: server.URL, Retry: NoRetry()})
	require.NoError(t, err)

	_, err = client.Users.Get(context.Background(), "octocat")
	require.NoError(t, err)

	limiter := client.Transport().RateLimiter()
	assert.Equal(t, 60, limiter.Stats().Limit)
	assert.Equal(t, time.Duration(0), limiter.Delay())

	start := time.Now()
	_, err = client.Users.Get(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestTransport_HeadAndSend(t *testing.T) {
	server := newMockGitHubServer(t, map[string]mockResponse{
		"HEAD /user/following/hubot": {Status: http.StatusNoContent},
		"PUT /user/following/hubot":  {Status: http.StatusNoContent},
		"POST /gists":                {Status: http.StatusCreated, Body: map[string]any{"id": "1"}},
	})
	transport := createTestClient(t, server, "test-token").Transport()
	ctx := context.Background()

	status, err := transport.Head(ctx, "user/following/hubot")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)

	status, err = transport.Head(ctx, "user/following/nobody")
	assert.ErrorIs(t, err, resource.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, status)

	body, status, err := transport.Send(ctx, http.MethodPut, "user/following/hubot", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)
	assert.True(t, body.IsNull())

	body, status, err = transport.Send(ctx, http.MethodPost, "gists", map[string]any{"public": false})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	rec, ok := body.Record()
	require.True(t, ok)
	assert.True(t, rec.Has("id"))
	assert.Equal(t, map[string]any{"public": false}, server.Body("POST /gists"))
}

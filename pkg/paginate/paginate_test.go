package paginate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github3/pkg/raw"
)

// fakeServer serves fixed pages keyed by locator and records each request.
type fakeServer struct {
	pages    map[string]*Page
	fail     map[string]error
	requests []string
}

func (f *fakeServer) fetch(_ context.Context, path string) (*Page, error) {
	f.requests = append(f.requests, path)
	if err := f.fail[path]; err != nil {
		return nil, err
	}
	p, ok := f.pages[path]
	if !ok {
		return nil, errors.New("unexpected path " + path)
	}
	cp := *p
	return &cp, nil
}

func records(n int) []raw.Record {
	out := make([]raw.Record, n)
	for i := range out {
		out[i] = raw.MustRecord(map[string]any{"id": i})
	}
	return out
}

func threePages() *fakeServer {
	return &fakeServer{pages: map[string]*Page{
		"users/octocat/repos":        {Records: records(2), Next: "users/octocat/repos?page=2"},
		"users/octocat/repos?page=2": {Records: records(2), Next: "users/octocat/repos?page=3"},
		"users/octocat/repos?page=3": {Records: records(1)},
	}}
}

func TestPaginateIsLazy(t *testing.T) {
	srv := threePages()
	pages := Paginate("users/octocat/repos", srv.fetch)

	assert.Empty(t, srv.requests, "construction must not fetch")
	assert.True(t, pages.HasNext())
	assert.False(t, pages.Started())
}

func TestPaginateFollowsContinuations(t *testing.T) {
	srv := threePages()
	pages := Paginate("users/octocat/repos", srv.fetch)
	ctx := context.Background()

	var sizes, numbers []int
	for {
		page, err := pages.Next(ctx)
		if errors.Is(err, Done) {
			break
		}
		require.NoError(t, err)
		sizes = append(sizes, len(page.Records))
		numbers = append(numbers, page.Number)
	}

	assert.Equal(t, []int{2, 2, 1}, sizes)
	assert.Equal(t, []int{1, 2, 3}, numbers)
	assert.Equal(t, []string{
		"users/octocat/repos",
		"users/octocat/repos?page=2",
		"users/octocat/repos?page=3",
	}, srv.requests)
	assert.Equal(t, 3, pages.Fetched())
	assert.False(t, pages.HasNext())

	_, err := pages.Next(ctx)
	assert.ErrorIs(t, err, Done, "an exhausted session is not restartable")
	assert.Len(t, srv.requests, 3)
}

func TestPaginateFreshSessionRestarts(t *testing.T) {
	srv := threePages()
	first := Paginate("users/octocat/repos", srv.fetch)
	second := Paginate("users/octocat/repos", srv.fetch)

	_, err := first.Next(context.Background())
	require.NoError(t, err)
	page, err := second.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
}

func TestPaginatePropagatesFetchErrors(t *testing.T) {
	srv := threePages()
	boom := errors.New("connection reset")
	srv.fail = map[string]error{"users/octocat/repos?page=2": boom}

	pages := Paginate("users/octocat/repos", srv.fetch)
	ctx := context.Background()

	first, err := pages.Next(ctx)
	require.NoError(t, err)

	_, err = pages.Next(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, first.Records, 2, "already returned pages stay valid")
	assert.True(t, pages.HasNext())

	delete(srv.fail, "users/octocat/repos?page=2")
	page, err := pages.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Number)
}

func TestPaginateAll(t *testing.T) {
	srv := threePages()
	total := 0
	for page, err := range Paginate("users/octocat/repos", srv.fetch).All(context.Background()) {
		require.NoError(t, err)
		total += len(page.Records)
	}
	assert.Equal(t, 5, total)

	srv = threePages()
	for range Paginate("users/octocat/repos", srv.fetch).All(context.Background()) {
		break
	}
	assert.Len(t, srv.requests, 1, "breaking out of the loop stops fetching")
}

func TestPaginateNilFetch(t *testing.T) {
	_, err := Paginate("x", nil).Next(context.Background())
	assert.Error(t, err)
}

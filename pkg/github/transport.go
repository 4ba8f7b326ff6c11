package github

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/rs/zerolog"

	"github3/pkg/paginate"
	"github3/pkg/raw"
	"github3/pkg/resource"
)

// Transport implements resource.Transport on top of a go-github client. It
// owns retries and rate limiting; bodies are handed back as raw values.
type Transport struct {
	client  *github.Client
	limiter *RateLimiter
	retry   *RetryConfig
	log     zerolog.Logger
}

var _ resource.Transport = (*Transport)(nil)

// TransportOption configures a Transport.
type TransportOption func(*Transport)

// WithRetryConfig sets the retry policy. nil disables retries.
func WithRetryConfig(cfg *RetryConfig) TransportOption {
	return func(t *Transport) {
		if cfg == nil {
			cfg = NoRetry()
		}
		t.retry = cfg
	}
}

// WithRateLimiter replaces the default limiter.
func WithRateLimiter(rl *RateLimiter) TransportOption {
	return func(t *Transport) { t.limiter = rl }
}

// WithTransportLogger sets the request logger.
func WithTransportLogger(log zerolog.Logger) TransportOption {
	return func(t *Transport) { t.log = log }
}

// NewTransport wraps client.
func NewTransport(client *github.Client, opts ...TransportOption) *Transport {
	t := &Transport{
		client: client,
		retry:  DefaultRetryConfig(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.limiter == nil {
		t.limiter = NewRateLimiter(nil)
	}
	return t
}

// RateLimiter returns the limiter fed by this transport's responses.
func (t *Transport) RateLimiter() *RateLimiter { return t.limiter }

// Page fetches one page of a list endpoint. Items that are not objects are
// dropped.
func (t *Transport) Page(ctx context.Context, path string) (*paginate.Page, error) {
	req, resp, body, err := t.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	value, err := raw.Parse(body)
	if err != nil {
		return nil, &resource.TransportError{Op: "list", Path: path, Err: err}
	}
	items, ok := value.Items()
	if !ok {
		return nil, &resource.TransportError{
			Op:   "list",
			Path: path,
			Err:  fmt.Errorf("expected a list, got %s", value.Shape()),
		}
	}

	page := &paginate.Page{Records: make([]raw.Record, 0, len(items))}
	for i, item := range items {
		rec, ok := item.Record()
		if !ok {
			t.log.Debug().Str("path", path).Int("index", i).Stringer("shape", item.Shape()).Msg("skipping non-object list item")
			continue
		}
		page.Records = append(page.Records, rec)
	}
	page.Next = continuation(req.URL, resp)
	return page, nil
}

// Get fetches one resource body.
func (t *Transport) Get(ctx context.Context, path string) (raw.Value, error) {
	_, _, body, err := t.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return raw.Value{}, err
	}
	value, err := raw.Parse(body)
	if err != nil {
		return raw.Value{}, &resource.TransportError{Op: "get", Path: path, Err: err}
	}
	return value, nil
}

// Head issues a HEAD request and returns the status code. GitHub's boolean
// endpoints answer 204 for true and 404 for false; the 404 comes back as an
// error matching resource.ErrNotFound.
func (t *Transport) Head(ctx context.Context, path string) (int, error) {
	_, resp, _, err := t.do(ctx, http.MethodHead, path, nil)
	if err != nil {
		return statusCode(resp), err
	}
	return statusCode(resp), nil
}

// Send issues a write request with an optional JSON body.
func (t *Transport) Send(ctx context.Context, method, path string, body any) (raw.Value, int, error) {
	_, resp, data, err := t.do(ctx, method, path, body)
	if err != nil {
		return raw.Value{}, statusCode(resp), err
	}
	value, err := raw.Parse(data)
	if err != nil {
		return raw.Value{}, statusCode(resp), &resource.TransportError{Op: strings.ToLower(method), Path: path, Err: err}
	}
	return value, statusCode(resp), nil
}

func (t *Transport) do(ctx context.Context, method, path string, body any) (*http.Request, *github.Response, []byte, error) {
	var (
		buf  bytes.Buffer
		req  *http.Request
		resp *github.Response
	)
	name := t.resourceName(path)

	err := WithRetry(ctx, func() error {
		if err := t.limiter.Wait(ctx); err != nil {
			return err
		}

		var err error
		req, err = t.client.NewRequest(method, path, body)
		if err != nil {
			return fmt.Errorf("build request %s %s: %w", method, name, err)
		}

		buf.Reset()
		resp, err = t.client.Do(ctx, req, &buf)
		if resp != nil {
			t.limiter.UpdateLimits(resp.Rate.Limit, resp.Rate.Remaining, resp.Rate.Reset.Time)
		}

		evt := t.log.Debug().Str("method", method).Str("resource", name)
		if resp != nil {
			evt = evt.Int("status", resp.StatusCode).Int("rate_remaining", resp.Rate.Remaining)
		}
		evt.Msg("github request")

		if err != nil {
			return WrapGitHubError(err, name)
		}
		return nil
	}, t.retry)

	return req, resp, buf.Bytes(), err
}

// resourceName trims the base URL and query from path for error messages.
func (t *Transport) resourceName(path string) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	p := u.Path
	if t.client.BaseURL != nil {
		p = strings.TrimPrefix(p, t.client.BaseURL.Path)
	}
	return strings.Trim(p, "/")
}

// continuation rebuilds the request URL for the page after resp, or returns ""
// when resp is the last page.
func continuation(reqURL *url.URL, resp *github.Response) string {
	if reqURL == nil || resp == nil {
		return ""
	}
	next := *reqURL
	q := next.Query()

	switch {
	case resp.NextPage > 0:
		q.Set("page", strconv.Itoa(resp.NextPage))
	case resp.NextPageToken != "":
		q.Set("page_token", resp.NextPageToken)
	case resp.After != "":
		q.Set("after", resp.After)
	default:
		return ""
	}

	next.RawQuery = q.Encode()
	return next.String()
}

func statusCode(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}

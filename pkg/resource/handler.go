// Package resource answers the request shapes every endpoint is built from:
// one resource, a lazy limited sequence of resources, an existence check and
// the write verbs. Paths are joined under the handler's namespace prefix
// before any request is issued.
package resource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github3/pkg/convert"
	"github3/pkg/idl"
	"github3/pkg/paginate"
	"github3/pkg/raw"
)

// Transport is the HTTP collaborator. Not-found conditions must be reported
// as errors matching ErrNotFound.
type Transport interface {
	// Page fetches one page of a list endpoint. path is either a prefixed
	// resource path or a continuation from a previous page.
	Page(ctx context.Context, path string) (*paginate.Page, error)
	// Get fetches one resource body.
	Get(ctx context.Context, path string) (raw.Value, error)
	// Head issues a HEAD request for path and returns the status code.
	Head(ctx context.Context, path string) (int, error)
	// Send issues a write request with an optional JSON body.
	Send(ctx context.Context, method, path string, body any) (raw.Value, int, error)
}

// Handler serves one resource namespace.
type Handler struct {
	prefix    []string
	transport Transport
	schema    *idl.Schema
	perPage   int
	conv      *convert.Converter
	log       zerolog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithSchema sets the schema used when a call passes a nil schema.
func WithSchema(s *idl.Schema) Option {
	return func(h *Handler) { h.schema = s }
}

// WithPerPage sets the page size requested from list endpoints.
func WithPerPage(n int) Option {
	return func(h *Handler) { h.perPage = n }
}

// WithLogger sets the logger for the handler and its converter.
func WithLogger(log zerolog.Logger) Option {
	return func(h *Handler) { h.log = log }
}

// NewHandler returns a handler that joins every path under prefix.
func NewHandler(t Transport, prefix string, opts ...Option) *Handler {
	h := &Handler{transport: t, log: zerolog.Nop()}
	if prefix != "" {
		h.prefix = strings.Split(strings.Trim(prefix, "/"), "/")
	}
	for _, opt := range opts {
		opt(h)
	}
	h.conv = convert.New(h.log)
	return h
}

// Prefix returns the namespace prefix.
func (h *Handler) Prefix() string { return strings.Join(h.prefix, "/") }

// Path joins parts under the prefix. Empty parts are dropped and every part is
// path-escaped.
func (h *Handler) Path(parts ...string) string {
	segs := make([]string, 0, len(h.prefix)+len(parts))
	segs = append(segs, h.prefix...)
	for _, p := range parts {
		for _, s := range strings.Split(strings.Trim(p, "/"), "/") {
			if s != "" {
				segs = append(segs, url.PathEscape(s))
			}
		}
	}
	return strings.Join(segs, "/")
}

func (h *Handler) schemaOr(s *idl.Schema) *idl.Schema {
	if s != nil {
		return s
	}
	return h.schema
}

// GetOne fetches and decodes a single resource.
func (h *Handler) GetOne(ctx context.Context, schema *idl.Schema, parts ...string) (idl.Model, error) {
	schema = h.schemaOr(schema)
	if !schema.Bound() {
		return nil, fmt.Errorf("get %s: %w", h.Path(parts...), idl.ErrMissingSchema)
	}
	path := h.Path(parts...)

	body, err := h.transport.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return h.decodeBody("get", path, schema, body)
}

// GetMany returns a lazy sequence over a list endpoint. A limit of zero or
// less means no limit. Nothing is fetched until the first Next.
func (h *Handler) GetMany(schema *idl.Schema, limit int, parts ...string) *Result {
	return h.GetManyQuery(schema, limit, nil, parts...)
}

// GetManyQuery is GetMany with extra query parameters, such as filters.
func (h *Handler) GetManyQuery(schema *idl.Schema, limit int, query url.Values, parts ...string) *Result {
	schema = h.schemaOr(schema)
	path := h.Path(parts...)
	for key, values := range query {
		if len(values) > 0 {
			path = withQuery(path, key, values[0])
		}
	}
	if h.perPage > 0 {
		size := h.perPage
		if limit > 0 && limit < size {
			size = limit
		}
		path = withQuery(path, "per_page", strconv.Itoa(size))
	}

	return &Result{
		pages:  paginate.Paginate(path, h.transport.Page),
		schema: schema,
		conv:   h.conv,
		limit:  limit,
		path:   path,
		log:    h.log,
	}
}

// Exists checks path with a HEAD request. 204 means present and a not-found error means absent;
// any other status is a TransportError and any other error is returned as is.
func (h *Handler) Exists(ctx context.Context, parts ...string) (bool, error) {
	path := h.Path(parts...)
	status, err := h.transport.Head(ctx, path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if status != http.StatusNoContent {
		return false, &TransportError{Op: "head", Path: path, Status: status}
	}
	return true, nil
}

// Create posts body and decodes the created resource.
func (h *Handler) Create(ctx context.Context, schema *idl.Schema, body any, parts ...string) (idl.Model, error) {
	return h.Do(ctx, http.MethodPost, schema, body, parts...)
}

// Update sends the writeable attributes of model and decodes the response.
func (h *Handler) Update(ctx context.Context, schema *idl.Schema, model idl.Model, parts ...string) (idl.Model, error) {
	schema = h.schemaOr(schema)
	body, err := convert.Payload(schema, model)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", h.Path(parts...), err)
	}
	return h.Do(ctx, http.MethodPatch, schema, body, parts...)
}

// Put issues a PUT and reports whether the server answered 204 No Content.
func (h *Handler) Put(ctx context.Context, body any, parts ...string) (bool, error) {
	_, status, err := h.transport.Send(ctx, http.MethodPut, h.Path(parts...), body)
	if err != nil {
		return false, err
	}
	return status == http.StatusNoContent, nil
}

// Delete issues a DELETE.
func (h *Handler) Delete(ctx context.Context, parts ...string) error {
	_, _, err := h.transport.Send(ctx, http.MethodDelete, h.Path(parts...), nil)
	return err
}

// Do sends body with method and decodes the response into a model.
func (h *Handler) Do(ctx context.Context, method string, schema *idl.Schema, body any, parts ...string) (idl.Model, error) {
	schema = h.schemaOr(schema)
	if !schema.Bound() {
		return nil, fmt.Errorf("%s %s: %w", strings.ToLower(method), h.Path(parts...), idl.ErrMissingSchema)
	}
	path := h.Path(parts...)

	resp, _, err := h.transport.Send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return h.decodeBody(strings.ToLower(method), path, schema, resp)
}

func (h *Handler) decodeBody(op, path string, schema *idl.Schema, body raw.Value) (idl.Model, error) {
	rec, ok := body.Record()
	if !ok {
		return nil, &TransportError{
			Op:   op,
			Path: path,
			Err:  fmt.Errorf("expected a single object, got %s", body.Shape()),
		}
	}
	return h.conv.Decode(schema, rec)
}

func withQuery(path, key, value string) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

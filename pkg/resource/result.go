package resource

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/rs/zerolog"

	"github3/pkg/convert"
	"github3/pkg/idl"
	"github3/pkg/paginate"
	"github3/pkg/raw"
)

// State is the position of a Result in its lifecycle.
type State int

const (
	NotStarted State = iota
	FetchingPage
	HasBufferedItems
	Exhausted
	LimitReached
)

// String returns the state name
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case FetchingPage:
		return "fetching_page"
	case HasBufferedItems:
		return "has_buffered_items"
	case Exhausted:
		return "exhausted"
	case LimitReached:
		return "limit_reached"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result lazily decodes the records of a list endpoint. Pages are fetched
// only when the buffer is empty and another model is requested, and never
// once the limit has been reached. A Result is not safe for concurrent use.
type Result struct {
	pages   *paginate.Pages
	schema  *idl.Schema
	conv    *convert.Converter
	limit   int
	path    string
	log     zerolog.Logger
	state   State
	buf     []raw.Record
	yielded int
}

// State returns the current state.
func (r *Result) State() State { return r.state }

// Yielded returns how many models were returned so far.
func (r *Result) Yielded() int { return r.yielded }

// Pages returns how many pages were fetched so far.
func (r *Result) Pages() int { return r.pages.Fetched() }

// Next returns the next model, or Done once the listing is exhausted or the
// limit is reached. Fetch errors are returned as is and leave the Result in
// FetchingPage, so a later Next retries the same page.
func (r *Result) Next(ctx context.Context) (idl.Model, error) {
	if r.state == NotStarted && !r.schema.Bound() {
		return nil, fmt.Errorf("list %s: %w", r.path, idl.ErrMissingSchema)
	}

	for {
		switch r.state {
		case Exhausted, LimitReached:
			return nil, Done

		case NotStarted, FetchingPage:
			if r.limit > 0 && r.yielded >= r.limit {
				r.state = LimitReached
				continue
			}
			r.state = FetchingPage
			page, err := r.pages.Next(ctx)
			if errors.Is(err, paginate.Done) {
				r.state = Exhausted
				continue
			}
			if err != nil {
				return nil, err
			}
			r.log.Debug().
				Str("path", r.path).
				Int("page", page.Number).
				Int("records", len(page.Records)).
				Bool("last", page.Last()).
				Msg("page fetched")
			r.buf = page.Records
			r.state = HasBufferedItems

		case HasBufferedItems:
			if len(r.buf) == 0 {
				if r.pages.HasNext() {
					r.state = FetchingPage
				} else {
					r.state = Exhausted
				}
				continue
			}
			rec := r.buf[0]
			r.buf = r.buf[1:]

			model, err := r.conv.Decode(r.schema, rec)
			if err != nil {
				return nil, err
			}
			r.yielded++
			if r.limit > 0 && r.yielded >= r.limit {
				r.state = LimitReached
				r.buf = nil
			}
			return model, nil
		}
	}
}

// All adapts the Result for range-over-func. Iteration ends at Done or after
// yielding the first error.
func (r *Result) All(ctx context.Context) iter.Seq2[idl.Model, error] {
	return func(yield func(idl.Model, error) bool) {
		for {
			m, err := r.Next(ctx)
			if errors.Is(err, Done) {
				return
			}
			if !yield(m, err) || err != nil {
				return
			}
		}
	}
}

// Collect drains r into a slice of T.
func Collect[T idl.Model](ctx context.Context, r *Result) ([]T, error) {
	var out []T
	for m, err := range r.All(ctx) {
		if err != nil {
			return out, err
		}
		t, ok := m.(T)
		if !ok {
			return out, fmt.Errorf("collect: model is %T, not %T", m, *new(T))
		}
		out = append(out, t)
	}
	return out, nil
}

// As narrows a decoded model to its concrete type.
func As[T idl.Model](m idl.Model, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	t, ok := m.(T)
	if !ok {
		return zero, fmt.Errorf("model is %T, not %T", m, zero)
	}
	return t, nil
}

// Package paginate walks multi-page list endpoints lazily. It performs no I/O
// itself: pages are requested through an injected FetchFunc, one at a time,
// only when the consumer asks for the next page.
package paginate

import (
	"context"
	"errors"
	"iter"

	"github3/pkg/raw"
)

// Done is returned by Pages.Next once the last page has been consumed.
var Done = errors.New("no more pages")

// Page is one fetched batch of records.
type Page struct {
	Records []raw.Record
	// Next locates the following page. Empty on the last page.
	Next string
	// Number is the 1-based position of the page in its pagination session.
	Number int
}

// Last reports whether no page follows this one.
func (p *Page) Last() bool { return p.Next == "" }

// FetchFunc fetches the page located by path, which is either the initial
// resource path or a continuation returned in Page.Next.
type FetchFunc func(ctx context.Context, path string) (*Page, error)

// Pages is one pagination session. It is not safe for concurrent use.
type Pages struct {
	fetch   FetchFunc
	next    string
	started bool
	done    bool
	fetched int
}

// Paginate returns a session over path. Nothing is fetched until Next is called.
func Paginate(path string, fetch FetchFunc) *Pages {
	return &Pages{fetch: fetch, next: path}
}

// Next fetches and returns the next page, or Done after the last one. When the
// fetch fails the error is returned and the cursor stays where it was.
func (p *Pages) Next(ctx context.Context) (*Page, error) {
	if p.done {
		return nil, Done
	}
	if p.fetch == nil {
		return nil, errors.New("paginate: nil fetch function")
	}

	page, err := p.fetch(ctx, p.next)
	if err != nil {
		return nil, err
	}
	if page == nil {
		page = &Page{}
	}

	p.started = true
	p.fetched++
	page.Number = p.fetched
	if page.Next == "" {
		p.done = true
	}
	p.next = page.Next
	return page, nil
}

// HasNext reports whether calling Next would issue a fetch.
func (p *Pages) HasNext() bool { return !p.done }

// Started reports whether at least one page was fetched.
func (p *Pages) Started() bool { return p.started }

// Fetched returns the number of pages fetched so far.
func (p *Pages) Fetched() int { return p.fetched }

// All adapts the session for range-over-func. Iteration stops at the last page
// or after yielding the first error.
func (p *Pages) All(ctx context.Context) iter.Seq2[*Page, error] {
	return func(yield func(*Page, error) bool) {
		for {
			page, err := p.Next(ctx)
			if errors.Is(err, Done) {
				return
			}
			if !yield(page, err) || err != nil {
				return
			}
		}
	}
}

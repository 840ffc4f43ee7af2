package controller

import (
	"context"
	"strings"

	"grimm.is/langportal/internal/models"
)

// PageFunc fetches one page of a listing.
type PageFunc[T any] func(ctx context.Context, page int) (models.Page[T], error)

// List is a paginated listing driven by a Route.
type List[T any] struct {
	*Loader[models.Page[T]]
	Route Route

	fetch   PageFunc[T]
	fetchID func(ctx context.Context, id, page int) (models.Page[T], error)
	match   func(T, string) bool
}

// NewList creates a list fetching through fetch.
func NewList[T any](life *Lifetime, fetch PageFunc[T]) *List[T] {
	return &List[T]{Loader: NewLoader[models.Page[T]](life), fetch: fetch, Route: Route{Page: 1}}
}

// NewChildList creates a list nested under an entity; the route's ID selects
// the parent.
func NewChildList[T any](life *Lifetime, fetch func(ctx context.Context, id, page int) (models.Page[T], error)) *List[T] {
	return &List[T]{Loader: NewLoader[models.Page[T]](life), fetchID: fetch, Route: Route{Page: 1}}
}

// WithFilter enables client-side search. match is called with the route's
// query and only runs over the currently fetched page.
func (l *List[T]) WithFilter(match func(item T, query string) bool) *List[T] {
	l.match = match
	return l
}

// Begin records r and returns the fetch of its page.
func (l *List[T]) Begin(r Route) func() Result[models.Page[T]] {
	l.Route = r
	id, page := r.ID, r.CurrentPage()
	return l.Start(func(ctx context.Context) (models.Page[T], error) {
		if l.fetchID != nil {
			return l.fetchID(ctx, id, page)
		}
		return l.fetch(ctx, page)
	})
}

// Load fetches r synchronously.
func (l *List[T]) Load(r Route) error {
	res := l.Begin(r)()
	res.Apply()
	return res.Err
}

// Items returns the fetched items, filtered by the route's query when a
// filter is set.
func (l *List[T]) Items() []T {
	return l.Visible().Items
}

// Visible returns the fetched page after filtering. Its pagination block is
// the backend's, unchanged.
func (l *List[T]) Visible() models.Page[T] {
	if l.match == nil || l.Route.Query == "" {
		return l.Data
	}
	q := l.Route.Query
	return models.Filter(l.Data, func(it T) bool { return l.match(it, q) })
}

// Pagination returns the fetched pagination block.
func (l *List[T]) Pagination() models.Pagination {
	return l.Data.Pagination
}

// Searching reports whether a query narrows the listing.
func (l *List[T]) Searching() bool {
	return l.match != nil && l.Route.Query != ""
}

// MatchWord reports whether either language field of w contains query,
// ignoring case.
func MatchWord(w models.Word, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(w.Portuguese), q) ||
		strings.Contains(strings.ToLower(w.English), q)
}

// Detail is a single-entity page.
type Detail[T any] struct {
	*Loader[T]
	ID int

	fetch func(ctx context.Context, id int) (T, error)
}

// NewDetail creates a detail fetching through fetch.
func NewDetail[T any](life *Lifetime, fetch func(ctx context.Context, id int) (T, error)) *Detail[T] {
	return &Detail[T]{Loader: NewLoader[T](life), fetch: fetch}
}

// Begin records id and returns its fetch.
func (d *Detail[T]) Begin(id int) func() Result[T] {
	d.ID = id
	return d.Start(func(ctx context.Context) (T, error) {
		return d.fetch(ctx, id)
	})
}

// Load fetches id synchronously.
func (d *Detail[T]) Load(id int) error {
	res := d.Begin(id)()
	res.Apply()
	return res.Err
}

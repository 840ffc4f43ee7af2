package models

// Pagination describes where a page sits in a listing.
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalItems   int `json:"total_items"`
	ItemsPerPage int `json:"items_per_page"`
}

// Valid reports whether CurrentPage lies in [1, TotalPages] whenever
// TotalPages is at least 1.
func (p Pagination) Valid() bool {
	if p.TotalPages < 1 {
		return true
	}
	return p.CurrentPage >= 1 && p.CurrentPage <= p.TotalPages
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.CurrentPage > 1 }

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool { return p.CurrentPage < p.TotalPages }

// Page is the envelope returned by every list operation.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Single wraps items that the backend returned unpaginated.
func Single[T any](items []T) Page[T] {
	return Page[T]{
		Items: items,
		Pagination: Pagination{
			CurrentPage:  1,
			TotalPages:   1,
			TotalItems:   len(items),
			ItemsPerPage: len(items),
		},
	}
}

// Paginate slices all into the requested page. page < 1 is treated as 1 and
// perPage < 1 as 10. TotalPages is never less than 1 and a page past the end
// is clamped to the last one, so the result is always Valid.
func Paginate[T any](all []T, page, perPage int) Page[T] {
	if perPage < 1 {
		perPage = 10
	}
	if page < 1 {
		page = 1
	}
	totalPages := (len(all) + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page = min(page, totalPages)

	start := min((page-1)*perPage, len(all))
	end := min(start+perPage, len(all))

	items := make([]T, end-start)
	copy(items, all[start:end])

	return Page[T]{
		Items: items,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   len(all),
			ItemsPerPage: perPage,
		},
	}
}

// Filter returns a copy of p containing only items matching keep. The
// pagination block is left untouched: filtering is scoped to this page.
func Filter[T any](p Page[T], keep func(T) bool) Page[T] {
	out := Page[T]{Pagination: p.Pagination, Items: make([]T, 0, len(p.Items))}
	for _, it := range p.Items {
		if keep(it) {
			out.Items = append(out.Items, it)
		}
	}
	return out
}

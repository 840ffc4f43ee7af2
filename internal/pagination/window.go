// Package pagination computes which page links a pagination control shows.
package pagination

import "strconv"

// Token is one element of a pagination control: a page number or an
// ellipsis standing for a gap of at least one page.
type Token struct {
	Page     int
	Ellipsis bool
}

// String renders the token as it appears in a control.
func (t Token) String() string {
	if t.Ellipsis {
		return "…"
	}
	return strconv.Itoa(t.Page)
}

// PageToken returns a numbered token.
func PageToken(n int) Token { return Token{Page: n} }

// Gap returns an ellipsis token.
func Gap() Token { return Token{Ellipsis: true} }

// Window returns the tokens to render for current out of total pages.
// ok is false when total <= 1, meaning the control should not be rendered.
//
// The window always contains 1 and total, the pages adjacent to current, and
// an ellipsis wherever that leaves a gap. A current page outside [1, total]
// is clamped first.
func Window(current, total int) (tokens []Token, ok bool) {
	if total <= 1 {
		return nil, false
	}
	current = max(1, min(current, total))

	start := max(2, current-1)
	end := min(total-1, current+1)

	tokens = make([]Token, 0, end-start+5)
	tokens = append(tokens, PageToken(1))
	if start > 2 {
		tokens = append(tokens, Gap())
	}
	for p := start; p <= end; p++ {
		tokens = append(tokens, PageToken(p))
	}
	if end < total-1 {
		tokens = append(tokens, Gap())
	}
	tokens = append(tokens, PageToken(total))
	return tokens, true
}

// Prev returns the page before current and whether the affordance is enabled.
// It is disabled on page 1 and never wraps.
func Prev(current int) (int, bool) {
	if current <= 1 {
		return current, false
	}
	return current - 1, true
}

// Next returns the page after current and whether the affordance is enabled.
// It is disabled on the last page and never wraps.
func Next(current, total int) (int, bool) {
	if current >= total {
		return current, false
	}
	return current + 1, true
}

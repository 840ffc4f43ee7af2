// Package controller holds the per-page state of the portal and orchestrates
// the backend fetches that fill it.
//
// A controller never draws anything. The terminal application and the
// command line both drive the same controllers: the former asynchronously,
// one tea.Cmd per fetch, the latter synchronously through Load.
package controller

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Route is the view state encoded as a path and query, e.g.
// /words?page=2&q=ol or /study_activities/1/launch.
type Route struct {
	Path   string // collection path, e.g. "/words"
	ID     int    // entity id; 0 for the collection
	Action string // trailing segment after the id, e.g. "launch"
	Page   int
	Query  string

	// SessionsPage pages the study sessions of a group page independently
	// of its words. 0 is the first page.
	SessionsPage int
}

// Standard collection paths
const (
	PathDashboard  = "/dashboard"
	PathActivities = "/study_activities"
	PathWords      = "/words"
	PathGroups     = "/groups"
	PathSessions   = "/study_sessions"
	PathSettings   = "/settings"
)

// Sub-page actions
const (
	ActionLaunch = "launch" // /study_activities/{id}/launch
	ActionNew    = "new"    // /words/new
	ActionEdit   = "edit"   // /words/{id}/edit
)

// ParseRoute parses s. A missing or invalid page becomes 1.
func ParseRoute(s string) (Route, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Route{}, fmt.Errorf("parse route %q: %w", s, err)
	}

	segs := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	if len(segs) == 0 {
		segs = []string{strings.TrimPrefix(PathDashboard, "/")}
	}
	if len(segs) > 3 {
		return Route{}, fmt.Errorf("parse route %q: too many segments", s)
	}

	r := Route{Path: "/" + segs[0], Page: 1}
	if len(segs) == 2 && segs[1] == ActionNew {
		r.Action = ActionNew
	} else if len(segs) > 1 {
		id, err := strconv.Atoi(segs[1])
		if err != nil || id < 1 {
			return Route{}, fmt.Errorf("parse route %q: invalid id %q", s, segs[1])
		}
		r.ID = id
	}
	if len(segs) > 2 {
		r.Action = segs[2]
	}

	q := u.Query()
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 1 {
		r.Page = p
	}
	r.Query = q.Get("q")
	if p, err := strconv.Atoi(q.Get("sessions_page")); err == nil && p > 1 {
		r.SessionsPage = p
	}
	return r, nil
}

// MustRoute is ParseRoute for literals.
func MustRoute(s string) Route {
	r, err := ParseRoute(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String formats r. Page 1 and an empty query are omitted, so
// ParseRoute(r.String()) == r for every route with Page >= 1 and
// SessionsPage != 1.
func (r Route) String() string {
	var b strings.Builder
	b.WriteString(r.Path)
	if r.ID > 0 {
		b.WriteString("/" + strconv.Itoa(r.ID))
	}
	if r.Action != "" && (r.ID > 0 || r.Action == ActionNew) {
		b.WriteString("/" + r.Action)
	}

	q := url.Values{}
	if r.Page > 1 {
		q.Set("page", strconv.Itoa(r.Page))
	}
	if r.Query != "" {
		q.Set("q", r.Query)
	}
	if r.SessionsPage > 1 {
		q.Set("sessions_page", strconv.Itoa(r.SessionsPage))
	}
	if len(q) > 0 {
		b.WriteString("?" + q.Encode())
	}
	return b.String()
}

// IsDetail reports whether r addresses a single entity.
func (r Route) IsDetail() bool { return r.ID > 0 }

// CurrentPage returns Page, treating values below 1 as 1.
func (r Route) CurrentPage() int { return max(r.Page, 1) }

// WithPage returns r showing page n.
func (r Route) WithPage(n int) Route {
	r.Page = max(n, 1)
	return r
}

// WithSessionsPage returns r showing page n of the group's sessions.
func (r Route) WithSessionsPage(n int) Route {
	r.SessionsPage = 0
	if n > 1 {
		r.SessionsPage = n
	}
	return r
}

// WithQuery returns r searching for q. A new search starts on page 1.
func (r Route) WithQuery(q string) Route {
	r.Query = strings.TrimSpace(q)
	r.Page = 1
	return r
}

// Detail returns the route of entity id under r's collection.
func (r Route) Detail(id int) Route {
	return Route{Path: r.Path, ID: id, Page: 1}
}

package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		in   string
		want Route
	}{
		{"/words", Route{Path: "/words", Page: 1}},
		{"/words?page=2&q=ol", Route{Path: "/words", Page: 2, Query: "ol"}},
		{"/words?page=abc", Route{Path: "/words", Page: 1}},
		{"/words?page=-3", Route{Path: "/words", Page: 1}},
		{"/groups/4?page=3", Route{Path: "/groups", ID: 4, Page: 3}},
		{"/groups/4?sessions_page=2", Route{Path: "/groups", ID: 4, Page: 1, SessionsPage: 2}},
		{"/groups/4?sessions_page=1", Route{Path: "/groups", ID: 4, Page: 1}},
		{"/study_activities/1/launch", Route{Path: "/study_activities", ID: 1, Action: "launch", Page: 1}},
		{"/words/new", Route{Path: "/words", Action: "new", Page: 1}},
		{"/words/3/edit", Route{Path: "/words", ID: 3, Action: "edit", Page: 1}},
		{"/", Route{Path: "/dashboard", Page: 1}},
		{"", Route{Path: "/dashboard", Page: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRoute(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRouteErrors(t *testing.T) {
	for _, in := range []string{"/words/abc", "/words/0", "/words/new/x", "/a/1/b/c", "%zz"} {
		_, err := ParseRoute(in)
		assert.Error(t, err, in)
	}
	assert.Panics(t, func() { MustRoute("/words/x") })
}

func TestRouteString(t *testing.T) {
	assert.Equal(t, "/words?page=2&q=ol", Route{Path: "/words", Page: 2, Query: "ol"}.String())
	assert.Equal(t, "/words", Route{Path: "/words", Page: 1}.String())
	assert.Equal(t, "/words?q=ol%C3%A1+x", Route{Path: "/words", Page: 1, Query: "olá x"}.String())
	assert.Equal(t, "/study_activities/2/launch", Route{Path: "/study_activities", ID: 2, Action: "launch"}.String())
}

func TestRouteRoundTrip(t *testing.T) {
	routes := []Route{
		{Path: "/words", Page: 1},
		{Path: "/words", Page: 7, Query: "obrigado"},
		{Path: "/words", Page: 1, Query: "a&b=c"},
		{Path: "/groups", ID: 2, Page: 3},
		{Path: "/groups", ID: 2, Page: 2, SessionsPage: 5},
		{Path: "/study_sessions", ID: 123, Page: 1},
		{Path: "/study_activities", ID: 1, Action: "launch", Page: 1},
		{Path: "/groups", Action: "new", Page: 1},
	}
	for _, r := range routes {
		got, err := ParseRoute(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got, r.String())
	}
}

func TestRouteHelpers(t *testing.T) {
	r := MustRoute("/words?page=4&q=ol")

	assert.Equal(t, 1, r.WithQuery(" adeus ").Page)
	assert.Equal(t, "adeus", r.WithQuery(" adeus ").Query)
	assert.Equal(t, 1, r.WithPage(-2).Page)
	assert.Equal(t, 1, Route{}.CurrentPage())

	g := MustRoute("/groups/1?page=2").WithSessionsPage(3)
	assert.Equal(t, "/groups/1?page=2&sessions_page=3", g.String())
	assert.Equal(t, 0, g.WithSessionsPage(1).SessionsPage)
	assert.Equal(t, 2, g.WithSessionsPage(1).Page)

	d := r.Detail(3)
	assert.True(t, d.IsDetail())
	assert.Equal(t, "/words/3", d.String())
}

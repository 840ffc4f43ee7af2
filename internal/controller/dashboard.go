package controller

import (
	"grimm.is/langportal/internal/api"
	"grimm.is/langportal/internal/models"
)

// Dashboard holds three independent widgets. Each has its own loading
// state; a slow or failed widget never blocks the others.
type Dashboard struct {
	Last     *Loader[*models.LastStudySession]
	Progress *Loader[models.StudyProgress]
	Stats    *Loader[models.QuickStats]

	p api.Provider
}

// NewDashboard creates the dashboard controller.
func NewDashboard(p api.Provider, life *Lifetime) *Dashboard {
	return &Dashboard{
		Last:     NewLoader[*models.LastStudySession](life),
		Progress: NewLoader[models.StudyProgress](life),
		Stats:    NewLoader[models.QuickStats](life),
		p:        p,
	}
}

// Begin starts all three widgets.
func (d *Dashboard) Begin() []Fetch {
	return []Fetch{
		Erase(d.Last.Start(d.p.LastStudySession)),
		Erase(d.Progress.Start(d.p.StudyProgress)),
		Erase(d.Stats.Start(d.p.QuickStats)),
	}
}

// Load fetches the widgets concurrently and waits for all of them.
func (d *Dashboard) Load() error {
	return RunAll(d.Begin()...)
}

// Loading reports whether any widget is still loading.
func (d *Dashboard) Loading() bool {
	return d.Last.Loading || d.Progress.Loading || d.Stats.Loading
}

// SessionsRoute links the last session, or the sessions list when there is
// none.
func (d *Dashboard) SessionsRoute() Route {
	if last := d.Last.Data; last != nil && last.ID > 0 {
		return Route{Path: PathSessions, ID: last.ID, Page: 1}
	}
	return Route{Path: PathSessions, Page: 1}
}

// GroupRoute links the group of the last session, if any.
func (d *Dashboard) GroupRoute() (Route, bool) {
	if last := d.Last.Data; last != nil && last.GroupID > 0 {
		return Route{Path: PathGroups, ID: last.GroupID, Page: 1}, true
	}
	return Route{}, false
}

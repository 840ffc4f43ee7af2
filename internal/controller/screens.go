package controller

import (
	"grimm.is/langportal/internal/api"
	"grimm.is/langportal/internal/models"
)

// Words is the vocabulary listing with client-side search.
func Words(p api.Provider, life *Lifetime) *List[models.Word] {
	return NewList(life, p.Words).WithFilter(MatchWord)
}

// Groups is the word group listing.
func Groups(p api.Provider, life *Lifetime) *List[models.Group] {
	return NewList(life, p.Groups)
}

// Sessions is the study session listing.
func Sessions(p api.Provider, life *Lifetime) *List[models.StudySession] {
	return NewList(life, p.StudySessions)
}

// Activities lists every study activity; the listing is not paginated.
type Activities struct {
	*Loader[[]models.StudyActivity]
	p api.Provider
}

// NewActivities creates the activities controller.
func NewActivities(p api.Provider, life *Lifetime) *Activities {
	return &Activities{Loader: NewLoader[[]models.StudyActivity](life), p: p}
}

// Begin returns the fetch of all activities.
func (a *Activities) Begin() func() Result[[]models.StudyActivity] {
	return a.Start(a.p.StudyActivities)
}

// Load fetches all activities synchronously.
func (a *Activities) Load() error {
	return a.Run(a.p.StudyActivities)
}

// WordShow is the single word page.
func WordShow(p api.Provider, life *Lifetime) *Detail[models.WordDetail] {
	return NewDetail(life, p.Word)
}

// GroupShow is a group with its words and study sessions. The three parts
// load independently.
type GroupShow struct {
	Group    *Detail[models.GroupDetail]
	Words    *List[models.Word]
	Sessions *List[models.StudySession]
}

// NewGroupShow creates the group page controller.
func NewGroupShow(p api.Provider, life *Lifetime) *GroupShow {
	return &GroupShow{
		Group:    NewDetail(life, p.Group),
		Words:    NewChildList(life, p.GroupWords),
		Sessions: NewChildList(life, p.GroupStudySessions),
	}
}

// Begin starts all three parts. The route's page applies to the words list
// and its SessionsPage to the sessions.
func (g *GroupShow) Begin(r Route) []Fetch {
	return []Fetch{
		Erase(g.Group.Begin(r.ID)),
		Erase(g.Words.Begin(r)),
		g.BeginSessions(r),
	}
}

// BeginSessions reloads only the sessions list for r.SessionsPage.
func (g *GroupShow) BeginSessions(r Route) Fetch {
	return Erase(g.Sessions.Begin(r.WithPage(r.SessionsPage)))
}

// Load fetches all three parts concurrently.
func (g *GroupShow) Load(r Route) error {
	return RunAll(g.Begin(r)...)
}

// ActivityShow is an activity with its past sessions.
type ActivityShow struct {
	Activity *Detail[models.StudyActivity]
	Sessions *List[models.StudySession]
}

// NewActivityShow creates the activity page controller.
func NewActivityShow(p api.Provider, life *Lifetime) *ActivityShow {
	return &ActivityShow{
		Activity: NewDetail(life, p.StudyActivity),
		Sessions: NewChildList(life, p.StudyActivitySessions),
	}
}

// Begin starts both parts; the route's page applies to the sessions.
func (a *ActivityShow) Begin(r Route) []Fetch {
	return []Fetch{Erase(a.Activity.Begin(r.ID)), Erase(a.Sessions.Begin(r))}
}

// Load fetches both parts concurrently.
func (a *ActivityShow) Load(r Route) error {
	return RunAll(a.Begin(r)...)
}

// SessionShow is a study session with its reviewed words.
type SessionShow struct {
	Session *Detail[models.StudySessionDetail]
	Words   *List[models.Word]
}

// NewSessionShow creates the session page controller.
func NewSessionShow(p api.Provider, life *Lifetime) *SessionShow {
	return &SessionShow{
		Session: NewDetail(life, p.StudySession),
		Words:   NewChildList(life, p.StudySessionWords),
	}
}

// Begin starts both parts; the route's page applies to the words.
func (s *SessionShow) Begin(r Route) []Fetch {
	return []Fetch{Erase(s.Session.Begin(r.ID)), Erase(s.Words.Begin(r))}
}

// Load fetches both parts concurrently.
func (s *SessionShow) Load(r Route) error {
	return RunAll(s.Begin(r)...)
}

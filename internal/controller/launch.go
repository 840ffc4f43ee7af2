package controller

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"grimm.is/langportal/internal/api"
	"grimm.is/langportal/internal/models"
	"grimm.is/langportal/internal/notify"
)

// Launch notifications
const (
	MsgLoadFailed   = "Failed to load required data"
	MsgSelectGroup  = "Please select a word group"
	MsgLaunched     = "Study session started successfully!"
	MsgLaunchFailed = "Failed to launch the study activity"
)

// ErrNoGroup is returned when launching without a selected group.
var ErrNoGroup = errors.New("no word group selected")

// Launch prepares and starts a study session for one activity.
type Launch struct {
	Activity *Detail[models.StudyActivity]
	Groups   *Loader[models.Page[models.Group]]
	Result   *Loader[models.LaunchResult]

	// GroupID is the selected group; the first group is preselected.
	GroupID int

	base string
	p    api.Provider
	n    notify.Notifier
}

// NewLaunch creates the launch controller. base is the address study
// activities are opened at.
func NewLaunch(p api.Provider, n notify.Notifier, life *Lifetime, base string) *Launch {
	if n == nil {
		n = notify.Discard{}
	}
	l := &Launch{
		Activity: NewDetail(life, p.StudyActivity),
		Groups:   NewLoader[models.Page[models.Group]](life),
		Result:   NewLoader[models.LaunchResult](life),
		base:     base,
		p:        p,
		n:        n,
	}
	l.Activity.OnApply = func(_ models.StudyActivity, err error) {
		if err != nil {
			n.Notify(notify.LevelError, MsgLoadFailed)
		}
	}
	l.Groups.OnApply = func(pg models.Page[models.Group], err error) {
		if err != nil {
			n.Notify(notify.LevelError, MsgLoadFailed)
			return
		}
		if l.GroupID == 0 && len(pg.Items) > 0 {
			l.GroupID = pg.Items[0].ID
		}
	}
	l.Result.OnApply = func(_ models.LaunchResult, err error) {
		if err != nil {
			n.Notify(notify.LevelError, MsgLaunchFailed)
			return
		}
		n.Notify(notify.LevelSuccess, MsgLaunched)
	}
	return l
}

// Begin loads the activity and the groups concurrently.
func (l *Launch) Begin(activityID int) []Fetch {
	return []Fetch{
		Erase(l.Activity.Begin(activityID)),
		Erase(l.Groups.Start(func(ctx context.Context) (models.Page[models.Group], error) {
			return l.p.Groups(ctx, 1)
		})),
	}
}

// Load loads the activity and the groups and waits for both.
func (l *Launch) Load(activityID int) error {
	return RunAll(l.Begin(activityID)...)
}

// Loading reports whether the launch form is still loading.
func (l *Launch) Loading() bool {
	return l.Activity.Loading || l.Groups.Loading
}

// Launching reports whether a launch is in flight.
func (l *Launch) Launching() bool { return l.Result.Loading }

// SelectGroup selects a group by id.
func (l *Launch) SelectGroup(id int) { l.GroupID = id }

// BeginLaunch starts the session for the selected group.
func (l *Launch) BeginLaunch() (Fetch, error) {
	if l.Launching() {
		return nil, ErrBusy
	}
	if l.GroupID == 0 || !l.Activity.Loaded || l.Activity.Err != nil {
		l.n.Notify(notify.LevelError, MsgSelectGroup)
		return nil, ErrNoGroup
	}
	activityID, groupID := l.Activity.Data.ID, l.GroupID
	return Erase(l.Result.Start(func(ctx context.Context) (models.LaunchResult, error) {
		return l.p.LaunchStudyActivity(ctx, activityID, groupID)
	})), nil
}

// Launch starts the session synchronously and returns its URL.
func (l *Launch) Launch() (string, error) {
	f, err := l.BeginLaunch()
	if err != nil {
		return "", err
	}
	if err := RunAll(f); err != nil {
		return "", err
	}
	return l.URL()
}

// URL returns where the launched session is opened.
func (l *Launch) URL() (string, error) {
	if !l.Result.Loaded || l.Result.Err != nil {
		return "", errors.New("not launched")
	}
	return LaunchURL(l.base, l.groupID(), l.Result.Data.ID)
}

// SessionRoute is the page of the launched session.
func (l *Launch) SessionRoute() Route {
	return Route{Path: PathSessions, ID: l.Result.Data.ID, Page: 1}
}

func (l *Launch) groupID() int {
	if l.Result.Data.GroupID > 0 {
		return l.Result.Data.GroupID
	}
	return l.GroupID
}

// LaunchURL returns base with group_id and session_id query parameters.
func LaunchURL(base string, groupID, sessionID int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("launch url %q: %w", base, err)
	}
	q := u.Query()
	q.Set("group_id", strconv.Itoa(groupID))
	q.Set("session_id", strconv.Itoa(sessionID))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

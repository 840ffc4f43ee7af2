package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"grimm.is/langportal/internal/api"
	"grimm.is/langportal/internal/clock"
	"grimm.is/langportal/internal/models"
	"grimm.is/langportal/internal/notify"
)

type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) Notify(level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, level+": "+message)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func static(pageSize int) *api.StaticProvider {
	c := clock.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	return api.NewStaticProvider(api.WithStaticClock(c), api.WithPageSize(pageSize))
}

func TestLoaderStaleAfterRestart(t *testing.T) {
	life := NewLifetime(context.Background())
	l := NewLoader[int](life)

	first := l.Start(func(context.Context) (int, error) { return 1, nil })
	second := l.Start(func(context.Context) (int, error) { return 2, nil })

	r2 := second()
	r1 := first()
	assert.True(t, r2.Apply())
	assert.False(t, r1.Apply(), "superseded result must be dropped")
	assert.Equal(t, 2, l.Data)
	assert.False(t, l.Loading)
	assert.True(t, l.Loaded)
}

func TestLoaderDroppedAfterClose(t *testing.T) {
	life := NewLifetime(context.Background())
	l := NewLoader[string](life)

	var sawCancel bool
	fetch := l.Start(func(ctx context.Context) (string, error) {
		<-ctx.Done()
		sawCancel = true
		return "late", ctx.Err()
	})
	life.Close()

	res := fetch()
	assert.True(t, sawCancel)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.False(t, res.Apply())
	assert.Empty(t, l.Data)
	assert.True(t, l.Loading, "a closed controller keeps its state untouched")
	assert.True(t, life.Closed())
}

func TestLifetimeReset(t *testing.T) {
	life := NewLifetime(context.Background())
	l := NewLoader[int](life)

	old := l.Start(func(context.Context) (int, error) { return 1, nil })
	oldCtx := life.Context()
	life.Reset()

	assert.ErrorIs(t, oldCtx.Err(), context.Canceled)
	assert.NoError(t, life.Context().Err())
	assert.False(t, old().Apply())

	require.NoError(t, l.Run(func(context.Context) (int, error) { return 5, nil }))
	assert.Equal(t, 5, l.Data)

	life.Close()
	life.Reset()
	assert.True(t, life.Closed())
}

func TestRunAll(t *testing.T) {
	life := NewLifetime(context.Background())
	a, b := NewLoader[int](life), NewLoader[int](life)
	boom := errors.New("boom")

	err := RunAll(
		Erase(a.Start(func(context.Context) (int, error) { return 1, nil })),
		nil,
		Erase(b.Start(func(context.Context) (int, error) { return 0, boom })),
	)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, a.Data)
	assert.Equal(t, boom, b.Err)
	assert.Nil(t, Erase[int](nil))
}

func TestWordsListFilter(t *testing.T) {
	life := NewLifetime(context.Background())
	words := Words(static(3), life)

	require.NoError(t, words.Load(MustRoute("/words")))
	assert.Len(t, words.Items(), 3)
	assert.Equal(t, 2, words.Pagination().TotalPages)
	assert.False(t, words.Searching())

	// The filter only sees the fetched page: "please" lives on page 2.
	require.NoError(t, words.Load(MustRoute("/words?q=PLEASE")))
	assert.Empty(t, words.Items())
	assert.True(t, words.Searching())

	require.NoError(t, words.Load(MustRoute("/words?page=2&q=PLEASE")))
	require.Len(t, words.Items(), 1)
	assert.Equal(t, "por favor", words.Items()[0].Portuguese)
	assert.Equal(t, 2, words.Visible().Pagination.CurrentPage)

	require.NoError(t, words.Load(MustRoute("/words?q=ob")))
	require.Len(t, words.Items(), 1)
	assert.Equal(t, 3, words.Items()[0].ID)
}

func TestMatchWord(t *testing.T) {
	w := models.Word{Portuguese: "Obrigado", English: "Thank you"}
	assert.True(t, MatchWord(w, "obri"))
	assert.True(t, MatchWord(w, "THANK"))
	assert.True(t, MatchWord(w, ""))
	assert.False(t, MatchWord(w, "hello"))
}

func TestListPageDefaults(t *testing.T) {
	p := &api.MockProvider{}
	p.On("Groups", mock.Anything, 1).Return(models.Single([]models.Group{{ID: 1}}), nil)

	groups := Groups(p, NewLifetime(context.Background()))
	require.NoError(t, groups.Load(Route{Path: PathGroups}))
	assert.Len(t, groups.Items(), 1)
	p.AssertExpectations(t)
}

func TestGroupShow(t *testing.T) {
	g := NewGroupShow(static(10), NewLifetime(context.Background()))
	require.NoError(t, g.Load(MustRoute("/groups/2")))

	assert.Equal(t, "Common Phrases", g.Group.Data.Name)
	assert.Len(t, g.Words.Items(), 4)
	require.Len(t, g.Sessions.Items(), 1)
	assert.Equal(t, 124, g.Sessions.Items()[0].ID)
}

func TestGroupShowPagesIndependently(t *testing.T) {
	p := &api.MockProvider{}
	p.On("Group", mock.Anything, 1).Return(models.GroupDetail{ID: 1}, nil)
	p.On("GroupWords", mock.Anything, 1, 2).Return(models.Page[models.Word]{
		Items:      []models.Word{{ID: 3}},
		Pagination: models.Pagination{CurrentPage: 2, TotalPages: 2},
	}, nil)
	p.On("GroupStudySessions", mock.Anything, 1, 3).Return(models.Page[models.StudySession]{
		Items:      []models.StudySession{{ID: 200}},
		Pagination: models.Pagination{CurrentPage: 3, TotalPages: 4},
	}, nil)
	p.On("GroupStudySessions", mock.Anything, 1, 4).Return(models.Page[models.StudySession]{
		Items:      []models.StudySession{{ID: 100}},
		Pagination: models.Pagination{CurrentPage: 4, TotalPages: 4},
	}, nil)

	g := NewGroupShow(p, NewLifetime(context.Background()))
	r := MustRoute("/groups/1?page=2&sessions_page=3")
	require.NoError(t, g.Load(r))
	assert.Equal(t, 2, g.Words.Pagination().CurrentPage)
	assert.Equal(t, 3, g.Sessions.Pagination().CurrentPage)

	res := g.BeginSessions(r.WithSessionsPage(4))()
	require.True(t, res.Apply())
	assert.Equal(t, 4, g.Sessions.Pagination().CurrentPage)
	assert.Equal(t, 2, g.Words.Pagination().CurrentPage)
	p.AssertNumberOfCalls(t, "GroupWords", 1)
}

func TestGroupShowPartsAreIndependent(t *testing.T) {
	p := &api.MockProvider{}
	p.On("Group", mock.Anything, 9).Return(models.GroupDetail{}, errors.New("gone"))
	p.On("GroupWords", mock.Anything, 9, 1).Return(models.Single([]models.Word{{ID: 1}}), nil)
	p.On("GroupStudySessions", mock.Anything, 9, 1).Return(models.Single([]models.StudySession{}), nil)

	g := NewGroupShow(p, NewLifetime(context.Background()))
	err := g.Load(MustRoute("/groups/9"))
	assert.EqualError(t, err, "gone")
	assert.Error(t, g.Group.Err)
	assert.NoError(t, g.Words.Err)
	assert.Len(t, g.Words.Items(), 1)
}

func TestActivityAndSessionShow(t *testing.T) {
	p := static(10)

	a := NewActivityShow(p, NewLifetime(context.Background()))
	require.NoError(t, a.Load(MustRoute("/study_activities/2")))
	assert.Equal(t, "Word Matching", a.Activity.Data.Name)
	require.Len(t, a.Sessions.Items(), 1)

	s := NewSessionShow(p, NewLifetime(context.Background()))
	require.NoError(t, s.Load(MustRoute("/study_sessions/123")))
	assert.Equal(t, "Vocabulary Quiz", s.Session.Data.ActivityName)

	w := WordShow(p, NewLifetime(context.Background()))
	require.NoError(t, w.Load(1))
	assert.Equal(t, "olá", w.Data.Portuguese)
	assert.Error(t, w.Load(99))

	acts := NewActivities(p, NewLifetime(context.Background()))
	require.NoError(t, acts.Load())
	assert.Len(t, acts.Data, 3)
}

func TestDashboard(t *testing.T) {
	d := NewDashboard(static(10), NewLifetime(context.Background()))
	fetches := d.Begin()
	assert.True(t, d.Loading())
	require.NoError(t, RunAll(fetches...))

	assert.False(t, d.Loading())
	require.NotNil(t, d.Last.Data)
	assert.Equal(t, 123, d.Last.Data.ID)
	assert.Equal(t, 2, d.Progress.Data.Percent())
	assert.Equal(t, 40, d.Stats.Data.Mastery())
	assert.Equal(t, "/study_sessions/123", d.SessionsRoute().String())

	gr, ok := d.GroupRoute()
	assert.True(t, ok)
	assert.Equal(t, "/groups/456", gr.String())
}

func TestDashboardWidgetsIndependent(t *testing.T) {
	p := &api.MockProvider{}
	release := make(chan struct{})
	p.On("LastStudySession", mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(nil, nil)
	p.On("StudyProgress", mock.Anything).Return(models.StudyProgress{TotalWordsStudied: 1, TotalAvailableWords: 4}, nil)
	p.On("QuickStats", mock.Anything).Return(models.QuickStats{}, nil)

	d := NewDashboard(p, NewLifetime(context.Background()))
	fetches := d.Begin()

	// Progress completes while the last session is still in flight.
	require.True(t, fetches[1]().Apply())
	assert.False(t, d.Progress.Loading)
	assert.True(t, d.Last.Loading)
	assert.Equal(t, 25, d.Progress.Data.Percent())

	close(release)
	require.True(t, fetches[0]().Apply())
	assert.Nil(t, d.Last.Data)
	assert.Equal(t, "/study_sessions", d.SessionsRoute().String())
	_, ok := d.GroupRoute()
	assert.False(t, ok)
}

func TestSettings(t *testing.T) {
	rec := &recorder{}
	p := &api.MockProvider{}
	p.On("ResetHistory", mock.Anything).Return(models.ResetResult{Success: true}, nil)
	p.On("ResetFull", mock.Anything).Return(models.ResetResult{}, errors.New("boom"))

	s := NewSettings(p, rec, NewLifetime(context.Background()))

	require.NoError(t, s.ResetHistory())
	assert.Error(t, s.ResetFull())
	assert.False(t, s.HistoryBusy())
	assert.False(t, s.FullBusy())

	assert.Equal(t, []string{
		notify.LevelSuccess + ": " + MsgHistoryReset,
		notify.LevelError + ": " + MsgFullFailed,
	}, rec.all())
}

func TestSettingsBusy(t *testing.T) {
	s := NewSettings(static(10), nil, NewLifetime(context.Background()))

	f, err := s.BeginResetHistory()
	require.NoError(t, err)
	assert.True(t, s.HistoryBusy())

	_, err = s.BeginResetHistory()
	assert.ErrorIs(t, err, ErrBusy)

	// The other operation is unaffected.
	g, err := s.BeginResetFull()
	require.NoError(t, err)

	require.NoError(t, RunAll(f, g))
	assert.False(t, s.HistoryBusy())
	assert.False(t, s.FullBusy())
}

func TestLaunch(t *testing.T) {
	rec := &recorder{}
	l := NewLaunch(static(10), rec, NewLifetime(context.Background()), "http://localhost:8081")

	require.NoError(t, l.Load(1))
	assert.False(t, l.Loading())
	assert.Equal(t, 1, l.GroupID, "first group is preselected")

	l.SelectGroup(3)
	u, err := l.Launch()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8081?group_id=3&session_id=126", u)
	assert.Equal(t, "/study_sessions/126", l.SessionRoute().String())
	assert.Equal(t, []string{notify.LevelSuccess + ": " + MsgLaunched}, rec.all())
}

func TestLaunchWithoutGroups(t *testing.T) {
	rec := &recorder{}
	p := &api.MockProvider{}
	p.On("StudyActivity", mock.Anything, 1).Return(models.StudyActivity{ID: 1}, nil)
	p.On("Groups", mock.Anything, 1).Return(models.Single([]models.Group{}), nil)

	l := NewLaunch(p, rec, NewLifetime(context.Background()), "http://x")
	require.NoError(t, l.Load(1))
	assert.Zero(t, l.GroupID)

	_, err := l.Launch()
	assert.ErrorIs(t, err, ErrNoGroup)
	assert.Equal(t, []string{notify.LevelError + ": " + MsgSelectGroup}, rec.all())
	p.AssertNotCalled(t, "LaunchStudyActivity", mock.Anything, mock.Anything, mock.Anything)

	_, err = l.URL()
	assert.Error(t, err)
}

func TestLaunchFailure(t *testing.T) {
	rec := &recorder{}
	l := NewLaunch(static(10), rec, NewLifetime(context.Background()), "http://x")

	assert.Error(t, l.Load(42))
	assert.Equal(t, []string{notify.LevelError + ": " + MsgLoadFailed}, rec.all())
}

func TestLaunchURL(t *testing.T) {
	u, err := LaunchURL("http://localhost:8081/play?lang=pt", 2, 9)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8081/play?group_id=2&lang=pt&session_id=9", u)

	_, err = LaunchURL("://bad", 1, 1)
	assert.Error(t, err)
}

package api

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"grimm.is/langportal/internal/clock"
	"grimm.is/langportal/internal/models"
)

// DefaultStaticPageSize matches the page size the built-in data set reports.
const DefaultStaticPageSize = 100

type staticSession struct {
	id          int
	activityID  int
	groupID     int
	startOffset time.Duration
	endOffset   time.Duration
	items       int
}

// StaticProvider serves a deterministic in-memory data set. It never
// performs network I/O. Session timestamps are relative to its clock.
// Word and group mutations are applied in memory.
type StaticProvider struct {
	clock    clock.Clock
	pageSize int

	mu         sync.RWMutex
	activities []models.StudyActivity
	words      []models.Word
	groups     []models.Group
	members    map[int][]int // group id -> word ids
	sessions   []staticSession
	nextWord   int
	nextGroup  int
	nextSess   int
}

// StaticOption configures a StaticProvider.
type StaticOption func(*StaticProvider)

// WithStaticClock sets the clock used for session timestamps.
func WithStaticClock(c clock.Clock) StaticOption {
	return func(p *StaticProvider) { p.clock = clock.Or(c) }
}

// WithPageSize sets the number of items per page.
func WithPageSize(n int) StaticOption {
	return func(p *StaticProvider) {
		if n > 0 {
			p.pageSize = n
		}
	}
}

// NewStaticProvider creates a provider holding the built-in data set.
func NewStaticProvider(opts ...StaticOption) *StaticProvider {
	p := &StaticProvider{
		clock:    clock.RealClock{},
		pageSize: DefaultStaticPageSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.seed()
	return p
}

func (p *StaticProvider) seed() {
	p.activities = []models.StudyActivity{
		{ID: 1, Name: "Vocabulary Quiz", ThumbnailURL: "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d", Description: "Practice your vocabulary with flashcards"},
		{ID: 2, Name: "Word Matching", ThumbnailURL: "https://images.unsplash.com/photo-1488590528505-98d2b5aba04b", Description: "Match Portuguese words with their English translations"},
		{ID: 3, Name: "Audio Pronunciation", ThumbnailURL: "https://images.unsplash.com/photo-1473091534298-04dcbce3278c", Description: "Listen to pronunciation and choose the correct word"},
	}
	p.words = []models.Word{
		{ID: 1, Portuguese: "olá", English: "hello", CorrectCount: 5, WrongCount: 2},
		{ID: 2, Portuguese: "adeus", English: "goodbye", CorrectCount: 3, WrongCount: 1},
		{ID: 3, Portuguese: "obrigado", English: "thank you", CorrectCount: 7, WrongCount: 0},
		{ID: 4, Portuguese: "desculpe", English: "sorry", CorrectCount: 2, WrongCount: 3},
		{ID: 5, Portuguese: "por favor", English: "please", CorrectCount: 4, WrongCount: 1},
	}
	p.groups = []models.Group{
		{ID: 1, Name: "Basic Greetings", WordCount: 20},
		{ID: 2, Name: "Common Phrases", WordCount: 30},
		{ID: 3, Name: "Food Items", WordCount: 45},
		{ID: 4, Name: "Travel Vocabulary", WordCount: 35},
		{ID: 5, Name: "Business Terms", WordCount: 25},
	}
	p.members = map[int][]int{
		1: {1, 2, 3},
		2: {1, 3, 4, 5},
	}
	p.sessions = []staticSession{
		{id: 123, activityID: 1, groupID: 1, startOffset: -time.Hour, endOffset: 0, items: 20},
		{id: 124, activityID: 2, groupID: 2, startOffset: -24 * time.Hour, endOffset: -23 * time.Hour, items: 15},
		{id: 125, activityID: 3, groupID: 3, startOffset: -48 * time.Hour, endOffset: -47 * time.Hour, items: 25},
	}
	p.nextWord = 6
	p.nextGroup = 6
	p.nextSess = 126
}

func notFound(kind string, id int) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func (p *StaticProvider) now() time.Time { return p.clock.Now() }

func (p *StaticProvider) session(s staticSession) models.StudySession {
	now := p.now()
	out := models.StudySession{
		ID:               s.id,
		ActivityName:     "Unknown Activity",
		GroupName:        "Unknown Group",
		StartTime:        clock.ISO(now.Add(s.startOffset)),
		EndTime:          clock.ISO(now.Add(s.endOffset)),
		ReviewItemsCount: s.items,
	}
	if a, ok := p.findActivity(s.activityID); ok {
		out.ActivityName = a.Name
	}
	if g, ok := p.findGroup(s.groupID); ok {
		out.GroupName = g.Name
	}
	return out
}

func (p *StaticProvider) sessionsWhere(keep func(staticSession) bool) []models.StudySession {
	var out []models.StudySession
	for _, s := range p.sessions {
		if keep(s) {
			out = append(out, p.session(s))
		}
	}
	return out
}

func (p *StaticProvider) findActivity(id int) (models.StudyActivity, bool) {
	i := slices.IndexFunc(p.activities, func(a models.StudyActivity) bool { return a.ID == id })
	if i < 0 {
		return models.StudyActivity{}, false
	}
	return p.activities[i], true
}

func (p *StaticProvider) findGroup(id int) (models.Group, bool) {
	i := slices.IndexFunc(p.groups, func(g models.Group) bool { return g.ID == id })
	if i < 0 {
		return models.Group{}, false
	}
	return p.groups[i], true
}

func (p *StaticProvider) wordIndex(id int) int {
	return slices.IndexFunc(p.words, func(w models.Word) bool { return w.ID == id })
}

func (p *StaticProvider) sessionIndex(id int) int {
	return slices.IndexFunc(p.sessions, func(s staticSession) bool { return s.id == id })
}

// Dashboard

func (p *StaticProvider) LastStudySession(ctx context.Context) (*models.LastStudySession, error) {
	return &models.LastStudySession{
		ID:              123,
		GroupID:         456,
		CreatedAt:       clock.ISO(p.now()),
		StudyActivityID: 789,
		GroupName:       "Basic Greetings",
	}, nil
}

func (p *StaticProvider) StudyProgress(ctx context.Context) (models.StudyProgress, error) {
	return models.StudyProgress{TotalWordsStudied: 3, TotalAvailableWords: 124}, nil
}

func (p *StaticProvider) QuickStats(ctx context.Context) (models.QuickStats, error) {
	return models.QuickStats{
		SuccessRate:        80.0,
		TotalStudySessions: 4,
		TotalActiveGroups:  3,
		StudyStreakDays:    4,
	}, nil
}

// Study activities

func (p *StaticProvider) StudyActivities(ctx context.Context) ([]models.StudyActivity, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.activities), nil
}

func (p *StaticProvider) StudyActivity(ctx context.Context, id int) (models.StudyActivity, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	a, ok := p.findActivity(id)
	if !ok {
		return a, notFound("study activity", id)
	}
	return a, nil
}

func (p *StaticProvider) StudyActivitySessions(ctx context.Context, id, page int) (models.Page[models.StudySession], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, ok := p.findActivity(id); !ok {
		return models.Page[models.StudySession]{}, notFound("study activity", id)
	}
	all := p.sessionsWhere(func(s staticSession) bool { return s.activityID == id })
	return models.Paginate(all, firstPage(page), p.pageSize), nil
}

// LaunchStudyActivity records a new, empty session for the group.
func (p *StaticProvider) LaunchStudyActivity(ctx context.Context, activityID, groupID int) (models.LaunchResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.findActivity(activityID); !ok {
		return models.LaunchResult{}, notFound("study activity", activityID)
	}
	if _, ok := p.findGroup(groupID); !ok {
		return models.LaunchResult{}, notFound("group", groupID)
	}

	id := p.nextSess
	p.nextSess++
	p.sessions = append([]staticSession{{id: id, activityID: activityID, groupID: groupID}}, p.sessions...)
	return models.LaunchResult{ID: id, GroupID: groupID}, nil
}

// Words

func (p *StaticProvider) Words(ctx context.Context, page int) (models.Page[models.Word], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return models.Paginate(p.words, firstPage(page), p.pageSize), nil
}

func (p *StaticProvider) Word(ctx context.Context, id int) (models.WordDetail, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i := p.wordIndex(id)
	if i < 0 {
		return models.WordDetail{}, notFound("word", id)
	}
	w := p.words[i]

	groups := []models.GroupRef{}
	for _, g := range p.groups {
		if slices.Contains(p.members[g.ID], id) {
			groups = append(groups, models.GroupRef{ID: g.ID, Name: g.Name})
		}
	}
	return models.WordDetail{
		Word:   w,
		Stats:  models.WordStats{CorrectCount: w.CorrectCount, WrongCount: w.WrongCount},
		Groups: groups,
	}, nil
}

func validWord(in models.WordInput) error {
	if strings.TrimSpace(in.Portuguese) == "" || strings.TrimSpace(in.English) == "" {
		return fmt.Errorf("portuguese and english are required")
	}
	return nil
}

func (p *StaticProvider) CreateWord(ctx context.Context, in models.WordInput) (models.Word, error) {
	if err := validWord(in); err != nil {
		return models.Word{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	w := models.Word{ID: p.nextWord, Portuguese: in.Portuguese, English: in.English}
	p.nextWord++
	p.words = append(p.words, w)
	return w, nil
}

func (p *StaticProvider) UpdateWord(ctx context.Context, id int, in models.WordInput) (models.Word, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.wordIndex(id)
	if i < 0 {
		return models.Word{}, notFound("word", id)
	}
	if in.Portuguese != "" {
		p.words[i].Portuguese = in.Portuguese
	}
	if in.English != "" {
		p.words[i].English = in.English
	}
	return p.words[i], nil
}

func (p *StaticProvider) DeleteWord(ctx context.Context, id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.wordIndex(id)
	if i < 0 {
		return notFound("word", id)
	}
	p.words = slices.Delete(p.words, i, i+1)
	for g, ids := range p.members {
		j := slices.Index(ids, id)
		if j < 0 {
			continue
		}
		p.members[g] = slices.Delete(ids, j, j+1)
		gi := slices.IndexFunc(p.groups, func(gr models.Group) bool { return gr.ID == g })
		if gi >= 0 && p.groups[gi].WordCount > 0 {
			p.groups[gi].WordCount--
		}
	}
	return nil
}

// Groups

func (p *StaticProvider) Groups(ctx context.Context, page int) (models.Page[models.Group], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return models.Paginate(p.groups, firstPage(page), p.pageSize), nil
}

func (p *StaticProvider) Group(ctx context.Context, id int) (models.GroupDetail, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	g, ok := p.findGroup(id)
	if !ok {
		return models.GroupDetail{}, notFound("group", id)
	}
	return models.GroupDetail{
		ID:    g.ID,
		Name:  g.Name,
		Stats: models.GroupStats{TotalWordCount: g.WordCount},
	}, nil
}

func (p *StaticProvider) GroupWords(ctx context.Context, id, page int) (models.Page[models.Word], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, ok := p.findGroup(id); !ok {
		return models.Page[models.Word]{}, notFound("group", id)
	}
	var words []models.Word
	for _, w := range p.words {
		if slices.Contains(p.members[id], w.ID) {
			words = append(words, w)
		}
	}
	return models.Paginate(words, firstPage(page), p.pageSize), nil
}

func (p *StaticProvider) GroupStudySessions(ctx context.Context, id, page int) (models.Page[models.StudySession], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, ok := p.findGroup(id); !ok {
		return models.Page[models.StudySession]{}, notFound("group", id)
	}
	all := p.sessionsWhere(func(s staticSession) bool { return s.groupID == id })
	return models.Paginate(all, firstPage(page), p.pageSize), nil
}

func (p *StaticProvider) CreateGroup(ctx context.Context, in models.GroupInput) (models.Group, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Group{}, fmt.Errorf("name is required")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	g := models.Group{ID: p.nextGroup, Name: in.Name}
	p.nextGroup++
	p.groups = append(p.groups, g)
	return g, nil
}

func (p *StaticProvider) UpdateGroup(ctx context.Context, id int, in models.GroupInput) (models.Group, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := slices.IndexFunc(p.groups, func(g models.Group) bool { return g.ID == id })
	if i < 0 {
		return models.Group{}, notFound("group", id)
	}
	if in.Name != "" {
		p.groups[i].Name = in.Name
	}
	return p.groups[i], nil
}

func (p *StaticProvider) DeleteGroup(ctx context.Context, id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := slices.IndexFunc(p.groups, func(g models.Group) bool { return g.ID == id })
	if i < 0 {
		return notFound("group", id)
	}
	p.groups = slices.Delete(p.groups, i, i+1)
	delete(p.members, id)
	return nil
}

// AddWordsToGroup adds the words to the group, ignoring ones already there.
// The group's word count grows by the number actually added.
func (p *StaticProvider) AddWordsToGroup(ctx context.Context, groupID int, wordIDs []int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	gi := slices.IndexFunc(p.groups, func(g models.Group) bool { return g.ID == groupID })
	if gi < 0 {
		return notFound("group", groupID)
	}
	for _, id := range wordIDs {
		if p.wordIndex(id) < 0 {
			return notFound("word", id)
		}
	}
	for _, id := range wordIDs {
		if !slices.Contains(p.members[groupID], id) {
			p.members[groupID] = append(p.members[groupID], id)
			p.groups[gi].WordCount++
		}
	}
	return nil
}

func (p *StaticProvider) RemoveWordFromGroup(ctx context.Context, groupID, wordID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	gi := slices.IndexFunc(p.groups, func(g models.Group) bool { return g.ID == groupID })
	if gi < 0 {
		return notFound("group", groupID)
	}
	ids := p.members[groupID]
	i := slices.Index(ids, wordID)
	if i < 0 {
		return notFound("word", wordID)
	}
	p.members[groupID] = slices.Delete(ids, i, i+1)
	if p.groups[gi].WordCount > 0 {
		p.groups[gi].WordCount--
	}
	return nil
}

// Study sessions

func (p *StaticProvider) StudySessions(ctx context.Context, page int) (models.Page[models.StudySession], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	all := p.sessionsWhere(func(staticSession) bool { return true })
	return models.Paginate(all, firstPage(page), p.pageSize), nil
}

func (p *StaticProvider) StudySession(ctx context.Context, id int) (models.StudySessionDetail, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i := p.sessionIndex(id)
	if i < 0 {
		return models.StudySessionDetail{}, notFound("study session", id)
	}
	return p.session(p.sessions[i]), nil
}

// StudySessionWords returns the words reviewed in a session. The built-in
// data set does not track per-session reviews and lists every word.
func (p *StaticProvider) StudySessionWords(ctx context.Context, id, page int) (models.Page[models.Word], error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.sessionIndex(id) < 0 {
		return models.Page[models.Word]{}, notFound("study session", id)
	}
	return models.Paginate(p.words, firstPage(page), p.pageSize), nil
}

func (p *StaticProvider) ResetStudySession(ctx context.Context, id int) (models.ResetResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.sessionIndex(id)
	if i < 0 {
		return models.ResetResult{}, notFound("study session", id)
	}
	p.sessions[i].items = 0
	return models.ResetResult{Success: true, Message: "Study session has been reset"}, nil
}

// SubmitReview records an answer against the word's counters.
func (p *StaticProvider) SubmitReview(ctx context.Context, sessionID int, in models.ReviewInput) (models.ReviewResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	si := p.sessionIndex(sessionID)
	if si < 0 {
		return models.ReviewResult{}, notFound("study session", sessionID)
	}
	wi := p.wordIndex(in.WordID)
	if wi < 0 {
		return models.ReviewResult{}, notFound("word", in.WordID)
	}
	if in.Correct {
		p.words[wi].CorrectCount++
	} else {
		p.words[wi].WrongCount++
	}
	p.sessions[si].items++
	return models.ReviewResult{Success: true}, nil
}

// Settings

// ResetHistory clears sessions and review counters.
func (p *StaticProvider) ResetHistory(ctx context.Context) (models.ResetResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions = nil
	for i := range p.words {
		p.words[i].CorrectCount = 0
		p.words[i].WrongCount = 0
	}
	return models.ResetResult{Success: true, Message: "Study history has been reset"}, nil
}

// ResetFull restores the built-in data set.
func (p *StaticProvider) ResetFull(ctx context.Context) (models.ResetResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seed()
	return models.ResetResult{Success: true, Message: "System has been fully reset"}, nil
}

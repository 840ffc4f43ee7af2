package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"grimm.is/langportal/internal/client"
	"grimm.is/langportal/internal/clock"
	"grimm.is/langportal/internal/logging"
	"grimm.is/langportal/internal/models"
	"grimm.is/langportal/internal/normalize"
)

// HTTPProvider implements Provider against a live backend.
type HTTPProvider struct {
	transport *client.HTTPClient
	clock     clock.Clock
}

// HTTPOption configures an HTTPProvider.
type HTTPOption func(*httpSettings)

type httpSettings struct {
	client []client.ClientOption
	clock  clock.Clock
}

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(s *httpSettings) { s.client = append(s.client, client.WithHTTPClient(hc)) }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(s *httpSettings) { s.client = append(s.client, client.WithUserAgent(ua)) }
}

// WithLogger sets the request-tracing logger.
func WithLogger(l *logging.Logger) HTTPOption {
	return func(s *httpSettings) { s.client = append(s.client, client.WithLogger(l)) }
}

// WithClock sets the clock used to fill missing timestamps.
func WithClock(c clock.Clock) HTTPOption {
	return func(s *httpSettings) { s.clock = c }
}

// NewHTTPProvider creates a live provider for baseURL.
func NewHTTPProvider(baseURL string, opts ...HTTPOption) *HTTPProvider {
	var s httpSettings
	for _, opt := range opts {
		opt(&s)
	}
	return &HTTPProvider{
		transport: client.NewHTTPClient(baseURL, s.client...),
		clock:     clock.Or(s.clock),
	}
}

// BaseURL returns the backend base URL.
func (p *HTTPProvider) BaseURL() string { return p.transport.BaseURL() }

func (p *HTTPProvider) get(ctx context.Context, path string) (any, error) {
	return p.transport.Do(ctx, http.MethodGet, path, nil, nil)
}

func (p *HTTPProvider) getPage(ctx context.Context, path string, page int) (any, error) {
	q := url.Values{"page": {strconv.Itoa(firstPage(page))}}
	return p.transport.Do(ctx, http.MethodGet, path, q, nil)
}

func (p *HTTPProvider) send(ctx context.Context, method, path string, body any) (any, error) {
	return p.transport.Do(ctx, method, path, nil, body)
}

func decode[T any](p *HTTPProvider, s *normalize.Schema, raw any, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return normalize.Decode[T](s, raw, p.clock)
}

func decodePage[T any](p *HTTPProvider, s *normalize.Schema, raw any, err error) (models.Page[T], error) {
	if err != nil {
		return models.Page[T]{}, err
	}
	return normalize.DecodePage[T](s, raw, p.clock)
}

// Dashboard

func (p *HTTPProvider) LastStudySession(ctx context.Context) (*models.LastStudySession, error) {
	raw, err := p.get(ctx, "/dashboard/last_study_session")
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	s, err := normalize.Decode[models.LastStudySession](normalize.LastSession, raw, p.clock)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *HTTPProvider) StudyProgress(ctx context.Context) (models.StudyProgress, error) {
	raw, err := p.get(ctx, "/dashboard/study_progress")
	return decode[models.StudyProgress](p, normalize.StudyProgress, raw, err)
}

func (p *HTTPProvider) QuickStats(ctx context.Context) (models.QuickStats, error) {
	raw, err := p.get(ctx, "/dashboard/quick-stats")
	return decode[models.QuickStats](p, normalize.QuickStats, raw, err)
}

// Study activities

func (p *HTTPProvider) StudyActivities(ctx context.Context) ([]models.StudyActivity, error) {
	raw, err := p.get(ctx, "/study_activities")
	if err != nil {
		return nil, err
	}
	return normalize.DecodeList[models.StudyActivity](normalize.Activity, raw, p.clock)
}

func (p *HTTPProvider) StudyActivity(ctx context.Context, id int) (models.StudyActivity, error) {
	raw, err := p.get(ctx, fmt.Sprintf("/study_activities/%d", id))
	return decode[models.StudyActivity](p, normalize.Activity, raw, err)
}

func (p *HTTPProvider) StudyActivitySessions(ctx context.Context, id, page int) (models.Page[models.StudySession], error) {
	raw, err := p.getPage(ctx, fmt.Sprintf("/study_activities/%d/study_sessions", id), page)
	return decodePage[models.StudySession](p, normalize.Session, raw, err)
}

func (p *HTTPProvider) LaunchStudyActivity(ctx context.Context, activityID, groupID int) (models.LaunchResult, error) {
	raw, err := p.send(ctx, http.MethodPost, "/study_activities", models.LaunchInput{
		StudyActivityID: activityID,
		GroupID:         groupID,
	})
	return decode[models.LaunchResult](p, normalize.LaunchResult, raw, err)
}

// Words

func (p *HTTPProvider) Words(ctx context.Context, page int) (models.Page[models.Word], error) {
	raw, err := p.getPage(ctx, "/words", page)
	return decodePage[models.Word](p, normalize.Word, raw, err)
}

func (p *HTTPProvider) Word(ctx context.Context, id int) (models.WordDetail, error) {
	raw, err := p.get(ctx, fmt.Sprintf("/words/%d", id))
	return decode[models.WordDetail](p, normalize.WordDetail, raw, err)
}

func (p *HTTPProvider) CreateWord(ctx context.Context, in models.WordInput) (models.Word, error) {
	raw, err := p.send(ctx, http.MethodPost, "/words", in)
	return decode[models.Word](p, normalize.Word, raw, err)
}

func (p *HTTPProvider) UpdateWord(ctx context.Context, id int, in models.WordInput) (models.Word, error) {
	raw, err := p.send(ctx, http.MethodPut, fmt.Sprintf("/words/%d", id), in)
	return decode[models.Word](p, normalize.Word, raw, err)
}

func (p *HTTPProvider) DeleteWord(ctx context.Context, id int) error {
	_, err := p.send(ctx, http.MethodDelete, fmt.Sprintf("/words/%d", id), nil)
	return err
}

// Groups

func (p *HTTPProvider) Groups(ctx context.Context, page int) (models.Page[models.Group], error) {
	raw, err := p.getPage(ctx, "/groups", page)
	return decodePage[models.Group](p, normalize.Group, raw, err)
}

func (p *HTTPProvider) Group(ctx context.Context, id int) (models.GroupDetail, error) {
	raw, err := p.get(ctx, fmt.Sprintf("/groups/%d", id))
	return decode[models.GroupDetail](p, normalize.GroupDetail, raw, err)
}

func (p *HTTPProvider) GroupWords(ctx context.Context, id, page int) (models.Page[models.Word], error) {
	raw, err := p.getPage(ctx, fmt.Sprintf("/groups/%d/words", id), page)
	return decodePage[models.Word](p, normalize.Word, raw, err)
}

func (p *HTTPProvider) GroupStudySessions(ctx context.Context, id, page int) (models.Page[models.StudySession], error) {
	raw, err := p.getPage(ctx, fmt.Sprintf("/groups/%d/study_sessions", id), page)
	return decodePage[models.StudySession](p, normalize.Session, raw, err)
}

func (p *HTTPProvider) CreateGroup(ctx context.Context, in models.GroupInput) (models.Group, error) {
	raw, err := p.send(ctx, http.MethodPost, "/groups", in)
	return decode[models.Group](p, normalize.Group, raw, err)
}

func (p *HTTPProvider) UpdateGroup(ctx context.Context, id int, in models.GroupInput) (models.Group, error) {
	raw, err := p.send(ctx, http.MethodPut, fmt.Sprintf("/groups/%d", id), in)
	return decode[models.Group](p, normalize.Group, raw, err)
}

func (p *HTTPProvider) DeleteGroup(ctx context.Context, id int) error {
	_, err := p.send(ctx, http.MethodDelete, fmt.Sprintf("/groups/%d", id), nil)
	return err
}

func (p *HTTPProvider) AddWordsToGroup(ctx context.Context, groupID int, wordIDs []int) error {
	if wordIDs == nil {
		wordIDs = []int{}
	}
	_, err := p.send(ctx, http.MethodPost, fmt.Sprintf("/groups/%d/words", groupID), wordIDs)
	return err
}

func (p *HTTPProvider) RemoveWordFromGroup(ctx context.Context, groupID, wordID int) error {
	_, err := p.send(ctx, http.MethodDelete, fmt.Sprintf("/groups/%d/words/%d", groupID, wordID), nil)
	return err
}

// Study sessions

func (p *HTTPProvider) StudySessions(ctx context.Context, page int) (models.Page[models.StudySession], error) {
	raw, err := p.getPage(ctx, "/study_sessions", page)
	return decodePage[models.StudySession](p, normalize.Session, raw, err)
}

func (p *HTTPProvider) StudySession(ctx context.Context, id int) (models.StudySessionDetail, error) {
	raw, err := p.get(ctx, fmt.Sprintf("/study_sessions/%d", id))
	return decode[models.StudySessionDetail](p, normalize.Session, raw, err)
}

func (p *HTTPProvider) StudySessionWords(ctx context.Context, id, page int) (models.Page[models.Word], error) {
	raw, err := p.getPage(ctx, fmt.Sprintf("/study_sessions/%d/words", id), page)
	return decodePage[models.Word](p, normalize.Word, raw, err)
}

func (p *HTTPProvider) ResetStudySession(ctx context.Context, id int) (models.ResetResult, error) {
	raw, err := p.send(ctx, http.MethodPost, fmt.Sprintf("/study_sessions/%d/reset", id), nil)
	return decode[models.ResetResult](p, normalize.ResetResult, raw, err)
}

func (p *HTTPProvider) SubmitReview(ctx context.Context, sessionID int, in models.ReviewInput) (models.ReviewResult, error) {
	raw, err := p.send(ctx, http.MethodPost, fmt.Sprintf("/study_sessions/%d/submit", sessionID), in)
	return decode[models.ReviewResult](p, normalize.ReviewResult, raw, err)
}

// Settings

func (p *HTTPProvider) ResetHistory(ctx context.Context) (models.ResetResult, error) {
	raw, err := p.send(ctx, http.MethodPost, "/reset_history", nil)
	return decode[models.ResetResult](p, normalize.ResetResult, raw, err)
}

func (p *HTTPProvider) ResetFull(ctx context.Context) (models.ResetResult, error) {
	raw, err := p.send(ctx, http.MethodPost, "/full_reset", nil)
	return decode[models.ResetResult](p, normalize.ResetResult, raw, err)
}

package api

import (
	"context"
	"errors"
	"time"

	"grimm.is/langportal/internal/config"
	"grimm.is/langportal/internal/logging"
	"grimm.is/langportal/internal/metrics"
	"grimm.is/langportal/internal/models"
	"grimm.is/langportal/internal/notify"
)

// Select returns the static provider when mock mode is enabled and one is
// available, otherwise the live provider.
func Select(cfg *config.APIConfig, live, static Provider) (Provider, Mode) {
	if cfg != nil && cfg.Mock && static != nil {
		return static, ModeMock
	}
	return live, ModeLive
}

// Client is the API facade. Every failed call is logged, counted and
// reported to the notifier before it reaches the caller. Dashboard
// aggregates swallow their errors and return defaults.
type Client struct {
	provider Provider
	mode     Mode
	notifier notify.Notifier
	logger   *logging.Logger
	metrics  *metrics.Registry
}

var _ Provider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithNotifier sets where failures are reported.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithClientLogger sets the facade logger.
func WithClientLogger(l *logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(c *Client) {
		if r != nil {
			c.metrics = r
		}
	}
}

// NewClient builds a facade over p.
func NewClient(p Provider, mode Mode, opts ...Option) *Client {
	c := &Client{
		provider: p,
		mode:     mode,
		notifier: notify.Discard{},
		logger:   logging.Discard(),
		metrics:  metrics.Get(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// New selects a provider from cfg and builds a facade over it. Asking for
// mock mode without a static provider falls back to live with a warning.
func New(cfg *config.APIConfig, live, static Provider, opts ...Option) *Client {
	p, mode := Select(cfg, live, static)
	c := NewClient(p, mode, opts...)
	if cfg != nil && cfg.Mock && mode == ModeLive {
		c.logger.Warn("mock mode requested but no static provider is available, using live backend")
	}
	c.logger.Info("api facade ready", "mode", string(mode))
	return c
}

// Mode reports which provider the facade delegates to.
func (c *Client) Mode() Mode { return c.mode }

// Provider returns the underlying provider.
func (c *Client) Provider() Provider { return c.provider }

func (c *Client) fail(op string, err error) {
	c.logger.Error("api call failed", "operation", op, "mode", string(c.mode), "error", err)
	notify.Error(c.notifier, "%s", Message(err))
}

// call runs fn and records the outcome. Canceled calls belong to views that
// went away and are neither reported nor counted as failures.
func call[T any](c *Client, op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	if errors.Is(err, context.Canceled) {
		return v, err
	}
	c.metrics.RecordAPICall(op, string(c.mode), time.Since(start), err)
	if err != nil {
		c.fail(op, err)
	}
	return v, err
}

func call0(c *Client, op string, fn func() error) error {
	_, err := call(c, op, func() (struct{}, error) { return struct{}{}, fn() })
	return err
}

// Dashboard

// LastStudySession returns nil, without an error, when the call fails.
func (c *Client) LastStudySession(ctx context.Context) (*models.LastStudySession, error) {
	s, err := call(c, "last_study_session", func() (*models.LastStudySession, error) {
		return c.provider.LastStudySession(ctx)
	})
	if err != nil {
		return nil, nil
	}
	return s, nil
}

// StudyProgress returns zeros when the call fails.
func (c *Client) StudyProgress(ctx context.Context) (models.StudyProgress, error) {
	p, err := call(c, "study_progress", func() (models.StudyProgress, error) {
		return c.provider.StudyProgress(ctx)
	})
	if err != nil {
		return models.StudyProgress{}, nil
	}
	return p, nil
}

// QuickStats returns zeros when the call fails.
func (c *Client) QuickStats(ctx context.Context) (models.QuickStats, error) {
	s, err := call(c, "quick_stats", func() (models.QuickStats, error) {
		return c.provider.QuickStats(ctx)
	})
	if err != nil {
		return models.QuickStats{}, nil
	}
	return s, nil
}

// Study activities

func (c *Client) StudyActivities(ctx context.Context) ([]models.StudyActivity, error) {
	return call(c, "study_activities", func() ([]models.StudyActivity, error) {
		return c.provider.StudyActivities(ctx)
	})
}

func (c *Client) StudyActivity(ctx context.Context, id int) (models.StudyActivity, error) {
	return call(c, "study_activity", func() (models.StudyActivity, error) {
		return c.provider.StudyActivity(ctx, id)
	})
}

func (c *Client) StudyActivitySessions(ctx context.Context, id, page int) (models.Page[models.StudySession], error) {
	return call(c, "study_activity_sessions", func() (models.Page[models.StudySession], error) {
		return c.provider.StudyActivitySessions(ctx, id, firstPage(page))
	})
}

func (c *Client) LaunchStudyActivity(ctx context.Context, activityID, groupID int) (models.LaunchResult, error) {
	return call(c, "launch_study_activity", func() (models.LaunchResult, error) {
		return c.provider.LaunchStudyActivity(ctx, activityID, groupID)
	})
}

// Words

func (c *Client) Words(ctx context.Context, page int) (models.Page[models.Word], error) {
	return call(c, "words", func() (models.Page[models.Word], error) {
		return c.provider.Words(ctx, firstPage(page))
	})
}

func (c *Client) Word(ctx context.Context, id int) (models.WordDetail, error) {
	return call(c, "word", func() (models.WordDetail, error) {
		return c.provider.Word(ctx, id)
	})
}

func (c *Client) CreateWord(ctx context.Context, in models.WordInput) (models.Word, error) {
	return call(c, "create_word", func() (models.Word, error) {
		return c.provider.CreateWord(ctx, in)
	})
}

func (c *Client) UpdateWord(ctx context.Context, id int, in models.WordInput) (models.Word, error) {
	return call(c, "update_word", func() (models.Word, error) {
		return c.provider.UpdateWord(ctx, id, in)
	})
}

func (c *Client) DeleteWord(ctx context.Context, id int) error {
	return call0(c, "delete_word", func() error { return c.provider.DeleteWord(ctx, id) })
}

// Groups

func (c *Client) Groups(ctx context.Context, page int) (models.Page[models.Group], error) {
	return call(c, "groups", func() (models.Page[models.Group], error) {
		return c.provider.Groups(ctx, firstPage(page))
	})
}

func (c *Client) Group(ctx context.Context, id int) (models.GroupDetail, error) {
	return call(c, "group", func() (models.GroupDetail, error) {
		return c.provider.Group(ctx, id)
	})
}

func (c *Client) GroupWords(ctx context.Context, id, page int) (models.Page[models.Word], error) {
	return call(c, "group_words", func() (models.Page[models.Word], error) {
		return c.provider.GroupWords(ctx, id, firstPage(page))
	})
}

func (c *Client) GroupStudySessions(ctx context.Context, id, page int) (models.Page[models.StudySession], error) {
	return call(c, "group_study_sessions", func() (models.Page[models.StudySession], error) {
		return c.provider.GroupStudySessions(ctx, id, firstPage(page))
	})
}

func (c *Client) CreateGroup(ctx context.Context, in models.GroupInput) (models.Group, error) {
	return call(c, "create_group", func() (models.Group, error) {
		return c.provider.CreateGroup(ctx, in)
	})
}

func (c *Client) UpdateGroup(ctx context.Context, id int, in models.GroupInput) (models.Group, error) {
	return call(c, "update_group", func() (models.Group, error) {
		return c.provider.UpdateGroup(ctx, id, in)
	})
}

func (c *Client) DeleteGroup(ctx context.Context, id int) error {
	return call0(c, "delete_group", func() error { return c.provider.DeleteGroup(ctx, id) })
}

func (c *Client) AddWordsToGroup(ctx context.Context, groupID int, wordIDs []int) error {
	return call0(c, "add_words_to_group", func() error {
		return c.provider.AddWordsToGroup(ctx, groupID, wordIDs)
	})
}

func (c *Client) RemoveWordFromGroup(ctx context.Context, groupID, wordID int) error {
	return call0(c, "remove_word_from_group", func() error {
		return c.provider.RemoveWordFromGroup(ctx, groupID, wordID)
	})
}

// Study sessions

func (c *Client) StudySessions(ctx context.Context, page int) (models.Page[models.StudySession], error) {
	return call(c, "study_sessions", func() (models.Page[models.StudySession], error) {
		return c.provider.StudySessions(ctx, firstPage(page))
	})
}

func (c *Client) StudySession(ctx context.Context, id int) (models.StudySessionDetail, error) {
	return call(c, "study_session", func() (models.StudySessionDetail, error) {
		return c.provider.StudySession(ctx, id)
	})
}

func (c *Client) StudySessionWords(ctx context.Context, id, page int) (models.Page[models.Word], error) {
	return call(c, "study_session_words", func() (models.Page[models.Word], error) {
		return c.provider.StudySessionWords(ctx, id, firstPage(page))
	})
}

func (c *Client) ResetStudySession(ctx context.Context, id int) (models.ResetResult, error) {
	return call(c, "reset_study_session", func() (models.ResetResult, error) {
		return c.provider.ResetStudySession(ctx, id)
	})
}

func (c *Client) SubmitReview(ctx context.Context, sessionID int, in models.ReviewInput) (models.ReviewResult, error) {
	return call(c, "submit_review", func() (models.ReviewResult, error) {
		return c.provider.SubmitReview(ctx, sessionID, in)
	})
}

// Settings

func (c *Client) ResetHistory(ctx context.Context) (models.ResetResult, error) {
	return call(c, "reset_history", func() (models.ResetResult, error) {
		return c.provider.ResetHistory(ctx)
	})
}

func (c *Client) ResetFull(ctx context.Context) (models.ResetResult, error) {
	return call(c, "reset_full", func() (models.ResetResult, error) {
		return c.provider.ResetFull(ctx)
	})
}

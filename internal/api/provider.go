// Package api is the single entry point to the vocabulary backend.
//
// A Provider performs backend operations. Two implementations exist: the
// HTTPProvider talks to a live backend and the StaticProvider serves a fixed
// in-memory data set. The choice is made once when a Client is built; the
// Client then adds notification, logging and metrics around every call.
package api

import (
	"context"
	"errors"
	"fmt"

	"grimm.is/langportal/internal/client"
	"grimm.is/langportal/internal/models"
)

// Provider performs backend operations. List operations take a 1-based page;
// values below 1 are treated as 1.
type Provider interface {
	// Dashboard
	LastStudySession(ctx context.Context) (*models.LastStudySession, error)
	StudyProgress(ctx context.Context) (models.StudyProgress, error)
	QuickStats(ctx context.Context) (models.QuickStats, error)

	// Study activities
	StudyActivities(ctx context.Context) ([]models.StudyActivity, error)
	StudyActivity(ctx context.Context, id int) (models.StudyActivity, error)
	StudyActivitySessions(ctx context.Context, id, page int) (models.Page[models.StudySession], error)
	LaunchStudyActivity(ctx context.Context, activityID, groupID int) (models.LaunchResult, error)

	// Words
	Words(ctx context.Context, page int) (models.Page[models.Word], error)
	Word(ctx context.Context, id int) (models.WordDetail, error)
	CreateWord(ctx context.Context, in models.WordInput) (models.Word, error)
	UpdateWord(ctx context.Context, id int, in models.WordInput) (models.Word, error)
	DeleteWord(ctx context.Context, id int) error

	// Groups
	Groups(ctx context.Context, page int) (models.Page[models.Group], error)
	Group(ctx context.Context, id int) (models.GroupDetail, error)
	GroupWords(ctx context.Context, id, page int) (models.Page[models.Word], error)
	GroupStudySessions(ctx context.Context, id, page int) (models.Page[models.StudySession], error)
	CreateGroup(ctx context.Context, in models.GroupInput) (models.Group, error)
	UpdateGroup(ctx context.Context, id int, in models.GroupInput) (models.Group, error)
	DeleteGroup(ctx context.Context, id int) error
	AddWordsToGroup(ctx context.Context, groupID int, wordIDs []int) error
	RemoveWordFromGroup(ctx context.Context, groupID, wordID int) error

	// Study sessions
	StudySessions(ctx context.Context, page int) (models.Page[models.StudySession], error)
	StudySession(ctx context.Context, id int) (models.StudySessionDetail, error)
	StudySessionWords(ctx context.Context, id, page int) (models.Page[models.Word], error)
	ResetStudySession(ctx context.Context, id int) (models.ResetResult, error)
	SubmitReview(ctx context.Context, sessionID int, in models.ReviewInput) (models.ReviewResult, error)

	// Settings
	ResetHistory(ctx context.Context) (models.ResetResult, error)
	ResetFull(ctx context.Context) (models.ResetResult, error)
}

// Mode names the provider a Client delegates to.
type Mode string

const (
	ModeLive Mode = "live"
	ModeMock Mode = "mock"
)

// Error is a non-2xx backend response.
type Error = client.Error

// ErrNotFound is returned by the static provider for unknown ids.
var ErrNotFound = errors.New("not found")

// NotFoundError names the entity that was not found. It matches ErrNotFound.
type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Kind, e.ID, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Message returns the user-facing text for err.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func firstPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

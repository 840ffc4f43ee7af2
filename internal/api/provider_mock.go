package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"grimm.is/langportal/internal/models"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

var _ Provider = (*MockProvider)(nil)

func (m *MockProvider) LastStudySession(ctx context.Context) (*models.LastStudySession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LastStudySession), args.Error(1)
}

func (m *MockProvider) StudyProgress(ctx context.Context) (models.StudyProgress, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.StudyProgress), args.Error(1)
}

func (m *MockProvider) QuickStats(ctx context.Context) (models.QuickStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.QuickStats), args.Error(1)
}

func (m *MockProvider) StudyActivities(ctx context.Context) ([]models.StudyActivity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StudyActivity), args.Error(1)
}

func (m *MockProvider) StudyActivity(ctx context.Context, id int) (models.StudyActivity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.StudyActivity), args.Error(1)
}

func (m *MockProvider) StudyActivitySessions(ctx context.Context, id, page int) (models.Page[models.StudySession], error) {
	args := m.Called(ctx, id, page)
	return args.Get(0).(models.Page[models.StudySession]), args.Error(1)
}

func (m *MockProvider) LaunchStudyActivity(ctx context.Context, activityID, groupID int) (models.LaunchResult, error) {
	args := m.Called(ctx, activityID, groupID)
	return args.Get(0).(models.LaunchResult), args.Error(1)
}

func (m *MockProvider) Words(ctx context.Context, page int) (models.Page[models.Word], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(models.Page[models.Word]), args.Error(1)
}

func (m *MockProvider) Word(ctx context.Context, id int) (models.WordDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.WordDetail), args.Error(1)
}

func (m *MockProvider) CreateWord(ctx context.Context, in models.WordInput) (models.Word, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Word), args.Error(1)
}

func (m *MockProvider) UpdateWord(ctx context.Context, id int, in models.WordInput) (models.Word, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(models.Word), args.Error(1)
}

func (m *MockProvider) DeleteWord(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProvider) Groups(ctx context.Context, page int) (models.Page[models.Group], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(models.Page[models.Group]), args.Error(1)
}

func (m *MockProvider) Group(ctx context.Context, id int) (models.GroupDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.GroupDetail), args.Error(1)
}

func (m *MockProvider) GroupWords(ctx context.Context, id, page int) (models.Page[models.Word], error) {
	args := m.Called(ctx, id, page)
	return args.Get(0).(models.Page[models.Word]), args.Error(1)
}

func (m *MockProvider) GroupStudySessions(ctx context.Context, id, page int) (models.Page[models.StudySession], error) {
	args := m.Called(ctx, id, page)
	return args.Get(0).(models.Page[models.StudySession]), args.Error(1)
}

func (m *MockProvider) CreateGroup(ctx context.Context, in models.GroupInput) (models.Group, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Group), args.Error(1)
}

func (m *MockProvider) UpdateGroup(ctx context.Context, id int, in models.GroupInput) (models.Group, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(models.Group), args.Error(1)
}

func (m *MockProvider) DeleteGroup(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProvider) AddWordsToGroup(ctx context.Context, groupID int, wordIDs []int) error {
	return m.Called(ctx, groupID, wordIDs).Error(0)
}

func (m *MockProvider) RemoveWordFromGroup(ctx context.Context, groupID, wordID int) error {
	return m.Called(ctx, groupID, wordID).Error(0)
}

func (m *MockProvider) StudySessions(ctx context.Context, page int) (models.Page[models.StudySession], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(models.Page[models.StudySession]), args.Error(1)
}

func (m *MockProvider) StudySession(ctx context.Context, id int) (models.StudySessionDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.StudySessionDetail), args.Error(1)
}

func (m *MockProvider) StudySessionWords(ctx context.Context, id, page int) (models.Page[models.Word], error) {
	args := m.Called(ctx, id, page)
	return args.Get(0).(models.Page[models.Word]), args.Error(1)
}

func (m *MockProvider) ResetStudySession(ctx context.Context, id int) (models.ResetResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ResetResult), args.Error(1)
}

func (m *MockProvider) SubmitReview(ctx context.Context, sessionID int, in models.ReviewInput) (models.ReviewResult, error) {
	args := m.Called(ctx, sessionID, in)
	return args.Get(0).(models.ReviewResult), args.Error(1)
}

func (m *MockProvider) ResetHistory(ctx context.Context) (models.ResetResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ResetResult), args.Error(1)
}

func (m *MockProvider) ResetFull(ctx context.Context) (models.ResetResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ResetResult), args.Error(1)
}

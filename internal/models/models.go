// Package models defines the canonical entity shapes the portal renders.
// All entities are read-only projections fetched per view.
package models

import "math"

// Word is a vocabulary entry. Portuguese is the source-language text and
// English the target-language text.
type Word struct {
	ID           int    `json:"id"`
	Portuguese   string `json:"portuguese"`
	English      string `json:"english"`
	CorrectCount int    `json:"correct_count"`
	WrongCount   int    `json:"wrong_count"`
}

// WordStats mirrors the counters of a word.
type WordStats struct {
	CorrectCount int `json:"correct_count"`
	WrongCount   int `json:"wrong_count"`
}

// GroupRef is the group summary embedded in a WordDetail.
type GroupRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// WordDetail extends Word with its stats and the groups it belongs to.
type WordDetail struct {
	Word
	Stats  WordStats  `json:"stats"`
	Groups []GroupRef `json:"groups"`
}

// WordInput is the body of create/update word calls.
type WordInput struct {
	Portuguese string `json:"portuguese,omitempty"`
	English    string `json:"english,omitempty"`
}

// Group is a named collection of words. WordCount is denormalized and
// recomputed server-side.
type Group struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	WordCount int    `json:"word_count"`
}

// GroupStats holds aggregate numbers for one group.
type GroupStats struct {
	TotalWordCount int `json:"total_word_count"`
}

// GroupDetail is the single-group view.
type GroupDetail struct {
	ID    int        `json:"id"`
	Name  string     `json:"name"`
	Stats GroupStats `json:"stats"`
}

// GroupInput is the body of create/update group calls.
type GroupInput struct {
	Name string `json:"name"`
}

// StudyActivity is a launchable learning activity.
type StudyActivity struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnail_url"`
	Description  string `json:"description"`
}

// StudySession is one run of an activity against a group. Times are
// ISO-8601 strings as exchanged with the backend.
type StudySession struct {
	ID               int    `json:"id"`
	ActivityName     string `json:"activity_name"`
	GroupName        string `json:"group_name"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	ReviewItemsCount int    `json:"review_items_count"`
}

// StudySessionDetail has the same shape as StudySession.
type StudySessionDetail = StudySession

// LastStudySession is the dashboard projection of the most recent session.
type LastStudySession struct {
	ID              int    `json:"id"`
	GroupID         int    `json:"group_id"`
	CreatedAt       string `json:"created_at"`
	StudyActivityID int    `json:"study_activity_id"`
	GroupName       string `json:"group_name"`
}

// StudyProgress counts studied words against all available words.
type StudyProgress struct {
	TotalWordsStudied   int `json:"total_words_studied"`
	TotalAvailableWords int `json:"total_available_words"`
}

// Percent returns the studied share rounded to a whole percentage.
func (p StudyProgress) Percent() int {
	if p.TotalAvailableWords <= 0 {
		return 0
	}
	return int(math.Round(float64(p.TotalWordsStudied) / float64(p.TotalAvailableWords) * 100))
}

// QuickStats are the dashboard counters. Each defaults to 0 independently.
type QuickStats struct {
	SuccessRate        float64 `json:"success_rate"`
	TotalStudySessions int     `json:"total_study_sessions"`
	TotalActiveGroups  int     `json:"total_active_groups"`
	StudyStreakDays    int     `json:"study_streak_days"`
}

// Mastery is the dashboard's mastery estimate: half the success rate.
func (s QuickStats) Mastery() int {
	return int(math.Round(s.SuccessRate / 2))
}

// LaunchResult is returned when an activity is launched for a group.
type LaunchResult struct {
	ID      int `json:"id"`
	GroupID int `json:"group_id"`
}

// ResetResult is returned by the reset endpoints.
type ResetResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ReviewResult is returned when an answer is submitted.
type ReviewResult struct {
	Success bool `json:"success"`
}

// ReviewInput is the body of a submit call.
type ReviewInput struct {
	WordID  int  `json:"word_id"`
	Correct bool `json:"correct"`
}

// LaunchInput is the body of a launch call.
type LaunchInput struct {
	StudyActivityID int `json:"study_activity_id"`
	GroupID         int `json:"group_id"`
}

package ui

import (
	"fmt"
	"strconv"

	"grimm.is/langportal/internal/models"
)

// Empty-state messages
const (
	EmptyWords      = "No words available"
	EmptyGroups     = "No groups available"
	EmptySessions   = "No study sessions found"
	EmptyActivities = "No study activities available"
)

// EmptyWordsMatching is the Words empty state while a search is active.
func EmptyWordsMatching(query string) string {
	return fmt.Sprintf("No words found matching %q", query)
}

// WordsTable lists words with their review counters.
func WordsTable() Table[models.Word] {
	return Table[models.Word]{
		Title: "Words",
		Columns: []Column[models.Word]{
			{Header: "Portuguese", Field: "portuguese", Style: StyleBold, Width: 20},
			{Header: "English", Field: "english", Width: 20},
			{Header: "Correct", Field: "correct_count", Style: StyleSuccess, Width: 8},
			{Header: "Wrong", Field: "wrong_count", Style: StyleDanger, Width: 8},
		},
		Key:       func(w models.Word) string { return strconv.Itoa(w.ID) },
		EmptyText: EmptyWords,
	}
}

// GroupsTable lists word groups.
func GroupsTable() Table[models.Group] {
	return Table[models.Group]{
		Title: "Word Groups",
		Columns: []Column[models.Group]{
			{Header: "Name", Field: "name", Style: StyleBold, Width: 28},
			{Header: "Words", Field: "word_count", Width: 8},
		},
		Key:       func(g models.Group) string { return strconv.Itoa(g.ID) },
		EmptyText: EmptyGroups,
	}
}

// SessionsTable lists study sessions. when formats a timestamp; nil shows
// it verbatim.
func SessionsTable(when func(string) string) Table[models.StudySession] {
	if when == nil {
		when = func(s string) string { return s }
	}
	return Table[models.StudySession]{
		Title: "Study Sessions",
		Columns: []Column[models.StudySession]{
			{Header: "ID", Field: "id", Style: StyleMuted, Width: 6},
			{Header: "Activity", Field: "activity_name", Style: StyleBold, Width: 20},
			{Header: "Group", Field: "group_name", Width: 18},
			{Header: "Start", Value: func(s models.StudySession) string { return when(s.StartTime) }, Width: 20},
			{Header: "End", Value: func(s models.StudySession) string { return when(s.EndTime) }, Width: 20},
			{Header: "Items", Field: "review_items_count", Width: 6},
		},
		Key:       func(s models.StudySession) string { return strconv.Itoa(s.ID) },
		EmptyText: EmptySessions,
	}
}

// ActivitiesTable lists study activities.
func ActivitiesTable() Table[models.StudyActivity] {
	return Table[models.StudyActivity]{
		Title: "Study Activities",
		Columns: []Column[models.StudyActivity]{
			{Header: "ID", Field: "id", Style: StyleMuted, Width: 4},
			{Header: "Name", Field: "name", Style: StyleBold, Width: 22},
			{Header: "Description", Field: "description", Width: 50},
		},
		Key:       func(a models.StudyActivity) string { return strconv.Itoa(a.ID) },
		EmptyText: EmptyActivities,
	}
}

// GroupRefsTable lists the groups a word belongs to.
func GroupRefsTable() Table[models.GroupRef] {
	return Table[models.GroupRef]{
		Title: "Groups",
		Columns: []Column[models.GroupRef]{
			{Header: "ID", Field: "id", Style: StyleMuted, Width: 4},
			{Header: "Name", Field: "name", Width: 28},
		},
		Key:       func(g models.GroupRef) string { return strconv.Itoa(g.ID) },
		EmptyText: "Not in any group",
	}
}

// Field is one labelled value of a detail page.
type Field struct {
	Label string
	Value string
	Style Style
}

// WordFields describes a word detail.
func WordFields(w models.WordDetail) []Field {
	return []Field{
		{Label: "Portuguese", Value: w.Portuguese, Style: StyleBold},
		{Label: "English", Value: w.English},
		{Label: "Correct", Value: strconv.Itoa(w.Stats.CorrectCount), Style: StyleSuccess},
		{Label: "Wrong", Value: strconv.Itoa(w.Stats.WrongCount), Style: StyleDanger},
	}
}

// GroupFields describes a group detail.
func GroupFields(g models.GroupDetail) []Field {
	return []Field{
		{Label: "Name", Value: g.Name, Style: StyleBold},
		{Label: "Total words", Value: strconv.Itoa(g.Stats.TotalWordCount)},
	}
}

// SessionFields describes a session detail.
func SessionFields(s models.StudySessionDetail, when func(string) string) []Field {
	if when == nil {
		when = func(s string) string { return s }
	}
	return []Field{
		{Label: "Activity", Value: s.ActivityName, Style: StyleBold},
		{Label: "Group", Value: s.GroupName},
		{Label: "Started", Value: when(s.StartTime)},
		{Label: "Ended", Value: when(s.EndTime)},
		{Label: "Review items", Value: strconv.Itoa(s.ReviewItemsCount)},
	}
}

// ActivityFields describes an activity detail.
func ActivityFields(a models.StudyActivity) []Field {
	return []Field{
		{Label: "Name", Value: a.Name, Style: StyleBold},
		{Label: "Description", Value: a.Description},
		{Label: "Thumbnail", Value: a.ThumbnailURL, Style: StyleMuted},
	}
}

package normalize

import (
	"grimm.is/langportal/internal/clock"
	"grimm.is/langportal/internal/models"
)

// Fallback values shown when the backend omits a field.
const (
	UnknownActivity      = "Unknown Activity"
	UnknownGroup         = "Unknown Group"
	NoDescription        = "No description available"
	PlaceholderThumbnail = "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d"
)

var Activity = &Schema{
	Name: "study activity",
	Fields: []Field{
		{Name: "id", Kind: Int},
		{Name: "name", Kind: String, Default: UnknownActivity},
		{Name: "thumbnail_url", Kind: String, Default: PlaceholderThumbnail},
		{Name: "description", Kind: String, Default: NoDescription},
	},
}

var Session = &Schema{
	Name: "study session",
	Fields: []Field{
		{Name: "id", Kind: Int},
		{Name: "activity_name", Kind: String, Default: UnknownActivity},
		{Name: "group_name", Kind: String, Default: UnknownGroup},
		{Name: "start_time", Kind: String, From: []string{"created_at"}, Now: true},
		{Name: "end_time", Kind: String, Now: true},
		{Name: "review_items_count", Kind: Int},
	},
}

var LastSession = &Schema{
	Name: "last study session",
	Fields: []Field{
		{Name: "id", Kind: Int},
		{Name: "group_id", Kind: Int},
		{Name: "created_at", Kind: String, Now: true},
		{Name: "study_activity_id", Kind: Int},
		{Name: "group_name", Kind: String, Default: UnknownGroup},
	},
}

var StudyProgress = &Schema{
	Name: "study progress",
	Fields: []Field{
		{Name: "total_words_studied", Kind: Int},
		{Name: "total_available_words", Kind: Int},
	},
}

var QuickStats = &Schema{
	Name: "quick stats",
	Fields: []Field{
		{Name: "success_rate", Kind: Float},
		{Name: "total_study_sessions", Kind: Int},
		{Name: "total_active_groups", Kind: Int},
		{Name: "study_streak_days", Kind: Int},
	},
}

var Word = &Schema{
	Name: "word",
	Fields: []Field{
		{Name: "id", Kind: Int},
		{Name: "portuguese", Kind: String},
		{Name: "english", Kind: String},
		{Name: "correct_count", Kind: Int},
		{Name: "wrong_count", Kind: Int},
	},
}

var groupRef = &Schema{
	Name: "group summary",
	Fields: []Field{
		{Name: "id", Kind: Int},
		{Name: "name", Kind: String, Default: UnknownGroup},
	},
}

var WordDetail = &Schema{
	Name: "word detail",
	Fields: append(append([]Field{}, Word.Fields...),
		Field{Name: "stats", Kind: Object, Schema: &Schema{
			Name: "word stats",
			Fields: []Field{
				{Name: "correct_count", Kind: Int},
				{Name: "wrong_count", Kind: Int},
			},
		}},
		Field{Name: "groups", Kind: List, Elem: groupRef},
	),
}

var Group = &Schema{
	Name: "group",
	Fields: []Field{
		{Name: "id", Kind: Int},
		{Name: "name", Kind: String, Default: UnknownGroup},
		{Name: "word_count", Kind: Int, From: []string{"words_count"}},
	},
}

var GroupDetail = &Schema{
	Name: "group detail",
	Fields: []Field{
		{Name: "id", Kind: Int},
		{Name: "name", Kind: String, Default: UnknownGroup},
		{Name: "stats", Kind: Object, Schema: &Schema{
			Name: "group stats",
			Fields: []Field{
				{Name: "total_word_count", Kind: Int},
			},
		}},
	},
}

var Pagination = &Schema{
	Name: "pagination",
	Fields: []Field{
		{Name: "current_page", Kind: Int, Default: float64(1)},
		{Name: "total_pages", Kind: Int, Default: float64(1)},
		{Name: "total_items", Kind: Int},
		{Name: "items_per_page", Kind: Int},
	},
}

var LaunchResult = &Schema{
	Name: "launch result",
	Fields: []Field{
		{Name: "id", Kind: Int, From: []string{"study_session_id", "session_id"}},
		{Name: "group_id", Kind: Int},
	},
}

var ResetResult = &Schema{
	Name: "reset result",
	Fields: []Field{
		{Name: "success", Kind: Bool},
		{Name: "message", Kind: String},
	},
}

var ReviewResult = &Schema{
	Name: "review result",
	Fields: []Field{
		{Name: "success", Kind: Bool},
	},
}

// DecodePage normalizes a list envelope {items, pagination}. Items are
// normalized with item. A missing pagination block describes a single page
// holding every item; a bare array is accepted the same way.
func DecodePage[T any](item *Schema, raw any, c clock.Clock) (models.Page[T], error) {
	var page models.Page[T]

	itemsRaw := raw
	var pagRaw map[string]any
	if m, ok := raw.(map[string]any); ok {
		itemsRaw = m["items"]
		pagRaw, _ = m["pagination"].(map[string]any)
	}

	items, err := DecodeList[T](item, itemsRaw, c)
	if err != nil {
		return page, err
	}

	if pagRaw == nil {
		return models.Single(items), nil
	}

	pag, err := Decode[models.Pagination](Pagination, pagRaw, c)
	if err != nil {
		return page, err
	}
	pag.TotalPages = max(pag.TotalPages, 1)
	pag.CurrentPage = max(1, min(pag.CurrentPage, pag.TotalPages))

	page.Items = items
	page.Pagination = pag
	return page, nil
}

package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/langportal/internal/clock"
	"grimm.is/langportal/internal/models"
)

var fixed = clock.NewMockClock(time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC))

const fixedISO = "2025-03-04T05:06:07Z"

func mustJSON(t *testing.T, s string) any {
	t.Helper()
	v, err := Unmarshal([]byte(s))
	require.NoError(t, err)
	return v
}

func TestActivityDefaults(t *testing.T) {
	a, err := Decode[models.StudyActivity](Activity, mustJSON(t, `{"id": 7}`), fixed)
	require.NoError(t, err)

	assert.Equal(t, models.StudyActivity{
		ID:           7,
		Name:         "Unknown Activity",
		ThumbnailURL: PlaceholderThumbnail,
		Description:  "No description available",
	}, a)
}

func TestApplyKeepsOnlySchemaFields(t *testing.T) {
	out := Activity.Apply(map[string]any{"id": float64(1), "extra": "x"}, fixed)
	assert.Len(t, out, 4)
	assert.NotContains(t, out, "extra")
}

func TestFalsyValuesAreAbsent(t *testing.T) {
	raw := map[string]any{
		"id":            float64(3),
		"name":          "",
		"thumbnail_url": nil,
		"description":   "Flashcards",
	}
	out := Activity.Apply(raw, fixed)

	assert.Equal(t, UnknownActivity, out["name"])
	assert.Equal(t, PlaceholderThumbnail, out["thumbnail_url"])
	assert.Equal(t, "Flashcards", out["description"])
	// raw untouched
	assert.Equal(t, "", raw["name"])
}

func TestWrongKindIsAbsent(t *testing.T) {
	out := QuickStats.Apply(map[string]any{
		"success_rate":         "80",
		"total_study_sessions": 1.5,
		"total_active_groups":  float64(2),
	}, fixed)

	assert.Equal(t, float64(0), out["success_rate"])
	assert.Equal(t, float64(0), out["total_study_sessions"])
	assert.Equal(t, float64(2), out["total_active_groups"])
	assert.Equal(t, float64(0), out["study_streak_days"])
}

func TestIntOutOfRangeIsAbsent(t *testing.T) {
	raw := mustJSON(t, `{"items":[{"id":1e20,"portuguese":"olá"},{"id":2,"correct_count":-1e300}]}`)
	p, err := DecodePage[models.Word](Word, raw, fixed)
	require.NoError(t, err)

	require.Len(t, p.Items, 2)
	assert.Equal(t, 0, p.Items[0].ID)
	assert.Equal(t, "olá", p.Items[0].Portuguese)
	assert.Equal(t, 2, p.Items[1].ID)
	assert.Equal(t, 0, p.Items[1].CorrectCount)
}

func TestSessionTimestamps(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantStart string
		wantEnd   string
	}{
		{"both present", `{"start_time":"2025-01-01T10:00:00Z","end_time":"2025-01-01T11:00:00Z"}`, "2025-01-01T10:00:00Z", "2025-01-01T11:00:00Z"},
		{"created_at alias", `{"created_at":"2025-01-02T10:00:00Z"}`, "2025-01-02T10:00:00Z", fixedISO},
		{"start wins over alias", `{"start_time":"A","created_at":"B"}`, "A", fixedISO},
		{"nothing", `{}`, fixedISO, fixedISO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode[models.StudySession](Session, mustJSON(t, tt.raw), fixed)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, s.StartTime)
			assert.Equal(t, tt.wantEnd, s.EndTime)
			assert.Equal(t, UnknownActivity, s.ActivityName)
			assert.Equal(t, UnknownGroup, s.GroupName)
		})
	}
}

func TestLastSession(t *testing.T) {
	s, err := Decode[models.LastStudySession](LastSession, mustJSON(t, `{"id":123,"group_id":456,"study_activity_id":789}`), fixed)
	require.NoError(t, err)
	assert.Equal(t, models.LastStudySession{
		ID: 123, GroupID: 456, CreatedAt: fixedISO, StudyActivityID: 789, GroupName: UnknownGroup,
	}, s)
}

func TestNestedObjectsAndLists(t *testing.T) {
	raw := mustJSON(t, `{
		"id": 1, "portuguese": "olá", "english": "hello",
		"groups": [{"id": 1, "name": "Basic Greetings"}, "bogus", {"id": 2}]
	}`)
	w, err := Decode[models.WordDetail](WordDetail, raw, fixed)
	require.NoError(t, err)

	assert.Equal(t, "olá", w.Portuguese)
	assert.Equal(t, models.WordStats{}, w.Stats)
	require.Len(t, w.Groups, 2)
	assert.Equal(t, "Basic Greetings", w.Groups[0].Name)
	assert.Equal(t, UnknownGroup, w.Groups[1].Name)

	g, err := Decode[models.GroupDetail](GroupDetail, mustJSON(t, `{"id":4,"stats":"nope"}`), fixed)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Stats.TotalWordCount)
	assert.Equal(t, UnknownGroup, g.Name)
}

func TestDecodeNonObject(t *testing.T) {
	s, err := Decode[models.QuickStats](QuickStats, nil, fixed)
	require.NoError(t, err)
	assert.Equal(t, models.QuickStats{}, s)

	list, err := DecodeList[models.StudyActivity](Activity, "not a list", fixed)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDecodePage(t *testing.T) {
	t.Run("envelope", func(t *testing.T) {
		raw := mustJSON(t, `{
			"items": [{"id": 1, "name": "A", "word_count": 3}, {"id": 2, "words_count": 5}],
			"pagination": {"current_page": 2, "total_pages": 3, "total_items": 25, "items_per_page": 10}
		}`)
		p, err := DecodePage[models.Group](Group, raw, fixed)
		require.NoError(t, err)

		require.Len(t, p.Items, 2)
		assert.Equal(t, 3, p.Items[0].WordCount)
		assert.Equal(t, 5, p.Items[1].WordCount)
		assert.Equal(t, UnknownGroup, p.Items[1].Name)
		assert.Equal(t, models.Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 25, ItemsPerPage: 10}, p.Pagination)
	})

	t.Run("missing pagination", func(t *testing.T) {
		p, err := DecodePage[models.Word](Word, mustJSON(t, `{"items":[{"id":1},{"id":2}]}`), fixed)
		require.NoError(t, err)
		assert.Equal(t, models.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 2, ItemsPerPage: 2}, p.Pagination)
	})

	t.Run("empty pagination block", func(t *testing.T) {
		p, err := DecodePage[models.Word](Word, mustJSON(t, `{"items":[],"pagination":{}}`), fixed)
		require.NoError(t, err)
		assert.Empty(t, p.Items)
		assert.Equal(t, 1, p.Pagination.CurrentPage)
		assert.Equal(t, 1, p.Pagination.TotalPages)
		assert.True(t, p.Pagination.Valid())
	})

	t.Run("current page past the end", func(t *testing.T) {
		p, err := DecodePage[models.Word](Word, mustJSON(t, `{"items":[],"pagination":{"current_page":7,"total_pages":3}}`), fixed)
		require.NoError(t, err)
		assert.Equal(t, 3, p.Pagination.CurrentPage)
		assert.Equal(t, 3, p.Pagination.TotalPages)
		assert.True(t, p.Pagination.Valid())
	})

	t.Run("negative pages", func(t *testing.T) {
		p, err := DecodePage[models.Word](Word, mustJSON(t, `{"items":[],"pagination":{"current_page":-2,"total_pages":-5}}`), fixed)
		require.NoError(t, err)
		assert.Equal(t, models.Pagination{CurrentPage: 1, TotalPages: 1}, p.Pagination)
	})

	t.Run("bare array", func(t *testing.T) {
		p, err := DecodePage[models.Word](Word, mustJSON(t, `[{"id":9}]`), fixed)
		require.NoError(t, err)
		require.Len(t, p.Items, 1)
		assert.Equal(t, 9, p.Items[0].ID)
	})
}

func TestUnmarshal(t *testing.T) {
	v, err := Unmarshal(nil)
	assert.NoError(t, err)
	assert.Nil(t, v)

	_, err = Unmarshal([]byte("{"))
	assert.Error(t, err)
}

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/langportal/internal/models"
	"grimm.is/langportal/internal/ui"
)

var words = []models.Word{
	{ID: 1, Portuguese: "olá", English: "hello", CorrectCount: 5, WrongCount: 2},
	{ID: 2, Portuguese: "adeus", English: "goodbye", CorrectCount: 3, WrongCount: 1},
	{ID: 3, Portuguese: "obrigado", English: "thank you", CorrectCount: 7},
}

func TestRenderViewModes(t *testing.T) {
	r := NewRenderer(100)

	populated := r.RenderView(ui.Project(ui.WordsTable(), words, false))
	assert.Contains(t, populated, "olá")
	assert.Contains(t, populated, "thank you")
	assert.Contains(t, populated, "Portuguese")

	empty := r.RenderView(ui.Project(ui.WordsTable(), nil, false))
	assert.Contains(t, empty, ui.EmptyWords)
	assert.NotContains(t, empty, "Portuguese")
	assert.NotContains(t, empty, "English")

	loading := r.RenderView(ui.Project(ui.WordsTable(), words, true))
	assert.Contains(t, loading, "░")
	assert.NotContains(t, loading, "olá")
}

func TestRenderPager(t *testing.T) {
	r := NewRenderer(100)

	assert.Empty(t, r.RenderPager(models.Pagination{CurrentPage: 1, TotalPages: 1}))
	assert.Empty(t, r.RenderPager(models.Pagination{}))

	out := r.RenderPager(models.Pagination{CurrentPage: 5, TotalPages: 10})
	for _, want := range []string{"Prev", "1", "4", "5", "6", "10", "…", "Next"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, " 3 ")
}

func TestRenderFields(t *testing.T) {
	r := NewRenderer(80)
	out := r.RenderFields("Word", ui.WordFields(models.WordDetail{
		Word:  models.Word{Portuguese: "olá", English: "hello"},
		Stats: models.WordStats{CorrectCount: 5},
	}))
	assert.Contains(t, out, "Portuguese:")
	assert.Contains(t, out, "olá")
	assert.Contains(t, out, "5")
}

func TestRenderMenu(t *testing.T) {
	out := NewRenderer(80).RenderMenu(ui.MainMenu(), ui.MenuWords)
	assert.Contains(t, out, "[3]")
	assert.Contains(t, out, "Study Sessions")
	assert.Contains(t, out, Icon("book"))
	assert.Equal(t, 1, strings.Count(out, "\n")+1, "menu is a single bar")
	assert.Equal(t, "•", Icon("unknown"))
}

func TestRenderTitle(t *testing.T) {
	r := NewRenderer(80)
	assert.Contains(t, r.RenderTitle("play", "Launch Adventure MUD"), "▶ Launch Adventure MUD")
	assert.Contains(t, r.RenderTitle("", "Plain"), "Plain")
}

func TestTableSelect(t *testing.T) {
	m := NewTable("words", 10)
	m.SetView(ui.Project(ui.WordsTable(), words, false))

	key, ok := m.SelectedKey()
	require.True(t, ok)
	assert.Equal(t, "1", key)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectedMsg{Table: "words", Key: "2"}, cmd())
}

func TestTableCursorFollowsKey(t *testing.T) {
	m := NewTable("words", 10)
	m.SetView(ui.Project(ui.WordsTable(), words, false))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	reordered := []models.Word{words[2], words[0], words[1]}
	m.SetView(ui.Project(ui.WordsTable(), reordered, false))

	key, ok := m.SelectedKey()
	require.True(t, ok)
	assert.Equal(t, "3", key)
}

func TestTableNoSelectionWhileLoadingOrEmpty(t *testing.T) {
	m := NewTable("words", 10)

	m.SetView(ui.Project(ui.WordsTable(), nil, true))
	_, ok := m.SelectedKey()
	assert.False(t, ok)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	m.SetView(ui.Project(ui.WordsTable(), nil, false))
	_, ok = m.SelectedKey()
	assert.False(t, ok)
	assert.True(t, strings.Contains(m.View(), ui.EmptyWords))
	assert.NotContains(t, m.View(), "Portuguese")
}

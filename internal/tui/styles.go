package tui

import "github.com/charmbracelet/lipgloss"

// Portal colour palette
var (
	ColorLeaf  = lipgloss.Color("#25A065") // accents, active items
	ColorDeep  = lipgloss.Color("#596E79") // secondary text, borders
	ColorDark  = lipgloss.Color("#1F2D27") // text on accent backgrounds
	ColorText  = lipgloss.Color("#E0E0E0") // primary text
	ColorAlert = lipgloss.Color("#FF6B6B") // errors, wrong answers
	ColorGood  = lipgloss.Color("#4ECDC4") // success, correct answers
	ColorWarn  = lipgloss.Color("#FFE66D") // mock mode badge
	ColorMuted = lipgloss.Color("#6c757d") // muted text
)

// Styles
var (
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorLeaf).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(ColorDeep).
			Padding(0, 1)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorLeaf).
			Bold(true)

	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorDeep).
			Italic(true)

	StyleStatusGood = lipgloss.NewStyle().Foreground(ColorGood).Bold(true)
	StyleStatusBad  = lipgloss.NewStyle().Foreground(ColorAlert).Bold(true)
	StyleStatusWarn = lipgloss.NewStyle().Foreground(ColorWarn).Bold(true)

	StyleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDeep).
			Padding(0, 1).
			Margin(0, 1)

	StyleInputPrompt      = lipgloss.NewStyle().Foreground(ColorLeaf)
	StyleInputPlaceholder = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleApp = lipgloss.NewStyle().Margin(1, 2)

	StyleTopBar = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(ColorDeep).
			Padding(0, 1).
			MarginBottom(1)

	StyleBadgeMock = lipgloss.NewStyle().
			Foreground(ColorDark).
			Background(ColorWarn).
			Bold(true).
			Padding(0, 1)

	StyleFooter = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)
)

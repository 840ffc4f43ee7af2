package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D")).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")).Bold(true)
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8D8EA"))
)

// Icon returns the marker shown in front of a notification of level.
func Icon(level string) string {
	switch level {
	case LevelError:
		return "✗"
	case LevelWarning:
		return "⚠"
	case LevelSuccess:
		return "✓"
	default:
		return "ℹ"
	}
}

// Style returns the lipgloss style for level.
func Style(level string) lipgloss.Style {
	switch level {
	case LevelError:
		return styleError
	case LevelWarning:
		return styleWarning
	case LevelSuccess:
		return styleSuccess
	default:
		return styleInfo
	}
}

// Render formats n as a single styled line.
func Render(n Notification) string {
	return Style(n.Level).Render(Icon(n.Level) + " " + n.Message)
}

// Writer prints notifications as they arrive. The CLI uses it on stderr.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates a Writer printing to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Notify(level, message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, Render(Notification{Level: level, Message: message}))
}

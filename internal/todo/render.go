package todo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Render formats items for terminal display with 1-based numbering.
func Render(items []Item) string {
	if len(items) == 0 {
		return pendingStyle.Render("📝 No todos found!")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("📋 Your todos:"))
	b.WriteByte('\n')
	for i, it := range items {
		if it.Done {
			fmt.Fprintf(&b, "  %d. %s %s\n", i+1, doneStyle.Render("✓"), faintStyle.Render(it.Task))
		} else {
			fmt.Fprintf(&b, "  %d. %s %s\n", i+1, pendingStyle.Render("○"), it.Task)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderPlain formats items without styling, used for tool results where the
// output goes back to the model rather than a terminal.
func RenderPlain(items []Item) string {
	if len(items) == 0 {
		return "📝 No todos found!"
	}

	lines := []string{"📋 Your todos:"}
	for i, it := range items {
		if it.Done {
			lines = append(lines, fmt.Sprintf("  %d. ✓ ~~%s~~", i+1, it.Task))
		} else {
			lines = append(lines, fmt.Sprintf("  %d. ○ %s", i+1, it.Task))
		}
	}
	return strings.Join(lines, "\n")
}

// Styled helpers for the CLI's one-line confirmations.

// StyleAdded renders the confirmation for a newly added task.
func StyleAdded(task string) string {
	return "✅ Added: " + doneStyle.Render(task)
}

// StyleCompleted renders the confirmation for a completed task.
func StyleCompleted(task string) string {
	return "🎉 Completed: " + doneStyle.Render(task)
}

// StyleError renders an error line.
func StyleError(msg string) string {
	return errStyle.Render(msg)
}

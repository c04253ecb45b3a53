package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"pomotrack/internal/domain"
)

var (
	checkedStyle  = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	archivedStyle = lipgloss.NewStyle().Faint(true)
	runningStyle  = lipgloss.NewStyle().Bold(true)
)

// renderTags formats a tag list, coloring each name when color output is on
func (a *App) renderTags(tags []*domain.Tag) string {
	if len(tags) == 0 {
		return ""
	}

	parts := make([]string, len(tags))
	for i, tag := range tags {
		if a.config.Display.Color {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color))
			parts[i] = style.Render("#" + tag.Name)
		} else {
			parts[i] = "#" + tag.Name
		}
	}
	return strings.Join(parts, " ")
}

// renderTaskLine formats one task for the list view
func (a *App) renderTaskLine(task *domain.Task, tags []*domain.Tag) string {
	box := "[ ]"
	if task.IsCompleted() {
		box = "[x]"
	}

	line := fmt.Sprintf("%3d. %s %s", task.Position, box, task.Name)
	if a.config.Display.Color {
		switch {
		case task.IsArchived():
			line = archivedStyle.Render(line)
		case task.IsCompleted():
			line = checkedStyle.Render(line)
		}
	}
	if task.IsArchived() {
		line += " (archived)"
	}

	if tagText := a.renderTags(tags); tagText != "" {
		line += "  " + tagText
	}
	return line
}

// renderClock formats a duration as mm:ss or h:mm:ss for timer output
func renderClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// formatTimestamp renders a time using the configured display format
func (a *App) formatTimestamp(t time.Time) string {
	if a.config.Display.DateOnly {
		return t.Format("2006-01-02")
	}
	return t.Format(a.config.Display.TimeFormat)
}

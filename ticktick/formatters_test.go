package ticktick_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-ticktick-mcp/ticktick"
)

func TestFormatTask(t *testing.T) {
	t.Run("full task", func(t *testing.T) {
		formatted := ticktick.FormatTask(ticktick.Task{
			ID:        "task-1",
			ProjectID: "proj-1",
			Title:     "Write report",
			Content:   "Quarterly numbers",
			DueDate:   "2026-09-01T09:00:00+0000",
			Priority:  ticktick.PriorityHigh,
			Status:    ticktick.StatusActive,
			Items: []ticktick.ChecklistItem{
				{Title: "Draft", Status: 1},
				{Title: "Review", Status: 0},
			},
		})

		require.Contains(t, formatted, "Title: Write report")
		require.Contains(t, formatted, "Priority: High")
		require.Contains(t, formatted, "Status: Active")
		require.Contains(t, formatted, "Due: 2026-09-01T09:00:00+0000")
		require.Contains(t, formatted, "  [x] Draft")
		require.Contains(t, formatted, "  [ ] Review")
	})

	t.Run("unknown priority falls back to the number", func(t *testing.T) {
		formatted := ticktick.FormatTask(ticktick.Task{Title: "x", Priority: 4})
		require.Contains(t, formatted, "Priority: 4")
	})
}

func TestFormatTaskList(t *testing.T) {
	require.Equal(t, "No tasks found.", ticktick.FormatTaskList(nil))

	formatted := ticktick.FormatTaskList([]ticktick.Task{
		{Title: "One", ID: "1"},
		{Title: "Two", ID: "2"},
	})
	require.Contains(t, formatted, "\n---\n")
	require.Contains(t, formatted, "Title: One")
	require.Contains(t, formatted, "Title: Two")
}

func TestFormatProject(t *testing.T) {
	formatted := ticktick.FormatProject(ticktick.Project{
		ID:       "proj-1",
		Name:     "Inbox",
		Color:    "#ff0000",
		ViewMode: "kanban",
		Closed:   true,
	})
	require.Contains(t, formatted, "Name: Inbox")
	require.Contains(t, formatted, "Color: #ff0000")
	require.Contains(t, formatted, "View Mode: kanban")
	require.Contains(t, formatted, "Closed: true")

	require.Equal(t, "No projects found.", ticktick.FormatProjectList(nil))
}

func TestParseTime(t *testing.T) {
	for _, value := range []string{
		"2026-08-29T10:30:00Z",
		"2026-08-29T10:30:00.000+0000",
		"2026-08-29T10:30:00+0000",
	} {
		parsed, err := ticktick.ParseTime(value)
		require.NoError(t, err, value)
		require.Equal(t, time.August, parsed.Month())
	}

	_, err := ticktick.ParseTime("yesterday")
	require.Error(t, err)
}

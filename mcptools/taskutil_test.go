package mcptools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-ticktick-mcp/ticktick"
)

var noon = time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

func TestIsDueOnDate(t *testing.T) {
	task := func(due string) ticktick.Task { return ticktick.Task{DueDate: due} }

	require.True(t, isDueOnDate(task("2026-08-29T08:00:00Z"), noon))
	require.True(t, isDueOnDate(task("2026-08-29T23:59:59Z"), noon))
	require.False(t, isDueOnDate(task("2026-08-30T00:00:00Z"), noon))
	require.False(t, isDueOnDate(task("2026-08-28T23:59:59Z"), noon))
	require.False(t, isDueOnDate(task(""), noon))
	require.False(t, isDueOnDate(task("not a date"), noon))
}

func TestIsOverdue(t *testing.T) {
	require.True(t, isOverdue(ticktick.Task{DueDate: "2026-08-28T10:00:00Z"}, noon))
	require.False(t, isOverdue(ticktick.Task{DueDate: "2026-08-29T10:00:00Z"}, noon))
	require.False(t, isOverdue(ticktick.Task{
		DueDate: "2026-08-28T10:00:00Z",
		Status:  ticktick.StatusCompleted,
	}, noon))
	require.False(t, isOverdue(ticktick.Task{}, noon))
}

func TestIsEngaged(t *testing.T) {
	require.True(t, isEngaged(ticktick.Task{Priority: ticktick.PriorityHigh}, noon))
	require.True(t, isEngaged(ticktick.Task{DueDate: "2026-08-29T18:00:00Z"}, noon), "due today")
	require.True(t, isEngaged(ticktick.Task{DueDate: "2026-08-01T00:00:00Z"}, noon), "overdue")
	require.False(t, isEngaged(ticktick.Task{DueDate: "2026-08-30T00:00:00Z"}, noon), "due tomorrow")
	require.False(t, isEngaged(ticktick.Task{Priority: ticktick.PriorityHigh, Status: ticktick.StatusCompleted}, noon))
	require.False(t, isEngaged(ticktick.Task{}, noon))
}

func TestIsNext(t *testing.T) {
	require.True(t, isNext(ticktick.Task{Priority: ticktick.PriorityMedium}, noon))
	require.True(t, isNext(ticktick.Task{DueDate: "2026-08-30T09:00:00Z"}, noon), "due tomorrow")
	require.False(t, isNext(ticktick.Task{DueDate: "2026-08-29T09:00:00Z"}, noon), "due today")
	require.False(t, isNext(ticktick.Task{Priority: ticktick.PriorityMedium, Status: ticktick.StatusCompleted}, noon))
}

func TestMatchesSearch(t *testing.T) {
	task := ticktick.Task{
		Title:   "Plan Trip",
		Content: "Book flights",
		Items:   []ticktick.ChecklistItem{{Title: "Reserve Hotel"}},
	}

	require.True(t, matchesSearch(task, "trip"))
	require.True(t, matchesSearch(task, "flights"))
	require.True(t, matchesSearch(task, "hotel"))
	require.False(t, matchesSearch(task, "groceries"))
}

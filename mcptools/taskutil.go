package mcptools

import (
	"context"
	"time"

	"github.com/jrsteele09/go-ticktick-mcp/ticktick"
)

// getAllTasks collects the tasks of every non-closed project.
func getAllTasks(ctx context.Context, client *ticktick.Client) ([]ticktick.Task, error) {
	projects, err := client.GetProjects(ctx)
	if err != nil {
		return nil, err
	}

	var allTasks []ticktick.Task
	for _, project := range projects {
		if project.Closed {
			continue
		}
		data, err := client.GetProjectData(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		allTasks = append(allTasks, data.Tasks...)
	}
	return allTasks, nil
}

func filterTasks(tasks []ticktick.Task, predicate func(ticktick.Task) bool) []ticktick.Task {
	var matched []ticktick.Task
	for _, task := range tasks {
		if predicate(task) {
			matched = append(matched, task)
		}
	}
	return matched
}

func startOfDayUTC(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}

// dueTime parses a task's due date. The zero time means no due date or
// an unparseable one.
func dueTime(task ticktick.Task) time.Time {
	if task.DueDate == "" {
		return time.Time{}
	}
	due, err := ticktick.ParseTime(task.DueDate)
	if err != nil {
		return time.Time{}
	}
	return due
}

// isDueOnDate reports whether a task's due date falls within the UTC
// day containing target.
func isDueOnDate(task ticktick.Task, target time.Time) bool {
	due := dueTime(task)
	if due.IsZero() {
		return false
	}
	dayStart := startOfDayUTC(target)
	dayEnd := dayStart.AddDate(0, 0, 1)
	return !due.Before(dayStart) && due.Before(dayEnd)
}

// isDueInRange reports whether a task's due date falls in [start, end).
func isDueInRange(task ticktick.Task, start, end time.Time) bool {
	due := dueTime(task)
	if due.IsZero() {
		return false
	}
	return !due.Before(start) && due.Before(end)
}

// isOverdue reports whether an uncompleted task's due date is before
// the start of today (UTC).
func isOverdue(task ticktick.Task, now time.Time) bool {
	if task.Status == ticktick.StatusCompleted {
		return false
	}
	due := dueTime(task)
	if due.IsZero() {
		return false
	}
	return due.Before(startOfDayUTC(now))
}

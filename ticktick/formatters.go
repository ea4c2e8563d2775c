package ticktick

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var priorityLabels = map[int]string{
	PriorityNone:   "None",
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
}

var statusLabels = map[int]string{
	StatusActive:    "Active",
	StatusCompleted: "Completed",
}

func PriorityLabel(priority int) string {
	if label, ok := priorityLabels[priority]; ok {
		return label
	}
	return strconv.Itoa(priority)
}

func StatusLabel(status int) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return strconv.Itoa(status)
}

// FormatTask renders a task as the plain-text block the MCP tools
// return to the model.
func FormatTask(task Task) string {
	lines := []string{
		"Title: " + task.Title,
		"ID: " + task.ID,
		"Project ID: " + task.ProjectID,
		"Priority: " + PriorityLabel(task.Priority),
		"Status: " + StatusLabel(task.Status),
	}
	if task.Content != "" {
		lines = append(lines, "Content: "+task.Content)
	}
	if task.DueDate != "" {
		lines = append(lines, "Due: "+task.DueDate)
	}
	if task.StartDate != "" {
		lines = append(lines, "Start: "+task.StartDate)
	}
	if task.ParentID != "" {
		lines = append(lines, "Parent ID: "+task.ParentID)
	}
	if len(task.Items) > 0 {
		lines = append(lines, "Checklist:")
		for _, item := range task.Items {
			check := "[ ]"
			if item.Status == 1 {
				check = "[x]"
			}
			lines = append(lines, fmt.Sprintf("  %s %s", check, item.Title))
		}
	}
	return strings.Join(lines, "\n")
}

func FormatTaskList(tasks []Task) string {
	if len(tasks) == 0 {
		return "No tasks found."
	}
	blocks := make([]string, 0, len(tasks))
	for _, task := range tasks {
		blocks = append(blocks, FormatTask(task))
	}
	return strings.Join(blocks, "\n---\n")
}

func FormatProject(project Project) string {
	lines := []string{
		"Name: " + project.Name,
		"ID: " + project.ID,
	}
	if project.Color != "" {
		lines = append(lines, "Color: "+project.Color)
	}
	if project.ViewMode != "" {
		lines = append(lines, "View Mode: "+project.ViewMode)
	}
	if project.Kind != "" {
		lines = append(lines, "Kind: "+project.Kind)
	}
	if project.Closed {
		lines = append(lines, "Closed: true")
	}
	return strings.Join(lines, "\n")
}

func FormatProjectList(projects []Project) string {
	if len(projects) == 0 {
		return "No projects found."
	}
	blocks := make([]string, 0, len(projects))
	for _, project := range projects {
		blocks = append(blocks, FormatProject(project))
	}
	return strings.Join(blocks, "\n---\n")
}

// TickTick serialises dates in a few shapes depending on the endpoint.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
}

// ParseTime parses a TickTick date string, trying each layout the API
// is known to emit.
func ParseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("[ParseTime] unrecognised time value %q", value)
}

package mcptools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jrsteele09/go-ticktick-mcp/internal/utils"
	"github.com/jrsteele09/go-ticktick-mcp/ticktick"
)

// isEngaged implements the GTD "engage" horizon: high priority, due
// today, or overdue.
func isEngaged(task ticktick.Task, now time.Time) bool {
	if task.Status == ticktick.StatusCompleted {
		return false
	}
	if task.Priority == ticktick.PriorityHigh {
		return true
	}
	due := dueTime(task)
	if due.IsZero() {
		return false
	}
	return due.Before(startOfDayUTC(now).AddDate(0, 0, 1))
}

// isNext implements the GTD "next actions" horizon: medium priority or
// due tomorrow.
func isNext(task ticktick.Task, now time.Time) bool {
	if task.Status == ticktick.StatusCompleted {
		return false
	}
	if task.Priority == ticktick.PriorityMedium {
		return true
	}
	return isDueOnDate(task, now.AddDate(0, 0, 1))
}

func registerGTDTools(mcpServer *server.MCPServer, client *ticktick.Client) {
	mcpServer.AddTool(mcp.NewTool("get_engaged_tasks",
		mcp.WithDescription("Get engaged tasks (GTD): high priority (5), due today, or overdue"),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, err := getAllTasks(ctx, client)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		now := time.Now()
		engaged := filterTasks(tasks, func(task ticktick.Task) bool {
			return isEngaged(task, now)
		})
		return mcp.NewToolResultText(ticktick.FormatTaskList(engaged)), nil
	})

	mcpServer.AddTool(mcp.NewTool("get_next_tasks",
		mcp.WithDescription("Get next tasks (GTD): medium priority (3) or due tomorrow"),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, err := getAllTasks(ctx, client)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		now := time.Now()
		next := filterTasks(tasks, func(task ticktick.Task) bool {
			return isNext(task, now)
		})
		return mcp.NewToolResultText(ticktick.FormatTaskList(next)), nil
	})

	mcpServer.AddTool(mcp.NewTool("batch_create_tasks",
		mcp.WithDescription("Create multiple tasks at once. Each task requires title and project_id."),
		mcp.WithArray("tasks",
			mcp.Required(),
			mcp.Description("Array of tasks to create, each with title, project_id, and optional content, start_date, due_date, priority"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rawTasks, ok := request.GetArguments()["tasks"].([]any)
		if !ok {
			return mcp.NewToolResultError("tasks must be an array"), nil
		}

		inputs := make([]ticktick.CreateTaskInput, 0, len(rawTasks))
		for i, rawTask := range rawTasks {
			fields, ok := rawTask.(map[string]any)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("Validation error: task at index %d is not an object.", i)), nil
			}
			title, _ := fields["title"].(string)
			projectID, _ := fields["project_id"].(string)
			if title == "" || projectID == "" {
				return mcp.NewToolResultError(fmt.Sprintf("Validation error: task at index %d missing required title or project_id.", i)), nil
			}

			input := ticktick.CreateTaskInput{Title: title, ProjectID: projectID}
			if content, ok := fields["content"].(string); ok {
				input.Content = utils.Ptr(content)
			}
			if startDate, ok := fields["start_date"].(string); ok {
				input.StartDate = utils.Ptr(startDate)
			}
			if dueDate, ok := fields["due_date"].(string); ok {
				input.DueDate = utils.Ptr(dueDate)
			}
			if priority, ok := fields["priority"].(float64); ok {
				input.Priority = utils.Ptr(int(priority))
			}
			inputs = append(inputs, input)
		}

		results := make([]string, 0, len(inputs))
		for _, input := range inputs {
			task, err := client.CreateTask(ctx, input)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			results = append(results, ticktick.FormatTask(*task))
		}
		return mcp.NewToolResultText(fmt.Sprintf("Created %d tasks:\n%s", len(results), strings.Join(results, "\n---\n"))), nil
	})

	mcpServer.AddTool(mcp.NewTool("create_subtask",
		mcp.WithDescription("Create a subtask under a parent task"),
		mcp.WithString("subtask_title",
			mcp.Required(),
			mcp.Description("Subtask title"),
		),
		mcp.WithString("parent_task_id",
			mcp.Required(),
			mcp.Description("Parent task ID"),
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID"),
		),
		mcp.WithString("content",
			mcp.Description("Subtask content"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority: 0=None, 1=Low, 3=Medium, 5=High"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("subtask_title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		parentID, err := request.RequireString("parent_task_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		input := ticktick.CreateTaskInput{
			Title:     title,
			ProjectID: projectID,
			ParentID:  &parentID,
		}
		input.Content = optionalString(request, "content")
		input.Priority = optionalInt(request, "priority")

		task, err := client.CreateTask(ctx, input)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("Subtask created:\n" + ticktick.FormatTask(*task)), nil
	})
}

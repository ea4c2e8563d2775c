package mcptools

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jrsteele09/go-ticktick-mcp/ticktick"
)

func registerTaskQueryTools(mcpServer *server.MCPServer, client *ticktick.Client) {
	// queryTool wraps the common collect-filter-format shape of the
	// query tools.
	queryTool := func(predicate func(ticktick.Task) bool) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			tasks, err := getAllTasks(ctx, client)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(ticktick.FormatTaskList(filterTasks(tasks, predicate))), nil
		}
	}

	mcpServer.AddTool(mcp.NewTool("get_all_tasks",
		mcp.WithDescription("Get all tasks from all non-closed projects"),
	), queryTool(func(ticktick.Task) bool { return true }))

	mcpServer.AddTool(mcp.NewTool("search_tasks",
		mcp.WithDescription("Search tasks by keyword in title, content, and subtask titles"),
		mcp.WithString("search_term",
			mcp.Required(),
			mcp.Description("Search term (case-insensitive)"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		searchTerm, err := request.RequireString("search_term")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		term := strings.ToLower(searchTerm)
		return queryTool(func(task ticktick.Task) bool {
			return matchesSearch(task, term)
		})(ctx, request)
	})

	mcpServer.AddTool(mcp.NewTool("get_tasks_by_priority",
		mcp.WithDescription("Get all tasks with a specific priority level"),
		mcp.WithNumber("priority",
			mcp.Required(),
			mcp.Description("Priority level: 0=None, 1=Low, 3=Medium, 5=High"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		priority := request.GetInt("priority", -1)
		return queryTool(func(task ticktick.Task) bool {
			return task.Priority == priority
		})(ctx, request)
	})

	mcpServer.AddTool(mcp.NewTool("get_tasks_due_today",
		mcp.WithDescription("Get all tasks due today"),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		now := time.Now()
		return queryTool(func(task ticktick.Task) bool {
			return isDueOnDate(task, now)
		})(ctx, request)
	})

	mcpServer.AddTool(mcp.NewTool("get_tasks_due_tomorrow",
		mcp.WithDescription("Get all tasks due tomorrow"),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tomorrow := time.Now().AddDate(0, 0, 1)
		return queryTool(func(task ticktick.Task) bool {
			return isDueOnDate(task, tomorrow)
		})(ctx, request)
	})

	mcpServer.AddTool(mcp.NewTool("get_tasks_due_in_days",
		mcp.WithDescription("Get all tasks due in exactly N days from now"),
		mcp.WithNumber("days",
			mcp.Required(),
			mcp.Description("Number of days from now"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		days := request.GetInt("days", 0)
		target := time.Now().AddDate(0, 0, days)
		return queryTool(func(task ticktick.Task) bool {
			return isDueOnDate(task, target)
		})(ctx, request)
	})

	mcpServer.AddTool(mcp.NewTool("get_tasks_due_this_week",
		mcp.WithDescription("Get all tasks due within the next 7 days"),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := startOfDayUTC(time.Now())
		end := start.AddDate(0, 0, 7)
		return queryTool(func(task ticktick.Task) bool {
			return isDueInRange(task, start, end)
		})(ctx, request)
	})

	mcpServer.AddTool(mcp.NewTool("get_overdue_tasks",
		mcp.WithDescription("Get all tasks past their due date"),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		now := time.Now()
		return queryTool(func(task ticktick.Task) bool {
			return isOverdue(task, now)
		})(ctx, request)
	})
}

// matchesSearch reports whether the lowercased term appears in the
// task's title, content, or any checklist item title.
func matchesSearch(task ticktick.Task, term string) bool {
	if strings.Contains(strings.ToLower(task.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(task.Content), term) {
		return true
	}
	for _, item := range task.Items {
		if strings.Contains(strings.ToLower(item.Title), term) {
			return true
		}
	}
	return false
}

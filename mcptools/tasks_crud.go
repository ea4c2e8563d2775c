package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jrsteele09/go-ticktick-mcp/ticktick"
)

func registerTaskCrudTools(mcpServer *server.MCPServer, client *ticktick.Client) {
	mcpServer.AddTool(mcp.NewTool("get_project_tasks",
		mcp.WithDescription("Get all tasks in a specific project"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		data, err := client.GetProjectData(ctx, projectID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(ticktick.FormatTaskList(data.Tasks)), nil
	})

	mcpServer.AddTool(mcp.NewTool("get_task",
		mcp.WithDescription("Get a specific task by project ID and task ID"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID"),
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		taskID, err := request.RequireString("task_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		task, err := client.GetTask(ctx, projectID, taskID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(ticktick.FormatTask(*task)), nil
	})

	mcpServer.AddTool(mcp.NewTool("create_task",
		mcp.WithDescription("Create a new task in a project"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title"),
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID to add the task to"),
		),
		mcp.WithString("content",
			mcp.Description("Task description/content"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date in ISO format (yyyy-MM-ddTHH:mm:ssZ)"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date in ISO format (yyyy-MM-ddTHH:mm:ssZ)"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority: 0=None, 1=Low, 3=Medium, 5=High"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		input := ticktick.CreateTaskInput{Title: title, ProjectID: projectID}
		input.Content = optionalString(request, "content")
		input.StartDate = optionalString(request, "start_date")
		input.DueDate = optionalString(request, "due_date")
		input.Priority = optionalInt(request, "priority")

		task, err := client.CreateTask(ctx, input)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("Task created:\n" + ticktick.FormatTask(*task)), nil
	})

	mcpServer.AddTool(mcp.NewTool("update_task",
		mcp.WithDescription("Update an existing task"),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID to update"),
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID the task belongs to"),
		),
		mcp.WithString("title",
			mcp.Description("New task title"),
		),
		mcp.WithString("content",
			mcp.Description("New task description/content"),
		),
		mcp.WithString("start_date",
			mcp.Description("New start date in ISO format"),
		),
		mcp.WithString("due_date",
			mcp.Description("New due date in ISO format"),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority: 0=None, 1=Low, 3=Medium, 5=High"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		taskID, err := request.RequireString("task_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		input := ticktick.UpdateTaskInput{TaskID: taskID, ProjectID: projectID}
		input.Title = optionalString(request, "title")
		input.Content = optionalString(request, "content")
		input.StartDate = optionalString(request, "start_date")
		input.DueDate = optionalString(request, "due_date")
		input.Priority = optionalInt(request, "priority")

		task, err := client.UpdateTask(ctx, input)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("Task updated:\n" + ticktick.FormatTask(*task)), nil
	})

	mcpServer.AddTool(mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task as complete"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID"),
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID to complete"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		taskID, err := request.RequireString("task_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := client.CompleteTask(ctx, projectID, taskID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Task %s marked as complete.", taskID)), nil
	})

	mcpServer.AddTool(mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID"),
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID to delete"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		taskID, err := request.RequireString("task_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := client.DeleteTask(ctx, projectID, taskID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Task %s deleted successfully.", taskID)), nil
	})
}

// optionalString reads an optional string argument, returning nil when
// the argument was omitted.
func optionalString(request mcp.CallToolRequest, key string) *string {
	value, ok := request.GetArguments()[key].(string)
	if !ok {
		return nil
	}
	return &value
}

// optionalInt reads an optional numeric argument. JSON numbers arrive
// as float64.
func optionalInt(request mcp.CallToolRequest, key string) *int {
	value, ok := request.GetArguments()[key].(float64)
	if !ok {
		return nil
	}
	intValue := int(value)
	return &intValue
}

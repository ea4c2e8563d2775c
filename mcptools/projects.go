package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jrsteele09/go-ticktick-mcp/ticktick"
)

func registerProjectTools(mcpServer *server.MCPServer, client *ticktick.Client) {
	mcpServer.AddTool(mcp.NewTool("get_projects",
		mcp.WithDescription("Get all TickTick projects"),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects, err := client.GetProjects(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(ticktick.FormatProjectList(projects)), nil
	})

	mcpServer.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Get a specific TickTick project by ID"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		project, err := client.GetProject(ctx, projectID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(ticktick.FormatProject(*project)), nil
	})

	mcpServer.AddTool(mcp.NewTool("create_project",
		mcp.WithDescription("Create a new TickTick project"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project name"),
		),
		mcp.WithString("color",
			mcp.Description(`Project color hex (e.g. "#F18181")`),
		),
		mcp.WithString("view_mode",
			mcp.Description("Project view mode: list, kanban, or timeline"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		project, err := client.CreateProject(ctx, ticktick.CreateProjectInput{
			Name:     name,
			Color:    request.GetString("color", ""),
			ViewMode: request.GetString("view_mode", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("Project created:\n" + ticktick.FormatProject(*project)), nil
	})

	mcpServer.AddTool(mcp.NewTool("delete_project",
		mcp.WithDescription("Delete a TickTick project by ID"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID to delete"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := request.RequireString("project_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := client.DeleteProject(ctx, projectID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Project %s deleted successfully.", projectID)), nil
	})
}

package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"dayplan/internal/app"
	"dayplan/internal/layout"
	"dayplan/internal/model"
	"dayplan/internal/suggest"
)

func registerTools(srv *server.MCPServer, svc *app.Service, suggests *suggest.Service) {
	registerCreateTaskTool(srv, svc)
	registerListTasksTool(srv, svc)
	registerGetTaskTool(srv, svc)
	registerCompleteTaskTool(srv, svc)
	registerDeleteTaskTool(srv, svc)
	registerCreateSpaceTool(srv, svc)
	registerListSpacesTool(srv, svc)
	registerDeleteSpaceTool(srv, svc)
	registerDayLayoutTool(srv, svc)
	registerSuggestTool(srv, svc, suggests)
}

func registerCreateTaskTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"create_task",
		mcp.WithDescription("Create a task in a space. Recurrence fields turn it into a recurring template whose instances are generated automatically."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title."),
		),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("Task space identifier."),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("RFC3339 start time."),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("RFC3339 end time, strictly after start."),
		),
		mcp.WithString("description",
			mcp.Description("Optional description."),
		),
		mcp.WithNumber("remind_minutes_before",
			mcp.Description("Schedule a reminder this many minutes before start."),
			mcp.Min(0),
		),
		mcp.WithString("frequency",
			mcp.Description("Recurrence frequency."),
			mcp.Enum("daily", "weekly", "monthly", "custom"),
		),
		mcp.WithNumber("interval",
			mcp.Description("Recurrence interval (default 1)."),
			mcp.Min(1),
		),
		mcp.WithString("days_of_week",
			mcp.Description("Comma-separated weekdays for weekly rules, e.g. mon,wed,fri."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title       string  `json:"title"`
			SpaceID     string  `json:"space_id"`
			Start       string  `json:"start"`
			End         string  `json:"end"`
			Description string  `json:"description"`
			Remind      float64 `json:"remind_minutes_before"`
			Frequency   string  `json:"frequency"`
			Interval    float64 `json:"interval"`
			DaysOfWeek  string  `json:"days_of_week"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		start, err := time.Parse(time.RFC3339, args.Start)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start: %v", err)), nil
		}
		end, err := time.Parse(time.RFC3339, args.End)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid end: %v", err)), nil
		}

		task := model.Task{
			Title:       args.Title,
			Description: args.Description,
			SpaceID:     args.SpaceID,
			StartTime:   start,
			EndTime:     end,
			Kind:        model.TaskStandalone,
		}
		if request.GetFloat("remind_minutes_before", -1) >= 0 {
			offset := int(args.Remind)
			task.ReminderMinutesBefore = &offset
		}
		if args.Frequency != "" {
			days, err := parseWeekdays(args.DaysOfWeek)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			interval := int(args.Interval)
			if interval < 1 {
				interval = 1
			}
			task.Kind = model.TaskTemplate
			task.Recurrence = &model.RecurrenceRule{
				Frequency:  model.Frequency(args.Frequency),
				Interval:   interval,
				DaysOfWeek: days,
			}
		}

		saved, err := svc.SaveTask(ctx, task)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(saved)
	})
}

func registerListTasksTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks, optionally filtered to one calendar day or one space."),
		mcp.WithString("day",
			mcp.Description("Optional day filter, 2006-01-02. Templates are excluded from day listings."),
		),
		mcp.WithString("space_id",
			mcp.Description("Optional space filter."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dayRaw := strings.TrimSpace(request.GetString("day", ""))
		spaceID := strings.TrimSpace(request.GetString("space_id", ""))

		var tasks []model.Task
		if dayRaw != "" {
			day, err := time.Parse("2006-01-02", dayRaw)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid day: %v", err)), nil
			}
			tasks = svc.DayTasks(day)
		} else {
			tasks = svc.Tasks()
		}
		if spaceID != "" {
			filtered := tasks[:0]
			for _, task := range tasks {
				if task.SpaceID == spaceID {
					filtered = append(filtered, task)
				}
			}
			tasks = filtered
		}
		return toJSONResult(map[string]any{
			"tasks": tasks,
			"count": len(tasks),
		})
	})
}

func registerGetTaskTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"get_task",
		mcp.WithDescription("Fetch a single task by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		task, err := svc.Task(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(task)
	})
}

func registerCompleteTaskTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"complete_task",
		mcp.WithDescription("Mark a task completed, cancelling its pending reminder. Set completed=false to reopen."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
		mcp.WithBoolean("completed",
			mcp.Description("Target state (default true)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var task model.Task
		if request.GetBool("completed", true) {
			task, err = svc.CompleteTask(ctx, id)
		} else {
			task, err = svc.ReopenTask(ctx, id)
		}
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(task)
	})
}

func registerDeleteTaskTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task. Deleting a recurring template removes its generated instances."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteTask(id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"deleted": id})
	})
}

func registerCreateSpaceTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"create_space",
		mcp.WithDescription("Create a task space."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Space name, unique case-insensitively."),
		),
		mcp.WithString("color",
			mcp.Description("Hex color in #RRGGBB form (default #2563EB)."),
		),
		mcp.WithString("description",
			mcp.Description("Optional description."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		space, err := svc.CreateSpace(model.TaskSpace{
			Name:        name,
			Color:       request.GetString("color", "#2563EB"),
			Description: request.GetString("description", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(space)
	})
}

func registerListSpacesTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"list_spaces",
		mcp.WithDescription("List all task spaces."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		spaces := svc.Spaces()
		return toJSONResult(map[string]any{
			"spaces": spaces,
			"count":  len(spaces),
		})
	})
}

func registerDeleteSpaceTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"delete_space",
		mcp.WithDescription("Delete a task space and every task in it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Space identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteSpace(id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"deleted": id})
	})
}

func registerDayLayoutTool(srv *server.MCPServer, svc *app.Service) {
	tool := mcp.NewTool(
		"day_layout",
		mcp.WithDescription("Tasks for one calendar day with their column placement: left offset and width as percentages, plus an overflow marker when more than two tasks overlap."),
		mcp.WithString("day",
			mcp.Required(),
			mcp.Description("Day to lay out, 2006-01-02."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dayRaw, err := request.RequireString("day")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		day, err := time.Parse("2006-01-02", dayRaw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid day: %v", err)), nil
		}

		tasks, placements := svc.DayLayout(day)
		type placedTask struct {
			Task      model.Task       `json:"task"`
			Placement layout.Placement `json:"placement"`
		}
		out := make([]placedTask, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, placedTask{Task: task, Placement: placements[task.ID]})
		}
		return toJSONResult(map[string]any{
			"day":   dayRaw,
			"tasks": out,
			"count": len(out),
		})
	})
}

func registerSuggestTool(srv *server.MCPServer, svc *app.Service, suggests *suggest.Service) {
	tool := mcp.NewTool(
		"suggest_task",
		mcp.WithDescription("Produce a short contextual suggestion for a task."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		task, err := svc.Task(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		space, err := svc.Space(task.SpaceID)
		if err != nil {
			space = model.TaskSpace{}
		}
		profile, _ := svc.Profile()
		req := suggest.RequestForTask(task, space, profile)

		text := suggest.Fallback(req)
		if suggests != nil {
			text = suggests.Suggest(ctx, req)
		}
		return toJSONResult(map[string]string{
			"taskId":     id,
			"suggestion": text,
		})
	})
}

func parseWeekdays(value string) ([]time.Weekday, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	names := map[string]time.Weekday{
		"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
		"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
		"sat": time.Saturday,
	}
	var days []time.Weekday
	for _, part := range strings.Split(value, ",") {
		day, ok := names[strings.ToLower(strings.TrimSpace(part))]
		if !ok {
			return nil, fmt.Errorf("unrecognized weekday %q", part)
		}
		days = append(days, day)
	}
	return days, nil
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}

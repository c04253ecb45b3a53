package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pomotrack/internal/domain"
)

// LogCommands handles the log subcommands
type LogCommands struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLogCommands creates a new log command handler
func NewLogCommands(app *App) *LogCommands {
	return &LogCommands{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// List prints recorded intervals, optionally filtered
func (c *LogCommands) List(ctx context.Context, cmd *cobra.Command, args []string) error {
	var opts *domain.SearchOptions

	// A lone argument that isn't range shorthand is treated as search text
	rest := args
	if len(rest) > 0 {
		timeRange, err := c.app.api.ParseTimeRange(rest[0])
		if err == nil {
			opts = &domain.SearchOptions{StartTime: &timeRange.Start, EndTime: &timeRange.End}
			rest = rest[1:]
		} else if len(rest) > 1 {
			return c.errorHandler.HandleSimple(err)
		}
	}
	if len(rest) > 0 {
		if opts == nil {
			opts = &domain.SearchOptions{}
		}
		opts.TaskName = &rest[0]
	}

	if taskID, _ := cmd.Flags().GetInt64("task"); taskID > 0 {
		if opts == nil {
			opts = &domain.SearchOptions{}
		}
		opts.TaskID = &taskID
	}
	if tagRef, _ := cmd.Flags().GetString("tag"); tagRef != "" {
		tag, err := c.app.resolveTag(ctx, tagRef)
		if err != nil {
			return c.errorHandler.Handle("list logs", err)
		}
		if opts == nil {
			opts = &domain.SearchOptions{}
		}
		opts.TagID = &tag.ID
	}

	logs, err := c.app.api.ListLogs(ctx, opts)
	if err != nil {
		return c.errorHandler.Handle("list logs", err)
	}

	if len(logs) == 0 {
		fmt.Fprintln(c.app.out, "No recorded intervals")
		return nil
	}

	taskNames := make(map[int64]string)
	for _, log := range logs {
		name, ok := taskNames[log.TaskID]
		if !ok {
			task, err := c.app.api.GetTask(ctx, log.TaskID)
			if err != nil {
				name = fmt.Sprintf("task %d", log.TaskID)
			} else {
				name = task.Name
			}
			taskNames[log.TaskID] = name
		}

		if log.IsRunning() {
			fmt.Fprintf(c.app.out, "%4d  %s  %s  running\n",
				log.ID, c.app.formatTimestamp(log.StartedAt), name)
			continue
		}
		fmt.Fprintf(c.app.out, "%4d  %s  %s  %s\n",
			log.ID, c.app.formatTimestamp(log.StartedAt), name,
			c.app.api.FormatDuration(log.Duration()))
	}
	return nil
}

// Delete removes one recorded interval
func (c *LogCommands) Delete(ctx context.Context, cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "log_id")
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := c.app.api.DeleteLog(ctx, id); err != nil {
		return c.errorHandler.Handle("delete log", err)
	}

	fmt.Fprintf(c.app.out, "Deleted log %d\n", id)
	return nil
}

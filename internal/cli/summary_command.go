package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pomotrack/internal/services"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the summary command
func (c *SummaryCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	var timeRange *services.TimeRange
	if len(args) == 1 {
		parsed, err := c.app.api.ParseTimeRange(args[0])
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		timeRange = parsed
	}

	if taskID, _ := cmd.Flags().GetInt64("task"); taskID > 0 {
		return c.taskSummary(ctx, taskID)
	}
	if byTags, _ := cmd.Flags().GetBool("tags"); byTags {
		return c.tagSummary(ctx, timeRange)
	}
	return c.todaySummary(ctx)
}

func (c *SummaryCommand) todaySummary(ctx context.Context) error {
	stats, err := c.app.api.GetTodayStatistics(ctx)
	if err != nil {
		return c.errorHandler.Handle("summarize today", err)
	}

	fmt.Fprintf(c.app.out, "Today (%s)\n", stats.Date.Format("2006-01-02"))
	fmt.Fprintf(c.app.out, "  Recorded:  %s over %d sessions\n", stats.TotalTime, stats.SessionCount)
	fmt.Fprintf(c.app.out, "  Tasks:     %d worked on, %d completed\n", stats.TaskCount, stats.CompletedCount)
	return nil
}

func (c *SummaryCommand) taskSummary(ctx context.Context, taskID int64) error {
	summary, err := c.app.api.GetTaskSummary(ctx, taskID)
	if err != nil {
		return c.errorHandler.Handle("summarize task", err)
	}

	fmt.Fprintf(c.app.out, "%s\n", summary.Task.Name)
	if summary.Task.Notes != "" {
		fmt.Fprintf(c.app.out, "  Notes:     %s\n", summary.Task.Notes)
	}
	fmt.Fprintf(c.app.out, "  Recorded:  %s over %d sessions\n", summary.TotalTime, summary.SessionCount)
	if summary.SessionCount > 0 {
		fmt.Fprintf(c.app.out, "  First:     %s\n", c.app.formatTimestamp(summary.FirstEntry))
		fmt.Fprintf(c.app.out, "  Last:      %s\n", c.app.formatTimestamp(summary.LastEntry))
	}
	if summary.IsRunning {
		fmt.Fprintln(c.app.out, "  A timer is running on this task")
	}
	return nil
}

func (c *SummaryCommand) tagSummary(ctx context.Context, timeRange *services.TimeRange) error {
	totals, err := c.app.api.GetTagTotals(ctx, timeRange)
	if err != nil {
		return c.errorHandler.Handle("summarize tags", err)
	}

	if len(totals) == 0 {
		fmt.Fprintln(c.app.out, "No recorded time")
		return nil
	}

	for _, total := range totals {
		fmt.Fprintf(c.app.out, "%-20s %8s  (%d sessions)\n",
			total.Tag.Name, total.TotalTime, total.SessionCount)
	}
	return nil
}

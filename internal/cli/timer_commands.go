package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pomotrack/internal/services"
)

// TimerCommands handles the start, stop, status and resume commands
type TimerCommands struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTimerCommands creates a new timer command handler
func NewTimerCommands(app *App) *TimerCommands {
	return &TimerCommands{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Start begins a work interval on a task. Without an argument it falls
// back to the remembered task selection.
func (c *TimerCommands) Start(ctx context.Context, cmd *cobra.Command, args []string) error {
	var id int64
	if len(args) > 0 {
		parsed, err := parseID(args[0], "task_id")
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		id = parsed
	} else {
		selected, ok, err := c.app.api.SelectedTaskID(ctx)
		if err != nil {
			return c.errorHandler.Handle("start timer", err)
		}
		if !ok {
			fmt.Fprintln(c.app.out, "No task selected; pass a task ID")
			return nil
		}
		id = selected
	}

	status, err := c.app.api.StartTimer(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("start timer", err)
	}

	fmt.Fprintf(c.app.out, "Working on: %s (%s remaining)\n",
		status.Task.Name, renderClock(status.Remaining))

	phase, duration, err := c.app.api.NextBreak(ctx)
	if err == nil {
		label := "short break"
		if phase == services.PhaseLongBreak {
			label = "long break"
		}
		fmt.Fprintf(c.app.out, "Up next: %s (%s)\n", label, renderClock(duration))
	}
	return nil
}

// Stop closes the running interval
func (c *TimerCommands) Stop(ctx context.Context, cmd *cobra.Command, args []string) error {
	stopped, err := c.app.api.StopTimer(ctx)
	if err != nil {
		return c.errorHandler.Handle("stop timer", err)
	}

	if len(stopped) == 0 {
		fmt.Fprintln(c.app.out, "No interval is running")
		return nil
	}

	for _, log := range stopped {
		task, err := c.app.api.GetTask(ctx, log.TaskID)
		name := fmt.Sprintf("task %d", log.TaskID)
		if err == nil {
			name = task.Name
		}
		fmt.Fprintf(c.app.out, "Recorded %s on %s\n", c.app.api.FormatDuration(log.Elapsed), name)
	}
	return nil
}

// Status shows the running interval, if any
func (c *TimerCommands) Status(ctx context.Context, cmd *cobra.Command, args []string) error {
	status, err := c.app.api.CurrentTimer(ctx)
	if err != nil {
		return c.errorHandler.Handle("check timer", err)
	}

	if status == nil {
		fmt.Fprintln(c.app.out, "No interval is running")
		return nil
	}

	fmt.Fprintf(c.app.out, "Working on: %s\n", status.Task.Name)
	fmt.Fprintf(c.app.out, "Elapsed:    %s\n", renderClock(status.Elapsed))
	if status.Remaining > 0 {
		fmt.Fprintf(c.app.out, "Remaining:  %s\n", renderClock(status.Remaining))
	} else {
		fmt.Fprintln(c.app.out, "The work interval is over; take a break and stop the timer")
	}
	return nil
}

// Resume reconciles leftover intervals and re-attaches to the surviving one
func (c *TimerCommands) Resume(ctx context.Context, cmd *cobra.Command, args []string) error {
	status, err := c.app.api.ResumeTimer(ctx)
	if err != nil {
		return c.errorHandler.Handle("resume timer", err)
	}

	if status == nil {
		fmt.Fprintln(c.app.out, "Nothing to resume")
		return nil
	}

	fmt.Fprintf(c.app.out, "Resumed: %s (started %s)\n",
		status.Task.Name, c.app.formatTimestamp(status.Log.StartedAt))
	fmt.Fprintf(c.app.out, "Elapsed:   %s\n", renderClock(status.Elapsed))
	fmt.Fprintf(c.app.out, "Remaining: %s\n", renderClock(status.Remaining))
	return nil
}

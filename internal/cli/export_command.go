package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pomotrack/internal/errors"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	format := args[0]
	if !strings.HasPrefix(format, "format=") {
		return errors.NewInvalidInputError("format", format, "usage: pomo export format=csv")
	}

	switch strings.TrimPrefix(format, "format=") {
	case "csv":
		return c.exportCSV(ctx)
	default:
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}
}

// exportCSV writes the full interval history as CSV. The leading comment
// lines identify the snapshot so exports can be told apart.
func (c *ExportCommand) exportCSV(ctx context.Context) error {
	installID, err := c.app.api.InstallID(ctx)
	if err != nil {
		return c.errorHandler.Handle("export logs", err)
	}

	logs, err := c.app.api.ListLogs(ctx, nil)
	if err != nil {
		return c.errorHandler.Handle("export logs", err)
	}

	membership, err := c.app.api.TagMembership(ctx)
	if err != nil {
		return c.errorHandler.Handle("export logs", err)
	}

	fmt.Fprintf(c.app.out, "# pomotrack export %s\n", installID)
	fmt.Fprintf(c.app.out, "# exported_at %s\n", timeNow().UTC().Format(time.RFC3339))

	writer := csv.NewWriter(c.app.out)
	if err := writer.Write([]string{
		"log_id", "task_id", "task_name", "tags", "started_at", "stopped_at", "elapsed_seconds",
	}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	taskNames := make(map[int64]string)
	for _, log := range logs {
		name, ok := taskNames[log.TaskID]
		if !ok {
			task, err := c.app.api.GetTask(ctx, log.TaskID)
			if err != nil {
				name = ""
			} else {
				name = task.Name
			}
			taskNames[log.TaskID] = name
		}

		tagNames := make([]string, 0, len(membership[log.TaskID]))
		for _, tag := range membership[log.TaskID] {
			tagNames = append(tagNames, tag.Name)
		}

		stoppedAt := ""
		elapsed := ""
		if log.StoppedAt != nil {
			stoppedAt = log.StoppedAt.UTC().Format(time.RFC3339)
			elapsed = strconv.FormatInt(int64(log.Elapsed.Seconds()), 10)
		}

		record := []string{
			strconv.FormatInt(log.ID, 10),
			strconv.FormatInt(log.TaskID, 10),
			name,
			strings.Join(tagNames, ";"),
			log.StartedAt.UTC().Format(time.RFC3339),
			stoppedAt,
			elapsed,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pomotrack/internal/domain"
	"pomotrack/internal/errors"
)

// TaskCommands handles the task subcommands
type TaskCommands struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskCommands creates a new task command handler
func NewTaskCommands(app *App) *TaskCommands {
	return &TaskCommands{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// parseID parses a positive numeric ID argument
func parseID(arg, field string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError(field, arg, "must be a positive integer")
	}
	return id, nil
}

// confirm asks a yes/no question on the app's input stream
func (a *App) confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N] ", prompt)
	reader := bufio.NewReader(a.in)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// Add creates a new task at the end of the list
func (c *TaskCommands) Add(ctx context.Context, cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	notes, _ := cmd.Flags().GetString("notes")

	task, err := c.app.api.CreateTask(ctx, name, notes)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Added task %d: %s\n", task.ID, task.Name)
	return nil
}

// List prints the task list with tags
func (c *TaskCommands) List(ctx context.Context, cmd *cobra.Command, args []string) error {
	includeArchived, _ := cmd.Flags().GetBool("all")
	if !includeArchived {
		show, err := c.app.api.ShowArchived(ctx)
		if err != nil {
			return c.errorHandler.Handle("list tasks", err)
		}
		includeArchived = show
	}

	tasks, err := c.app.api.ListTasks(ctx, includeArchived)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	membership, err := c.app.api.TagMembership(ctx)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	if tagFilter, _ := cmd.Flags().GetString("tag"); tagFilter != "" {
		tag, err := c.app.resolveTag(ctx, tagFilter)
		if err != nil {
			return c.errorHandler.Handle("list tasks", err)
		}
		tasks = filterTasksByTag(tasks, membership, tag.ID)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(c.app.out, "No tasks")
		return nil
	}

	for _, task := range tasks {
		fmt.Fprintln(c.app.out, c.app.renderTaskLine(task, membership[task.ID]))
	}
	return nil
}

// Done marks a task complete
func (c *TaskCommands) Done(ctx context.Context, cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "task_id")
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	task, err := c.app.api.CompleteTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("complete task", err)
	}

	fmt.Fprintf(c.app.out, "Completed: %s\n", task.Name)
	return nil
}

// Reopen clears a task's completion mark
func (c *TaskCommands) Reopen(ctx context.Context, cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "task_id")
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	task, err := c.app.api.ReopenTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("reopen task", err)
	}

	fmt.Fprintf(c.app.out, "Reopened: %s\n", task.Name)
	return nil
}

// Archive hides a task from the default listing
func (c *TaskCommands) Archive(ctx context.Context, cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "task_id")
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	task, err := c.app.api.ArchiveTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("archive task", err)
	}

	fmt.Fprintf(c.app.out, "Archived: %s\n", task.Name)
	return nil
}

// Unarchive restores an archived task
func (c *TaskCommands) Unarchive(ctx context.Context, cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "task_id")
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	task, err := c.app.api.UnarchiveTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("unarchive task", err)
	}

	fmt.Fprintf(c.app.out, "Restored: %s\n", task.Name)
	return nil
}

// Edit changes a task's name or notes
func (c *TaskCommands) Edit(ctx context.Context, cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "task_id")
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	name, _ := cmd.Flags().GetString("name")
	notes, _ := cmd.Flags().GetString("notes")
	if name == "" && !cmd.Flags().Changed("notes") {
		return errors.NewInvalidInputError("flags", "", "provide --name or --notes")
	}

	if !cmd.Flags().Changed("notes") {
		current, err := c.app.api.GetTask(ctx, id)
		if err != nil {
			return c.errorHandler.Handle("edit task", err)
		}
		notes = current.Notes
	}

	task, err := c.app.api.UpdateTask(ctx, id, name, notes)
	if err != nil {
		return c.errorHandler.Handle("edit task", err)
	}

	fmt.Fprintf(c.app.out, "Updated task %d: %s\n", task.ID, task.Name)
	return nil
}

// Move repositions a task within the list
func (c *TaskCommands) Move(ctx context.Context, cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "task_id")
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	position, err := strconv.Atoi(args[1])
	if err != nil || position < 1 {
		return c.errorHandler.HandleSimple(
			errors.NewInvalidInputError("position", args[1], "must be a positive integer"))
	}

	if err := c.app.api.MoveTask(ctx, id, position); err != nil {
		return c.errorHandler.Handle("move task", err)
	}

	fmt.Fprintf(c.app.out, "Moved task %d to position %d\n", id, position)
	return nil
}

// Delete removes a task after confirmation
func (c *TaskCommands) Delete(ctx context.Context, cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "task_id")
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	task, err := c.app.api.GetTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	if force, _ := cmd.Flags().GetBool("force"); !force {
		prompt := fmt.Sprintf("Delete %q and all its recorded intervals?", task.Name)
		if !c.app.confirm(prompt) {
			fmt.Fprintln(c.app.out, "Cancelled")
			return nil
		}
	}

	if err := c.app.api.DeleteTask(ctx, id); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}

	fmt.Fprintf(c.app.out, "Deleted: %s\n", task.Name)
	return nil
}

func filterTasksByTag(tasks []*domain.Task, membership map[int64][]*domain.Tag, tagID int64) []*domain.Task {
	filtered := make([]*domain.Task, 0, len(tasks))
	for _, task := range tasks {
		for _, tag := range membership[task.ID] {
			if tag.ID == tagID {
				filtered = append(filtered, task)
				break
			}
		}
	}
	return filtered
}

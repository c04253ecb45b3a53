package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pomotrack/internal/domain"
	"pomotrack/internal/errors"
)

// TagCommands handles the tag subcommands
type TagCommands struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTagCommands creates a new tag command handler
func NewTagCommands(app *App) *TagCommands {
	return &TagCommands{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// resolveTag finds a tag by numeric ID or by name
func (a *App) resolveTag(ctx context.Context, ref string) (*domain.Tag, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil && id > 0 {
		return a.api.GetTag(ctx, id)
	}

	tags, err := a.api.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if tag.Name == ref {
			return tag, nil
		}
	}
	return nil, errors.NewNotFoundError("tag", ref)
}

// Add creates a new tag
func (c *TagCommands) Add(ctx context.Context, cmd *cobra.Command, args []string) error {
	color, _ := cmd.Flags().GetString("color")

	tag, err := c.app.api.CreateTag(ctx, args[0], color)
	if err != nil {
		return c.errorHandler.Handle("add tag", err)
	}

	fmt.Fprintf(c.app.out, "Added tag %d: %s\n", tag.ID, c.app.renderTags([]*domain.Tag{tag}))
	return nil
}

// List prints all tags
func (c *TagCommands) List(ctx context.Context, cmd *cobra.Command, args []string) error {
	tags, err := c.app.api.ListTags(ctx)
	if err != nil {
		return c.errorHandler.Handle("list tags", err)
	}

	if len(tags) == 0 {
		fmt.Fprintln(c.app.out, "No tags")
		return nil
	}

	for _, tag := range tags {
		fmt.Fprintf(c.app.out, "%3d. %s (%s)\n",
			tag.Position, c.app.renderTags([]*domain.Tag{tag}), tag.Color)
	}
	return nil
}

// Edit changes a tag's name or color
func (c *TagCommands) Edit(ctx context.Context, cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "tag_id")
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	name, _ := cmd.Flags().GetString("name")
	color, _ := cmd.Flags().GetString("color")
	if name == "" && color == "" {
		return errors.NewInvalidInputError("flags", "", "provide --name or --color")
	}

	tag, err := c.app.api.UpdateTag(ctx, id, name, color)
	if err != nil {
		return c.errorHandler.Handle("edit tag", err)
	}

	fmt.Fprintf(c.app.out, "Updated tag %d: %s\n", tag.ID, tag.Name)
	return nil
}

// Move repositions a tag
func (c *TagCommands) Move(ctx context.Context, cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "tag_id")
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	position, err := strconv.Atoi(args[1])
	if err != nil || position < 1 {
		return c.errorHandler.HandleSimple(
			errors.NewInvalidInputError("position", args[1], "must be a positive integer"))
	}

	if err := c.app.api.MoveTag(ctx, id, position); err != nil {
		return c.errorHandler.Handle("move tag", err)
	}

	fmt.Fprintf(c.app.out, "Moved tag %d to position %d\n", id, position)
	return nil
}

// Delete removes a tag after confirmation. Tasks keep their other tags.
func (c *TagCommands) Delete(ctx context.Context, cmd *cobra.Command, args []string) error {
	tag, err := c.app.resolveTag(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("delete tag", err)
	}

	if force, _ := cmd.Flags().GetBool("force"); !force {
		if !c.app.confirm(fmt.Sprintf("Delete tag %q?", tag.Name)) {
			fmt.Fprintln(c.app.out, "Cancelled")
			return nil
		}
	}

	if err := c.app.api.DeleteTag(ctx, tag.ID); err != nil {
		return c.errorHandler.Handle("delete tag", err)
	}

	fmt.Fprintf(c.app.out, "Deleted tag: %s\n", tag.Name)
	return nil
}

// Assign links a tag to a task
func (c *TagCommands) Assign(ctx context.Context, cmd *cobra.Command, args []string) error {
	taskID, err := parseID(args[0], "task_id")
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	tag, err := c.app.resolveTag(ctx, args[1])
	if err != nil {
		return c.errorHandler.Handle("assign tag", err)
	}

	if err := c.app.api.AssignTag(ctx, taskID, tag.ID); err != nil {
		return c.errorHandler.Handle("assign tag", err)
	}

	fmt.Fprintf(c.app.out, "Tagged task %d with %s\n", taskID, tag.Name)
	return nil
}

// Unassign removes a tag from a task
func (c *TagCommands) Unassign(ctx context.Context, cmd *cobra.Command, args []string) error {
	taskID, err := parseID(args[0], "task_id")
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	tag, err := c.app.resolveTag(ctx, args[1])
	if err != nil {
		return c.errorHandler.Handle("unassign tag", err)
	}

	if err := c.app.api.UnassignTag(ctx, taskID, tag.ID); err != nil {
		return c.errorHandler.Handle("unassign tag", err)
	}

	fmt.Fprintf(c.app.out, "Removed %s from task %d\n", tag.Name, taskID)
	return nil
}

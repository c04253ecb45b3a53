package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// ConfigCommands handles the config subcommands over the settings table
type ConfigCommands struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewConfigCommands creates a new config command handler
func NewConfigCommands(app *App) *ConfigCommands {
	return &ConfigCommands{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Get prints one stored setting
func (c *ConfigCommands) Get(ctx context.Context, cmd *cobra.Command, args []string) error {
	value, err := c.app.api.GetSetting(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("read setting", err)
	}

	fmt.Fprintln(c.app.out, value)
	return nil
}

// Set stores a setting
func (c *ConfigCommands) Set(ctx context.Context, cmd *cobra.Command, args []string) error {
	if err := c.app.api.SetSetting(ctx, args[0], args[1]); err != nil {
		return c.errorHandler.Handle("store setting", err)
	}

	fmt.Fprintf(c.app.out, "%s = %s\n", args[0], args[1])
	return nil
}

// List prints all stored settings
func (c *ConfigCommands) List(ctx context.Context, cmd *cobra.Command, args []string) error {
	settings, err := c.app.api.ListSettings(ctx)
	if err != nil {
		return c.errorHandler.Handle("list settings", err)
	}

	if len(settings) == 0 {
		fmt.Fprintln(c.app.out, "No stored settings")
		return nil
	}

	for _, setting := range settings {
		fmt.Fprintf(c.app.out, "%s = %s\n", setting.Key, setting.Value)
	}
	return nil
}

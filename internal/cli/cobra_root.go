package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pomotrack/internal/api"
	"pomotrack/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(apiInstance api.API, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		app:    NewApp(apiInstance, cfg),
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "pomo",
		Short: "A command-line task list with a Pomodoro timer",
		Long: `pomo is a command-line productivity tool combining an ordered task list
with a Pomodoro interval timer.

EXAMPLES:
  pomo task add "Write the report"         # Add a task to the list
  pomo task list                           # Show the task list
  pomo tag add focus --color "#00cc66"     # Create a colored tag
  pomo tag assign 1 focus                  # Tag task 1
  pomo start 1                             # Start a work interval on task 1
  pomo status                              # Show the running interval
  pomo stop                                # Stop and record the interval
  pomo resume                              # Re-attach after a restart
  pomo task done 1                         # Mark task 1 complete
  pomo summary                             # Today's totals
  pomo export format=csv > logs.csv        # Export the interval history

CONFIGURATION:
  Settings cascade: command-line flags > environment variables > config file > defaults.
  The config file lives next to the database (~/.pomo/config.yaml by default).

  POMO_DB_DIR                Database directory (default: ~/.pomo)
  POMO_DB_FILENAME           Database filename (default: pomo.db)
  POMO_TIMER_WORK            Work interval length (default: 25m)
  POMO_TIMER_SHORT_BREAK     Short break length (default: 5m)
  POMO_TIMER_LONG_BREAK      Long break length (default: 15m)
  POMO_TIMER_SESSIONS        Sessions before a long break (default: 4)
  POMO_DISPLAY_COLOR         Colored output (default: true)
  POMO_APP_VERBOSE           Verbose logging (default: false)

TIME RANGES:
  Commands accepting a range understand 30m, 2h, 1d and 1w shorthand.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides POMO_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides POMO_DB_FILENAME)")

	flags.Duration("work", 0, "Work interval length (overrides POMO_TIMER_WORK)")
	flags.Duration("short-break", 0, "Short break length (overrides POMO_TIMER_SHORT_BREAK)")
	flags.Duration("long-break", 0, "Long break length (overrides POMO_TIMER_LONG_BREAK)")
	flags.Int("sessions", 0, "Sessions before a long break (overrides POMO_TIMER_SESSIONS)")

	flags.String("time-format", "", "Time display format (overrides POMO_TIME_DISPLAY_FORMAT)")
	flags.Bool("date-only", false, "Show dates without times (overrides POMO_DISPLAY_DATE_ONLY)")
	flags.Bool("no-color", false, "Disable colored output")

	flags.Duration("app-timeout", 0, "Application timeout (overrides POMO_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides POMO_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.taskCommand(),
		r.tagCommand(),
		r.startCommand(),
		r.stopCommand(),
		r.statusCommand(),
		r.resumeCommand(),
		r.logCommand(),
		r.configCommand(),
		r.summaryCommand(),
		r.exportCommand(),
	)
}

// run wraps a handler with the application timeout
func (r *RootCommand) run(handler func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
		defer cancel()
		return handler(ctx, cmd, args)
	}
}

func (r *RootCommand) taskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the task list",
	}

	handler := NewTaskCommands(r.app)

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task at the end of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.run(handler.Add),
	}
	addCmd.Flags().String("notes", "", "Free-form notes for the task")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the task list",
		Args:  cobra.NoArgs,
		RunE:  r.run(handler.List),
	}
	listCmd.Flags().Bool("all", false, "Include archived tasks")
	listCmd.Flags().String("tag", "", "Only tasks carrying this tag")

	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a task's name or notes",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.run(handler.Edit),
	}
	editCmd.Flags().String("name", "", "New task name")
	editCmd.Flags().String("notes", "", "New notes")

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task and its recorded intervals",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(handler.Delete),
	}
	deleteCmd.Flags().Bool("force", false, "Skip the confirmation prompt")

	taskCmd.AddCommand(
		addCmd,
		listCmd,
		&cobra.Command{
			Use:   "done [id]",
			Short: "Mark a task complete",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run(handler.Done),
		},
		&cobra.Command{
			Use:   "reopen [id]",
			Short: "Clear a task's completion mark",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run(handler.Reopen),
		},
		&cobra.Command{
			Use:   "archive [id]",
			Short: "Hide a task from the default list",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run(handler.Archive),
		},
		&cobra.Command{
			Use:   "unarchive [id]",
			Short: "Restore an archived task",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run(handler.Unarchive),
		},
		editCmd,
		&cobra.Command{
			Use:   "move [id] [position]",
			Short: "Move a task to a new position",
			Args:  cobra.ExactArgs(2),
			RunE:  r.run(handler.Move),
		},
		deleteCmd,
	)
	return taskCmd
}

func (r *RootCommand) tagCommand() *cobra.Command {
	tagCmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags and task assignments",
	}

	handler := NewTagCommands(r.app)

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(handler.Add),
	}
	addCmd.Flags().String("color", "", "Tag color as #rrggbb")

	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a tag's name or color",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(handler.Edit),
	}
	editCmd.Flags().String("name", "", "New tag name")
	editCmd.Flags().String("color", "", "New color as #rrggbb")

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a tag (tasks are kept)",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(handler.Delete),
	}
	deleteCmd.Flags().Bool("force", false, "Skip the confirmation prompt")

	tagCmd.AddCommand(
		addCmd,
		&cobra.Command{
			Use:   "list",
			Short: "Show all tags",
			Args:  cobra.NoArgs,
			RunE:  r.run(handler.List),
		},
		editCmd,
		&cobra.Command{
			Use:   "move [id] [position]",
			Short: "Move a tag to a new position",
			Args:  cobra.ExactArgs(2),
			RunE:  r.run(handler.Move),
		},
		deleteCmd,
		&cobra.Command{
			Use:   "assign [task-id] [tag]",
			Short: "Assign a tag to a task",
			Args:  cobra.ExactArgs(2),
			RunE:  r.run(handler.Assign),
		},
		&cobra.Command{
			Use:   "unassign [task-id] [tag]",
			Short: "Remove a tag from a task",
			Args:  cobra.ExactArgs(2),
			RunE:  r.run(handler.Unassign),
		},
	)
	return tagCmd
}

func (r *RootCommand) startCommand() *cobra.Command {
	handler := NewTimerCommands(r.app)
	return &cobra.Command{
		Use:   "start [task-id]",
		Short: "Start a work interval on a task",
		Long: `Start a Pomodoro work interval on the given task. A running interval is
stopped first. Without an argument the remembered task selection is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: r.run(handler.Start),
	}
}

func (r *RootCommand) stopCommand() *cobra.Command {
	handler := NewTimerCommands(r.app)
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running interval",
		Args:  cobra.NoArgs,
		RunE:  r.run(handler.Stop),
	}
}

func (r *RootCommand) statusCommand() *cobra.Command {
	handler := NewTimerCommands(r.app)
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running interval, if any",
		Args:  cobra.NoArgs,
		RunE:  r.run(handler.Status),
	}
}

func (r *RootCommand) resumeCommand() *cobra.Command {
	handler := NewTimerCommands(r.app)
	return &cobra.Command{
		Use:   "resume",
		Short: "Re-attach to an interval left running by a previous session",
		Long: `Reconcile interval logs left running by a crash or forgotten session,
then re-attach to the one still in progress.`,
		Args: cobra.NoArgs,
		RunE: r.run(handler.Resume),
	}
}

func (r *RootCommand) logCommand() *cobra.Command {
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect the recorded interval history",
	}

	handler := NewLogCommands(r.app)

	listCmd := &cobra.Command{
		Use:   "list [range] [text]",
		Short: "List recorded intervals",
		Long: `List recorded intervals, optionally limited to a time range (30m, 2h, 1d, 1w),
matched against task names, or filtered by task or tag.`,
		Args: cobra.MaximumNArgs(2),
		RunE: r.run(handler.List),
	}
	listCmd.Flags().Int64("task", 0, "Only intervals for this task ID")
	listCmd.Flags().String("tag", "", "Only intervals for tasks carrying this tag")

	logCmd.AddCommand(
		listCmd,
		&cobra.Command{
			Use:   "delete [id]",
			Short: "Delete one recorded interval",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run(handler.Delete),
		},
	)
	return logCmd
}

func (r *RootCommand) configCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write persisted settings",
	}

	handler := NewConfigCommands(r.app)

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "get [key]",
			Short: "Show one setting",
			Args:  cobra.ExactArgs(1),
			RunE:  r.run(handler.Get),
		},
		&cobra.Command{
			Use:   "set [key] [value]",
			Short: "Store a setting",
			Args:  cobra.ExactArgs(2),
			RunE:  r.run(handler.Set),
		},
		&cobra.Command{
			Use:   "list",
			Short: "Show all stored settings",
			Args:  cobra.NoArgs,
			RunE:  r.run(handler.List),
		},
	)
	return configCmd
}

func (r *RootCommand) summaryCommand() *cobra.Command {
	handler := NewSummaryCommand(r.app)
	summaryCmd := &cobra.Command{
		Use:   "summary [range]",
		Short: "Show recorded time totals",
		Long: `Show today's totals, or per-tag totals over a range.

Examples:
  pomo summary              # Today's sessions and time
  pomo summary --task 3     # History for task 3
  pomo summary 1w --tags    # Per-tag totals over the last week`,
		Args: cobra.MaximumNArgs(1),
		RunE: r.run(handler.Execute),
	}
	summaryCmd.Flags().Int64("task", 0, "Summarize a single task")
	summaryCmd.Flags().Bool("tags", false, "Break totals down per tag")
	return summaryCmd
}

func (r *RootCommand) exportCommand() *cobra.Command {
	handler := NewExportCommand(r.app)
	return &cobra.Command{
		Use:   "export format=csv",
		Short: "Export the interval history",
		Long: `Export the recorded interval history in the given format.

Supported formats:
  csv - comma-separated values

Example:
  pomo export format=csv > logs.csv`,
		Args: cobra.ExactArgs(1),
		RunE: r.run(handler.Execute),
	}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	if dbDir, _ := flags.GetString("db-dir"); dbDir != "" {
		r.config.Database.Dir = dbDir
	}
	if dbFilename, _ := flags.GetString("db-filename"); dbFilename != "" {
		r.config.Database.Filename = dbFilename
	}

	if work, _ := flags.GetDuration("work"); work > 0 {
		r.config.Timer.WorkDuration = work
	}
	if shortBreak, _ := flags.GetDuration("short-break"); shortBreak > 0 {
		r.config.Timer.ShortBreak = shortBreak
	}
	if longBreak, _ := flags.GetDuration("long-break"); longBreak > 0 {
		r.config.Timer.LongBreak = longBreak
	}
	if sessions, _ := flags.GetInt("sessions"); sessions > 0 {
		r.config.Timer.SessionsPerLongBreak = sessions
	}

	if timeFormat, _ := flags.GetString("time-format"); timeFormat != "" {
		r.config.Display.TimeFormat = timeFormat
	}
	if dateOnly, _ := flags.GetBool("date-only"); dateOnly {
		r.config.Display.DateOnly = dateOnly
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		r.config.Display.Color = false
	}

	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		r.config.Application.Timeout = appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return nil
}

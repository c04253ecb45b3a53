package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomotrack/internal/api"
	"pomotrack/internal/config"
	"pomotrack/internal/repository/sqlite"
)

// newTestRoot builds a root command over an in-memory database with
// captured output and colors off.
func newTestRoot(t *testing.T) (*RootCommand, *bytes.Buffer) {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := config.NewConfig()
	cfg.Display.Color = false

	root := NewRootCommand(api.New(repo, cfg), cfg)
	out := &bytes.Buffer{}
	root.app.out = out
	return root, out
}

func runCommand(t *testing.T, root *RootCommand, out *bytes.Buffer, args ...string) string {
	t.Helper()

	out.Reset()
	root.cmd.SetArgs(args)
	require.NoError(t, root.cmd.Execute())
	return out.String()
}

func TestTaskAddAndList(t *testing.T) {
	root, out := newTestRoot(t)

	output := runCommand(t, root, out, "task", "add", "Write", "the", "report")
	assert.Contains(t, output, "Added task 1: Write the report")

	runCommand(t, root, out, "task", "add", "Review PRs", "--notes", "all of them")

	output = runCommand(t, root, out, "task", "list")
	assert.Contains(t, output, "1. [ ] Write the report")
	assert.Contains(t, output, "2. [ ] Review PRs")
}

func TestTaskLifecycleCommands(t *testing.T) {
	root, out := newTestRoot(t)

	runCommand(t, root, out, "task", "add", "lifecycle")

	output := runCommand(t, root, out, "task", "done", "1")
	assert.Contains(t, output, "Completed: lifecycle")

	output = runCommand(t, root, out, "task", "list")
	assert.Contains(t, output, "[x] lifecycle")

	output = runCommand(t, root, out, "task", "reopen", "1")
	assert.Contains(t, output, "Reopened: lifecycle")

	output = runCommand(t, root, out, "task", "archive", "1")
	assert.Contains(t, output, "Archived: lifecycle")

	output = runCommand(t, root, out, "task", "list")
	assert.Contains(t, output, "No tasks")

	output = runCommand(t, root, out, "task", "list", "--all")
	assert.Contains(t, output, "lifecycle")
	assert.Contains(t, output, "(archived)")

	output = runCommand(t, root, out, "task", "unarchive", "1")
	assert.Contains(t, output, "Restored: lifecycle")
}

func TestTaskEditAndMove(t *testing.T) {
	root, out := newTestRoot(t)

	runCommand(t, root, out, "task", "add", "a")
	runCommand(t, root, out, "task", "add", "b")

	output := runCommand(t, root, out, "task", "edit", "1", "--name", "renamed")
	assert.Contains(t, output, "Updated task 1: renamed")

	output = runCommand(t, root, out, "task", "move", "1", "2")
	assert.Contains(t, output, "Moved task 1 to position 2")

	output = runCommand(t, root, out, "task", "list")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "b")
	assert.Contains(t, lines[1], "renamed")
}

func TestTaskDelete(t *testing.T) {
	root, out := newTestRoot(t)

	runCommand(t, root, out, "task", "add", "doomed")

	// Declined prompt leaves the task alone
	root.app.in = strings.NewReader("n\n")
	output := runCommand(t, root, out, "task", "delete", "1")
	assert.Contains(t, output, "Cancelled")

	output = runCommand(t, root, out, "task", "delete", "1", "--force")
	assert.Contains(t, output, "Deleted: doomed")

	output = runCommand(t, root, out, "task", "list")
	assert.Contains(t, output, "No tasks")
}

func TestTagCommands(t *testing.T) {
	root, out := newTestRoot(t)

	output := runCommand(t, root, out, "tag", "add", "focus", "--color", "#00cc66")
	assert.Contains(t, output, "Added tag 1")

	runCommand(t, root, out, "task", "add", "tagged work")

	output = runCommand(t, root, out, "tag", "assign", "1", "focus")
	assert.Contains(t, output, "Tagged task 1 with focus")

	output = runCommand(t, root, out, "task", "list")
	assert.Contains(t, output, "#focus")

	output = runCommand(t, root, out, "task", "list", "--tag", "focus")
	assert.Contains(t, output, "tagged work")

	output = runCommand(t, root, out, "tag", "unassign", "1", "focus")
	assert.Contains(t, output, "Removed focus from task 1")

	output = runCommand(t, root, out, "tag", "list")
	assert.Contains(t, output, "#00cc66")

	output = runCommand(t, root, out, "tag", "delete", "focus", "--force")
	assert.Contains(t, output, "Deleted tag: focus")
}

func TestTimerCommands(t *testing.T) {
	root, out := newTestRoot(t)

	runCommand(t, root, out, "task", "add", "focus block")

	output := runCommand(t, root, out, "status")
	assert.Contains(t, output, "No interval is running")

	output = runCommand(t, root, out, "start", "1")
	assert.Contains(t, output, "Working on: focus block")
	assert.Contains(t, output, "Up next: short break")

	output = runCommand(t, root, out, "status")
	assert.Contains(t, output, "Working on: focus block")
	assert.Contains(t, output, "Remaining:")

	output = runCommand(t, root, out, "resume")
	assert.Contains(t, output, "Resumed: focus block")

	// Too short to record: the interval is discarded
	output = runCommand(t, root, out, "stop")
	assert.NotContains(t, output, "Recorded")
}

func TestStartWithoutArgument(t *testing.T) {
	root, out := newTestRoot(t)

	runCommand(t, root, out, "task", "add", "selected work")

	output := runCommand(t, root, out, "start")
	assert.Contains(t, output, "No task selected")

	runCommand(t, root, out, "start", "1")

	// Restarting without an argument re-uses the remembered selection
	output = runCommand(t, root, out, "start")
	assert.Contains(t, output, "Working on: selected work")
}

func TestStartUnknownTask(t *testing.T) {
	root, out := newTestRoot(t)

	root.cmd.SetArgs([]string{"start", "42"})
	err := root.cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	_ = out
}

func TestConfigCommands(t *testing.T) {
	root, out := newTestRoot(t)

	output := runCommand(t, root, out, "config", "set", "work_duration", "50m")
	assert.Contains(t, output, "work_duration = 50m")

	output = runCommand(t, root, out, "config", "get", "work_duration")
	assert.Equal(t, "50m\n", output)

	output = runCommand(t, root, out, "config", "list")
	assert.Contains(t, output, "work_duration = 50m")

	root.cmd.SetArgs([]string{"config", "set", "work_duration", "whenever"})
	assert.Error(t, root.cmd.Execute())
}

func TestSummaryCommand(t *testing.T) {
	root, out := newTestRoot(t)

	runCommand(t, root, out, "task", "add", "summarized")

	output := runCommand(t, root, out, "summary")
	assert.Contains(t, output, "Today")
	assert.Contains(t, output, "0 sessions")

	// Flag values persist on the shared command tree, so the --task run
	// comes last
	output = runCommand(t, root, out, "summary", "1w", "--tags")
	assert.Contains(t, output, "No recorded time")

	output = runCommand(t, root, out, "summary", "--task", "1")
	assert.Contains(t, output, "summarized")
}

func TestLogCommands(t *testing.T) {
	root, out := newTestRoot(t)

	output := runCommand(t, root, out, "log", "list")
	assert.Contains(t, output, "No recorded intervals")

	runCommand(t, root, out, "task", "add", "logged")
	runCommand(t, root, out, "start", "1")

	output = runCommand(t, root, out, "log", "list")
	assert.Contains(t, output, "running")
	assert.Contains(t, output, "logged")

	output = runCommand(t, root, out, "log", "list", "logg")
	assert.Contains(t, output, "logged")

	output = runCommand(t, root, out, "log", "list", "something else")
	assert.Contains(t, output, "No recorded intervals")

	root.cmd.SetArgs([]string{"log", "delete", "99"})
	assert.Error(t, root.cmd.Execute())
}

func TestExportCommand(t *testing.T) {
	root, out := newTestRoot(t)

	runCommand(t, root, out, "task", "add", "exported")
	runCommand(t, root, out, "start", "1")

	output := runCommand(t, root, out, "export", "format=csv")
	assert.Contains(t, output, "# pomotrack export")
	assert.Contains(t, output, "log_id,task_id,task_name,tags,started_at,stopped_at,elapsed_seconds")
	assert.Contains(t, output, "exported")

	root.cmd.SetArgs([]string{"export", "format=xml"})
	assert.Error(t, root.cmd.Execute())
}

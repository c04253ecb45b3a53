package domain

// Setting represents one persisted user preference.
type Setting struct {
	Key   string
	Value string
}

// Well-known setting keys.
const (
	SettingSelectedTaskID = "selected_task_id"
	SettingTagFilter      = "tag_filter"
	SettingShowArchived   = "show_archived"
	SettingInstallID      = "install_id"
	SettingWorkDuration   = "work_duration"
	SettingShortBreak     = "short_break"
	SettingLongBreak      = "long_break"
	SettingSessionsPerLongBreak = "sessions_per_long_break"
)

package config

const (
	// ConfigFileName is the config file searched for from the working
	// directory upward.
	ConfigFileName = "pm-bot.yml"

	// DefaultReportPath is where the report command writes the task list.
	DefaultReportPath = "docs/tasks.md"

	// DefaultNotifyLogName is the dispatch log created next to the report
	// when notify_log is not configured.
	DefaultNotifyLogName = "notify_log.jsonl"

	// Owner types accepted for the project query.
	OwnerTypeUser         = "user"
	OwnerTypeOrganization = "organization"
)

// NewDefault creates a Config with default values. Both destinations
// default to disabled so a bare environment never notifies.
func NewDefault() *Config {
	return &Config{
		OwnerType:  OwnerTypeUser,
		ReportPath: DefaultReportPath,
	}
}

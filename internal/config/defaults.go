package config

const (
	defaultConfigPath         = "~/.config/filesort/config.toml"
	defaultSourceDir          = "~/Downloads"
	defaultJobs               = 8
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultJournalLockTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir: defaultSourceDir,
		},
		Organize: Organize{
			Jobs: defaultJobs,
		},
		Journal: Journal{
			Enabled:            false,
			Path:               defaultJournalPath(),
			LockTimeoutSeconds: defaultJournalLockTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

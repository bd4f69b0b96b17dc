package config

const (
	defaultLibraryDir      = "~/karaoke"
	defaultDataDir         = "~/.local/share/songbook"
	defaultLogDir          = "~/.local/share/songbook/logs"
	defaultBackupDir       = "~/.local/share/songbook/backups"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultDebounceSeconds = 2
)

func defaultVideoExtensions() []string {
	return []string{".mp4", ".mkv", ".avi", ".webm"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
			BackupDir:  defaultBackupDir,
		},
		Scanner: Scanner{
			VideoExtensions: defaultVideoExtensions(),
			EnrichTags:      true,
			DebounceSeconds: defaultDebounceSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

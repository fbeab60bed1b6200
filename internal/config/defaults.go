package config

const (
	defaultWorkDir          = "~/.local/share/mccread/work"
	defaultLogDir           = "~/.local/share/mccread/logs"
	defaultRunsDBPath       = "~/.local/share/mccread/runs.db"
	defaultInspectorBinary  = "caption-inspector"
	defaultInspectorTimeout = 300
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Inspector: Inspector{
			Binary:         defaultInspectorBinary,
			TimeoutSeconds: defaultInspectorTimeout,
		},
		Language: Language{
			DetectionEnabled: true,
		},
		Runs: Runs{
			Enabled: true,
			DBPath:  defaultRunsDBPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

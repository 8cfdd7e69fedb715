package config

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Core: Core{
			Threads: 20,
			Timeout: "5m",
			Retry: RetryConfig{
				MaxRetries:      10,
				InitialInterval: "500ms",
				MaxInterval:     "30s",
			},
			Logging: LoggingConfig{
				Enabled: true,
				Level:   "debug",
				Rotation: RotationConfig{
					MaxSize:  "10MB",
					MaxFiles: 3,
				},
			},
		},
		Restore: Restore{
			Verbose: false,
			Exclude: ExcludeConfig{
				Names:    []string{},
				Patterns: []string{},
				Globs:    []string{},
			},
		},
		UI: UI{
			Progress:    "auto",
			ExitMessage: "",
		},
	}
}

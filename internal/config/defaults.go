package config

// Defaults returns the built-in settings.
func Defaults() Settings {
	backup := true
	return Settings{
		Backup:   &backup,
		LogLevel: "warn",
	}
}

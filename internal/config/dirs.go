package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Dir returns the application configuration directory, honoring the
// config_dir setting when present. Defaults to ~/.config/subtrail.
func Dir() string {
	if v := viper.GetString("config_dir"); v != "" {
		return ExpandPath(v)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".subtrail"
	}
	return filepath.Join(home, ".config", "subtrail")
}

// DatabasePath returns the SQLite database path, honoring database.path
// when set. Defaults to <config dir>/subtrail.db.
func DatabasePath() string {
	if v := viper.GetString("database.path"); v != "" {
		return ExpandPath(v)
	}
	return filepath.Join(Dir(), "subtrail.db")
}

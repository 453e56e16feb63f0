package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appDirName = "stylemate"

// GetDefaultConfigPath returns the config file location under XDG_CONFIG_HOME.
func GetDefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appDirName, "config.json")
}

// GetDefaultDatabasePath returns the sqlite file location under
// XDG_STATE_HOME.
func GetDefaultDatabasePath() string {
	return filepath.Join(xdg.StateHome, appDirName, "stylemate.db")
}

// GetDefaultVectorPath returns the on-disk vector index location under
// XDG_STATE_HOME.
func GetDefaultVectorPath() string {
	return filepath.Join(xdg.StateHome, appDirName, "vectors")
}

package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the path configuration for subproc.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/subproc)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/subproc)
	DataDir string
}

// DefaultPaths returns the default paths based on the XDG Base Directory
// spec. On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		return &Paths{
			ConfigDir: filepath.Join(appData, "subproc"),
			DataDir:   filepath.Join(localAppData, "subproc"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "subproc"),
		DataDir:   filepath.Join(dataHome, "subproc"),
	}
}

// ConfigFile returns the path of the YAML config file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// HistoryDB returns the default path of the run-history database.
func (p *Paths) HistoryDB() string {
	return filepath.Join(p.DataDir, "history.db")
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// SettingsFileName is looked up in the working directory, then in the user
// config directory.
const SettingsFileName = "fireplan.toml"

// Settings are application preferences, separate from plan files.
type Settings struct {
	Server  ServerSettings  `toml:"server"`
	Output  OutputSettings  `toml:"output"`
	Logging LoggingSettings `toml:"logging"`
	Display DisplaySettings `toml:"display"`
}

type ServerSettings struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type OutputSettings struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory"`
}

type LoggingSettings struct {
	Level string `toml:"level"`
}

type DisplaySettings struct {
	Currency  string `toml:"currency"`
	Frequency string `toml:"frequency"`
}

// Addr is the listen address for the HTTP API.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() *Settings {
	return &Settings{
		Server:  ServerSettings{Host: "127.0.0.1", Port: 8087},
		Output:  OutputSettings{Format: "console", Directory: "."},
		Logging: LoggingSettings{Level: "info"},
		Display: DisplaySettings{Currency: "THB", Frequency: "yearly"},
	}
}

// SettingsInfo tells the caller where settings came from.
type SettingsInfo struct {
	Path          string
	Found         bool
	PortSpecified bool
}

// LoadSettings reads path, or searches the default locations when path is
// empty. Missing files yield the defaults.
func LoadSettings(path string) (*Settings, SettingsInfo, error) {
	settings := DefaultSettings()
	info := SettingsInfo{}

	candidates := []string{path}
	if path == "" {
		candidates = defaultSettingsPaths()
	}

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && path == "" {
				continue
			}
			return nil, info, fmt.Errorf("failed to read settings %s: %w", candidate, err)
		}

		if err := toml.Unmarshal(data, settings); err != nil {
			return nil, info, fmt.Errorf("failed to parse settings %s: %w", candidate, err)
		}
		info = SettingsInfo{Path: candidate, Found: true, PortSpecified: portSpecified(data)}
		break
	}

	if err := settings.Validate(); err != nil {
		return nil, info, err
	}
	return settings, info, nil
}

// SaveSettings writes settings as TOML.
func SaveSettings(settings *Settings, path string) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the settings values.
func (s *Settings) Validate() error {
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", s.Server.Port)
	}
	switch s.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of trace, debug, info, warn, error", s.Logging.Level)
	}
	return nil
}

func defaultSettingsPaths() []string {
	paths := []string{SettingsFileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "fireplan", SettingsFileName))
	}
	return paths
}

func portSpecified(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	server, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = server["port"]
	return ok
}

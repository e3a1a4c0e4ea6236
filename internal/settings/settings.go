// Package settings persists meter configuration as a TOML file: the
// calibration offset, the preferred capture device and the weighting mode.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/cwbudde/algo-spl/measure/spl"
)

type Settings struct {
	Calibration CalibrationSettings `toml:"calibration"`
	Capture     CaptureSettings     `toml:"capture"`
}

type CalibrationSettings struct {
	// Offset in dB, added to the raw dBFS level. Clamped to [60, 130] on
	// load, 1 dB step.
	Offset float64 `toml:"offset"`
}

type CaptureSettings struct {
	Device   string `toml:"device"`
	Weighted bool   `toml:"weighted"`
}

func Default() *Settings {
	return &Settings{
		Calibration: CalibrationSettings{Offset: spl.DefaultCalibrationOffset},
		Capture:     CaptureSettings{Weighted: true},
	}
}

// DefaultPath returns the per-user settings location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve config dir: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}

	return filepath.Join(configDir, "splmeter", "settings.toml"), nil
}

// Load reads settings from the default location. A missing file yields the
// defaults; a malformed file is an error.
func Load() (*Settings, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}

	return LoadFrom(path)
}

func LoadFrom(path string) (*Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	s.Calibration.Offset = spl.ClampOffset(s.Calibration.Offset)

	return s, nil
}

// SaveTo writes the settings, creating parent directories as needed.
func (s *Settings) SaveTo(path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

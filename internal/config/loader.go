package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "lander.yaml"

// Load loads and validates the lander settings.
// Search order: customPath -> ~/.lander/configs/lander.yaml -> ./configs/lander.yaml -> embedded default
func Load(customPath string) (Settings, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Settings{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		s, err := Decode(data)
		if err != nil {
			return Settings{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := s.Validate(); err != nil {
			return Settings{}, err
		}
		return s, nil
	}

	// User and local files that fail to parse or validate are skipped.
	candidates := []string{userConfigPath(fileName), filepath.Join("configs", fileName)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if s, err := Decode(data); err == nil && s.Validate() == nil {
			return s, nil
		}
	}

	s, err := Decode(defaultLanderYAML)
	if err != nil {
		return DefaultSettings(), nil // Fallback to hardcoded if embed fails
	}
	return s, s.Validate()
}

// Decode parses a settings document. Fields the document leaves out are
// derived by Scaled from its screen size, or from the reference resolution
// when the screen section is absent.
func Decode(data []byte) (Settings, error) {
	var probe struct {
		Screen ScreenSettings `yaml:"screen"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Settings{}, err
	}

	s := DefaultSettings()
	if probe.Screen.Width > 0 && probe.Screen.Height > 0 {
		s = Scaled(probe.Screen.Width, probe.Screen.Height)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lander", "configs", filename)
}

// ParsePreset converts a flag value into a difficulty preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", name)
	}
}

// ApplyPreset modifies the settings based on a difficulty preset.
func ApplyPreset(s *Settings, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		s.Difficulty.Enabled = false
	} else {
		s.Difficulty.Enabled = true
		s.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the fuel budget based on difficulty
	switch preset {
	case DifficultyEasy:
		s.Lander.InitialFuel *= 1.5
	case DifficultyHard:
		s.Lander.InitialFuel *= 0.75
	}
}

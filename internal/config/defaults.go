package config

import (
	_ "embed"
)

//go:embed defaults/lander.yaml
var defaultLanderYAML []byte

// DefaultYAML returns the embedded default settings document.
func DefaultYAML() []byte {
	return defaultLanderYAML
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Zones maps a zone name to the hotel names belonging to it.
// Loaded once at startup and treated as immutable afterwards.
type Zones map[string][]string

// LoadZones reads the zone definition file (YAML, zone name -> list of
// hotel names). A missing file is an error; an empty file yields an
// empty mapping.
func LoadZones(path string) (Zones, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zones file: %w", err)
	}

	zones := Zones{}
	if err := yaml.Unmarshal(data, &zones); err != nil {
		return nil, fmt.Errorf("parse zones file: %w", err)
	}
	return zones, nil
}

// Hotels returns the hotel names for a zone, or nil for an unknown zone.
func (z Zones) Hotels(name string) []string {
	return z[name]
}

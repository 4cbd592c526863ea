package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadZones(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	content := "zone1:\n  - Hotel A\n  - Hotel B\nzone2:\n  - Hotel C\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	zones, err := LoadZones(path)
	if err != nil {
		t.Fatalf("LoadZones failed: %v", err)
	}

	if len(zones.Hotels("zone1")) != 2 {
		t.Errorf("Expected 2 hotels in zone1, got %d", len(zones.Hotels("zone1")))
	}
	if zones.Hotels("zone2")[0] != "Hotel C" {
		t.Errorf("Unexpected zone2 contents: %v", zones.Hotels("zone2"))
	}
	if zones.Hotels("missing") != nil {
		t.Error("Unknown zone must return nil")
	}
}

func TestLoadZonesMissingFile(t *testing.T) {
	if _, err := LoadZones("/does/not/exist.yaml"); err == nil {
		t.Error("Expected error for missing zones file")
	}
}

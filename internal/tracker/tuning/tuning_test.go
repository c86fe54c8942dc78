package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()

	if len(cfg.GetLayerRadii()) != LayersNum {
		t.Fatalf("GetLayerRadii() len = %d, want %d", len(cfg.GetLayerRadii()), LayersNum)
	}
	if len(cfg.GetLayerZHalfExtent()) != LayersNum {
		t.Fatalf("GetLayerZHalfExtent() len = %d, want %d", len(cfg.GetLayerZHalfExtent()), LayersNum)
	}
	if len(cfg.GetTrackletMaxDeltaZ()) != TrackletsPerRoad-1 && len(cfg.GetTrackletMaxDeltaZ()) != TrackletsPerRoad {
		t.Errorf("GetTrackletMaxDeltaZ() len = %d", len(cfg.GetTrackletMaxDeltaZ()))
	}
	if cfg.GetCellsMinLevel() < 1 {
		t.Errorf("GetCellsMinLevel() = %d, want >= 1", cfg.GetCellsMinLevel())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must pass Validate(): %v", err)
	}
}

func TestEmptyTuningConfig(t *testing.T) {
	cfg := EmptyTuningConfig()

	if cfg.LayerRadii != nil {
		t.Error("expected LayerRadii to be nil")
	}
	if cfg.PhiCoordinateCut != nil {
		t.Error("expected PhiCoordinateCut to be nil")
	}
	// Getters must still return usable production defaults.
	if len(cfg.GetLayerRadii()) != LayersNum {
		t.Errorf("GetLayerRadii() on empty config len = %d, want %d", len(cfg.GetLayerRadii()), LayersNum)
	}
}

func TestLoadTuningConfigOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "override.json")

	data := `{"phi_coordinate_cut": 0.5, "cells_min_level": 4}`
	if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
		t.Fatalf("write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("LoadTuningConfig: %v", err)
	}
	if cfg.GetPhiCoordinateCut() != 0.5 {
		t.Errorf("GetPhiCoordinateCut() = %v, want 0.5", cfg.GetPhiCoordinateCut())
	}
	if cfg.GetCellsMinLevel() != 4 {
		t.Errorf("GetCellsMinLevel() = %v, want 4", cfg.GetCellsMinLevel())
	}
	// Untouched fields keep their production defaults.
	if len(cfg.GetLayerRadii()) != LayersNum {
		t.Errorf("GetLayerRadii() len = %d, want %d", len(cfg.GetLayerRadii()), LayersNum)
	}
}

func TestLoadTuningConfigMissing(t *testing.T) {
	if _, err := LoadTuningConfig("/nonexistent/path/config.json"); err == nil {
		t.Error("expected error loading missing file")
	}
}

func TestLoadTuningConfigRejectsNonJSON(t *testing.T) {
	if _, err := LoadTuningConfig("/some/path/config.yaml"); err == nil {
		t.Error("expected error for non-.json extension")
	}
}

func TestLoadTuningConfigRejectsLargeFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "large.json")

	if err := os.WriteFile(configPath, make([]byte, 2*1024*1024), 0644); err != nil {
		t.Fatalf("write large file: %v", err)
	}
	if _, err := LoadTuningConfig(configPath); err == nil {
		t.Error("expected error for file size > 1MB")
	}
}

func TestValidateArrayLengths(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TuningConfig
		wantErr bool
	}{
		{name: "empty config is valid", cfg: &TuningConfig{}, wantErr: false},
		{
			name:    "wrong layer_radii length",
			cfg:     &TuningConfig{LayerRadii: []float64{1, 2, 3}},
			wantErr: true,
		},
		{
			name:    "wrong cell_max_dca length",
			cfg:     &TuningConfig{CellMaxDCA: []float64{1, 2}},
			wantErr: true,
		},
		{
			name:    "cells_min_level below 1",
			cfg:     &TuningConfig{CellsMinLevel: intPtr(0)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func intPtr(v int) *int { return &v }

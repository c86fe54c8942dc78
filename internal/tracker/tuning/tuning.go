// Package tuning holds the geometric and gating constants that drive the
// cellular-automaton tracker. Values are fixed at build but overridable
// from a JSON tuning file using the same partial-override convention as
// the rest of this codebase: every field is a pointer, nil means "use
// the production default".
package tuning

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the canonical tuning defaults file, the single
// source of truth for all default gating values.
const DefaultConfigPath = "config/tracker.defaults.json"

// Fixed structural constants. Unlike the gating thresholds below, these
// are not overridable: they size arrays throughout the pipeline and
// changing them per-run would invalidate the lookup-table invariants.
const (
	LayersNum        = 7
	TrackletsPerRoad = 6
	CellsPerRoad     = 5
	ZBins            = 20
	PhiBins          = 20
	Unused           = -1

	// FloatMinThreshold is the numerical floor: any divisor magnitude
	// below this is treated as zero, never fed to a division.
	FloatMinThreshold = 1e-20
)

// TuningConfig is the JSON-overridable set of gating thresholds.
// Fields left nil at load time fall back to GetX() production defaults.
type TuningConfig struct {
	TrackletMaxDeltaZ     []float64 `json:"tracklet_max_delta_z,omitempty"`
	PhiCoordinateCut      *float64  `json:"phi_coordinate_cut,omitempty"`
	CellMaxDeltaTanLambda *float64  `json:"cell_max_delta_tan_lambda,omitempty"`
	CellMaxDeltaPhi       *float64  `json:"cell_max_delta_phi,omitempty"`
	CellMaxDeltaZ         []float64 `json:"cell_max_delta_z,omitempty"`
	CellMaxDCA            []float64 `json:"cell_max_dca,omitempty"`
	NeighbourMaxDeltaN2   []float64 `json:"neighbour_max_delta_n2,omitempty"`
	NeighbourMaxDeltaK    []float64 `json:"neighbour_max_delta_k,omitempty"`
	CellsMinLevel         *int      `json:"cells_min_level,omitempty"`

	LayerRadii       []float64 `json:"layer_radii,omitempty"`
	LayerZHalfExtent []float64 `json:"layer_z_half_extent,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with every field nil, so all
// Get* accessors fall back to production defaults.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. Fields omitted
// from the file retain their production defaults, so partial overrides
// are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("tuning file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat tuning file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("tuning file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning config: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from
// DefaultConfigPath, searching parent directories for it. Panics if the
// file cannot be found; intended for tests and binaries that have
// already validated config availability.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
		"../../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run from repository root or pass an explicit path")
}

// Validate checks array-valued overrides have the expected lengths and
// that cells_min_level is at least 1. Other scalar overrides are not
// range-checked.
func (c *TuningConfig) Validate() error {
	if c.TrackletMaxDeltaZ != nil && len(c.TrackletMaxDeltaZ) != TrackletsPerRoad {
		return fmt.Errorf("tracklet_max_delta_z must have %d entries, got %d", TrackletsPerRoad, len(c.TrackletMaxDeltaZ))
	}
	if c.CellMaxDeltaZ != nil && len(c.CellMaxDeltaZ) != CellsPerRoad {
		return fmt.Errorf("cell_max_delta_z must have %d entries, got %d", CellsPerRoad, len(c.CellMaxDeltaZ))
	}
	if c.CellMaxDCA != nil && len(c.CellMaxDCA) != CellsPerRoad {
		return fmt.Errorf("cell_max_dca must have %d entries, got %d", CellsPerRoad, len(c.CellMaxDCA))
	}
	if c.NeighbourMaxDeltaN2 != nil && len(c.NeighbourMaxDeltaN2) != CellsPerRoad-1 {
		return fmt.Errorf("neighbour_max_delta_n2 must have %d entries, got %d", CellsPerRoad-1, len(c.NeighbourMaxDeltaN2))
	}
	if c.NeighbourMaxDeltaK != nil && len(c.NeighbourMaxDeltaK) != CellsPerRoad-1 {
		return fmt.Errorf("neighbour_max_delta_k must have %d entries, got %d", CellsPerRoad-1, len(c.NeighbourMaxDeltaK))
	}
	if c.LayerRadii != nil && len(c.LayerRadii) != LayersNum {
		return fmt.Errorf("layer_radii must have %d entries, got %d", LayersNum, len(c.LayerRadii))
	}
	if c.LayerZHalfExtent != nil && len(c.LayerZHalfExtent) != LayersNum {
		return fmt.Errorf("layer_z_half_extent must have %d entries, got %d", LayersNum, len(c.LayerZHalfExtent))
	}
	if c.CellsMinLevel != nil && *c.CellsMinLevel < 1 {
		return fmt.Errorf("cells_min_level must be >= 1, got %d", *c.CellsMinLevel)
	}
	return nil
}

// defaultLayerRadii and defaultLayerZHalfExtent are representative of
// the ALICE ITS upgrade barrel layout (metres), used when no override
// is configured.
var (
	defaultLayerRadii       = []float64{0.0231, 0.0317, 0.0403, 0.1954, 0.2453, 0.3048, 0.3546}
	defaultLayerZHalfExtent = []float64{0.147, 0.147, 0.147, 0.268, 0.268, 0.268, 0.268}
	defaultTrackletMaxDZ    = []float64{0.1, 0.1, 0.3, 0.3, 0.3, 0.3}
	defaultCellMaxDZ        = []float64{0.3, 0.3, 0.3, 0.3, 0.3}
	defaultCellMaxDCA       = []float64{0.05, 0.04, 0.05, 0.2, 0.4}
	defaultNeighbourMaxDN2  = []float64{0.002, 0.002, 0.002, 0.002}
	defaultNeighbourMaxDK   = []float64{0.003, 0.003, 0.003, 0.003}
)

// GetLayerRadii returns R_L, the seven layer radii (metres).
func (c *TuningConfig) GetLayerRadii() []float64 {
	if c.LayerRadii == nil {
		return defaultLayerRadii
	}
	return c.LayerRadii
}

// GetLayerZHalfExtent returns Z_L, the seven layer z half-extents (metres).
func (c *TuningConfig) GetLayerZHalfExtent() []float64 {
	if c.LayerZHalfExtent == nil {
		return defaultLayerZHalfExtent
	}
	return c.LayerZHalfExtent
}

// GetTrackletMaxDeltaZ returns the per-inner-layer tracklet z gate.
func (c *TuningConfig) GetTrackletMaxDeltaZ() []float64 {
	if c.TrackletMaxDeltaZ == nil {
		return defaultTrackletMaxDZ
	}
	return c.TrackletMaxDeltaZ
}

// GetPhiCoordinateCut returns the tracklet phi gate (radians).
func (c *TuningConfig) GetPhiCoordinateCut() float64 {
	if c.PhiCoordinateCut == nil {
		return 0.3
	}
	return *c.PhiCoordinateCut
}

// GetCellMaxDeltaTanLambda returns the cell tan(lambda) gate.
func (c *TuningConfig) GetCellMaxDeltaTanLambda() float64 {
	if c.CellMaxDeltaTanLambda == nil {
		return 0.025
	}
	return *c.CellMaxDeltaTanLambda
}

// GetCellMaxDeltaPhi returns the cell phi gate (radians).
func (c *TuningConfig) GetCellMaxDeltaPhi() float64 {
	if c.CellMaxDeltaPhi == nil {
		return 0.14
	}
	return *c.CellMaxDeltaPhi
}

// GetCellMaxDeltaZ returns the per-inner-layer cell z gate.
func (c *TuningConfig) GetCellMaxDeltaZ() []float64 {
	if c.CellMaxDeltaZ == nil {
		return defaultCellMaxDZ
	}
	return c.CellMaxDeltaZ
}

// GetCellMaxDCA returns the per-inner-layer cell DCA (pointing) gate.
func (c *TuningConfig) GetCellMaxDCA() []float64 {
	if c.CellMaxDCA == nil {
		return defaultCellMaxDCA
	}
	return c.CellMaxDCA
}

// GetNeighbourMaxDeltaN2 returns the per-layer-pair squared-normal gate.
func (c *TuningConfig) GetNeighbourMaxDeltaN2() []float64 {
	if c.NeighbourMaxDeltaN2 == nil {
		return defaultNeighbourMaxDN2
	}
	return c.NeighbourMaxDeltaN2
}

// GetNeighbourMaxDeltaK returns the per-layer-pair curvature gate.
func (c *TuningConfig) GetNeighbourMaxDeltaK() []float64 {
	if c.NeighbourMaxDeltaK == nil {
		return defaultNeighbourMaxDK
	}
	return c.NeighbourMaxDeltaK
}

// GetCellsMinLevel returns the lowest CA level eligible to seed a road.
func (c *TuningConfig) GetCellsMinLevel() int {
	if c.CellsMinLevel == nil {
		return 3
	}
	return *c.CellsMinLevel
}

// Package config loads the simulation configuration from YAML or JSON files
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/edgecharge/mcsd/core/cloud"
	"github.com/edgecharge/mcsd/core/edge"
	"github.com/edgecharge/mcsd/core/ev"
	"github.com/edgecharge/mcsd/core/metrics"
	"github.com/edgecharge/mcsd/core/trainer"
)

// Config is the root configuration of the simulation service.
type Config struct {
	Simulation SimulationConfig `json:"simulation"`
	EV         ev.Config        `json:"ev"`
	Edge       edge.Config      `json:"edge"`
	Cloud      cloud.Config     `json:"cloud"`
	Schedule   trainer.Schedule `json:"schedule"`
	Metrics    metrics.Config   `json:"metrics"`
}

// SimulationConfig holds dataset locations and run-level knobs.
type SimulationConfig struct {
	// TrajectoryRoot is the directory holding one trajectory CSV per
	// vehicle.
	TrajectoryRoot string `json:"trajectory_root"`
	// DispatchPointsPath is the CSV of candidate dispatch coordinates.
	DispatchPointsPath string `json:"dispatch_points_path"`
	// RegionsPath is the GeoJSON file of region boundaries.
	RegionsPath string `json:"regions_path"`
	// RegionIDs restricts the simulated regions; empty means all regions
	// found in the boundary file.
	RegionIDs []string `json:"region_ids"`
	// RandomSeed seeds externally supplied stochastic policies.
	RandomSeed int64 `json:"random_seed"`
}

// SetDefaults applies the reference dataset layout.
func (c *SimulationConfig) SetDefaults() {
	if c.TrajectoryRoot == "" {
		c.TrajectoryRoot = "dataset/traj_data"
	}
	if c.DispatchPointsPath == "" {
		c.DispatchPointsPath = "dataset/dispatch_points_400.csv"
	}
	if c.RegionsPath == "" {
		c.RegionsPath = "dataset/fcs_voronoi_regions.geojson"
	}
	if c.RandomSeed == 0 {
		c.RandomSeed = 42
	}
}

// Load reads and validates the configuration file. Values can be overridden
// through K_-prefixed environment variables, e.g. K_EV__SOC_THRESHOLD.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Simulation.SetDefaults()
	cfg.EV.SetDefaults()
	cfg.Edge.SetDefaults()
	cfg.Cloud.SetDefaults()
	cfg.Schedule.SetDefaults()
	if err := cfg.EV.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Edge.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Cloud.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Schedule.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

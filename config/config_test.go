package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
simulation:
  trajectory_root: data/traj
  region_ids: ["r1", "r2"]
ev:
  soc_threshold: 0.3
edge:
  region_radius_km: 5
cloud:
  allocation_interval: 6
schedule:
  max_iterations: 500
metrics:
  prometheus_port: ":9100"
  sinks:
    - type: nop
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/traj", cfg.Simulation.TrajectoryRoot)
	assert.Equal(t, []string{"r1", "r2"}, cfg.Simulation.RegionIDs)
	// untouched fields fall back to defaults
	assert.Equal(t, "dataset/dispatch_points_400.csv", cfg.Simulation.DispatchPointsPath)
	assert.Equal(t, int64(42), cfg.Simulation.RandomSeed)

	assert.InDelta(t, 0.3, cfg.EV.SoCThreshold, 1e-9)
	assert.InDelta(t, 0.18, cfg.EV.EnergyKWhPerKm, 1e-9)
	assert.InDelta(t, 5.0, cfg.Edge.RegionRadiusKm, 1e-9)
	assert.Equal(t, 6, cfg.Cloud.AllocationInterval)
	assert.Equal(t, 500, cfg.Schedule.MaxIterations)
	assert.Equal(t, ":9100", cfg.Metrics.PrometheusPort)
	require.Len(t, cfg.Metrics.Sinks, 1)
	assert.Equal(t, "nop", cfg.Metrics.Sinks[0].Type)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"ev": {"battery_capacity_kwh": 60}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, cfg.EV.BatteryCapacityKWh, 1e-9)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("K_EV__SOC_THRESHOLD", "0.45")
	path := writeConfig(t, "config.yaml", `
ev:
  soc_threshold: 0.2
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.45, cfg.EV.SoCThreshold, 1e-9)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("config.toml")
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	// validation runs after defaults, so invalid explicit values fail
	path := writeConfig(t, "config.yaml", `
ev:
  soc_threshold: 1.5
`)
	_, err = Load(path)
	assert.ErrorContains(t, err, "soc threshold")
}

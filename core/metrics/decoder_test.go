package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/edgecharge/mcsd/core/factory"
	"github.com/edgecharge/mcsd/core/metrics"
	_ "github.com/edgecharge/mcsd/infra/metrics" // registers built-in sinks
)

func TestNewMetricsSinkFromYAML(t *testing.T) {
	raw := `
sinks:
  - type: nop
  - type: nop
`
	var cfg metrics.Config
	require.NoError(t, yaml.Unmarshal([]byte(raw), &cfg))
	require.Len(t, cfg.Sinks, 2)
	assert.Equal(t, "nop", cfg.Sinks[0].Type)

	sink, err := metrics.NewMetricsSink(cfg.Sinks)
	require.NoError(t, err)
	_, ok := sink.(*metrics.MultiSink)
	assert.True(t, ok)
}

func TestNewMetricsSinkEmpty(t *testing.T) {
	sink, err := metrics.NewMetricsSink(nil)
	require.NoError(t, err)
	_, ok := sink.(metrics.NopSink)
	assert.True(t, ok)
}

func TestNewMetricsSinkSingle(t *testing.T) {
	sink, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}})
	require.NoError(t, err)
	_, ok := sink.(metrics.NopSink)
	assert.True(t, ok)
}

func TestNewMetricsSinkUnknownType(t *testing.T) {
	_, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nope"}})
	assert.ErrorContains(t, err, "unknown module type")
}

package metrics

import "github.com/edgecharge/mcsd/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusPort is the listen address of the scrape endpoint when a
	// prom sink is configured, e.g. ":9090".
	PrometheusPort string `json:"prometheus_port"`
}

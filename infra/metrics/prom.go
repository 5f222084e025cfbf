// Package metrics provides the concrete observability sinks: Prometheus
// gauges, InfluxDB line protocol and an MQTT summary publisher. Sinks are
// registered on the core factory under the types "prom", "influx", "mqtt"
// and "nop".
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/edgecharge/mcsd/core/metrics"
	"github.com/edgecharge/mcsd/core/model"
)

// PromSink exposes region summaries and training events as Prometheus
// metrics.
type PromSink struct {
	queueLength  *prometheus.GaugeVec
	availableMCS *prometheus.GaugeVec
	averageWait  *prometheus.GaugeVec
	arrivalRate  *prometheus.GaugeVec
	stepReward   *prometheus.HistogramVec
	updates      *prometheus.CounterVec
}

// NewPromSink registers the metrics on the default Prometheus registerer.
// The scrape endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		queueLength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "region_queue_length",
			Help: "Pending charge requests per region",
		}, []string{"region"}),
		availableMCS: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "region_available_mcs",
			Help: "Available mobile charging stations per region",
		}, []string{"region"}),
		averageWait: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "region_average_wait_steps",
			Help: "Average wait time of queued requests per region",
		}, []string{"region"}),
		arrivalRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "region_arrival_rate",
			Help: "Charge request arrival rate per region",
		}, []string{"region"}),
		stepReward: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "edge_step_reward",
			Help:    "Reward of one edge environment step",
			Buckets: prometheus.LinearBuckets(-2, 0.5, 13),
		}, []string{"region"}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "policy_updates_total",
			Help: "Number of completed policy updates",
		}, []string{"tier"}),
	}
	for _, g := range []**prometheus.GaugeVec{&s.queueLength, &s.availableMCS, &s.averageWait, &s.arrivalRate} {
		if err := reg.Register(*g); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				*g = are.ExistingCollector.(*prometheus.GaugeVec)
			} else {
				return nil, err
			}
		}
	}
	if err := reg.Register(s.stepReward); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.stepReward = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(s.updates); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.updates = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	return s, nil
}

// RecordRegionSummaries sets the per-region gauges.
func (s *PromSink) RecordRegionSummaries(summaries []model.RegionSummary) error {
	for _, sum := range summaries {
		s.queueLength.WithLabelValues(sum.Region).Set(float64(sum.QueueLength))
		s.availableMCS.WithLabelValues(sum.Region).Set(float64(sum.AvailableMCS))
		s.averageWait.WithLabelValues(sum.Region).Set(sum.AverageWait)
		s.arrivalRate.WithLabelValues(sum.Region).Set(sum.ArrivalRate)
	}
	return nil
}

// RecordEdgeStep observes the step reward.
func (s *PromSink) RecordEdgeStep(ev coremetrics.EdgeStepEvent) error {
	s.stepReward.WithLabelValues(ev.Region).Observe(ev.Reward)
	return nil
}

// RecordPolicyUpdate counts the update per tier.
func (s *PromSink) RecordPolicyUpdate(ev coremetrics.PolicyUpdateEvent) error {
	s.updates.WithLabelValues(ev.Tier).Inc()
	return nil
}

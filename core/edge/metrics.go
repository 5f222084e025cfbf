package edge

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsEnqueued *prometheus.CounterVec
	requestsDropped  *prometheus.CounterVec
	mcsAssignments   *prometheus.CounterVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.CounterVec, *prometheus.CounterVec) {
	enq := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edge_requests_enqueued_total",
			Help: "Number of charge requests accepted into a region queue",
		},
		[]string{"region"},
	)
	drop := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edge_requests_dropped_total",
			Help: "Number of charge requests dropped because the queue was full",
		},
		[]string{"region"},
	)
	asn := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edge_mcs_assignments_total",
			Help: "Number of successful MCS assignments",
		},
		[]string{"region"},
	)
	return enq, drop, asn
}

func init() {
	requestsEnqueued, requestsDropped, mcsAssignments = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers edge metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{requestsEnqueued, requestsDropped, mcsAssignments} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
}

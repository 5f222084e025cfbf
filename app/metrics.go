package app

import "github.com/prometheus/client_golang/prometheus"

var unroutableRequests = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "unroutable_requests_total",
	Help: "Charge requests whose location resolved to no region",
})

func init() {
	if err := prometheus.Register(unroutableRequests); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			panic(err)
		}
	}
}

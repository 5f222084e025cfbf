package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/edgecharge/mcsd/core/metrics"
	"github.com/edgecharge/mcsd/core/model"
	"github.com/edgecharge/mcsd/infra/logger"
)

// InfluxSink writes region summaries and training events to an InfluxDB
// instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRegionSummaries writes one point per region summary.
func (s *InfluxSink) RecordRegionSummaries(summaries []model.RegionSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	now := time.Now()
	for _, sum := range summaries {
		p := write.NewPointWithMeasurement("region_summary").
			AddTag("region", sum.Region).
			AddField("success_rate", round3(sum.SuccessRate)).
			AddField("average_wait", round3(sum.AverageWait)).
			AddField("arrival_rate", round3(sum.ArrivalRate)).
			AddField("available_mcs", sum.AvailableMCS).
			AddField("queue_length", sum.QueueLength).
			SetTime(now)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordEdgeStep writes one point per edge environment step.
func (s *InfluxSink) RecordEdgeStep(ev coremetrics.EdgeStepEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("edge_step").
		AddTag("region", ev.Region).
		AddField("round", ev.Round).
		AddField("reward", round3(ev.Reward)).
		AddField("queue_length", ev.QueueLength).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPolicyUpdate writes the update metrics as fields.
func (s *InfluxSink) RecordPolicyUpdate(ev coremetrics.PolicyUpdateEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("policy_update").
		AddTag("tier", ev.Tier).
		AddField("round", ev.Round).
		AddField("batch_size", ev.BatchSize).
		SetTime(time.Now())
	if ev.Region != "" {
		p.AddTag("region", ev.Region)
	}
	for name, v := range ev.Metrics {
		p.AddField(name, round3(v))
	}
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

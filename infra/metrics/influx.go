package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/evoroute/core/metrics"
	"github.com/kilianp07/evoroute/infra/logger"
)

// InfluxSink writes solver events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
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

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
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

// RecordGeneration writes the generation summary as a point.
func (s *InfluxSink) RecordGeneration(res coremetrics.GenerationResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("generation_result").
		AddTag("run_id", res.RunID).
		AddTag("improved", strconv.FormatBool(res.Improved)).
		AddTag("component", "engine").
		AddField("generation", res.Generation).
		AddField("violations", res.Violations).
		AddField("distance", round3(res.Distance)).
		AddField("elapsed_ms", round3(res.Elapsed.Seconds()*1000)).
		SetTime(res.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPopulationStats writes aggregate distance statistics.
func (s *InfluxSink) RecordPopulationStats(ev coremetrics.PopulationStats) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("population_stats").
		AddTag("run_id", ev.RunID).
		AddTag("component", "engine").
		AddField("generation", ev.Generation).
		AddField("mean_distance", round3(ev.MeanDistance)).
		AddField("stddev_distance", round3(ev.StdDevDistance)).
		AddField("min_distance", round3(ev.MinDistance)).
		AddField("max_distance", round3(ev.MaxDistance)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordBestSolution writes the shape of a new best solution.
func (s *InfluxSink) RecordBestSolution(ev coremetrics.BestSolutionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("best_solution").
		AddTag("run_id", ev.RunID).
		AddTag("component", "engine").
		AddField("generation", ev.Generation).
		AddField("violations", ev.Violations).
		AddField("distance", round3(ev.Distance)).
		AddField("routes", len(ev.Solution.Routes)).
		AddField("stops", len(ev.Solution.Stops())).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

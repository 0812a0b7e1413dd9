package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/kilianp07/evoroute/api/solutions"
	"github.com/kilianp07/evoroute/config"
	corearchive "github.com/kilianp07/evoroute/core/archive"
	"github.com/kilianp07/evoroute/core/engine"
	"github.com/kilianp07/evoroute/core/live"
	coremetrics "github.com/kilianp07/evoroute/core/metrics"
	"github.com/kilianp07/evoroute/core/model"
	"github.com/kilianp07/evoroute/core/monitoring"
	"github.com/kilianp07/evoroute/core/population"
	infraarchive "github.com/kilianp07/evoroute/infra/archive"
	"github.com/kilianp07/evoroute/infra/logger"
	"github.com/kilianp07/evoroute/infra/metrics"
	inframonitoring "github.com/kilianp07/evoroute/infra/monitoring"
	"github.com/kilianp07/evoroute/infra/mqtt"
	"github.com/kilianp07/evoroute/internal/eventbus"
)

// Service orchestrates the evolutionary engine, its sinks and servers.
type Service struct {
	Engine *engine.Engine
	cfg    *config.Config
	bus    eventbus.EventBus
	store  corearchive.Store
	sink   coremetrics.MetricsSink
	pub    live.Publisher
	log    logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	mon, err := inframonitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	monitoring.Init(mon)

	seed := cfg.Solver.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logg.Infof("run seed %d", seed)

	var points []model.Point
	if cfg.Solver.PointsFile != "" {
		points, err = population.ReadPointsFile(cfg.Solver.PointsFile)
		if err != nil {
			return nil, fmt.Errorf("points file: %w", err)
		}
	} else {
		points = population.GeneratePoints(rng, cfg.Solver.Points, cfg.Solver.Width, cfg.Solver.Height, cfg.Solver.Padding)
	}

	seeder, err := population.NewInitializer(cfg.Solver.Vehicles, cfg.Solver.DepotX, cfg.Solver.DepotY, rng)
	if err != nil {
		return nil, fmt.Errorf("initializer: %w", err)
	}
	pop, err := seeder.NewPopulation(points, cfg.Solver.PopulationSize)
	if err != nil {
		return nil, fmt.Errorf("population: %w", err)
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	store, err := infraarchive.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("archive store: %w", err)
	}

	bus := eventbus.New()
	eng, err := engine.NewEngine(engine.Config{
		Autonomy:     cfg.Solver.Autonomy,
		MutationProb: cfg.Solver.MutationProb,
		Workers:      cfg.Solver.Workers,
		HistorySize:  cfg.Solver.HistorySize,
	}, pop, rng, sink, bus, store, logger.New("engine"))
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	svc := &Service{Engine: eng, cfg: cfg, bus: bus, store: store, sink: sink, log: logg}
	if cfg.Live.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.Live)
		if err != nil {
			return nil, fmt.Errorf("live publisher: %w", err)
		}
		svc.pub = pub
	}
	return svc, nil
}

// Run starts the optimizer and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	metrics.StartEventCollector(ctx, s.bus, s.sink)
	if s.pub != nil {
		mqtt.StartBestRelay(ctx, s.bus, s.pub, s.log)
	}
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.cfg.API.Enabled {
		go func() {
			if err := solutions.StartServer(ctx, s.cfg.API.Addr, s.cfg.API.Token, s.Engine, s.store); err != nil {
				s.log.Errorf("api server: %v", err)
			}
		}()
	}
	runner := &engine.Runner{Engine: s.Engine, Interval: s.cfg.Solver.Tick(), Logger: s.log}
	return runner.Run(ctx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.pub != nil {
		if err := s.pub.Close(); err != nil {
			s.log.Errorf("publisher close: %v", err)
		}
	}
	monitoring.Flush(2 * time.Second)
	return s.Engine.Close()
}

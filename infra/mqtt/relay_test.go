package mqtt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evoroute/core/events"
	"github.com/kilianp07/evoroute/core/model"
	"github.com/kilianp07/evoroute/infra/logger"
	"github.com/kilianp07/evoroute/internal/eventbus"
)

func TestStartBestRelayForwardsBestEvents(t *testing.T) {
	bus := eventbus.New()
	pub := NewMockPublisher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartBestRelay(ctx, bus, pub, logger.NopLogger{})

	sol := model.Solution{Routes: []model.Route{{
		ID:      "route_1",
		Vehicle: "equipment_1",
		Stops:   []model.Point{{ID: "p1", X: 3, Y: 4}},
	}}}
	bus.Publish(events.BestEvent{
		RunID:      "run-1",
		Generation: 2,
		Fitness:    model.Fitness{Violations: 0, Distance: 10},
		Solution:   sol,
	})
	// Events of other types must be ignored.
	bus.Publish(events.GenerationEvent{RunID: "run-1", Generation: 2})

	require.Eventually(t, func() bool { return len(pub.Published()) == 1 }, 2*time.Second, 10*time.Millisecond)
	rec := pub.Published()[0]
	assert.Equal(t, "run-1", rec.RunID)
	assert.Equal(t, 2, rec.Generation)
	require.Len(t, rec.Routes, 1)
	assert.Equal(t, "equipment_1", rec.Routes[0].Vehicle)
	assert.InDelta(t, 10.0, rec.Routes[0].Distance, 1e-9)
}

func TestStartBestRelayNilArgs(t *testing.T) {
	// Must not panic when bus or publisher are absent.
	StartBestRelay(context.Background(), nil, NewMockPublisher(), nil)
	StartBestRelay(context.Background(), eventbus.New(), nil, nil)
}

package server

import (
	"context"
	"fmt"

	"github.com/lab1702/duel-arena/game"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/lab1702/duel-arena/server"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics holds the round counters. Instruments are no-ops until the host
// installs a meter provider.
type Metrics struct {
	roundsStarted metric.Int64Counter
	roundsEnded   metric.Int64Counter
	shots         metric.Int64Counter
	hits          metric.Int64Counter
	kills         metric.Int64Counter
}

// NewMetrics creates the counters on the global meter
func NewMetrics() (*Metrics, error) {
	m := meter()
	var (
		mt  Metrics
		err error
	)

	mt.roundsStarted, err = m.Int64Counter(
		"duel.rounds.started",
		metric.WithDescription("Rounds started"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rounds started counter: %w", err)
	}

	mt.roundsEnded, err = m.Int64Counter(
		"duel.rounds.ended",
		metric.WithDescription("Rounds ended by outcome and reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rounds ended counter: %w", err)
	}

	mt.shots, err = m.Int64Counter(
		"duel.shots",
		metric.WithDescription("Projectiles fired"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}

	mt.hits, err = m.Int64Counter(
		"duel.hits",
		metric.WithDescription("Projectiles that hit their target"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}

	mt.kills, err = m.Int64Counter(
		"duel.kills",
		metric.WithDescription("Kills scored"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kills counter: %w", err)
	}

	return &mt, nil
}

// registerActiveSessions reports the live session count through an observable
// gauge. The caller unregisters the callback when it stops serving.
func registerActiveSessions(count func() int) (metric.Registration, error) {
	m := meter()
	gauge, err := m.Int64ObservableGauge(
		"duel.sessions.active",
		metric.WithDescription("Connected sessions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating active sessions gauge: %w", err)
	}
	reg, err := m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(gauge, int64(count()))
			return nil
		},
		gauge,
	)
	if err != nil {
		return nil, fmt.Errorf("registering sessions callback: %w", err)
	}
	return reg, nil
}

func sideAttr(side game.Side) metric.AddOption {
	return metric.WithAttributes(attribute.String("side", side.String()))
}

// A nil *Metrics records nothing

func (m *Metrics) roundStarted(tier game.Tier) {
	if m == nil {
		return
	}
	m.roundsStarted.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("tier", string(tier))))
}

func (m *Metrics) roundEnded(outcome game.Outcome, reason game.EndReason) {
	if m == nil {
		return
	}
	m.roundsEnded.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("outcome", string(outcome)),
		attribute.String("reason", string(reason)),
	))
}

func (m *Metrics) shot(side game.Side) {
	if m == nil {
		return
	}
	m.shots.Add(context.Background(), 1, sideAttr(side))
}

func (m *Metrics) hit(side game.Side) {
	if m == nil {
		return
	}
	m.hits.Add(context.Background(), 1, sideAttr(side))
}

func (m *Metrics) kill(side game.Side) {
	if m == nil {
		return
	}
	m.kills.Add(context.Background(), 1, sideAttr(side))
}

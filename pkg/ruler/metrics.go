package ruler

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/philipparndt/goruler/pkg/ruler"

type sessionMetrics struct {
	accepted  metric.Int64Counter
	missed    metric.Int64Counter
	completed metric.Int64Counter
	distance  metric.Float64Histogram
}

// newSessionMetrics uses the global meter, which is a no-op unless the host
// installs a provider. Instruments that fail to register are logged and
// left nil.
func newSessionMetrics(logger *zap.Logger) sessionMetrics {
	m := otel.Meter(instrumentationName)
	var sm sessionMetrics
	var err error

	if sm.accepted, err = m.Int64Counter("ruler.taps.accepted",
		metric.WithDescription("Taps that produced a tracked point")); err != nil {
		logger.Warn("creating accepted counter", zap.Error(err))
	}
	if sm.missed, err = m.Int64Counter("ruler.taps.missed",
		metric.WithDescription("Taps the hit test could not resolve")); err != nil {
		logger.Warn("creating missed counter", zap.Error(err))
	}
	if sm.completed, err = m.Int64Counter("ruler.measurements.completed",
		metric.WithDescription("Completed point pairs")); err != nil {
		logger.Warn("creating completed counter", zap.Error(err))
	}
	if sm.distance, err = m.Float64Histogram("ruler.measurement.distance",
		metric.WithDescription("Measured distance"),
		metric.WithUnit("cm")); err != nil {
		logger.Warn("creating distance histogram", zap.Error(err))
	}
	return sm
}

func (sm sessionMetrics) tapAccepted() {
	if sm.accepted != nil {
		sm.accepted.Add(context.Background(), 1)
	}
}

func (sm sessionMetrics) tapMissed() {
	if sm.missed != nil {
		sm.missed.Add(context.Background(), 1)
	}
}

func (sm sessionMetrics) measured(meters float64) {
	if sm.completed != nil {
		sm.completed.Add(context.Background(), 1)
	}
	if sm.distance != nil {
		sm.distance.Record(context.Background(), meters*CentimetersPerMeter)
	}
}

package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Page open outcomes.
const (
	OutcomeRendered    = "rendered"
	OutcomeUnavailable = "unavailable"
	OutcomeFailed      = "failed"
)

// PageMetrics records page pipeline instruments. The zero value is a no-op.
type PageMetrics struct {
	latency        metric.Float64Histogram
	latencyEnabled bool
	opens          metric.Int64Counter
	opensEnabled   bool
	fragmentErrors metric.Int64Counter
	fragEnabled    bool
}

// NewPageMetrics registers the instruments on meter, or on the global provider when
// meter is nil. Registration failures are logged and disable the instrument.
func NewPageMetrics(meter metric.Meter, logger *zap.Logger) *PageMetrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(instrumentationName)
	}
	m := &PageMetrics{}

	latency, err := meter.Float64Histogram(
		"folio.page.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("Time to build a page, from shell fetch to reveal"),
	)
	if err != nil {
		logger.Warn("metrics: unable to register latency histogram", zap.Error(err))
	} else {
		m.latency, m.latencyEnabled = latency, true
	}

	opens, err := meter.Int64Counter(
		"folio.page.opens",
		metric.WithDescription("Count of page builds by outcome"),
	)
	if err != nil {
		logger.Warn("metrics: unable to register opens counter", zap.Error(err))
	} else {
		m.opens, m.opensEnabled = opens, true
	}

	frag, err := meter.Int64Counter(
		"folio.fragment.errors",
		metric.WithDescription("Count of fragments rendered as inline errors"),
	)
	if err != nil {
		logger.Warn("metrics: unable to register fragment error counter", zap.Error(err))
	} else {
		m.fragmentErrors, m.fragEnabled = frag, true
	}
	return m
}

// RecordOpen records one page build.
func (m *PageMetrics) RecordOpen(ctx context.Context, lang, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("lang", lang),
		attribute.String("outcome", outcome),
	)
	if m.opensEnabled {
		m.opens.Add(ctx, 1, attrs)
	}
	if m.latencyEnabled {
		m.latency.Record(ctx, float64(d)/float64(time.Millisecond), attrs)
	}
}

// RecordFragmentErrors counts fragments that failed to load.
func (m *PageMetrics) RecordFragmentErrors(ctx context.Context, slots ...string) {
	if m == nil || !m.fragEnabled {
		return
	}
	for _, s := range slots {
		m.fragmentErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("slot", s)))
	}
}

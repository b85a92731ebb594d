// Package telemetry exports the status registry as OpenTelemetry gauges
// Uses the global meter provider; without an installed SDK it is a no-op
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ericre997/RatioRage/status"
)

const instrumentationName = "github.com/ericre997/RatioRage/telemetry"

// GaugeName is the single instrument; registry keys become the "key" attribute
const GaugeName = "ratiorage.status"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Register observes every numeric registry value on each collection
// A nil m uses the global meter
func Register(reg *status.Registry, m metric.Meter) (metric.Registration, error) {
	if m == nil {
		m = meter()
	}

	gauge, err := m.Float64ObservableGauge(
		GaugeName,
		metric.WithDescription("Gameplay status counters by registry key"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating status gauge: %w", err)
	}

	r, err := m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			for k, v := range reg.Snapshot() {
				o.ObserveFloat64(gauge, v, metric.WithAttributes(attribute.String("key", k)))
			}
			return nil
		},
		gauge,
	)
	if err != nil {
		return nil, fmt.Errorf("registering status callback: %w", err)
	}
	return r, nil
}

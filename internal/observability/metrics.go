package observability

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const metricPrefix = "lifecalc_"

// Analysis outcomes recorded by RecordAnalysis.
const (
	OutcomeApplied   = "applied"
	OutcomeDiscarded = "discarded"
)

// Metrics counts navigation, analysis and calculator activity for the
// lifetime of the process. Nothing is served over the network; the registry
// is read back with Count and Summary.
type Metrics struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider

	navigations metric.Int64Counter
	analyses    metric.Int64Counter
	evaluations metric.Int64Counter
}

// NewMetrics creates the collector. A disabled config yields a Metrics whose
// Record methods are no-ops.
func NewMetrics(config MetricsConfig) (*Metrics, error) {
	if !config.Enabled {
		return &Metrics{}, nil
	}

	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(
		otelprom.WithRegisterer(registry),
		otelprom.WithoutUnits(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter("lifecalc")

	navigations, err := meter.Int64Counter(
		metricPrefix+"navigations",
		metric.WithDescription("Page transitions applied to the navigation state"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create navigations counter: %w", err)
	}

	analyses, err := meter.Int64Counter(
		metricPrefix+"analyses",
		metric.WithDescription("Analyze requests by category and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyses counter: %w", err)
	}

	evaluations, err := meter.Int64Counter(
		metricPrefix+"evaluations",
		metric.WithDescription("Calculator evaluations by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluations counter: %w", err)
	}

	return &Metrics{
		registry:    registry,
		provider:    provider,
		navigations: navigations,
		analyses:    analyses,
		evaluations: evaluations,
	}, nil
}

// RecordNavigation counts a transition to page.
func (m *Metrics) RecordNavigation(ctx context.Context, page string) {
	if m == nil || m.navigations == nil {
		return
	}
	m.navigations.Add(ctx, 1, metric.WithAttributes(attribute.String("page", page)))
}

// RecordAnalysis counts a finished analyze timer as applied or discarded.
func (m *Metrics) RecordAnalysis(ctx context.Context, category, outcome string) {
	if m == nil || m.analyses == nil {
		return
	}
	m.analyses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("outcome", outcome),
	))
}

// RecordEvaluation counts a calculator "=" press.
func (m *Metrics) RecordEvaluation(ctx context.Context, ok bool) {
	if m == nil || m.evaluations == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.evaluations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// Count sums every sample of the counter family "lifecalc_<name>_total" whose
// labels include all of labels.
func (m *Metrics) Count(name string, labels map[string]string) float64 {
	if m == nil || m.registry == nil {
		return 0
	}
	families, err := m.registry.Gather()
	if err != nil {
		return 0
	}

	var total float64
	for _, family := range families {
		if family.GetName() != metricPrefix+name+"_total" {
			continue
		}
		for _, sample := range family.GetMetric() {
			if !hasLabels(sample.GetLabel(), labels) {
				continue
			}
			total += sample.GetCounter().GetValue()
		}
	}
	return total
}

// Summary renders "name=value" pairs for every lifecalc counter, sorted by name.
func (m *Metrics) Summary() string {
	if m == nil || m.registry == nil {
		return ""
	}
	families, err := m.registry.Gather()
	if err != nil {
		return ""
	}

	var parts []string
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), metricPrefix) {
			continue
		}
		var total float64
		for _, sample := range family.GetMetric() {
			total += sample.GetCounter().GetValue()
		}
		parts = append(parts, fmt.Sprintf("%s=%g", family.GetName(), total))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.provider == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}

type labelPair interface {
	GetName() string
	GetValue() string
}

func hasLabels[L labelPair](pairs []L, want map[string]string) bool {
	for key, value := range want {
		found := false
		for _, pair := range pairs {
			if pair.GetName() == key && pair.GetValue() == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

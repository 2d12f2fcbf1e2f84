package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/alexanderramin/cinder/internal/domain"
)

const (
	serviceName    = "cinder"
	serviceVersion = "1.0.0"
)

// Exporter records scoring metrics on an OpenTelemetry meter.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	calculations  metric.Int64Counter
	overallHist   metric.Float64Histogram
	durationHist  metric.Float64Histogram
	notifications metric.Int64Counter
}

var _ Recorder = (*Exporter)(nil)

// NewExporter creates an exporter that pushes to an OTLP/gRPC collector.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	e, err := NewExporterWithReader(ctx, sdkmetric.NewPeriodicReader(exp))
	if err != nil {
		return nil, err
	}
	otel.SetMeterProvider(e.provider)
	return e, nil
}

// NewExporterWithReader creates an exporter on top of an arbitrary reader.
func NewExporterWithReader(ctx context.Context, reader sdkmetric.Reader) (*Exporter, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	meter := provider.Meter(serviceName)

	calculations, err := meter.Int64Counter(
		"cinder_burnout_calculations_total",
		metric.WithDescription("Total burnout score calculations"),
		metric.WithUnit("{calculation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating calculations counter: %w", err)
	}

	overallHist, err := meter.Float64Histogram(
		"cinder_burnout_overall_score",
		metric.WithDescription("Distribution of overall burnout scores"),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9),
	)
	if err != nil {
		return nil, fmt.Errorf("creating overall histogram: %w", err)
	}

	durationHist, err := meter.Float64Histogram(
		"cinder_burnout_calculation_duration_seconds",
		metric.WithDescription("Time spent fetching and scoring activity"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	notifications, err := meter.Int64Counter(
		"cinder_notifications_total",
		metric.WithDescription("Score notifications by delivery outcome"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating notifications counter: %w", err)
	}

	return &Exporter{
		provider:      provider,
		calculations:  calculations,
		overallHist:   overallHist,
		durationHist:  durationHist,
		notifications: notifications,
	}, nil
}

func (e *Exporter) RecordScore(ctx context.Context, score domain.BurnoutScore, elapsed time.Duration) {
	opt := metric.WithAttributes(attribute.String("burnout_level", string(score.BurnoutLevel)))
	e.calculations.Add(ctx, 1, opt)
	e.overallHist.Record(ctx, score.OverallScore, opt)
	e.durationHist.Record(ctx, elapsed.Seconds())
}

func (e *Exporter) RecordNotification(ctx context.Context, delivered bool) {
	e.notifications.Add(ctx, 1, metric.WithAttributes(attribute.Bool("delivered", delivered)))
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}

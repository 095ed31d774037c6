package observability

import (
	"context"
	"sync"

	"phraseapp/internal/config"
	contextutils "phraseapp/internal/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// InitMetrics initializes OpenTelemetry metrics
func InitMetrics(cfg *config.OpenTelemetryConfig) (result0 *metric.MeterProvider, err error) {
	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create otel resource: %w", err)
	}

	var exporter metric.Exporter
	switch cfg.Protocol {
	case "grpc":
		opts := []otlpmetricgrpc.Option{
			otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
			otlpmetricgrpc.WithHeaders(cfg.Headers),
		}
		if cfg.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		exp, err := otlpmetricgrpc.New(ctx, opts...)
		if err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create otlp grpc metric exporter: %w", err)
		}
		exporter = exp
	case "http":
		opts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(cfg.Endpoint),
			otlpmetrichttp.WithHeaders(cfg.Headers),
		}
		if cfg.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exp, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create otlp http metric exporter: %w", err)
		}
		exporter = exp
	default:
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "unsupported otel protocol: %s", cfg.Protocol)
	}

	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter)),
		metric.WithResource(res),
	)
	return mp, nil
}

// Instruments holds the counters the builder and translator report to.
type Instruments struct {
	SentencesBuilt       otelmetric.Int64Counter
	TranslationCacheHit  otelmetric.Int64Counter
	TranslationCacheMiss otelmetric.Int64Counter
	TranslationFallback  otelmetric.Int64Counter
	TranslationRemote    otelmetric.Int64Counter
}

var (
	instruments     *Instruments
	instrumentsOnce sync.Once
	instrumentsMu   sync.RWMutex
)

// InitInstruments (re)creates the application counters against the current
// global meter provider.
func InitInstruments() *Instruments {
	meter := otel.Meter("phraseapp")
	inst := &Instruments{}
	// Instrument creation only fails on invalid names, which are constants here.
	inst.SentencesBuilt, _ = meter.Int64Counter("phrase.sentences.built",
		otelmetric.WithDescription("Sentences produced by the builder"))
	inst.TranslationCacheHit, _ = meter.Int64Counter("phrase.translation.cache.hits",
		otelmetric.WithDescription("Translations served from the session cache"))
	inst.TranslationCacheMiss, _ = meter.Int64Counter("phrase.translation.cache.misses",
		otelmetric.WithDescription("Translations not found in the session cache"))
	inst.TranslationFallback, _ = meter.Int64Counter("phrase.translation.fallbacks",
		otelmetric.WithDescription("Translations answered by the local glossary"))
	inst.TranslationRemote, _ = meter.Int64Counter("phrase.translation.remote",
		otelmetric.WithDescription("Translations answered by the remote provider"))

	instrumentsMu.Lock()
	instruments = inst
	instrumentsMu.Unlock()
	return inst
}

// GetInstruments returns the application counters, creating them on first use.
func GetInstruments() *Instruments {
	instrumentsOnce.Do(func() {
		instrumentsMu.RLock()
		ready := instruments != nil
		instrumentsMu.RUnlock()
		if !ready {
			InitInstruments()
		}
	})
	instrumentsMu.RLock()
	defer instrumentsMu.RUnlock()
	return instruments
}

// RecordSentenceBuilt counts one built sentence.
func RecordSentenceBuilt(ctx context.Context, tense, structure string) {
	GetInstruments().SentencesBuilt.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("tense", tense),
		attribute.String("structure", structure),
	))
}

// RecordTranslation counts one translation by where its answer came from:
// "cache", "remote" or "fallback". Every non-cache outcome is also a miss.
func RecordTranslation(ctx context.Context, source string) {
	inst := GetInstruments()
	switch source {
	case "cache":
		inst.TranslationCacheHit.Add(ctx, 1)
	case "remote":
		inst.TranslationCacheMiss.Add(ctx, 1)
		inst.TranslationRemote.Add(ctx, 1)
	default:
		inst.TranslationCacheMiss.Add(ctx, 1)
		inst.TranslationFallback.Add(ctx, 1)
	}
}

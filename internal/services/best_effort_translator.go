package services

import (
	"context"
	"strings"
	"time"

	"phraseapp/internal/config"
	"phraseapp/internal/models"
	"phraseapp/internal/observability"
	"phraseapp/internal/serviceinterfaces"
	contextutils "phraseapp/internal/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// BestEffortTranslator decorates sentences with a translation. It tries the
// per-session cache, then the remote provider under a timeout, then the local
// glossary. It never returns an error.
type BestEffortTranslator struct {
	remote   TranslationServiceInterface
	fallback *FallbackTranslator
	breaker  *circuitBreaker
	group    singleflight.Group
	timeout  time.Duration
	source   string
	target   string
	logger   *observability.Logger
}

// NewBestEffortTranslator wires a remote provider (nil for none) to the local
// fallback using the translation configuration.
func NewBestEffortTranslator(cfg *config.TranslationConfig, remote TranslationServiceInterface, fallback *FallbackTranslator, logger *observability.Logger) *BestEffortTranslator {
	return &BestEffortTranslator{
		remote:   remote,
		fallback: fallback,
		breaker:  newCircuitBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown),
		timeout:  remoteTimeout(cfg.Timeout),
		source:   cfg.SourceLanguage,
		target:   cfg.TargetLanguage,
		logger:   logger,
	}
}

// DefaultTarget is the language used when a request names none
func (t *BestEffortTranslator) DefaultTarget() string {
	return t.target
}

// RemoteEnabled reports whether a remote provider is configured
func (t *BestEffortTranslator) RemoteEnabled() bool {
	return t.remote != nil
}

// Translate returns a translation of text. Empty source or target fall back
// to the configured languages. cache may be nil. Only remote answers are
// cached, so a transient outage does not pin the glossary rendering.
func (t *BestEffortTranslator) Translate(ctx context.Context, text, source, target string, cache *TranslationCache) models.TranslationResult {
	if source == "" {
		source = t.source
	}
	if target == "" {
		target = t.target
	}
	source = strings.ToLower(source)
	target = strings.ToLower(target)

	ctx, span := observability.TraceTranslationFunction(ctx, "best_effort_translate",
		append(observability.AttributeLanguagePair(source, target),
			attribute.Int("translation.text_length", len(text)),
		)...,
	)
	defer span.End()

	result := models.TranslationResult{
		Text:   text,
		Source: source,
		Target: target,
	}

	if cache != nil {
		if translated, provider, ok := cache.Get(text, source, target); ok {
			result.Translated = translated
			result.Provider = provider
			result.Origin = models.TranslationSourceCache
			result.Cached = true
			t.finish(ctx, span, result)
			return result
		}
	}

	if resp, err := t.translateRemote(ctx, text, source, target); err == nil {
		result.Translated = resp.TranslatedText
		result.Provider = resp.Provider
		result.Origin = models.TranslationSourceRemote
		if cache != nil {
			cache.Put(text, source, target, resp.TranslatedText, resp.Provider)
		}
		t.finish(ctx, span, result)
		return result
	} else if t.remote != nil {
		t.logger.Warn(ctx, "Remote translation unavailable, using local glossary", map[string]interface{}{
			"source_language": source,
			"target_language": target,
			"error":           err.Error(),
			"breaker_state":   t.breaker.currentState().String(),
		})
	}

	result.Translated = t.fallback.Translate(text, target)
	result.Origin = models.TranslationSourceFallback
	result.Fallback = true
	t.finish(ctx, span, result)
	return result
}

func (t *BestEffortTranslator) finish(ctx context.Context, span trace.Span, result models.TranslationResult) {
	span.SetAttributes(
		attribute.String("translation.origin", string(result.Origin)),
		attribute.Bool("translation.cached", result.Cached),
	)
	observability.RecordTranslation(ctx, string(result.Origin))
}

// translateRemote makes the single timed attempt. Identical concurrent
// requests share one call; a caller's cancellation does not cancel the shared
// call, but each caller stops waiting at its own deadline.
func (t *BestEffortTranslator) translateRemote(ctx context.Context, text, source, target string) (*serviceinterfaces.TranslateResponse, error) {
	if t.remote == nil {
		return nil, contextutils.NewAppError(contextutils.ErrorCodeServiceUnavailable, contextutils.SeverityInfo, "Remote translation disabled", "")
	}
	if !t.breaker.canExecute() {
		return nil, contextutils.NewAppError(contextutils.ErrorCodeServiceUnavailable, contextutils.SeverityInfo, "Remote translation circuit open", "")
	}

	key := source + "\x00" + target + "\x00" + text
	ch := t.group.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
		defer cancel()

		resp, err := t.remote.Translate(callCtx, serviceinterfaces.TranslateRequest{
			Text:           text,
			SourceLanguage: source,
			TargetLanguage: target,
		})
		if err == nil && (resp == nil || resp.TranslatedText == "") {
			err = contextutils.NewAppError(contextutils.ErrorCodeTranslationFailed, contextutils.SeverityWarn, "Empty translation", "")
		}
		if err != nil {
			t.breaker.recordFailure()
			return nil, err
		}
		t.breaker.recordSuccess()
		return resp, nil
	})

	waitCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*serviceinterfaces.TranslateResponse), nil
	case <-waitCtx.Done():
		return nil, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeTimeout, contextutils.SeverityWarn, "Remote translation timed out", "", waitCtx.Err())
	}
}

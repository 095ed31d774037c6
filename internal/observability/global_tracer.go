package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var globalTracer trace.Tracer

// InitGlobalTracer initializes the global tracer for the application.
func InitGlobalTracer() {
	globalTracer = otel.Tracer("phrase-app")
}

// GetGlobalTracer returns the global tracer instance for the application.
func GetGlobalTracer() trace.Tracer {
	if globalTracer == nil {
		globalTracer = otel.Tracer("phrase-app")
	}
	return globalTracer
}

// TraceFunction starts a new span with a descriptive name for the given service and function.
func TraceFunction(ctx context.Context, serviceName, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := GetGlobalTracer()
	spanName := fmt.Sprintf("%s.%s", serviceName, functionName)
	return tracer.Start(ctx, spanName, trace.WithAttributes(attributes...))
}

// TraceFunctionWithErrorHandling runs fn inside a span and records its error or panic.
func TraceFunctionWithErrorHandling(ctx context.Context, serviceName, functionName string, fn func() error, attributes ...attribute.KeyValue) error {
	_, span := TraceFunction(ctx, serviceName, functionName, attributes...)
	defer func() {
		if err := recover(); err != nil {
			span.SetAttributes(
				attribute.Bool("error", true),
				attribute.String("error.type", "panic"),
				attribute.String("error.message", fmt.Sprintf("%v", err)),
			)
			span.End()
			panic(err)
		}
	}()

	err := fn()
	if err != nil {
		span.SetAttributes(
			attribute.Bool("error", true),
			attribute.String("error.message", err.Error()),
		)
	}
	span.End()
	return err
}

// TraceSentenceFunction starts a new span for a sentence builder function.
func TraceSentenceFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "sentence", functionName, attributes...)
}

// TraceTranslationFunction starts a new span for a translation service function.
func TraceTranslationFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "translation", functionName, attributes...)
}

// TraceLexiconFunction starts a new span for a lexicon function.
func TraceLexiconFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "lexicon", functionName, attributes...)
}

// TraceSessionFunction starts a new span for a session store function.
func TraceSessionFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "session", functionName, attributes...)
}

// TraceHandlerFunction starts a new span for a handler function.
func TraceHandlerFunction(ctx context.Context, functionName string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return TraceFunction(ctx, "handler", functionName, attributes...)
}

// AttributePronoun returns an attribute for the subject pronoun.
func AttributePronoun(pronoun string) attribute.KeyValue {
	return attribute.String("sentence.pronoun", pronoun)
}

// AttributeVerb returns an attribute for the verb infinitive.
func AttributeVerb(verb string) attribute.KeyValue {
	return attribute.String("sentence.verb", verb)
}

// AttributeTense returns an attribute for the tense.
func AttributeTense(tense string) attribute.KeyValue {
	return attribute.String("sentence.tense", tense)
}

// AttributeStructure returns an attribute for the sentence structure.
func AttributeStructure(structure string) attribute.KeyValue {
	return attribute.String("sentence.structure", structure)
}

// AttributeLanguage returns an attribute for a language code.
func AttributeLanguage(lang string) attribute.KeyValue {
	return attribute.String("language", lang)
}

// AttributeLanguagePair returns the source and target language attributes.
func AttributeLanguagePair(source, target string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("translation.source_language", source),
		attribute.String("translation.target_language", target),
	}
}

// AttributeProvider returns an attribute for the translation provider.
func AttributeProvider(provider string) attribute.KeyValue {
	return attribute.String("translation.provider", provider)
}

func AttributeSessionID(id string) attribute.KeyValue {
	return attribute.String("session.id", id)
}

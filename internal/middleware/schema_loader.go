package middleware

import (
	"embed"
	"fmt"
	"path"
	"strings"

	contextutils "phraseapp/internal/utils"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names, one per file under schemas/
const (
	SchemaSentenceRequest  = "sentence_request"
	SchemaTranslateRequest = "translate_request"
)

// SchemaLoader holds the compiled request body schemas and the routes they
// apply to. It is read-only once built.
type SchemaLoader struct {
	schemas map[string]*gojsonschema.Schema
	routes  map[string]string
}

// NewSchemaLoader creates an empty schema loader
func NewSchemaLoader() *SchemaLoader {
	return &SchemaLoader{
		schemas: make(map[string]*gojsonschema.Schema),
		routes:  make(map[string]string),
	}
}

// LoadEmbeddedSchemas compiles every embedded schema
func (sl *SchemaLoader) LoadEmbeddedSchemas() error {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return contextutils.WrapError(err, "failed to list embedded schemas")
	}
	for _, entry := range entries {
		data, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return contextutils.WrapErrorf(err, "failed to read schema %s", entry.Name())
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return contextutils.WrapErrorf(err, "failed to compile schema %s", entry.Name())
		}
		sl.schemas[strings.TrimSuffix(entry.Name(), ".json")] = schema
	}
	return nil
}

// HasSchema reports whether name was loaded
func (sl *SchemaLoader) HasSchema(name string) bool {
	_, ok := sl.schemas[name]
	return ok
}

// RegisterRoute binds a request schema to a gin route template such as
// "/v1/verbs/:verb/example".
func (sl *SchemaLoader) RegisterRoute(method, route, schemaName string) {
	sl.routes[strings.ToUpper(method)+" "+route] = schemaName
}

// DetermineRequestSchemaFromPath returns the schema registered for the
// route, or "" when the body is not validated.
func (sl *SchemaLoader) DetermineRequestSchemaFromPath(method, route string) string {
	return sl.routes[strings.ToUpper(method)+" "+route]
}

// ValidateJSON validates a raw request body against schemaName. Bodies that
// are not JSON are INVALID_INPUT; schema violations are VALIDATION_FAILED
// with one detail per offending field.
func (sl *SchemaLoader) ValidateJSON(body []byte, schemaName string) error {
	schema, exists := sl.schemas[schemaName]
	if !exists {
		return contextutils.ErrorWithContextf("schema %s not found", schemaName)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn,
			"Request body must be a JSON object", err.Error(), err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, validationErr := range result.Errors() {
		details = append(details, fmt.Sprintf("%s: %s", validationErr.Field(), validationErr.Description()))
	}
	return contextutils.NewAppError(contextutils.ErrorCodeValidationFailed, contextutils.SeverityWarn,
		"Request validation failed", strings.Join(details, "; "))
}

// DefaultSchemaLoader loads the embedded schemas and binds them to the API
// routes that take a JSON body.
func DefaultSchemaLoader() (*SchemaLoader, error) {
	loader := NewSchemaLoader()
	if err := loader.LoadEmbeddedSchemas(); err != nil {
		return nil, err
	}
	loader.RegisterRoute("POST", "/v1/sentences", SchemaSentenceRequest)
	loader.RegisterRoute("POST", "/v1/translate", SchemaTranslateRequest)
	return loader, nil
}

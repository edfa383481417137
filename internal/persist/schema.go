package persist

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.json
var schemaFS embed.FS

const (
	tasksSchemaURL = "weekly://schema/tasks.json"
	listsSchemaURL = "weekly://schema/lists.json"
)

var (
	schemaOnce  sync.Once
	tasksSchema *jsonschema.Schema
	listsSchema *jsonschema.Schema
	schemaErr   error
)

func compileSchemas() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	for url, file := range map[string]string{
		tasksSchemaURL: "schema/tasks.json",
		listsSchemaURL: "schema/lists.json",
	} {
		data, err := schemaFS.ReadFile(file)
		if err != nil {
			schemaErr = fmt.Errorf("read schema %s: %w", file, err)
			return
		}
		if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
			schemaErr = fmt.Errorf("add schema %s: %w", file, err)
			return
		}
	}

	tasksSchema, schemaErr = compiler.Compile(tasksSchemaURL)
	if schemaErr != nil {
		return
	}
	listsSchema, schemaErr = compiler.Compile(listsSchemaURL)
}

// validate checks raw record bytes against the schema at url
func validate(url string, data []byte) error {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return schemaErr
	}

	schema := tasksSchema
	if url == listsSchemaURL {
		schema = listsSchema
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return &SchemaError{Issues: collectIssues(nil, ve)}
		}
		return err
	}
	return nil
}

// SchemaError lists every schema violation found in a record
type SchemaError struct {
	Issues []Issue
}

// Issue is one violation at a JSON path like "3.category"
type Issue struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path == "" {
			parts = append(parts, is.Message)
			continue
		}
		parts = append(parts, is.Path+": "+is.Message)
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

func collectIssues(out []Issue, err *jsonschema.ValidationError) []Issue {
	if len(err.Causes) == 0 {
		return append(out, Issue{Path: pointerToPath(err.InstanceLocation), Message: err.Message})
	}
	for _, cause := range err.Causes {
		out = collectIssues(out, cause)
	}
	return out
}

func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(ptr, "/", ".")
}

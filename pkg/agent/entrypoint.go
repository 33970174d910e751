// Package agent implements the entrypoint dispatch and aggregation pipeline:
// registering entrypoints with input contracts and prices, validating inbound
// requests, orchestrating concurrent upstream fetches, and wrapping handler
// results in the standard response envelope.
//
// # Architecture
//
// The package is built around a small data-driven table of entrypoint
// descriptors assembled once by [Initialize]:
//
//	registry, err := agent.Initialize(client, pricing)
//	dispatcher := agent.NewDispatcher(registry)
//	envelope, err := dispatcher.Dispatch(ctx, "standings", input)
//
// Each descriptor carries a key, a human-readable description, a field-level
// input schema, a fixed price, and an async handler. The registry is
// immutable after Initialize returns; there is no module-scope build state.
//
// Handlers own no state between requests. Composite handlers fan out their
// upstream fetches concurrently and fail fast as a whole if any single fetch
// fails; partial results are never returned.
package agent

import (
	"context"
	"fmt"

	gerrors "github.com/gridfare/gridfare/pkg/errors"
)

// FieldType enumerates the input value types a schema field may declare.
type FieldType string

// Supported field types.
const (
	FieldString FieldType = "string"
	FieldBool   FieldType = "bool"
)

// Field is one entry of an entrypoint's input contract.
type Field struct {
	Name        string             // Input key
	Type        FieldType          // Expected value type
	Description string             // Human-readable meaning
	Required    bool               // Reject input when absent
	Default     any                // Applied when an optional field is absent
	Check       func(string) error // Optional syntax check for string fields
}

// InputSchema is the field-level contract validated before a handler runs.
type InputSchema struct {
	Fields []Field
}

// Input is a validated, defaults-applied input object handed to a handler.
type Input map[string]any

// String returns the named field as a string. Fields validated as
// FieldString are guaranteed to assert cleanly.
func (in Input) String(name string) string {
	s, _ := in[name].(string)
	return s
}

// Bool returns the named field as a bool.
func (in Input) Bool(name string) bool {
	b, _ := in[name].(bool)
	return b
}

// Validate checks raw against the schema, applying declared defaults for
// missing optional fields. On any shape mismatch it returns a
// [gerrors.ValidationError] enumerating every offending field; validation
// never stops at the first failure.
func (s InputSchema) Validate(raw map[string]any) (Input, error) {
	verr := &gerrors.ValidationError{}
	out := make(Input, len(s.Fields))

	known := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = true

		v, present := raw[f.Name]
		if !present || v == nil {
			if f.Required {
				verr.Add(f.Name, "required field is missing")
				continue
			}
			if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}

		switch f.Type {
		case FieldString:
			str, ok := v.(string)
			if !ok {
				verr.Add(f.Name, fmt.Sprintf("expected string, got %T", v))
				continue
			}
			if f.Check != nil {
				if err := f.Check(str); err != nil {
					verr.Add(f.Name, gerrors.UserMessage(err))
					continue
				}
			}
			out[f.Name] = str
		case FieldBool:
			b, ok := v.(bool)
			if !ok {
				verr.Add(f.Name, fmt.Sprintf("expected bool, got %T", v))
				continue
			}
			out[f.Name] = b
		default:
			verr.Add(f.Name, fmt.Sprintf("unsupported field type %q", f.Type))
		}
	}

	for name := range raw {
		if !known[name] {
			verr.Add(name, "unknown field")
		}
	}

	if !verr.Empty() {
		return nil, verr
	}
	return out, nil
}

// Handler executes an entrypoint against validated input and returns a plain
// JSON-serializable result object. A handler may return a soft not-found
// payload (a value with an embedded error descriptor) as a valid result;
// returning a non-nil error is reserved for fatal failures.
type Handler func(ctx context.Context, input Input) (any, error)

// Entrypoint is a named, priced, schema-validated capability exposed by the
// agent. Key is unique within a registry; Price is immutable after
// registration.
type Entrypoint struct {
	Key         string
	Description string
	Schema      InputSchema
	Price       int64 // Fee in smallest currency unit; 0 = free
	Handler     Handler
}

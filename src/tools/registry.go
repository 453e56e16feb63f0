// Package tools implements the function dispatcher: a registry of named
// read-only operations the model can request through CALL directives. Every
// operation returns serialized JSON and converts its own failures into an
// {"error": ...} payload so one failing tool never aborts a conversation.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	jsonschema "github.com/swaggest/jsonschema-go"
)

// Args is the string-keyed argument map passed to every operation.
type Args map[string]any

// Int64 reads an integer argument, tolerating JSON numbers and strings.
func (a Args) Int64(key string) (int64, bool) {
	switch v := a[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// String reads a string argument.
func (a Args) String(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// Handler executes one operation. The returned string must be valid JSON.
type Handler func(ctx context.Context, args Args) (string, error)

// Tool is one registered operation with its parameter schema.
type Tool struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Handler     Handler
}

// Registry maps operation names to tools.
type Registry struct {
	tools  map[string]*Tool
	order  []string
	logger *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tools:  make(map[string]*Tool),
		logger: logger.With("component", "tools"),
	}
}

// Register adds a tool. Later registrations with the same name replace
// earlier ones.
func (r *Registry) Register(tool *Tool) {
	if _, exists := r.tools[tool.Name]; !exists {
		r.order = append(r.order, tool.Name)
	}
	r.tools[tool.Name] = tool
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []*Tool {
	out := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// PromptCatalog renders the registered operations as the "Available
// Functions" block of the model prompt, one line per operation with its
// parameter names taken from the schema. Required parameters come first in
// schema order; optional ones follow with a ? suffix.
func (r *Registry) PromptCatalog() string {
	var b strings.Builder
	for i, tool := range r.Tools() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s(%s): %s", tool.Name, strings.Join(schemaParams(tool.Parameters), ", "), tool.Description)
	}
	return b.String()
}

func schemaParams(schema *jsonschema.Schema) []string {
	if schema == nil {
		return nil
	}
	params := append([]string(nil), schema.Required...)
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}
	var optional []string
	for name := range schema.Properties {
		if !required[name] {
			optional = append(optional, name+"?")
		}
	}
	sort.Strings(optional)
	return append(params, optional...)
}

// Dispatch runs the named operation. It never returns an error to the
// caller: unknown names and handler failures both come back as {"error": ...}
// payloads.
func (r *Registry) Dispatch(ctx context.Context, name string, args Args) string {
	tool, ok := r.tools[name]
	if !ok {
		r.logger.Warn("unknown function requested", "function", name)
		return errorPayload(fmt.Sprintf("function not found: %s", name))
	}

	result, err := tool.Handler(ctx, args)
	if err != nil {
		r.logger.Error("function execution failed", "function", name, "error", err)
		return errorPayload(fmt.Sprintf("execution failed: %v", err))
	}
	return result
}

func errorPayload(msg string) string {
	out, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return `{"error": "internal error"}`
	}
	return string(out)
}

func marshalResult(v any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to serialize result: %w", err)
	}
	return string(out), nil
}

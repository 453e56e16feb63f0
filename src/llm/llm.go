// Package llm defines the completion provider contract shared by all
// model backends, plus the output sanitizer they run before returning text.
package llm

import "context"

// Client produces one completion for a prompt triple. The context block
// carries assembled user state (profile, weather, inventory) and is injected
// into the provider-specific prompt shape.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userMessage, contextBlock string) (string, error)
}

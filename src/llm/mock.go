package llm

import (
	"context"
	"sync"
)

// Call records one Complete invocation made against a ScriptedClient.
type Call struct {
	SystemPrompt string
	UserMessage  string
	ContextBlock string
}

// ScriptedClient is a Client that replays queued responses in order. It is
// the baseline single-shot provider used in tests and offline mode.
type ScriptedClient struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Calls     []Call
}

var _ Client = (*ScriptedClient)(nil)

func (s *ScriptedClient) Complete(ctx context.Context, systemPrompt, userMessage, contextBlock string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, Call{SystemPrompt: systemPrompt, UserMessage: userMessage, ContextBlock: contextBlock})
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Responses) == 0 {
		return "", nil
	}
	next := s.Responses[0]
	s.Responses = s.Responses[1:]
	return next, nil
}

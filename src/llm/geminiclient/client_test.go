package geminiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ladderServer fails or answers per model name and counts calls per model.
type ladderServer struct {
	mu      sync.Mutex
	calls   map[string]int
	failing map[string]bool
	server  *httptest.Server
}

func newLadderServer(t *testing.T, failing ...string) *ladderServer {
	t.Helper()
	ls := &ladderServer{
		calls:   make(map[string]int),
		failing: make(map[string]bool),
	}
	for _, m := range failing {
		ls.failing[m] = true
	}

	ls.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Path shape: /v1beta/models/<model>:generateContent
		parts := strings.Split(r.URL.Path, "/")
		model := strings.TrimSuffix(parts[len(parts)-1], ":generateContent")

		ls.mu.Lock()
		ls.calls[model]++
		fail := ls.failing[model]
		ls.mu.Unlock()

		if fail {
			http.Error(w, `{"error":{"code":429}}`, http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "answer from " + model}}}},
			},
		})
	}))
	t.Cleanup(ls.server.Close)
	return ls
}

func (ls *ladderServer) callCount(model string) int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.calls[model]
}

func (ls *ladderServer) setFailing(model string, fail bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.failing[model] = fail
}

func TestLadderWalkAndStickyConfig(t *testing.T) {
	ls := newLadderServer(t, "gemini-1.5-flash", "gemini-1.5-pro")
	client := NewClient(Config{APIKey: "k", BaseURL: ls.server.URL})

	got, err := client.Complete(context.Background(), "sys", "질문", "ctx")
	require.NoError(t, err)
	assert.Equal(t, "answer from gemini-1.0-pro", got)
	assert.Equal(t, 1, ls.callCount("gemini-1.5-flash"))
	assert.Equal(t, 1, ls.callCount("gemini-1.5-pro"))
	assert.Equal(t, 1, ls.callCount("gemini-1.0-pro"))

	// Second request goes straight to the sticky config.
	got, err = client.Complete(context.Background(), "sys", "질문2", "ctx")
	require.NoError(t, err)
	assert.Equal(t, "answer from gemini-1.0-pro", got)
	assert.Equal(t, 1, ls.callCount("gemini-1.5-flash"))
	assert.Equal(t, 1, ls.callCount("gemini-1.5-pro"))
	assert.Equal(t, 2, ls.callCount("gemini-1.0-pro"))
}

func TestStickyFailureResetsToLadder(t *testing.T) {
	ls := newLadderServer(t)
	client := NewClient(Config{APIKey: "k", BaseURL: ls.server.URL})

	got, err := client.Complete(context.Background(), "sys", "질문", "ctx")
	require.NoError(t, err)
	assert.Equal(t, "answer from gemini-1.5-flash", got)

	// Sticky entry starts failing: one failed attempt against the cache,
	// then the walk restarts from the top and re-validates the next entry.
	ls.setFailing("gemini-1.5-flash", true)
	got, err = client.Complete(context.Background(), "sys", "질문", "ctx")
	require.NoError(t, err)
	assert.Equal(t, "answer from gemini-1.5-pro", got)
	assert.Equal(t, 3, ls.callCount("gemini-1.5-flash")) // 1 ok + sticky retry + ladder walk
	assert.Equal(t, 1, ls.callCount("gemini-1.5-pro"))
}

func TestPromptShape(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req.Contents[0].Parts[0].Text
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "ok"}}}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	_, err := client.Complete(context.Background(), "시스템 프롬프트", "뭐 입지?", "날씨: 맑음")
	require.NoError(t, err)

	assert.Contains(t, gotPrompt, "<System>\n시스템 프롬프트\n</System>")
	assert.Contains(t, gotPrompt, "<Context>\n날씨: 맑음\n</Context>")
	assert.Contains(t, gotPrompt, "CALL: functionName:argument")
	assert.Contains(t, gotPrompt, "User question: 뭐 입지?")

	// Without a wired catalog the prompt falls back to the minimal list.
	assert.Contains(t, gotPrompt, "Available Functions:\n- recommendOutfit")
	assert.Contains(t, gotPrompt, "- searchStyle (keyword implied")
}

func TestPromptListsConfiguredFunctions(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req.Contents[0].Parts[0].Text
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "ok"}}}},
			},
		})
	}))
	defer server.Close()

	catalog := "- getItemsForSale(userId): Items the user listed for sale\n" +
		"- getOotdSchedule(userId, date): Planned outfit entry for an exact date"
	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Functions: catalog})
	_, err := client.Complete(context.Background(), "시스템", "9월 5일에 뭐 입지?", "")
	require.NoError(t, err)

	assert.Contains(t, gotPrompt, "Available Functions:\n"+catalog)
	assert.NotContains(t, gotPrompt, "- recommendOutfit (requires weather info")
}

func TestExhaustedLadderRuleFallback(t *testing.T) {
	ls := newLadderServer(t, "gemini-1.5-flash", "gemini-1.5-pro", "gemini-1.0-pro")
	client := NewClient(Config{APIKey: "k", BaseURL: ls.server.URL})

	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{
			name:     "data query returns sentinel",
			message:  "내 에코 포인트 몇 점이야?",
			expected: FallbackSentinel,
		},
		{
			name:     "wardrobe listing returns sentinel",
			message:  "옷장에 뭐 있어?",
			expected: FallbackSentinel,
		},
		{
			name:     "greeting",
			message:  "안녕!",
			expected: "안녕하세요! 패션 AI 스타일메이트입니다. 오늘도 스타일리시한 하루 되세요!",
		},
		{
			name:     "are you sure",
			message:  "그거 진짜야?",
			expected: "네, 확실합니다! 고객님의 정보는 시스템에서 실시간으로 조회한 정확한 데이터입니다. 믿으셔도 됩니다.",
		},
		{
			name:    "catch-all apology",
			message: "양자역학 설명해줘",
			expected: "죄송합니다. 현재 질문에 대해서는 답변을 드리기가 어렵습니다. \n" +
				"다른 질문을 해주시면 답변 도와드리겠습니다.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.Complete(context.Background(), "sys", tt.message, "ctx")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExactlyOneAttemptPerEntry(t *testing.T) {
	ls := newLadderServer(t, "gemini-1.5-flash", "gemini-1.5-pro", "gemini-1.0-pro")
	client := NewClient(Config{APIKey: "k", BaseURL: ls.server.URL})

	_, err := client.Complete(context.Background(), "sys", "아무거나", "ctx")
	require.NoError(t, err)

	for _, model := range []string{"gemini-1.5-flash", "gemini-1.5-pro", "gemini-1.0-pro"} {
		assert.Equal(t, 1, ls.callCount(model), fmt.Sprintf("model %s", model))
	}
}

// Package geminiclient implements the resilient completion provider: an
// ordered ladder of Gemini (version, model) configurations with a sticky
// last-known-good entry, and a deterministic rule-based responder when the
// whole ladder is down.
package geminiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jihyunk/stylemate/src/llm"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultTimeout = 30 * time.Second
)

// FallbackSentinel is returned for data-lookup-shaped questions when every
// ladder entry failed. The orchestrator treats it as a signal to answer from
// direct tool invocation instead of a canned sentence.
const FallbackSentinel = "죄송합니다. 데이터 시스템 연결을 시도합니다."

var _ llm.Client = (*Client)(nil)

// APIConfig is one ladder entry: an API version paired with a model name.
type APIConfig struct {
	Version string
	Model   string
}

func (c APIConfig) String() string {
	return c.Version + "/" + c.Model
}

// DefaultLadder orders configurations from fast-and-stable to legacy backup.
var DefaultLadder = []APIConfig{
	{Version: "v1beta", Model: "gemini-1.5-flash"},
	{Version: "v1beta", Model: "gemini-1.5-pro"},
	{Version: "v1beta", Model: "gemini-1.0-pro"},
}

// Config holds the Gemini provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Ladder  []APIConfig
	Timeout time.Duration
	Logger  *slog.Logger
	// Functions is the rendered "Available Functions" block listing the
	// operations the model may CALL, normally tools.Registry.PromptCatalog().
	Functions string
}

// Client is the Gemini generateContent client.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	ladder     []APIConfig
	functions  string

	mu      sync.Mutex
	working *APIConfig
}

// NewClient creates a new Gemini API client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if len(config.Ladder) == 0 {
		config.Ladder = DefaultLadder
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "gemini_client")

	if config.Functions == "" {
		config.Functions = defaultFunctions
	}

	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		ladder:     config.Ladder,
		functions:  config.Functions,
	}
}

// Complete tries the sticky configuration first, then walks the ladder in
// order with exactly one attempt per entry. When every entry fails it never
// returns an error; it answers from the rule-based responder instead.
func (c *Client) Complete(ctx context.Context, systemPrompt, userMessage, contextBlock string) (string, error) {
	prompt := buildPrompt(systemPrompt, userMessage, contextBlock, c.functions)

	if cached := c.workingConfig(); cached != nil {
		text, err := c.executeRequest(ctx, *cached, prompt)
		if err == nil {
			return llm.Sanitize(text), nil
		}
		c.logger.Warn("cached config failed, resetting", "config", cached.String(), "error", err)
		c.clearWorking(*cached)
	}

	for _, config := range c.ladder {
		text, err := c.executeRequest(ctx, config, prompt)
		if err != nil {
			c.logger.Warn("ladder entry failed", "config", config.String(), "error", err)
			continue
		}
		c.logger.Info("ladder entry succeeded", "config", config.String())
		c.setWorking(config)
		return llm.Sanitize(text), nil
	}

	c.logger.Error("all ladder entries failed, using rule-based responder")
	return ruleBasedResponse(userMessage), nil
}

func (c *Client) workingConfig() *APIConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.working == nil {
		return nil
	}
	cfg := *c.working
	return &cfg
}

func (c *Client) setWorking(cfg APIConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.working = &cfg
}

// clearWorking resets the sticky entry only if it still is the one that
// failed, so a config another request just validated survives.
func (c *Client) clearWorking(failed APIConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.working != nil && *c.working == failed {
		c.working = nil
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) executeRequest(ctx context.Context, config APIConfig, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent?key=%s", c.baseURL, config.Version, config.Model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(snippet))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// defaultFunctions is the minimal operation list used when no catalog is
// wired in. The userId argument is always injected by the orchestrator.
const defaultFunctions = `- recommendOutfit (requires weather info implied or collected)
- getWardrobeSummary (userId implied)
- getEcoPoints (userId implied)
- searchStyle (keyword implied from user mood/request e.g. 'dating look', 'hip style', 'formal')`

func buildPrompt(systemPrompt, userMessage, contextBlock, functions string) string {
	return fmt.Sprintf(`<System>
%s
</System>

<Context>
%s
</Context>

<User>
%s
</User>

IMPORTANT: If you need to use a tool/function based on the user request, response ONLY with the exact format: CALL: functionName:argument (if needed) or CALL: functionName
Available Functions:
%s

User question: %s
`, systemPrompt, contextBlock, userMessage, functions, userMessage)
}

// ruleBasedResponse pattern-matches the user message against small keyword
// sets and returns a canned answer. Data-lookup-shaped questions get the
// sentinel instead so the caller can answer from the database.
func ruleBasedResponse(userMessage string) string {
	lower := strings.ToLower(userMessage)

	isDataQuery := (strings.Contains(userMessage, "에코") &&
		(strings.Contains(userMessage, "포인트") || strings.Contains(userMessage, "점수"))) ||
		(strings.Contains(userMessage, "옷장") &&
			(strings.Contains(userMessage, "몇") || strings.Contains(userMessage, "개") ||
				strings.Contains(userMessage, "목록") || strings.Contains(userMessage, "뭐") ||
				strings.Contains(userMessage, "있어") || strings.Contains(userMessage, "보여줘")))
	if isDataQuery {
		return FallbackSentinel
	}

	switch {
	case strings.Contains(userMessage, "확실해") || strings.Contains(userMessage, "진짜"):
		return "네, 확실합니다! 고객님의 정보는 시스템에서 실시간으로 조회한 정확한 데이터입니다. 믿으셔도 됩니다."
	case strings.Contains(userMessage, "안녕") || strings.Contains(userMessage, "반가") || strings.Contains(lower, "hello"):
		return "안녕하세요! 패션 AI 스타일메이트입니다. 오늘도 스타일리시한 하루 되세요!"
	case strings.Contains(userMessage, "뭐해") || strings.Contains(userMessage, "바빠"):
		return "고객님의 옷장을 분석하고 가장 멋진 코디를 고민하고 있었어요."
	case strings.Contains(userMessage, "사랑") || strings.Contains(userMessage, "좋아"):
		return "어머, 감사합니다! 저도 고객님과 함께해서 행복해요."
	case strings.Contains(userMessage, "심심") || strings.Contains(userMessage, "놀아"):
		return "저랑 패션 밸런스 게임 어때요? '평생 패딩 입기' vs '평생 반팔 입기' 골라보세요!"
	case strings.Contains(userMessage, "배고파") || strings.Contains(userMessage, "메뉴"):
		return "식사 메뉴 고르는 건 옷 고르는 것만큼 어렵죠. 오늘은 가벼운 샐러드 어떠세요?"
	case strings.Contains(userMessage, "추천") || strings.Contains(userMessage, "코디"):
		return "지금 패션 AI의 영감이 잠시 충전 중입니다. \n대신 '내 옷장'을 열어보시면 잊고 있던 멋진 옷을 발견하실지도 몰라요!"
	case strings.Contains(userMessage, "방법") || strings.Contains(userMessage, "어떻게"):
		return "죄송합니다. 상세한 안내는 잠시 후 다시 시도해주세요. 궁금한 점은 언제든 물어봐주세요!"
	}

	if strings.Contains(userMessage, "사이트") || strings.Contains(userMessage, "누구") || strings.Contains(userMessage, "뭐야") {
		return "스타일메이트는 안 입는 옷을 업사이클링하고, 나만의 디지털 옷장을 관리하며 탄소 중립을 실천하는 지속 가능한 패션 비서입니다."
	}

	return "죄송합니다. 현재 질문에 대해서는 답변을 드리기가 어렵습니다. \n다른 질문을 해주시면 답변 도와드리겠습니다."
}

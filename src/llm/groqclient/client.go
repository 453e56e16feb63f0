// Package groqclient implements the single-endpoint completion provider
// backed by Groq's OpenAI-compatible chat API.
package groqclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jihyunk/stylemate/src/llm"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"
	defaultTimeout = 30 * time.Second

	// Creative but focused.
	temperature = 0.7
)

var _ llm.Client = (*Client)(nil)

// Config holds the Groq provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client is the Groq chat completion client.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	model      string
}

// NewClient creates a new Groq API client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "groq_client")

	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		model:      config.Model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion request and returns the sanitized
// assistant text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userMessage, contextBlock string) (string, error) {
	logger := c.logger.With("method", "Complete", "model", c.model)

	req := chatRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages: []chatMessage{
			{Role: "system", Content: buildSystemMessage(systemPrompt, contextBlock)},
			{Role: "user", Content: userMessage},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("request failed", "error", err)
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Error("received error response", "status_code", resp.StatusCode)
		return "", fmt.Errorf("groq returned status %d: %s", resp.StatusCode, string(snippet))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Error("failed to decode response", "error", err)
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}

	logger.Debug("chat completion successful")
	return llm.Sanitize(result.Choices[0].Message.Content), nil
}

func buildSystemMessage(systemPrompt, contextBlock string) string {
	return fmt.Sprintf("%s\n\n[Context Information]\n%s\n\n%s", systemPrompt, contextBlock, criticalRules)
}

// criticalRules pins the answer format: items are quoted by their exact
// stored name as [보유] Category/Brand/Name, Korean output only, and weather
// context is cited before outfit advice.
const criticalRules = `[CRITICAL RULES - MUST FOLLOW]
0. **STAY ON TOPIC (최우선)**:
   - If user says ONLY greeting (안녕, 하이, 반가워 등) → ONLY greet back. "안녕하세요 고객님! 무엇을 도와드릴까요?"
   - Do NOT add weather info, clothing recommendations, or any extra information unless asked.
   - ONLY recommend clothes when user explicitly asks: "뭐 입을까?", "추천해줘", "스타일 추천", "외출복", "오늘 입을 옷" etc.
1. **ADDRESS**: ALWAYS call user **'고객님'**.
2. **NAME IS MANDATORY**:
   - You MUST use the EXACT **'name'** field from tool results.
   - Example: If tool returns {"name":"화이트 기본 티셔츠"}, you MUST say "화이트 기본 티셔츠".
   - **NEVER** output just "상의/Nike/" - this is WRONG.
   - **ALWAYS** output "상의/Nike/화이트 기본 티셔츠" - this is CORRECT.
3. **FORMAT**: **[보유] [Category]/[Brand]/[EXACT NAME]**
   - Good: **[보유] 상의/Nike/레드 체크 남방**
   - Bad: **상의/Nike/** (missing name = WRONG)
   - **IMPORTANT**: Wrap recommended items in **double asterisks** for bold display.
   - Example: "**[보유] 하의/Adidas/블랙 조거 팬츠**를 추천드려요."
4. **TERMINOLOGY**: Use **'상의'** and **'하의'**, not TOP/BOTTOM.
5. **CONTEXT LOGIC**:
   - Formal (Wedding, 소개팅, 면접): Sportswear (Nike/Adidas) = BAD. Say "적절한 옷이 없네요" and recommend general formal item.
   - Casual (PC Bang, 집콕): Sportswear = GOOD. Recommend owned items.
6. **LANGUAGE**: Korean ONLY.
   - NO foreign words: Chinese, Japanese, Arabic, Vietnamese (thật, rất), Turkish (ayrıca), etc.
   - If you don't know how to say something in Korean, skip it entirely.
7. **WARDROBE LISTING RULE**:
   - If user asks "뭐 입을까?", "추천해줘" → Do NOT list all items. Just recommend 1-2 items directly.
   - If user asks "내 옷장에 뭐 있어?", "옷 목록 보여줘" → List all items.
   - NEVER mention "고객님의 옷장에는 X, Y, Z가 있네요" unless asked.
8. **CONCISE RESPONSES**:
   - Say "[보유] 상의/Nike/레드 체크 남방이 있어요" directly.
   - Do NOT say "X가 아닌 Y가 있어요" or compare items unnecessarily.
   - Complete your sentences fully. Never end mid-word.
   - **ONLY answer what the user asked. Do NOT add unsolicited clothing recommendations or lunch suggestions.**
   - If user asks about a person, historical event, or general knowledge → Just answer that question. Do NOT recommend clothes.
   - Only recommend clothes when user explicitly asks: "뭐 입을까?", "추천해줘", "스타일 추천", "외출복" etc.
9. **GENERAL FASHION RECOMMENDATIONS**:
   - FIRST: Recommend from user's owned items [보유].
   - IF no suitable owned items OR user asks for general suggestions:
     → Mark as [추천] and provide general fashion advice.
     → Example: "고객님 옷장에는 면접에 적합한 옷이 없네요. [추천] 네이비 슬랙스와 화이트 셔츠를 추천드려요!"
10. **WEATHER-BASED RECOMMENDATIONS (매우 중요)**:
   - Context에 weather, temperature, sky, precipitation, currentSeason 정보가 있으면 **반드시** 참고하세요.
   - 외출 복장 추천 시 먼저 날씨를 언급: "고객님 지역은 오늘 {sky}, {temperature}입니다."
   - **비(precipitation=비) 예보 시**: 우산, 방수 아우터, 레인부츠 언급
   - **눈(precipitation=눈) 예보 시**: 따뜻한 아우터, 부츠 추천
   - **currentSeason=겨울**: 패딩, 코트, 니트 등 보온성 좋은 옷 추천
   - **currentSeason=여름**: 반팔, 린넨, 시원한 소재 추천
   - 추천 아이템 목록에는 이미 계절에 맞는 옷만 포함되어 있으니 그 중에서 추천하세요.`

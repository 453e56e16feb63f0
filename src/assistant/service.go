package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/jihyunk/stylemate/src/llm"
	"github.com/jihyunk/stylemate/src/storage"
	"github.com/jihyunk/stylemate/src/tools"
)

const (
	// historyLimit is how many transcript turns feed short-term memory.
	historyLimit = 6
	// historyTruncate caps each remembered turn.
	historyTruncate = 100

	apologyAnswer = "죄송합니다. AI 시스템 연결 중 오류가 발생했습니다."
)

// callRe matches a tool-call directive, tolerating whitespace around colons:
// "CALL: searchStyle: 데이트룩", "call:getEcoPoints".
var callRe = regexp.MustCompile(`(?i)CALL\s*[:\s]\s*([A-Za-z0-9_]+)(?:\s*[:\s]\s*(.*))?`)

// Store is the storage surface the orchestrator and context assembler need.
// Satisfied by *storage.Store.
type Store interface {
	FindOrCreateThread(ctx context.Context, ownerID int64) (*storage.Thread, error)
	AppendMessage(ctx context.Context, msg *storage.Message) error
	RecentMessages(ctx context.Context, threadID string, limit int) ([]storage.Message, error)
	GetUser(ctx context.Context, userID int64) (*storage.User, error)
	ListOwnedItems(ctx context.Context, ownerID int64) ([]storage.WardrobeItem, error)
}

// Dispatcher runs named tool operations. Satisfied by *tools.Registry.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, args tools.Args) string
}

// Embedder and Indexer back the wardrobe reindex path.
type Embedder interface {
	Embed(ctx context.Context, text string) []float32
}

type Indexer interface {
	Upsert(ctx context.Context, ownerID, itemID int64, vector []float32, description string) error
}

// Config wires the orchestrator's collaborators.
type Config struct {
	Store      Store
	Dispatcher Dispatcher
	LLM        llm.Client
	Weather    Weather
	Embedder   Embedder
	Index      Indexer
	Logger     *slog.Logger
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Service handles one inbound user message at a time per conversation. The
// response cache and collaborator caches are the only state shared across
// users.
type Service struct {
	store      Store
	dispatcher Dispatcher
	llm        llm.Client
	assembler  *ContextAssembler
	embedder   Embedder
	index      Indexer
	cache      *ResponseCache
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:      cfg.Store,
		dispatcher: cfg.Dispatcher,
		llm:        cfg.LLM,
		assembler:  NewContextAssembler(cfg.Store, cfg.Weather, logger, now),
		embedder:   cfg.Embedder,
		index:      cfg.Index,
		cache:      NewResponseCache(),
		logger:     logger.With("component", "assistant"),
		now:        now,
	}
}

// HandleMessage runs the full pipeline for one user turn and returns the
// assistant's answer. The inbound message is persisted before any downstream
// work, so transcript history survives provider outages.
func (s *Service) HandleMessage(ctx context.Context, ownerID int64, text string) (string, error) {
	thread, err := s.store.FindOrCreateThread(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve thread: %w", err)
	}

	s.persist(ctx, thread.ID, fmt.Sprintf("%d", ownerID), text)

	if cached, ok := s.cache.Get(ownerID, text); ok {
		s.logger.Debug("cache hit", "owner_id", ownerID)
		s.persist(ctx, thread.ID, storage.AssistantSenderID, cached)
		return cached, nil
	}

	userContext := s.assembler.Build(ctx, ownerID)
	history := s.conversationHistory(ctx, thread.ID)

	answer := s.directAnswer(ctx, ownerID, text)

	if answer == "" {
		answer, err = s.llm.Complete(ctx, systemPrompt, text, userContext+history)
		if err != nil {
			s.logger.Error("completion failed", "error", err)
			answer = apologyAnswer
		}

		answer = s.applyRecovery(ctx, ownerID, text, answer)
		answer = s.resolveToolCall(ctx, ownerID, text, userContext, answer)
	}

	if !strings.Contains(answer, "죄송합니다") && !strings.Contains(answer, "오류") {
		s.cache.Put(ownerID, text, answer)
	}

	s.persist(ctx, thread.ID, storage.AssistantSenderID, answer)
	return answer, nil
}

// persist appends a transcript message; storage failures are logged, never
// propagated, so a full transcript is best-effort.
func (s *Service) persist(ctx context.Context, threadID, senderID, body string) {
	err := s.store.AppendMessage(ctx, &storage.Message{
		ThreadID: threadID,
		SenderID: senderID,
		Type:     storage.MessageTypeText,
		Body:     body,
	})
	if err != nil {
		s.logger.Error("failed to save message", "thread_id", threadID, "error", err)
	}
}

func (s *Service) conversationHistory(ctx context.Context, threadID string) string {
	msgs, err := s.store.RecentMessages(ctx, threadID, historyLimit)
	if err != nil {
		s.logger.Warn("failed to load history", "thread_id", threadID, "error", err)
		return ""
	}
	if len(msgs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n[최근 대화 히스토리]\n")
	for _, msg := range msgs {
		role := "사용자"
		if msg.SenderID == storage.AssistantSenderID {
			role = "AI"
		}
		body := msg.Body
		if runes := []rune(body); len(runes) > historyTruncate {
			body = string(runes[:historyTruncate]) + "..."
		}
		fmt.Fprintf(&b, "%s: %s\n", role, body)
	}
	return b.String()
}

// directAnswer short-circuits intents that must be numerically exact. It
// returns "" when no fast path applies.
func (s *Service) directAnswer(ctx context.Context, ownerID int64, text string) string {
	if containsAny(text, "판매", "팔고", "팔아") && containsAny(text, "옷", "뭐", "있", "목록") {
		answer := s.forSaleAnswer(ctx, ownerID)
		s.logger.Debug("direct answer: items for sale", "owner_id", ownerID)
		return answer
	}

	if containsAny(text, "일에", "일 ", "날", "언제") && containsAny(text, "입", "뭐", "계획", "OOTD", "코디") {
		date, ok := extractDate(text, s.now())
		if !ok {
			return ""
		}
		s.logger.Debug("direct answer: ootd schedule", "owner_id", ownerID, "date", date)
		return s.scheduleAnswer(ctx, ownerID, date)
	}

	return ""
}

func (s *Service) forSaleAnswer(ctx context.Context, ownerID int64) string {
	payload := s.dispatcher.Dispatch(ctx, "getItemsForSale", tools.Args{"userId": ownerID})

	var result struct {
		Results []struct {
			Name string `json:"name"`
		} `json:"results"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(payload), &result); err != nil || result.Count == 0 {
		return "현재 고객님이 판매중인 옷이 없습니다. 판매할 옷을 등록해보세요!"
	}

	names := make([]string, 0, len(result.Results))
	for _, r := range result.Results {
		names = append(names, "**"+r.Name+"**")
	}
	return fmt.Sprintf("고객님이 현재 판매중인 옷은 총 **%d벌**입니다: %s", result.Count, strings.Join(names, ", "))
}

func (s *Service) scheduleAnswer(ctx context.Context, ownerID int64, date string) string {
	payload := s.dispatcher.Dispatch(ctx, "getOotdSchedule", tools.Args{"userId": ownerID, "date": date})

	var result struct {
		Found bool   `json:"found"`
		Memo  string `json:"memo"`
	}
	displayDate := formatKoreanDate(date)
	if err := json.Unmarshal([]byte(payload), &result); err != nil || !result.Found {
		return fmt.Sprintf("📅 %s에는 아직 저장된 OOTD가 없습니다.\n\n피팅룸에서 코디를 저장해보세요!", displayDate)
	}
	memo := result.Memo
	if memo == "" {
		memo = "메모 없음"
	}
	return fmt.Sprintf("📅 고객님은 **%s**에 **%s** 룩을 계획하셨습니다!", displayDate, memo)
}

// applyRecovery replaces provider failure sentinels with answers computed
// straight from the database.
func (s *Service) applyRecovery(ctx context.Context, ownerID int64, text, answer string) string {
	failed := strings.Contains(answer, "무료 사용량 한도") ||
		strings.HasPrefix(answer, "죄송합니다.") ||
		strings.Contains(answer, "시스템 연결을 시도")
	if !failed {
		return answer
	}

	switch {
	case strings.Contains(text, "에코") && containsAny(text, "포인트", "점수"):
		payload := s.dispatcher.Dispatch(ctx, "getEcoPoints", tools.Args{"userId": ownerID})
		var result struct {
			CurrentPoints int64 `json:"currentPoints"`
		}
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			return answer
		}
		return fmt.Sprintf("고객님의 현재 에코 포인트는 **%d점**입니다.", result.CurrentPoints)

	case strings.Contains(text, "옷장") && containsAny(text, "몇", "개", "목록", "뭐", "있어"):
		payload := s.dispatcher.Dispatch(ctx, "getWardrobeSummary", tools.Args{"userId": ownerID})
		var result struct {
			TotalItems int `json:"totalItems"`
		}
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			return answer
		}
		return fmt.Sprintf("고객님의 옷장에는 현재 **%d벌**의 옷이 등록되어 있습니다.", result.TotalItems)

	case containsAny(text, "판매", "팔고") && containsAny(text, "옷", "뭐", "있"):
		return s.forSaleAnswer(ctx, ownerID)
	}

	return answer
}

// resolveToolCall parses at most one CALL directive from the answer,
// dispatches it and re-prompts the model with the tool result. A directive
// in the second completion is not parsed again.
func (s *Service) resolveToolCall(ctx context.Context, ownerID int64, text, userContext, answer string) string {
	m := callRe.FindStringSubmatch(answer)
	if m == nil {
		return answer
	}

	functionName := strings.TrimSpace(m[1])
	args := tools.Args{"userId": ownerID}
	if argument := strings.TrimSpace(m[2]); argument != "" {
		args["keyword"] = argument
	}

	s.logger.Info("tool call requested", "function", functionName)
	functionResult := s.dispatcher.Dispatch(ctx, functionName, args)

	secondPrompt := fmt.Sprintf(secondPromptFormat, text, functionResult)
	final, err := s.llm.Complete(ctx, systemPrompt, secondPrompt, userContext)
	if err != nil {
		s.logger.Error("second completion failed", "function", functionName, "error", err)
		return apologyAnswer
	}
	return final
}

// ReindexOwner re-embeds every catalog item description and upserts it into
// the vector index. Items whose embedding is unavailable are skipped. It
// returns how many items were indexed.
func (s *Service) ReindexOwner(ctx context.Context, ownerID int64) (int, error) {
	items, err := s.store.ListOwnedItems(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to list items: %w", err)
	}

	indexed := 0
	for _, item := range items {
		description := itemDescription(item)
		vector := s.embedder.Embed(ctx, description)
		if len(vector) == 0 {
			s.logger.Warn("embedding unavailable, skipping item", "item_id", item.ID)
			continue
		}
		if err := s.index.Upsert(ctx, ownerID, item.ID, vector, description); err != nil {
			s.logger.Error("failed to index item", "item_id", item.ID, "error", err)
			continue
		}
		indexed++
	}
	s.logger.Info("reindexed wardrobe", "owner_id", ownerID, "indexed", indexed, "total", len(items))
	return indexed, nil
}

// itemDescription is the text embedded per item. Keep in sync with the
// analysis pipeline that writes new items.
func itemDescription(item storage.WardrobeItem) string {
	parts := []string{item.Category, item.Brand, item.Name, item.Color, item.Season}
	fields := parts[:0]
	for _, p := range parts {
		if p != "" {
			fields = append(fields, p)
		}
	}
	return strings.Join(fields, " ")
}

func formatKoreanDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return fmt.Sprintf("%s월 %s일", strings.TrimPrefix(parts[1], "0"), strings.TrimPrefix(parts[2], "0"))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

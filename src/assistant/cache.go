package assistant

import "sync"

type cacheKey struct {
	ownerID int64
	text    string
}

// ResponseCache memoizes final answers per (owner, message text). Identical
// text from the same user always replays the cached answer even if the
// underlying data changed since; that staleness window is accepted in
// exchange for saving model quota. Safe for concurrent use,
// last-writer-wins.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]string
}

func NewResponseCache() *ResponseCache {
	return &ResponseCache{entries: make(map[cacheKey]string)}
}

func (c *ResponseCache) Get(ownerID int64, text string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	answer, ok := c.entries[cacheKey{ownerID: ownerID, text: text}]
	return answer, ok
}

func (c *ResponseCache) Put(ownerID int64, text, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{ownerID: ownerID, text: text}] = answer
}

func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

package tokens

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Counter counts BPE tokens with a tiktoken encoding.
type Counter struct {
	mu  sync.Mutex
	enc *tiktoken.Tiktoken
}

// New loads encoding (e.g. "cl100k_base"). The BPE ranks are fetched once and
// cached by tiktoken-go in TIKTOKEN_CACHE_DIR.
func New(encoding string) (*Counter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", encoding, err)
	}
	return &Counter{enc: enc}, nil
}

func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.enc.Encode(text, nil, nil))
}

package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Count(t *testing.T) {
	c, err := New("cl100k_base")
	if err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}

	assert.Zero(t, c.Count(""))
	assert.Positive(t, c.Count("User: hello\nBot:"))
	assert.Greater(t, c.Count("a much longer sentence with many more words in it"), c.Count("short"))
}

func TestNew_UnknownEncoding(t *testing.T) {
	_, err := New("no_such_encoding")
	assert.Error(t, err)
}

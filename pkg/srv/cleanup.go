package srv

import (
	"context"
	"fmt"

	"github.com/sandevgo/memobot/pkg/log"
)

type closer struct {
	name  string
	close func() error
}

func (c *closer) Start(ctx context.Context) error {
	return nil
}

func (c *closer) Shutdown(ctx context.Context) error {
	if c.close == nil {
		return nil
	}
	if err := c.close(); err != nil {
		return fmt.Errorf("close %s: %w", c.name, err)
	}
	log.FromCtx(ctx).Debug().Str("resource", c.name).Msg("closed")
	return nil
}

// NewCleanup turns a resource's Close into a Service so it is released
// during shutdown.
func NewCleanup(name string, fn func() error) Service {
	return &closer{name: name, close: fn}
}

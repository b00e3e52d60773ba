package srv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, name)
}

type namedService struct {
	name    string
	rec     *recorder
	started chan struct{}
	err     error
}

func (s *namedService) Start(ctx context.Context) error {
	close(s.started)
	return nil
}

func (s *namedService) Shutdown(ctx context.Context) error {
	s.rec.add(s.name)
	return s.err
}

func TestServices_Lifecycle(t *testing.T) {
	rec := &recorder{}
	web := &namedService{name: "http", rec: rec, started: make(chan struct{})}
	bot := &namedService{name: "bot", rec: rec, started: make(chan struct{}), err: errors.New("boom")}

	var closed bool
	db := NewCleanup("db", func() error {
		rec.add("db")
		closed = true
		return nil
	})

	services := []Service{db, web, bot}
	ctx, cancel := context.WithCancel(context.Background())
	StartServices(ctx, services)

	for _, s := range []*namedService{web, bot} {
		select {
		case <-s.started:
		case <-time.After(time.Second):
			t.Fatalf("%s did not start", s.name)
		}
	}

	cancel()
	ShutdownServices(ctx, services, time.Second)

	require.True(t, closed)
	assert.Equal(t, []string{"bot", "http", "db"}, rec.order)
}

func TestNewCleanup_Nil(t *testing.T) {
	s := NewCleanup("nothing", nil)
	assert.NoError(t, s.Start(context.Background()))
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestNewCleanup_ErrorNamesResource(t *testing.T) {
	boom := errors.New("boom")
	s := NewCleanup("database", func() error { return boom })

	err := s.Shutdown(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "database")
}

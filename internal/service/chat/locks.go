package chat

import "sync"

// userLocks hands out one mutex per user id. Entries are dropped once no
// goroutine holds or waits for them.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*userLock)}
}

func (l *userLocks) lock(userID string) (unlock func()) {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()

	return func() {
		ul.mu.Unlock()

		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}

func (l *userLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

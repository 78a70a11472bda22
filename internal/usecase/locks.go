package usecase

import "sync"

type gameLock struct {
	mu   sync.Mutex
	refs int
}

// gameLocks - one mutex per game, so a game has a single writer at a time.
// An entry lives only while some request holds or waits on it.
type gameLocks struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

func newGameLocks() *gameLocks {
	return &gameLocks{
		locks: make(map[string]*gameLock),
	}
}

// tryLock - locks game id without waiting; ok is false when another request holds it.
func (that *gameLocks) tryLock(id string) (unlock func(), ok bool) {
	that.mu.Lock()
	lock, exists := that.locks[id]
	if !exists {
		lock = &gameLock{}
		that.locks[id] = lock
	}
	lock.refs++
	that.mu.Unlock()

	if !lock.mu.TryLock() {
		that.release(id, lock)
		return nil, false
	}

	return func() {
		lock.mu.Unlock()
		that.release(id, lock)
	}, true
}

func (that *gameLocks) release(id string, lock *gameLock) {
	that.mu.Lock()
	defer that.mu.Unlock()

	lock.refs--
	if lock.refs == 0 && that.locks[id] == lock {
		delete(that.locks, id)
	}
}

func (that *gameLocks) size() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}

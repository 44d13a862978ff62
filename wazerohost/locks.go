package wazerohost

import "sync"

type rwState struct {
	readers int
	writer  bool
}

// lockTable holds per-key reader/writer locks. Acquires block; there is no
// fairness between readers and writers.
type lockTable struct {
	mu   sync.Mutex
	cond *sync.Cond
	held map[string]*rwState
}

func newLockTable() *lockTable {
	t := &lockTable{held: make(map[string]*rwState)}
	t.cond = sync.NewCond(&t.mu)
	return t
}

func (t *lockTable) state(key string) *rwState {
	s, ok := t.held[key]
	if !ok {
		s = &rwState{}
		t.held[key] = s
	}
	return s
}

// release drops the entry for key once nothing holds it.
func (t *lockTable) release(key string, s *rwState) {
	if !s.writer && s.readers == 0 {
		delete(t.held, key)
	}
	t.cond.Broadcast()
}

func (t *lockTable) lockRead(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.state(key)
	for s.writer {
		t.cond.Wait()
		s = t.state(key)
	}
	s.readers++
}

func (t *lockTable) unlockRead(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.held[key]
	if !ok || s.readers == 0 {
		return false
	}
	s.readers--
	t.release(key, s)
	return true
}

func (t *lockTable) lockWrite(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.state(key)
	for s.writer || s.readers > 0 {
		t.cond.Wait()
		s = t.state(key)
	}
	s.writer = true
}

func (t *lockTable) unlockWrite(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.held[key]
	if !ok || !s.writer {
		return false
	}
	s.writer = false
	t.release(key, s)
	return true
}

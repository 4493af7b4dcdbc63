package generation

import "sync"

// Token identifies one generation request for a key (usually a device id).
type Token struct {
	key string
	seq uint64
}

// Tracker lets the latest request for a key win. A result produced under a
// token that is no longer current must be discarded by the caller.
type Tracker struct {
	mu     sync.Mutex
	seq    uint64
	latest map[string]uint64
}

func NewTracker() *Tracker {
	return &Tracker{latest: make(map[string]uint64)}
}

// Begin supersedes every earlier token for key.
func (t *Tracker) Begin(key string) Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.latest[key] = t.seq
	return Token{key: key, seq: t.seq}
}

// Current reports whether tok is still the latest token for its key.
func (t *Tracker) Current(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tok.seq != 0 && t.latest[tok.key] == tok.seq
}

// Done releases tok. Newer tokens for the same key are unaffected.
func (t *Tracker) Done(tok Token) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest[tok.key] == tok.seq {
		delete(t.latest, tok.key)
	}
}

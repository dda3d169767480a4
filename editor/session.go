// ABOUTME: Session struct pairing an editing pipeline with access bookkeeping
// ABOUTME: Mutations run under the session lock so concurrent API calls stay consistent

package editor

import (
	"sync"
	"time"

	"github.com/flumeworks/flume/flow"
)

type Session struct {
	mu         sync.Mutex
	ID         string
	Pipeline   *flow.Pipeline
	CreatedAt  time.Time
	LastAccess time.Time
}

// Lock acquires the session lock for a pipeline mutation or read.
func (sess *Session) Lock() {
	sess.mu.Lock()
}

// Unlock releases the session lock.
func (sess *Session) Unlock() {
	sess.mu.Unlock()
}

// With runs fn while holding the session lock.
func (sess *Session) With(fn func(p *flow.Pipeline) error) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.Pipeline)
}

package processor

import "sync/atomic"

// Token is a cooperative cancellation flag for one drain. The drain checks it
// before starting each message; a send already in flight is never aborted.
type Token struct {
	cancelled atomic.Bool
}

func NewToken() *Token {
	return &Token{}
}

func (t *Token) Cancel() {
	t.cancelled.Store(true)
}

func (t *Token) Cancelled() bool {
	return t.cancelled.Load()
}

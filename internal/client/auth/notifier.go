package auth

import "sync"

// Reason explains why the session ended.
type Reason string

const (
	// ReasonRefreshFailed: no refresh token was available, or the refresh
	// call was rejected or timed out.
	ReasonRefreshFailed Reason = "refresh_failed"
	// ReasonUnauthorized: a request was still rejected after one
	// refresh-and-retry cycle.
	ReasonUnauthorized Reason = "unauthorized"
	// ReasonLoggedOut: the user logged out explicitly.
	ReasonLoggedOut Reason = "logged_out"
)

// Notifier is a fire-and-forget signal with any number of consumers. Emit
// provides no delivery guarantee and having no subscribers is not an error.
// Subscribers must not block; they run synchronously on the emitting
// goroutine.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Reason)
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Reason))}
}

// Subscribe registers fn and returns a function that removes the
// subscription. Unsubscribing twice is harmless.
func (n *Notifier) Subscribe(fn func(Reason)) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Emit delivers reason to every current subscriber.
func (n *Notifier) Emit(reason Reason) {
	n.mu.Lock()
	fns := make([]func(Reason), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(reason)
	}
}

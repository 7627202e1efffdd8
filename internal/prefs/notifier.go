package prefs

import "sync"

// Notifier fans preference changes out to subscribed sessions.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Preferences)
}

// NewNotifier constructs an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Preferences))}
}

// Subscribe registers a callback and returns an unsubscribe function. The
// unsubscribe function is safe to call more than once.
func (n *Notifier) Subscribe(fn func(Preferences)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Publish delivers the updated preferences to every subscriber.
func (n *Notifier) Publish(p Preferences) {
	n.mu.Lock()
	callbacks := make([]func(Preferences), 0, len(n.subs))
	for _, fn := range n.subs {
		callbacks = append(callbacks, fn)
	}
	n.mu.Unlock()
	for _, fn := range callbacks {
		fn(p)
	}
}

package database

import (
	"sync"
)

// insertNotifier fans item inserts out to registered callbacks. Callbacks
// run synchronously on the inserting goroutine and must not block.
type insertNotifier struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]func(Item)
}

func newInsertNotifier() *insertNotifier {
	return &insertNotifier{
		subscribers: make(map[int]func(Item)),
	}
}

func (n *insertNotifier) subscribe(fn func(Item)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subscribers[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subscribers, id)
		n.mu.Unlock()
	}
}

func (n *insertNotifier) notify(item Item) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, fn := range n.subscribers {
		fn(item)
	}
}

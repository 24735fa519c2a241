package client

import "sync"

// Kind is the style of a notification
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Notification is one transient message shown to the user
type Notification struct {
	ID      int
	Kind    Kind
	Message string
}

// Notifier collects notifications until they are dismissed. It is safe for
// concurrent use.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	items  []Notification
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Push adds a notification and returns its id
func (n *Notifier) Push(kind Kind, message string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	n.items = append(n.items, Notification{ID: n.nextID, Kind: kind, Message: message})
	return n.nextID
}

// List returns the pending notifications, oldest first
func (n *Notifier) List() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Last returns the most recent notification
func (n *Notifier) Last() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.items) == 0 {
		return Notification{}, false
	}
	return n.items[len(n.items)-1], true
}

// Dismiss removes the notification with id and reports whether it existed
func (n *Notifier) Dismiss(id int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, it := range n.items {
		if it.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true
		}
	}
	return false
}

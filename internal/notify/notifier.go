package notify

import (
	"strconv"
	"sync"
	"time"
)

const (
	KindSuccess = "success"
	KindError   = "error"
	KindInfo    = "info"
)

const (
	// DefaultCap bounds the visible notification list; older entries drop off
	// the tail.
	DefaultCap = 5
	// DefaultTTL is how long a notification stays visible before it expires
	// on its own.
	DefaultTTL = 5 * time.Second
)

type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier keeps a capped, most-recent-first list of transient notifications.
// Every push schedules its own expiry; removal is idempotent so an expiry
// firing after an explicit dismissal is harmless.
type Notifier struct {
	mu     sync.Mutex
	items  []Notification
	timers map[string]*time.Timer
	cap    int
	ttl    time.Duration
	seq    uint64
	now    func() time.Time
}

func New(capacity int, ttl time.Duration) *Notifier {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Notifier{
		items:  make([]Notification, 0, capacity),
		timers: make(map[string]*time.Timer),
		cap:    capacity,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Push prepends a notification and returns its id.
func (n *Notifier) Push(kind, message string) string {
	n.mu.Lock()

	now := n.now()
	n.seq++
	id := strconv.FormatInt(now.UnixMilli(), 10) + "-" + strconv.FormatUint(n.seq, 10)

	item := Notification{
		ID:        id,
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
	}
	n.items = append([]Notification{item}, n.items...)

	for len(n.items) > n.cap {
		dropped := n.items[len(n.items)-1]
		n.items = n.items[:len(n.items)-1]
		if t, ok := n.timers[dropped.ID]; ok {
			t.Stop()
			delete(n.timers, dropped.ID)
		}
	}

	if n.ttl > 0 {
		n.timers[id] = time.AfterFunc(n.ttl, func() {
			n.Remove(id)
		})
	}
	n.mu.Unlock()
	return id
}

func (n *Notifier) Success(message string) string { return n.Push(KindSuccess, message) }
func (n *Notifier) Error(message string) string   { return n.Push(KindError, message) }
func (n *Notifier) Info(message string) string    { return n.Push(KindInfo, message) }

// Remove deletes a notification by id. Removing an unknown or already expired
// id is a no-op.
func (n *Notifier) Remove(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if t, ok := n.timers[id]; ok {
		t.Stop()
		delete(n.timers, id)
	}
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

func (n *Notifier) MarkRead(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := range n.items {
		if n.items[i].ID == id {
			n.items[i].Read = true
			return true
		}
	}
	return false
}

// List returns a copy of the visible notifications, most recent first.
func (n *Notifier) List() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Close stops all pending expiry timers.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, t := range n.timers {
		t.Stop()
		delete(n.timers, id)
	}
}

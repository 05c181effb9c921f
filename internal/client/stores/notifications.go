package stores

import (
	"slices"
	"sync"
	"time"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
)

// Kind of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Notification is a transient message shown to the user.
type Notification struct {
	ID       string
	Kind     Kind
	Message  string
	Duration time.Duration
	Created  time.Time
}

// NotificationStore holds the active notifications and removes each one
// after its duration. A zero duration keeps it until dismissed.
type NotificationStore struct {
	mu     sync.Mutex
	active []Notification
	timers map[string]*clock.Timer

	clock    clock.Clock
	duration time.Duration
}

func NewNotificationStore(clk clock.Clock, defaultDuration time.Duration) *NotificationStore {
	if clk == nil {
		clk = clock.New()
	}
	return &NotificationStore{
		timers:   make(map[string]*clock.Timer),
		clock:    clk,
		duration: defaultDuration,
	}
}

// Notify adds a notification with the default duration and returns its id.
func (s *NotificationStore) Notify(kind Kind, message string) string {
	return s.NotifyFor(kind, message, s.duration)
}

// NotifyFor adds a notification that disappears after d.
func (s *NotificationStore) NotifyFor(kind Kind, message string, d time.Duration) string {
	n := Notification{
		ID:       uuid.NewString(),
		Kind:     kind,
		Message:  message,
		Duration: d,
		Created:  s.clock.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = append(s.active, n)
	if d > 0 {
		id := n.ID
		s.timers[id] = s.clock.AfterFunc(d, func() { s.Dismiss(id) })
	}
	return n.ID
}

func (s *NotificationStore) Success(message string) string { return s.Notify(KindSuccess, message) }
func (s *NotificationStore) Error(message string) string   { return s.Notify(KindError, message) }
func (s *NotificationStore) Info(message string) string    { return s.Notify(KindInfo, message) }
func (s *NotificationStore) Warning(message string) string { return s.Notify(KindWarning, message) }

// Dismiss removes the notification with id. Unknown ids are ignored.
func (s *NotificationStore) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	s.active = slices.DeleteFunc(s.active, func(n Notification) bool { return n.ID == id })
}

// Clear removes every notification.
func (s *NotificationStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.active = nil
}

// Active returns the notifications still on screen, oldest first.
func (s *NotificationStore) Active() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.active)
}

// Drain returns the active notifications and removes them.
func (s *NotificationStore) Drain() []Notification {
	s.mu.Lock()
	out := slices.Clone(s.active)
	s.mu.Unlock()

	for _, n := range out {
		s.Dismiss(n.ID)
	}
	return out
}

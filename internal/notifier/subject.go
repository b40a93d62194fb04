package notifier

import (
	"sync"

	"insurancelk_backend/internal/models"
)

// Observer receives admin notifications as they are published.
type Observer interface {
	// Name identifies the observer within a Subject.
	Name() string

	// Update delivers a published notification to the observer.
	Update(notification *models.AdminNotification) error
}

// Subject fans a published notification out to its attached observers
// in attachment order. Safe for concurrent use.
type Subject struct {
	mu        sync.Mutex
	observers []Observer
}

// NewSubject creates an empty Subject.
func NewSubject() *Subject {
	return &Subject{}
}

// Attach registers an observer. Attaching an observer whose name is
// already registered is a no-op.
func (s *Subject) Attach(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.observers {
		if existing.Name() == o.Name() {
			return
		}
	}
	s.observers = append(s.observers, o)
}

// Detach removes the observer with the given name, if present.
func (s *Subject) Detach(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.observers {
		if existing.Name() == name {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Observers returns the names of attached observers in attachment order.
func (s *Subject) Observers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.observers))
	for i, o := range s.observers {
		names[i] = o.Name()
	}
	return names
}

// Publish delivers the notification to every attached observer in
// attachment order. The first observer error aborts delivery to the
// remaining observers and is returned to the caller.
func (s *Subject) Publish(notification *models.AdminNotification) error {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		if err := o.Update(notification); err != nil {
			return err
		}
	}
	return nil
}

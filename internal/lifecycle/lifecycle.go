// Package lifecycle governs the post-submission status of a grievance:
// pending, in-progress, resolved.
package lifecycle

import (
	"errors"

	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"
)

var (
	// ErrInvalidStatus rejects values outside the three lifecycle states
	// before the store is touched.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrTransitionDenied rejects a disallowed edge in the transition table.
	ErrTransitionDenied = errors.New("status transition not allowed")
	// ErrNotAuthorized rejects transitions by non-administrators.
	ErrNotAuthorized = errors.New("status transitions require an administrator")
)

// Notifier receives a best-effort signal after a transition is durable.
type Notifier interface {
	StatusChanged(g *models.Grievance, previous models.Status)
}

// Service applies status transitions.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier
}

// NewService creates a new lifecycle service. notifier may be nil.
func NewService(s storage.Storage, notifier Notifier) *Service {
	return &Service{Storage: s, Notifier: notifier}
}

// transitions is the allowed-edge table. Every pair of valid states is
// currently permitted, including backward edges; tightening the lifecycle
// is a matter of removing entries here.
var transitions = map[models.Status]map[models.Status]bool{
	models.StatusPending:    {models.StatusInProgress: true, models.StatusResolved: true},
	models.StatusInProgress: {models.StatusPending: true, models.StatusResolved: true},
	models.StatusResolved:   {models.StatusPending: true, models.StatusInProgress: true},
}

// CanTransition reports whether the edge from→to is allowed.
func CanTransition(from, to models.Status) bool {
	if from == to {
		return true
	}
	return transitions[from][to]
}

// Transition sets a grievance's status on behalf of actor. The new status
// is committed to the store before any caller-visible state changes; a
// failed write leaves the previous status in place. Unknown ids surface
// storage.ErrNotFound so the caller can refresh its listing instead of
// retrying blindly.
func (s *Service) Transition(id string, to models.Status, actor *models.User) (*models.Grievance, error) {
	if actor == nil || !actor.IsAdmin {
		return nil, ErrNotAuthorized
	}
	if !to.IsValid() {
		return nil, ErrInvalidStatus
	}

	g, err := s.Storage.GetGrievanceByID(id)
	if err != nil {
		return nil, err
	}
	previous := g.Status
	if !CanTransition(previous, to) {
		return nil, ErrTransitionDenied
	}
	if previous == to {
		return g, nil
	}

	if err := s.Storage.UpdateGrievanceStatus(id, to); err != nil {
		return nil, err
	}
	g.Status = to

	if s.Notifier != nil {
		s.Notifier.StatusChanged(g, previous)
	}
	return g, nil
}

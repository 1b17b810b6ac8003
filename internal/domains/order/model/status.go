package model

import "fmt"

// =====================================================
// ORDER STATUS
// =====================================================
type Status string

const (
	OrderStatusNew        Status = "new"
	OrderStatusProcessing Status = "processing"
	OrderStatusCompleted  Status = "completed"
	OrderStatusCancelled  Status = "cancelled"
)

// allowedTransitions lists every legal admin move. Completed and cancelled are terminal.
var allowedTransitions = map[Status][]Status{
	OrderStatusNew:        {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
}

func (s Status) IsValid() bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ParseStatus rejects anything outside the four known statuses.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", NewInvalidStatusError(raw)
	}
	return s, nil
}

// CanTransition reports whether from → to is a legal admin transition.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a validation error for an illegal move.
func ValidateTransition(from, to Status) error {
	if CanTransition(from, to) {
		return nil
	}
	return NewInvalidTransitionError(from, to)
}

// NextStatuses is what an admin may pick next; empty for terminal statuses.
func NextStatuses(from Status) []Status {
	next := allowedTransitions[from]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Label() string {
	switch s {
	case OrderStatusNew:
		return "New"
	case OrderStatusProcessing:
		return "Processing"
	case OrderStatusCompleted:
		return "Completed"
	case OrderStatusCancelled:
		return "Cancelled"
	}
	return fmt.Sprintf("Unknown (%s)", string(s))
}

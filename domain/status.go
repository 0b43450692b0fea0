package domain

type ReservationStatus string

const (
	StatusDraft          ReservationStatus = "DRAFT"
	StatusPendingPayment ReservationStatus = "PENDING_PAYMENT"
	StatusConfirmed      ReservationStatus = "CONFIRMED"
	StatusCancelled      ReservationStatus = "CANCELLED"
	StatusExpired        ReservationStatus = "EXPIRED"
	StatusRefunded       ReservationStatus = "REFUNDED"
)

// validTransitions is the complete set of legal status edges. EXPIRED and
// REFUNDED are terminal.
var validTransitions = map[ReservationStatus][]ReservationStatus{
	StatusDraft:          {StatusPendingPayment, StatusCancelled},
	StatusPendingPayment: {StatusConfirmed, StatusExpired, StatusCancelled},
	StatusConfirmed:      {StatusCancelled},
	StatusCancelled:      {StatusRefunded},
	StatusExpired:        {},
	StatusRefunded:       {},
}

// AllStatuses supports exhaustive transition-table checks.
func AllStatuses() []ReservationStatus {
	return []ReservationStatus{
		StatusDraft,
		StatusPendingPayment,
		StatusConfirmed,
		StatusCancelled,
		StatusExpired,
		StatusRefunded,
	}
}

func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

func (s ReservationStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// ValidateTransition is the pure state-machine check: it holds no state and
// performs no side effects.
func ValidateTransition(from, to ReservationStatus) error {
	if !from.CanTransitionTo(to) {
		return &InvalidTransitionError{From: from, To: to}
	}

	return nil
}

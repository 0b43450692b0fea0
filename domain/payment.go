package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentInitiated PaymentStatus = "INITIATED"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Payment is referenced, not owned, by the reservation core: the gateway is
// an opaque collaborator and confirmation/failure arrive as input events.
// ProviderRef correlates with the external gateway (intent or refund id).
type Payment struct {
	ID            uuid.UUID     `json:"id"`
	ReservationID uuid.UUID     `json:"reservation_id"`
	Amount        Money         `json:"amount"`
	Status        PaymentStatus `json:"status"`
	ProviderRef   string        `json:"provider_ref,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

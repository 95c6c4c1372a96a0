package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// InvoicePayload identifies a subscription purchase inside a payment
// provider invoice. It travels as "user_id:plan:period:nonce".
type InvoicePayload struct {
	UserID uuid.UUID
	Plan   Plan
	Period BillingPeriod
	Nonce  string
}

func (p InvoicePayload) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", p.UserID, p.Plan, p.Period, p.Nonce)
}

// ParseInvoicePayload parses the payload of a successful payment. Only paid
// plans and known billing periods are accepted.
func ParseInvoicePayload(s string) (InvoicePayload, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return InvoicePayload{}, NewValidationError("payload", "malformed")
	}

	id, err := uuid.Parse(parts[0])
	if err != nil {
		return InvoicePayload{}, NewValidationError("payload", "invalid user id")
	}

	p := InvoicePayload{UserID: id, Plan: Plan(parts[1]), Period: BillingPeriod(parts[2])}
	if len(parts) > 3 {
		p.Nonce = parts[3]
	}

	if !p.Plan.IsPaid() {
		return InvoicePayload{}, NewValidationError("payload", "unknown plan")
	}
	if !p.Period.IsValid() {
		return InvoicePayload{}, NewValidationError("payload", "unknown billing period")
	}
	return p, nil
}

package domain

import "time"

// Payment records a settled fee against an application. Payments are
// immutable once created; the demo flow finalizes them as completed in the
// same step that creates them.
type Payment struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	PaidBy        string    `json:"paid_by"`
	Timestamp     time.Time `json:"timestamp"`
}

// PaymentStatusCompleted is the only status the demo gateway ever writes.
const PaymentStatusCompleted = "completed"

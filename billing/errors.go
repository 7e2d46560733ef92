package billing

import "fmt"

// ValidationError rejects malformed input before any mutation happens.
// The caller can resubmit corrected input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NotFoundError means a referenced entity does not exist. No partial
// mutation occurs.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// OverpaymentError means a payment exceeds the invoice's pending balance.
type OverpaymentError struct {
	Amount  float64
	Pending float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %.2f exceeds pending amount %.2f", e.Amount, e.Pending)
}

// InvalidStateError is a business-rule violation on the entity's current
// state, e.g. deleting an invoice that already has payments.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return e.Reason
}

// SchedulerRecordError wraps a single record's failure during an alert
// sweep. It is logged and swallowed; it never fails the sweep.
type SchedulerRecordError struct {
	Entity string
	ID     uint
	Err    error
}

func (e *SchedulerRecordError) Error() string {
	return fmt.Sprintf("alert sweep: %s %d: %v", e.Entity, e.ID, e.Err)
}

func (e *SchedulerRecordError) Unwrap() error { return e.Err }

package domain

import (
	"math"
	"time"
)

// AssignmentStatus enumerates assignment lifecycle states.
type AssignmentStatus string

const (
	AssignmentStatusPending  AssignmentStatus = "PENDING"
	AssignmentStatusApproved AssignmentStatus = "APPROVED"
	AssignmentStatusRejected AssignmentStatus = "REJECTED"
)

// PaymentType enumerates how an assignment is compensated.
type PaymentType string

const (
	PaymentTypeHourly PaymentType = "hourly"
	PaymentTypeFixed  PaymentType = "fixed"
	PaymentTypeDaily  PaymentType = "daily"
)

// PaymentTerms captures the agreed compensation for one assignment.
type PaymentTerms struct {
	Type       PaymentType
	Rate       float64
	Hours      float64
	Bonus      float64
	Deductions float64
	Allowances float64
}

// TotalPayment computes the agreed total for the terms. Pure and
// deterministic: the same terms always produce the same amount.
func (t PaymentTerms) TotalPayment() float64 {
	var base float64
	switch t.Type {
	case PaymentTypeHourly:
		base = t.Rate * t.Hours
	case PaymentTypeDaily:
		base = t.Rate * (t.Hours / StandardWorkdayHours)
	default:
		base = t.Rate
	}
	return RoundMoney(base + t.Bonus + t.Allowances - t.Deductions)
}

// Assignment links a staff member to a role slot on an event. The event
// references the staff profile, it does not own its lifecycle.
type Assignment struct {
	ID           string
	EventID      string
	StaffID      string
	Role         string
	Status       AssignmentStatus
	Terms        PaymentTerms
	TotalPayment float64
	AssignedAt   time.Time
}

// StandardWorkdayHours is the hours-per-day basis for daily pay terms and
// the overtime threshold for a single shift.
const StandardWorkdayHours = 8.0

// RoundMoney rounds to cents so repeated derivations agree exactly.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

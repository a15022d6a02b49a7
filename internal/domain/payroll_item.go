package domain

import "time"

// PayrollStatus enumerates payment processing states.
type PayrollStatus string

const (
	PayrollStatusUnpaid     PayrollStatus = "UNPAID"
	PayrollStatusProcessing PayrollStatus = "PROCESSING"
	PayrollStatusPaid       PayrollStatus = "PAID"
)

// PayrollItem is a payable line derived from a worked shift. TotalAmount is
// a pure function of the recorded inputs; recomputing from the same inputs
// always yields the same value.
type PayrollItem struct {
	ID            string
	StaffID       string
	EventID       string
	ShiftID       *string
	HoursWorked   float64
	HourlyRate    float64
	OvertimeHours float64
	OvertimeRate  float64
	Bonus         float64
	Deductions    float64
	Allowances    float64
	TotalAmount   float64
	Status        PayrollStatus
	NeedsReview   bool
	DerivedAt     time.Time
}

// ComputeTotal applies the payroll formula:
// hours*rate + overtime*overtimeRate + bonus - deductions + allowances.
// A negative raw total is clamped to zero and flagged for manual review,
// never persisted as a negative payable.
func (p *PayrollItem) ComputeTotal() {
	raw := p.HoursWorked*p.HourlyRate +
		p.OvertimeHours*p.OvertimeRate +
		p.Bonus - p.Deductions + p.Allowances
	if raw < 0 {
		p.TotalAmount = 0
		p.NeedsReview = true
		return
	}
	p.TotalAmount = RoundMoney(raw)
}

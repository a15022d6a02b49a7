package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotal(t *testing.T) {
	item := PayrollItem{
		HoursWorked:   10,
		HourlyRate:    20,
		OvertimeHours: 2,
		OvertimeRate:  30,
		Bonus:         25,
		Deductions:    10,
		Allowances:    5,
	}
	item.ComputeTotal()

	assert.InDelta(t, 280.0, item.TotalAmount, 1e-9)
	assert.False(t, item.NeedsReview)
}

func TestComputeTotalClampsNegative(t *testing.T) {
	item := PayrollItem{
		HoursWorked: 2,
		HourlyRate:  10,
		Deductions:  100,
	}
	item.ComputeTotal()

	assert.Equal(t, 0.0, item.TotalAmount, "negative totals are never persisted")
	assert.True(t, item.NeedsReview, "clamped items are flagged for manual review")
}

func TestComputeTotalDeterministic(t *testing.T) {
	item := PayrollItem{HoursWorked: 7.25, HourlyRate: 17.33, OvertimeHours: 0.5, OvertimeRate: 25.99, Bonus: 4.2}
	item.ComputeTotal()
	first := item.TotalAmount

	for i := 0; i < 10; i++ {
		item.ComputeTotal()
		assert.Equal(t, first, item.TotalAmount)
	}
}

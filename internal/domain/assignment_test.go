package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentTermsTotalPayment(t *testing.T) {
	cases := []struct {
		name  string
		terms PaymentTerms
		want  float64
	}{
		{"hourly", PaymentTerms{Type: PaymentTypeHourly, Rate: 20, Hours: 6}, 120},
		{"hourly with extras", PaymentTerms{Type: PaymentTypeHourly, Rate: 20, Hours: 6, Bonus: 15, Deductions: 5, Allowances: 10}, 140},
		{"fixed ignores hours", PaymentTerms{Type: PaymentTypeFixed, Rate: 300, Hours: 6}, 300},
		{"daily prorated", PaymentTerms{Type: PaymentTypeDaily, Rate: 160, Hours: 4}, 80},
		{"rounds to cents", PaymentTerms{Type: PaymentTypeHourly, Rate: 19.99, Hours: 3}, 59.97},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.terms.TotalPayment(), 1e-9)
		})
	}
}

func TestTotalPaymentDeterministic(t *testing.T) {
	terms := PaymentTerms{Type: PaymentTypeHourly, Rate: 17.33, Hours: 7.25, Bonus: 3.1}
	first := terms.TotalPayment()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, terms.TotalPayment())
	}
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.56, RoundMoney(10.556))
	assert.Equal(t, 10.55, RoundMoney(10.554))
	assert.Equal(t, 0.0, RoundMoney(0))
	assert.Equal(t, -2.5, RoundMoney(-2.499999999))
}

package payment_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dverho/innkeep/internal/adapter/payment"
)

func TestCharge_RejectsNonPositiveAmount(t *testing.T) {
	sim := payment.NewSimulator(0, 0)

	for _, amount := range []string{"0", "-10.00"} {
		res := sim.Charge(context.Background(), decimal.RequireFromString(amount), "")
		assert.False(t, res.Accepted, "amount %s", amount)
	}
}

func TestCharge_EmptyCardIsDummyAccept(t *testing.T) {
	// Failure rate 1 would decline any real card; the dummy path must
	// still accept.
	sim := payment.NewSimulator(1, 1)

	res := sim.Charge(context.Background(), decimal.RequireFromString("225.00"), "")
	assert.True(t, res.Accepted)
}

func TestCharge_ShortCardRejected(t *testing.T) {
	sim := payment.NewSimulator(0, 0)

	res := sim.Charge(context.Background(), decimal.RequireFromString("225.00"), "4111-22")
	assert.False(t, res.Accepted)
	assert.Equal(t, "card number too short", res.Reason)
}

func TestCharge_IgnoresSeparatorsInCardNumber(t *testing.T) {
	sim := payment.NewSimulator(0, 0)

	res := sim.Charge(context.Background(), decimal.RequireFromString("225.00"), "4111 1111 1111 1111")
	assert.True(t, res.Accepted)
}

func TestCharge_FailureRateOneAlwaysDeclines(t *testing.T) {
	sim := payment.NewSimulator(1, 0)

	res := sim.Charge(context.Background(), decimal.RequireFromString("225.00"), "41111111")
	assert.False(t, res.Accepted)
}

func TestRefund(t *testing.T) {
	sim := payment.NewSimulator(0, 0)

	assert.False(t, sim.Refund(context.Background(), decimal.Zero).Accepted)
	assert.True(t, sim.Refund(context.Background(), decimal.RequireFromString("225.00")).Accepted)

	always := payment.NewSimulator(0, 1)
	assert.False(t, always.Refund(context.Background(), decimal.RequireFromString("225.00")).Accepted)
}

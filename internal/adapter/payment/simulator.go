package payment

import (
	"context"
	"math/rand"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dverho/innkeep/internal/core/ports"
)

// Simulator is a stand-in payment provider. An empty card number is
// the always-accepted dummy path; otherwise charges and refunds fail
// at the configured probabilities. Rates of 0 make it deterministic.
type Simulator struct {
	chargeFailRate float64
	refundFailRate float64
}

func NewSimulator(chargeFailRate, refundFailRate float64) *Simulator {
	return &Simulator{
		chargeFailRate: chargeFailRate,
		refundFailRate: refundFailRate,
	}
}

func (s *Simulator) Charge(ctx context.Context, amount decimal.Decimal, cardNumber string) ports.PaymentResult {
	if !amount.IsPositive() {
		return ports.PaymentResult{Accepted: false, Reason: "invalid amount"}
	}

	if cardNumber == "" {
		return ports.PaymentResult{Accepted: true, Reason: "dummy payment accepted"}
	}

	if len(digitsOf(cardNumber)) < 8 {
		return ports.PaymentResult{Accepted: false, Reason: "card number too short"}
	}

	if rand.Float64() < s.chargeFailRate {
		return ports.PaymentResult{Accepted: false, Reason: "network/decline (simulated)"}
	}

	return ports.PaymentResult{Accepted: true, Reason: "payment accepted"}
}

func (s *Simulator) Refund(ctx context.Context, amount decimal.Decimal) ports.PaymentResult {
	if !amount.IsPositive() {
		return ports.PaymentResult{Accepted: false, Reason: "invalid refund amount"}
	}

	if rand.Float64() < s.refundFailRate {
		return ports.PaymentResult{Accepted: false, Reason: "refund failed (simulated)"}
	}

	return ports.PaymentResult{Accepted: true, Reason: "refund completed (simulated)"}
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

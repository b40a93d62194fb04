package services

import (
	"fmt"
	"math/rand"
	"time"
)

// PaymentAuthorizer settles online card payments with the processor.
type PaymentAuthorizer interface {
	// Authorize charges the given amount and returns the processor
	// transaction id plus whether the charge went through.
	Authorize(amount float64) (transactionID string, approved bool)
}

// SimulatedAuthorizer stands in for a real payment gateway. It mints a
// transaction id from the wall clock and approves roughly nine out of
// ten charges.
type SimulatedAuthorizer struct {
	now  func() time.Time
	rand *rand.Rand
}

func NewSimulatedAuthorizer() *SimulatedAuthorizer {
	return &SimulatedAuthorizer{
		now:  time.Now,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (a *SimulatedAuthorizer) Authorize(amount float64) (string, bool) {
	transactionID := fmt.Sprintf("TXN%d", a.now().UnixMilli())
	return transactionID, a.rand.Float64() > 0.1
}

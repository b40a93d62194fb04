package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimulatedAuthorizer_TransactionIDFromClock(t *testing.T) {
	a := NewSimulatedAuthorizer()
	at := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return at }

	transactionID, _ := a.Authorize(4500)
	assert.True(t, strings.HasPrefix(transactionID, "TXN"))
	assert.Contains(t, transactionID, "1773133200000")
}

func TestSimulatedAuthorizer_MostlyApproves(t *testing.T) {
	a := NewSimulatedAuthorizer()

	approved := 0
	const runs = 2000
	for i := 0; i < runs; i++ {
		if _, ok := a.Authorize(100); ok {
			approved++
		}
	}

	// approval rate is 0.9; allow generous slack to keep this stable
	assert.Greater(t, approved, runs*8/10)
	assert.Less(t, approved, runs)
}

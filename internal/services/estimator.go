package services

import (
	"math/rand"
	"time"

	"insurancelk_backend/internal/models"
)

// AudienceEstimator sizes the audience a sent notification reached.
type AudienceEstimator interface {
	Estimate(audience models.TargetAudience) int
}

// RangeEstimator draws the reach from a per-audience range, standing in
// for a real delivery-report pipeline.
type RangeEstimator struct {
	rand *rand.Rand
}

func NewRangeEstimator() *RangeEstimator {
	return &RangeEstimator{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (e *RangeEstimator) Estimate(audience models.TargetAudience) int {
	var lo, hi int
	switch audience {
	case models.TargetAll:
		lo, hi = 1000, 1500
	case models.TargetActive:
		lo, hi = 700, 1000
	case models.TargetInactive:
		lo, hi = 200, 300
	case models.TargetPremium:
		lo, hi = 150, 250
	case models.TargetNew:
		lo, hi = 50, 100
	default:
		lo, hi = 0, 1
	}
	return lo + e.rand.Intn(hi-lo)
}

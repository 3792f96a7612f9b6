// Package businessflow contains the core business logic and use cases for planning workflows
package businessflow

import (
	"time"

	"github.com/bpnlt/tv-planner/utils"
)

// PriceInputs carries everything the gross-price formula consumes. All index
// factors default to 1.0 so the formula degrades to trps * cpp * duration
// when none apply.
type PriceInputs struct {
	TRPs         float64
	GrossCPP     float64
	ClipDuration int

	DurationIndex        float64
	SeasonalIndex        float64
	TRPPurchaseIndex     float64
	AdvancePurchaseIndex float64
	PositionIndex        float64
	WebIndex             float64
	AdvancePaymentIndex  float64
	LoyaltyDiscountIndex float64
}

// NewPriceInputs returns inputs with every index at its neutral value.
func NewPriceInputs(trps, grossCPP float64, clipDuration int) PriceInputs {
	return PriceInputs{
		TRPs:                 trps,
		GrossCPP:             grossCPP,
		ClipDuration:         clipDuration,
		DurationIndex:        1.0,
		SeasonalIndex:        1.0,
		TRPPurchaseIndex:     1.0,
		AdvancePurchaseIndex: 1.0,
		PositionIndex:        1.0,
		WebIndex:             1.0,
		AdvancePaymentIndex:  1.0,
		LoyaltyDiscountIndex: 1.0,
	}
}

// GrossPrice applies the canonical multiplicative pricing formula. The clip
// duration is applied exactly once here; GrossCPP is the raw price per
// second from the rate card and never has the duration pre-multiplied in.
func GrossPrice(in PriceInputs) float64 {
	return in.TRPs * in.GrossCPP * float64(in.ClipDuration) *
		in.DurationIndex * in.SeasonalIndex *
		in.TRPPurchaseIndex * in.AdvancePurchaseIndex * in.PositionIndex *
		in.WebIndex * in.AdvancePaymentIndex * in.LoyaltyDiscountIndex
}

// PlannedGRP converts purchased TRPs to planned GRPs through the primary
// affinity. GRP is undefined without a valid affinity, so a zero or negative
// affinity yields 0 rather than an error.
func PlannedGRP(trps, affinity1 float64) float64 {
	if affinity1 <= 0 {
		return 0
	}
	return trps * 100 / affinity1
}

// ApplyDiscount reduces a price by a percentage (0..100).
func ApplyDiscount(price, percent float64) float64 {
	return price * (1 - percent/100)
}

// NetPrices applies the client then the agency discount sequentially.
func NetPrices(grossPrice, clientDiscount, agencyDiscount float64) (netPrice, netNetPrice float64) {
	netPrice = ApplyDiscount(grossPrice, clientDiscount)
	netNetPrice = ApplyDiscount(netPrice, agencyDiscount)
	return netPrice, netNetPrice
}

// WeightedSeasonalIndex averages monthly indices over [start, end], weighting
// each month by the number of range days falling inside it:
//
//	first month  -> days_in_month - start.day + 1
//	last month   -> end.day
//	full months  -> days_in_that_month
//
// Months missing from byMonth count as 1.0. A range that never leaves one
// calendar month reduces to that month's index.
func WeightedSeasonalIndex(byMonth map[int]float64, start, end time.Time) float64 {
	monthIndex := func(m time.Month) float64 {
		if v, ok := byMonth[int(m)]; ok {
			return v
		}
		return 1.0
	}

	if end.Before(start) {
		start, end = end, start
	}
	if utils.SameMonth(start, end) {
		return monthIndex(start.Month())
	}

	var weightedSum, totalWeight float64

	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(last) {
		days := utils.DaysInMonth(cursor.Year(), cursor.Month())
		weight := float64(days)
		switch {
		case cursor.Equal(last):
			weight = float64(end.Day())
		case cursor.Year() == start.Year() && cursor.Month() == start.Month():
			weight = float64(days - start.Day() + 1)
		}
		weightedSum += monthIndex(cursor.Month()) * weight
		totalWeight += weight
		cursor = cursor.AddDate(0, 1, 0)
	}

	if totalWeight == 0 {
		return 1.0
	}
	return weightedSum / totalWeight
}

// MaxDiscountPercent returns the maximum percentage among the given values,
// or 0 when none apply. Discounts of a kind merge by maximum, never by sum.
func MaxDiscountPercent(percents ...float64) float64 {
	max := 0.0
	for _, p := range percents {
		if p > max {
			max = p
		}
	}
	return max
}

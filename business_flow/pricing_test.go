package businessflow_test

import (
	"testing"
	"time"

	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/stretchr/testify/assert"
)

const priceEpsilon = 1e-9

func TestGrossPrice(t *testing.T) {
	t.Run("NeutralIndices", func(t *testing.T) {
		in := businessflow.NewPriceInputs(50, 2.0, 10)
		assert.InDelta(t, 1000.0, businessflow.GrossPrice(in), priceEpsilon)
	})

	t.Run("DurationAndSeasonalIndices", func(t *testing.T) {
		in := businessflow.NewPriceInputs(50, 2.0, 10)
		in.DurationIndex = 1.25
		in.SeasonalIndex = 0.9
		assert.InDelta(t, 1125.0, businessflow.GrossPrice(in), priceEpsilon)
	})

	t.Run("AllEightIndicesMultiply", func(t *testing.T) {
		in := businessflow.NewPriceInputs(10, 1.0, 1)
		in.DurationIndex = 2
		in.SeasonalIndex = 2
		in.TRPPurchaseIndex = 2
		in.AdvancePurchaseIndex = 2
		in.PositionIndex = 2
		in.WebIndex = 2
		in.AdvancePaymentIndex = 2
		in.LoyaltyDiscountIndex = 2
		assert.InDelta(t, 10*256.0, businessflow.GrossPrice(in), priceEpsilon)
	})

	t.Run("ZeroTRPs", func(t *testing.T) {
		in := businessflow.NewPriceInputs(0, 2.0, 30)
		assert.Zero(t, businessflow.GrossPrice(in))
	})
}

func TestPlannedGRP(t *testing.T) {
	assert.InDelta(t, 62.5, businessflow.PlannedGRP(50, 80), priceEpsilon)
	assert.InDelta(t, 50.0, businessflow.PlannedGRP(50, 100), priceEpsilon)

	// GRP is undefined without a usable affinity
	assert.Zero(t, businessflow.PlannedGRP(50, 0))
	assert.Zero(t, businessflow.PlannedGRP(50, -5))
}

func TestNetPrices(t *testing.T) {
	t.Run("SequentialApplication", func(t *testing.T) {
		net, netNet := businessflow.NetPrices(100, 20, 10)
		assert.InDelta(t, 80.0, net, priceEpsilon)
		assert.InDelta(t, 72.0, netNet, priceEpsilon)
	})

	t.Run("NoDiscounts", func(t *testing.T) {
		net, netNet := businessflow.NetPrices(100, 0, 0)
		assert.InDelta(t, 100.0, net, priceEpsilon)
		assert.InDelta(t, 100.0, netNet, priceEpsilon)
	})

	t.Run("FullDiscount", func(t *testing.T) {
		net, netNet := businessflow.NetPrices(100, 100, 50)
		assert.Zero(t, net)
		assert.Zero(t, netNet)
	})
}

func TestApplyDiscount(t *testing.T) {
	assert.InDelta(t, 90.0, businessflow.ApplyDiscount(100, 10), priceEpsilon)
	assert.InDelta(t, 100.0, businessflow.ApplyDiscount(100, 0), priceEpsilon)
}

func TestMaxDiscountPercent(t *testing.T) {
	assert.Zero(t, businessflow.MaxDiscountPercent())
	assert.Equal(t, 20.0, businessflow.MaxDiscountPercent(10, 20, 15))
	// Discounts merge by maximum, never by sum
	assert.Equal(t, 20.0, businessflow.MaxDiscountPercent(20, 20))
}

func TestWeightedSeasonalIndex(t *testing.T) {
	byMonth := map[int]float64{5: 1.5, 6: 1.55}

	t.Run("SingleMonthRange", func(t *testing.T) {
		start := time.Date(2026, time.May, 3, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, time.May, 28, 0, 0, 0, 0, time.UTC)
		assert.InDelta(t, 1.5, businessflow.WeightedSeasonalIndex(byMonth, start, end), priceEpsilon)
	})

	t.Run("CrossMonthWeighting", func(t *testing.T) {
		// 12 days of May (20..31) and 10 days of June (1..10)
		start := time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
		want := (1.5*12 + 1.55*10) / 22
		assert.InDelta(t, want, businessflow.WeightedSeasonalIndex(byMonth, start, end), priceEpsilon)
	})

	t.Run("MissingMonthsDefaultToOne", func(t *testing.T) {
		start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)
		assert.InDelta(t, 1.0, businessflow.WeightedSeasonalIndex(byMonth, start, end), priceEpsilon)
	})

	t.Run("FullMiddleMonthUsesItsLength", func(t *testing.T) {
		// April (30 days, index 1.0) sits between March and May
		local := map[int]float64{3: 2.0, 5: 1.5}
		start := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
		want := (2.0*1 + 1.0*30 + 1.5*1) / 32
		assert.InDelta(t, want, businessflow.WeightedSeasonalIndex(local, start, end), priceEpsilon)
	})

	t.Run("InvertedRangeIsNormalized", func(t *testing.T) {
		start := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC)
		want := (1.5*12 + 1.55*10) / 22
		assert.InDelta(t, want, businessflow.WeightedSeasonalIndex(byMonth, start, end), priceEpsilon)
	})
}

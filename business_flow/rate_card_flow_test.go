package businessflow_test

import (
	"context"
	"testing"

	"github.com/bpnlt/tv-planner/app/dto"
	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/bpnlt/tv-planner/repository"
	testingutil "github.com/bpnlt/tv-planner/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateCardFlow(t *testing.T) (businessflow.RateCardFlow, *testingutil.TestFixtures, func()) {
	t.Helper()
	testDB, err := testingutil.SetupTestDB()
	require.NoError(t, err)

	rateRepo := repository.NewRateCardRepository(testDB.DB)
	groupRepo := repository.NewChannelGroupRepository(testDB.DB)
	listRepo := repository.NewPricingListRepository(testDB.DB)
	flow := businessflow.NewRateCardFlow(rateRepo, groupRepo, listRepo, testDB.DB)

	return flow, testingutil.NewTestFixtures(testDB), func() { testDB.TeardownTestDB() }
}

func TestResolveRate(t *testing.T) {
	flow, fixtures, teardown := newRateCardFlow(t)
	defer teardown()
	ctx := context.Background()

	group, err := fixtures.CreateChannelGroup("AMB Baltics")
	require.NoError(t, err)
	list, err := fixtures.CreatePricingList("2026 H1")
	require.NoError(t, err)
	_, err = fixtures.CreateRate(&list.ID, group.ID, "A 25-55", 2.0)
	require.NoError(t, err)
	_, err = fixtures.CreateRate(nil, group.ID, "A 25-55", 1.8)
	require.NoError(t, err)

	t.Run("ListScopedHit", func(t *testing.T) {
		entry, err := flow.ResolveRate(ctx, &list.ID, group.ID, "A 25-55")
		require.NoError(t, err)
		assert.Equal(t, 2.0, entry.PricePerSec)
		assert.False(t, entry.IsLegacy())
	})

	t.Run("ListScopedMissIsStrict", func(t *testing.T) {
		_, err := flow.ResolveRate(ctx, &list.ID, group.ID, "M 18-35")
		require.Error(t, err)
		assert.True(t, businessflow.IsRateNotFound(err))
	})

	t.Run("LegacyHit", func(t *testing.T) {
		entry, err := flow.ResolveRate(ctx, nil, group.ID, "A 25-55")
		require.NoError(t, err)
		assert.Equal(t, 1.8, entry.PricePerSec)
		assert.True(t, entry.IsLegacy())
	})

	t.Run("LegacyMissFallsBackToNeutralEntry", func(t *testing.T) {
		entry, err := flow.ResolveRate(ctx, nil, group.ID, "M 18-35")
		require.NoError(t, err)
		assert.Equal(t, 1.0, entry.PricePerSec)
		assert.Equal(t, "N/A", entry.PrimaryLabel)
		assert.Zero(t, entry.ID)
	})

	t.Run("BlankTargetGroupRejected", func(t *testing.T) {
		_, err := flow.ResolveRate(ctx, nil, group.ID, "   ")
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})
}

func TestUpsertLegacyRate(t *testing.T) {
	flow, fixtures, teardown := newRateCardFlow(t)
	defer teardown()
	ctx := context.Background()

	group, err := fixtures.CreateChannelGroup("AMB Baltics")
	require.NoError(t, err)

	t.Run("SpreadsheetStyleNumbersAreNormalized", func(t *testing.T) {
		resp, err := flow.UpsertLegacyRate(ctx, &dto.UpsertLegacyRateRequest{
			ChannelGroupID: group.ID,
			TargetGroup:    "A 25-55",
			PrimaryLabel:   "A 25-55",
			SalesShare:     "35 %",
			ChannelShare:   "0,4",
			PricePerSec:    "18,4 €",
		})
		require.NoError(t, err)
		assert.Equal(t, 18.4, resp.PricePerSec)
		assert.Equal(t, 35.0, resp.SalesShare)
		assert.Equal(t, 0.4, resp.ChannelShare)
		assert.Equal(t, "AMB Baltics", resp.Owner)
		assert.True(t, resp.Legacy)
	})

	t.Run("SecondUpsertReplacesTheRow", func(t *testing.T) {
		_, err := flow.UpsertLegacyRate(ctx, &dto.UpsertLegacyRateRequest{
			ChannelGroupID: group.ID,
			TargetGroup:    "A 25-55",
			PricePerSec:    "20",
		})
		require.NoError(t, err)

		rows, err := flow.ListLegacyRates(ctx, &group.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 20.0, rows[0].PricePerSec)
	})

	t.Run("NonPositivePriceRejected", func(t *testing.T) {
		_, err := flow.UpsertLegacyRate(ctx, &dto.UpsertLegacyRateRequest{
			ChannelGroupID: group.ID,
			TargetGroup:    "A 25-55",
			PricePerSec:    "0",
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("UnknownGroupRejected", func(t *testing.T) {
		_, err := flow.UpsertLegacyRate(ctx, &dto.UpsertLegacyRateRequest{
			ChannelGroupID: 9999,
			TargetGroup:    "A 25-55",
			PricePerSec:    "2",
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsNotFound(err))
	})
}

func TestUpsertListRate(t *testing.T) {
	flow, fixtures, teardown := newRateCardFlow(t)
	defer teardown()
	ctx := context.Background()

	group, err := fixtures.CreateChannelGroup("MG grupė")
	require.NoError(t, err)
	list, err := fixtures.CreatePricingList("2026 H1")
	require.NoError(t, err)

	resp, err := flow.UpsertListRate(ctx, &dto.UpsertListRateRequest{
		PricingListID:  list.ID,
		ChannelGroupID: group.ID,
		TargetGroup:    "W 30-60",
		PricePerSec:    "2,4",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PricingListID)
	assert.Equal(t, list.ID, *resp.PricingListID)
	assert.Equal(t, 2.4, resp.PricePerSec)
	assert.False(t, resp.Legacy)

	updated, err := flow.UpsertListRate(ctx, &dto.UpsertListRateRequest{
		PricingListID:  list.ID,
		ChannelGroupID: group.ID,
		TargetGroup:    "W 30-60",
		PricePerSec:    "2,6",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, updated.ID)

	rows, err := flow.ListRatesByPricingList(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2.6, rows[0].PricePerSec)
}

func TestListTargetGroupsSorted(t *testing.T) {
	flow, fixtures, teardown := newRateCardFlow(t)
	defer teardown()
	ctx := context.Background()

	group, err := fixtures.CreateChannelGroup("AMB Baltics")
	require.NoError(t, err)
	list, err := fixtures.CreatePricingList("2026 H1")
	require.NoError(t, err)
	for _, tg := range []string{"W 30-60", "A 25-55", "M 18-35"} {
		_, err = fixtures.CreateRate(&list.ID, group.ID, tg, 2.0)
		require.NoError(t, err)
	}

	tgs, err := flow.ListTargetGroups(ctx, list.ID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A 25-55", "M 18-35", "W 30-60"}, tgs)
}

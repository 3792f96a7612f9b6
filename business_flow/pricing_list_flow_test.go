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

func newPricingListFlow(t *testing.T) (businessflow.PricingListFlow, *testingutil.TestFixtures, func()) {
	t.Helper()
	testDB, err := testingutil.SetupTestDB()
	require.NoError(t, err)

	listRepo := repository.NewPricingListRepository(testDB.DB)
	rateRepo := repository.NewRateCardRepository(testDB.DB)
	flow := businessflow.NewPricingListFlow(listRepo, rateRepo, testDB.DB)
	return flow, testingutil.NewTestFixtures(testDB), func() { testDB.TeardownTestDB() }
}

func TestPricingListFlow(t *testing.T) {
	flow, fixtures, teardown := newPricingListFlow(t)
	defer teardown()
	ctx := context.Background()

	created, err := flow.CreatePricingList(ctx, &dto.CreatePricingListRequest{
		Name:    "2026 H1",
		Comment: "January rates",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026 H1", created.Name)
	assert.Equal(t, "January rates", created.Comment)
	assert.Zero(t, created.EntryCount)

	t.Run("DuplicateNameRejected", func(t *testing.T) {
		_, err := flow.CreatePricingList(ctx, &dto.CreatePricingListRequest{Name: "2026 H1"})
		require.Error(t, err)
		assert.True(t, businessflow.IsConflict(err))
	})

	t.Run("BlankNameRejected", func(t *testing.T) {
		_, err := flow.CreatePricingList(ctx, &dto.CreatePricingListRequest{Name: "  "})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("DuplicateCopiesRates", func(t *testing.T) {
		group, err := fixtures.CreateChannelGroup("AMB Baltics")
		require.NoError(t, err)
		_, err = fixtures.CreateRate(&created.ID, group.ID, "W 25-55", 2.0)
		require.NoError(t, err)
		_, err = fixtures.CreateRate(&created.ID, group.ID, "M 18-49", 2.4)
		require.NoError(t, err)

		copy, err := flow.DuplicatePricingList(ctx, &dto.DuplicatePricingListRequest{
			SourceID: created.ID,
			Name:     "2026 H2",
		})
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, copy.ID)
		assert.Equal(t, int64(2), copy.EntryCount)

		original, err := flow.GetPricingList(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), original.EntryCount)
	})

	t.Run("DuplicateUnknownSource", func(t *testing.T) {
		_, err := flow.DuplicatePricingList(ctx, &dto.DuplicatePricingListRequest{
			SourceID: 9999,
			Name:     "Orphan",
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsNotFound(err))
	})

	t.Run("ListReturnsBoth", func(t *testing.T) {
		lists, err := flow.ListPricingLists(ctx)
		require.NoError(t, err)
		assert.Len(t, lists, 2)
	})

	t.Run("DeleteRemovesListAndRates", func(t *testing.T) {
		require.NoError(t, flow.DeletePricingList(ctx, created.ID))

		_, err := flow.GetPricingList(ctx, created.ID)
		require.Error(t, err)
		assert.True(t, businessflow.IsNotFound(err))

		require.Error(t, flow.DeletePricingList(ctx, created.ID))
	})
}

func TestMigrateLegacyRates(t *testing.T) {
	flow, fixtures, teardown := newPricingListFlow(t)
	defer teardown()
	ctx := context.Background()

	group, err := fixtures.CreateChannelGroup("AMB Baltics")
	require.NoError(t, err)
	_, err = fixtures.CreateRate(nil, group.ID, "W 25-55", 1.8)
	require.NoError(t, err)
	_, err = fixtures.CreateRate(nil, group.ID, "M 18-49", 2.1)
	require.NoError(t, err)

	list, err := flow.CreatePricingList(ctx, &dto.CreatePricingListRequest{Name: "2026 H1"})
	require.NoError(t, err)
	// this scope already exists in the list and must be skipped
	_, err = fixtures.CreateRate(&list.ID, group.ID, "W 25-55", 2.5)
	require.NoError(t, err)

	t.Run("CopiesMissingScopesOnly", func(t *testing.T) {
		resp, err := flow.MigrateLegacyRates(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Migrated)
		assert.Equal(t, 1, resp.Skipped)

		got, err := flow.GetPricingList(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.EntryCount)

		rateRepo := repository.NewRateCardRepository(fixtures.DB.DB)
		kept, err := rateRepo.ByScope(ctx, &list.ID, group.ID, "W 25-55")
		require.NoError(t, err)
		require.NotNil(t, kept)
		assert.InDelta(t, 2.5, kept.PricePerSec, priceEpsilon)

		legacy, err := rateRepo.ListLegacy(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, legacy, 2)
	})

	t.Run("SecondRunIsIdempotent", func(t *testing.T) {
		resp, err := flow.MigrateLegacyRates(ctx, list.ID)
		require.NoError(t, err)
		assert.Zero(t, resp.Migrated)
		assert.Equal(t, 2, resp.Skipped)
	})

	t.Run("UnknownList", func(t *testing.T) {
		_, err := flow.MigrateLegacyRates(ctx, 9999)
		require.Error(t, err)
		assert.True(t, businessflow.IsNotFound(err))
	})
}

func TestChannelGroupFlow(t *testing.T) {
	testDB, err := testingutil.SetupTestDB()
	require.NoError(t, err)
	defer testDB.TeardownTestDB()
	ctx := context.Background()

	groupRepo := repository.NewChannelGroupRepository(testDB.DB)
	flow := businessflow.NewChannelGroupFlow(groupRepo, testDB.DB)

	group, err := flow.CreateChannelGroup(ctx, &dto.CreateChannelGroupRequest{Name: "MG grupė"})
	require.NoError(t, err)
	assert.Empty(t, group.Channels)

	t.Run("DuplicateNameRejected", func(t *testing.T) {
		_, err := flow.CreateChannelGroup(ctx, &dto.CreateChannelGroupRequest{Name: "MG grupė"})
		require.Error(t, err)
		assert.True(t, businessflow.IsConflict(err))
	})

	t.Run("AddChannels", func(t *testing.T) {
		big, err := flow.AddChannel(ctx, &dto.CreateChannelRequest{
			ChannelGroupID: group.ID, Name: "TV3", Size: "big",
		})
		require.NoError(t, err)
		assert.Equal(t, "big", big.Size)

		_, err = flow.AddChannel(ctx, &dto.CreateChannelRequest{
			ChannelGroupID: group.ID, Name: "TV8", Size: "small",
		})
		require.NoError(t, err)

		got, err := flow.GetChannelGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Len(t, got.Channels, 2)
	})

	t.Run("BadChannelSizeRejected", func(t *testing.T) {
		_, err := flow.AddChannel(ctx, &dto.CreateChannelRequest{
			ChannelGroupID: group.ID, Name: "TV6", Size: "medium",
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("DeleteChannel", func(t *testing.T) {
		got, err := flow.GetChannelGroup(ctx, group.ID)
		require.NoError(t, err)
		require.NotEmpty(t, got.Channels)

		require.NoError(t, flow.DeleteChannel(ctx, got.Channels[0].ID))
		require.Error(t, flow.DeleteChannel(ctx, got.Channels[0].ID))
	})

	t.Run("DeleteGroup", func(t *testing.T) {
		require.NoError(t, flow.DeleteChannelGroup(ctx, group.ID))

		_, err := flow.GetChannelGroup(ctx, group.ID)
		require.Error(t, err)
		assert.True(t, businessflow.IsNotFound(err))
	})
}

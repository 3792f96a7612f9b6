package businessflow_test

import (
	"context"
	"testing"

	"github.com/bpnlt/tv-planner/app/dto"
	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/bpnlt/tv-planner/models"
	"github.com/bpnlt/tv-planner/repository"
	testingutil "github.com/bpnlt/tv-planner/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndexFlow(t *testing.T) (businessflow.IndexFlow, *testingutil.TestFixtures, func()) {
	t.Helper()
	testDB, err := testingutil.SetupTestDB()
	require.NoError(t, err)

	indexRepo := repository.NewIndexRepository(testDB.DB)
	groupRepo := repository.NewChannelGroupRepository(testDB.DB)
	flow := businessflow.NewIndexFlow(indexRepo, groupRepo, testDB.DB)
	return flow, testingutil.NewTestFixtures(testDB), func() { testDB.TeardownTestDB() }
}

func TestResolveDurationIndex(t *testing.T) {
	flow, fixtures, teardown := newIndexFlow(t)
	defer teardown()
	ctx := context.Background()

	group, err := fixtures.CreateChannelGroup("AMB Baltics")
	require.NoError(t, err)
	_, err = fixtures.CreateDurationIndex(group.ID, 10, 1.25)
	require.NoError(t, err)

	t.Run("StoredValue", func(t *testing.T) {
		assert.InDelta(t, 1.25, flow.ResolveDurationIndex(ctx, group.ID, 10), priceEpsilon)
	})

	t.Run("MissingRowFailsOpen", func(t *testing.T) {
		assert.InDelta(t, 1.0, flow.ResolveDurationIndex(ctx, group.ID, 45), priceEpsilon)
	})

	t.Run("ZeroGroupFailsOpen", func(t *testing.T) {
		assert.InDelta(t, 1.0, flow.ResolveDurationIndex(ctx, 0, 10), priceEpsilon)
	})
}

func TestResolveSeasonalIndexRange(t *testing.T) {
	flow, fixtures, teardown := newIndexFlow(t)
	defer teardown()
	ctx := context.Background()

	group, err := fixtures.CreateChannelGroup("AMB Baltics")
	require.NoError(t, err)
	_, err = fixtures.CreateSeasonalIndex(group.ID, 5, 1.5)
	require.NoError(t, err)
	_, err = fixtures.CreateSeasonalIndex(group.ID, 6, 1.55)
	require.NoError(t, err)

	t.Run("SingleMonth", func(t *testing.T) {
		got := flow.ResolveSeasonalIndex(ctx, group.ID, "2026-05-01", "2026-05-21")
		assert.InDelta(t, 1.5, got, priceEpsilon)
	})

	t.Run("CrossMonthDayWeighted", func(t *testing.T) {
		got := flow.ResolveSeasonalIndex(ctx, group.ID, "2026-05-20", "2026-06-10")
		want := (1.5*12 + 1.55*10) / 22
		assert.InDelta(t, want, got, priceEpsilon)
	})

	t.Run("NoEndDateUsesStartMonth", func(t *testing.T) {
		got := flow.ResolveSeasonalIndex(ctx, group.ID, "2026-05-10", "")
		assert.InDelta(t, 1.5, got, priceEpsilon)
	})

	t.Run("NoEndDateMissingMonthFailsOpen", func(t *testing.T) {
		got := flow.ResolveSeasonalIndex(ctx, group.ID, "2026-11-10", "")
		assert.InDelta(t, 1.0, got, priceEpsilon)
	})

	t.Run("BadDateFailsOpen", func(t *testing.T) {
		got := flow.ResolveSeasonalIndex(ctx, group.ID, "20.05.2026", "2026-06-10")
		assert.InDelta(t, 1.0, got, priceEpsilon)
	})
}

func TestDurationIndexCRUD(t *testing.T) {
	flow, fixtures, teardown := newIndexFlow(t)
	defer teardown()
	ctx := context.Background()

	group, err := fixtures.CreateChannelGroup("MG grupė")
	require.NoError(t, err)

	t.Run("UpsertReplacesSameKey", func(t *testing.T) {
		first, err := flow.UpsertDurationIndex(ctx, &dto.UpsertDurationIndexRequest{
			ChannelGroupID: group.ID, DurationSeconds: 15, Value: 0.9,
		})
		require.NoError(t, err)
		assert.InDelta(t, 0.9, first.Value, priceEpsilon)

		_, err = flow.UpsertDurationIndex(ctx, &dto.UpsertDurationIndexRequest{
			ChannelGroupID: group.ID, DurationSeconds: 15, Value: 0.95,
		})
		require.NoError(t, err)

		rows, err := flow.ListDurationIndices(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.InDelta(t, 0.95, rows[0].Value, priceEpsilon)
	})

	t.Run("NegativeValueRejected", func(t *testing.T) {
		_, err := flow.UpsertDurationIndex(ctx, &dto.UpsertDurationIndexRequest{
			ChannelGroupID: group.ID, DurationSeconds: 15, Value: -0.1,
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("UnknownGroupRejected", func(t *testing.T) {
		_, err := flow.UpsertDurationIndex(ctx, &dto.UpsertDurationIndexRequest{
			ChannelGroupID: 9999, DurationSeconds: 15, Value: 1.0,
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsNotFound(err))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, flow.DeleteDurationIndex(ctx, group.ID, 15))
		rows, err := flow.ListDurationIndices(ctx)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestSeasonalAndPositionUpserts(t *testing.T) {
	flow, fixtures, teardown := newIndexFlow(t)
	defer teardown()
	ctx := context.Background()

	group, err := fixtures.CreateChannelGroup("AMB Baltics")
	require.NoError(t, err)

	t.Run("SeasonalMonthOutOfRange", func(t *testing.T) {
		_, err := flow.UpsertSeasonalIndex(ctx, &dto.UpsertSeasonalIndexRequest{
			ChannelGroupID: group.ID, Month: 13, Value: 1.1,
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("SeasonalStored", func(t *testing.T) {
		resp, err := flow.UpsertSeasonalIndex(ctx, &dto.UpsertSeasonalIndexRequest{
			ChannelGroupID: group.ID, Month: 12, Value: 1.65,
		})
		require.NoError(t, err)
		assert.Equal(t, 12, resp.Month)

		rows, err := flow.ListSeasonalIndices(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.InDelta(t, 1.65, rows[0].Value, priceEpsilon)
	})

	t.Run("PositionStored", func(t *testing.T) {
		resp, err := flow.UpsertPositionIndex(ctx, &dto.UpsertPositionIndexRequest{
			ChannelGroupID: group.ID, Position: "first", Value: 1.3,
		})
		require.NoError(t, err)
		assert.Equal(t, "first", resp.Position)

		rows, err := flow.ListPositionIndices(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})

	t.Run("DeletedGroupTakesIndicesAlong", func(t *testing.T) {
		groupRepo := repository.NewChannelGroupRepository(fixtures.DB.DB)
		require.NoError(t, groupRepo.DeleteCascade(ctx, group.ID))

		var count int64
		require.NoError(t, fixtures.DB.DB.Model(&models.SeasonalIndex{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

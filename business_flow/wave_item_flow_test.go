package businessflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/bpnlt/tv-planner/app/dto"
	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/bpnlt/tv-planner/models"
	"github.com/bpnlt/tv-planner/repository"
	testingutil "github.com/bpnlt/tv-planner/testing"
	"github.com/bpnlt/tv-planner/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type waveItemEnv struct {
	flow     businessflow.WaveItemFlow
	fixtures *testingutil.TestFixtures
	teardown func()
}

func newWaveItemEnv(t *testing.T) *waveItemEnv {
	t.Helper()
	testDB, err := testingutil.SetupTestDB()
	require.NoError(t, err)

	itemRepo := repository.NewWaveItemRepository(testDB.DB)
	waveRepo := repository.NewWaveRepository(testDB.DB)
	campaignRepo := repository.NewCampaignRepository(testDB.DB)
	tvcRepo := repository.NewTVCRepository(testDB.DB)
	groupRepo := repository.NewChannelGroupRepository(testDB.DB)
	rateRepo := repository.NewRateCardRepository(testDB.DB)
	listRepo := repository.NewPricingListRepository(testDB.DB)
	indexRepo := repository.NewIndexRepository(testDB.DB)

	rateFlow := businessflow.NewRateCardFlow(rateRepo, groupRepo, listRepo, testDB.DB)
	indexFlow := businessflow.NewIndexFlow(indexRepo, groupRepo, testDB.DB)
	flow := businessflow.NewWaveItemFlow(itemRepo, waveRepo, campaignRepo, tvcRepo, groupRepo, rateFlow, indexFlow, testDB.DB)

	return &waveItemEnv{
		flow:     flow,
		fixtures: testingutil.NewTestFixtures(testDB),
		teardown: func() { testDB.TeardownTestDB() },
	}
}

func TestCreateWaveItem(t *testing.T) {
	env := newWaveItemEnv(t)
	defer env.teardown()
	ctx := context.Background()

	group, err := env.fixtures.CreateChannelGroup("AMB Baltics")
	require.NoError(t, err)
	list, err := env.fixtures.CreatePricingList("2026 H1")
	require.NoError(t, err)
	_, err = env.fixtures.CreateRate(&list.ID, group.ID, "A 25-55", 2.0)
	require.NoError(t, err)
	_, err = env.fixtures.CreateDurationIndex(group.ID, 10, 1.25)
	require.NoError(t, err)
	_, err = env.fixtures.CreateSeasonalIndex(group.ID, 5, 0.9)
	require.NoError(t, err)

	start := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	campaign, err := env.fixtures.CreateCampaign("Spring push", &list.ID, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	wave, err := env.fixtures.CreateWave(campaign.ID, "Wave 1", start, start.AddDate(0, 0, 20))
	require.NoError(t, err)

	t.Run("FullPricingChain", func(t *testing.T) {
		resp, err := env.flow.CreateWaveItem(ctx, &dto.CreateWaveItemRequest{
			WaveID:         wave.ID,
			ChannelGroupID: &group.ID,
			TargetGroup:    "A 25-55",
			TRPs:           utils.ToPtr(50.0),
			ClipDuration:   utils.ToPtr(10),
			Affinity1:      utils.ToPtr(80.0),
		})
		require.NoError(t, err)

		assert.Equal(t, 2.0, resp.GrossCPP)
		assert.Equal(t, 1.25, resp.DurationIndex)
		assert.Equal(t, 0.9, resp.SeasonalIndex)
		// 50 * 2.0 * 10 * 1.25 * 0.9
		assert.InDelta(t, 1125.0, resp.GrossPrice, priceEpsilon)
		assert.InDelta(t, 62.5, resp.GRPPlanned, priceEpsilon)
		assert.InDelta(t, 1125.0, resp.NetPrice, priceEpsilon)
		assert.InDelta(t, 1125.0, resp.NetNetPrice, priceEpsilon)
		assert.Equal(t, "AMB Baltics", resp.Owner)
		// shares default from the resolved rate
		assert.Equal(t, 0.35, resp.ChannelShare)
		assert.Equal(t, 0.6, resp.PTZoneShare)
	})

	t.Run("OwnerNameInsteadOfGroupID", func(t *testing.T) {
		resp, err := env.flow.CreateWaveItem(ctx, &dto.CreateWaveItemRequest{
			WaveID:       wave.ID,
			Owner:        utils.ToPtr("AMB Baltics"),
			TargetGroup:  "A 25-55",
			TRPs:         utils.ToPtr(10.0),
			ClipDuration: utils.ToPtr(10),
		})
		require.NoError(t, err)
		assert.Equal(t, group.ID, resp.ChannelGroupID)
	})

	t.Run("OverridesWinOverResolvedIndices", func(t *testing.T) {
		resp, err := env.flow.CreateWaveItem(ctx, &dto.CreateWaveItemRequest{
			WaveID:         wave.ID,
			ChannelGroupID: &group.ID,
			TargetGroup:    "A 25-55",
			TRPs:           utils.ToPtr(50.0),
			ClipDuration:   utils.ToPtr(10),
			Overrides: dto.IndexOverrides{
				DurationIndex: utils.ToPtr(1.0),
				SeasonalIndex: utils.ToPtr(1.0),
				WebIndex:      utils.ToPtr(0.8),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 1.0, resp.DurationIndex)
		assert.Equal(t, 1.0, resp.SeasonalIndex)
		assert.Equal(t, 0.8, resp.WebIndex)
		assert.InDelta(t, 800.0, resp.GrossPrice, priceEpsilon)
	})

	t.Run("MissingListRateFailsStrictly", func(t *testing.T) {
		_, err := env.flow.CreateWaveItem(ctx, &dto.CreateWaveItemRequest{
			WaveID:         wave.ID,
			ChannelGroupID: &group.ID,
			TargetGroup:    "M 18-35",
			TRPs:           utils.ToPtr(10.0),
			ClipDuration:   utils.ToPtr(10),
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsRateNotFound(err))
	})

	t.Run("NonPositiveTRPsRejected", func(t *testing.T) {
		_, err := env.flow.CreateWaveItem(ctx, &dto.CreateWaveItemRequest{
			WaveID:         wave.ID,
			ChannelGroupID: &group.ID,
			TargetGroup:    "A 25-55",
			TRPs:           utils.ToPtr(0.0),
			ClipDuration:   utils.ToPtr(10),
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("UnknownWaveRejected", func(t *testing.T) {
		_, err := env.flow.CreateWaveItem(ctx, &dto.CreateWaveItemRequest{
			WaveID:         9999,
			ChannelGroupID: &group.ID,
			TargetGroup:    "A 25-55",
			TRPs:           utils.ToPtr(10.0),
			ClipDuration:   utils.ToPtr(10),
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsNotFound(err))
	})
}

func TestCreateWaveItemLegacyFallback(t *testing.T) {
	env := newWaveItemEnv(t)
	defer env.teardown()
	ctx := context.Background()

	group, err := env.fixtures.CreateChannelGroup("MG grupė")
	require.NoError(t, err)
	start := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	campaign, err := env.fixtures.CreateCampaign("No list", nil, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	wave, err := env.fixtures.CreateWave(campaign.ID, "Wave 1", start, start.AddDate(0, 0, 14))
	require.NoError(t, err)

	// no rate exists at all, so the neutral legacy price applies
	resp, err := env.flow.CreateWaveItem(ctx, &dto.CreateWaveItemRequest{
		WaveID:         wave.ID,
		ChannelGroupID: &group.ID,
		TargetGroup:    "A 25-55",
		TRPs:           utils.ToPtr(30.0),
		ClipDuration:   utils.ToPtr(15),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, resp.GrossCPP)
	assert.InDelta(t, 450.0, resp.GrossPrice, priceEpsilon)
}

func TestCreateWaveItemOpenEndedWave(t *testing.T) {
	env := newWaveItemEnv(t)
	defer env.teardown()
	ctx := context.Background()

	group, err := env.fixtures.CreateChannelGroup("AMB Baltics")
	require.NoError(t, err)
	_, err = env.fixtures.CreateSeasonalIndex(group.ID, 5, 1.5)
	require.NoError(t, err)

	start := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	campaign, err := env.fixtures.CreateCampaign("Open ended", nil, start, start.AddDate(0, 2, 0))
	require.NoError(t, err)
	wave := &models.Wave{CampaignID: campaign.ID, Name: "Wave 1", StartDate: &start}
	require.NoError(t, env.fixtures.DB.DB.Create(wave).Error)

	// the start month's seasonal index applies even without a wave end date
	resp, err := env.flow.CreateWaveItem(ctx, &dto.CreateWaveItemRequest{
		WaveID:         wave.ID,
		ChannelGroupID: &group.ID,
		TargetGroup:    "A 25-55",
		TRPs:           utils.ToPtr(20.0),
		ClipDuration:   utils.ToPtr(10),
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, resp.SeasonalIndex, priceEpsilon)
	// 20 * 1.0 * 10 * 1.5 with the neutral fallback CPP
	assert.InDelta(t, 300.0, resp.GrossPrice, priceEpsilon)
}

func TestCreateWaveItemWithTVC(t *testing.T) {
	env := newWaveItemEnv(t)
	defer env.teardown()
	ctx := context.Background()

	group, err := env.fixtures.CreateChannelGroup("AMB Baltics")
	require.NoError(t, err)
	start := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	campaign, err := env.fixtures.CreateCampaign("With spot", nil, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	wave, err := env.fixtures.CreateWave(campaign.ID, "Wave 1", start, start.AddDate(0, 0, 14))
	require.NoError(t, err)
	tvc, err := env.fixtures.CreateTVC(campaign.ID, "Hero 20s", 20)
	require.NoError(t, err)

	t.Run("ClipDurationDefaultsFromSpot", func(t *testing.T) {
		resp, err := env.flow.CreateWaveItem(ctx, &dto.CreateWaveItemRequest{
			WaveID:         wave.ID,
			ChannelGroupID: &group.ID,
			TargetGroup:    "A 25-55",
			TVCID:          &tvc.ID,
			TRPs:           utils.ToPtr(10.0),
		})
		require.NoError(t, err)
		assert.Equal(t, 20, resp.ClipDuration)
		require.NotNil(t, resp.TVCName)
		assert.Equal(t, "Hero 20s", *resp.TVCName)
	})

	t.Run("ForeignSpotRejected", func(t *testing.T) {
		other, err := env.fixtures.CreateCampaign("Other", nil, start, start.AddDate(0, 1, 0))
		require.NoError(t, err)
		foreign, err := env.fixtures.CreateTVC(other.ID, "Foreign", 30)
		require.NoError(t, err)

		_, err = env.flow.CreateWaveItem(ctx, &dto.CreateWaveItemRequest{
			WaveID:         wave.ID,
			ChannelGroupID: &group.ID,
			TargetGroup:    "A 25-55",
			TVCID:          &foreign.ID,
			TRPs:           utils.ToPtr(10.0),
		})
		require.Error(t, err)
	})
}

func TestUpdateWaveItem(t *testing.T) {
	env := newWaveItemEnv(t)
	defer env.teardown()
	ctx := context.Background()

	group, err := env.fixtures.CreateChannelGroup("AMB Baltics")
	require.NoError(t, err)
	list, err := env.fixtures.CreatePricingList("2026 H1")
	require.NoError(t, err)
	_, err = env.fixtures.CreateRate(&list.ID, group.ID, "A 25-55", 2.0)
	require.NoError(t, err)
	_, err = env.fixtures.CreateDurationIndex(group.ID, 10, 1.25)
	require.NoError(t, err)
	_, err = env.fixtures.CreateDurationIndex(group.ID, 30, 1.0)
	require.NoError(t, err)

	start := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	campaign, err := env.fixtures.CreateCampaign("Autumn", &list.ID, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	wave, err := env.fixtures.CreateWave(campaign.ID, "Wave 1", start, start.AddDate(0, 0, 14))
	require.NoError(t, err)

	created, err := env.flow.CreateWaveItem(ctx, &dto.CreateWaveItemRequest{
		WaveID:         wave.ID,
		ChannelGroupID: &group.ID,
		TargetGroup:    "A 25-55",
		TRPs:           utils.ToPtr(50.0),
		ClipDuration:   utils.ToPtr(10),
		Affinity1:      utils.ToPtr(80.0),
	})
	require.NoError(t, err)
	require.InDelta(t, 1250.0, created.GrossPrice, priceEpsilon)

	t.Run("PatchingTRPsRecomputes", func(t *testing.T) {
		resp, err := env.flow.UpdateWaveItem(ctx, &dto.WaveItemPatch{
			ID:   created.ID,
			TRPs: utils.ToPtr(100.0),
		})
		require.NoError(t, err)
		assert.InDelta(t, 2500.0, resp.GrossPrice, priceEpsilon)
		assert.InDelta(t, 125.0, resp.GRPPlanned, priceEpsilon)
	})

	t.Run("MetadataPatchKeepsPrices", func(t *testing.T) {
		resp, err := env.flow.UpdateWaveItem(ctx, &dto.WaveItemPatch{
			ID:          created.ID,
			TargetGroup: utils.ToPtr("A 25-55"),
		})
		require.NoError(t, err)
		assert.InDelta(t, 2500.0, resp.GrossPrice, priceEpsilon)
	})

	t.Run("ClipDurationChangeReresolvesDurationIndex", func(t *testing.T) {
		resp, err := env.flow.UpdateWaveItem(ctx, &dto.WaveItemPatch{
			ID:           created.ID,
			ClipDuration: utils.ToPtr(30),
		})
		require.NoError(t, err)
		assert.Equal(t, 1.0, resp.DurationIndex)
		// 100 * 2.0 * 30 * 1.0
		assert.InDelta(t, 6000.0, resp.GrossPrice, priceEpsilon)
	})

	t.Run("ExplicitDurationIndexIsPinned", func(t *testing.T) {
		resp, err := env.flow.UpdateWaveItem(ctx, &dto.WaveItemPatch{
			ID:            created.ID,
			ClipDuration:  utils.ToPtr(10),
			DurationIndex: utils.ToPtr(2.0),
		})
		require.NoError(t, err)
		assert.Equal(t, 2.0, resp.DurationIndex)
		assert.InDelta(t, 4000.0, resp.GrossPrice, priceEpsilon)
	})

	t.Run("DiscountPatchFlowsIntoNetPrices", func(t *testing.T) {
		resp, err := env.flow.UpdateWaveItem(ctx, &dto.WaveItemPatch{
			ID:             created.ID,
			ClientDiscount: utils.ToPtr(20.0),
			AgencyDiscount: utils.ToPtr(10.0),
		})
		require.NoError(t, err)
		assert.InDelta(t, resp.GrossPrice*0.8, resp.NetPrice, priceEpsilon)
		assert.InDelta(t, resp.GrossPrice*0.8*0.9, resp.NetNetPrice, priceEpsilon)
	})

	t.Run("UnchangedValuesLeavePricesByteIdentical", func(t *testing.T) {
		before, err := env.flow.UpdateWaveItem(ctx, &dto.WaveItemPatch{
			ID:          created.ID,
			TargetGroup: utils.ToPtr("A 25-55"),
		})
		require.NoError(t, err)

		after, err := env.flow.UpdateWaveItem(ctx, &dto.WaveItemPatch{
			ID:                   created.ID,
			TRPs:                 utils.ToPtr(before.TRPs),
			ClipDuration:         utils.ToPtr(before.ClipDuration),
			Affinity1:            utils.ToPtr(before.Affinity1),
			DurationIndex:        utils.ToPtr(before.DurationIndex),
			SeasonalIndex:        utils.ToPtr(before.SeasonalIndex),
			TRPPurchaseIndex:     utils.ToPtr(before.TRPPurchaseIndex),
			AdvancePurchaseIndex: utils.ToPtr(before.AdvancePurchaseIndex),
			PositionIndex:        utils.ToPtr(before.PositionIndex),
			WebIndex:             utils.ToPtr(before.WebIndex),
			AdvancePaymentIndex:  utils.ToPtr(before.AdvancePaymentIndex),
			LoyaltyDiscountIndex: utils.ToPtr(before.LoyaltyDiscountIndex),
			ClientDiscount:       utils.ToPtr(before.ClientDiscount),
			AgencyDiscount:       utils.ToPtr(before.AgencyDiscount),
		})
		require.NoError(t, err)
		assert.Equal(t, before.GrossPrice, after.GrossPrice)
		assert.Equal(t, before.NetPrice, after.NetPrice)
		assert.Equal(t, before.NetNetPrice, after.NetNetPrice)
		assert.Equal(t, before.GRPPlanned, after.GRPPlanned)
	})

	t.Run("UnknownItemRejected", func(t *testing.T) {
		_, err := env.flow.UpdateWaveItem(ctx, &dto.WaveItemPatch{ID: 9999})
		require.Error(t, err)
		assert.True(t, businessflow.IsNotFound(err))
	})
}

func TestDeleteWaveItem(t *testing.T) {
	env := newWaveItemEnv(t)
	defer env.teardown()
	ctx := context.Background()

	group, err := env.fixtures.CreateChannelGroup("AMB Baltics")
	require.NoError(t, err)
	start := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	campaign, err := env.fixtures.CreateCampaign("Short", nil, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	wave, err := env.fixtures.CreateWave(campaign.ID, "Wave 1", start, start.AddDate(0, 0, 14))
	require.NoError(t, err)

	created, err := env.flow.CreateWaveItem(ctx, &dto.CreateWaveItemRequest{
		WaveID:         wave.ID,
		ChannelGroupID: &group.ID,
		TargetGroup:    "A 25-55",
		TRPs:           utils.ToPtr(10.0),
		ClipDuration:   utils.ToPtr(10),
	})
	require.NoError(t, err)

	require.NoError(t, env.flow.DeleteWaveItem(ctx, created.ID))

	items, err := env.flow.ListWaveItems(ctx, wave.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = env.flow.DeleteWaveItem(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, businessflow.IsNotFound(err))
}

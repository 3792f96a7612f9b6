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

type discountEnv struct {
	flow     businessflow.DiscountFlow
	itemRepo repository.WaveItemRepository
	fixtures *testingutil.TestFixtures
	campaign *models.Campaign
	wave     *models.Wave
	group    *models.ChannelGroup
	teardown func()
}

func newDiscountEnv(t *testing.T) *discountEnv {
	t.Helper()
	testDB, err := testingutil.SetupTestDB()
	require.NoError(t, err)

	discountRepo := repository.NewDiscountRepository(testDB.DB)
	waveRepo := repository.NewWaveRepository(testDB.DB)
	campaignRepo := repository.NewCampaignRepository(testDB.DB)
	itemRepo := repository.NewWaveItemRepository(testDB.DB)
	flow := businessflow.NewDiscountFlow(discountRepo, waveRepo, campaignRepo, itemRepo, testDB.DB)

	fixtures := testingutil.NewTestFixtures(testDB)
	group, err := fixtures.CreateChannelGroup("AMB Baltics")
	require.NoError(t, err)
	start := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	campaign, err := fixtures.CreateCampaign("Discounted", nil, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	wave, err := fixtures.CreateWave(campaign.ID, "Wave 1", start, start.AddDate(0, 0, 14))
	require.NoError(t, err)

	return &discountEnv{
		flow:     flow,
		itemRepo: itemRepo,
		fixtures: fixtures,
		campaign: campaign,
		wave:     wave,
		group:    group,
		teardown: func() { testDB.TeardownTestDB() },
	}
}

func TestAddDiscount(t *testing.T) {
	env := newDiscountEnv(t)
	defer env.teardown()
	ctx := context.Background()

	t.Run("WaveScoped", func(t *testing.T) {
		resp, err := env.flow.AddDiscount(ctx, &dto.AddDiscountRequest{
			WaveID:  &env.wave.ID,
			Type:    "client",
			Percent: 15,
			Comment: "Annual deal",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.WaveID)
		assert.Equal(t, env.wave.ID, *resp.WaveID)
		assert.Nil(t, resp.CampaignID)
		assert.Equal(t, 15.0, resp.Percent)
		assert.Equal(t, "Annual deal", resp.Comment)
	})

	t.Run("CampaignScoped", func(t *testing.T) {
		resp, err := env.flow.AddDiscount(ctx, &dto.AddDiscountRequest{
			CampaignID: &env.campaign.ID,
			Type:       "agency",
			Percent:    7.5,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.CampaignID)
		assert.Nil(t, resp.WaveID)
	})

	t.Run("BothScopesRejected", func(t *testing.T) {
		_, err := env.flow.AddDiscount(ctx, &dto.AddDiscountRequest{
			CampaignID: &env.campaign.ID,
			WaveID:     &env.wave.ID,
			Type:       "client",
			Percent:    5,
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("NoScopeRejected", func(t *testing.T) {
		_, err := env.flow.AddDiscount(ctx, &dto.AddDiscountRequest{Type: "client", Percent: 5})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("BadTypeRejected", func(t *testing.T) {
		_, err := env.flow.AddDiscount(ctx, &dto.AddDiscountRequest{
			WaveID: &env.wave.ID, Type: "volume", Percent: 5,
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("PercentOutOfRangeRejected", func(t *testing.T) {
		_, err := env.flow.AddDiscount(ctx, &dto.AddDiscountRequest{
			WaveID: &env.wave.ID, Type: "client", Percent: 120,
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("UnknownWaveRejected", func(t *testing.T) {
		_, err := env.flow.AddDiscount(ctx, &dto.AddDiscountRequest{
			WaveID: utils.ToPtr(uint(9999)), Type: "client", Percent: 5,
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsNotFound(err))
	})
}

func TestEffectiveDiscounts(t *testing.T) {
	env := newDiscountEnv(t)
	defer env.teardown()
	ctx := context.Background()

	// same type merges by maximum across both scopes
	_, err := env.fixtures.CreateDiscount(nil, &env.wave.ID, models.DiscountTypeClient, 10)
	require.NoError(t, err)
	_, err = env.fixtures.CreateDiscount(&env.campaign.ID, nil, models.DiscountTypeClient, 20)
	require.NoError(t, err)
	_, err = env.fixtures.CreateDiscount(nil, &env.wave.ID, models.DiscountTypeAgency, 5)
	require.NoError(t, err)

	client, agency, err := env.flow.EffectiveDiscounts(ctx, env.wave.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, client)
	assert.Equal(t, 5.0, agency)
}

func TestComputeWaveTotal(t *testing.T) {
	env := newDiscountEnv(t)
	defer env.teardown()
	ctx := context.Background()

	_, err := env.fixtures.CreateWaveItem(env.wave.ID, env.group.ID, "A 25-55", 50, 10, 2.0)
	require.NoError(t, err)
	_, err = env.fixtures.CreateWaveItem(env.wave.ID, env.group.ID, "W 30-60", 25, 10, 2.4)
	require.NoError(t, err)
	_, err = env.fixtures.CreateDiscount(nil, &env.wave.ID, models.DiscountTypeClient, 20)
	require.NoError(t, err)
	_, err = env.fixtures.CreateDiscount(&env.campaign.ID, nil, models.DiscountTypeAgency, 10)
	require.NoError(t, err)

	total, err := env.flow.ComputeWaveTotal(ctx, env.wave.ID)
	require.NoError(t, err)

	// base cost is gross CPP times TRPs summed over items
	assert.InDelta(t, 50*2.0+25*2.4, total.BaseCost, priceEpsilon)
	assert.Equal(t, 20.0, total.ClientDiscount)
	assert.Equal(t, 10.0, total.AgencyDiscount)
	assert.InDelta(t, total.BaseCost*0.8, total.NetCost, priceEpsilon)
	assert.InDelta(t, total.BaseCost*0.8*0.9, total.NetNetCost, priceEpsilon)
}

func TestRecalculateWaveItemPrices(t *testing.T) {
	env := newDiscountEnv(t)
	defer env.teardown()
	ctx := context.Background()

	item, err := env.fixtures.CreateWaveItem(env.wave.ID, env.group.ID, "A 25-55", 50, 10, 2.0)
	require.NoError(t, err)
	_, err = env.fixtures.CreateDiscount(nil, &env.wave.ID, models.DiscountTypeClient, 20)
	require.NoError(t, err)
	_, err = env.fixtures.CreateDiscount(&env.campaign.ID, nil, models.DiscountTypeAgency, 10)
	require.NoError(t, err)

	require.NoError(t, env.flow.RecalculateWaveItemPrices(ctx, env.wave.ID))

	reloaded, err := env.itemRepo.ByID(ctx, item.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, reloaded.GrossPrice, priceEpsilon)
	assert.InDelta(t, 800.0, reloaded.NetPrice, priceEpsilon)
	assert.InDelta(t, 720.0, reloaded.NetNetPrice, priceEpsilon)
	assert.Equal(t, 20.0, reloaded.ClientDiscount)
	assert.Equal(t, 10.0, reloaded.AgencyDiscount)

	// running it again without new discounts changes nothing
	require.NoError(t, env.flow.RecalculateWaveItemPrices(ctx, env.wave.ID))

	again, err := env.itemRepo.ByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, reloaded.NetPrice, again.NetPrice)
	assert.Equal(t, reloaded.NetNetPrice, again.NetNetPrice)
}

func TestDeleteDiscount(t *testing.T) {
	env := newDiscountEnv(t)
	defer env.teardown()
	ctx := context.Background()

	created, err := env.flow.AddDiscount(ctx, &dto.AddDiscountRequest{
		WaveID: &env.wave.ID, Type: "client", Percent: 5,
	})
	require.NoError(t, err)

	require.NoError(t, env.flow.DeleteDiscount(ctx, created.ID))

	rows, err := env.flow.ListWaveDiscounts(ctx, env.wave.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	err = env.flow.DeleteDiscount(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, businessflow.IsNotFound(err))
}

package businessflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bpnlt/tv-planner/app/dto"
	"github.com/bpnlt/tv-planner/app/services"
	businessflow "github.com/bpnlt/tv-planner/business_flow"
	"github.com/bpnlt/tv-planner/repository"
	testingutil "github.com/bpnlt/tv-planner/testing"
	"github.com/bpnlt/tv-planner/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingCRMClient captures plan pushes and removals for assertions
type recordingCRMClient struct {
	services.NoopCRMClient
	remote  *dto.RemoteCampaign
	remotes []dto.RemoteCampaign
	listErr error
	pushed  []*dto.RemotePlan
	removed []string
}

func (c *recordingCRMClient) ListRemoteCampaigns(ctx context.Context) ([]dto.RemoteCampaign, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.remotes, nil
}

func (c *recordingCRMClient) GetRemoteCampaign(ctx context.Context, remoteID string) (*dto.RemoteCampaign, error) {
	if c.remote != nil && c.remote.ID == remoteID {
		return c.remote, nil
	}
	return nil, nil
}

func (c *recordingCRMClient) CreateRemotePlan(ctx context.Context, plan *dto.RemotePlan) error {
	c.pushed = append(c.pushed, plan)
	return nil
}

func (c *recordingCRMClient) DeleteRemotePlan(ctx context.Context, campaignUUID string) error {
	c.removed = append(c.removed, campaignUUID)
	return nil
}

type campaignEnv struct {
	flow     businessflow.CampaignFlow
	crm      *recordingCRMClient
	fixtures *testingutil.TestFixtures
	teardown func()
}

func newCampaignEnv(t *testing.T) *campaignEnv {
	t.Helper()
	testDB, err := testingutil.SetupTestDB()
	require.NoError(t, err)

	campaignRepo := repository.NewCampaignRepository(testDB.DB)
	waveRepo := repository.NewWaveRepository(testDB.DB)
	itemRepo := repository.NewWaveItemRepository(testDB.DB)
	tvcRepo := repository.NewTVCRepository(testDB.DB)
	listRepo := repository.NewPricingListRepository(testDB.DB)
	crm := &recordingCRMClient{}
	flow := businessflow.NewCampaignFlow(campaignRepo, waveRepo, itemRepo, tvcRepo, listRepo, crm, testDB.DB)

	return &campaignEnv{
		flow:     flow,
		crm:      crm,
		fixtures: testingutil.NewTestFixtures(testDB),
		teardown: func() { testDB.TeardownTestDB() },
	}
}

func TestCampaignLifecycle(t *testing.T) {
	env := newCampaignEnv(t)
	defer env.teardown()
	ctx := context.Background()

	created, err := env.flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
		Name:      "Spring push",
		StartDate: utils.ToPtr("2026-05-01"),
		EndDate:   utils.ToPtr("2026-06-30"),
		Client:    utils.ToPtr("Acme"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.UUID)
	assert.Equal(t, "draft", created.Status)

	t.Run("GetByUUID", func(t *testing.T) {
		got, err := env.flow.GetCampaign(ctx, created.UUID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Spring push", got.Name)
	})

	t.Run("ConfirmPushesPlanToCRM", func(t *testing.T) {
		updated, err := env.flow.UpdateCampaign(ctx, &dto.UpdateCampaignRequest{
			ID:     created.ID,
			Status: utils.ToPtr("confirmed"),
		})
		require.NoError(t, err)
		assert.Equal(t, "confirmed", updated.Status)

		require.Len(t, env.crm.pushed, 1)
		assert.Equal(t, created.UUID, env.crm.pushed[0].CampaignUUID)
		assert.Equal(t, "Acme", env.crm.pushed[0].Client)
	})

	t.Run("InvalidTransitionRejected", func(t *testing.T) {
		_, err := env.flow.UpdateCampaign(ctx, &dto.UpdateCampaignRequest{
			ID:     created.ID,
			Status: utils.ToPtr("completed"),
		})
		require.Error(t, err)
	})

	t.Run("RevertToDraftRemovesPlan", func(t *testing.T) {
		_, err := env.flow.UpdateCampaign(ctx, &dto.UpdateCampaignRequest{
			ID:     created.ID,
			Status: utils.ToPtr("draft"),
		})
		require.NoError(t, err)
		assert.Contains(t, env.crm.removed, created.UUID)
	})

	t.Run("InvertedDateRangeRejected", func(t *testing.T) {
		_, err := env.flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
			Name:      "Backwards",
			StartDate: utils.ToPtr("2026-06-30"),
			EndDate:   utils.ToPtr("2026-05-01"),
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("BlankNameRejected", func(t *testing.T) {
		_, err := env.flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{Name: "   "})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("DeleteRemovesPlanToo", func(t *testing.T) {
		require.NoError(t, env.flow.DeleteCampaign(ctx, created.UUID))

		_, err := env.flow.GetCampaign(ctx, created.UUID)
		require.Error(t, err)
		assert.True(t, businessflow.IsNotFound(err))
	})
}

func TestSaveTRPPlan(t *testing.T) {
	env := newCampaignEnv(t)
	defer env.teardown()
	ctx := context.Background()

	created, err := env.flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
		Name:      "Planned",
		StartDate: utils.ToPtr("2026-05-01"),
		EndDate:   utils.ToPtr("2026-05-31"),
	})
	require.NoError(t, err)

	t.Run("ValidPlan", func(t *testing.T) {
		err := env.flow.SaveTRPPlan(ctx, &dto.SaveTRPPlanRequest{
			CampaignID: created.ID,
			Days:       map[string]float64{"2026-05-01": 5, "2026-05-02": 7.5},
		})
		require.NoError(t, err)
	})

	t.Run("BadDateKeyRejected", func(t *testing.T) {
		err := env.flow.SaveTRPPlan(ctx, &dto.SaveTRPPlanRequest{
			CampaignID: created.ID,
			Days:       map[string]float64{"01.05.2026": 5},
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("NegativeTRPsRejected", func(t *testing.T) {
		err := env.flow.SaveTRPPlan(ctx, &dto.SaveTRPPlanRequest{
			CampaignID: created.ID,
			Days:       map[string]float64{"2026-05-01": -1},
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})
}

func TestWaveLifecycle(t *testing.T) {
	env := newCampaignEnv(t)
	defer env.teardown()
	ctx := context.Background()

	campaign, err := env.flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
		Name:      "With waves",
		StartDate: utils.ToPtr("2026-05-01"),
		EndDate:   utils.ToPtr("2026-06-30"),
	})
	require.NoError(t, err)

	wave, err := env.flow.CreateWave(ctx, &dto.CreateWaveRequest{
		CampaignID: campaign.ID,
		Name:       "Wave 1",
		StartDate:  utils.ToPtr("2026-05-01"),
		EndDate:    utils.ToPtr("2026-05-21"),
	})
	require.NoError(t, err)

	t.Run("UpdateDates", func(t *testing.T) {
		updated, err := env.flow.UpdateWave(ctx, &dto.UpdateWaveRequest{
			ID:      wave.ID,
			EndDate: utils.ToPtr("2026-05-28"),
		})
		require.NoError(t, err)
		require.NotNil(t, updated.EndDate)
		assert.Equal(t, "2026-05-28", *updated.EndDate)
	})

	t.Run("InvertedRangeRejected", func(t *testing.T) {
		_, err := env.flow.UpdateWave(ctx, &dto.UpdateWaveRequest{
			ID:      wave.ID,
			EndDate: utils.ToPtr("2026-04-01"),
		})
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})

	t.Run("DeleteWave", func(t *testing.T) {
		require.NoError(t, env.flow.DeleteWave(ctx, wave.ID))

		waves, err := env.flow.ListWaves(ctx, campaign.ID)
		require.NoError(t, err)
		assert.Empty(t, waves)
	})
}

func TestCalendarMonth(t *testing.T) {
	env := newCampaignEnv(t)
	defer env.teardown()
	ctx := context.Background()

	campaign, err := env.flow.CreateCampaign(ctx, &dto.CreateCampaignRequest{
		Name:      "Calendar entry",
		StartDate: utils.ToPtr("2026-05-10"),
		EndDate:   utils.ToPtr("2026-06-20"),
	})
	require.NoError(t, err)
	_, err = env.flow.CreateWave(ctx, &dto.CreateWaveRequest{
		CampaignID: campaign.ID,
		Name:       "Wave 1",
		StartDate:  utils.ToPtr("2026-05-10"),
		EndDate:    utils.ToPtr("2026-05-31"),
	})
	require.NoError(t, err)

	t.Run("OverlappingMonth", func(t *testing.T) {
		resp, err := env.flow.CalendarMonth(ctx, 2026, 5)
		require.NoError(t, err)
		assert.Equal(t, "Gegužė", resp.MonthName)

		var kinds []string
		for _, event := range resp.Events {
			kinds = append(kinds, event.Kind)
		}
		assert.Contains(t, kinds, "campaign")
		assert.Contains(t, kinds, "wave")
	})

	t.Run("NonOverlappingMonthIsEmpty", func(t *testing.T) {
		resp, err := env.flow.CalendarMonth(ctx, 2026, 12)
		require.NoError(t, err)
		assert.Empty(t, resp.Events)
	})

	t.Run("MonthOutOfRange", func(t *testing.T) {
		_, err := env.flow.CalendarMonth(ctx, 2026, 13)
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInput(err))
	})
}

func TestImportFromCRM(t *testing.T) {
	env := newCampaignEnv(t)
	defer env.teardown()
	ctx := context.Background()

	env.crm.remote = &dto.RemoteCampaign{
		ID:        "crm-42",
		Name:      "Imported push",
		Client:    "Acme",
		StartDate: "2026-05-01",
		EndDate:   "2026-06-30",
	}

	t.Run("KnownRemoteID", func(t *testing.T) {
		resp, err := env.flow.ImportFromCRM(ctx, &dto.ImportCampaignRequest{RemoteID: "crm-42"})
		require.NoError(t, err)
		assert.Equal(t, "crm-42", resp.RemoteID)
		assert.NotEmpty(t, resp.UUID)

		local, err := env.flow.GetCampaign(ctx, resp.UUID)
		require.NoError(t, err)
		assert.Equal(t, "Imported push", local.Name)
		assert.Equal(t, "draft", local.Status)
		require.NotNil(t, local.Client)
		assert.Equal(t, "Acme", *local.Client)
		require.NotNil(t, local.CRMRef)
		assert.Equal(t, "crm_crm-42", *local.CRMRef)
	})

	t.Run("ConversionDefaults", func(t *testing.T) {
		env.crm.remote = &dto.RemoteCampaign{ID: "77", Name: "Bare project"}

		resp, err := env.flow.ImportFromCRM(ctx, &dto.ImportCampaignRequest{RemoteID: "77"})
		require.NoError(t, err)

		local, err := env.flow.GetCampaign(ctx, resp.UUID)
		require.NoError(t, err)
		require.NotNil(t, local.Agency)
		assert.Equal(t, "Projects-CRM", *local.Agency)
		require.NotNil(t, local.Client)
		assert.Equal(t, "Unknown Client", *local.Client)
		require.NotNil(t, local.Country)
		assert.Equal(t, "Lietuva", *local.Country)
		require.NotNil(t, local.CRMRef)
		assert.Equal(t, "crm_77", *local.CRMRef)
	})

	t.Run("UnknownRemoteID", func(t *testing.T) {
		_, err := env.flow.ImportFromCRM(ctx, &dto.ImportCampaignRequest{RemoteID: "missing"})
		require.Error(t, err)
		assert.True(t, businessflow.IsNotFound(err))
	})
}

func TestListRemoteCampaigns(t *testing.T) {
	env := newCampaignEnv(t)
	defer env.teardown()
	ctx := context.Background()

	t.Run("ReturnsRemoteList", func(t *testing.T) {
		env.crm.remotes = []dto.RemoteCampaign{
			{ID: "crm-1", Name: "Summer push"},
			{ID: "crm-2", Name: "Autumn push"},
		}
		remotes, err := env.flow.ListRemoteCampaigns(ctx)
		require.NoError(t, err)
		require.Len(t, remotes, 2)
		assert.Equal(t, "Summer push", remotes[0].Name)
	})

	t.Run("UnreachableCRMDegradesToEmptyList", func(t *testing.T) {
		env.crm.listErr = errors.New("connection refused")
		remotes, err := env.flow.ListRemoteCampaigns(ctx)
		require.NoError(t, err)
		assert.Empty(t, remotes)
	})
}

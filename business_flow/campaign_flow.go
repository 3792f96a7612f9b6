package businessflow

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bpnlt/tv-planner/app/dto"
	"github.com/bpnlt/tv-planner/app/services"
	"github.com/bpnlt/tv-planner/models"
	"github.com/bpnlt/tv-planner/repository"
	"github.com/bpnlt/tv-planner/utils"
	"gorm.io/gorm"
)

// Lithuanian month names used by the planning calendar.
var monthNames = [...]string{
	"Sausis", "Vasaris", "Kovas", "Balandis", "Gegužė", "Birželis",
	"Liepa", "Rugpjūtis", "Rugsėjis", "Spalis", "Lapkritis", "Gruodis",
}

// CampaignFlow defines campaign, wave and TVC lifecycle operations
type CampaignFlow interface {
	CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest) (*dto.CampaignResponse, error)
	UpdateCampaign(ctx context.Context, req *dto.UpdateCampaignRequest) (*dto.CampaignResponse, error)
	GetCampaign(ctx context.Context, uuid string) (*dto.CampaignResponse, error)
	ListCampaigns(ctx context.Context) ([]dto.CampaignResponse, error)
	DeleteCampaign(ctx context.Context, uuid string) error
	SaveTRPPlan(ctx context.Context, req *dto.SaveTRPPlanRequest) error

	CreateWave(ctx context.Context, req *dto.CreateWaveRequest) (*dto.WaveResponse, error)
	UpdateWave(ctx context.Context, req *dto.UpdateWaveRequest) (*dto.WaveResponse, error)
	ListWaves(ctx context.Context, campaignID uint) ([]dto.WaveResponse, error)
	DeleteWave(ctx context.Context, id uint) error

	CreateTVC(ctx context.Context, req *dto.CreateTVCRequest) (*dto.TVCResponse, error)
	ListTVCs(ctx context.Context, campaignID uint) ([]dto.TVCResponse, error)
	DeleteTVC(ctx context.Context, id uint) error

	CalendarMonth(ctx context.Context, year, month int) (*dto.CalendarMonthResponse, error)
	ListRemoteCampaigns(ctx context.Context) ([]dto.RemoteCampaign, error)
	ImportFromCRM(ctx context.Context, req *dto.ImportCampaignRequest) (*dto.ImportedCampaignResponse, error)
}

// CampaignFlowImpl implements CampaignFlow
type CampaignFlowImpl struct {
	campaignRepo repository.CampaignRepository
	waveRepo     repository.WaveRepository
	itemRepo     repository.WaveItemRepository
	tvcRepo      repository.TVCRepository
	listRepo     repository.PricingListRepository
	crm          services.CRMClient
	db           *gorm.DB
}

// NewCampaignFlow constructs a CampaignFlow
func NewCampaignFlow(
	campaignRepo repository.CampaignRepository,
	waveRepo repository.WaveRepository,
	itemRepo repository.WaveItemRepository,
	tvcRepo repository.TVCRepository,
	listRepo repository.PricingListRepository,
	crm services.CRMClient,
	db *gorm.DB,
) CampaignFlow {
	return &CampaignFlowImpl{
		campaignRepo: campaignRepo,
		waveRepo:     waveRepo,
		itemRepo:     itemRepo,
		tvcRepo:      tvcRepo,
		listRepo:     listRepo,
		crm:          crm,
		db:           db,
	}
}

// CreateCampaign creates a new draft campaign
func (f *CampaignFlowImpl) CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewBusinessError("CAMPAIGN_CREATE_FAILED", "Name is required", ErrNameRequired)
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate, "CAMPAIGN_CREATE_FAILED")
	if err != nil {
		return nil, err
	}
	if req.PricingListID != nil {
		list, err := f.listRepo.ByID(ctx, *req.PricingListID)
		if err != nil {
			return nil, fmt.Errorf("failed to load pricing list: %w", err)
		}
		if list == nil {
			return nil, NewBusinessError("CAMPAIGN_CREATE_FAILED", "Pricing list not found", ErrPricingListNotFound)
		}
	}

	campaign := &models.Campaign{
		Name:          name,
		PricingListID: req.PricingListID,
		Status:        models.CampaignStatusDraft,
		StartDate:     start,
		EndDate:       end,
		Agency:        req.Agency,
		Client:        req.Client,
		Product:       req.Product,
		Country:       req.Country,
		CRMRef:        req.CRMRef,
		CreatedAt:     utils.UTCNow(),
	}
	if err := f.campaignRepo.Save(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to save campaign: %w", err)
	}
	return f.toCampaignResponse(ctx, campaign)
}

// UpdateCampaign applies a partial update. Confirming a campaign pushes a
// plan summary to the CRM; moving it back to draft removes the pushed plan.
// CRM failures are logged, never surfaced: the local state is authoritative.
func (f *CampaignFlowImpl) UpdateCampaign(ctx context.Context, req *dto.UpdateCampaignRequest) (*dto.CampaignResponse, error) {
	campaign, err := f.campaignRepo.ByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_UPDATE_FAILED", "Campaign not found", ErrCampaignNotFound)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewBusinessError("CAMPAIGN_UPDATE_FAILED", "Name is required", ErrNameRequired)
		}
		campaign.Name = name
	}
	if req.PricingListID != nil {
		list, err := f.listRepo.ByID(ctx, *req.PricingListID)
		if err != nil {
			return nil, fmt.Errorf("failed to load pricing list: %w", err)
		}
		if list == nil {
			return nil, NewBusinessError("CAMPAIGN_UPDATE_FAILED", "Pricing list not found", ErrPricingListNotFound)
		}
		campaign.PricingListID = req.PricingListID
	}
	if req.StartDate != nil || req.EndDate != nil {
		startStr := req.StartDate
		endStr := req.EndDate
		if startStr == nil && campaign.StartDate != nil {
			startStr = utils.ToPtr(utils.FormatDate(*campaign.StartDate))
		}
		if endStr == nil && campaign.EndDate != nil {
			endStr = utils.ToPtr(utils.FormatDate(*campaign.EndDate))
		}
		start, end, err := parseDateRange(startStr, endStr, "CAMPAIGN_UPDATE_FAILED")
		if err != nil {
			return nil, err
		}
		campaign.StartDate = start
		campaign.EndDate = end
	}
	if req.Agency != nil {
		campaign.Agency = req.Agency
	}
	if req.Client != nil {
		campaign.Client = req.Client
	}
	if req.Product != nil {
		campaign.Product = req.Product
	}
	if req.Country != nil {
		campaign.Country = req.Country
	}

	var confirmed, reverted bool
	if req.Status != nil {
		newStatus := models.CampaignStatus(*req.Status)
		if !newStatus.Valid() {
			return nil, NewBusinessError("CAMPAIGN_UPDATE_FAILED", fmt.Sprintf("Unknown status %q", *req.Status), ErrStatusTransition)
		}
		if newStatus != campaign.Status {
			if !campaign.CanTransitionTo(newStatus) {
				msg := fmt.Sprintf("Cannot move campaign from %s to %s", campaign.Status, newStatus)
				return nil, NewBusinessError("CAMPAIGN_UPDATE_FAILED", msg, ErrStatusTransition)
			}
			confirmed = campaign.Status == models.CampaignStatusDraft && newStatus == models.CampaignStatusConfirmed
			reverted = campaign.Status == models.CampaignStatusConfirmed && newStatus == models.CampaignStatusDraft
			campaign.Status = newStatus
		}
	}

	if err := f.campaignRepo.Update(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	if confirmed {
		f.pushPlanToCRM(ctx, campaign)
	}
	if reverted {
		if err := f.crm.DeleteRemotePlan(ctx, campaign.UUID); err != nil {
			log.Printf("crm plan removal failed for campaign %s: %v", campaign.UUID, err)
		}
	}
	return f.toCampaignResponse(ctx, campaign)
}

func (f *CampaignFlowImpl) pushPlanToCRM(ctx context.Context, campaign *models.Campaign) {
	plan := &dto.RemotePlan{
		CampaignUUID: campaign.UUID,
		Name:         campaign.Name,
	}
	if campaign.Client != nil {
		plan.Client = *campaign.Client
	}
	if campaign.StartDate != nil {
		plan.StartDate = utils.FormatDate(*campaign.StartDate)
	}
	if campaign.EndDate != nil {
		plan.EndDate = utils.FormatDate(*campaign.EndDate)
	}
	waves, err := f.waveRepo.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		log.Printf("crm plan push skipped for campaign %s: %v", campaign.UUID, err)
		return
	}
	for _, wave := range waves {
		items, err := f.itemRepo.ListByWave(ctx, wave.ID)
		if err != nil {
			log.Printf("crm plan push skipped for campaign %s: %v", campaign.UUID, err)
			return
		}
		for _, item := range items {
			plan.NetNetPrice += item.NetNetPrice
		}
	}
	if err := f.crm.CreateRemotePlan(ctx, plan); err != nil {
		log.Printf("crm plan push failed for campaign %s: %v", campaign.UUID, err)
	}
}

// GetCampaign returns one campaign by its public identifier
func (f *CampaignFlowImpl) GetCampaign(ctx context.Context, uuid string) (*dto.CampaignResponse, error) {
	campaign, err := f.campaignRepo.ByUUID(ctx, uuid)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("CAMPAIGN_GET_FAILED", "Campaign not found", ErrCampaignNotFound)
	}
	return f.toCampaignResponse(ctx, campaign)
}

// ListCampaigns returns all campaigns, newest first
func (f *CampaignFlowImpl) ListCampaigns(ctx context.Context) ([]dto.CampaignResponse, error) {
	campaigns, err := f.campaignRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	out := make([]dto.CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		resp, err := f.toCampaignResponse(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// DeleteCampaign removes a campaign and everything under it: waves, their
// items, discounts at both scopes, and TVCs. A pushed CRM plan is removed
// best-effort afterwards.
func (f *CampaignFlowImpl) DeleteCampaign(ctx context.Context, uuid string) error {
	campaign, err := f.campaignRepo.ByUUID(ctx, uuid)
	if err != nil {
		return fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign == nil {
		return NewBusinessError("CAMPAIGN_DELETE_FAILED", "Campaign not found", ErrCampaignNotFound)
	}
	if err := f.campaignRepo.DeleteCascade(ctx, campaign.ID); err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	if err := f.crm.DeleteRemotePlan(ctx, campaign.UUID); err != nil {
		log.Printf("crm plan removal failed for campaign %s: %v", campaign.UUID, err)
	}
	return nil
}

// SaveTRPPlan replaces the per-day TRP distribution of a campaign
func (f *CampaignFlowImpl) SaveTRPPlan(ctx context.Context, req *dto.SaveTRPPlanRequest) error {
	campaign, err := f.campaignRepo.ByID(ctx, req.CampaignID)
	if err != nil {
		return fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign == nil {
		return NewBusinessError("TRP_PLAN_SAVE_FAILED", "Campaign not found", ErrCampaignNotFound)
	}
	plan := make(models.TRPDistribution, len(req.Days))
	for day, trps := range req.Days {
		if _, err := utils.ParseDate(day); err != nil {
			return NewBusinessError("TRP_PLAN_SAVE_FAILED", fmt.Sprintf("Bad date %q", day), ErrInvalidInput)
		}
		if trps < 0 {
			return NewBusinessError("TRP_PLAN_SAVE_FAILED", fmt.Sprintf("Negative TRPs for %s", day), ErrInvalidInput)
		}
		plan[day] = trps
	}
	if err := f.campaignRepo.SaveTRPPlan(ctx, campaign.ID, plan); err != nil {
		return fmt.Errorf("failed to save trp plan: %w", err)
	}
	return nil
}

// CreateWave adds a wave to a campaign
func (f *CampaignFlowImpl) CreateWave(ctx context.Context, req *dto.CreateWaveRequest) (*dto.WaveResponse, error) {
	campaign, err := f.campaignRepo.ByID(ctx, req.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("WAVE_CREATE_FAILED", "Campaign not found", ErrCampaignNotFound)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewBusinessError("WAVE_CREATE_FAILED", "Name is required", ErrNameRequired)
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate, "WAVE_CREATE_FAILED")
	if err != nil {
		return nil, err
	}
	wave := &models.Wave{
		CampaignID: campaign.ID,
		Name:       name,
		StartDate:  start,
		EndDate:    end,
		CreatedAt:  utils.UTCNow(),
	}
	if err := f.waveRepo.Save(ctx, wave); err != nil {
		return nil, fmt.Errorf("failed to save wave: %w", err)
	}
	return toWaveResponse(wave), nil
}

// UpdateWave applies a partial update to a wave's name and date range
func (f *CampaignFlowImpl) UpdateWave(ctx context.Context, req *dto.UpdateWaveRequest) (*dto.WaveResponse, error) {
	wave, err := f.waveRepo.ByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wave: %w", err)
	}
	if wave == nil {
		return nil, NewBusinessError("WAVE_UPDATE_FAILED", "Wave not found", ErrWaveNotFound)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewBusinessError("WAVE_UPDATE_FAILED", "Name is required", ErrNameRequired)
		}
		wave.Name = name
	}
	if req.StartDate != nil || req.EndDate != nil {
		startStr := req.StartDate
		endStr := req.EndDate
		if startStr == nil && wave.StartDate != nil {
			startStr = utils.ToPtr(utils.FormatDate(*wave.StartDate))
		}
		if endStr == nil && wave.EndDate != nil {
			endStr = utils.ToPtr(utils.FormatDate(*wave.EndDate))
		}
		start, end, err := parseDateRange(startStr, endStr, "WAVE_UPDATE_FAILED")
		if err != nil {
			return nil, err
		}
		wave.StartDate = start
		wave.EndDate = end
	}
	if err := f.waveRepo.Update(ctx, wave); err != nil {
		return nil, fmt.Errorf("failed to update wave: %w", err)
	}
	return toWaveResponse(wave), nil
}

// ListWaves returns the waves of a campaign
func (f *CampaignFlowImpl) ListWaves(ctx context.Context, campaignID uint) ([]dto.WaveResponse, error) {
	waves, err := f.waveRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list waves: %w", err)
	}
	out := make([]dto.WaveResponse, 0, len(waves))
	for _, wave := range waves {
		out = append(out, *toWaveResponse(wave))
	}
	return out, nil
}

// DeleteWave removes a wave together with its items and wave-scoped discounts
func (f *CampaignFlowImpl) DeleteWave(ctx context.Context, id uint) error {
	wave, err := f.waveRepo.ByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load wave: %w", err)
	}
	if wave == nil {
		return NewBusinessError("WAVE_DELETE_FAILED", "Wave not found", ErrWaveNotFound)
	}
	return f.waveRepo.DeleteCascade(ctx, id)
}

// CreateTVC registers a commercial spot under a campaign
func (f *CampaignFlowImpl) CreateTVC(ctx context.Context, req *dto.CreateTVCRequest) (*dto.TVCResponse, error) {
	campaign, err := f.campaignRepo.ByID(ctx, req.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("TVC_CREATE_FAILED", "Campaign not found", ErrCampaignNotFound)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewBusinessError("TVC_CREATE_FAILED", "Name is required", ErrNameRequired)
	}
	if req.DurationSeconds <= 0 {
		return nil, NewBusinessError("TVC_CREATE_FAILED", "Duration must be a positive number of seconds", ErrClipDurationRequired)
	}
	tvc := &models.TVC{
		CampaignID:      campaign.ID,
		Name:            name,
		DurationSeconds: req.DurationSeconds,
		CreatedAt:       utils.UTCNow(),
	}
	if err := f.tvcRepo.Save(ctx, tvc); err != nil {
		return nil, fmt.Errorf("failed to save tvc: %w", err)
	}
	return &dto.TVCResponse{
		ID:              tvc.ID,
		CampaignID:      tvc.CampaignID,
		Name:            tvc.Name,
		DurationSeconds: tvc.DurationSeconds,
	}, nil
}

// ListTVCs returns the commercial spots of a campaign
func (f *CampaignFlowImpl) ListTVCs(ctx context.Context, campaignID uint) ([]dto.TVCResponse, error) {
	tvcs, err := f.tvcRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tvcs: %w", err)
	}
	out := make([]dto.TVCResponse, 0, len(tvcs))
	for _, tvc := range tvcs {
		out = append(out, dto.TVCResponse{
			ID:              tvc.ID,
			CampaignID:      tvc.CampaignID,
			Name:            tvc.Name,
			DurationSeconds: tvc.DurationSeconds,
		})
	}
	return out, nil
}

// DeleteTVC removes a spot and nulls the references of items that used it
func (f *CampaignFlowImpl) DeleteTVC(ctx context.Context, id uint) error {
	tvc, err := f.tvcRepo.ByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load tvc: %w", err)
	}
	if tvc == nil {
		return NewBusinessError("TVC_DELETE_FAILED", "TVC not found", ErrTVCNotFound)
	}
	return f.tvcRepo.DeleteAndClearRefs(ctx, id)
}

// CalendarMonth returns campaign and wave bars overlapping one month
func (f *CampaignFlowImpl) CalendarMonth(ctx context.Context, year, month int) (*dto.CalendarMonthResponse, error) {
	if month < 1 || month > 12 {
		return nil, NewBusinessError("CALENDAR_FAILED", "Month must be between 1 and 12", ErrMonthOutOfRange)
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-24 * time.Hour)

	campaigns, err := f.campaignRepo.ListInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns in range: %w", err)
	}

	resp := &dto.CalendarMonthResponse{
		Year:      year,
		Month:     month,
		MonthName: monthNames[month-1],
		Events:    []dto.CalendarEvent{},
	}
	for _, c := range campaigns {
		event := dto.CalendarEvent{
			UUID:   c.UUID,
			Kind:   "campaign",
			Title:  c.Name,
			Status: c.Status.String(),
		}
		if c.Client != nil {
			event.Client = *c.Client
		}
		if c.StartDate != nil {
			event.StartDate = utils.FormatDate(*c.StartDate)
		}
		if c.EndDate != nil {
			event.EndDate = utils.FormatDate(*c.EndDate)
		}
		resp.Events = append(resp.Events, event)

		waves, err := f.waveRepo.ListByCampaign(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list waves: %w", err)
		}
		for _, wave := range waves {
			if wave.StartDate == nil || wave.EndDate == nil {
				continue
			}
			if wave.EndDate.Before(from) || wave.StartDate.After(to) {
				continue
			}
			resp.Events = append(resp.Events, dto.CalendarEvent{
				UUID:       fmt.Sprintf("%s/waves/%d", c.UUID, wave.ID),
				ParentUUID: c.UUID,
				Kind:       "wave",
				Title:      wave.Name,
				StartDate:  utils.FormatDate(*wave.StartDate),
				EndDate:    utils.FormatDate(*wave.EndDate),
			})
		}
	}
	return resp, nil
}

// ListRemoteCampaigns fetches the campaigns available for import from the
// CRM. An unreachable CRM degrades to an empty list; the planner keeps
// working without it.
func (f *CampaignFlowImpl) ListRemoteCampaigns(ctx context.Context) ([]dto.RemoteCampaign, error) {
	remotes, err := f.crm.ListRemoteCampaigns(ctx)
	if err != nil {
		log.Printf("failed to list crm campaigns: %v", err)
		return []dto.RemoteCampaign{}, nil
	}
	if remotes == nil {
		remotes = []dto.RemoteCampaign{}
	}
	return remotes, nil
}

// ImportFromCRM pulls one CRM campaign in as a local draft. Fields the CRM
// leaves blank fall back to the conversion defaults: agency "Projects-CRM",
// client "Unknown Client", country "Lietuva".
func (f *CampaignFlowImpl) ImportFromCRM(ctx context.Context, req *dto.ImportCampaignRequest) (*dto.ImportedCampaignResponse, error) {
	remote, err := f.crm.GetRemoteCampaign(ctx, req.RemoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch crm campaign %s: %w", req.RemoteID, err)
	}
	if remote == nil {
		return nil, NewBusinessError("CRM_IMPORT_FAILED", fmt.Sprintf("CRM campaign %q not found", req.RemoteID), ErrCampaignNotFound)
	}
	createReq := &dto.CreateCampaignRequest{
		Name:          remote.Name,
		PricingListID: req.PricingListID,
		Agency:        utils.ToPtr("Projects-CRM"),
		Client:        utils.ToPtr("Unknown Client"),
		Country:       utils.ToPtr("Lietuva"),
		CRMRef:        utils.ToPtr("crm_" + remote.ID),
	}
	if remote.StartDate != "" {
		createReq.StartDate = utils.ToPtr(remote.StartDate)
	}
	if remote.EndDate != "" {
		createReq.EndDate = utils.ToPtr(remote.EndDate)
	}
	if remote.Agency != "" {
		createReq.Agency = utils.ToPtr(remote.Agency)
	}
	if remote.Client != "" {
		createReq.Client = utils.ToPtr(remote.Client)
	}
	if remote.Product != "" {
		createReq.Product = utils.ToPtr(remote.Product)
	}
	created, err := f.CreateCampaign(ctx, createReq)
	if err != nil {
		return nil, err
	}
	return &dto.ImportedCampaignResponse{
		RemoteID: remote.ID,
		UUID:     created.UUID,
		Name:     created.Name,
	}, nil
}

func parseDateRange(startStr, endStr *string, code string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startStr != nil && *startStr != "" {
		t, err := utils.ParseDate(*startStr)
		if err != nil {
			return nil, nil, NewBusinessError(code, fmt.Sprintf("Bad start date %q", *startStr), ErrInvalidInput)
		}
		start = &t
	}
	if endStr != nil && *endStr != "" {
		t, err := utils.ParseDate(*endStr)
		if err != nil {
			return nil, nil, NewBusinessError(code, fmt.Sprintf("Bad end date %q", *endStr), ErrInvalidInput)
		}
		end = &t
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, NewBusinessError(code, "Start date cannot be after end date", ErrDateRangeInvalid)
	}
	return start, end, nil
}

func toWaveResponse(wave *models.Wave) *dto.WaveResponse {
	resp := &dto.WaveResponse{
		ID:         wave.ID,
		CampaignID: wave.CampaignID,
		Name:       wave.Name,
	}
	if wave.StartDate != nil {
		resp.StartDate = utils.ToPtr(utils.FormatDate(*wave.StartDate))
	}
	if wave.EndDate != nil {
		resp.EndDate = utils.ToPtr(utils.FormatDate(*wave.EndDate))
	}
	return resp
}

func (f *CampaignFlowImpl) toCampaignResponse(ctx context.Context, c *models.Campaign) (*dto.CampaignResponse, error) {
	resp := &dto.CampaignResponse{
		ID:            c.ID,
		UUID:          c.UUID,
		Name:          c.Name,
		PricingListID: c.PricingListID,
		Status:        c.Status.String(),
		Agency:        c.Agency,
		Client:        c.Client,
		Product:       c.Product,
		Country:       c.Country,
		CRMRef:        c.CRMRef,
		CreatedAt:     c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if c.StartDate != nil {
		resp.StartDate = utils.ToPtr(utils.FormatDate(*c.StartDate))
	}
	if c.EndDate != nil {
		resp.EndDate = utils.ToPtr(utils.FormatDate(*c.EndDate))
	}
	if c.PricingListID != nil {
		list, err := f.listRepo.ByID(ctx, *c.PricingListID)
		if err != nil {
			return nil, fmt.Errorf("failed to load pricing list: %w", err)
		}
		if list != nil {
			resp.PricingListName = &list.Name
		}
	}
	return resp, nil
}

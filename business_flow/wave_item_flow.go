package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/bpnlt/tv-planner/app/dto"
	"github.com/bpnlt/tv-planner/models"
	"github.com/bpnlt/tv-planner/repository"
	"github.com/bpnlt/tv-planner/utils"
	"gorm.io/gorm"
)

// WaveItemFlow defines the pricing engine operations on wave line items
type WaveItemFlow interface {
	CreateWaveItem(ctx context.Context, req *dto.CreateWaveItemRequest) (*dto.WaveItemResponse, error)
	UpdateWaveItem(ctx context.Context, patch *dto.WaveItemPatch) (*dto.WaveItemResponse, error)
	DeleteWaveItem(ctx context.Context, id uint) error
	GetWaveItem(ctx context.Context, id uint) (*dto.WaveItemResponse, error)
	ListWaveItems(ctx context.Context, waveID uint) ([]dto.WaveItemResponse, error)
}

// WaveItemFlowImpl implements WaveItemFlow
type WaveItemFlowImpl struct {
	itemRepo     repository.WaveItemRepository
	waveRepo     repository.WaveRepository
	campaignRepo repository.CampaignRepository
	tvcRepo      repository.TVCRepository
	groupRepo    repository.ChannelGroupRepository
	rateFlow     RateCardFlow
	indexFlow    IndexFlow
	db           *gorm.DB
}

// NewWaveItemFlow constructs a WaveItemFlow
func NewWaveItemFlow(
	itemRepo repository.WaveItemRepository,
	waveRepo repository.WaveRepository,
	campaignRepo repository.CampaignRepository,
	tvcRepo repository.TVCRepository,
	groupRepo repository.ChannelGroupRepository,
	rateFlow RateCardFlow,
	indexFlow IndexFlow,
	db *gorm.DB,
) WaveItemFlow {
	return &WaveItemFlowImpl{
		itemRepo:     itemRepo,
		waveRepo:     waveRepo,
		campaignRepo: campaignRepo,
		tvcRepo:      tvcRepo,
		groupRepo:    groupRepo,
		rateFlow:     rateFlow,
		indexFlow:    indexFlow,
		db:           db,
	}
}

// CreateWaveItem prices and stores a new line item. The gross CPP comes from
// the rate resolved against the campaign's pricing list, the duration and
// seasonal indices from the lookup tables unless overridden, and every
// derived output is computed before the row is written. The whole
// read-compute-write path runs in one transaction.
func (f *WaveItemFlowImpl) CreateWaveItem(ctx context.Context, req *dto.CreateWaveItemRequest) (*dto.WaveItemResponse, error) {
	var item *models.WaveItem
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		var err error
		item, err = f.createWaveItem(txCtx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return f.toResponse(ctx, item)
}

func (f *WaveItemFlowImpl) createWaveItem(ctx context.Context, req *dto.CreateWaveItemRequest) (*models.WaveItem, error) {
	wave, err := f.waveRepo.ByID(ctx, req.WaveID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wave: %w", err)
	}
	if wave == nil {
		return nil, NewBusinessError("WAVE_ITEM_CREATE_FAILED", "Wave not found", ErrWaveNotFound)
	}
	campaign, err := f.campaignRepo.ByID(ctx, wave.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign == nil {
		return nil, NewBusinessError("WAVE_ITEM_CREATE_FAILED", "Campaign not found", ErrCampaignNotFound)
	}

	groupID, err := f.resolveGroupID(ctx, req.ChannelGroupID, req.Owner)
	if err != nil {
		return nil, err
	}

	if req.TRPs == nil || *req.TRPs <= 0 {
		return nil, NewBusinessError("WAVE_ITEM_CREATE_FAILED", "TRPs must be a positive number", ErrTRPsRequired)
	}

	item := &models.WaveItem{
		WaveID:         wave.ID,
		ChannelGroupID: groupID,
		TargetGroup:    strings.TrimSpace(req.TargetGroup),
		TRPs:           *req.TRPs,
	}

	if req.TVCID != nil {
		tvc, err := f.requireTVC(ctx, *req.TVCID, campaign.ID, "WAVE_ITEM_CREATE_FAILED")
		if err != nil {
			return nil, err
		}
		item.TVCID = req.TVCID
		item.ClipDuration = tvc.DurationSeconds
	}
	if req.ClipDuration != nil {
		item.ClipDuration = *req.ClipDuration
	}
	if item.ClipDuration <= 0 {
		return nil, NewBusinessError("WAVE_ITEM_CREATE_FAILED", "Clip duration must be a positive number of seconds", ErrClipDurationRequired)
	}

	rate, err := f.rateFlow.ResolveRate(ctx, campaign.PricingListID, groupID, item.TargetGroup)
	if err != nil {
		return nil, err
	}
	item.GrossCPP = rate.PricePerSec

	item.ChannelShare = rate.ChannelShare
	item.PTZoneShare = rate.PTZoneShare
	if req.ChannelShare != nil {
		item.ChannelShare = *req.ChannelShare
	}
	if req.PTZoneShare != nil {
		item.PTZoneShare = *req.PTZoneShare
	}
	if req.Affinity1 != nil {
		item.Affinity1 = *req.Affinity1
	}
	if req.Affinity2 != nil {
		item.Affinity2 = *req.Affinity2
	}
	if req.Affinity3 != nil {
		item.Affinity3 = *req.Affinity3
	}
	if req.ClientDiscount != nil {
		item.ClientDiscount = *req.ClientDiscount
	}
	if req.AgencyDiscount != nil {
		item.AgencyDiscount = *req.AgencyDiscount
	}

	f.resolveIndices(ctx, item, wave, &req.Overrides)
	recomputePrices(item)

	if err := f.itemRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save wave item: %w", err)
	}
	return item, nil
}

// resolveIndices fills the eight multipliers of a fresh item. Overrides win;
// everything else comes from the lookup tables or stays neutral.
func (f *WaveItemFlowImpl) resolveIndices(ctx context.Context, item *models.WaveItem, wave *models.Wave, ov *dto.IndexOverrides) {
	item.DurationIndex = f.indexFlow.ResolveDurationIndex(ctx, item.ChannelGroupID, item.ClipDuration)
	item.SeasonalIndex = 1.0
	if wave.StartDate != nil {
		end := ""
		if wave.EndDate != nil {
			end = utils.FormatDate(*wave.EndDate)
		}
		item.SeasonalIndex = f.indexFlow.ResolveSeasonalIndex(ctx, item.ChannelGroupID,
			utils.FormatDate(*wave.StartDate), end)
	}
	item.TRPPurchaseIndex = 1.0
	item.AdvancePurchaseIndex = 1.0
	item.PositionIndex = 1.0
	item.WebIndex = 1.0
	item.AdvancePaymentIndex = 1.0
	item.LoyaltyDiscountIndex = 1.0

	if ov == nil {
		return
	}
	if ov.DurationIndex != nil {
		item.DurationIndex = *ov.DurationIndex
	}
	if ov.SeasonalIndex != nil {
		item.SeasonalIndex = *ov.SeasonalIndex
	}
	if ov.TRPPurchaseIndex != nil {
		item.TRPPurchaseIndex = *ov.TRPPurchaseIndex
	}
	if ov.AdvancePurchaseIndex != nil {
		item.AdvancePurchaseIndex = *ov.AdvancePurchaseIndex
	}
	if ov.PositionIndex != nil {
		item.PositionIndex = *ov.PositionIndex
	}
	if ov.WebIndex != nil {
		item.WebIndex = *ov.WebIndex
	}
	if ov.AdvancePaymentIndex != nil {
		item.AdvancePaymentIndex = *ov.AdvancePaymentIndex
	}
	if ov.LoyaltyDiscountIndex != nil {
		item.LoyaltyDiscountIndex = *ov.LoyaltyDiscountIndex
	}
}

// UpdateWaveItem applies a typed partial update. Patching any field that
// contributes to pricing recomputes every derived output; metadata-only
// patches leave the stored prices alone. Changing the clip duration
// re-resolves the duration index unless the patch pins it explicitly.
// Load, recompute and write happen in one transaction under a row lock so
// concurrent edits of the same item cannot interleave.
func (f *WaveItemFlowImpl) UpdateWaveItem(ctx context.Context, patch *dto.WaveItemPatch) (*dto.WaveItemResponse, error) {
	var item *models.WaveItem
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		var err error
		item, err = f.applyWaveItemPatch(txCtx, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return f.toResponse(ctx, item)
}

func (f *WaveItemFlowImpl) applyWaveItemPatch(ctx context.Context, patch *dto.WaveItemPatch) (*models.WaveItem, error) {
	item, err := f.itemRepo.ByIDForUpdate(ctx, patch.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wave item: %w", err)
	}
	if item == nil {
		return nil, NewBusinessError("WAVE_ITEM_UPDATE_FAILED", "Wave item not found", ErrWaveItemNotFound)
	}

	if patch.TVCID != nil {
		wave, err := f.waveRepo.ByID(ctx, item.WaveID)
		if err != nil {
			return nil, fmt.Errorf("failed to load wave: %w", err)
		}
		tvc, err := f.requireTVC(ctx, *patch.TVCID, wave.CampaignID, "WAVE_ITEM_UPDATE_FAILED")
		if err != nil {
			return nil, err
		}
		item.TVCID = patch.TVCID
		if patch.ClipDuration == nil {
			patch.ClipDuration = utils.ToPtr(tvc.DurationSeconds)
		}
	}

	if patch.TargetGroup != nil {
		tg := strings.TrimSpace(*patch.TargetGroup)
		if tg == "" {
			return nil, NewBusinessError("WAVE_ITEM_UPDATE_FAILED", "Target group is required", ErrTargetGroupRequired)
		}
		item.TargetGroup = tg
	}
	if patch.TRPs != nil {
		item.TRPs = *patch.TRPs
	}
	if patch.ClipDuration != nil {
		item.ClipDuration = *patch.ClipDuration
		if patch.DurationIndex == nil {
			item.DurationIndex = f.indexFlow.ResolveDurationIndex(ctx, item.ChannelGroupID, item.ClipDuration)
		}
	}
	if patch.ChannelShare != nil {
		item.ChannelShare = *patch.ChannelShare
	}
	if patch.PTZoneShare != nil {
		item.PTZoneShare = *patch.PTZoneShare
	}
	if patch.Affinity1 != nil {
		item.Affinity1 = *patch.Affinity1
	}
	if patch.Affinity2 != nil {
		item.Affinity2 = *patch.Affinity2
	}
	if patch.Affinity3 != nil {
		item.Affinity3 = *patch.Affinity3
	}
	if patch.DurationIndex != nil {
		item.DurationIndex = *patch.DurationIndex
	}
	if patch.SeasonalIndex != nil {
		item.SeasonalIndex = *patch.SeasonalIndex
	}
	if patch.TRPPurchaseIndex != nil {
		item.TRPPurchaseIndex = *patch.TRPPurchaseIndex
	}
	if patch.AdvancePurchaseIndex != nil {
		item.AdvancePurchaseIndex = *patch.AdvancePurchaseIndex
	}
	if patch.PositionIndex != nil {
		item.PositionIndex = *patch.PositionIndex
	}
	if patch.WebIndex != nil {
		item.WebIndex = *patch.WebIndex
	}
	if patch.AdvancePaymentIndex != nil {
		item.AdvancePaymentIndex = *patch.AdvancePaymentIndex
	}
	if patch.LoyaltyDiscountIndex != nil {
		item.LoyaltyDiscountIndex = *patch.LoyaltyDiscountIndex
	}
	if patch.ClientDiscount != nil {
		item.ClientDiscount = *patch.ClientDiscount
	}
	if patch.AgencyDiscount != nil {
		item.AgencyDiscount = *patch.AgencyDiscount
	}

	if patch.TouchesPricing() {
		recomputePrices(item)
	}
	item.UpdatedAt = utils.UTCNowPtr()

	if err := f.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update wave item: %w", err)
	}
	return item, nil
}

// DeleteWaveItem removes a single line item
func (f *WaveItemFlowImpl) DeleteWaveItem(ctx context.Context, id uint) error {
	item, err := f.itemRepo.ByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load wave item: %w", err)
	}
	if item == nil {
		return NewBusinessError("WAVE_ITEM_DELETE_FAILED", "Wave item not found", ErrWaveItemNotFound)
	}
	return f.itemRepo.DeleteByID(ctx, id)
}

// GetWaveItem returns one line item
func (f *WaveItemFlowImpl) GetWaveItem(ctx context.Context, id uint) (*dto.WaveItemResponse, error) {
	item, err := f.itemRepo.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load wave item: %w", err)
	}
	if item == nil {
		return nil, NewBusinessError("WAVE_ITEM_GET_FAILED", "Wave item not found", ErrWaveItemNotFound)
	}
	return f.toResponse(ctx, item)
}

// ListWaveItems returns all line items of one wave
func (f *WaveItemFlowImpl) ListWaveItems(ctx context.Context, waveID uint) ([]dto.WaveItemResponse, error) {
	wave, err := f.waveRepo.ByID(ctx, waveID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wave: %w", err)
	}
	if wave == nil {
		return nil, NewBusinessError("WAVE_ITEM_LIST_FAILED", "Wave not found", ErrWaveNotFound)
	}
	items, err := f.itemRepo.ListByWave(ctx, waveID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wave items: %w", err)
	}
	out := make([]dto.WaveItemResponse, 0, len(items))
	for _, item := range items {
		resp, err := f.toResponse(ctx, item)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (f *WaveItemFlowImpl) resolveGroupID(ctx context.Context, groupID *uint, owner *string) (uint, error) {
	if groupID != nil && *groupID != 0 {
		group, err := f.groupRepo.ByID(ctx, *groupID)
		if err != nil {
			return 0, fmt.Errorf("failed to load channel group: %w", err)
		}
		if group == nil {
			return 0, NewBusinessError("WAVE_ITEM_CREATE_FAILED", "Channel group not found", ErrChannelGroupNotFound)
		}
		return group.ID, nil
	}
	if owner != nil && strings.TrimSpace(*owner) != "" {
		group, err := f.groupRepo.ByName(ctx, strings.TrimSpace(*owner))
		if err != nil {
			return 0, fmt.Errorf("failed to load channel group: %w", err)
		}
		if group == nil {
			return 0, NewBusinessError("WAVE_ITEM_CREATE_FAILED", fmt.Sprintf("Unknown channel group %q", *owner), ErrChannelGroupNotFound)
		}
		return group.ID, nil
	}
	return 0, NewBusinessError("WAVE_ITEM_CREATE_FAILED", "Channel group is required", ErrOwnerRequired)
}

func (f *WaveItemFlowImpl) requireTVC(ctx context.Context, tvcID, campaignID uint, code string) (*models.TVC, error) {
	tvc, err := f.tvcRepo.ByID(ctx, tvcID)
	if err != nil {
		return nil, fmt.Errorf("failed to load TVC: %w", err)
	}
	if tvc == nil {
		return nil, NewBusinessError(code, "TVC not found", ErrTVCNotFound)
	}
	if tvc.CampaignID != campaignID {
		return nil, NewBusinessError(code, "TVC belongs to another campaign", ErrTVCNotInCampaign)
	}
	return tvc, nil
}

// recomputePrices refreshes every derived output from the current raw inputs.
func recomputePrices(item *models.WaveItem) {
	in := PriceInputs{
		TRPs:                 item.TRPs,
		GrossCPP:             item.GrossCPP,
		ClipDuration:         item.ClipDuration,
		DurationIndex:        item.DurationIndex,
		SeasonalIndex:        item.SeasonalIndex,
		TRPPurchaseIndex:     item.TRPPurchaseIndex,
		AdvancePurchaseIndex: item.AdvancePurchaseIndex,
		PositionIndex:        item.PositionIndex,
		WebIndex:             item.WebIndex,
		AdvancePaymentIndex:  item.AdvancePaymentIndex,
		LoyaltyDiscountIndex: item.LoyaltyDiscountIndex,
	}
	item.GRPPlanned = PlannedGRP(item.TRPs, item.Affinity1)
	item.GrossPrice = GrossPrice(in)
	item.NetPrice, item.NetNetPrice = NetPrices(item.GrossPrice, item.ClientDiscount, item.AgencyDiscount)
}

func (f *WaveItemFlowImpl) toResponse(ctx context.Context, item *models.WaveItem) (*dto.WaveItemResponse, error) {
	resp := &dto.WaveItemResponse{
		ID:             item.ID,
		WaveID:         item.WaveID,
		ChannelGroupID: item.ChannelGroupID,
		TargetGroup:    item.TargetGroup,
		TVCID:          item.TVCID,

		TRPs:         item.TRPs,
		ClipDuration: item.ClipDuration,
		ChannelShare: item.ChannelShare,
		PTZoneShare:  item.PTZoneShare,
		Affinity1:    item.Affinity1,
		Affinity2:    item.Affinity2,
		Affinity3:    item.Affinity3,

		DurationIndex:        item.DurationIndex,
		SeasonalIndex:        item.SeasonalIndex,
		TRPPurchaseIndex:     item.TRPPurchaseIndex,
		AdvancePurchaseIndex: item.AdvancePurchaseIndex,
		PositionIndex:        item.PositionIndex,
		WebIndex:             item.WebIndex,
		AdvancePaymentIndex:  item.AdvancePaymentIndex,
		LoyaltyDiscountIndex: item.LoyaltyDiscountIndex,

		GRPPlanned:     item.GRPPlanned,
		GrossCPP:       item.GrossCPP,
		GrossPrice:     item.GrossPrice,
		ClientDiscount: item.ClientDiscount,
		NetPrice:       item.NetPrice,
		AgencyDiscount: item.AgencyDiscount,
		NetNetPrice:    item.NetNetPrice,
	}
	group, err := f.groupRepo.ByID(ctx, item.ChannelGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load channel group: %w", err)
	}
	if group != nil {
		resp.Owner = group.Name
	}
	if item.TVCID != nil {
		tvc, err := f.tvcRepo.ByID(ctx, *item.TVCID)
		if err != nil {
			return nil, fmt.Errorf("failed to load TVC: %w", err)
		}
		if tvc != nil {
			resp.TVCName = &tvc.Name
			resp.TVCDuration = &tvc.DurationSeconds
		}
	}
	return resp, nil
}

package businessflow

import (
	"context"
	"fmt"

	"github.com/bpnlt/tv-planner/app/dto"
	"github.com/bpnlt/tv-planner/models"
	"github.com/bpnlt/tv-planner/repository"
	"github.com/bpnlt/tv-planner/utils"
	"gorm.io/gorm"
)

// DiscountFlow defines the discount ledger and wave aggregation operations
type DiscountFlow interface {
	AddDiscount(ctx context.Context, req *dto.AddDiscountRequest) (*dto.DiscountResponse, error)
	DeleteDiscount(ctx context.Context, id uint) error
	ListWaveDiscounts(ctx context.Context, waveID uint) ([]dto.DiscountResponse, error)
	ListCampaignDiscounts(ctx context.Context, campaignID uint) ([]dto.DiscountResponse, error)
	EffectiveDiscounts(ctx context.Context, waveID uint) (client float64, agency float64, err error)
	ComputeWaveTotal(ctx context.Context, waveID uint) (*dto.WaveTotalResponse, error)
	RecalculateWaveItemPrices(ctx context.Context, waveID uint) error
}

// DiscountFlowImpl implements DiscountFlow
type DiscountFlowImpl struct {
	discountRepo repository.DiscountRepository
	waveRepo     repository.WaveRepository
	campaignRepo repository.CampaignRepository
	itemRepo     repository.WaveItemRepository
	db           *gorm.DB
}

// NewDiscountFlow constructs a DiscountFlow
func NewDiscountFlow(
	discountRepo repository.DiscountRepository,
	waveRepo repository.WaveRepository,
	campaignRepo repository.CampaignRepository,
	itemRepo repository.WaveItemRepository,
	db *gorm.DB,
) DiscountFlow {
	return &DiscountFlowImpl{
		discountRepo: discountRepo,
		waveRepo:     waveRepo,
		campaignRepo: campaignRepo,
		itemRepo:     itemRepo,
		db:           db,
	}
}

// AddDiscount records a discount attached to exactly one wave or one campaign
func (f *DiscountFlowImpl) AddDiscount(ctx context.Context, req *dto.AddDiscountRequest) (*dto.DiscountResponse, error) {
	if (req.CampaignID == nil) == (req.WaveID == nil) {
		return nil, NewBusinessError("DISCOUNT_ADD_FAILED", "Exactly one of campaign or wave must be given", ErrDiscountScopeRequired)
	}
	dtype := models.DiscountType(req.Type)
	if !dtype.Valid() {
		return nil, NewBusinessError("DISCOUNT_ADD_FAILED", "Type must be client or agency", ErrDiscountTypeInvalid)
	}
	if req.Percent < 0 || req.Percent > 100 {
		return nil, NewBusinessError("DISCOUNT_ADD_FAILED", "Percent must be between 0 and 100", ErrDiscountPercentInvalid)
	}

	if req.WaveID != nil {
		wave, err := f.waveRepo.ByID(ctx, *req.WaveID)
		if err != nil {
			return nil, fmt.Errorf("failed to load wave: %w", err)
		}
		if wave == nil {
			return nil, NewBusinessError("DISCOUNT_ADD_FAILED", "Wave not found", ErrWaveNotFound)
		}
	}
	if req.CampaignID != nil {
		campaign, err := f.campaignRepo.ByID(ctx, *req.CampaignID)
		if err != nil {
			return nil, fmt.Errorf("failed to load campaign: %w", err)
		}
		if campaign == nil {
			return nil, NewBusinessError("DISCOUNT_ADD_FAILED", "Campaign not found", ErrCampaignNotFound)
		}
	}

	row := &models.Discount{
		CampaignID: req.CampaignID,
		WaveID:     req.WaveID,
		Type:       dtype,
		Percentage: req.Percent,
		CreatedAt:  utils.UTCNow(),
	}
	if req.Comment != "" {
		row.Comment = utils.ToPtr(req.Comment)
	}
	if err := f.discountRepo.Save(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to save discount: %w", err)
	}
	resp := toDiscountResponse(row)
	return &resp, nil
}

// DeleteDiscount removes one discount row
func (f *DiscountFlowImpl) DeleteDiscount(ctx context.Context, id uint) error {
	row, err := f.discountRepo.ByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load discount: %w", err)
	}
	if row == nil {
		return NewBusinessError("DISCOUNT_DELETE_FAILED", "Discount not found", ErrDiscountNotFound)
	}
	return f.discountRepo.DeleteByID(ctx, id)
}

// ListWaveDiscounts returns the discounts attached directly to one wave
func (f *DiscountFlowImpl) ListWaveDiscounts(ctx context.Context, waveID uint) ([]dto.DiscountResponse, error) {
	rows, err := f.discountRepo.ListByWave(ctx, waveID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wave discounts: %w", err)
	}
	return toDiscountResponses(rows), nil
}

// ListCampaignDiscounts returns the campaign-scoped discounts of one campaign
func (f *DiscountFlowImpl) ListCampaignDiscounts(ctx context.Context, campaignID uint) ([]dto.DiscountResponse, error) {
	rows, err := f.discountRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaign discounts: %w", err)
	}
	return toDiscountResponses(rows), nil
}

// EffectiveDiscounts computes the per-type effective percentages for a wave.
// Wave-scoped and campaign-scoped discounts of the same type do not stack:
// the largest percentage wins.
func (f *DiscountFlowImpl) EffectiveDiscounts(ctx context.Context, waveID uint) (float64, float64, error) {
	wave, err := f.waveRepo.ByID(ctx, waveID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load wave: %w", err)
	}
	if wave == nil {
		return 0, 0, NewBusinessError("DISCOUNT_AGGREGATION_FAILED", "Wave not found", ErrWaveNotFound)
	}

	waveRows, err := f.discountRepo.ListByWave(ctx, waveID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list wave discounts: %w", err)
	}
	campaignRows, err := f.discountRepo.ListByCampaign(ctx, wave.CampaignID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list campaign discounts: %w", err)
	}

	var client, agency []float64
	for _, rows := range [][]*models.Discount{waveRows, campaignRows} {
		for _, row := range rows {
			switch row.Type {
			case models.DiscountTypeClient:
				client = append(client, row.Percentage)
			case models.DiscountTypeAgency:
				agency = append(agency, row.Percentage)
			}
		}
	}
	return MaxDiscountPercent(client...), MaxDiscountPercent(agency...), nil
}

// ComputeWaveTotal aggregates a wave's cost. The base cost is the sum of
// gross CPP times TRPs over the wave's items, and the effective discounts
// are applied in client-then-agency order.
func (f *DiscountFlowImpl) ComputeWaveTotal(ctx context.Context, waveID uint) (*dto.WaveTotalResponse, error) {
	client, agency, err := f.EffectiveDiscounts(ctx, waveID)
	if err != nil {
		return nil, err
	}
	items, err := f.itemRepo.ListByWave(ctx, waveID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wave items: %w", err)
	}

	var base float64
	for _, item := range items {
		base += item.GrossCPP * item.TRPs
	}
	net, netNet := NetPrices(base, client, agency)

	return &dto.WaveTotalResponse{
		WaveID:         waveID,
		BaseCost:       base,
		ClientDiscount: client,
		AgencyDiscount: agency,
		NetCost:        net,
		NetNetCost:     netNet,
	}, nil
}

// RecalculateWaveItemPrices re-derives the net prices of every item in a wave
// from its stored gross price and the current effective discounts. Running it
// twice without new discounts changes nothing.
func (f *DiscountFlowImpl) RecalculateWaveItemPrices(ctx context.Context, waveID uint) error {
	client, agency, err := f.EffectiveDiscounts(ctx, waveID)
	if err != nil {
		return err
	}
	items, err := f.itemRepo.ListByWave(ctx, waveID)
	if err != nil {
		return fmt.Errorf("failed to list wave items: %w", err)
	}

	return repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		for _, item := range items {
			net, netNet := NetPrices(item.GrossPrice, client, agency)
			if err := f.itemRepo.UpdatePrices(txCtx, item.ID, net, netNet, client, agency); err != nil {
				return err
			}
		}
		return nil
	})
}

func toDiscountResponse(d *models.Discount) dto.DiscountResponse {
	resp := dto.DiscountResponse{
		ID:         d.ID,
		CampaignID: d.CampaignID,
		WaveID:     d.WaveID,
		Type:       d.Type.String(),
		Percent:    d.Percentage,
		CreatedAt:  d.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if d.Comment != nil {
		resp.Comment = *d.Comment
	}
	return resp
}

func toDiscountResponses(rows []*models.Discount) []dto.DiscountResponse {
	out := make([]dto.DiscountResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDiscountResponse(row))
	}
	return out
}

// Package businessflow contains the core business logic for rate resolution and pricing
package businessflow

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bpnlt/tv-planner/app/dto"
	"github.com/bpnlt/tv-planner/models"
	"github.com/bpnlt/tv-planner/repository"
	"github.com/bpnlt/tv-planner/utils"
	"gorm.io/gorm"
)

// RateCardFlow defines rate lookup and rate administration operations
type RateCardFlow interface {
	ResolveRate(ctx context.Context, pricingListID *uint, channelGroupID uint, targetGroup string) (*models.RateCardEntry, error)
	UpsertLegacyRate(ctx context.Context, req *dto.UpsertLegacyRateRequest) (*dto.RateCardEntryResponse, error)
	UpsertListRate(ctx context.Context, req *dto.UpsertListRateRequest) (*dto.RateCardEntryResponse, error)
	ListLegacyRates(ctx context.Context, channelGroupID *uint) ([]dto.RateCardEntryResponse, error)
	ListRatesByPricingList(ctx context.Context, pricingListID uint) ([]dto.RateCardEntryResponse, error)
	ListTargetGroups(ctx context.Context, pricingListID uint, channelGroupID uint) ([]string, error)
	DeleteRate(ctx context.Context, id uint) error
}

// RateCardFlowImpl implements RateCardFlow
type RateCardFlowImpl struct {
	rateRepo      repository.RateCardRepository
	groupRepo     repository.ChannelGroupRepository
	listRepo      repository.PricingListRepository
	db            *gorm.DB
}

// NewRateCardFlow constructs a RateCardFlow
func NewRateCardFlow(
	rateRepo repository.RateCardRepository,
	groupRepo repository.ChannelGroupRepository,
	listRepo repository.PricingListRepository,
	db *gorm.DB,
) RateCardFlow {
	return &RateCardFlowImpl{
		rateRepo:  rateRepo,
		groupRepo: groupRepo,
		listRepo:  listRepo,
		db:        db,
	}
}

// ResolveRate finds the rate row that prices a (pricing list, channel group,
// target group) combination. With a pricing list the lookup is strict: a
// missing row is an error so a mispriced order cannot be produced silently.
// Without a list the legacy per-group table is consulted, and a missing row
// falls back to a neutral synthetic entry priced at 1.0 per second.
func (f *RateCardFlowImpl) ResolveRate(ctx context.Context, pricingListID *uint, channelGroupID uint, targetGroup string) (*models.RateCardEntry, error) {
	targetGroup = strings.TrimSpace(targetGroup)
	if targetGroup == "" {
		return nil, NewBusinessError("RATE_RESOLUTION_FAILED", "Target group is required", ErrTargetGroupRequired)
	}
	if channelGroupID == 0 {
		return nil, NewBusinessError("RATE_RESOLUTION_FAILED", "Channel group is required", ErrOwnerRequired)
	}

	if pricingListID != nil {
		entry, err := f.rateRepo.ByScope(ctx, pricingListID, channelGroupID, targetGroup)
		if err != nil {
			return nil, fmt.Errorf("failed to look up rate: %w", err)
		}
		if entry == nil {
			msg := fmt.Sprintf("No rate for channel group %d and target group %q in pricing list %d", channelGroupID, targetGroup, *pricingListID)
			return nil, NewBusinessError("RATE_NOT_FOUND", msg, ErrRateNotFound)
		}
		return entry, nil
	}

	entry, err := f.rateRepo.ByScope(ctx, nil, channelGroupID, targetGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to look up legacy rate: %w", err)
	}
	if entry != nil {
		return entry, nil
	}

	// Legacy planning predates pricing lists and keeps working even for
	// combinations that were never priced.
	return &models.RateCardEntry{
		ChannelGroupID: channelGroupID,
		TargetGroup:    targetGroup,
		PrimaryLabel:   "N/A",
		PricePerSec:    1.0,
	}, nil
}

// UpsertLegacyRate creates or replaces a rate row in the per-group legacy table
func (f *RateCardFlowImpl) UpsertLegacyRate(ctx context.Context, req *dto.UpsertLegacyRateRequest) (*dto.RateCardEntryResponse, error) {
	group, err := f.groupRepo.ByID(ctx, req.ChannelGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load channel group: %w", err)
	}
	if group == nil {
		return nil, NewBusinessError("RATE_UPSERT_FAILED", "Channel group not found", ErrChannelGroupNotFound)
	}

	entry, err := f.buildEntry(nil, req.ChannelGroupID, req.TargetGroup, req.PrimaryLabel, req.SecondaryLabel,
		req.SalesShare, req.ChannelShare, req.PTZoneShare, req.NPTZoneShare, req.PricePerSec)
	if err != nil {
		return nil, err
	}

	if err := f.rateRepo.UpsertLegacy(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save rate: %w", err)
	}
	resp := toRateResponse(entry, group.Name)
	return &resp, nil
}

// UpsertListRate creates or replaces a rate row scoped to a pricing list
func (f *RateCardFlowImpl) UpsertListRate(ctx context.Context, req *dto.UpsertListRateRequest) (*dto.RateCardEntryResponse, error) {
	list, err := f.listRepo.ByID(ctx, req.PricingListID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing list: %w", err)
	}
	if list == nil {
		return nil, NewBusinessError("RATE_UPSERT_FAILED", "Pricing list not found", ErrPricingListNotFound)
	}
	group, err := f.groupRepo.ByID(ctx, req.ChannelGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load channel group: %w", err)
	}
	if group == nil {
		return nil, NewBusinessError("RATE_UPSERT_FAILED", "Channel group not found", ErrChannelGroupNotFound)
	}

	entry, err := f.buildEntry(utils.ToPtr(req.PricingListID), req.ChannelGroupID, req.TargetGroup, req.PrimaryLabel, req.SecondaryLabel,
		req.SalesShare, req.ChannelShare, req.PTZoneShare, req.NPTZoneShare, req.PricePerSec)
	if err != nil {
		return nil, err
	}

	existing, err := f.rateRepo.ByScope(ctx, entry.PricingListID, entry.ChannelGroupID, entry.TargetGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to look up rate: %w", err)
	}
	if existing != nil {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		if err := f.rateRepo.Update(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to update rate: %w", err)
		}
	} else {
		if err := f.rateRepo.Save(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to save rate: %w", err)
		}
	}
	resp := toRateResponse(entry, group.Name)
	return &resp, nil
}

func (f *RateCardFlowImpl) buildEntry(pricingListID *uint, channelGroupID uint, targetGroup, primaryLabel, secondaryLabel, salesShare, channelShare, ptZoneShare, nptZoneShare, pricePerSec string) (*models.RateCardEntry, error) {
	targetGroup = strings.TrimSpace(targetGroup)
	if targetGroup == "" {
		return nil, NewBusinessError("RATE_UPSERT_FAILED", "Target group is required", ErrTargetGroupRequired)
	}
	price, ok := utils.ParseDecimal(pricePerSec)
	if !ok || price <= 0 {
		return nil, NewBusinessError("RATE_UPSERT_FAILED", "Price per second must be a positive number", ErrPricePerSecRequired)
	}
	entry := &models.RateCardEntry{
		PricingListID:  pricingListID,
		ChannelGroupID: channelGroupID,
		TargetGroup:    targetGroup,
		PrimaryLabel:   strings.TrimSpace(primaryLabel),
		SecondaryLabel: strings.TrimSpace(secondaryLabel),
		PricePerSec:    price,
		CreatedAt:      utils.UTCNow(),
		UpdatedAt:      utils.UTCNow(),
	}
	if v, ok := utils.ParseDecimal(salesShare); ok {
		entry.SalesShare = v
	}
	if v, ok := utils.ParseDecimal(channelShare); ok {
		entry.ChannelShare = v
	}
	if v, ok := utils.ParseDecimal(ptZoneShare); ok {
		entry.PTZoneShare = v
	}
	if v, ok := utils.ParseDecimal(nptZoneShare); ok {
		entry.NPTZoneShare = v
	}
	return entry, nil
}

// ListLegacyRates returns legacy rate rows, optionally scoped to one channel group
func (f *RateCardFlowImpl) ListLegacyRates(ctx context.Context, channelGroupID *uint) ([]dto.RateCardEntryResponse, error) {
	if channelGroupID != nil {
		group, err := f.groupRepo.ByID(ctx, *channelGroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to load channel group: %w", err)
		}
		if group == nil {
			return nil, NewBusinessError("RATE_LIST_FAILED", "Channel group not found", ErrChannelGroupNotFound)
		}
	}
	entries, err := f.rateRepo.ListLegacy(ctx, channelGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	names, err := f.groupNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RateCardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toRateResponse(e, names[e.ChannelGroupID]))
	}
	return out, nil
}

func (f *RateCardFlowImpl) groupNames(ctx context.Context) (map[uint]string, error) {
	groups, err := f.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel groups: %w", err)
	}
	names := make(map[uint]string, len(groups))
	for _, g := range groups {
		names[g.ID] = g.Name
	}
	return names, nil
}

// ListRatesByPricingList returns all rate rows of one pricing list
func (f *RateCardFlowImpl) ListRatesByPricingList(ctx context.Context, pricingListID uint) ([]dto.RateCardEntryResponse, error) {
	list, err := f.listRepo.ByID(ctx, pricingListID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing list: %w", err)
	}
	if list == nil {
		return nil, NewBusinessError("RATE_LIST_FAILED", "Pricing list not found", ErrPricingListNotFound)
	}
	entries, err := f.rateRepo.ListByList(ctx, pricingListID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	names, err := f.groupNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RateCardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toRateResponse(e, names[e.ChannelGroupID]))
	}
	return out, nil
}

// ListTargetGroups returns the target groups a pricing list prices for one owner, sorted
func (f *RateCardFlowImpl) ListTargetGroups(ctx context.Context, pricingListID uint, channelGroupID uint) ([]string, error) {
	tgs, err := f.rateRepo.ListTargetGroups(ctx, pricingListID, channelGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list target groups: %w", err)
	}
	sort.Strings(tgs)
	return tgs, nil
}

// DeleteRate removes a single rate row
func (f *RateCardFlowImpl) DeleteRate(ctx context.Context, id uint) error {
	entry, err := f.rateRepo.ByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load rate: %w", err)
	}
	if entry == nil {
		return NewBusinessError("RATE_DELETE_FAILED", "Rate not found", ErrRateNotFound)
	}
	return f.rateRepo.DeleteByID(ctx, id)
}

func toRateResponse(e *models.RateCardEntry, owner string) dto.RateCardEntryResponse {
	return dto.RateCardEntryResponse{
		ID:             e.ID,
		PricingListID:  e.PricingListID,
		ChannelGroupID: e.ChannelGroupID,
		Owner:          owner,
		TargetGroup:    e.TargetGroup,
		PrimaryLabel:   e.PrimaryLabel,
		SecondaryLabel: e.SecondaryLabel,
		SalesShare:     e.SalesShare,
		ChannelShare:   e.ChannelShare,
		PTZoneShare:    e.PTZoneShare,
		NPTZoneShare:   e.NPTZoneShare,
		PricePerSec:    e.PricePerSec,
		Legacy:         e.IsLegacy(),
	}
}

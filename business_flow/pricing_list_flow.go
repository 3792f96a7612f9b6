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

// PricingListFlow defines pricing list administration operations
type PricingListFlow interface {
	CreatePricingList(ctx context.Context, req *dto.CreatePricingListRequest) (*dto.PricingListResponse, error)
	DuplicatePricingList(ctx context.Context, req *dto.DuplicatePricingListRequest) (*dto.PricingListResponse, error)
	ListPricingLists(ctx context.Context) ([]dto.PricingListResponse, error)
	GetPricingList(ctx context.Context, id uint) (*dto.PricingListResponse, error)
	DeletePricingList(ctx context.Context, id uint) error
	MigrateLegacyRates(ctx context.Context, listID uint) (*dto.MigrateLegacyRatesResponse, error)
}

// PricingListFlowImpl implements PricingListFlow
type PricingListFlowImpl struct {
	listRepo repository.PricingListRepository
	rateRepo repository.RateCardRepository
	db       *gorm.DB
}

// NewPricingListFlow constructs a PricingListFlow
func NewPricingListFlow(listRepo repository.PricingListRepository, rateRepo repository.RateCardRepository, db *gorm.DB) PricingListFlow {
	return &PricingListFlowImpl{listRepo: listRepo, rateRepo: rateRepo, db: db}
}

// CreatePricingList creates an empty named pricing list
func (f *PricingListFlowImpl) CreatePricingList(ctx context.Context, req *dto.CreatePricingListRequest) (*dto.PricingListResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewBusinessError("PRICING_LIST_CREATE_FAILED", "Name is required", ErrNameRequired)
	}
	existing, err := f.listRepo.ByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up pricing list: %w", err)
	}
	if existing != nil {
		return nil, NewBusinessError("PRICING_LIST_CREATE_FAILED", fmt.Sprintf("A pricing list named %q already exists", name), ErrDuplicateName)
	}

	list := &models.PricingList{
		Name:      name,
		CreatedAt: utils.UTCNow(),
	}
	if req.Comment != "" {
		list.Comment = utils.ToPtr(req.Comment)
	}
	if err := f.listRepo.Save(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to save pricing list: %w", err)
	}
	return f.toResponse(ctx, list)
}

// DuplicatePricingList clones a list and all its rate rows under a new name
func (f *PricingListFlowImpl) DuplicatePricingList(ctx context.Context, req *dto.DuplicatePricingListRequest) (*dto.PricingListResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewBusinessError("PRICING_LIST_DUPLICATE_FAILED", "Name is required", ErrNameRequired)
	}
	src, err := f.listRepo.ByID(ctx, req.SourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing list: %w", err)
	}
	if src == nil {
		return nil, NewBusinessError("PRICING_LIST_DUPLICATE_FAILED", "Pricing list not found", ErrPricingListNotFound)
	}
	existing, err := f.listRepo.ByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up pricing list: %w", err)
	}
	if existing != nil {
		return nil, NewBusinessError("PRICING_LIST_DUPLICATE_FAILED", fmt.Sprintf("A pricing list named %q already exists", name), ErrDuplicateName)
	}

	copy, err := f.listRepo.Duplicate(ctx, src.ID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate pricing list: %w", err)
	}
	return f.toResponse(ctx, copy)
}

// ListPricingLists returns every pricing list, newest first
func (f *PricingListFlowImpl) ListPricingLists(ctx context.Context) ([]dto.PricingListResponse, error) {
	lists, err := f.listRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing lists: %w", err)
	}
	out := make([]dto.PricingListResponse, 0, len(lists))
	for _, list := range lists {
		resp, err := f.toResponse(ctx, list)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// GetPricingList returns one pricing list
func (f *PricingListFlowImpl) GetPricingList(ctx context.Context, id uint) (*dto.PricingListResponse, error) {
	list, err := f.listRepo.ByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing list: %w", err)
	}
	if list == nil {
		return nil, NewBusinessError("PRICING_LIST_GET_FAILED", "Pricing list not found", ErrPricingListNotFound)
	}
	return f.toResponse(ctx, list)
}

// DeletePricingList removes a list together with its rate rows. Campaigns
// that referenced it keep their stored prices; only new resolutions fail.
func (f *PricingListFlowImpl) DeletePricingList(ctx context.Context, id uint) error {
	list, err := f.listRepo.ByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load pricing list: %w", err)
	}
	if list == nil {
		return NewBusinessError("PRICING_LIST_DELETE_FAILED", "Pricing list not found", ErrPricingListNotFound)
	}
	return f.listRepo.DeleteCascade(ctx, id)
}

// MigrateLegacyRates copies every legacy flat rate row into the given list,
// skipping scopes the list already prices. The legacy rows stay in place so
// older campaigns keep resolving against them.
func (f *PricingListFlowImpl) MigrateLegacyRates(ctx context.Context, listID uint) (*dto.MigrateLegacyRatesResponse, error) {
	list, err := f.listRepo.ByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing list: %w", err)
	}
	if list == nil {
		return nil, NewBusinessError("PRICING_LIST_MIGRATE_FAILED", "Pricing list not found", ErrPricingListNotFound)
	}
	legacy, err := f.rateRepo.ListLegacy(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list legacy rates: %w", err)
	}

	resp := &dto.MigrateLegacyRatesResponse{PricingListID: listID}
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		for _, src := range legacy {
			existing, err := f.rateRepo.ByScope(txCtx, &listID, src.ChannelGroupID, src.TargetGroup)
			if err != nil {
				return fmt.Errorf("failed to check list scope: %w", err)
			}
			if existing != nil {
				resp.Skipped++
				continue
			}
			entry := *src
			entry.ID = 0
			entry.PricingListID = &listID
			if err := f.rateRepo.Save(txCtx, &entry); err != nil {
				return fmt.Errorf("failed to copy rate for group %d: %w", src.ChannelGroupID, err)
			}
			resp.Migrated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (f *PricingListFlowImpl) toResponse(ctx context.Context, list *models.PricingList) (*dto.PricingListResponse, error) {
	entries, err := f.rateRepo.ListByList(ctx, list.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}
	resp := &dto.PricingListResponse{
		ID:         list.ID,
		Name:       list.Name,
		EntryCount: int64(len(entries)),
		CreatedAt:  list.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if list.Comment != nil {
		resp.Comment = *list.Comment
	}
	return resp, nil
}

package businessflow

import (
	"context"
	"fmt"
	"log"

	"github.com/bpnlt/tv-planner/app/dto"
	"github.com/bpnlt/tv-planner/models"
	"github.com/bpnlt/tv-planner/repository"
	"github.com/bpnlt/tv-planner/utils"
	"gorm.io/gorm"
)

// IndexFlow defines index resolution and index administration operations
type IndexFlow interface {
	ResolveDurationIndex(ctx context.Context, channelGroupID uint, clipDuration int) float64
	ResolveSeasonalIndex(ctx context.Context, channelGroupID uint, startDate, endDate string) float64

	UpsertDurationIndex(ctx context.Context, req *dto.UpsertDurationIndexRequest) (*dto.DurationIndexResponse, error)
	DeleteDurationIndex(ctx context.Context, channelGroupID uint, durationSeconds int) error
	ListDurationIndices(ctx context.Context) ([]dto.DurationIndexResponse, error)

	UpsertSeasonalIndex(ctx context.Context, req *dto.UpsertSeasonalIndexRequest) (*dto.SeasonalIndexResponse, error)
	ListSeasonalIndices(ctx context.Context) ([]dto.SeasonalIndexResponse, error)

	UpsertPositionIndex(ctx context.Context, req *dto.UpsertPositionIndexRequest) (*dto.PositionIndexResponse, error)
	ListPositionIndices(ctx context.Context) ([]dto.PositionIndexResponse, error)
}

// IndexFlowImpl implements IndexFlow
type IndexFlowImpl struct {
	indexRepo repository.IndexRepository
	groupRepo repository.ChannelGroupRepository
	db        *gorm.DB
}

// NewIndexFlow constructs an IndexFlow
func NewIndexFlow(indexRepo repository.IndexRepository, groupRepo repository.ChannelGroupRepository, db *gorm.DB) IndexFlow {
	return &IndexFlowImpl{indexRepo: indexRepo, groupRepo: groupRepo, db: db}
}

// ResolveDurationIndex returns the duration multiplier for a clip length.
// Resolution fails open: a missing row or a lookup error yields the neutral
// 1.0 so a line item can always be priced.
func (f *IndexFlowImpl) ResolveDurationIndex(ctx context.Context, channelGroupID uint, clipDuration int) float64 {
	if channelGroupID == 0 || clipDuration <= 0 {
		return 1.0
	}
	idx, err := f.indexRepo.DurationIndex(ctx, channelGroupID, clipDuration)
	if err != nil {
		log.Printf("duration index lookup failed for group %d duration %d: %v", channelGroupID, clipDuration, err)
		return 1.0
	}
	if idx == nil {
		return 1.0
	}
	return idx.Value
}

// ResolveSeasonalIndex returns the day-weighted seasonal multiplier over a
// date range. An empty end date resolves to the start month's index directly.
// Malformed or inverted dates resolve to neutral 1.0 and are logged rather
// than surfaced, matching the duration lookup.
func (f *IndexFlowImpl) ResolveSeasonalIndex(ctx context.Context, channelGroupID uint, startDate, endDate string) float64 {
	if channelGroupID == 0 {
		return 1.0
	}
	start, err := utils.ParseDate(startDate)
	if err != nil {
		log.Printf("seasonal index resolution skipped, bad start date %q: %v", startDate, err)
		return 1.0
	}
	if endDate == "" {
		idx, err := f.indexRepo.SeasonalIndex(ctx, channelGroupID, int(start.Month()))
		if err != nil {
			log.Printf("seasonal index lookup failed for group %d month %d: %v", channelGroupID, start.Month(), err)
			return 1.0
		}
		if idx == nil {
			return 1.0
		}
		return idx.Value
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		log.Printf("seasonal index resolution skipped, bad end date %q: %v", endDate, err)
		return 1.0
	}
	if end.Before(start) {
		log.Printf("seasonal index resolution skipped, end %s before start %s", endDate, startDate)
		return 1.0
	}
	byMonth, err := f.indexRepo.SeasonalIndicesByGroup(ctx, channelGroupID)
	if err != nil {
		log.Printf("seasonal index lookup failed for group %d: %v", channelGroupID, err)
		return 1.0
	}
	return WeightedSeasonalIndex(byMonth, start, end)
}

// UpsertDurationIndex creates or replaces the multiplier for one clip duration
func (f *IndexFlowImpl) UpsertDurationIndex(ctx context.Context, req *dto.UpsertDurationIndexRequest) (*dto.DurationIndexResponse, error) {
	if err := f.requireGroup(ctx, req.ChannelGroupID); err != nil {
		return nil, err
	}
	if req.Value < 0 {
		return nil, NewBusinessError("INDEX_UPSERT_FAILED", "Index value must not be negative", ErrIndexValueInvalid)
	}
	idx := &models.DurationIndex{
		ChannelGroupID:  req.ChannelGroupID,
		DurationSeconds: req.DurationSeconds,
		Value:           req.Value,
	}
	if err := f.indexRepo.UpsertDurationIndex(ctx, idx); err != nil {
		return nil, fmt.Errorf("failed to save duration index: %w", err)
	}
	return &dto.DurationIndexResponse{
		ID:              idx.ID,
		ChannelGroupID:  idx.ChannelGroupID,
		DurationSeconds: idx.DurationSeconds,
		Value:           idx.Value,
	}, nil
}

// DeleteDurationIndex removes the multiplier for one clip duration
func (f *IndexFlowImpl) DeleteDurationIndex(ctx context.Context, channelGroupID uint, durationSeconds int) error {
	if err := f.requireGroup(ctx, channelGroupID); err != nil {
		return err
	}
	return f.indexRepo.DeleteDurationIndex(ctx, channelGroupID, durationSeconds)
}

// ListDurationIndices returns all stored duration indices
func (f *IndexFlowImpl) ListDurationIndices(ctx context.Context) ([]dto.DurationIndexResponse, error) {
	rows, err := f.indexRepo.ListDurationIndices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list duration indices: %w", err)
	}
	out := make([]dto.DurationIndexResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.DurationIndexResponse{
			ID:              row.ID,
			ChannelGroupID:  row.ChannelGroupID,
			DurationSeconds: row.DurationSeconds,
			Value:           row.Value,
		})
	}
	return out, nil
}

// UpsertSeasonalIndex creates or replaces the multiplier for one calendar month
func (f *IndexFlowImpl) UpsertSeasonalIndex(ctx context.Context, req *dto.UpsertSeasonalIndexRequest) (*dto.SeasonalIndexResponse, error) {
	if err := f.requireGroup(ctx, req.ChannelGroupID); err != nil {
		return nil, err
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, NewBusinessError("INDEX_UPSERT_FAILED", "Month must be between 1 and 12", ErrMonthOutOfRange)
	}
	if req.Value < 0 {
		return nil, NewBusinessError("INDEX_UPSERT_FAILED", "Index value must not be negative", ErrIndexValueInvalid)
	}
	idx := &models.SeasonalIndex{
		ChannelGroupID: req.ChannelGroupID,
		Month:          req.Month,
		Value:          req.Value,
	}
	if err := f.indexRepo.UpsertSeasonalIndex(ctx, idx); err != nil {
		return nil, fmt.Errorf("failed to save seasonal index: %w", err)
	}
	return &dto.SeasonalIndexResponse{
		ID:             idx.ID,
		ChannelGroupID: idx.ChannelGroupID,
		Month:          idx.Month,
		Value:          idx.Value,
	}, nil
}

// ListSeasonalIndices returns all stored seasonal indices
func (f *IndexFlowImpl) ListSeasonalIndices(ctx context.Context) ([]dto.SeasonalIndexResponse, error) {
	rows, err := f.indexRepo.ListSeasonalIndices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasonal indices: %w", err)
	}
	out := make([]dto.SeasonalIndexResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.SeasonalIndexResponse{
			ID:             row.ID,
			ChannelGroupID: row.ChannelGroupID,
			Month:          row.Month,
			Value:          row.Value,
		})
	}
	return out, nil
}

// UpsertPositionIndex creates or replaces the multiplier for a break position
func (f *IndexFlowImpl) UpsertPositionIndex(ctx context.Context, req *dto.UpsertPositionIndexRequest) (*dto.PositionIndexResponse, error) {
	if err := f.requireGroup(ctx, req.ChannelGroupID); err != nil {
		return nil, err
	}
	if req.Value < 0 {
		return nil, NewBusinessError("INDEX_UPSERT_FAILED", "Index value must not be negative", ErrIndexValueInvalid)
	}
	idx := &models.PositionIndex{
		ChannelGroupID: req.ChannelGroupID,
		Position:       req.Position,
		Value:          req.Value,
	}
	if err := f.indexRepo.UpsertPositionIndex(ctx, idx); err != nil {
		return nil, fmt.Errorf("failed to save position index: %w", err)
	}
	return &dto.PositionIndexResponse{
		ID:             idx.ID,
		ChannelGroupID: idx.ChannelGroupID,
		Position:       idx.Position,
		Value:          idx.Value,
	}, nil
}

// ListPositionIndices returns all stored position indices
func (f *IndexFlowImpl) ListPositionIndices(ctx context.Context) ([]dto.PositionIndexResponse, error) {
	rows, err := f.indexRepo.ListPositionIndices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list position indices: %w", err)
	}
	out := make([]dto.PositionIndexResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.PositionIndexResponse{
			ID:             row.ID,
			ChannelGroupID: row.ChannelGroupID,
			Position:       row.Position,
			Value:          row.Value,
		})
	}
	return out, nil
}

func (f *IndexFlowImpl) requireGroup(ctx context.Context, groupID uint) error {
	group, err := f.groupRepo.ByID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to load channel group: %w", err)
	}
	if group == nil {
		return NewBusinessError("INDEX_UPSERT_FAILED", "Channel group not found", ErrChannelGroupNotFound)
	}
	return nil
}

// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bpnlt/tv-planner/models"
	"gorm.io/gorm"
)

type IndexRepositoryImpl struct {
	db *gorm.DB
}

func NewIndexRepository(db *gorm.DB) IndexRepository {
	return &IndexRepositoryImpl{db: db}
}

func (r *IndexRepositoryImpl) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db
}

func (r *IndexRepositoryImpl) DurationIndex(ctx context.Context, channelGroupID uint, durationSeconds int) (*models.DurationIndex, error) {
	db := r.getDB(ctx)
	var idx models.DurationIndex
	err := db.Where("channel_group_id = ? AND duration_seconds = ?", channelGroupID, durationSeconds).First(&idx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load duration index: %w", err)
	}
	return &idx, nil
}

func (r *IndexRepositoryImpl) ListDurationIndices(ctx context.Context) ([]*models.DurationIndex, error) {
	db := r.getDB(ctx)
	var indices []*models.DurationIndex
	err := db.Preload("ChannelGroup").
		Order("channel_group_id ASC, duration_seconds ASC").
		Find(&indices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list duration indices: %w", err)
	}
	return indices, nil
}

func (r *IndexRepositoryImpl) UpsertDurationIndex(ctx context.Context, idx *models.DurationIndex) error {
	db := r.getDB(ctx)
	existing, err := r.DurationIndex(ctx, idx.ChannelGroupID, idx.DurationSeconds)
	if err != nil {
		return err
	}
	if existing != nil {
		idx.ID = existing.ID
	}
	if err := db.Save(idx).Error; err != nil {
		return fmt.Errorf("failed to upsert duration index: %w", err)
	}
	return nil
}

func (r *IndexRepositoryImpl) DeleteDurationIndex(ctx context.Context, channelGroupID uint, durationSeconds int) error {
	db := r.getDB(ctx)
	err := db.Where("channel_group_id = ? AND duration_seconds = ?", channelGroupID, durationSeconds).
		Delete(&models.DurationIndex{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete duration index: %w", err)
	}
	return nil
}

func (r *IndexRepositoryImpl) SeasonalIndex(ctx context.Context, channelGroupID uint, month int) (*models.SeasonalIndex, error) {
	db := r.getDB(ctx)
	var idx models.SeasonalIndex
	err := db.Where("channel_group_id = ? AND month = ?", channelGroupID, month).First(&idx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load seasonal index: %w", err)
	}
	return &idx, nil
}

// SeasonalIndicesByGroup returns month -> value for one channel group.
// Months without a row are absent from the map.
func (r *IndexRepositoryImpl) SeasonalIndicesByGroup(ctx context.Context, channelGroupID uint) (map[int]float64, error) {
	db := r.getDB(ctx)
	var rows []*models.SeasonalIndex
	if err := db.Where("channel_group_id = ?", channelGroupID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load seasonal indices of group %d: %w", channelGroupID, err)
	}
	byMonth := make(map[int]float64, len(rows))
	for _, row := range rows {
		byMonth[row.Month] = row.Value
	}
	return byMonth, nil
}

func (r *IndexRepositoryImpl) ListSeasonalIndices(ctx context.Context) ([]*models.SeasonalIndex, error) {
	db := r.getDB(ctx)
	var indices []*models.SeasonalIndex
	err := db.Preload("ChannelGroup").
		Order("channel_group_id ASC, month ASC").
		Find(&indices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list seasonal indices: %w", err)
	}
	return indices, nil
}

func (r *IndexRepositoryImpl) UpsertSeasonalIndex(ctx context.Context, idx *models.SeasonalIndex) error {
	db := r.getDB(ctx)
	existing, err := r.SeasonalIndex(ctx, idx.ChannelGroupID, idx.Month)
	if err != nil {
		return err
	}
	if existing != nil {
		idx.ID = existing.ID
	}
	if err := db.Save(idx).Error; err != nil {
		return fmt.Errorf("failed to upsert seasonal index: %w", err)
	}
	return nil
}

func (r *IndexRepositoryImpl) PositionIndex(ctx context.Context, channelGroupID uint, position string) (*models.PositionIndex, error) {
	db := r.getDB(ctx)
	var idx models.PositionIndex
	err := db.Where("channel_group_id = ? AND position = ?", channelGroupID, position).First(&idx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load position index: %w", err)
	}
	return &idx, nil
}

func (r *IndexRepositoryImpl) UpsertPositionIndex(ctx context.Context, idx *models.PositionIndex) error {
	db := r.getDB(ctx)
	existing, err := r.PositionIndex(ctx, idx.ChannelGroupID, idx.Position)
	if err != nil {
		return err
	}
	if existing != nil {
		idx.ID = existing.ID
	}
	if err := db.Save(idx).Error; err != nil {
		return fmt.Errorf("failed to upsert position index: %w", err)
	}
	return nil
}

func (r *IndexRepositoryImpl) ListPositionIndices(ctx context.Context) ([]*models.PositionIndex, error) {
	db := r.getDB(ctx)
	var indices []*models.PositionIndex
	err := db.Preload("ChannelGroup").
		Order("channel_group_id ASC, position ASC").
		Find(&indices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list position indices: %w", err)
	}
	return indices, nil
}

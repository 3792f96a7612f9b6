// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/bpnlt/tv-planner/models"
	"gorm.io/gorm"
)

type WaveRepositoryImpl struct {
	*BaseRepository[models.Wave, models.WaveFilter]
}

func NewWaveRepository(db *gorm.DB) WaveRepository {
	return &WaveRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Wave, models.WaveFilter](db),
	}
}

func (r *WaveRepositoryImpl) ListByCampaign(ctx context.Context, campaignID uint) ([]*models.Wave, error) {
	db := r.getDB(ctx)
	var waves []*models.Wave
	err := db.Where("campaign_id = ?", campaignID).Order("start_date ASC, id ASC").Find(&waves).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list waves of campaign %d: %w", campaignID, err)
	}
	return waves, nil
}

// DeleteCascade removes a wave with its items and wave-scoped discounts.
func (r *WaveRepositoryImpl) DeleteCascade(ctx context.Context, waveID uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}
	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	if err = db.Where("wave_id = ?", waveID).Delete(&models.WaveItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete items of wave %d: %w", waveID, err)
	}
	if err = db.Where("wave_id = ?", waveID).Delete(&models.Discount{}).Error; err != nil {
		return fmt.Errorf("failed to delete discounts of wave %d: %w", waveID, err)
	}
	if err = db.Delete(&models.Wave{}, waveID).Error; err != nil {
		return fmt.Errorf("failed to delete wave %d: %w", waveID, err)
	}
	return nil
}

// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/bpnlt/tv-planner/models"
	"gorm.io/gorm"
)

type TVCRepositoryImpl struct {
	*BaseRepository[models.TVC, models.TVCFilter]
}

func NewTVCRepository(db *gorm.DB) TVCRepository {
	return &TVCRepositoryImpl{
		BaseRepository: NewBaseRepository[models.TVC, models.TVCFilter](db),
	}
}

func (r *TVCRepositoryImpl) ListByCampaign(ctx context.Context, campaignID uint) ([]*models.TVC, error) {
	db := r.getDB(ctx)
	var tvcs []*models.TVC
	err := db.Where("campaign_id = ?", campaignID).Order("id ASC").Find(&tvcs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list TVCs of campaign %d: %w", campaignID, err)
	}
	return tvcs, nil
}

// DeleteAndClearRefs deletes a spot and nulls wave-item references to it in
// one transaction. Items keep their clip_duration; only the link is dropped.
func (r *TVCRepositoryImpl) DeleteAndClearRefs(ctx context.Context, tvcID uint) error {
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

	if err = db.Model(&models.WaveItem{}).Where("tvc_id = ?", tvcID).Update("tvc_id", nil).Error; err != nil {
		return fmt.Errorf("failed to clear wave item refs of tvc %d: %w", tvcID, err)
	}
	if err = db.Delete(&models.TVC{}, tvcID).Error; err != nil {
		return fmt.Errorf("failed to delete tvc %d: %w", tvcID, err)
	}
	return nil
}

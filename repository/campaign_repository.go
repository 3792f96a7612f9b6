// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bpnlt/tv-planner/models"
	"gorm.io/gorm"
)

type CampaignRepositoryImpl struct {
	*BaseRepository[models.Campaign, models.CampaignFilter]
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &CampaignRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Campaign, models.CampaignFilter](db),
	}
}

func (r *CampaignRepositoryImpl) ByUUID(ctx context.Context, uuid string) (*models.Campaign, error) {
	db := r.getDB(ctx)
	var campaign models.Campaign
	if err := db.Where("uuid = ?", uuid).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

func (r *CampaignRepositoryImpl) List(ctx context.Context) ([]*models.Campaign, error) {
	db := r.getDB(ctx)
	var campaigns []*models.Campaign
	if err := db.Preload("PricingList").Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// ListInRange returns campaigns whose date range overlaps [from, to].
// Campaigns without dates are skipped; they cannot appear on a calendar.
func (r *CampaignRepositoryImpl) ListInRange(ctx context.Context, from, to time.Time) ([]*models.Campaign, error) {
	db := r.getDB(ctx)
	var campaigns []*models.Campaign
	err := db.Where("start_date IS NOT NULL AND end_date IS NOT NULL").
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("start_date ASC").
		Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns in range: %w", err)
	}
	return campaigns, nil
}

// DeleteCascade removes a campaign and everything it owns: waves, wave items,
// discounts (campaign- and wave-scoped) and TVCs. Executed explicitly in one
// transaction so the semantics do not depend on the database's FK behavior.
func (r *CampaignRepositoryImpl) DeleteCascade(ctx context.Context, campaignID uint) error {
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

	var waveIDs []uint
	if err = db.Model(&models.Wave{}).Where("campaign_id = ?", campaignID).Pluck("id", &waveIDs).Error; err != nil {
		return fmt.Errorf("failed to collect waves of campaign %d: %w", campaignID, err)
	}

	if len(waveIDs) > 0 {
		if err = db.Where("wave_id IN ?", waveIDs).Delete(&models.WaveItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete wave items of campaign %d: %w", campaignID, err)
		}
		if err = db.Where("wave_id IN ?", waveIDs).Delete(&models.Discount{}).Error; err != nil {
			return fmt.Errorf("failed to delete wave discounts of campaign %d: %w", campaignID, err)
		}
	}
	if err = db.Where("campaign_id = ?", campaignID).Delete(&models.Discount{}).Error; err != nil {
		return fmt.Errorf("failed to delete campaign discounts of campaign %d: %w", campaignID, err)
	}
	if err = db.Where("campaign_id = ?", campaignID).Delete(&models.TVC{}).Error; err != nil {
		return fmt.Errorf("failed to delete TVCs of campaign %d: %w", campaignID, err)
	}
	if err = db.Where("campaign_id = ?", campaignID).Delete(&models.Wave{}).Error; err != nil {
		return fmt.Errorf("failed to delete waves of campaign %d: %w", campaignID, err)
	}
	if err = db.Delete(&models.Campaign{}, campaignID).Error; err != nil {
		return fmt.Errorf("failed to delete campaign %d: %w", campaignID, err)
	}
	return nil
}

// SaveTRPPlan stores the per-day TRP distribution without touching other fields.
func (r *CampaignRepositoryImpl) SaveTRPPlan(ctx context.Context, campaignID uint, plan models.TRPDistribution) error {
	db := r.getDB(ctx)
	err := db.Model(&models.Campaign{}).Where("id = ?", campaignID).Update("trp_plan", plan).Error
	if err != nil {
		return fmt.Errorf("failed to save TRP plan of campaign %d: %w", campaignID, err)
	}
	return nil
}

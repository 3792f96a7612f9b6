// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/bpnlt/tv-planner/models"
	"gorm.io/gorm"
)

type DiscountRepositoryImpl struct {
	*BaseRepository[models.Discount, models.DiscountFilter]
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &DiscountRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Discount, models.DiscountFilter](db),
	}
}

func (r *DiscountRepositoryImpl) ListByWave(ctx context.Context, waveID uint) ([]*models.Discount, error) {
	db := r.getDB(ctx)
	var discounts []*models.Discount
	err := db.Where("wave_id = ?", waveID).Order("id ASC").Find(&discounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts of wave %d: %w", waveID, err)
	}
	return discounts, nil
}

func (r *DiscountRepositoryImpl) ListByCampaign(ctx context.Context, campaignID uint) ([]*models.Discount, error) {
	db := r.getDB(ctx)
	var discounts []*models.Discount
	err := db.Where("campaign_id = ?", campaignID).Order("id ASC").Find(&discounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts of campaign %d: %w", campaignID, err)
	}
	return discounts, nil
}

// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bpnlt/tv-planner/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WaveItemRepositoryImpl struct {
	*BaseRepository[models.WaveItem, models.WaveItemFilter]
}

func NewWaveItemRepository(db *gorm.DB) WaveItemRepository {
	return &WaveItemRepositoryImpl{
		BaseRepository: NewBaseRepository[models.WaveItem, models.WaveItemFilter](db),
	}
}

func (r *WaveItemRepositoryImpl) ListByWave(ctx context.Context, waveID uint) ([]*models.WaveItem, error) {
	db := r.getDB(ctx)
	var items []*models.WaveItem
	err := db.Preload("ChannelGroup").Preload("TVC").
		Where("wave_id = ?", waveID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items of wave %d: %w", waveID, err)
	}
	return items, nil
}

// ByIDForUpdate loads an item holding a row lock for the enclosing
// transaction. SQLite has no FOR UPDATE; its transactions already serialize
// writers.
func (r *WaveItemRepositoryImpl) ByIDForUpdate(ctx context.Context, id uint) (*models.WaveItem, error) {
	db := r.getDB(ctx)
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var item models.WaveItem
	if err := db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find wave item %d: %w", id, err)
	}
	return &item, nil
}

// ClearTVCRefs nulls the TVC reference on every item pointing at the spot.
func (r *WaveItemRepositoryImpl) ClearTVCRefs(ctx context.Context, tvcID uint) error {
	db := r.getDB(ctx)
	err := db.Model(&models.WaveItem{}).Where("tvc_id = ?", tvcID).Update("tvc_id", nil).Error
	if err != nil {
		return fmt.Errorf("failed to clear TVC refs for tvc %d: %w", tvcID, err)
	}
	return nil
}

// UpdatePrices writes the discount-derived price fields of one item without
// touching its stored gross price or raw inputs.
func (r *WaveItemRepositoryImpl) UpdatePrices(ctx context.Context, itemID uint, netPrice, netNetPrice, clientDiscount, agencyDiscount float64) error {
	db := r.getDB(ctx)
	err := db.Model(&models.WaveItem{}).Where("id = ?", itemID).Updates(map[string]any{
		"net_price":       netPrice,
		"net_net_price":   netNetPrice,
		"client_discount": clientDiscount,
		"agency_discount": agencyDiscount,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update prices of item %d: %w", itemID, err)
	}
	return nil
}

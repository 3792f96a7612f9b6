// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bpnlt/tv-planner/models"
	"gorm.io/gorm"
)

type RateCardRepositoryImpl struct {
	*BaseRepository[models.RateCardEntry, models.RateCardEntryFilter]
}

func NewRateCardRepository(db *gorm.DB) RateCardRepository {
	return &RateCardRepositoryImpl{
		BaseRepository: NewBaseRepository[models.RateCardEntry, models.RateCardEntryFilter](db),
	}
}

// ByScope looks up the unique entry for a (list, channel group, target group)
// triple. A nil pricingListID addresses the legacy flat rate table.
func (r *RateCardRepositoryImpl) ByScope(ctx context.Context, pricingListID *uint, channelGroupID uint, targetGroup string) (*models.RateCardEntry, error) {
	db := r.getDB(ctx)
	query := db.Where("channel_group_id = ? AND target_group = ?", channelGroupID, targetGroup)
	if pricingListID != nil {
		query = query.Where("pricing_list_id = ?", *pricingListID)
	} else {
		query = query.Where("pricing_list_id IS NULL")
	}
	var entry models.RateCardEntry
	if err := query.First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve rate card entry: %w", err)
	}
	return &entry, nil
}

func (r *RateCardRepositoryImpl) ListByList(ctx context.Context, pricingListID uint) ([]*models.RateCardEntry, error) {
	db := r.getDB(ctx)
	var entries []*models.RateCardEntry
	err := db.Preload("ChannelGroup").
		Where("pricing_list_id = ?", pricingListID).
		Order("channel_group_id ASC, target_group ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entries of pricing list %d: %w", pricingListID, err)
	}
	return entries, nil
}

func (r *RateCardRepositoryImpl) ListLegacy(ctx context.Context, channelGroupID *uint) ([]*models.RateCardEntry, error) {
	db := r.getDB(ctx)
	query := db.Preload("ChannelGroup").Where("pricing_list_id IS NULL")
	if channelGroupID != nil {
		query = query.Where("channel_group_id = ?", *channelGroupID)
	}
	var entries []*models.RateCardEntry
	if err := query.Order("channel_group_id ASC, target_group ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list legacy rates: %w", err)
	}
	return entries, nil
}

// UpsertLegacy inserts a legacy flat-table entry, replacing the values of an
// existing row with the same (channel group, target group) key.
func (r *RateCardRepositoryImpl) UpsertLegacy(ctx context.Context, entry *models.RateCardEntry) error {
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

	entry.PricingListID = nil

	var existing models.RateCardEntry
	lookupErr := db.Where("pricing_list_id IS NULL AND channel_group_id = ? AND target_group = ?",
		entry.ChannelGroupID, entry.TargetGroup).First(&existing).Error
	switch {
	case lookupErr == nil:
		entry.ID = existing.ID
		err = db.Save(entry).Error
	case errors.Is(lookupErr, gorm.ErrRecordNotFound):
		err = db.Create(entry).Error
	default:
		err = lookupErr
	}
	if err != nil {
		return fmt.Errorf("failed to upsert legacy rate: %w", err)
	}
	return nil
}

// ListOwnerIDs returns the distinct channel groups priced by a list.
func (r *RateCardRepositoryImpl) ListOwnerIDs(ctx context.Context, pricingListID uint) ([]uint, error) {
	db := r.getDB(ctx)
	var ids []uint
	err := db.Model(&models.RateCardEntry{}).
		Where("pricing_list_id = ?", pricingListID).
		Distinct("channel_group_id").
		Order("channel_group_id ASC").
		Pluck("channel_group_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list owners of pricing list %d: %w", pricingListID, err)
	}
	return ids, nil
}

// ListTargetGroups returns the target groups a list prices for one owner.
func (r *RateCardRepositoryImpl) ListTargetGroups(ctx context.Context, pricingListID uint, channelGroupID uint) ([]string, error) {
	db := r.getDB(ctx)
	var targets []string
	err := db.Model(&models.RateCardEntry{}).
		Where("pricing_list_id = ? AND channel_group_id = ?", pricingListID, channelGroupID).
		Order("target_group ASC").
		Pluck("target_group", &targets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list target groups: %w", err)
	}
	return targets, nil
}

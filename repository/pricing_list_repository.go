// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bpnlt/tv-planner/models"
	"gorm.io/gorm"
)

type PricingListRepositoryImpl struct {
	*BaseRepository[models.PricingList, models.PricingListFilter]
}

func NewPricingListRepository(db *gorm.DB) PricingListRepository {
	return &PricingListRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PricingList, models.PricingListFilter](db),
	}
}

func (r *PricingListRepositoryImpl) ByName(ctx context.Context, name string) (*models.PricingList, error) {
	db := r.getDB(ctx)
	var list models.PricingList
	if err := db.Where("name = ?", name).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

func (r *PricingListRepositoryImpl) List(ctx context.Context) ([]*models.PricingList, error) {
	db := r.getDB(ctx)
	var lists []*models.PricingList
	if err := db.Order("created_at DESC").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to list pricing lists: %w", err)
	}
	return lists, nil
}

// Duplicate creates a new list under newName and copies every entry of the
// source list into it, in one transaction.
func (r *PricingListRepositoryImpl) Duplicate(ctx context.Context, srcListID uint, newName string) (*models.PricingList, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return nil, err
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

	newList := &models.PricingList{Name: newName}
	if err = db.Create(newList).Error; err != nil {
		return nil, fmt.Errorf("failed to create duplicate list %q: %w", newName, err)
	}

	var entries []models.RateCardEntry
	if err = db.Where("pricing_list_id = ?", srcListID).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load entries of list %d: %w", srcListID, err)
	}
	for i := range entries {
		entries[i].ID = 0
		entries[i].PricingListID = &newList.ID
	}
	if len(entries) > 0 {
		if err = db.CreateInBatches(entries, 100).Error; err != nil {
			return nil, fmt.Errorf("failed to copy entries into list %d: %w", newList.ID, err)
		}
	}
	return newList, nil
}

// DeleteCascade removes a list together with its rate-card entries.
func (r *PricingListRepositoryImpl) DeleteCascade(ctx context.Context, listID uint) error {
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

	if err = db.Where("pricing_list_id = ?", listID).Delete(&models.RateCardEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete entries of list %d: %w", listID, err)
	}
	if err = db.Delete(&models.PricingList{}, listID).Error; err != nil {
		return fmt.Errorf("failed to delete pricing list %d: %w", listID, err)
	}
	return nil
}

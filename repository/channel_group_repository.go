// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bpnlt/tv-planner/models"
	"gorm.io/gorm"
)

type ChannelGroupRepositoryImpl struct {
	*BaseRepository[models.ChannelGroup, models.ChannelFilter]
}

func NewChannelGroupRepository(db *gorm.DB) ChannelGroupRepository {
	return &ChannelGroupRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ChannelGroup, models.ChannelFilter](db),
	}
}

func (r *ChannelGroupRepositoryImpl) ByName(ctx context.Context, name string) (*models.ChannelGroup, error) {
	db := r.getDB(ctx)
	var group models.ChannelGroup
	if err := db.Where("name = ?", name).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// Upsert returns the existing group with the given name, creating it when absent.
func (r *ChannelGroupRepositoryImpl) Upsert(ctx context.Context, name string) (*models.ChannelGroup, error) {
	existing, err := r.ByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	group := &models.ChannelGroup{Name: name}
	if err := r.Save(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (r *ChannelGroupRepositoryImpl) List(ctx context.Context) ([]*models.ChannelGroup, error) {
	db := r.getDB(ctx)
	var groups []*models.ChannelGroup
	if err := db.Order("name ASC").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list channel groups: %w", err)
	}
	return groups, nil
}

// DeleteCascade removes a group together with its channels, rate card rows
// and indices in one transaction.
func (r *ChannelGroupRepositoryImpl) DeleteCascade(ctx context.Context, groupID uint) error {
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

	if err = db.Where("channel_group_id = ?", groupID).Delete(&models.Channel{}).Error; err != nil {
		return fmt.Errorf("failed to delete channels of group %d: %w", groupID, err)
	}
	if err = db.Where("channel_group_id = ?", groupID).Delete(&models.RateCardEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete rates of group %d: %w", groupID, err)
	}
	if err = db.Where("channel_group_id = ?", groupID).Delete(&models.DurationIndex{}).Error; err != nil {
		return fmt.Errorf("failed to delete duration indices of group %d: %w", groupID, err)
	}
	if err = db.Where("channel_group_id = ?", groupID).Delete(&models.SeasonalIndex{}).Error; err != nil {
		return fmt.Errorf("failed to delete seasonal indices of group %d: %w", groupID, err)
	}
	if err = db.Where("channel_group_id = ?", groupID).Delete(&models.PositionIndex{}).Error; err != nil {
		return fmt.Errorf("failed to delete position indices of group %d: %w", groupID, err)
	}
	if err = db.Delete(&models.ChannelGroup{}, groupID).Error; err != nil {
		return fmt.Errorf("failed to delete channel group %d: %w", groupID, err)
	}
	return nil
}

func (r *ChannelGroupRepositoryImpl) SaveChannel(ctx context.Context, channel *models.Channel) error {
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
	if err = db.Create(channel).Error; err != nil {
		return fmt.Errorf("failed to save channel: %w", err)
	}
	return nil
}

func (r *ChannelGroupRepositoryImpl) UpdateChannel(ctx context.Context, channel *models.Channel) error {
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
	if err = db.Save(channel).Error; err != nil {
		return fmt.Errorf("failed to update channel %d: %w", channel.ID, err)
	}
	return nil
}

func (r *ChannelGroupRepositoryImpl) DeleteChannel(ctx context.Context, channelID uint) error {
	db := r.getDB(ctx)
	if err := db.Delete(&models.Channel{}, channelID).Error; err != nil {
		return fmt.Errorf("failed to delete channel %d: %w", channelID, err)
	}
	return nil
}

func (r *ChannelGroupRepositoryImpl) ChannelByID(ctx context.Context, channelID uint) (*models.Channel, error) {
	db := r.getDB(ctx)
	var channel models.Channel
	if err := db.First(&channel, channelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &channel, nil
}

// ListChannels returns channels of one group, or of all groups when groupID
// is nil. Big channels sort before small ones, then by name.
func (r *ChannelGroupRepositoryImpl) ListChannels(ctx context.Context, groupID *uint) ([]*models.Channel, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Channel{}).Preload("ChannelGroup")
	if groupID != nil {
		query = query.Where("channel_group_id = ?", *groupID)
	}
	var channels []*models.Channel
	if err := query.Order("channel_group_id ASC, size ASC, name ASC").Find(&channels).Error; err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}

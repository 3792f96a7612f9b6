// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/bpnlt/tv-planner/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Update(ctx context.Context, entity *T) error
	DeleteByID(ctx context.Context, id uint) error
}

// ChannelGroupRepository defines operations for channel groups and their channels
type ChannelGroupRepository interface {
	Repository[models.ChannelGroup, models.ChannelFilter]
	ByName(ctx context.Context, name string) (*models.ChannelGroup, error)
	Upsert(ctx context.Context, name string) (*models.ChannelGroup, error)
	List(ctx context.Context) ([]*models.ChannelGroup, error)
	DeleteCascade(ctx context.Context, groupID uint) error

	SaveChannel(ctx context.Context, channel *models.Channel) error
	UpdateChannel(ctx context.Context, channel *models.Channel) error
	DeleteChannel(ctx context.Context, channelID uint) error
	ChannelByID(ctx context.Context, channelID uint) (*models.Channel, error)
	ListChannels(ctx context.Context, groupID *uint) ([]*models.Channel, error)
}

// PricingListRepository defines operations for pricing lists
type PricingListRepository interface {
	Repository[models.PricingList, models.PricingListFilter]
	ByName(ctx context.Context, name string) (*models.PricingList, error)
	List(ctx context.Context) ([]*models.PricingList, error)
	Duplicate(ctx context.Context, srcListID uint, newName string) (*models.PricingList, error)
	DeleteCascade(ctx context.Context, listID uint) error
}

// RateCardRepository defines operations for rate-card entries, covering both
// list-scoped entries and the legacy flat rate table (nil list scope)
type RateCardRepository interface {
	Repository[models.RateCardEntry, models.RateCardEntryFilter]
	ByScope(ctx context.Context, pricingListID *uint, channelGroupID uint, targetGroup string) (*models.RateCardEntry, error)
	ListByList(ctx context.Context, pricingListID uint) ([]*models.RateCardEntry, error)
	ListLegacy(ctx context.Context, channelGroupID *uint) ([]*models.RateCardEntry, error)
	UpsertLegacy(ctx context.Context, entry *models.RateCardEntry) error
	ListOwnerIDs(ctx context.Context, pricingListID uint) ([]uint, error)
	ListTargetGroups(ctx context.Context, pricingListID uint, channelGroupID uint) ([]string, error)
}

// IndexRepository defines operations for duration, seasonal and position indices
type IndexRepository interface {
	DurationIndex(ctx context.Context, channelGroupID uint, durationSeconds int) (*models.DurationIndex, error)
	ListDurationIndices(ctx context.Context) ([]*models.DurationIndex, error)
	UpsertDurationIndex(ctx context.Context, idx *models.DurationIndex) error
	DeleteDurationIndex(ctx context.Context, channelGroupID uint, durationSeconds int) error

	SeasonalIndex(ctx context.Context, channelGroupID uint, month int) (*models.SeasonalIndex, error)
	SeasonalIndicesByGroup(ctx context.Context, channelGroupID uint) (map[int]float64, error)
	ListSeasonalIndices(ctx context.Context) ([]*models.SeasonalIndex, error)
	UpsertSeasonalIndex(ctx context.Context, idx *models.SeasonalIndex) error

	PositionIndex(ctx context.Context, channelGroupID uint, position string) (*models.PositionIndex, error)
	UpsertPositionIndex(ctx context.Context, idx *models.PositionIndex) error
	ListPositionIndices(ctx context.Context) ([]*models.PositionIndex, error)
}

// CampaignRepository defines operations for campaigns
type CampaignRepository interface {
	Repository[models.Campaign, models.CampaignFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Campaign, error)
	List(ctx context.Context) ([]*models.Campaign, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]*models.Campaign, error)
	DeleteCascade(ctx context.Context, campaignID uint) error
	SaveTRPPlan(ctx context.Context, campaignID uint, plan models.TRPDistribution) error
}

// WaveRepository defines operations for waves
type WaveRepository interface {
	Repository[models.Wave, models.WaveFilter]
	ListByCampaign(ctx context.Context, campaignID uint) ([]*models.Wave, error)
	DeleteCascade(ctx context.Context, waveID uint) error
}

// WaveItemRepository defines operations for wave items
type WaveItemRepository interface {
	Repository[models.WaveItem, models.WaveItemFilter]
	ByIDForUpdate(ctx context.Context, id uint) (*models.WaveItem, error)
	ListByWave(ctx context.Context, waveID uint) ([]*models.WaveItem, error)
	ClearTVCRefs(ctx context.Context, tvcID uint) error
	UpdatePrices(ctx context.Context, itemID uint, netPrice, netNetPrice, clientDiscount, agencyDiscount float64) error
}

// DiscountRepository defines operations for discounts
type DiscountRepository interface {
	Repository[models.Discount, models.DiscountFilter]
	ListByWave(ctx context.Context, waveID uint) ([]*models.Discount, error)
	ListByCampaign(ctx context.Context, campaignID uint) ([]*models.Discount, error)
}

// TVCRepository defines operations for commercial spots
type TVCRepository interface {
	Repository[models.TVC, models.TVCFilter]
	ListByCampaign(ctx context.Context, campaignID uint) ([]*models.TVC, error)
	DeleteAndClearRefs(ctx context.Context, tvcID uint) error
}

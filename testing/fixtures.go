// Package testing provides test utilities and database setup for testing the planner
package testing

import (
	"fmt"
	"time"

	"github.com/bpnlt/tv-planner/models"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateChannelGroup creates a channel group with one big and one small channel
func (tf *TestFixtures) CreateChannelGroup(name string) (*models.ChannelGroup, error) {
	group := &models.ChannelGroup{Name: name}
	if err := tf.DB.DB.Create(group).Error; err != nil {
		return nil, fmt.Errorf("failed to create channel group: %w", err)
	}
	channels := []models.Channel{
		{ChannelGroupID: group.ID, Name: name + " HD", Size: models.ChannelSizeBig},
		{ChannelGroupID: group.ID, Name: name + " Plus", Size: models.ChannelSizeSmall},
	}
	if err := tf.DB.DB.Create(&channels).Error; err != nil {
		return nil, fmt.Errorf("failed to create channels: %w", err)
	}
	group.Channels = channels
	return group, nil
}

// CreatePricingList creates a pricing list
func (tf *TestFixtures) CreatePricingList(name string) (*models.PricingList, error) {
	list := &models.PricingList{Name: name}
	if err := tf.DB.DB.Create(list).Error; err != nil {
		return nil, fmt.Errorf("failed to create pricing list: %w", err)
	}
	return list, nil
}

// CreateRate creates a rate card entry. A nil listID puts the row in the
// legacy per-group table.
func (tf *TestFixtures) CreateRate(listID *uint, groupID uint, targetGroup string, pricePerSec float64) (*models.RateCardEntry, error) {
	entry := &models.RateCardEntry{
		PricingListID:  listID,
		ChannelGroupID: groupID,
		TargetGroup:    targetGroup,
		PrimaryLabel:   targetGroup,
		PricePerSec:    pricePerSec,
		ChannelShare:   0.35,
		PTZoneShare:    0.6,
	}
	if err := tf.DB.DB.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create rate entry: %w", err)
	}
	return entry, nil
}

// CreateDurationIndex creates a duration index row
func (tf *TestFixtures) CreateDurationIndex(groupID uint, seconds int, value float64) (*models.DurationIndex, error) {
	idx := &models.DurationIndex{ChannelGroupID: groupID, DurationSeconds: seconds, Value: value}
	if err := tf.DB.DB.Create(idx).Error; err != nil {
		return nil, fmt.Errorf("failed to create duration index: %w", err)
	}
	return idx, nil
}

// CreateSeasonalIndex creates a seasonal index row
func (tf *TestFixtures) CreateSeasonalIndex(groupID uint, month int, value float64) (*models.SeasonalIndex, error) {
	idx := &models.SeasonalIndex{ChannelGroupID: groupID, Month: month, Value: value}
	if err := tf.DB.DB.Create(idx).Error; err != nil {
		return nil, fmt.Errorf("failed to create seasonal index: %w", err)
	}
	return idx, nil
}

// CreateCampaign creates a draft campaign over the given date range
func (tf *TestFixtures) CreateCampaign(name string, listID *uint, start, end time.Time) (*models.Campaign, error) {
	campaign := &models.Campaign{
		Name:          name,
		PricingListID: listID,
		StartDate:     &start,
		EndDate:       &end,
	}
	if err := tf.DB.DB.Create(campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

// CreateWave creates a wave inside a campaign
func (tf *TestFixtures) CreateWave(campaignID uint, name string, start, end time.Time) (*models.Wave, error) {
	wave := &models.Wave{
		CampaignID: campaignID,
		Name:       name,
		StartDate:  &start,
		EndDate:    &end,
	}
	if err := tf.DB.DB.Create(wave).Error; err != nil {
		return nil, fmt.Errorf("failed to create wave: %w", err)
	}
	return wave, nil
}

// CreateTVC creates a commercial spot for a campaign
func (tf *TestFixtures) CreateTVC(campaignID uint, name string, durationSeconds int) (*models.TVC, error) {
	tvc := &models.TVC{CampaignID: campaignID, Name: name, DurationSeconds: durationSeconds}
	if err := tf.DB.DB.Create(tvc).Error; err != nil {
		return nil, fmt.Errorf("failed to create tvc: %w", err)
	}
	return tvc, nil
}

// CreateWaveItem creates a priced line item with neutral indices
func (tf *TestFixtures) CreateWaveItem(waveID, groupID uint, targetGroup string, trps float64, clipDuration int, grossCPP float64) (*models.WaveItem, error) {
	gross := trps * grossCPP * float64(clipDuration)
	item := &models.WaveItem{
		WaveID:               waveID,
		ChannelGroupID:       groupID,
		TargetGroup:          targetGroup,
		TRPs:                 trps,
		ClipDuration:         clipDuration,
		DurationIndex:        1.0,
		SeasonalIndex:        1.0,
		TRPPurchaseIndex:     1.0,
		AdvancePurchaseIndex: 1.0,
		PositionIndex:        1.0,
		WebIndex:             1.0,
		AdvancePaymentIndex:  1.0,
		LoyaltyDiscountIndex: 1.0,
		GrossCPP:             grossCPP,
		GrossPrice:           gross,
		NetPrice:             gross,
		NetNetPrice:          gross,
	}
	if err := tf.DB.DB.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create wave item: %w", err)
	}
	return item, nil
}

// CreateDiscount creates a discount scoped to a campaign or a wave
func (tf *TestFixtures) CreateDiscount(campaignID, waveID *uint, dtype models.DiscountType, percent float64) (*models.Discount, error) {
	discount := &models.Discount{
		CampaignID: campaignID,
		WaveID:     waveID,
		Type:       dtype,
		Percentage: percent,
	}
	if err := tf.DB.DB.Create(discount).Error; err != nil {
		return nil, fmt.Errorf("failed to create discount: %w", err)
	}
	return discount, nil
}

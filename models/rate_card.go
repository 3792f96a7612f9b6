package models

import "time"

// RateCardEntry is a price row for a (pricing list, channel group, target
// group) triple. Entries with a nil PricingListID form the legacy flat rate
// table keyed by (channel group, target group) alone; that table is the
// fallback for campaigns without an attached pricing list.
//
// Shares are stored as entered by administrators (0-1 fractions or 0-100
// percentages from imported sheets); pricing only consumes PricePerSec.
type RateCardEntry struct {
	ID             uint  `gorm:"primaryKey" json:"id"`
	PricingListID  *uint `gorm:"index:idx_rate_cards_list_id;uniqueIndex:uk_rate_cards_scope" json:"pricing_list_id,omitempty"`
	ChannelGroupID uint  `gorm:"not null;index:idx_rate_cards_group_id;uniqueIndex:uk_rate_cards_scope" json:"channel_group_id"`

	TargetGroup    string `gorm:"size:255;not null;uniqueIndex:uk_rate_cards_scope" json:"target_group"`
	PrimaryLabel   string `gorm:"size:255;not null" json:"primary_label"`
	SecondaryLabel string `gorm:"size:255" json:"secondary_label,omitempty"`

	SalesShare   float64 `json:"sales_share"`
	ChannelShare float64 `json:"channel_share"`
	PTZoneShare  float64 `json:"pt_zone_share"`
	NPTZoneShare float64 `json:"npt_zone_share"`

	// PricePerSec is the cost-per-point per second of clip, in EUR.
	PricePerSec float64 `gorm:"not null" json:"price_per_sec"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP)" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	PricingList  *PricingList  `gorm:"foreignKey:PricingListID;references:ID" json:"pricing_list,omitempty"`
	ChannelGroup *ChannelGroup `gorm:"foreignKey:ChannelGroupID;references:ID" json:"channel_group,omitempty"`
}

// TableName returns the table name for the model
func (RateCardEntry) TableName() string {
	return "rate_cards"
}

// IsLegacy reports whether the entry belongs to the legacy flat rate table.
func (r *RateCardEntry) IsLegacy() bool {
	return r.PricingListID == nil
}

// RateCardEntryFilter represents filter criteria for rate card queries
type RateCardEntryFilter struct {
	ID             *uint   `json:"id,omitempty"`
	PricingListID  *uint   `json:"pricing_list_id,omitempty"`
	ChannelGroupID *uint   `json:"channel_group_id,omitempty"`
	TargetGroup    *string `json:"target_group,omitempty"`
	LegacyOnly     bool    `json:"legacy_only,omitempty"`
}

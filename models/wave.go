package models

import (
	"time"
)

// Wave is a time-boxed flight inside a campaign. Its date range drives
// seasonal-index averaging for every item it contains.
type Wave struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CampaignID uint   `gorm:"not null;index:idx_waves_campaign_id" json:"campaign_id"`
	Name       string `gorm:"size:255;not null" json:"name"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP)" json:"created_at"`

	// Relations
	Campaign  *Campaign  `gorm:"foreignKey:CampaignID;references:ID" json:"campaign,omitempty"`
	Items     []WaveItem `gorm:"foreignKey:WaveID" json:"items,omitempty"`
	Discounts []Discount `gorm:"foreignKey:WaveID" json:"discounts,omitempty"`
}

// TableName returns the table name for the model
func (Wave) TableName() string {
	return "waves"
}

// WaveFilter represents filter criteria for wave queries
type WaveFilter struct {
	ID         *uint `json:"id,omitempty"`
	CampaignID *uint `json:"campaign_id,omitempty"`
}

// WaveItem is a priced line item of a wave. Every derived field below the
// raw-input block must stay consistent with the raw inputs: any mutation to
// a contributing input triggers full recomputation.
type WaveItem struct {
	ID             uint  `gorm:"primaryKey" json:"id"`
	WaveID         uint  `gorm:"not null;index:idx_wave_items_wave_id" json:"wave_id"`
	ChannelGroupID uint  `gorm:"not null;index:idx_wave_items_group_id" json:"channel_group_id"`
	TVCID          *uint `gorm:"index:idx_wave_items_tvc_id" json:"tvc_id,omitempty"`

	TargetGroup string `gorm:"size:255;not null" json:"target_group"`

	// Raw inputs
	TRPs         float64 `gorm:"column:trps;not null" json:"trps"`
	ClipDuration int     `gorm:"not null" json:"clip_duration"`
	ChannelShare float64 `json:"channel_share"`
	PTZoneShare  float64 `json:"pt_zone_share"`
	Affinity1    float64 `json:"affinity1"`
	Affinity2    float64 `json:"affinity2"`
	Affinity3    float64 `json:"affinity3"`

	// Resolved multipliers, 1.0 when not applicable
	DurationIndex        float64 `gorm:"not null;default:1" json:"duration_index"`
	SeasonalIndex        float64 `gorm:"not null;default:1" json:"seasonal_index"`
	TRPPurchaseIndex     float64 `gorm:"not null;default:1" json:"trp_purchase_index"`
	AdvancePurchaseIndex float64 `gorm:"not null;default:1" json:"advance_purchase_index"`
	PositionIndex        float64 `gorm:"not null;default:1" json:"position_index"`
	WebIndex             float64 `gorm:"not null;default:1" json:"web_index"`
	AdvancePaymentIndex  float64 `gorm:"not null;default:1" json:"advance_payment_index"`
	LoyaltyDiscountIndex float64 `gorm:"not null;default:1" json:"loyalty_discount_index"`

	// Discount percentages, 0..100
	ClientDiscount float64 `json:"client_discount"`
	AgencyDiscount float64 `json:"agency_discount"`

	// Derived pricing outputs
	GRPPlanned  float64 `json:"grp_planned"`
	GrossCPP    float64 `json:"gross_cpp"`
	GrossPrice  float64 `json:"gross_price"`
	NetPrice    float64 `json:"net_price"`
	NetNetPrice float64 `json:"net_net_price"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP)" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	Wave         *Wave         `gorm:"foreignKey:WaveID;references:ID" json:"wave,omitempty"`
	ChannelGroup *ChannelGroup `gorm:"foreignKey:ChannelGroupID;references:ID" json:"channel_group,omitempty"`
	TVC          *TVC          `gorm:"foreignKey:TVCID;references:ID" json:"tvc,omitempty"`
}

// TableName returns the table name for the model
func (WaveItem) TableName() string {
	return "wave_items"
}

// WaveItemFilter represents filter criteria for wave item queries
type WaveItemFilter struct {
	ID             *uint `json:"id,omitempty"`
	WaveID         *uint `json:"wave_id,omitempty"`
	ChannelGroupID *uint `json:"channel_group_id,omitempty"`
	TVCID          *uint `json:"tvc_id,omitempty"`
}

package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DiscountType distinguishes the two sequential discount layers.
type DiscountType string

const (
	DiscountTypeClient DiscountType = "client"
	DiscountTypeAgency DiscountType = "agency"
)

// String returns the string representation of the type
func (t DiscountType) String() string {
	return string(t)
}

// Valid checks if the type is valid
func (t DiscountType) Valid() bool {
	return t == DiscountTypeClient || t == DiscountTypeAgency
}

// Scan implements the sql.Scanner interface for DiscountType
func (t *DiscountType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = DiscountType(v)
	case []byte:
		*t = DiscountType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into DiscountType", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for DiscountType
func (t DiscountType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid DiscountType: %s", t)
	}
	return string(t), nil
}

// Discount is a percentage discount scoped to exactly one campaign or wave.
// Multiple rows of the same type within a scope merge by maximum, never sum.
// Campaign-level and wave-level rows compose at read time.
type Discount struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	CampaignID *uint `gorm:"index:idx_discounts_campaign_id" json:"campaign_id,omitempty"`
	WaveID     *uint `gorm:"index:idx_discounts_wave_id" json:"wave_id,omitempty"`

	Type DiscountType `gorm:"size:10;not null" json:"discount_type"`
	// Percentage must be between 0 and 100 inclusive
	Percentage float64 `gorm:"not null" json:"discount_percentage"`
	Comment    *string `gorm:"size:255" json:"comment,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP)" json:"created_at"`

	// Relations
	Campaign *Campaign `gorm:"foreignKey:CampaignID;references:ID" json:"campaign,omitempty"`
	Wave     *Wave     `gorm:"foreignKey:WaveID;references:ID" json:"wave,omitempty"`
}

// TableName returns the table name for the model
func (Discount) TableName() string {
	return "discounts"
}

// BeforeCreate validates scope and range before persisting
func (d *Discount) BeforeCreate(tx *gorm.DB) error {
	if d.CampaignID == nil && d.WaveID == nil {
		return fmt.Errorf("discount must reference a campaign or a wave")
	}
	if !d.Type.Valid() {
		return fmt.Errorf("invalid discount type %q", d.Type)
	}
	if d.Percentage < 0 || d.Percentage > 100 {
		return fmt.Errorf("discount percentage must be between 0 and 100, got %v", d.Percentage)
	}
	return nil
}

// DiscountFilter represents filter criteria for discount queries
type DiscountFilter struct {
	ID         *uint         `json:"id,omitempty"`
	CampaignID *uint         `json:"campaign_id,omitempty"`
	WaveID     *uint         `json:"wave_id,omitempty"`
	Type       *DiscountType `json:"discount_type,omitempty"`
}

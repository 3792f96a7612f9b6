package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TVC is a commercial spot belonging to a campaign. Wave items may reference
// one; deleting a TVC nulls those references instead of cascading.
type TVC struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	CampaignID      uint   `gorm:"not null;index:idx_tvcs_campaign_id" json:"campaign_id"`
	Name            string `gorm:"size:255;not null" json:"name"`
	DurationSeconds int    `gorm:"not null" json:"duration_seconds"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP)" json:"created_at"`

	// Relations
	Campaign *Campaign `gorm:"foreignKey:CampaignID;references:ID" json:"campaign,omitempty"`
}

// TableName returns the table name for the model
func (TVC) TableName() string {
	return "tvcs"
}

// BeforeCreate validates the duration before persisting
func (t *TVC) BeforeCreate(tx *gorm.DB) error {
	if t.DurationSeconds <= 0 {
		return fmt.Errorf("tvc duration must be positive, got %d", t.DurationSeconds)
	}
	return nil
}

// TVCFilter represents filter criteria for TVC queries
type TVCFilter struct {
	ID         *uint   `json:"id,omitempty"`
	CampaignID *uint   `json:"campaign_id,omitempty"`
	Name       *string `json:"name,omitempty"`
}

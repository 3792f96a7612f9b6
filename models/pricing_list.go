package models

import (
	"time"
)

// PricingList is a named, versioned set of rate-card entries. A campaign may
// attach one list; wave items of that campaign are then priced exclusively
// against it.
type PricingList struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:uk_pricing_lists_name" json:"name"`
	Comment   *string   `gorm:"size:255" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP);index:idx_pricing_lists_created_at" json:"created_at"`

	// Relations
	Entries []RateCardEntry `gorm:"foreignKey:PricingListID" json:"entries,omitempty"`
}

// TableName returns the table name for the model
func (PricingList) TableName() string {
	return "pricing_lists"
}

// PricingListFilter represents filter criteria for pricing list queries
type PricingListFilter struct {
	ID   *uint   `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CampaignStatus represents the lifecycle status of a campaign
type CampaignStatus string

const (
	CampaignStatusDraft      CampaignStatus = "draft"
	CampaignStatusConfirmed  CampaignStatus = "confirmed"
	CampaignStatusOrdersSent CampaignStatus = "orders_sent"
	CampaignStatusActive     CampaignStatus = "active"
	CampaignStatusCompleted  CampaignStatus = "completed"
)

// String returns the string representation of the status
func (s CampaignStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusConfirmed, CampaignStatusOrdersSent,
		CampaignStatusActive, CampaignStatusCompleted:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for CampaignStatus
func (s *CampaignStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = CampaignStatus(v)
	case []byte:
		*s = CampaignStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CampaignStatus", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for CampaignStatus
func (s CampaignStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid CampaignStatus: %s", s)
	}
	return string(s), nil
}

// TRPDistribution maps ISO dates (YYYY-MM-DD) to the TRPs planned for that
// day. It feeds the calendar columns of the Excel report.
type TRPDistribution map[string]float64

// Value implements the driver.Valuer interface for TRPDistribution
func (d TRPDistribution) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface for TRPDistribution
func (d *TRPDistribution) Scan(value any) error {
	if value == nil {
		*d = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into TRPDistribution", value)
	}
	return json.Unmarshal(bytes, d)
}

// Campaign is a client order under planning. It owns waves, their line items,
// discounts and commercial spots (TVCs).
type Campaign struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UUID          string         `gorm:"size:36;not null;uniqueIndex:uk_campaigns_uuid" json:"uuid"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	PricingListID *uint          `gorm:"index:idx_campaigns_pricing_list_id" json:"pricing_list_id,omitempty"`
	Status        CampaignStatus `gorm:"size:20;not null;default:'draft';index:idx_campaigns_status" json:"status"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	Agency  *string `gorm:"size:255" json:"agency,omitempty"`
	Client  *string `gorm:"size:255" json:"client,omitempty"`
	Product *string `gorm:"size:255" json:"product,omitempty"`
	Country *string `gorm:"size:255" json:"country,omitempty"`

	// CRMRef marks a campaign imported from the CRM, e.g. "crm_42".
	CRMRef *string `gorm:"size:64;index:idx_campaigns_crm_ref" json:"crm_ref,omitempty"`

	// TRPPlan is the per-day TRP distribution used by report calendars.
	TRPPlan TRPDistribution `gorm:"type:jsonb" json:"trp_plan,omitempty"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP);index:idx_campaigns_created_at" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	PricingList *PricingList `gorm:"foreignKey:PricingListID;references:ID" json:"pricing_list,omitempty"`
	Waves       []Wave       `gorm:"foreignKey:CampaignID" json:"waves,omitempty"`
	TVCs        []TVC        `gorm:"foreignKey:CampaignID" json:"tvcs,omitempty"`
	Discounts   []Discount   `gorm:"foreignKey:CampaignID" json:"discounts,omitempty"`
}

// TableName returns the table name for the model
func (Campaign) TableName() string {
	return "campaigns"
}

// BeforeCreate is called before creating a new record
func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = CampaignStatusDraft
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *Campaign) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now().UTC()
	c.UpdatedAt = &now
	return nil
}

// CanTransitionTo checks if the campaign can move to the given status
func (c *Campaign) CanTransitionTo(newStatus CampaignStatus) bool {
	switch c.Status {
	case CampaignStatusDraft:
		return newStatus == CampaignStatusConfirmed
	case CampaignStatusConfirmed:
		return newStatus == CampaignStatusOrdersSent || newStatus == CampaignStatusDraft
	case CampaignStatusOrdersSent:
		return newStatus == CampaignStatusActive
	case CampaignStatusActive:
		return newStatus == CampaignStatusCompleted
	default:
		return false
	}
}

// CampaignFilter represents filter criteria for campaign queries
type CampaignFilter struct {
	ID            *uint           `json:"id,omitempty"`
	UUID          *string         `json:"uuid,omitempty"`
	Name          *string         `json:"name,omitempty"`
	PricingListID *uint           `json:"pricing_list_id,omitempty"`
	Status        *CampaignStatus `json:"status,omitempty"`
	StartAfter    *time.Time      `json:"start_after,omitempty"`
	EndBefore     *time.Time      `json:"end_before,omitempty"`
}

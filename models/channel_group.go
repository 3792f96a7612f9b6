// Package models contains domain entities and business models for the TV planner.
package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ChannelSize classifies a channel inside its group.
type ChannelSize string

const (
	ChannelSizeBig   ChannelSize = "big"
	ChannelSizeSmall ChannelSize = "small"
)

// String returns the string representation of the size
func (s ChannelSize) String() string {
	return string(s)
}

// Valid checks if the size is valid
func (s ChannelSize) Valid() bool {
	return s == ChannelSizeBig || s == ChannelSizeSmall
}

// Scan implements the sql.Scanner interface for ChannelSize
func (s *ChannelSize) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = ChannelSize(v)
	case []byte:
		*s = ChannelSize(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ChannelSize", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for ChannelSize
func (s ChannelSize) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ChannelSize: %s", s)
	}
	return string(s), nil
}

// ChannelGroup is a broadcaster's channel family sharing one rate card
// (e.g. "AMB Baltics"). Wave items reference their owner through it.
type ChannelGroup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:uk_channel_groups_name" json:"name"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP)" json:"created_at"`

	// Relations
	Channels []Channel `gorm:"foreignKey:ChannelGroupID" json:"channels,omitempty"`
}

// TableName returns the table name for the model
func (ChannelGroup) TableName() string {
	return "channel_groups"
}

// Channel is a single TV channel within a group.
type Channel struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	ChannelGroupID uint        `gorm:"not null;index:idx_channels_group_id;uniqueIndex:uk_channels_group_name" json:"channel_group_id"`
	Name           string      `gorm:"size:255;not null;uniqueIndex:uk_channels_group_name" json:"name"`
	Size           ChannelSize `gorm:"size:10;not null" json:"size"`

	// Relations
	ChannelGroup *ChannelGroup `gorm:"foreignKey:ChannelGroupID;references:ID" json:"channel_group,omitempty"`
}

// TableName returns the table name for the model
func (Channel) TableName() string {
	return "channels"
}

// BeforeCreate validates the size before persisting
func (c *Channel) BeforeCreate(tx *gorm.DB) error {
	if !c.Size.Valid() {
		return fmt.Errorf("channel size must be 'big' or 'small', got %q", c.Size)
	}
	return nil
}

// ChannelFilter represents filter criteria for channel queries
type ChannelFilter struct {
	ID             *uint        `json:"id,omitempty"`
	ChannelGroupID *uint        `json:"channel_group_id,omitempty"`
	Name           *string      `json:"name,omitempty"`
	Size           *ChannelSize `json:"size,omitempty"`
}

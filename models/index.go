package models

// DurationIndex is an administrator-maintained multiplier applied to wave
// items of a given clip duration on a channel group. Missing rows resolve
// to 1.0.
type DurationIndex struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	ChannelGroupID  uint    `gorm:"not null;index:idx_duration_indices_group_id;uniqueIndex:uk_duration_indices_group_duration" json:"channel_group_id"`
	DurationSeconds int     `gorm:"not null;uniqueIndex:uk_duration_indices_group_duration" json:"duration_seconds"`
	Value           float64 `gorm:"not null;default:1" json:"value"`
	Description     *string `gorm:"size:255" json:"description,omitempty"`

	// Relations
	ChannelGroup *ChannelGroup `gorm:"foreignKey:ChannelGroupID;references:ID" json:"channel_group,omitempty"`
}

// TableName returns the table name for the model
func (DurationIndex) TableName() string {
	return "duration_indices"
}

// SeasonalIndex is a per-month multiplier for a channel group. Missing rows
// resolve to 1.0. Month is 1..12.
type SeasonalIndex struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	ChannelGroupID uint    `gorm:"not null;index:idx_seasonal_indices_group_id;uniqueIndex:uk_seasonal_indices_group_month" json:"channel_group_id"`
	Month          int     `gorm:"not null;uniqueIndex:uk_seasonal_indices_group_month" json:"month"`
	Value          float64 `gorm:"not null;default:1" json:"value"`
	Description    *string `gorm:"size:255" json:"description,omitempty"`

	// Relations
	ChannelGroup *ChannelGroup `gorm:"foreignKey:ChannelGroupID;references:ID" json:"channel_group,omitempty"`
}

// TableName returns the table name for the model
func (SeasonalIndex) TableName() string {
	return "seasonal_indices"
}

// PositionIndex is the multiplier for a spot's break position (first/last/
// inside) on a channel group. Maintained by administrators, listed in the
// indices admin; wave items carry the chosen value directly.
type PositionIndex struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	ChannelGroupID uint    `gorm:"not null;index:idx_position_indices_group_id;uniqueIndex:uk_position_indices_group_pos" json:"channel_group_id"`
	Position       string  `gorm:"size:50;not null;uniqueIndex:uk_position_indices_group_pos" json:"position"`
	Value          float64 `gorm:"not null;default:1" json:"value"`

	// Relations
	ChannelGroup *ChannelGroup `gorm:"foreignKey:ChannelGroupID;references:ID" json:"channel_group,omitempty"`
}

// TableName returns the table name for the model
func (PositionIndex) TableName() string {
	return "position_indices"
}

// DurationIndexFilter represents filter criteria for duration index queries
type DurationIndexFilter struct {
	ChannelGroupID  *uint `json:"channel_group_id,omitempty"`
	DurationSeconds *int  `json:"duration_seconds,omitempty"`
}

// SeasonalIndexFilter represents filter criteria for seasonal index queries
type SeasonalIndexFilter struct {
	ChannelGroupID *uint `json:"channel_group_id,omitempty"`
	Month          *int  `json:"month,omitempty"`
}

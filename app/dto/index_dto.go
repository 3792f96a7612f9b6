package dto

// UpsertDurationIndexRequest sets the multiplier for one clip duration of a
// channel group.
type UpsertDurationIndexRequest struct {
	ChannelGroupID  uint    `json:"-"`
	DurationSeconds int     `json:"duration_seconds" validate:"required,gt=0"`
	Value           float64 `json:"value" validate:"gte=0"`
}

// UpsertSeasonalIndexRequest sets the multiplier for one calendar month of a
// channel group.
type UpsertSeasonalIndexRequest struct {
	ChannelGroupID uint    `json:"-"`
	Month          int     `json:"month" validate:"required,min=1,max=12"`
	Value          float64 `json:"value" validate:"gte=0"`
}

// UpsertPositionIndexRequest sets the multiplier for a break position of a
// channel group.
type UpsertPositionIndexRequest struct {
	ChannelGroupID uint    `json:"-"`
	Position       string  `json:"position" validate:"required,max=50"`
	Value          float64 `json:"value" validate:"gte=0"`
}

// DurationIndexResponse represents a stored duration index row
type DurationIndexResponse struct {
	ID              uint    `json:"id"`
	ChannelGroupID  uint    `json:"channel_group_id"`
	DurationSeconds int     `json:"duration_seconds"`
	Value           float64 `json:"value"`
}

// SeasonalIndexResponse represents a stored seasonal index row
type SeasonalIndexResponse struct {
	ID             uint    `json:"id"`
	ChannelGroupID uint    `json:"channel_group_id"`
	Month          int     `json:"month"`
	Value          float64 `json:"value"`
}

// PositionIndexResponse represents a stored position index row
type PositionIndexResponse struct {
	ID             uint    `json:"id"`
	ChannelGroupID uint    `json:"channel_group_id"`
	Position       string  `json:"position"`
	Value          float64 `json:"value"`
}

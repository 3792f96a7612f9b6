package dto

// UpsertLegacyRateRequest represents a legacy channel-group rate row. The
// numeric fields arrive as strings because legacy clients post values copied
// straight from spreadsheets ("18,4 €", "35 %"); they are normalized before
// validation of ranges happens in the flow.
type UpsertLegacyRateRequest struct {
	ChannelGroupID uint   `json:"-"`
	TargetGroup    string `json:"target_group" validate:"required,max=100"`
	PrimaryLabel   string `json:"primary_label,omitempty" validate:"omitempty,max=100"`
	SecondaryLabel string `json:"secondary_label,omitempty" validate:"omitempty,max=100"`

	SalesShare   string `json:"sales_share,omitempty"`
	ChannelShare string `json:"channel_share,omitempty"`
	PTZoneShare  string `json:"pt_zone_share,omitempty"`
	NPTZoneShare string `json:"npt_zone_share,omitempty"`
	PricePerSec  string `json:"price_per_sec" validate:"required"`
}

// UpsertListRateRequest represents a rate row scoped to a named pricing list.
type UpsertListRateRequest struct {
	PricingListID  uint   `json:"-"`
	ChannelGroupID uint   `json:"channel_group_id" validate:"required"`
	TargetGroup    string `json:"target_group" validate:"required,max=100"`
	PrimaryLabel   string `json:"primary_label,omitempty" validate:"omitempty,max=100"`
	SecondaryLabel string `json:"secondary_label,omitempty" validate:"omitempty,max=100"`

	SalesShare   string `json:"sales_share,omitempty"`
	ChannelShare string `json:"channel_share,omitempty"`
	PTZoneShare  string `json:"pt_zone_share,omitempty"`
	NPTZoneShare string `json:"npt_zone_share,omitempty"`
	PricePerSec  string `json:"price_per_sec" validate:"required"`
}

// RateCardEntryResponse represents a resolved or stored rate row
type RateCardEntryResponse struct {
	ID             uint    `json:"id"`
	PricingListID  *uint   `json:"pricing_list_id,omitempty"`
	ChannelGroupID uint    `json:"channel_group_id"`
	Owner          string  `json:"owner"`
	TargetGroup    string  `json:"target_group"`
	PrimaryLabel   string  `json:"primary_label"`
	SecondaryLabel string  `json:"secondary_label,omitempty"`
	SalesShare     float64 `json:"sales_share"`
	ChannelShare   float64 `json:"channel_share"`
	PTZoneShare    float64 `json:"pt_zone_share"`
	NPTZoneShare   float64 `json:"npt_zone_share"`
	PricePerSec    float64 `json:"price_per_sec"`
	Legacy         bool    `json:"legacy"`
}

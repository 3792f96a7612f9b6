package dto

// AddDiscountRequest represents a discount registered against a wave or a
// whole campaign. Exactly one scope must be set.
type AddDiscountRequest struct {
	CampaignID *uint   `json:"campaign_id,omitempty"`
	WaveID     *uint   `json:"wave_id,omitempty"`
	Type       string  `json:"type" validate:"required,oneof=client agency"`
	Percent    float64 `json:"percent" validate:"gte=0,lte=100"`
	Comment    string  `json:"comment,omitempty" validate:"omitempty,max=255"`
}

// DiscountResponse represents a stored discount in responses
type DiscountResponse struct {
	ID         uint    `json:"id"`
	CampaignID *uint   `json:"campaign_id,omitempty"`
	WaveID     *uint   `json:"wave_id,omitempty"`
	Type       string  `json:"type"`
	Percent    float64 `json:"percent"`
	Comment    string  `json:"comment,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// WaveTotalResponse represents the aggregated cost of a wave after the
// effective client and agency discounts are applied.
type WaveTotalResponse struct {
	WaveID         uint    `json:"wave_id"`
	BaseCost       float64 `json:"base_cost"`
	ClientDiscount float64 `json:"client_discount"`
	AgencyDiscount float64 `json:"agency_discount"`
	NetCost        float64 `json:"net_cost"`
	NetNetCost     float64 `json:"net_net_cost"`
}

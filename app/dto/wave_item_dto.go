package dto

// IndexOverrides lets an operator hand-tune the multipliers of a single line
// item. A nil field means "resolve from the stored lookup tables"; a set
// field always wins over the resolved value.
type IndexOverrides struct {
	DurationIndex        *float64 `json:"duration_index,omitempty" validate:"omitempty,gte=0"`
	SeasonalIndex        *float64 `json:"seasonal_index,omitempty" validate:"omitempty,gte=0"`
	TRPPurchaseIndex     *float64 `json:"trp_purchase_index,omitempty" validate:"omitempty,gte=0"`
	AdvancePurchaseIndex *float64 `json:"advance_purchase_index,omitempty" validate:"omitempty,gte=0"`
	PositionIndex        *float64 `json:"position_index,omitempty" validate:"omitempty,gte=0"`
	WebIndex             *float64 `json:"web_index,omitempty" validate:"omitempty,gte=0"`
	AdvancePaymentIndex  *float64 `json:"advance_payment_index,omitempty" validate:"omitempty,gte=0"`
	LoyaltyDiscountIndex *float64 `json:"loyalty_discount_index,omitempty" validate:"omitempty,gte=0"`
}

// CreateWaveItemRequest represents the request to add a priced line item to a
// wave. Owner may be given instead of ChannelGroupID by legacy clients; it is
// normalized to the group's id before anything else happens.
type CreateWaveItemRequest struct {
	WaveID         uint    `json:"-"`
	ChannelGroupID *uint   `json:"channel_group_id,omitempty"`
	Owner          *string `json:"owner,omitempty"`
	TargetGroup    string  `json:"target_group" validate:"required"`
	TVCID          *uint   `json:"tvc_id,omitempty"`

	TRPs         *float64 `json:"trps" validate:"required"`
	ClipDuration *int     `json:"clip_duration" validate:"required"`
	ChannelShare *float64 `json:"channel_share,omitempty" validate:"omitempty,gte=0,lte=1"`
	PTZoneShare  *float64 `json:"pt_zone_share,omitempty" validate:"omitempty,gte=0,lte=1"`
	Affinity1    *float64 `json:"affinity1,omitempty" validate:"omitempty,gte=0,lte=100"`
	Affinity2    *float64 `json:"affinity2,omitempty" validate:"omitempty,gte=0,lte=100"`
	Affinity3    *float64 `json:"affinity3,omitempty" validate:"omitempty,gte=0,lte=100"`

	ClientDiscount *float64 `json:"client_discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	AgencyDiscount *float64 `json:"agency_discount,omitempty" validate:"omitempty,gte=0,lte=100"`

	Overrides IndexOverrides `json:"overrides,omitempty"`
}

// WaveItemPatch is the typed partial update for a wave item. Every
// recognized optional field is listed here so the recomputation trigger set
// is enumerable; arbitrary keys are rejected at the JSON boundary.
type WaveItemPatch struct {
	ID uint `json:"-"`

	TargetGroup *string `json:"target_group,omitempty"`
	TVCID       *uint   `json:"tvc_id,omitempty"`

	TRPs         *float64 `json:"trps,omitempty" validate:"omitempty,gt=0"`
	ClipDuration *int     `json:"clip_duration,omitempty" validate:"omitempty,gt=0"`
	ChannelShare *float64 `json:"channel_share,omitempty" validate:"omitempty,gte=0,lte=1"`
	PTZoneShare  *float64 `json:"pt_zone_share,omitempty" validate:"omitempty,gte=0,lte=1"`
	Affinity1    *float64 `json:"affinity1,omitempty" validate:"omitempty,gte=0,lte=100"`
	Affinity2    *float64 `json:"affinity2,omitempty" validate:"omitempty,gte=0,lte=100"`
	Affinity3    *float64 `json:"affinity3,omitempty" validate:"omitempty,gte=0,lte=100"`

	DurationIndex        *float64 `json:"duration_index,omitempty" validate:"omitempty,gte=0"`
	SeasonalIndex        *float64 `json:"seasonal_index,omitempty" validate:"omitempty,gte=0"`
	TRPPurchaseIndex     *float64 `json:"trp_purchase_index,omitempty" validate:"omitempty,gte=0"`
	AdvancePurchaseIndex *float64 `json:"advance_purchase_index,omitempty" validate:"omitempty,gte=0"`
	PositionIndex        *float64 `json:"position_index,omitempty" validate:"omitempty,gte=0"`
	WebIndex             *float64 `json:"web_index,omitempty" validate:"omitempty,gte=0"`
	AdvancePaymentIndex  *float64 `json:"advance_payment_index,omitempty" validate:"omitempty,gte=0"`
	LoyaltyDiscountIndex *float64 `json:"loyalty_discount_index,omitempty" validate:"omitempty,gte=0"`

	ClientDiscount *float64 `json:"client_discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	AgencyDiscount *float64 `json:"agency_discount,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// TouchesPricing reports whether applying the patch requires recomputing the
// derived pricing fields. Metadata-only patches (relabeling, TVC relink)
// leave stored prices untouched.
func (p *WaveItemPatch) TouchesPricing() bool {
	return p.TRPs != nil || p.ClipDuration != nil ||
		p.Affinity1 != nil ||
		p.DurationIndex != nil || p.SeasonalIndex != nil ||
		p.TRPPurchaseIndex != nil || p.AdvancePurchaseIndex != nil ||
		p.PositionIndex != nil || p.WebIndex != nil ||
		p.AdvancePaymentIndex != nil || p.LoyaltyDiscountIndex != nil ||
		p.ClientDiscount != nil || p.AgencyDiscount != nil
}

// TouchesGRP reports whether the patch invalidates the stored planned GRP.
func (p *WaveItemPatch) TouchesGRP() bool {
	return p.TRPs != nil || p.Affinity1 != nil
}

// WaveItemResponse represents a fully priced line item in responses
type WaveItemResponse struct {
	ID             uint    `json:"id"`
	WaveID         uint    `json:"wave_id"`
	ChannelGroupID uint    `json:"channel_group_id"`
	Owner          string  `json:"owner"`
	TargetGroup    string  `json:"target_group"`
	TVCID          *uint   `json:"tvc_id,omitempty"`
	TVCName        *string `json:"tvc_name,omitempty"`
	TVCDuration    *int    `json:"tvc_duration,omitempty"`

	TRPs         float64 `json:"trps"`
	ClipDuration int     `json:"clip_duration"`
	ChannelShare float64 `json:"channel_share"`
	PTZoneShare  float64 `json:"pt_zone_share"`
	Affinity1    float64 `json:"affinity1"`
	Affinity2    float64 `json:"affinity2"`
	Affinity3    float64 `json:"affinity3"`

	DurationIndex        float64 `json:"duration_index"`
	SeasonalIndex        float64 `json:"seasonal_index"`
	TRPPurchaseIndex     float64 `json:"trp_purchase_index"`
	AdvancePurchaseIndex float64 `json:"advance_purchase_index"`
	PositionIndex        float64 `json:"position_index"`
	WebIndex             float64 `json:"web_index"`
	AdvancePaymentIndex  float64 `json:"advance_payment_index"`
	LoyaltyDiscountIndex float64 `json:"loyalty_discount_index"`

	GRPPlanned     float64 `json:"grp_planned"`
	GrossCPP       float64 `json:"gross_cpp"`
	GrossPrice     float64 `json:"gross_price"`
	ClientDiscount float64 `json:"client_discount"`
	NetPrice       float64 `json:"net_price"`
	AgencyDiscount float64 `json:"agency_discount"`
	NetNetPrice    float64 `json:"net_net_price"`
}

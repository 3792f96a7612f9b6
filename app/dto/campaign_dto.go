package dto

// CreateCampaignRequest represents the request to create a new campaign
type CreateCampaignRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=255"`
	PricingListID *uint   `json:"pricing_list_id,omitempty"`
	StartDate     *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate       *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Agency        *string `json:"agency,omitempty"`
	Client        *string `json:"client,omitempty"`
	Product       *string `json:"product,omitempty"`
	Country       *string `json:"country,omitempty"`
	CRMRef        *string `json:"-"`
}

// UpdateCampaignRequest represents a partial update to an existing campaign
type UpdateCampaignRequest struct {
	ID            uint    `json:"-"`
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	PricingListID *uint   `json:"pricing_list_id,omitempty"`
	StartDate     *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate       *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status        *string `json:"status,omitempty"`
	Agency        *string `json:"agency,omitempty"`
	Client        *string `json:"client,omitempty"`
	Product       *string `json:"product,omitempty"`
	Country       *string `json:"country,omitempty"`
}

// CampaignResponse represents a campaign in responses
type CampaignResponse struct {
	ID              uint    `json:"id"`
	UUID            string  `json:"uuid"`
	Name            string  `json:"name"`
	PricingListID   *uint   `json:"pricing_list_id,omitempty"`
	PricingListName *string `json:"pricing_list_name,omitempty"`
	Status          string  `json:"status"`
	StartDate       *string `json:"start_date,omitempty"`
	EndDate         *string `json:"end_date,omitempty"`
	Agency          *string `json:"agency,omitempty"`
	Client          *string `json:"client,omitempty"`
	Product         *string `json:"product,omitempty"`
	Country         *string `json:"country,omitempty"`
	CRMRef          *string `json:"crm_ref,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// CreateWaveRequest represents the request to create a wave in a campaign
type CreateWaveRequest struct {
	CampaignID uint    `json:"-"`
	Name       string  `json:"name" validate:"required,min=1,max=255"`
	StartDate  *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate    *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateWaveRequest represents a partial update to a wave
type UpdateWaveRequest struct {
	ID        uint    `json:"-"`
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// WaveResponse represents a wave in responses
type WaveResponse struct {
	ID         uint    `json:"id"`
	CampaignID uint    `json:"campaign_id"`
	Name       string  `json:"name"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
}

// CreateTVCRequest represents the request to register a commercial spot
type CreateTVCRequest struct {
	CampaignID      uint   `json:"-"`
	Name            string `json:"name" validate:"required,min=1,max=255"`
	DurationSeconds int    `json:"duration_seconds" validate:"required,gt=0"`
}

// TVCResponse represents a commercial spot in responses
type TVCResponse struct {
	ID              uint   `json:"id"`
	CampaignID      uint   `json:"campaign_id"`
	Name            string `json:"name"`
	DurationSeconds int    `json:"duration_seconds"`
}

// SaveTRPPlanRequest carries the per-day TRP distribution of a campaign
type SaveTRPPlanRequest struct {
	CampaignID uint               `json:"-"`
	Days       map[string]float64 `json:"days" validate:"required"`
}

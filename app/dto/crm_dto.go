package dto

// RemoteCampaign is the CRM's view of a campaign as returned by its HTTP API.
type RemoteCampaign struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Client    string `json:"client"`
	Agency    string `json:"agency"`
	Product   string `json:"product"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// RemotePlan is the payload pushed to the CRM when a campaign is confirmed.
type RemotePlan struct {
	CampaignUUID string  `json:"campaign_uuid"`
	Name         string  `json:"name"`
	Client       string  `json:"client"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	NetNetPrice  float64 `json:"net_net_price"`
}

// ImportCampaignRequest asks the planner to pull one CRM campaign in as a
// local draft.
type ImportCampaignRequest struct {
	RemoteID      string `json:"remote_id" validate:"required"`
	PricingListID *uint  `json:"pricing_list_id,omitempty"`
}

// ImportedCampaignResponse reports the result of a CRM import.
type ImportedCampaignResponse struct {
	RemoteID string `json:"remote_id"`
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
}

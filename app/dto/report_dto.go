package dto

// WaveReportRow is a single priced line inside a wave report block.
type WaveReportRow struct {
	Owner        string  `json:"owner"`
	PrimaryLabel string  `json:"primary_label"`
	TargetGroup  string  `json:"target_group"`
	TVCName      string  `json:"tvc_name,omitempty"`
	ClipDuration int     `json:"clip_duration"`
	TRPs         float64 `json:"trps"`
	GRPPlanned   float64 `json:"grp_planned"`
	Affinity1    float64 `json:"affinity1"`
	GrossCPP     float64 `json:"gross_cpp"`
	GrossPrice   float64 `json:"gross_price"`
	NetPrice     float64 `json:"net_price"`
	NetNetPrice  float64 `json:"net_net_price"`
}

// WaveReportBlock groups the rows, totals and discounts of one wave. Totals
// sums the stored item prices; Total is the aggregated wave cost with the
// effective discounts applied.
type WaveReportBlock struct {
	WaveID    uint               `json:"wave_id"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Rows      []WaveReportRow    `json:"rows"`
	Totals    WaveReportTotal    `json:"totals"`
	Total     WaveTotalResponse  `json:"total"`
	Discounts []DiscountResponse `json:"discounts,omitempty"`
}

// WaveReportTotal holds the per-wave sums shown under each block.
type WaveReportTotal struct {
	TRPs        float64 `json:"trps"`
	GRPPlanned  float64 `json:"grp_planned"`
	GrossPrice  float64 `json:"gross_price"`
	NetPrice    float64 `json:"net_price"`
	NetNetPrice float64 `json:"net_net_price"`
}

// CampaignReportData is the full assembled report tree for one campaign. The
// same structure backs the JSON endpoint and the Excel and CSV exports.
type CampaignReportData struct {
	CampaignUUID string            `json:"campaign_uuid"`
	CampaignName string            `json:"campaign_name"`
	Agency       string            `json:"agency"`
	Client       string            `json:"client"`
	Product      string            `json:"product"`
	Country      string            `json:"country"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date"`
	Status       string            `json:"status"`
	PricingList  string            `json:"pricing_list"`
	Waves        []WaveReportBlock `json:"waves"`
	Totals       WaveReportTotal   `json:"totals"`
	GeneratedAt  string            `json:"generated_at"`
}

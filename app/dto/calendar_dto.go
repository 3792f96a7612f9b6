package dto

// CalendarEvent is one campaign or wave bar rendered on the planning
// calendar. Waves reference their campaign through ParentUUID.
type CalendarEvent struct {
	UUID       string `json:"uuid"`
	ParentUUID string `json:"parent_uuid,omitempty"`
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	Client     string `json:"client,omitempty"`
	Status     string `json:"status,omitempty"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// CalendarMonthResponse is the feed for one rendered month.
type CalendarMonthResponse struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	MonthName string          `json:"month_name"`
	Events    []CalendarEvent `json:"events"`
}

package dto

// CreatePricingListRequest represents the request to create a named pricing list
type CreatePricingListRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=255"`
}

// DuplicatePricingListRequest represents the request to clone a pricing list
// together with all its rate rows under a new name.
type DuplicatePricingListRequest struct {
	SourceID uint   `json:"-"`
	Name     string `json:"name" validate:"required,max=100"`
}

// PricingListResponse represents a pricing list in responses
type PricingListResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Comment    string `json:"comment,omitempty"`
	EntryCount int64  `json:"entry_count"`
	CreatedAt  string `json:"created_at"`
}

// CreateChannelGroupRequest represents the request to register a channel group
type CreateChannelGroupRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CreateChannelRequest represents the request to add a channel to a group
type CreateChannelRequest struct {
	ChannelGroupID uint   `json:"-"`
	Name           string `json:"name" validate:"required,max=100"`
	Size           string `json:"size" validate:"required,oneof=big small"`
}

// MigrateLegacyRatesResponse summarizes a legacy rate migration into a list
type MigrateLegacyRatesResponse struct {
	PricingListID uint `json:"pricing_list_id"`
	Migrated      int  `json:"migrated"`
	Skipped       int  `json:"skipped"`
}

// ChannelGroupResponse represents a channel group with its channels
type ChannelGroupResponse struct {
	ID       uint              `json:"id"`
	Name     string            `json:"name"`
	Channels []ChannelResponse `json:"channels,omitempty"`
}

// ChannelResponse represents a single channel in responses
type ChannelResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Size string `json:"size"`
}

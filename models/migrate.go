package models

import "gorm.io/gorm"

// AllModels lists every entity in migration order (parents before children).
// Used by gorm.AutoMigrate in main and by the test database setup.
func AllModels() []any {
	return []any{
		&ChannelGroup{},
		&Channel{},
		&PricingList{},
		&RateCardEntry{},
		&DurationIndex{},
		&SeasonalIndex{},
		&PositionIndex{},
		&Campaign{},
		&Wave{},
		&TVC{},
		&WaveItem{},
		&Discount{},
	}
}

// SeedChannelGroups inserts the Baltic broadcaster groups on an empty
// database. Existing data is left untouched.
func SeedChannelGroups(db *gorm.DB) error {
	var count int64
	if err := db.Model(&ChannelGroup{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	groups := []ChannelGroup{
		{Name: "AMB Baltics", Channels: []Channel{
			{Name: "TV3", Size: ChannelSizeBig},
			{Name: "TV6", Size: ChannelSizeSmall},
			{Name: "TV8", Size: ChannelSizeSmall},
			{Name: "TV3 Plus", Size: ChannelSizeSmall},
		}},
		{Name: "MG grupė", Channels: []Channel{
			{Name: "LNK", Size: ChannelSizeBig},
			{Name: "BTV", Size: ChannelSizeSmall},
			{Name: "TV1", Size: ChannelSizeSmall},
			{Name: "Info TV", Size: ChannelSizeSmall},
		}},
	}
	return db.Create(&groups).Error
}

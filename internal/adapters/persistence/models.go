package persistence

// PlaceModel represents the places table: airports and cities usable as
// landmarks
type PlaceModel struct {
	Name string `gorm:"column:name;primaryKey"`
	// Lowercased with whitespace stripped, for name search
	SearchKey   string   `gorm:"column:search_key;not null;index"`
	Kind        string   `gorm:"column:kind;not null;index"`
	Lat         float64  `gorm:"column:lat;not null;index:idx_places_latlon"`
	Lon         float64  `gorm:"column:lon;not null;index:idx_places_latlon"`
	ElevationFt *float64 `gorm:"column:elevation_ft"`
	// Degrees, east positive
	MagVar   *float64 `gorm:"column:mag_var"`
	SyncedAt string   `gorm:"column:synced_at"` // ISO timestamp string
}

func (PlaceModel) TableName() string {
	return "places"
}

// AllModels lists every model for migrations
func AllModels() []interface{} {
	return []interface{}{
		&PlaceModel{},
	}
}

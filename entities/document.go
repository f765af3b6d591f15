package entities

// Document is a single leaf of the realtime tree, addressed by its slash
// separated path. Value holds the JSON encoded scalar.
type Document struct {
	Path  string `json:"path" gorm:"type:text;primaryKey"`
	Value string `json:"value" gorm:"type:jsonb;not null"`
	Timestamp
}

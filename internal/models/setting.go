package models

// Setting is a key/value site configuration row. The curated monthly
// ordering list lives here as a single source of truth instead of being
// duplicated across posts.
type Setting struct {
	Key       string `gorm:"primarykey" json:"key"`
	ValueJSON JSON   `gorm:"type:json" json:"value"`
}

// TableName names the table.
func (Setting) TableName() string {
	return "settings"
}

package models

// Link maps a generated short URL to the original long URL.
// ShortVersion stores the full short URL (base URL + code) and must be
// globally unique.
type Link struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	LongVersion  string `gorm:"not null" json:"long_version"`
	ShortVersion string `gorm:"uniqueIndex;not null" json:"short_version"`
	OwnerID      uint   `gorm:"not null;index" json:"owner_id"`
}

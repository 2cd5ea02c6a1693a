package models

// User represents a registered account. A user owns zero or more links;
// deleting the user removes them all.
type User struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	UserName       string `gorm:"uniqueIndex;not null" json:"user_name"`
	HashedPassword string `gorm:"not null" json:"-"`

	Links []Link `gorm:"foreignKey:OwnerID" json:"links"`
}

package models

// User represents a self-registered account. It cannot authenticate until
// an administrator flips the approval flag.
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"`
	IsApproved bool   `gorm:"default:false" json:"is_approved"`
}

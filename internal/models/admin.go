package models

// Admin represents an administrator account. The collection is bounded to
// three rows and the row with the lowest id is protected from deletion.
type Admin struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
}

// MaxAdmins is the hard cap on concurrent administrator accounts.
const MaxAdmins = 3

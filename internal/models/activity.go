package models

import "time"

// ActivityStatus is the derived lifecycle state of an activity. It is
// computed from an explicit clock at read time and never persisted.
type ActivityStatus string

const (
	StatusUpcoming ActivityStatus = "upcoming"
	StatusOngoing  ActivityStatus = "ongoing"
	StatusFinished ActivityStatus = "finished"
)

// Activity represents a scheduled clinic activity (consultation, event).
type Activity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Start       time.Time `gorm:"not null" json:"start"`
	End         time.Time `gorm:"not null" json:"end"`
	Description string    `json:"description"`
}

// StatusAt returns the activity status relative to now. Both boundaries
// count as ongoing, so the function is total over any (now, start, end).
func (a *Activity) StatusAt(now time.Time) ActivityStatus {
	switch {
	case now.Before(a.Start):
		return StatusUpcoming
	case now.After(a.End):
		return StatusFinished
	default:
		return StatusOngoing
	}
}

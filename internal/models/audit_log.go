package models

import "time"

// AuditLog records a mutating action for traceability.
type AuditLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ActorType    string    `gorm:"not null" json:"actor_type"` // "admin", "user" or "anonymous"
	ActorID      uint      `json:"actor_id"`
	Action       string    `gorm:"not null" json:"action"`
	ResourceType string    `gorm:"not null" json:"resource_type"`
	ResourceID   uint      `json:"resource_id"`
	IPAddress    string    `json:"ip_address"`
	Changes      string    `gorm:"type:text" json:"changes"`
	CreatedAt    time.Time `json:"created_at"`
}

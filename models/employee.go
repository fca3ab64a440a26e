package models

import "time"

// Employee roles.
const (
	RoleDesigner = "designer"
	RoleEngraver = "engraver"
)

// Employee is soft-deleted via Active=false so historical orders keep a
// resolvable name. IDs are assigned as max(existing)+1, never reused.
type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

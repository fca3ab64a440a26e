package models

import "time"

// Order status values. Transitions only move forward:
// pending -> processing -> completed.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

type Order struct {
	UID         string       `gorm:"primaryKey;type:varchar(32)" json:"uid"`
	OrderNumber string       `gorm:"type:varchar(64);not null;index" json:"order_number"`
	Status      string       `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Images      []OrderImage `gorm:"foreignKey:OrderUID;references:UID" json:"images"`
	DesignerID  *uint        `gorm:"index" json:"designer_id,omitempty"`
	Designer    string       `gorm:"type:varchar(100)" json:"designer,omitempty"`
	EngraverID  *uint        `gorm:"index" json:"engraver_id,omitempty"`
	TeamMember  string       `gorm:"type:varchar(100)" json:"team_member,omitempty"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	ClaimedAt   *time.Time   `json:"claimed_at,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// OrderImage is one externally hosted design image on an order.
// Images are set at creation and never mutated afterwards.
type OrderImage struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	OrderUID      string `gorm:"type:varchar(32);not null;index" json:"order_uid"`
	URL           string `gorm:"type:varchar(512);not null" json:"url"`
	Thumbnail     string `gorm:"type:varchar(512)" json:"thumbnail"`
	ProductTypeID *uint  `json:"product_type_id,omitempty"`
	ProductType   string `gorm:"type:varchar(100)" json:"product_type,omitempty"`
}

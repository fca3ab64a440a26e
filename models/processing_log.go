package models

import "time"

// ProcessingLogCap bounds the processing log collection; the oldest
// entries are trimmed once the cap is exceeded.
const ProcessingLogCap = 1000

// ProcessingLog is an append-only audit record written exactly once,
// when an order reaches completed with a claim on file.
type ProcessingLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrderUID        string    `gorm:"type:varchar(32);not null;index" json:"order_uid"`
	OrderNumber     string    `gorm:"type:varchar(64);not null" json:"order_number"`
	EmployeeID      *uint     `json:"employee_id,omitempty"`
	EmployeeName    string    `gorm:"type:varchar(100);not null" json:"employee_name"`
	ProductTypes    string    `gorm:"type:varchar(255)" json:"product_types"`
	StartTime       time.Time `gorm:"not null" json:"start_time"`
	EndTime         time.Time `gorm:"not null" json:"end_time"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

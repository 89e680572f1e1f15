package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID string `gorm:"size:64;index" json:"appointment_id"`

	Action string `gorm:"size:40" json:"action"`
	Entity string `gorm:"size:40" json:"entity"`

	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

type TicketModel struct {
	ID           uint    `gorm:"primaryKey"`
	TicketNumber string  `gorm:"column:ticket_number;size:50;not null;index"`
	DeviceType   string  `gorm:"column:device_type;size:255;not null"`
	Description  string  `gorm:"type:text;not null"`
	OwnerName    string  `gorm:"size:255;not null"`
	Facility     string  `gorm:"size:255;not null"`
	SerialNumber *string `gorm:"size:255"`
	Status       string  `gorm:"size:32;not null;index:idx_tickets_status_created,priority:1"`
	AssignedTo   *string `gorm:"size:255"`
	Remarks      *string `gorm:"type:text"`
	Version      int     `gorm:"not null;default:1"`
	// CreatedAt is set by the domain; gorm does not overwrite a non-zero value.
	CreatedAt   time.Time `gorm:"not null;index:idx_tickets_status_created,priority:2"`
	UpdatedAt   time.Time `gorm:"not null"`
	CompletedAt *time.Time

	// Note: No foreign key constraints. Decline records outlive the ticket.
}

func (TicketModel) TableName() string {
	return "tickets"
}

package models

import "time"

type DeclineRecordModel struct {
	ID                  uint      `gorm:"primaryKey"`
	TicketID            uint      `gorm:"not null;index"`
	TicketNumber        string    `gorm:"size:50;not null"`
	DeviceType          string    `gorm:"size:255;not null"`
	OwnerName           string    `gorm:"size:255;not null"`
	Facility            string    `gorm:"size:255;not null;index"`
	OriginalDescription *string   `gorm:"type:text"`
	DeclineReason       string    `gorm:"type:text;not null"`
	DeclinedBy          *string   `gorm:"size:255;index"`
	DeclinedAt          time.Time `gorm:"not null;index"`
	CreatedAt           time.Time `gorm:"not null"`
}

func (DeclineRecordModel) TableName() string {
	return "declined_tickets"
}

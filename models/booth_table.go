package models

import "time"

type BoothTable struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BoothID     uint      `gorm:"not null;uniqueIndex:idx_booth_table_no" json:"booth_id"`
	Booth       Booth     `gorm:"foreignKey:BoothID" json:"-"`
	TableNumber int       `gorm:"not null;uniqueIndex:idx_booth_table_no" json:"table_number"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

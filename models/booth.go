package models

import "time"

type Booth struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Location  string    `gorm:"type:varchar(200)" json:"location"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

package models

import "time"

// ManagerUser is the single staff account of a booth. One manager per booth,
// usernames unique across booths.
type ManagerUser struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BoothID       uint      `gorm:"not null;uniqueIndex" json:"booth_id"`
	Booth         Booth     `gorm:"foreignKey:BoothID" json:"-"`
	Username      string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	PasswordHash  string    `gorm:"type:varchar(100);not null" json:"-"`
	Role          string    `gorm:"type:varchar(20);not null" json:"role"`
	AccountBank   string    `gorm:"type:varchar(50)" json:"account_bank"`
	AccountNo     string    `gorm:"type:varchar(200)" json:"account_no"`
	AccountHolder string    `gorm:"type:varchar(100)" json:"account_holder"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

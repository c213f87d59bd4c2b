package models

import "time"

type MenuItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BoothID      uint      `gorm:"not null;uniqueIndex:idx_booth_menu_name" json:"booth_id"`
	Booth        Booth     `gorm:"foreignKey:BoothID" json:"-"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_booth_menu_name" json:"name"`
	Category     string    `gorm:"type:varchar(20);not null" json:"category"`
	Price        int       `gorm:"not null" json:"price"`
	Available    bool      `gorm:"not null;default:true" json:"available"`
	Description  string    `gorm:"type:text" json:"description"`
	ModelUrl     *string   `gorm:"type:varchar(255)" json:"model_url,omitempty"`
	PreviewImage *string   `gorm:"type:varchar(255)" json:"preview_image,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

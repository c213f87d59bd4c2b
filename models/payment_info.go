package models

import "time"

type PaymentInfo struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	OrderID   uint          `gorm:"not null;uniqueIndex" json:"order_id"`
	Order     CustomerOrder `gorm:"foreignKey:OrderID" json:"-"`
	PayerName string        `gorm:"type:varchar(100);not null" json:"payer_name"`
	Amount    int           `gorm:"not null" json:"amount"`
	PaidAt    time.Time     `gorm:"not null" json:"paid_at"`
}

package models

import "time"

type CustomerOrder struct {
	ID      uint       `gorm:"primaryKey" json:"id"`
	BoothID uint       `gorm:"not null;index" json:"booth_id"`
	Booth   Booth      `gorm:"foreignKey:BoothID" json:"-"`
	TableID uint       `gorm:"not null;index" json:"table_id"`
	Table   BoothTable `gorm:"foreignKey:TableID" json:"-"`
	VisitID uint       `gorm:"not null;index" json:"visit_id"`
	Visit   TableVisit `gorm:"foreignKey:VisitID" json:"-"`
	Status  string     `gorm:"type:varchar(20);not null;index:idx_order_status_approved" json:"status"`
	// OrderCode is derived from the generated id after insert; unique by
	// construction, so a plain index is enough.
	OrderCode   string     `gorm:"type:varchar(30);index" json:"order_code"`
	TotalAmount int        `gorm:"not null" json:"total_amount"`
	CreatedAt   time.Time  `gorm:"not null;index" json:"created_at"`
	ApprovedAt  *time.Time `gorm:"index:idx_order_status_approved" json:"approved_at,omitempty"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
}

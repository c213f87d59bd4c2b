package models

type OrderItem struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	OrderID    uint          `gorm:"not null;index" json:"order_id"`
	Order      CustomerOrder `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint          `gorm:"not null;index" json:"menu_item_id"`
	MenuItem   MenuItem      `gorm:"foreignKey:MenuItemID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item"`
	Quantity   int           `gorm:"not null" json:"quantity"`
	// UnitPrice is the price snapshot taken from the order request, not the
	// menu item's current price.
	UnitPrice int `gorm:"not null" json:"unit_price"`
}

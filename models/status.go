package models

// Table visit statuses.
const (
	VisitOpen   = "OPEN"
	VisitClosed = "CLOSED"
)

// Customer order statuses.
const (
	OrderPending  = "PENDING"
	OrderApproved = "APPROVED"
	OrderRejected = "REJECTED"
	OrderFinished = "FINISHED"
)

// OrderPendingWire is the spelling used in the order-creation response.
// The customer frontend expects "PENDDING" verbatim, so it stays misspelled
// on the wire while the database stores OrderPending.
const OrderPendingWire = "PENDDING"

// Menu categories.
const (
	CategoryFood  = "FOOD"
	CategoryDrink = "DRINK"
)

// ValidCategory reports whether s is a known menu category.
func ValidCategory(s string) bool {
	return s == CategoryFood || s == CategoryDrink
}

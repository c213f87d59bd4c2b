package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bootheat/bootheat-server/models"
	"github.com/bootheat/bootheat-server/utils"
)

// OrderService creates orders against a table visit and drives the order
// status state machine (PENDING -> APPROVED -> FINISHED, PENDING -> REJECTED).
type OrderService struct {
	DB     *gorm.DB
	Visits *VisitService
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db, Visits: NewVisitService(db)}
}

// CreateOrderRequest is the customer checkout payload. Field names follow the
// frontend contract.
type CreateOrderRequest struct {
	BoothID uint              `json:"boothId" binding:"required"`
	TableNo int               `json:"tableNo" binding:"required"`
	Items   []CreateOrderItem `json:"items" binding:"required"`
	Payment OrderPayment      `json:"payment" binding:"required"`
}

type CreateOrderItem struct {
	FoodID uint `json:"foodId" binding:"required"`
	// Name and ImageUrl are display values echoed by the client; only the
	// price and quantity are persisted.
	Name     string `json:"name"`
	Price    int    `json:"price"`
	ImageUrl string `json:"imageUrl"`
	Quantity int    `json:"quantity" binding:"required"`
}

type OrderPayment struct {
	PayerName string `json:"payerName"`
	Amount    int    `json:"amount"`
}

type OrderCreatedResponse struct {
	OrderID   uint      `json:"orderId"`
	Status    string    `json:"status"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateOrder persists the order with its line items and payment record in a
// single transaction, reusing the table's OPEN visit or opening a new one.
//
// Prices are deliberately taken from the request, not the menu catalog: the
// frontend applies promotions client-side and the persisted unit prices and
// total must match what the customer saw. The menu items are still resolved
// so the line keeps its catalog reference for statistics.
func (os *OrderService) CreateOrder(req *CreateOrderRequest) (*OrderCreatedResponse, error) {
	var resp *OrderCreatedResponse

	err := os.DB.Transaction(func(tx *gorm.DB) error {
		var booth models.Booth
		if err := tx.First(&booth, req.BoothID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBoothNotFound
			}
			return err
		}

		var table models.BoothTable
		if err := tx.Where("booth_id = ? AND table_number = ?", req.BoothID, req.TableNo).
			First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return err
		}

		if _, err := lockTableRow(tx, table.ID); err != nil {
			return err
		}
		visit, err := os.Visits.ResolveForOrder(tx, table.ID)
		if err != nil {
			return err
		}

		lines := make([]models.OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			var menu models.MenuItem
			if err := tx.First(&menu, it.FoodID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrMenuNotFound
				}
				return err
			}
			lines = append(lines, models.OrderItem{
				MenuItemID: menu.ID,
				Quantity:   it.Quantity,
				UnitPrice:  it.Price,
			})
		}

		order := models.CustomerOrder{
			BoothID:     booth.ID,
			TableID:     table.ID,
			VisitID:     visit.ID,
			Status:      models.OrderPending,
			TotalAmount: req.Payment.Amount,
			CreatedAt:   time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// The code depends on the generated id, hence the second write.
		code := utils.OrderCode(order.ID, order.CreatedAt)
		if err := tx.Model(&order).Update("order_code", code).Error; err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = order.ID
		}
		// An empty cart still produces an order; gorm rejects empty batch
		// inserts, so only write lines when there are any.
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}

		payment := models.PaymentInfo{
			OrderID:   order.ID,
			PayerName: req.Payment.PayerName,
			Amount:    req.Payment.Amount,
			PaidAt:    time.Now(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		resp = &OrderCreatedResponse{
			OrderID:   order.ID,
			Status:    models.OrderPendingWire,
			Amount:    order.TotalAmount,
			CreatedAt: order.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %d created for booth %d table %d (total=%d)",
		resp.OrderID, req.BoothID, req.TableNo, resp.Amount)
	return resp, nil
}

// ChangeStatus normalizes the requested target and dispatches to the matching
// transition. "PENDDING" is accepted as a synonym for "PENDING" because the
// frontend sends the misspelled form.
func (os *OrderService) ChangeStatus(orderID uint, raw string) error {
	st := strings.ToUpper(strings.TrimSpace(raw))
	if st == models.OrderPendingWire {
		st = models.OrderPending
	}

	switch st {
	case models.OrderApproved:
		return os.Approve(orderID)
	case models.OrderRejected:
		return os.Reject(orderID)
	case models.OrderPending:
		return os.SetPending(orderID)
	case models.OrderFinished:
		return os.Finish(orderID)
	default:
		return ErrUnknownStatus
	}
}

// Approve moves PENDING -> APPROVED and stamps approvedAt. The update is a
// compare-and-swap on the status column so only one of two concurrent
// approvals wins.
func (os *OrderService) Approve(orderID uint) error {
	now := time.Now()
	return os.transition(orderID, []string{models.OrderPending}, map[string]interface{}{
		"status":      models.OrderApproved,
		"approved_at": now,
	})
}

// Reject moves PENDING -> REJECTED.
func (os *OrderService) Reject(orderID uint) error {
	return os.transition(orderID, []string{models.OrderPending}, map[string]interface{}{
		"status": models.OrderRejected,
	})
}

// Finish moves APPROVED -> FINISHED.
func (os *OrderService) Finish(orderID uint) error {
	return os.transition(orderID, []string{models.OrderApproved}, map[string]interface{}{
		"status": models.OrderFinished,
	})
}

// SetPending is idempotent: a PENDING order stays PENDING. Any other source
// state fails, so REJECTED and FINISHED stay terminal. No row is written;
// MySQL reports zero affected rows for same-value updates, which would be
// indistinguishable from a lost CAS.
func (os *OrderService) SetPending(orderID uint) error {
	var order models.CustomerOrder
	if err := os.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if order.Status != models.OrderPending {
		return ErrInvalidState
	}
	return nil
}

// transition performs a guarded single-row status update. Zero rows affected
// means either the order does not exist or its current status is not an
// allowed source state.
func (os *OrderService) transition(orderID uint, from []string, set map[string]interface{}) error {
	res := os.DB.Model(&models.CustomerOrder{}).
		Where("id = ? AND status IN ?", orderID, from).
		Updates(set)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := os.DB.Model(&models.CustomerOrder{}).
			Where("id = ?", orderID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrOrderNotFound
		}
		return ErrInvalidState
	}
	return nil
}

// CloseCurrentVisit clears the table identified by booth and table number.
func (os *OrderService) CloseCurrentVisit(boothID uint, tableNo int) error {
	var table models.BoothTable
	if err := os.DB.Where("booth_id = ? AND table_number = ?", boothID, tableNo).
		First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTableNotFound
		}
		return err
	}
	return os.Visits.Close(table.ID)
}

// CloseCurrentVisitByTableID clears the table identified by its id.
func (os *OrderService) CloseCurrentVisitByTableID(tableID uint) error {
	return os.Visits.Close(tableID)
}

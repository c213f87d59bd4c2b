package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bootheat/bootheat-server/models"
)

// QueryService serves the read paths: table context, order details and order
// history. It never mutates anything.
type QueryService struct {
	DB     *gorm.DB
	Visits *VisitService
}

func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{DB: db, Visits: NewVisitService(db)}
}

type MenuBrief struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	Price      int    `json:"price"`
	Available  bool   `json:"available"`
	Category   string `json:"category"`
}

type TableInfoResponse struct {
	BoothID     uint        `json:"boothId"`
	TableNumber int         `json:"tableNumber"`
	Menus       []MenuBrief `json:"menus"`
}

type VisitInfo struct {
	VisitID   uint       `json:"visitId"`
	VisitNo   int        `json:"visitNo"`
	Status    string     `json:"status"`
	StartedAt time.Time  `json:"startedAt"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
}

type OrderRow struct {
	OrderID     uint       `json:"orderId"`
	OrderCode   string     `json:"orderCode"`
	Status      string     `json:"status"`
	TotalAmount int        `json:"totalAmount"`
	CreatedAt   time.Time  `json:"createdAt"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	VisitID     uint       `json:"visitId"`
}

type TableContextResponse struct {
	BoothID     uint       `json:"boothId"`
	TableNumber int        `json:"tableNumber"`
	Visit       *VisitInfo `json:"visit,omitempty"`
	Orders      []OrderRow `json:"orders"`
}

type OrderItemRow struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type PaymentData struct {
	PayerName string `json:"payerName"`
	Amount    int    `json:"amount"`
}

type OrderDetail struct {
	Order   OrderData      `json:"customerOrder"`
	Items   []OrderItemRow `json:"orderItems"`
	Payment *PaymentData   `json:"paymentInfo,omitempty"`
}

type OrderData struct {
	OrderID     uint       `json:"orderId"`
	TableID     uint       `json:"tableId"`
	VisitID     uint       `json:"visitId"`
	Status      string     `json:"status"`
	OrderCode   string     `json:"orderCode"`
	TotalAmount int        `json:"totalAmount"`
	CreatedAt   time.Time  `json:"createdAt"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
}

func orderRowFrom(o *models.CustomerOrder) OrderRow {
	return OrderRow{
		OrderID:     o.ID,
		OrderCode:   o.OrderCode,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		ApprovedAt:  o.ApprovedAt,
		VisitID:     o.VisitID,
	}
}

// TableInfo returns the table's booth menu (available items only, sorted by
// name) for the customer menu page.
func (qs *QueryService) TableInfo(boothID uint, tableNo int) (*TableInfoResponse, error) {
	var table models.BoothTable
	if err := qs.DB.Where("booth_id = ? AND table_number = ?", boothID, tableNo).
		First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}

	var menus []models.MenuItem
	if err := qs.DB.Where("booth_id = ? AND available = ?", boothID, true).
		Order("name ASC").
		Find(&menus).Error; err != nil {
		return nil, err
	}

	briefs := make([]MenuBrief, 0, len(menus))
	for _, m := range menus {
		briefs = append(briefs, MenuBrief{
			MenuItemID: m.ID,
			Name:       m.Name,
			Price:      m.Price,
			Available:  m.Available,
			Category:   m.Category,
		})
	}

	return &TableInfoResponse{
		BoothID:     boothID,
		TableNumber: table.TableNumber,
		Menus:       briefs,
	}, nil
}

// TableContext returns the table's OPEN visit (if any) and its ten most
// recent orders.
func (qs *QueryService) TableContext(boothID uint, tableNo int) (*TableContextResponse, error) {
	var table models.BoothTable
	if err := qs.DB.Where("booth_id = ? AND table_number = ?", boothID, tableNo).
		First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}

	var visitInfo *VisitInfo
	var visit models.TableVisit
	err := qs.DB.Where("table_id = ? AND status = ?", table.ID, models.VisitOpen).
		Order("started_at DESC").
		First(&visit).Error
	if err == nil {
		visitInfo = &VisitInfo{
			VisitID:   visit.ID,
			VisitNo:   visit.VisitNo,
			Status:    visit.Status,
			StartedAt: visit.StartedAt,
			ClosedAt:  visit.ClosedAt,
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var orders []models.CustomerOrder
	if err := qs.DB.Where("table_id = ?", table.ID).
		Order("created_at DESC").
		Limit(10).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	rows := make([]OrderRow, 0, len(orders))
	for i := range orders {
		rows = append(rows, orderRowFrom(&orders[i]))
	}

	return &TableContextResponse{
		BoothID:     boothID,
		TableNumber: tableNo,
		Visit:       visitInfo,
		Orders:      rows,
	}, nil
}

// LatestVisitOrders lists the orders of the table's current visit, newest
// first. A table with no visit history yields an empty list, not an error.
func (qs *QueryService) LatestVisitOrders(tableID uint) ([]OrderRow, error) {
	visit, err := qs.Visits.Latest(tableID)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return []OrderRow{}, nil
	}

	var orders []models.CustomerOrder
	if err := qs.DB.Where("visit_id = ?", visit.ID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	rows := make([]OrderRow, 0, len(orders))
	for i := range orders {
		rows = append(rows, orderRowFrom(&orders[i]))
	}
	return rows, nil
}

// OrderDetail returns one order with its line items and payment record.
func (qs *QueryService) OrderDetail(orderID uint) (*OrderDetail, error) {
	var order models.CustomerOrder
	if err := qs.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return qs.orderDetailOf(&order)
}

func (qs *QueryService) orderDetailOf(order *models.CustomerOrder) (*OrderDetail, error) {
	var items []models.OrderItem
	if err := qs.DB.Preload("MenuItem").
		Where("order_id = ?", order.ID).
		Find(&items).Error; err != nil {
		return nil, err
	}

	itemRows := make([]OrderItemRow, 0, len(items))
	for _, it := range items {
		itemRows = append(itemRows, OrderItemRow{
			Name:     it.MenuItem.Name,
			Quantity: it.Quantity,
		})
	}

	var paymentData *PaymentData
	var payment models.PaymentInfo
	err := qs.DB.Where("order_id = ?", order.ID).First(&payment).Error
	if err == nil {
		paymentData = &PaymentData{PayerName: payment.PayerName, Amount: payment.Amount}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &OrderDetail{
		Order: OrderData{
			OrderID:     order.ID,
			TableID:     order.TableID,
			VisitID:     order.VisitID,
			Status:      order.Status,
			OrderCode:   order.OrderCode,
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
			ApprovedAt:  order.ApprovedAt,
		},
		Items:   itemRows,
		Payment: paymentData,
	}, nil
}

// TableOrderDetails lists the full order history of a table, newest first.
// The table must belong to the given booth.
func (qs *QueryService) TableOrderDetails(boothID, tableID uint) ([]OrderDetail, error) {
	var table models.BoothTable
	if err := qs.DB.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	if table.BoothID != boothID {
		return nil, ErrBoothTableMismatch
	}

	var orders []models.CustomerOrder
	if err := qs.DB.Where("booth_id = ? AND table_id = ?", boothID, tableID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	details := make([]OrderDetail, 0, len(orders))
	for i := range orders {
		d, err := qs.orderDetailOf(&orders[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

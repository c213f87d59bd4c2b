package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/bootheat/bootheat-server/models"
)

// StatsService derives sales reports from the accumulated order history.
// Everything here is read-only; slightly stale numbers under concurrent
// writes are fine.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

type MenuTopItem struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	Qty        int64  `json:"qty"`
	Amount     int64  `json:"amount"`
}

type TodayStatsResponse struct {
	BoothID     uint          `json:"boothId"`
	Date        string        `json:"date"`
	TotalOrders int64         `json:"totalOrders"`
	TotalAmount int64         `json:"totalAmount"`
	PeakHour    *int          `json:"peakHour"`
	TopItems    []MenuTopItem `json:"topItems"`
}

type MenuRankingResponse struct {
	BoothID uint          `json:"boothId"`
	Date    string        `json:"date"`
	Metric  string        `json:"metric"`
	Items   []MenuTopItem `json:"items"`
}

type StatsSummaryResponse struct {
	Date         string `json:"date"`
	TotalSales   int64  `json:"totalSales"`
	OrderNumbers int64  `json:"orderNumbers"`
}

// AllBoothsSummaryResponse keeps the legacy field spelling
// ("totalSalse"); the dashboard frontend reads it as-is.
type AllBoothsSummaryResponse struct {
	TotalSalse   int64 `json:"totalSalse"`
	OrderNumbers int64 `json:"orderNumbers"`
}

type MenuSalesItem struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	TotalSales int64  `json:"totalSales"`
}

type OrderItemBrief struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  int    `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
	LineTotal  int64  `json:"lineTotal"`
}

type OrderWithItems struct {
	OrderID     uint             `json:"orderId"`
	BoothID     uint             `json:"boothId"`
	TotalAmount int              `json:"totalAmount"`
	CreatedAt   time.Time        `json:"createdAt"`
	OrderItems  []OrderItemBrief `json:"orderItems"`
}

// dayRange returns the [start, end) window covering the given calendar day.
func dayRange(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

func dateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// windowTotals counts orders and sums totalAmount in [start, end) for one
// booth, or for all booths when boothID is 0. Empty windows yield (0, 0).
func (ss *StatsService) windowTotals(boothID uint, start, end time.Time) (int64, int64, error) {
	var row struct {
		Cnt    int64
		Amount int64
	}
	q := ss.DB.Model(&models.CustomerOrder{}).
		Select("COUNT(*) AS cnt, COALESCE(SUM(total_amount), 0) AS amount").
		Where("created_at >= ? AND created_at < ?", start, end)
	if boothID != 0 {
		q = q.Where("booth_id = ?", boothID)
	}
	if err := q.Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Cnt, row.Amount, nil
}

// peakHour buckets the booth's orders by hour of day and returns the hour
// with the most orders. Ties break toward the smaller hour; nil when the
// window is empty.
func (ss *StatsService) peakHour(boothID uint, start, end time.Time) (*int, error) {
	var createdAts []time.Time
	err := ss.DB.Model(&models.CustomerOrder{}).
		Where("booth_id = ? AND created_at >= ? AND created_at < ?", boothID, start, end).
		Pluck("created_at", &createdAts).Error
	if err != nil {
		return nil, err
	}
	if len(createdAts) == 0 {
		return nil, nil
	}

	var buckets [24]int
	for _, t := range createdAts {
		buckets[t.Hour()]++
	}
	peak := 0
	for h := 1; h < 24; h++ {
		if buckets[h] > buckets[peak] {
			peak = h
		}
	}
	return &peak, nil
}

// aggregateMenu sums quantity and quantity*unitPrice per menu item over the
// orders in [start, end). Rows come back unsorted; callers apply their own
// ordering.
func (ss *StatsService) aggregateMenu(boothID uint, start, end time.Time) ([]MenuTopItem, error) {
	var rows []MenuTopItem
	err := ss.DB.Table("order_items").
		Select("order_items.menu_item_id AS menu_item_id, menu_items.name AS name, "+
			"SUM(order_items.quantity) AS qty, "+
			"SUM(order_items.quantity * order_items.unit_price) AS amount").
		Joins("JOIN customer_orders ON customer_orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("customer_orders.booth_id = ? AND customer_orders.created_at >= ? AND customer_orders.created_at < ?",
			boothID, start, end).
		Group("order_items.menu_item_id, menu_items.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TodayStats reports the booth's totals, peak hour and top menu items for the
// current day. The top list orders by quantity, then amount, both descending.
func (ss *StatsService) TodayStats(boothID uint, topN int) (*TodayStatsResponse, error) {
	return ss.StatsByDate(boothID, time.Now(), topN)
}

// StatsByDate is TodayStats for an arbitrary day.
func (ss *StatsService) StatsByDate(boothID uint, date time.Time, topN int) (*TodayStatsResponse, error) {
	start, end := dayRange(date)

	orders, amount, err := ss.windowTotals(boothID, start, end)
	if err != nil {
		return nil, err
	}

	peak, err := ss.peakHour(boothID, start, end)
	if err != nil {
		return nil, err
	}

	items, err := ss.aggregateMenu(boothID, start, end)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Qty != items[j].Qty {
			return items[i].Qty > items[j].Qty
		}
		return items[i].Amount > items[j].Amount
	})
	if len(items) > topN {
		items = items[:topN]
	}

	return &TodayStatsResponse{
		BoothID:     boothID,
		Date:        dateString(start),
		TotalOrders: orders,
		TotalAmount: amount,
		PeakHour:    peak,
		TopItems:    items,
	}, nil
}

// Ranking orders today's menu aggregation by the requested metric ("amount"
// or anything else meaning "qty"), descending, with name ascending as the
// tie-break. This tie-break intentionally differs from TodayStats.
func (ss *StatsService) Ranking(boothID uint, metric string, limit int) (*MenuRankingResponse, error) {
	start, end := dayRange(time.Now())

	items, err := ss.aggregateMenu(boothID, start, end)
	if err != nil {
		return nil, err
	}

	byAmount := metric == "amount"
	sort.SliceStable(items, func(i, j int) bool {
		var vi, vj int64
		if byAmount {
			vi, vj = items[i].Amount, items[j].Amount
		} else {
			vi, vj = items[i].Qty, items[j].Qty
		}
		if vi != vj {
			return vi > vj
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > limit {
		items = items[:limit]
	}

	return &MenuRankingResponse{
		BoothID: boothID,
		Date:    dateString(start),
		Metric:  metric,
		Items:   items,
	}, nil
}

// StatsSummaryByDate returns the booth's order count and sales sum for a day.
func (ss *StatsService) StatsSummaryByDate(boothID uint, date time.Time) (*StatsSummaryResponse, error) {
	start, end := dayRange(date)
	orders, sales, err := ss.windowTotals(boothID, start, end)
	if err != nil {
		return nil, err
	}
	return &StatsSummaryResponse{
		Date:         dateString(start),
		TotalSales:   sales,
		OrderNumbers: orders,
	}, nil
}

// MenuSales lists per-menu revenue for a day, highest first.
func (ss *StatsService) MenuSales(boothID uint, date time.Time) ([]MenuSalesItem, error) {
	start, end := dayRange(date)
	rows, err := ss.aggregateMenu(boothID, start, end)
	if err != nil {
		return nil, err
	}
	items := make([]MenuSalesItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, MenuSalesItem{
			MenuItemID: r.MenuItemID,
			Name:       r.Name,
			TotalSales: r.Amount,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TotalSales > items[j].TotalSales
	})
	return items, nil
}

// TotalOrdersForMenu sums the lifetime ordered quantity of one menu item.
func (ss *StatsService) TotalOrdersForMenu(boothID, menuItemID uint) (int64, error) {
	var total int64
	err := ss.DB.Table("order_items").
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Joins("JOIN customer_orders ON customer_orders.id = order_items.order_id").
		Where("customer_orders.booth_id = ? AND order_items.menu_item_id = ?", boothID, menuItemID).
		Scan(&total).Error
	return total, err
}

// AllBoothsOrders groups one day's orders by booth, keeping per-order line
// detail. Orders are fetched booth ascending, creation ascending.
func (ss *StatsService) AllBoothsOrders(date time.Time) (map[uint][]OrderWithItems, error) {
	start, end := dayRange(date)

	var orders []models.CustomerOrder
	err := ss.DB.Where("created_at >= ? AND created_at < ?", start, end).
		Order("booth_id ASC, created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	grouped := make(map[uint][]OrderWithItems)
	if len(orders) == 0 {
		return grouped, nil
	}

	orderIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	var items []models.OrderItem
	if err := ss.DB.Preload("MenuItem").
		Where("order_id IN ?", orderIDs).
		Find(&items).Error; err != nil {
		return nil, err
	}

	itemsByOrder := make(map[uint][]OrderItemBrief)
	for _, it := range items {
		itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], OrderItemBrief{
			MenuItemID: it.MenuItemID,
			Name:       it.MenuItem.Name,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
			LineTotal:  int64(it.UnitPrice) * int64(it.Quantity),
		})
	}

	for _, o := range orders {
		grouped[o.BoothID] = append(grouped[o.BoothID], OrderWithItems{
			OrderID:     o.ID,
			BoothID:     o.BoothID,
			TotalAmount: o.TotalAmount,
			CreatedAt:   o.CreatedAt,
			OrderItems:  itemsByOrder[o.ID],
		})
	}
	return grouped, nil
}

// AllBoothsSummary totals one day's orders across every booth.
func (ss *StatsService) AllBoothsSummary(date time.Time) (*AllBoothsSummaryResponse, error) {
	start, end := dayRange(date)
	orders, sales, err := ss.windowTotals(0, start, end)
	if err != nil {
		return nil, err
	}
	return &AllBoothsSummaryResponse{
		TotalSalse:   sales,
		OrderNumbers: orders,
	}, nil
}

// VisitDurations returns the length in minutes of every visit that started on
// the given day and has been closed. Open visits are skipped.
func (ss *StatsService) VisitDurations(date time.Time) ([]int64, error) {
	start, end := dayRange(date)

	var visits []models.TableVisit
	err := ss.DB.Where("started_at >= ? AND started_at < ? AND closed_at IS NOT NULL", start, end).
		Order("started_at ASC").
		Find(&visits).Error
	if err != nil {
		return nil, err
	}

	durations := make([]int64, 0, len(visits))
	for _, v := range visits {
		durations = append(durations, int64(v.ClosedAt.Sub(v.StartedAt).Minutes()))
	}
	return durations, nil
}

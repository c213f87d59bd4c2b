package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bootheat/bootheat-server/controllers"
	"github.com/bootheat/bootheat-server/models"
)

func setupStatsRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	statsCtrl := controllers.NewStatsController(db)
	router.GET("/api/manager/booths/:booth_id/stats/today", statsCtrl.TodayStats)
	router.GET("/api/manager/booths/:booth_id/stats/date/:date", statsCtrl.SummaryByDate)
	router.GET("/api/manager/booths/:booth_id/stats/menu-sales", statsCtrl.MenuSales)
	router.GET("/api/manager/booths/:booth_id/menus/:menu_id/metrics/total-orders", statsCtrl.MenuTotalOrders)
	router.GET("/api/manager/rankings/menu", statsCtrl.Ranking)
	router.GET("/api/manager/stats/booths/date/:date", statsCtrl.AllBoothsSummary)
	router.GET("/api/manager/order/stats/date/:date", statsCtrl.AllBoothsOrders)
	router.GET("/api/manager/tableVisit/stats/date/:date", statsCtrl.VisitDurations)
	return router
}

func seedFinishedOrder(t *testing.T, db *gorm.DB, booth *models.Booth, table *models.BoothTable, menu *models.MenuItem, qty int, createdAt time.Time) {
	t.Helper()
	visit := models.TableVisit{TableID: table.ID, VisitNo: 1, Status: models.VisitOpen, StartedAt: createdAt}
	require.NoError(t, db.Create(&visit).Error)
	order := models.CustomerOrder{
		BoothID: booth.ID, TableID: table.ID, VisitID: visit.ID,
		Status: models.OrderFinished, TotalAmount: qty * menu.Price, CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&order).Error)
	item := models.OrderItem{OrderID: order.ID, MenuItemID: menu.ID, Quantity: qty, UnitPrice: menu.Price}
	require.NoError(t, db.Create(&item).Error)
}

func TestTodayStatsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	booth, table, menu := seedBoothWithTableAndMenu(t, db)
	router := setupStatsRouter(db)

	seedFinishedOrder(t, db, booth, table, menu, 2, time.Now())

	w := doJSON(t, router, "GET", fmt.Sprintf("/api/manager/booths/%d/stats/today", booth.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Today stats", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["totalOrders"])
	assert.Equal(t, float64(2*menu.Price), data["totalAmount"])
	assert.NotNil(t, data["peakHour"])
	topItems := data["topItems"].([]interface{})
	require.Len(t, topItems, 1)
	assert.Equal(t, menu.Name, topItems[0].(map[string]interface{})["name"])
}

func TestSummaryByDateEndpoint(t *testing.T) {
	db := setupTestDB(t)
	booth, table, menu := seedBoothWithTableAndMenu(t, db)
	router := setupStatsRouter(db)

	day := time.Date(2026, 5, 1, 11, 0, 0, 0, time.Local)
	seedFinishedOrder(t, db, booth, table, menu, 3, day)

	w := doJSON(t, router, "GET", fmt.Sprintf("/api/manager/booths/%d/stats/date/2026-05-01", booth.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "2026-05-01", data["date"])
	assert.Equal(t, float64(3*menu.Price), data["totalSales"])
	assert.Equal(t, float64(1), data["orderNumbers"])

	// Day with no orders still answers with zeros.
	w = doJSON(t, router, "GET", fmt.Sprintf("/api/manager/booths/%d/stats/date/2026-05-02", booth.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["orderNumbers"])

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/manager/booths/%d/stats/date/not-a-date", booth.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAllBoothsSummaryEndpointUsesLegacyKey(t *testing.T) {
	db := setupTestDB(t)
	booth, table, menu := seedBoothWithTableAndMenu(t, db)
	router := setupStatsRouter(db)

	day := time.Date(2026, 5, 1, 12, 0, 0, 0, time.Local)
	seedFinishedOrder(t, db, booth, table, menu, 1, day)

	w := doJSON(t, router, "GET", "/api/manager/stats/booths/date/2026-05-01", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"totalSalse"`)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(menu.Price), resp["totalSalse"])
	assert.Equal(t, float64(1), resp["orderNumbers"])
}

func TestRankingEndpoint(t *testing.T) {
	db := setupTestDB(t)
	booth, table, menu := seedBoothWithTableAndMenu(t, db)
	router := setupStatsRouter(db)

	seedFinishedOrder(t, db, booth, table, menu, 4, time.Now())

	w := doJSON(t, router, "GET", fmt.Sprintf("/api/manager/rankings/menu?boothId=%d&metric=amount&limit=3", booth.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "amount", data["metric"])
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, float64(4*menu.Price), items[0].(map[string]interface{})["amount"])

	w = doJSON(t, router, "GET", "/api/manager/rankings/menu", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "boothId is required")
}

func TestMenuTotalOrdersEndpoint(t *testing.T) {
	db := setupTestDB(t)
	booth, table, menu := seedBoothWithTableAndMenu(t, db)
	router := setupStatsRouter(db)

	seedFinishedOrder(t, db, booth, table, menu, 2, time.Now().Add(-24*time.Hour))
	seedFinishedOrder(t, db, booth, table, menu, 3, time.Now())

	w := doJSON(t, router, "GET",
		fmt.Sprintf("/api/manager/booths/%d/menus/%d/metrics/total-orders", booth.ID, menu.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(5), data["totalOrders"])
}

func TestVisitDurationsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	_, table, _ := seedBoothWithTableAndMenu(t, db)
	router := setupStatsRouter(db)

	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.Local)
	closedAt := day.Add(10*time.Hour + 30*time.Minute)
	visit := models.TableVisit{
		TableID: table.ID, VisitNo: 1, Status: models.VisitClosed,
		StartedAt: day.Add(10 * time.Hour), ClosedAt: &closedAt,
	}
	require.NoError(t, db.Create(&visit).Error)

	w := doJSON(t, router, "GET", "/api/manager/tableVisit/stats/date/2026-05-01", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var durations []int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &durations))
	require.Len(t, durations, 1)
	assert.Equal(t, int64(30), durations[0])
}

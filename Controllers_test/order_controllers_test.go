package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bootheat/bootheat-server/controllers"
	"github.com/bootheat/bootheat-server/models"
	"github.com/bootheat/bootheat-server/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Booth{},
		&models.BoothTable{},
		&models.TableVisit{},
		&models.MenuItem{},
		&models.CustomerOrder{},
		&models.OrderItem{},
		&models.PaymentInfo{},
		&models.ManagerUser{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedBoothWithTableAndMenu(t *testing.T, db *gorm.DB) (*models.Booth, *models.BoothTable, *models.MenuItem) {
	t.Helper()
	booth := models.Booth{Name: "Sate Corner", CreatedAt: time.Now()}
	require.NoError(t, db.Create(&booth).Error)
	table := models.BoothTable{BoothID: booth.ID, TableNumber: 1, Active: true, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&table).Error)
	menu := models.MenuItem{
		BoothID: booth.ID, Name: "Sate Ayam", Category: models.CategoryFood,
		Price: 5000, Available: true, CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&menu).Error)
	return &booth, &table, &menu
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	orderCtrl := controllers.NewOrderController(db)
	router.POST("/api/orders", orderCtrl.CreateOrder)
	router.GET("/api/orders/:order_id", orderCtrl.GetOrderByID)
	router.POST("/api/manager/orders/:order_id/status/:status", orderCtrl.ChangeStatus)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndGetOrder(t *testing.T) {
	db := setupTestDB(t)
	booth, _, menu := seedBoothWithTableAndMenu(t, db)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"boothId": booth.ID,
		"tableNo": 1,
		"items": []map[string]interface{}{
			{"foodId": menu.ID, "name": "Sate Ayam", "price": 5000, "quantity": 2},
		},
		"payment": map[string]interface{}{"payerName": "Budi", "amount": 10000},
	}
	w := doJSON(t, router, "POST", "/api/orders", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var createResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	assert.Equal(t, "Order created", createResp["message"])
	data := createResp["data"].(map[string]interface{})
	assert.Equal(t, "PENDDING", data["status"])
	assert.Equal(t, float64(10000), data["amount"])
	orderID := int(data["orderId"].(float64))

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var getResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &getResp))
	assert.Equal(t, "Order detail", getResp["message"])
	getData := getResp["data"].(map[string]interface{})
	order := getData["customerOrder"].(map[string]interface{})
	assert.Equal(t, float64(orderID), order["orderId"])
	assert.Equal(t, "PENDING", order["status"])
	items := getData["orderItems"].([]interface{})
	require.Len(t, items, 1)
	payment := getData["paymentInfo"].(map[string]interface{})
	assert.Equal(t, "Budi", payment["payerName"])
}

func TestCreateOrderUnknownBooth(t *testing.T) {
	db := setupTestDB(t)
	seedBoothWithTableAndMenu(t, db)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"boothId": 999,
		"tableNo": 1,
		"items": []map[string]interface{}{
			{"foodId": 1, "price": 5000, "quantity": 1},
		},
		"payment": map[string]interface{}{"payerName": "Budi", "amount": 5000},
	}
	w := doJSON(t, router, "POST", "/api/orders", payload)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "BOOTH_NOT_FOUND")
}

func TestChangeOrderStatusFlow(t *testing.T) {
	db := setupTestDB(t)
	booth, _, menu := seedBoothWithTableAndMenu(t, db)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"boothId": booth.ID,
		"tableNo": 1,
		"items": []map[string]interface{}{
			{"foodId": menu.ID, "price": 5000, "quantity": 1},
		},
		"payment": map[string]interface{}{"payerName": "Budi", "amount": 5000},
	}
	w := doJSON(t, router, "POST", "/api/orders", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	var createResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	orderID := int(createResp["data"].(map[string]interface{})["orderId"].(float64))

	w = doJSON(t, router, "POST", fmt.Sprintf("/api/manager/orders/%d/status/APPROVED", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Approving twice trips the state guard.
	w = doJSON(t, router, "POST", fmt.Sprintf("/api/manager/orders/%d/status/APPROVED", orderID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")

	w = doJSON(t, router, "POST", fmt.Sprintf("/api/manager/orders/%d/status/FINISHED", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", fmt.Sprintf("/api/manager/orders/%d/status/BOGUS", orderID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNKNOWN_STATUS")
}

func TestChangeOrderStatusBodyMismatch(t *testing.T) {
	db := setupTestDB(t)
	booth, _, menu := seedBoothWithTableAndMenu(t, db)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"boothId": booth.ID,
		"tableNo": 1,
		"items": []map[string]interface{}{
			{"foodId": menu.ID, "price": 5000, "quantity": 1},
		},
		"payment": map[string]interface{}{"payerName": "Budi", "amount": 5000},
	}
	w := doJSON(t, router, "POST", "/api/orders", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	var createResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	orderID := int(createResp["data"].(map[string]interface{})["orderId"].(float64))

	w = doJSON(t, router, "POST", fmt.Sprintf("/api/manager/orders/%d/status/APPROVED", orderID),
		map[string]interface{}{"order_id": orderID + 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ORDER_ID_MISMATCH")

	w = doJSON(t, router, "POST", fmt.Sprintf("/api/manager/orders/%d/status/APPROVED", orderID),
		map[string]interface{}{"status": "REJECTED"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "STATUS_MISMATCH")

	// Matching body passes.
	w = doJSON(t, router, "POST", fmt.Sprintf("/api/manager/orders/%d/status/APPROVED", orderID),
		map[string]interface{}{"order_id": orderID, "status": "approved"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bootheat/bootheat-server/services"
	"github.com/bootheat/bootheat-server/utils"
)

type TableController struct {
	Tables  *services.TableService
	Orders  *services.OrderService
	Queries *services.QueryService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		Tables:  services.NewTableService(db),
		Orders:  services.NewOrderService(db),
		Queries: services.NewQueryService(db),
	}
}

// CreateTable -> staff adds a table to the booth
func (tc *TableController) CreateTable(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}

	var req services.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.Create(boothID, &req)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.InfoLogger.Printf("Table %d created for booth %d", table.TableNumber, boothID)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// ListTables -> booth tables with live visit status
func (tc *TableController) ListTables(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}

	items, err := tc.Tables.ListWithVisitStatus(boothID)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of tables", items)
}

// CloseVisit -> staff clears the table; idempotent when already clear
func (tc *TableController) CloseVisit(c *gin.Context) {
	tableID, ok := parseUintParam(c, "table_id")
	if !ok {
		return
	}

	var body struct {
		TableID *uint `json:"table_id"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		if body.TableID != nil && *body.TableID != tableID {
			utils.RespondError(c, services.HTTPStatus(services.ErrTableIDMismatch), services.ErrTableIDMismatch)
			return
		}
	}

	if err := tc.Orders.CloseCurrentVisitByTableID(tableID); err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.InfoLogger.Printf("Visit closed on table %d", tableID)
	utils.RespondJSON(c, http.StatusOK, "Visit closed", gin.H{"table_id": tableID})
}

// TableInfo -> booth menu for the table's QR landing page
func (tc *TableController) TableInfo(c *gin.Context) {
	boothID, err := strconv.ParseUint(c.Query("boothId"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	tableNo, err := strconv.Atoi(c.Query("tableNo"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	info, err := tc.Queries.TableInfo(uint(boothID), tableNo)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table info", info)
}

// TableContext -> OPEN visit plus recent orders for one table (dev console)
func (tc *TableController) TableContext(c *gin.Context) {
	boothID, err := strconv.ParseUint(c.Query("boothId"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	tableNo, err := strconv.Atoi(c.Query("tableNo"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ctx, err := tc.Queries.TableContext(uint(boothID), tableNo)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table context", ctx)
}

// LatestVisitOrders -> order ids of the table's current visit, for the
// customer's order history page
func (tc *TableController) LatestVisitOrders(c *gin.Context) {
	tableID, ok := parseUintParam(c, "table_id")
	if !ok {
		return
	}

	rows, err := tc.Queries.LatestVisitOrders(tableID)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.OrderID)
	}

	utils.RespondJSON(c, http.StatusOK, "Latest visit orders", gin.H{"orderIds": ids})
}

// TableOrders -> full order history of one table, booth-scoped
func (tc *TableController) TableOrders(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}
	tableID, ok := parseUintParam(c, "table_id")
	if !ok {
		return
	}

	details, err := tc.Queries.TableOrderDetails(boothID, tableID)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table orders", details)
}

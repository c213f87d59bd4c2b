package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bootheat/bootheat-server/services"
	"github.com/bootheat/bootheat-server/utils"
)

type OrderController struct {
	Orders  *services.OrderService
	Queries *services.QueryService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		Orders:  services.NewOrderService(db),
		Queries: services.NewQueryService(db),
	}
}

// parseUintParam reads a numeric path parameter; responds 400 on garbage.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return uint(v), true
}

// CreateOrder -> customer checkout, order starts PENDING
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	resp, err := oc.Orders.CreateOrder(&req)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", resp)
}

// GetOrderByID -> detail of one order with items and payment
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}

	detail, err := oc.Queries.OrderDetail(orderID)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", detail)
}

// ChangeStatus -> staff drives the order through its state machine. The
// optional body repeats the id and status; mismatches are rejected.
func (oc *OrderController) ChangeStatus(c *gin.Context) {
	orderID, ok := parseUintParam(c, "order_id")
	if !ok {
		return
	}
	status := c.Param("status")

	var body struct {
		OrderID *uint  `json:"order_id"`
		Status  string `json:"status"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		if body.OrderID != nil && *body.OrderID != orderID {
			utils.RespondError(c, services.HTTPStatus(services.ErrOrderIDMismatch), services.ErrOrderIDMismatch)
			return
		}
		if body.Status != "" && !strings.EqualFold(body.Status, status) {
			utils.RespondError(c, services.HTTPStatus(services.ErrStatusMismatch), services.ErrStatusMismatch)
			return
		}
	}

	if err := oc.Orders.ChangeStatus(orderID, status); err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.InfoLogger.Printf("Order %d status changed to %s", orderID, status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", gin.H{"order_id": orderID})
}

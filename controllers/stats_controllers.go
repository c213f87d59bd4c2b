package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bootheat/bootheat-server/services"
	"github.com/bootheat/bootheat-server/utils"
)

type StatsController struct {
	Stats *services.StatsService
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{Stats: services.NewStatsService(db)}
}

func parseDateParam(c *gin.Context, name string) (time.Time, bool) {
	date, err := time.ParseInLocation("2006-01-02", c.Param(name), time.Local)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return time.Time{}, false
	}
	return date, true
}

// TodayStats -> totals, peak hour and top 5 menu items for today
func (sc *StatsController) TodayStats(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}

	topN := 5
	if raw := c.Query("top"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			topN = n
		}
	}

	resp, err := sc.Stats.TodayStats(boothID, topN)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Today stats", resp)
}

// Ranking -> today's menu ranking by qty or amount
func (sc *StatsController) Ranking(c *gin.Context) {
	boothID, err := strconv.ParseUint(c.Query("boothId"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	metric := c.DefaultQuery("metric", "qty")
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if n, convErr := strconv.Atoi(raw); convErr == nil && n > 0 {
			limit = n
		}
	}

	resp, err := sc.Stats.Ranking(uint(boothID), metric, limit)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu ranking", resp)
}

// SummaryByDate -> order count and sales of one booth for a day
func (sc *StatsController) SummaryByDate(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}
	date, ok := parseDateParam(c, "date")
	if !ok {
		return
	}

	resp, err := sc.Stats.StatsSummaryByDate(boothID, date)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Stats summary", resp)
}

// MenuSales -> per-menu revenue for a day (defaults to today)
func (sc *StatsController) MenuSales(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		date = parsed
	}

	items, err := sc.Stats.MenuSales(boothID, date)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu sales", items)
}

// MenuTotalOrders -> lifetime ordered quantity of one menu item
func (sc *StatsController) MenuTotalOrders(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}
	menuItemID, ok := parseUintParam(c, "menu_id")
	if !ok {
		return
	}

	total, err := sc.Stats.TotalOrdersForMenu(boothID, menuItemID)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu total orders", gin.H{
		"menuItemId":  menuItemID,
		"totalOrders": total,
	})
}

// AllBoothsOrders -> a day's orders grouped by booth, with line detail
func (sc *StatsController) AllBoothsOrders(c *gin.Context) {
	date, ok := parseDateParam(c, "date")
	if !ok {
		return
	}

	grouped, err := sc.Stats.AllBoothsOrders(date)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	// Raw body: the dashboard expects {boothId: [orders...]} at top level.
	c.JSON(http.StatusOK, grouped)
}

// AllBoothsSummary -> global order count and sales for a day
func (sc *StatsController) AllBoothsSummary(c *gin.Context) {
	date, ok := parseDateParam(c, "date")
	if !ok {
		return
	}

	resp, err := sc.Stats.AllBoothsSummary(date)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VisitDurations -> minutes of each closed visit started on the day
func (sc *StatsController) VisitDurations(c *gin.Context) {
	date, ok := parseDateParam(c, "date")
	if !ok {
		return
	}

	durations, err := sc.Stats.VisitDurations(date)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	c.JSON(http.StatusOK, durations)
}

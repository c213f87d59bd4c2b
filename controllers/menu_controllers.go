package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bootheat/bootheat-server/services"
	"github.com/bootheat/bootheat-server/utils"
)

type MenuController struct {
	Menus    *services.MenuService
	Managers *services.ManagerService
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{
		Menus:    services.NewMenuService(db),
		Managers: services.NewManagerService(db),
	}
}

// ListMenus -> customer-facing menu of a booth (available items only)
func (mc *MenuController) ListMenus(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}

	menus, err := mc.Menus.ListAvailable(boothID)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenu -> one menu item of a booth
func (mc *MenuController) GetMenu(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}
	menuItemID, ok := parseUintParam(c, "menu_id")
	if !ok {
		return
	}

	menu, err := mc.Menus.GetOne(boothID, menuItemID)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// BoothAccount -> payout account customers transfer to
func (mc *MenuController) BoothAccount(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}

	info, err := mc.Managers.GetAccountInfo(boothID)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booth account", info)
}

// CreateMenu -> manager adds a menu item
func (mc *MenuController) CreateMenu(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}

	var req services.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	req.BoothID = boothID

	menu, err := mc.Menus.Create(&req)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.InfoLogger.Printf("Menu %q created for booth %d", menu.Name, boothID)
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu -> partial update of a booth's menu item
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}
	menuItemID, ok := parseUintParam(c, "menu_id")
	if !ok {
		return
	}

	var req services.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu, err := mc.Menus.Update(boothID, menuItemID, &req)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu -> delete, or hide when order history references the item
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}
	menuItemID, ok := parseUintParam(c, "menu_id")
	if !ok {
		return
	}

	if err := mc.Menus.Delete(boothID, menuItemID); err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_item_id": menuItemID})
}

// ToggleAvailable -> flip sellability of a menu item
func (mc *MenuController) ToggleAvailable(c *gin.Context) {
	menuItemID, ok := parseUintParam(c, "menu_id")
	if !ok {
		return
	}

	available, err := mc.Menus.ToggleAvailable(menuItemID)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu availability updated", gin.H{"available": available})
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bootheat/bootheat-server/services"
	"github.com/bootheat/bootheat-server/utils"
)

type ManagerController struct {
	Managers *services.ManagerService
}

func NewManagerController(db *gorm.DB) *ManagerController {
	return &ManagerController{Managers: services.NewManagerService(db)}
}

// GetManager -> the booth's manager payload (no credentials)
func (mc *ManagerController) GetManager(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}

	payload, err := mc.Managers.GetPayload(boothID)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Manager data", payload)
}

// CreateManager -> register the booth's single manager account
func (mc *ManagerController) CreateManager(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}

	var body struct {
		services.ManagerAccountPayload
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payload, err := mc.Managers.Create(boothID, &body.ManagerAccountPayload, body.Password)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.InfoLogger.Printf("Manager %q created for booth %d", payload.Username, boothID)
	utils.RespondJSON(c, http.StatusCreated, "Manager created", payload)
}

// PatchManager -> partial update; omitted fields keep their value
func (mc *ManagerController) PatchManager(c *gin.Context) {
	boothID, ok := parseUintParam(c, "booth_id")
	if !ok {
		return
	}

	var payload services.ManagerAccountPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updated, err := mc.Managers.Update(boothID, &payload)
	if err != nil {
		utils.RespondError(c, services.HTTPStatus(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Manager updated", updated)
}

// Login -> manager credentials in, JWT out
func (mc *ManagerController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	token, manager, err := mc.Managers.Login(input.Username, input.Password)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	utils.InfoLogger.Printf("Manager %q logged in", manager.Username)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":    token,
		"role":     strings.ToLower(manager.Role),
		"booth_id": manager.BoothID,
	})
}

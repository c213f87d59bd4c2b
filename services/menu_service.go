package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bootheat/bootheat-server/models"
)

// MenuService manages a booth's menu catalog.
type MenuService struct {
	DB *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{DB: db}
}

type CreateMenuRequest struct {
	BoothID      uint    `json:"boothId" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Category     string  `json:"category"`
	Price        int     `json:"price"`
	Available    *bool   `json:"available"`
	Description  string  `json:"description"`
	ModelUrl     *string `json:"modelUrl"`
	PreviewImage *string `json:"previewImage"`
}

type UpdateMenuRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Price        *int    `json:"price"`
	Available    *bool   `json:"available"`
	Description  *string `json:"description"`
	ModelUrl     *string `json:"modelUrl"`
	PreviewImage *string `json:"previewImage"`
}

func normalizeCategory(raw string) (string, error) {
	cat := strings.ToUpper(strings.TrimSpace(raw))
	if cat == "" {
		return "", ErrCategoryRequired
	}
	if !models.ValidCategory(cat) {
		return "", ErrInvalidCategory
	}
	return cat, nil
}

// Create adds a menu item. Names are unique per booth.
func (ms *MenuService) Create(req *CreateMenuRequest) (*models.MenuItem, error) {
	var booth models.Booth
	if err := ms.DB.First(&booth, req.BoothID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoothNotFound
		}
		return nil, err
	}

	var count int64
	if err := ms.DB.Model(&models.MenuItem{}).
		Where("booth_id = ? AND name = ?", req.BoothID, req.Name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateMenuName
	}

	category, err := normalizeCategory(req.Category)
	if err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	menu := models.MenuItem{
		BoothID:      req.BoothID,
		Name:         req.Name,
		Category:     category,
		Price:        req.Price,
		Available:    available,
		Description:  req.Description,
		ModelUrl:     req.ModelUrl,
		PreviewImage: req.PreviewImage,
		CreatedAt:    time.Now(),
	}
	if err := ms.DB.Create(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// GetOne returns a booth's menu item, failing when it belongs elsewhere.
func (ms *MenuService) GetOne(boothID, menuItemID uint) (*models.MenuItem, error) {
	var menu models.MenuItem
	if err := ms.DB.Where("booth_id = ? AND id = ?", boothID, menuItemID).
		First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	return &menu, nil
}

// ListAvailable returns the booth's sellable menu sorted by name.
func (ms *MenuService) ListAvailable(boothID uint) ([]models.MenuItem, error) {
	var menus []models.MenuItem
	err := ms.DB.Where("booth_id = ? AND available = ?", boothID, true).
		Order("name ASC").
		Find(&menus).Error
	return menus, err
}

// Update applies the non-nil fields of req to the booth's menu item.
func (ms *MenuService) Update(boothID, menuItemID uint, req *UpdateMenuRequest) (*models.MenuItem, error) {
	menu, err := ms.GetOne(boothID, menuItemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		menu.Name = *req.Name
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		category, err := normalizeCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		menu.Category = category
	}
	if req.Price != nil {
		menu.Price = *req.Price
	}
	if req.Available != nil {
		menu.Available = *req.Available
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.ModelUrl != nil {
		menu.ModelUrl = req.ModelUrl
	}
	if req.PreviewImage != nil {
		menu.PreviewImage = req.PreviewImage
	}

	if err := ms.DB.Save(menu).Error; err != nil {
		return nil, err
	}
	return menu, nil
}

// ToggleAvailable flips the item's availability and returns the new value.
func (ms *MenuService) ToggleAvailable(menuItemID uint) (bool, error) {
	var menu models.MenuItem
	if err := ms.DB.First(&menu, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrMenuNotFound
		}
		return false, err
	}
	menu.Available = !menu.Available
	if err := ms.DB.Save(&menu).Error; err != nil {
		return false, err
	}
	return menu.Available, nil
}

// Delete removes the booth's menu item. An item already referenced by order
// lines is only hidden (available=false) so past orders keep their snapshot.
func (ms *MenuService) Delete(boothID, menuItemID uint) error {
	var menu models.MenuItem
	if err := ms.DB.First(&menu, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuNotFound
		}
		return err
	}
	if menu.BoothID != boothID {
		return ErrMenuNotInBooth
	}

	var refs int64
	if err := ms.DB.Model(&models.OrderItem{}).
		Where("menu_item_id = ?", menuItemID).
		Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ms.DB.Model(&menu).Update("available", false).Error
	}
	return ms.DB.Delete(&menu).Error
}

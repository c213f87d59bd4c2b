package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bootheat/bootheat-server/models"
)

// TableService manages a booth's physical tables.
type TableService struct {
	DB     *gorm.DB
	Visits *VisitService
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{DB: db, Visits: NewVisitService(db)}
}

type CreateTableRequest struct {
	TableNumber int   `json:"tableNumber" binding:"required"`
	Active      *bool `json:"active"`
}

type TableListItem struct {
	TableID     uint   `json:"tableId"`
	TableNumber int    `json:"tableNumber"`
	Active      bool   `json:"active"`
	TableVisit  string `json:"tableVisit"` // OPEN or CLOSED
}

// Create registers a new table for the booth. Table numbers are unique per
// booth.
func (ts *TableService) Create(boothID uint, req *CreateTableRequest) (*models.BoothTable, error) {
	var booth models.Booth
	if err := ts.DB.First(&booth, boothID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoothNotFound
		}
		return nil, err
	}

	var count int64
	if err := ts.DB.Model(&models.BoothTable{}).
		Where("booth_id = ? AND table_number = ?", boothID, req.TableNumber).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateTableNo
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	table := models.BoothTable{
		BoothID:     boothID,
		TableNumber: req.TableNumber,
		Active:      active,
		CreatedAt:   time.Now(),
	}
	if err := ts.DB.Create(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// ListWithVisitStatus lists the booth's tables with each table's current
// occupancy (OPEN when a visit is in progress).
func (ts *TableService) ListWithVisitStatus(boothID uint) ([]TableListItem, error) {
	var tables []models.BoothTable
	err := ts.DB.Where("booth_id = ?", boothID).
		Order("table_number ASC").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}

	items := make([]TableListItem, 0, len(tables))
	for _, t := range tables {
		open, err := ts.Visits.HasOpenVisit(t.ID)
		if err != nil {
			return nil, err
		}
		status := models.VisitClosed
		if open {
			status = models.VisitOpen
		}
		items = append(items, TableListItem{
			TableID:     t.ID,
			TableNumber: t.TableNumber,
			Active:      t.Active,
			TableVisit:  status,
		})
	}
	return items, nil
}

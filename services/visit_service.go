package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bootheat/bootheat-server/models"
)

// VisitService owns the occupancy session of a booth table. A table has at
// most one OPEN visit at any time; visit numbers increase by one per table.
type VisitService struct {
	DB *gorm.DB
}

func NewVisitService(db *gorm.DB) *VisitService {
	return &VisitService{DB: db}
}

// lockTableRow loads the table row with a row lock so concurrent order
// creators on the same table serialize before deciding whether an OPEN visit
// exists. SQLite has no FOR UPDATE; its single-writer database lock already
// serializes the transaction.
func lockTableRow(tx *gorm.DB, tableID uint) (*models.BoothTable, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var table models.BoothTable
	if err := q.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &table, nil
}

// lockingRead adds FOR UPDATE so a reader that waited on the table row lock
// sees the winner's committed rows. Under InnoDB REPEATABLE READ a plain read
// would keep the snapshot taken before blocking and miss the new OPEN visit.
func lockingRead(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// ResolveForOrder returns the table's current OPEN visit, creating one with
// the next visit number when none exists. Must run inside the order-creation
// transaction; tx carries the row lock taken by lockTableRow.
func (vs *VisitService) ResolveForOrder(tx *gorm.DB, tableID uint) (*models.TableVisit, error) {
	var visit models.TableVisit
	err := lockingRead(tx).Where("table_id = ? AND status = ?", tableID, models.VisitOpen).
		Order("started_at DESC").
		First(&visit).Error
	if err == nil {
		return &visit, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	nextNo := 1
	var last models.TableVisit
	err = lockingRead(tx).Where("table_id = ?", tableID).
		Order("visit_no DESC").
		First(&last).Error
	if err == nil {
		nextNo = last.VisitNo + 1
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	visit = models.TableVisit{
		TableID:   tableID,
		VisitNo:   nextNo,
		Status:    models.VisitOpen,
		StartedAt: time.Now(),
	}
	if err := tx.Create(&visit).Error; err != nil {
		return nil, err
	}
	return &visit, nil
}

// Close ends the table's current OPEN visit. Having no OPEN visit is not an
// error; staff may press "clear table" twice.
func (vs *VisitService) Close(tableID uint) error {
	var table models.BoothTable
	if err := vs.DB.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTableNotFound
		}
		return err
	}

	now := time.Now()
	return vs.DB.Model(&models.TableVisit{}).
		Where("table_id = ? AND status = ?", tableID, models.VisitOpen).
		Updates(map[string]interface{}{
			"status":    models.VisitClosed,
			"closed_at": now,
		}).Error
}

// Latest returns the OPEN visit if present, otherwise the most recently
// started visit. Returns (nil, nil) when the table has never been visited.
func (vs *VisitService) Latest(tableID uint) (*models.TableVisit, error) {
	var visit models.TableVisit
	err := vs.DB.Where("table_id = ? AND status = ?", tableID, models.VisitOpen).
		Order("started_at DESC").
		First(&visit).Error
	if err == nil {
		return &visit, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = vs.DB.Where("table_id = ?", tableID).
		Order("started_at DESC").
		First(&visit).Error
	if err == nil {
		return &visit, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}

// HasOpenVisit reports whether the table currently has an OPEN visit.
func (vs *VisitService) HasOpenVisit(tableID uint) (bool, error) {
	var count int64
	err := vs.DB.Model(&models.TableVisit{}).
		Where("table_id = ? AND status = ?", tableID, models.VisitOpen).
		Count(&count).Error
	return count > 0, err
}

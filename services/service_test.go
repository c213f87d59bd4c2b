package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bootheat/bootheat-server/models"
	"github.com/bootheat/bootheat-server/utils"
)

// newTestDB opens a SQLite in-memory database scoped to the test name so
// parallel test functions never see each other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
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
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedBooth(t *testing.T, db *gorm.DB, name string) *models.Booth {
	t.Helper()
	booth := models.Booth{Name: name, Location: "Hall A", CreatedAt: time.Now()}
	if err := db.Create(&booth).Error; err != nil {
		t.Fatalf("failed to seed booth: %v", err)
	}
	return &booth
}

func seedTable(t *testing.T, db *gorm.DB, boothID uint, tableNo int) *models.BoothTable {
	t.Helper()
	table := models.BoothTable{BoothID: boothID, TableNumber: tableNo, Active: true, CreatedAt: time.Now()}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return &table
}

func seedMenu(t *testing.T, db *gorm.DB, boothID uint, name string, price int) *models.MenuItem {
	t.Helper()
	menu := models.MenuItem{
		BoothID:   boothID,
		Name:      name,
		Category:  models.CategoryFood,
		Price:     price,
		Available: true,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&menu).Error; err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}
	return &menu
}

package models

import "time"

type TableVisit struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	TableID   uint       `gorm:"not null;index" json:"table_id"`
	Table     BoothTable `gorm:"foreignKey:TableID" json:"-"`
	VisitNo   int        `gorm:"not null" json:"visit_no"`
	Status    string     `gorm:"type:varchar(20);not null" json:"status"`
	StartedAt time.Time  `gorm:"not null" json:"started_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

package utils

import (
	"fmt"
	"time"
)

// OrderCode builds the human-facing order identifier from the order's
// database id and creation date, e.g. id 42 on 2024-05-01 becomes
// "BE-20240501-000042". The id is assigned by the database, so the code can
// only be computed after the insert.
func OrderCode(id uint, t time.Time) string {
	return fmt.Sprintf("BE-%s-%06d", t.Format("20060102"), id)
}

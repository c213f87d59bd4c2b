package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderCode(t *testing.T) {
	ts := time.Date(2024, 5, 1, 18, 30, 0, 0, time.Local)
	assert.Equal(t, "BE-20240501-000042", OrderCode(42, ts))
	assert.Equal(t, "BE-20240501-123456", OrderCode(123456, ts))
}

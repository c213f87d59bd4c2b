package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootheat/bootheat-server/models"
)

func TestCloseWithoutOpenVisitIsNoop(t *testing.T) {
	db := newTestDB(t)
	booth := seedBooth(t, db, "Es Teh Booth")
	table := seedTable(t, db, booth.ID, 1)

	visits := NewVisitService(db)
	assert.NoError(t, visits.Close(table.ID))
	assert.NoError(t, visits.Close(table.ID), "pressing clear twice is fine")
}

func TestCloseUnknownTable(t *testing.T) {
	db := newTestDB(t)
	visits := NewVisitService(db)
	assert.ErrorIs(t, visits.Close(123), ErrTableNotFound)
}

func TestLatestVisit(t *testing.T) {
	db := newTestDB(t)
	booth := seedBooth(t, db, "Es Teh Booth")
	table := seedTable(t, db, booth.ID, 1)

	visits := NewVisitService(db)

	got, err := visits.Latest(table.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "table never visited")

	closedAt := time.Now().Add(-30 * time.Minute)
	old := models.TableVisit{
		TableID:   table.ID,
		VisitNo:   1,
		Status:    models.VisitClosed,
		StartedAt: time.Now().Add(-time.Hour),
		ClosedAt:  &closedAt,
	}
	require.NoError(t, db.Create(&old).Error)

	got, err = visits.Latest(table.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, old.ID, got.ID, "no OPEN visit, latest closed one wins")

	open := models.TableVisit{
		TableID:   table.ID,
		VisitNo:   2,
		Status:    models.VisitOpen,
		StartedAt: time.Now(),
	}
	require.NoError(t, db.Create(&open).Error)

	got, err = visits.Latest(table.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, open.ID, got.ID)

	hasOpen, err := visits.HasOpenVisit(table.ID)
	require.NoError(t, err)
	assert.True(t, hasOpen)
}

func TestCloseStampsClosedAt(t *testing.T) {
	db := newTestDB(t)
	booth := seedBooth(t, db, "Es Teh Booth")
	table := seedTable(t, db, booth.ID, 1)

	open := models.TableVisit{
		TableID:   table.ID,
		VisitNo:   1,
		Status:    models.VisitOpen,
		StartedAt: time.Now().Add(-15 * time.Minute),
	}
	require.NoError(t, db.Create(&open).Error)

	visits := NewVisitService(db)
	require.NoError(t, visits.Close(table.ID))

	var closed models.TableVisit
	require.NoError(t, db.First(&closed, open.ID).Error)
	assert.Equal(t, models.VisitClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	assert.True(t, closed.ClosedAt.After(closed.StartedAt))

	hasOpen, err := visits.HasOpenVisit(table.ID)
	require.NoError(t, err)
	assert.False(t, hasOpen)
}

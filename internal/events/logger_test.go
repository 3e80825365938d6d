package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trimtime/trimtime-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.QueueEvent{}))
	return db
}

func TestLogger_WritesEventRow(t *testing.T) {
	db := setupTestDB(t)
	logger := New(db)

	userID := uint(3)
	entityID := uint(12)
	require.NoError(t, logger.Log(1, &userID, "queue_joined", "booking", &entityID, map[string]string{
		"service": "Haircut",
	}))

	var ev models.QueueEvent
	require.NoError(t, db.First(&ev).Error)

	assert.Equal(t, uint(1), ev.ShopID)
	assert.Equal(t, "queue_joined", ev.Action)
	assert.Equal(t, "booking", ev.Entity)
	assert.Equal(t, entityID, *ev.EntityID)
	assert.JSONEq(t, `{"service":"Haircut"}`, ev.Metadata)
}

func TestLogger_NilMetadata(t *testing.T) {
	db := setupTestDB(t)
	logger := New(db)

	require.NoError(t, logger.Log(1, nil, "booking_served", "booking", nil, nil))

	var ev models.QueueEvent
	require.NoError(t, db.First(&ev).Error)

	assert.Nil(t, ev.UserID)
	assert.Empty(t, ev.Metadata)
}

package persistence

import (
	"context"
	"testing"

	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Settings(t *testing.T) {
	db := setupCRMTestDB(t)
	assert.True(t, db.Config.TranslateError)
	assert.True(t, db.Config.SkipDefaultTransaction)
}

func TestDatabase_PingAndStats(t *testing.T) {
	database := &Database{DB: setupCRMTestDB(t)}
	require.NoError(t, database.Ping(context.Background()))

	stats, err := database.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := newMockDB(t)
	mock.ExpectClose()

	database := &Database{DB: db}
	require.NoError(t, database.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewDatabase_Unreachable(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:    "127.0.0.1",
		Port:    1,
		User:    "postgres",
		DBName:  "crm",
		SSLMode: "disable",
	}
	_, err := NewDatabase(cfg)
	assert.Error(t, err)
}

package database

import (
	"testing"

	"github.com/eaglebank/accounts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrateAndClose(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("accounts"))
	assert.True(t, db.Migrator().HasColumn(&models.Account{}, "date_joined"))
	assert.True(t, db.Migrator().HasColumn(&models.Account{}, "phone_number"))

	require.NoError(t, Close(db))
	assert.Error(t, sqlDB.Ping())
}

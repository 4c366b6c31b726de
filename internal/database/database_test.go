package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/orgauth/internal/entities"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"), WithLogLevel("silent"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase_MigratesTables(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"users", "organisations", "organisation_users"} {
		assert.True(t, db.DB.Migrator().HasTable(table), table)
	}
	assert.True(t, db.DB.Migrator().HasIndex(&entities.Membership{}, "idx_membership_user_org"))
}

func TestNewDatabase_InMemory(t *testing.T) {
	db, err := NewDatabase(":memory:", WithLogLevel("silent"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.DB.Create(&entities.User{FirstName: "A", Email: "a@x.com", PasswordHash: "h"}).Error)

	counts, err := db.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Users)
}

func TestDatabase_PingCountsOptimize(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Ping(ctx))

	user := &entities.User{FirstName: "A", Email: "a@x.com", PasswordHash: "h"}
	org := &entities.Organisation{Name: "A's Organisation"}
	require.NoError(t, db.DB.Create(user).Error)
	require.NoError(t, db.DB.Create(org).Error)
	require.NoError(t, db.DB.Create(&entities.Membership{UserID: user.UserID, OrgID: org.OrgID}).Error)

	counts, err := db.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Users: 1, Organisations: 1, Memberships: 1}, counts)

	assert.NoError(t, db.Optimize(ctx))
}

func TestIsUniqueViolation(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.DB.Create(&entities.User{FirstName: "A", Email: "a@x.com", PasswordHash: "h"}).Error)
	err := db.DB.Create(&entities.User{FirstName: "B", Email: "a@x.com", PasswordHash: "h"}).Error

	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("other")))
	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
}

func TestIsNotFound(t *testing.T) {
	db := setupTestDB(t)

	var user entities.User
	err := db.DB.Where("email = ?", "missing@x.com").First(&user).Error

	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(nil))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Error, parseLogLevel("ERROR"))
	assert.Equal(t, logger.Info, parseLogLevel("info"))
	assert.Equal(t, logger.Warn, parseLogLevel("anything"))
}

package organisations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/orgauth/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "organisations.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Organisation{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func TestRepository_CreateAndGetOrganisation(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	description := "Engineering team"
	org := &entities.Organisation{Name: "Acme", Description: &description}
	require.NoError(t, repo.CreateOrganisation(ctx, org))
	assert.Len(t, org.OrgID, 36)

	got, err := repo.GetOrganisationByID(ctx, org.OrgID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Engineering team", *got.Description)
}

func TestRepository_GetOrganisationByID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetOrganisationByID(context.Background(), "missing")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_GetOrganisationsByIDs(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	zeta := &entities.Organisation{Name: "Zeta"}
	alpha := &entities.Organisation{Name: "Alpha"}
	other := &entities.Organisation{Name: "Other"}
	for _, org := range []*entities.Organisation{zeta, alpha, other} {
		require.NoError(t, repo.CreateOrganisation(ctx, org))
	}

	orgs, err := repo.GetOrganisationsByIDs(ctx, []string{zeta.OrgID, alpha.OrgID, "unknown"})
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "Alpha", orgs[0].Name)
	assert.Equal(t, "Zeta", orgs[1].Name)
	assert.Nil(t, orgs[0].Description)

	empty, err := repo.GetOrganisationsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

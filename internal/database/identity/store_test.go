package identity

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/orgauth/internal/auth"
	"github.com/mrlokans/orgauth/internal/database"
	"github.com/mrlokans/orgauth/internal/entities"
)

func setupStore(t *testing.T) (*Store, *database.Database) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "identity.db"), database.WithLogLevel("silent"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db.DB), db
}

func insertUser(t *testing.T, store *Store, email string) *entities.User {
	t.Helper()
	user := &entities.User{FirstName: "Jane", LastName: "Roe", Email: email, PasswordHash: "hash"}
	require.NoError(t, store.InsertUser(context.Background(), user))
	return user
}

func insertOrg(t *testing.T, store *Store, name string) *entities.Organisation {
	t.Helper()
	org := &entities.Organisation{Name: name}
	require.NoError(t, store.InsertOrganisation(context.Background(), org))
	return org
}

func TestStore_NotFoundIsTranslated(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, err := store.FindUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, auth.ErrNotFound)

	_, err = store.FindUserByID(ctx, "missing")
	assert.ErrorIs(t, err, auth.ErrNotFound)

	_, err = store.FindMembership(ctx, "u", "o")
	assert.ErrorIs(t, err, auth.ErrNotFound)

	_, err = store.FindOrganisationByID(ctx, "missing")
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestStore_InsertUser_DuplicateEmail(t *testing.T) {
	store, _ := setupStore(t)
	first := insertUser(t, store, "a@x.com")

	err := store.InsertUser(context.Background(), &entities.User{FirstName: "B", Email: "a@x.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)

	got, err := store.FindUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.UserID, got.UserID)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestStore_InsertMembership_Duplicate(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()
	user := insertUser(t, store, "a@x.com")
	org := insertOrg(t, store, "Acme")

	require.NoError(t, store.InsertMembership(ctx, &entities.Membership{UserID: user.UserID, OrgID: org.OrgID}))

	err := store.InsertMembership(ctx, &entities.Membership{UserID: user.UserID, OrgID: org.OrgID})
	assert.ErrorIs(t, err, auth.ErrDuplicateMembership)

	counts, err := db.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Memberships)
}

func TestStore_ListMembershipsAndOrganisations(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	user := insertUser(t, store, "a@x.com")
	acme := insertOrg(t, store, "Acme")
	beta := insertOrg(t, store, "Beta")

	require.NoError(t, store.InsertMembership(ctx, &entities.Membership{UserID: user.UserID, OrgID: acme.OrgID}))
	require.NoError(t, store.InsertMembership(ctx, &entities.Membership{UserID: user.UserID, OrgID: beta.OrgID}))

	memberships, err := store.ListMemberships(ctx, user.UserID)
	require.NoError(t, err)
	assert.Len(t, memberships, 2)

	members, err := store.ListMembers(ctx, acme.OrgID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, user.UserID, members[0].UserID)

	orgs, err := store.ListOrganisationsByIDs(ctx, []string{acme.OrgID, beta.OrgID})
	require.NoError(t, err)
	assert.Len(t, orgs, 2)
}

func TestStore_WithinTransaction_RollsBack(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithinTransaction(ctx, func(tx auth.IdentityStore) error {
		user := &entities.User{FirstName: "T", Email: "t@x.com", PasswordHash: "h"}
		if err := tx.InsertUser(ctx, user); err != nil {
			return err
		}
		if err := tx.InsertOrganisation(ctx, &entities.Organisation{Name: "T's Organisation"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	counts, err := db.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.Users)
	assert.Zero(t, counts.Organisations)
}

func TestStore_WithinTransaction_TranslatesErrors(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	insertUser(t, store, "a@x.com")

	err := store.WithinTransaction(ctx, func(tx auth.IdentityStore) error {
		return tx.InsertUser(ctx, &entities.User{FirstName: "A", Email: "a@x.com", PasswordHash: "h"})
	})
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
}

func TestStore_DeleteUser(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()
	user := insertUser(t, store, "a@x.com")
	org := insertOrg(t, store, "Acme")
	require.NoError(t, store.InsertMembership(ctx, &entities.Membership{UserID: user.UserID, OrgID: org.OrgID}))

	require.NoError(t, store.DeleteUser(ctx, user.UserID))

	_, err := store.FindUserByID(ctx, user.UserID)
	assert.ErrorIs(t, err, auth.ErrNotFound)

	counts, err := db.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.Memberships)
	assert.Equal(t, int64(1), counts.Organisations)
}

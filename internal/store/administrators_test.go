package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dreamhouse_backend/pkg/utils/password"
)

func TestCreateAdministrator(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	a := mustAdmin(t, s, "Olga Admin", "Olga@DreamHouse.by")
	assert.Equal(t, "olga@dreamhouse.by", a.Email)
	assert.True(t, password.Check(a.Password, "adminpass1"))

	_, err := s.CreateAdministrator(ctx, AdministratorInput{
		FullName: "Copy", Email: "olga@dreamhouse.by", Password: "adminpass1", ConfirmPassword: "adminpass1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	found, err := s.FindAdministratorByEmail(ctx, "olga@dreamhouse.by")
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)

	admins, err := s.ListAdministrators(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestUpdateAdministrator(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	a := mustAdmin(t, s, "Olga", "olga@dreamhouse.by")

	updated, err := s.UpdateAdministrator(ctx, a.ID, AdministratorInput{FullName: "Olga P", Email: "olga@dreamhouse.by"})
	require.NoError(t, err)
	assert.Equal(t, "Olga P", updated.FullName)
	assert.True(t, password.Check(updated.Password, "adminpass1"))

	_, err = s.UpdateAdministrator(ctx, 42, AdministratorInput{FullName: "X", Email: "x@dreamhouse.by"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdministratorsAreNeverDeleted(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	a := mustAdmin(t, s, "Olga", "olga@dreamhouse.by")

	assert.ErrorIs(t, s.DeleteAdministrator(ctx, a.ID), ErrNotDeletable)
	_, err := s.GetAdministrator(ctx, a.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.DeleteAdministrator(ctx, 999), ErrNotFound)
}

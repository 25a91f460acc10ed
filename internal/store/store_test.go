package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dreamhouse_backend/internal/model"
	"dreamhouse_backend/pkg/config"
	"dreamhouse_backend/pkg/database"
)

func setupTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	log, _ := test.NewNullLogger()

	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		URL:    filepath.Join(t.TempDir(), "store.db"),
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	require.NoError(t, database.Migrate(db, log, model.All()...))
	return New(db, log), db
}

func mustUser(t *testing.T, s *Store, name, email string) *model.User {
	t.Helper()
	u, err := s.RegisterUser(context.Background(), UserInput{
		Name: name, Email: email, Password: "secret123", ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	return u
}

func mustAdmin(t *testing.T, s *Store, name, email string) *model.Administrator {
	t.Helper()
	a, err := s.CreateAdministrator(context.Background(), AdministratorInput{
		FullName: name, Email: email, Password: "adminpass1", ConfirmPassword: "adminpass1",
	})
	require.NoError(t, err)
	return a
}

func mustEstate(t *testing.T, s *Store, typ model.EstateType, bedrooms model.Bedrooms, cost float64, location string) *model.Estate {
	t.Helper()
	e, err := s.CreateEstate(context.Background(), EstateInput{
		Type: typ, Bedrooms: bedrooms, Cost: cost, Location: location,
	}, 0)
	require.NoError(t, err)
	return e
}

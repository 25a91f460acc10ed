// Package store is the data-access layer. A Store wraps one *gorm.DB handle
// created by the caller; every multi-statement mutation runs in a single
// transaction.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dreamhouse_backend/pkg/utils/password"
	"dreamhouse_backend/pkg/utils/validation"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrEmailTaken   = errors.New("email already in use")
	ErrNotDeletable = errors.New("record cannot be deleted")
)

type Store struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func New(db *gorm.DB, log logrus.FieldLogger) *Store {
	return &Store{db: db, log: log}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func duplicateEmail(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkInput validates struct tags and, when a password is being set, the
// password policy and its confirmation.
func checkInput(in interface{}, pw, confirm string, requirePassword bool) error {
	ve := &validation.ValidationError{}
	if err := validation.Struct(in); err != nil {
		fieldErrs, ok := validation.As(err)
		if !ok {
			return err
		}
		ve = fieldErrs
	}

	if pw != "" || requirePassword {
		if err := password.ValidatePolicy(pw); err != nil {
			ve.Add("password", err.Error())
		}
		if confirm != pw {
			ve.Add("confirm_password", "Passwords must match")
		}
	}
	return ve.OrNil()
}

// Package auth resolves login credentials to a session. Administrators and
// users share one login form; administrators are checked first and a
// password mismatch there falls through to the user table.
package auth

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"dreamhouse_backend/internal/session"
	"dreamhouse_backend/internal/store"
	"dreamhouse_backend/pkg/utils/password"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Authenticator struct {
	store *store.Store
	log   logrus.FieldLogger
}

func NewAuthenticator(s *store.Store, log logrus.FieldLogger) *Authenticator {
	return &Authenticator{store: s, log: log}
}

func (a *Authenticator) Login(ctx context.Context, email, plain string) (session.Session, error) {
	admin, err := a.store.FindAdministratorByEmail(ctx, email)
	switch {
	case err == nil:
		if password.Check(admin.Password, plain) {
			a.log.WithField("admin_id", admin.ID).Info("Administrator logged in")
			return session.ForAdmin(admin.ID), nil
		}
		// The same email may also belong to a user with another password.
	case !errors.Is(err, store.ErrNotFound):
		return session.Anonymous(), err
	}

	user, err := a.store.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		if password.Check(user.Password, plain) {
			a.log.WithField("user_id", user.ID).Info("User logged in")
			return session.ForUser(user.ID, user.Name, user.Email), nil
		}
		return session.Anonymous(), ErrInvalidCredentials
	case errors.Is(err, store.ErrNotFound):
		password.CheckDummy(plain)
		return session.Anonymous(), ErrInvalidCredentials
	default:
		return session.Anonymous(), err
	}
}

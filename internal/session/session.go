// Package session carries the caller's identity across requests in a signed
// cookie. A session is exactly one of Anonymous, User or Admin.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"dreamhouse_backend/pkg/utils/jwt"
)

type Role string

const (
	RoleAnonymous Role = ""
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

type Session struct {
	Role Role `json:"role"`
	ID   uint `json:"id,omitempty"`

	// Cached profile data, set for users only.
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`

	// Persistent is true when the cookie was issued with "remember me".
	Persistent bool `json:"-"`
}

func Anonymous() Session {
	return Session{}
}

func ForUser(id uint, name, email string) Session {
	return Session{Role: RoleUser, ID: id, Name: name, Email: email}
}

func ForAdmin(id uint) Session {
	return Session{Role: RoleAdmin, ID: id}
}

func (s Session) IsAnonymous() bool { return s.Role == RoleAnonymous }
func (s Session) IsUser() bool      { return s.Role == RoleUser && s.ID != 0 }
func (s Session) IsAdmin() bool     { return s.Role == RoleAdmin && s.ID != 0 }

type Options struct {
	CookieName  string
	TTL         time.Duration
	RememberFor time.Duration
	Secure      bool
}

type Manager struct {
	signer *jwt.Signer
	opts   Options
}

func NewManager(signer *jwt.Signer, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "dreamhouse_session"
	}
	if opts.TTL == 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.RememberFor == 0 {
		opts.RememberFor = 30 * 24 * time.Hour
	}
	return &Manager{signer: signer, opts: opts}
}

// Establish replaces whatever session the request carried with s. With
// remember the cookie outlives the browser session.
func (m *Manager) Establish(c *fiber.Ctx, s Session, remember bool) error {
	ttl := m.opts.TTL
	if remember {
		ttl = m.opts.RememberFor
	}

	token, err := m.signer.GenerateToken(jwt.Claims{
		Role:       string(s.Role),
		IdentityID: s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Persistent: remember,
	}, ttl)
	if err != nil {
		return err
	}

	cookie := &fiber.Cookie{
		Name:     m.opts.CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   m.opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if remember {
		cookie.Expires = time.Now().Add(ttl)
	}
	c.Cookie(cookie)

	s.Persistent = remember
	c.Locals(localsKey, s)
	return nil
}

// Clear drops the session; the next request is anonymous.
func (m *Manager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   m.opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(1, 0),
	})
	c.Locals(localsKey, Anonymous())
}

// Current decodes the session cookie. Anything missing, expired, forged or
// ambiguous is Anonymous.
func (m *Manager) Current(c *fiber.Ctx) Session {
	raw := c.Cookies(m.opts.CookieName)
	if raw == "" {
		return Anonymous()
	}

	claims, err := m.signer.ValidateToken(raw)
	if err != nil {
		return Anonymous()
	}
	return fromClaims(claims)
}

func fromClaims(claims *jwt.Claims) Session {
	if claims.IdentityID == 0 {
		return Anonymous()
	}

	switch Role(claims.Role) {
	case RoleUser:
		s := ForUser(claims.IdentityID, claims.Name, claims.Email)
		s.Persistent = claims.Persistent
		return s
	case RoleAdmin:
		s := ForAdmin(claims.IdentityID)
		s.Persistent = claims.Persistent
		return s
	default:
		return Anonymous()
	}
}

const localsKey = "session"

// Middleware decodes the cookie once and stores the result for FromCtx.
func (m *Manager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localsKey, m.Current(c))
		return c.Next()
	}
}

// FromCtx returns the session stored by Middleware or Establish.
func FromCtx(c *fiber.Ctx) Session {
	if s, ok := c.Locals(localsKey).(Session); ok {
		return s
	}
	return Anonymous()
}

// Package password hashes and verifies account passwords.
package password

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinLength = 8
	MaxLength = 20
)

var (
	ErrLength  = errors.New("password must be between 8 and 20 characters")
	ErrCharset = errors.New("password may contain only latin letters and digits")
)

// ValidatePolicy enforces the password policy used for registration and
// password changes.
func ValidatePolicy(plain string) error {
	if len(plain) < MinLength || len(plain) > MaxLength {
		return ErrLength
	}
	for i := 0; i < len(plain); i++ {
		c := plain[i]
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if !isLetter && !isDigit {
			return ErrCharset
		}
	}
	return nil
}

func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Check reports whether plain matches the stored hash.
func Check(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// CheckDummy burns the same time as a real Check. Call it when no account
// matched so lookups for unknown emails are not faster than wrong passwords.
func CheckDummy(plain string) {
	dummyOnce.Do(func() {
		dummyHash, _ = Hash("dreamhouseDummy1")
	})
	_ = Check(dummyHash, plain)
}

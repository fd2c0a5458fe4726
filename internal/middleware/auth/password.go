package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword creates a bcrypt hash from the given plaintext password.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks if the provided plaintext password matches the stored bcrypt hash.
func VerifyPassword(hashedPassword, providedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword))
}

var (
	dummyOnce sync.Once
	dummy     string
)

// DummyVerify burns the same bcrypt time as VerifyPassword for logins with
// an unknown username.
func DummyVerify(providedPassword string) {
	dummyOnce.Do(func() {
		dummy, _ = HashPassword("not-a-real-password")
	})
	_ = VerifyPassword(dummy, providedPassword)
}

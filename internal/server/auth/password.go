package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/anvitha-acharya/DevOrgs/internal/common"
)

// bcryptCost matches the work factor the account base was hashed with.
const bcryptCost = 12

const specialChars = "!@#$%^&*"

// ValidatePassword enforces the signup password rule: at least 8
// characters, at least one character from specialChars, and nothing
// outside letters, digits and specialChars.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return common.ErrWeakPassword
	}
	hasSpecial := false
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		default:
			return common.ErrWeakPassword
		}
	}
	if !hasSpecial {
		return common.ErrWeakPassword
	}
	return nil
}

// HashPassword returns a one-way bcrypt hash of the raw password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the raw password matches the stored
// hash. bcrypt's comparison is constant-time over the derived key.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

package store

import (
	"fmt"

	"github.com/phrazzld/storefront-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// HashUserPassword replaces a plaintext password on user with its bcrypt
// hash. It does nothing if no plaintext password is set.
func HashUserPassword(user *domain.User, cost int) error {
	if user.Password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.HashedPassword = string(hash)
	user.Password = ""
	return nil
}

package user

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes plaintext passwords and verifies them against
// stored hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns the default bcrypt-backed PasswordHasher.
func NewBcryptHasher() PasswordHasher {
	return bcryptHasher{cost: bcrypt.DefaultCost}
}

func (h bcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h bcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

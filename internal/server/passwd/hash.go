package passwd

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinCost is the lowest accepted bcrypt work factor. Costs below it are
// raised to keep offline brute force expensive without pushing interactive
// latency past ~100ms.
const MinCost = bcrypt.DefaultCost

// Hash derives a salted one-way hash of password with the given work factor.
func Hash(password string, cost int) (string, error) {
	if cost < MinCost {
		cost = MinCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing error: %w", err)
	}
	return string(h), nil
}

// Compare checks the cleartext password against a stored hash. The comparison
// inside bcrypt is constant-time. A mismatch is returned as an error; callers
// must not distinguish it from an unknown user.
func Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

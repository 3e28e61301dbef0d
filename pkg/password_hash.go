package pkg

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only looks at the first 72 bytes of its input, so passwords are
// first reduced to a fixed size digest. The prefix marks hashes made this way.
const bcryptSHA256Prefix = "$bcrypt-sha256$"

const DefaultHashCost = 12

func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	bytes, err := bcrypt.GenerateFromPassword(preHash(password), cost)
	if err != nil {
		return "", err
	}
	return bcryptSHA256Prefix + BytesToString(bytes), nil
}

// CheckPasswordHash accepts both prefixed hashes and plain bcrypt ones (e.g. provisioned by hand).
// Malformed hashes never match.
func CheckPasswordHash(password, hash string) bool {
	if digest, ok := strings.CutPrefix(hash, bcryptSHA256Prefix); ok {
		return bcrypt.CompareHashAndPassword([]byte(digest), preHash(password)) == nil
	}
	if len(password) > 72 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashCost returns the cost embedded in the hash, -1 if it cannot be read.
func HashCost(hash string) int {
	cost, err := bcrypt.Cost([]byte(strings.TrimPrefix(hash, bcryptSHA256Prefix)))
	if err != nil {
		return -1
	}
	return cost
}

func preHash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// Package auth implements password hashing and bearer token issuance/validation.
package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the fixed work factor used since the first release.
// Changing it only affects newly created hashes.
const bcryptCost = 10

// HashPassword derives a one-way salted hash from a plaintext password.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
// It fails closed: any internal error (including a corrupt hash) yields false.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the original service's work factor.
const bcryptCost = 10

// HashPassword derives a salted bcrypt digest from a plaintext password.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
// bcrypt's comparison is constant time with respect to the digest.
func CheckPassword(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is fixed so every stored hash costs the same to verify.
const PasswordCost = 10

func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword never errors: a malformed hash is simply a mismatch.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// dummyHash is compared against when the username is unknown so both login
// failures take the same time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), PasswordCost)

package service

import (
	"crypto/hmac"
	"crypto/sha256"

	"golang.org/x/crypto/bcrypt"
)

// applyPepper applies HMAC-SHA256 keyed by the pepper. The output is 32 bytes,
// well under bcrypt's 72 byte input limit.
func applyPepper(password, pepper string) []byte {
	h := hmac.New(sha256.New, []byte(pepper))
	h.Write([]byte(password))
	return h.Sum(nil)
}

// hashPassword returns a salted bcrypt digest of the peppered password.
func hashPassword(password, pepper string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(applyPepper(password, pepper), bcrypt.DefaultCost)
	return string(b), err
}

// checkPasswordHash reports whether password matches the stored digest.
func checkPasswordHash(password, hash, pepper string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), applyPepper(password, pepper)) == nil
}

package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// KeyPasswordReset is the Redis key holding the user id for a reset token.
func KeyPasswordReset(token string) string {
	return "password:reset:" + token
}

// KeyUserSession is the Redis hash holding the active session of a user.
func KeyUserSession(userID string) string {
	return "user:session:" + userID
}

// GenToken returns 32 random bytes hex-encoded.
func GenToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

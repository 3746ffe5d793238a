package helpers

import "golang.org/x/crypto/bcrypt"

// BcryptCost is the work factor for new hashes; tests lower it.
var BcryptCost = bcrypt.DefaultCost

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether plain matches the stored bcrypt hash.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NeedsRehash reports whether hash was made with a cost other than BcryptCost.
func NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost != BcryptCost
}

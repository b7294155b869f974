package service

import "golang.org/x/crypto/bcrypt"

// dummyHash is a bcrypt hash of an unguessable string. VerifyPassword
// compares against it when the stored hash is empty so that the
// missing-user and wrong-password paths do the same amount of work.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func HashPassword(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether raw matches hash. An empty hash always
// fails, after a full bcrypt comparison.
func VerifyPassword(hash, raw string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(raw))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

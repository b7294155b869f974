package domain

import "time"

// User is a registered account. Username is stored lowercased and is
// unique. Accounts are never updated or deleted once created.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

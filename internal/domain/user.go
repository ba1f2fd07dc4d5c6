package domain

// User is an account allowed to sign in. HashedPassword holds a bcrypt hash.
type User struct {
	ID             int64  `db:"id"`
	Username       string `db:"username"`
	HashedPassword string `db:"hashed_password"`
	Disabled       bool   `db:"disabled"`
}

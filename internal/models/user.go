package models

// User represents a row of the users table, including the credential columns.
type User struct {
	UserID       string  `db:"user_id"`
	Username     string  `db:"username"`
	PasswordHash string  `db:"password_hash"`
	Name         string  `db:"name"`
	Email        *string `db:"email"`
	AuditFields
}

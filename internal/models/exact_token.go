package models

import "time"

// ExactToken represents a row of exact_tokens (and the matching columns of exact_token_history).
type ExactToken struct {
	OrganizationID string    `db:"organization_id"`
	AccessToken    string    `db:"access_token"`
	RefreshToken   string    `db:"refresh_token"`
	TokenType      string    `db:"token_type"`
	ExpiresIn      int64     `db:"expires_in"`
	Division       int32     `db:"division"`
	CreatedAt      time.Time `db:"created_at"`
	CreatedBy      string    `db:"created_by"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExactToken is the current OAuth token pair an organization holds for Exact Online.
type ExactToken struct {
	OrganizationID string    `json:"organizationID"`
	AccessToken    string    `json:"-"`
	RefreshToken   string    `json:"-"`
	TokenType      string    `json:"tokenType"`
	ExpiresIn      int64     `json:"expiresIn"` // seconds, as declared by Exact at issuance
	Division       int       `json:"division"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// ExpiresAt is the moment the access token stops being valid.
func (t *ExactToken) ExpiresAt() time.Time {
	return t.CreatedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// IsExpired reports whether now - created_at exceeds expires_in.
func (t *ExactToken) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) > time.Duration(t.ExpiresIn)*time.Second
}

// ExactTokenGrant is what the Exact token endpoint hands out for a code or refresh grant.
type ExactTokenGrant struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
}

// ExactGLAccount is a GL account as returned by the Exact financial/GLAccounts endpoint.
type ExactGLAccount struct {
	ID          string
	Code        string
	Description string
	BalanceSide string // D or C
	BalanceType string // B or W
}

// ExactTransactionLine is a booked line from financialtransaction/TransactionLines.
type ExactTransactionLine struct {
	ID          string
	Date        time.Time
	GLAccountID string
	Description string
	AmountDC    decimal.Decimal
	EntryNumber int
}

// ExactConnectionStatus summarizes an organization's Exact Online link.
type ExactConnectionStatus struct {
	Connected bool       `json:"connected"`
	Division  int        `json:"division,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Expired   bool       `json:"expired"`
}

// ExactConnectionInfo is returned by the test-connection endpoint.
type ExactConnectionInfo struct {
	Division        int    `json:"division"`
	CurrentDivision int    `json:"currentDivision"`
	UserName        string `json:"userName"`
}

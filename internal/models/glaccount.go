package models

// GLAccount represents a row of the gl_accounts table.
type GLAccount struct {
	GLAccountID    string  `db:"gl_account_id"`
	OrganizationID string  `db:"organization_id"`
	Code           string  `db:"code"`
	Name           string  `db:"name"`
	Level          int16   `db:"level"`
	ParentCode     *string `db:"parent_code"`
	Type           string  `db:"type"`
	BalanceType    string  `db:"balance_type"`
	DebitCredit    string  `db:"debit_credit"`
	ExternalID     *string `db:"external_id"`
	Source         string  `db:"source"`
	IsActive       bool    `db:"is_active"`
	AuditFields
}

package domain

// GLAccountType is the income/expense/balance classification of a GL account.
type GLAccountType string

const (
	GLTypeIncome  GLAccountType = "Inkomsten"
	GLTypeExpense GLAccountType = "Uitgaven"
	GLTypeBalance GLAccountType = "Balans"
)

// GLAccountLevel is the depth of an account in the three-level code hierarchy.
type GLAccountLevel int

const (
	LevelMainGroup GLAccountLevel = 1 // hoofdgroep
	LevelSubGroup  GLAccountLevel = 2 // subgroep
	LevelCostItem  GLAccountLevel = 3 // kostenpost
)

// GLAccountSource records where an account came from.
type GLAccountSource string

const (
	SourceImport GLAccountSource = "import"
	SourceExact  GLAccountSource = "exact"
	SourceManual GLAccountSource = "manual"
)

// Values of the auxiliary columns used as a classification fallback.
const (
	BalanceTypeProfitLoss = "Winst & Verlies"
	BalanceTypeBalance    = "Balans"
	SideDebit             = "Debet"
	SideCredit            = "Credit"
)

// GLAccount is a general-ledger account of an organization.
type GLAccount struct {
	GLAccountID    string          `json:"glAccountID"`
	OrganizationID string          `json:"organizationID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Level          GLAccountLevel  `json:"level"`
	ParentCode     *string         `json:"parentCode"`
	Type           GLAccountType   `json:"type"`
	BalanceType    string          `json:"balanceType"`
	DebitCredit    string          `json:"debitCredit"`
	ExternalID     *string         `json:"externalID"`
	Source         GLAccountSource `json:"source"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// GLAccountFilter narrows a GL account listing. Zero values mean "no filter".
type GLAccountFilter struct {
	Level      GLAccountLevel
	Type       GLAccountType
	ActiveOnly bool
}

// GLAccountNode is a GL account with its children, used for the hierarchy view.
type GLAccountNode struct {
	GLAccount
	Orphan   bool            `json:"orphan"`
	Children []GLAccountNode `json:"children"`
}

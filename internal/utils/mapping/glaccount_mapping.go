package mapping

import (
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/models"
)

// ToModelGLAccount converts a domain GLAccount to a model GLAccount
func ToModelGLAccount(d domain.GLAccount) models.GLAccount {
	return models.GLAccount{
		GLAccountID:    d.GLAccountID,
		OrganizationID: d.OrganizationID,
		Code:           d.Code,
		Name:           d.Name,
		Level:          int16(d.Level),
		ParentCode:     d.ParentCode,
		Type:           string(d.Type),
		BalanceType:    d.BalanceType,
		DebitCredit:    d.DebitCredit,
		ExternalID:     d.ExternalID,
		Source:         string(d.Source),
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGLAccount converts a model GLAccount to a domain GLAccount
func ToDomainGLAccount(m models.GLAccount) domain.GLAccount {
	return domain.GLAccount{
		GLAccountID:    m.GLAccountID,
		OrganizationID: m.OrganizationID,
		Code:           m.Code,
		Name:           m.Name,
		Level:          domain.GLAccountLevel(m.Level),
		ParentCode:     m.ParentCode,
		Type:           domain.GLAccountType(m.Type),
		BalanceType:    m.BalanceType,
		DebitCredit:    m.DebitCredit,
		ExternalID:     m.ExternalID,
		Source:         domain.GLAccountSource(m.Source),
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGLAccountSlice converts a slice of model GLAccounts to domain GLAccounts
func ToDomainGLAccountSlice(ms []models.GLAccount) []domain.GLAccount {
	ds := make([]domain.GLAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGLAccount(m)
	}
	return ds
}

package mapping

import (
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/models"
)

// ToModelExactToken converts a domain ExactToken to a model ExactToken
func ToModelExactToken(d domain.ExactToken) models.ExactToken {
	return models.ExactToken{
		OrganizationID: d.OrganizationID,
		AccessToken:    d.AccessToken,
		RefreshToken:   d.RefreshToken,
		TokenType:      d.TokenType,
		ExpiresIn:      d.ExpiresIn,
		Division:       int32(d.Division),
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainExactToken converts a model ExactToken to a domain ExactToken
func ToDomainExactToken(m models.ExactToken) domain.ExactToken {
	return domain.ExactToken{
		OrganizationID: m.OrganizationID,
		AccessToken:    m.AccessToken,
		RefreshToken:   m.RefreshToken,
		TokenType:      m.TokenType,
		ExpiresIn:      m.ExpiresIn,
		Division:       int(m.Division),
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

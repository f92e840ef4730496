package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT generates a new JWT token with the given parameters.
func GenerateJWT(userID string, secret string, expiryDuration time.Duration, issuer string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// exactStateAudience keeps OAuth state tokens from being accepted as access tokens and vice versa.
const exactStateAudience = "exact-oauth-state"

// ExactStateClaims travel through the Exact Online authorization round trip as the state parameter.
type ExactStateClaims struct {
	OrganizationID string `json:"org"`
	UserID         string `json:"uid"`
	jwt.RegisteredClaims
}

// SignExactState creates the signed state parameter for an Exact Online authorization request.
func SignExactState(organizationID, userID, secret, nonce string, ttl time.Duration, now time.Time) (string, error) {
	claims := ExactStateClaims{
		OrganizationID: organizationID,
		UserID:         userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        nonce,
			Audience:  jwt.ClaimStrings{exactStateAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseExactState verifies a state parameter signed by SignExactState.
func ParseExactState(state, secret string) (*ExactStateClaims, error) {
	claims := &ExactStateClaims{}
	token, err := jwt.ParseWithClaims(state, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithAudience(exactStateAudience), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.OrganizationID == "" || claims.UserID == "" {
		return nil, errors.New("state is missing organization or user")
	}
	return claims, nil
}

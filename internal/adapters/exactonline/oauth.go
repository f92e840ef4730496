// Package exactonline talks to the Exact Online OAuth2 and REST endpoints.
package exactonline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/gateways"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the Dutch Exact Online environment.
const DefaultBaseURL = "https://start.exactonline.nl"

// Exact access tokens live ten minutes; used when the response omits expires_in.
const defaultExpiresIn = 600

// TokenEndpoint implements the authorization-code and refresh-token grants.
type TokenEndpoint struct {
	cfg        *oauth2.Config
	httpClient *http.Client
	now        func() time.Time
}

var _ gateways.ExactTokenEndpoint = (*TokenEndpoint)(nil)

// NewTokenEndpoint configures the OAuth2 client for an Exact Online app registration.
// Client credentials are sent as form parameters, which is what Exact expects.
func NewTokenEndpoint(baseURL, clientID, clientSecret, redirectURL string, httpClient *http.Client) *TokenEndpoint {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &TokenEndpoint{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:   baseURL + "/api/oauth2/auth",
				TokenURL:  baseURL + "/api/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
		now:        time.Now,
	}
}

// AuthCodeURL returns the Exact consent page for state.
func (e *TokenEndpoint) AuthCodeURL(state string) string {
	return e.cfg.AuthCodeURL(state)
}

// Exchange trades an authorization code for the first token pair.
func (e *TokenEndpoint) Exchange(ctx context.Context, code string) (*domain.ExactTokenGrant, error) {
	tok, err := e.cfg.Exchange(e.clientCtx(ctx), code)
	if err != nil {
		return nil, translateOAuthError(err)
	}
	return e.grantFromToken(tok), nil
}

// Refresh performs grant_type=refresh_token. An empty access token forces the
// oauth2 token source to hit the endpoint instead of reusing a cached token.
func (e *TokenEndpoint) Refresh(ctx context.Context, refreshToken string) (*domain.ExactTokenGrant, error) {
	src := e.cfg.TokenSource(e.clientCtx(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, translateOAuthError(err)
	}
	return e.grantFromToken(tok), nil
}

func (e *TokenEndpoint) clientCtx(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
}

func (e *TokenEndpoint) grantFromToken(tok *oauth2.Token) *domain.ExactTokenGrant {
	expiresIn := tok.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = extraInt(tok, "expires_in")
	}
	if expiresIn <= 0 && !tok.Expiry.IsZero() {
		expiresIn = int64(tok.Expiry.Sub(e.now()).Round(time.Second) / time.Second)
	}
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}

	tokenType := tok.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}

	return &domain.ExactTokenGrant{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tokenType,
		ExpiresIn:    expiresIn,
	}
}

// extraInt reads a raw response field that Exact may send as a number or a string.
func extraInt(tok *oauth2.Token, key string) int64 {
	switch v := tok.Extra(key).(type) {
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

func translateOAuthError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		return &apperrors.ExactAPIError{
			StatusCode: re.Response.StatusCode,
			Body:       string(re.Body),
			Endpoint:   "oauth2/token",
		}
	}
	return fmt.Errorf("exact online token request: %w", err)
}

package exactonline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/gateways"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
)

// Client reads the Exact Online REST API with a bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	// maxPages bounds __next following against a misbehaving server.
	maxPages int
}

var _ gateways.ExactAPI = (*Client)(nil)

// NewClient creates an API client for baseURL, e.g. https://start.exactonline.nl.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient, maxPages: 1000}
}

type odataPage[T any] struct {
	D struct {
		Results []T    `json:"results"`
		Next    string `json:"__next"`
	} `json:"d"`
}

type meRecord struct {
	CurrentDivision int    `json:"CurrentDivision"`
	FullName        string `json:"FullName"`
}

type glAccountRecord struct {
	ID          string `json:"ID"`
	Code        string `json:"Code"`
	Description string `json:"Description"`
	BalanceSide string `json:"BalanceSide"`
	BalanceType string `json:"BalanceType"`
}

type transactionLineRecord struct {
	ID          string          `json:"ID"`
	Date        odataDate       `json:"Date"`
	GLAccount   string          `json:"GLAccount"`
	Description string          `json:"Description"`
	AmountDC    decimal.Decimal `json:"AmountDC"`
	EntryNumber int             `json:"EntryNumber"`
}

// CurrentDivision reads /current/Me for the division the token was granted on.
func (c *Client) CurrentDivision(ctx context.Context, accessToken string) (int, string, error) {
	q := url.Values{"$select": {"CurrentDivision,FullName"}}
	rows, err := fetchAll[meRecord](ctx, c, accessToken, "current/Me", q)
	if err != nil {
		return 0, "", err
	}
	if len(rows) == 0 {
		return 0, "", fmt.Errorf("exact online current/Me returned no user")
	}
	return rows[0].CurrentDivision, rows[0].FullName, nil
}

// ListGLAccounts returns the division's complete chart of accounts.
func (c *Client) ListGLAccounts(ctx context.Context, accessToken string, division int) ([]domain.ExactGLAccount, error) {
	q := url.Values{"$select": {"ID,Code,Description,BalanceSide,BalanceType"}}
	rows, err := fetchAll[glAccountRecord](ctx, c, accessToken, strconv.Itoa(division)+"/financial/GLAccounts", q)
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.ExactGLAccount, len(rows))
	for i, r := range rows {
		accounts[i] = domain.ExactGLAccount{
			ID:          r.ID,
			Code:        strings.TrimSpace(r.Code),
			Description: r.Description,
			BalanceSide: r.BalanceSide,
			BalanceType: r.BalanceType,
		}
	}
	return accounts, nil
}

// ListTransactionLines returns booked lines dated from..to inclusive.
func (c *Client) ListTransactionLines(ctx context.Context, accessToken string, division int, from, to time.Time) ([]domain.ExactTransactionLine, error) {
	q := url.Values{
		"$select": {"ID,Date,GLAccount,Description,AmountDC,EntryNumber"},
		"$filter": {fmt.Sprintf("Date ge datetime'%s' and Date le datetime'%s'", from.Format("2006-01-02"), to.Format("2006-01-02"))},
	}
	rows, err := fetchAll[transactionLineRecord](ctx, c, accessToken, strconv.Itoa(division)+"/financialtransaction/TransactionLines", q)
	if err != nil {
		return nil, err
	}
	lines := make([]domain.ExactTransactionLine, len(rows))
	for i, r := range rows {
		lines[i] = domain.ExactTransactionLine{
			ID:          r.ID,
			Date:        time.Time(r.Date),
			GLAccountID: r.GLAccount,
			Description: r.Description,
			AmountDC:    r.AmountDC,
			EntryNumber: r.EntryNumber,
		}
	}
	return lines, nil
}

// fetchAll follows __next links until the result set is exhausted.
func fetchAll[T any](ctx context.Context, c *Client, accessToken, resource string, q url.Values) ([]T, error) {
	httpClient := oauth2.NewClient(
		context.WithValue(ctx, oauth2.HTTPClient, c.httpClient),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}),
	)

	next := c.baseURL + "/api/v1/" + resource + "?" + q.Encode()
	var all []T
	for page := 0; next != ""; page++ {
		if page >= c.maxPages {
			return nil, fmt.Errorf("exact online %s: more than %d pages", resource, c.maxPages)
		}
		var p odataPage[T]
		if err := getJSON(ctx, httpClient, next, resource, &p); err != nil {
			return nil, err
		}
		all = append(all, p.D.Results...)
		next = p.D.Next
	}
	return all, nil
}

func getJSON(ctx context.Context, httpClient *http.Client, rawURL, resource string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build exact online request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("exact online %s: %w", resource, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read exact online %s response: %w", resource, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apperrors.ExactAPIError{StatusCode: resp.StatusCode, Body: string(body), Endpoint: resource}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode exact online %s response: %w", resource, err)
	}
	return nil
}

// odataDate decodes the OData v2 "/Date(1704067200000)/" format. ISO-8601 strings are accepted too.
type odataDate time.Time

func (d *odataDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = odataDate(time.Time{})
		return nil
	}
	if strings.HasPrefix(s, "/Date(") && strings.HasSuffix(s, ")/") {
		raw := strings.TrimSuffix(strings.TrimPrefix(s, "/Date("), ")/")
		// Offsets like "+0100" may trail the milliseconds.
		if i := strings.IndexAny(raw, "+-"); i > 0 {
			raw = raw[:i]
		}
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid odata date %q: %w", s, err)
		}
		*d = odataDate(time.UnixMilli(ms).UTC())
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = odataDate(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("invalid odata date %q", s)
}

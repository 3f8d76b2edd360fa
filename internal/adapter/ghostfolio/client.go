package ghostfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgersync/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Config configures the Ghostfolio client.
type Config struct {
	// Host is the ledger base URL, e.g. https://ghostfol.io.
	Host string

	// Token is the bearer token. Never logged.
	Token string

	// Timeout applies when HTTPClient is nil.
	Timeout time.Duration

	// HTTPClient is an optional custom HTTP client (for testing).
	HTTPClient *http.Client
}

// Client talks to the Ghostfolio REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     zerolog.Logger
}

// NewClient creates a new Ghostfolio client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.Host, "/"),
		token:      cfg.Token,
		logger:     logger.With().Str("component", "ghostfolio").Logger(),
	}
}

// ListActivities returns the stored activities of one account.
// The ledger has no per-account listing so the filter is applied here.
func (c *Client) ListActivities(ctx context.Context, accountID string) ([]domain.Activity, error) {
	var resp ordersResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/order", nil, http.StatusOK, &resp); err != nil {
		return nil, err
	}

	activities := make([]domain.Activity, 0, len(resp.Activities))
	for _, o := range resp.Activities {
		if o.AccountID != accountID {
			continue
		}
		activities = append(activities, o.toDomain())
	}

	c.logger.Debug().
		Int("received", len(resp.Activities)).
		Int("account_activities", len(activities)).
		Msg("fetched activities")
	return activities, nil
}

// ImportActivities submits one chunk. Anything but 201 rejects the chunk.
func (c *Client) ImportActivities(ctx context.Context, activities []domain.Activity) error {
	req := importRequest{Activities: make([]importActivity, len(activities))}
	for i, a := range activities {
		req.Activities[i] = toImportActivity(a)
	}

	if err := c.do(ctx, http.MethodPost, "/api/v1/import", req, http.StatusCreated, nil); err != nil {
		return err
	}
	c.logger.Info().Int("count", len(activities)).Msg("imported activities")
	return nil
}

// UpdateAccount replaces the account, balance included.
func (c *Client) UpdateAccount(ctx context.Context, account domain.Account) error {
	path := "/api/v1/account/" + url.PathEscape(account.ID)
	if err := c.do(ctx, http.MethodPut, path, toAccountPayload(account), http.StatusOK, nil); err != nil {
		return err
	}
	c.logger.Debug().Str("account_id", account.ID).Str("balance", account.Balance.String()).Msg("updated account")
	return nil
}

// ListAccounts returns all ledger accounts.
func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var resp accountsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/account", nil, http.StatusOK, &resp); err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, len(resp.Accounts))
	for i, a := range resp.Accounts {
		accounts[i] = a.toDomain()
	}
	return accounts, nil
}

// CreateAccount creates the account and returns its id.
func (c *Client) CreateAccount(ctx context.Context, account domain.Account) (string, error) {
	payload := toAccountPayload(account)
	payload.ID = ""

	var resp createdResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/account", payload, http.StatusCreated, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// FindPlatformID looks a platform up by its display name.
func (c *Client) FindPlatformID(ctx context.Context, platformName string) (string, error) {
	var resp infoResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/info", nil, http.StatusOK, &resp); err != nil {
		return "", err
	}

	for _, p := range resp.Platforms {
		if p.Name == platformName {
			return p.ID, nil
		}
	}

	names := make([]string, len(resp.Platforms))
	for i, p := range resp.Platforms {
		names[i] = p.Name
	}
	return "", fmt.Errorf("%w: %q not in [%s]", ErrPlatformNotFound, platformName, strings.Join(names, ", "))
}

// IsRestrictedView reports whether the user's restricted view is switched on.
func (c *Client) IsRestrictedView(ctx context.Context) (bool, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/user", nil, http.StatusOK, &resp); err != nil {
		return false, err
	}
	enabled, _ := resp.Settings["isRestrictedView"].(bool)
	return enabled, nil
}

// SetRestrictedView switches the restricted view on or off.
func (c *Client) SetRestrictedView(ctx context.Context, enabled bool) error {
	body := map[string]bool{"isRestrictedView": enabled}
	return c.do(ctx, http.MethodPut, "/api/v1/user/setting", body, http.StatusOK, nil)
}

// LookupSymbol searches instruments by ISIN or symbol.
func (c *Client) LookupSymbol(ctx context.Context, query string) ([]domain.Ticker, error) {
	path := "/api/v1/symbol/lookup?" + url.Values{"query": {query}}.Encode()

	var resp lookupResponse
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &resp); err != nil {
		return nil, err
	}

	tickers := make([]domain.Ticker, len(resp.Items))
	for i, item := range resp.Items {
		tickers[i] = domain.Ticker{DataSource: item.DataSource, Symbol: item.Symbol, Currency: item.Currency}
	}
	return tickers, nil
}

// do sends body as JSON and decodes the response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	endpoint := c.baseURL + path

	var payload []byte
	var reader io.Reader
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().Str("method", method).Str("url", endpoint).Msg("ledger request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		apiErr := &APIError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
			Payload:    string(payload),
		}
		c.logger.Error().Err(apiErr).Msg("ledger request failed")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, endpoint, err)
	}
	return nil
}

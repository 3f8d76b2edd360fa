package ibkr

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/iho/ledgersync/internal/domain"
)

// DefaultBaseURL is the Flex Web Service v3 endpoint.
const DefaultBaseURL = "https://ndcdyn.interactivebrokers.com/AccountManagement/FlexWebService"

const flexVersion = "3"

// Config configures the Flex client.
type Config struct {
	// Token is the Flex Web Service token. Never logged.
	Token string

	// QueryID is the id of the saved Flex query.
	QueryID string

	BaseURL string
	Timeout time.Duration

	// Polling of a statement still being generated.
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration

	// HTTPClient is an optional custom HTTP client (for testing).
	HTTPClient *http.Client
}

// Client fetches Flex query statements.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	token           string
	queryID         string
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
}

type flexStatementResponse struct {
	XMLName       xml.Name `xml:"FlexStatementResponse"`
	Status        string   `xml:"Status"`
	ReferenceCode string   `xml:"ReferenceCode"`
	URL           string   `xml:"Url"`
	ErrorCode     string   `xml:"ErrorCode"`
	ErrorMessage  string   `xml:"ErrorMessage"`
}

// NewClient creates a new Flex client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		httpClient:      httpClient,
		baseURL:         strings.TrimRight(baseURL, "/"),
		token:           cfg.Token,
		queryID:         cfg.QueryID,
		initialInterval: cfg.InitialInterval,
		maxInterval:     cfg.MaxInterval,
		maxElapsedTime:  cfg.MaxElapsedTime,
		logger:          logger.With().Str("component", "ibkr").Logger(),
	}
	if c.initialInterval <= 0 {
		c.initialInterval = 2 * time.Second
	}
	if c.maxInterval <= 0 {
		c.maxInterval = 15 * time.Second
	}
	if c.maxElapsedTime <= 0 {
		c.maxElapsedTime = 3 * time.Minute
	}
	return c
}

// FetchReport requests the statement and waits until it is generated.
func (c *Client) FetchReport(ctx context.Context) (*domain.BrokerReport, error) {
	ref, statementURL, err := c.sendRequest(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Str("reference", ref).Msg("flex statement requested")

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = c.maxInterval
	b.MaxElapsedTime = c.maxElapsedTime

	var report *domain.BrokerReport
	attempts := 0
	err = backoff.Retry(func() error {
		attempts++
		r, err := c.getStatement(ctx, statementURL, ref)
		if err == nil {
			report = r
			return nil
		}

		var flexErr *FlexError
		if errors.As(err, &flexErr) && flexErr.Retryable() {
			c.logger.Debug().Str("code", flexErr.Code).Int("attempt", attempts).Msg("flex statement not ready")
			return fmt.Errorf("%w: %w", domain.ErrStatementNotReady, err)
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Int("trades", len(report.Trades)).
		Int("attempts", attempts).
		Msg("flex statement received")
	return report, nil
}

func (c *Client) sendRequest(ctx context.Context) (string, string, error) {
	endpoint := c.baseURL + "/SendRequest?" + c.query(c.queryID)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", "", err
	}

	var resp flexStatementResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return "", "", fmt.Errorf("decode flex SendRequest response: %w", err)
	}
	if resp.ErrorCode != "" || !strings.EqualFold(resp.Status, "Success") {
		return "", "", &FlexError{URL: c.redact(endpoint), Code: resp.ErrorCode, Message: resp.ErrorMessage}
	}

	statementURL := resp.URL
	if statementURL == "" {
		statementURL = c.baseURL + "/GetStatement"
	}
	return resp.ReferenceCode, statementURL, nil
}

func (c *Client) getStatement(ctx context.Context, statementURL, ref string) (*domain.BrokerReport, error) {
	endpoint := statementURL + "?" + c.query(ref)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	// A pending or failed statement comes back as a FlexStatementResponse.
	if bytes.Contains(body[:min(len(body), 512)], []byte("<FlexStatementResponse")) {
		var resp flexStatementResponse
		if err := xml.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decode flex GetStatement response: %w", err)
		}
		return nil, &FlexError{URL: c.redact(endpoint), Code: resp.ErrorCode, Message: resp.ErrorMessage}
	}

	return ParseStatement(bytes.NewReader(body))
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ledgersync/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", c.redact(endpoint), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.redact(endpoint), err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d: %s", c.redact(endpoint), resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func (c *Client) query(q string) string {
	return url.Values{"t": {c.token}, "q": {q}, "v": {flexVersion}}.Encode()
}

// redact removes the token from URLs that end up in errors and logs.
func (c *Client) redact(endpoint string) string {
	if c.token == "" {
		return endpoint
	}
	return strings.ReplaceAll(endpoint, url.QueryEscape(c.token), "***")
}

// Package fio implements a read-only client for the Fio bank REST API.
//
// The API serves date-ranged account statements; the same endpoint also
// carries the account identity block, so Info is implemented as a zero-width
// statement for today. Fio allows one use of a token per cooldown period
// (30 seconds in production), which the client paces internally.
package fio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/janbuchar/firefly-iii-fio-importer/internal/dateutils"
)

const defaultBaseURL = "https://fioapi.fio.cz/v1/rest"

var log = logrus.New()

// SetLogger allows setting a custom logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var errIncompleteRow = errors.New("statement row missing date or amount")

// StatusError is a non-success HTTP response from the bank API. The request
// URL is deliberately left out because it embeds the API token.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fio: unexpected response %d: %s", e.StatusCode, e.Body)
}

// Client talks to the Fio bank read API using a single account token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	cooldown    time.Duration
	lastRequest time.Time
	sleep       func(time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the production API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithCooldown sets the minimum pause between two API calls. Zero disables
// pacing.
func WithCooldown(cooldown time.Duration) Option {
	return func(c *Client) {
		c.cooldown = cooldown
	}
}

// NewClient creates a Fio API client for the given token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		cooldown:   30 * time.Second,
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Info returns the identity of the account the token belongs to.
func (c *Client) Info(ctx context.Context) (AccountInfo, error) {
	today := time.Now()
	envelope, err := c.statement(ctx, today, today)
	if err != nil {
		return AccountInfo{}, err
	}
	info := envelope.AccountStatement.Info.toAccountInfo()
	if info.IBAN == "" {
		return AccountInfo{}, errors.New("fio: statement info carries no IBAN")
	}
	return info, nil
}

// Period returns all transactions posted between from and to, inclusive, in
// the order the bank reports them.
func (c *Client) Period(ctx context.Context, from, to time.Time) ([]Transaction, error) {
	envelope, err := c.statement(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rows := envelope.AccountStatement.TransactionList.Transaction
	transactions := make([]Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := row.toTransaction()
		if err != nil {
			log.WithError(err).Warn("Skipping malformed statement row")
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func (c *Client) statement(ctx context.Context, from, to time.Time) (*statementEnvelope, error) {
	c.waitCooldown()

	url := fmt.Sprintf("%s/periods/%s/%s/%s/transactions.json",
		c.baseURL, c.token, from.Format(dateutils.DateLayoutISO), to.Format(dateutils.DateLayoutISO))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fio: building statement request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fio: statement request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var envelope statementEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("fio: decoding statement: %w", err)
	}
	return &envelope, nil
}

// waitCooldown paces requests so two calls never hit the API within the
// cooldown window. Fio rejects a token reused too quickly with 409.
func (c *Client) waitCooldown() {
	defer func() { c.lastRequest = time.Now() }()

	if c.cooldown <= 0 || c.lastRequest.IsZero() {
		return
	}
	if wait := c.cooldown - time.Since(c.lastRequest); wait > 0 {
		log.WithField("wait", wait.Round(time.Second).String()).Info("Waiting out the bank API rate limit")
		c.sleep(wait)
	}
}

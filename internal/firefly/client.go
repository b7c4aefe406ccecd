// Package firefly implements the slice of the Firefly III REST API the
// importer consumes: the account registry, the recent-transactions query and
// the transaction store endpoint.
package firefly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/janbuchar/firefly-iii-fio-importer/internal/dateutils"
	"github.com/janbuchar/firefly-iii-fio-importer/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a custom logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Client talks to a Firefly III instance with a personal access token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Firefly III API client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SetHTTPClient overrides the HTTP client used for requests.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	if httpClient != nil {
		c.httpClient = httpClient
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("firefly: encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1/"+path, reader)
	if err != nil {
		return nil, fmt.Errorf("firefly: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("firefly: %s %s failed: %w", method, path, err)
	}
	return resp, nil
}

type accountsPage struct {
	Data []accountPayload `json:"data"`
	Meta struct {
		Pagination struct {
			CurrentPage int `json:"current_page"`
			TotalPages  int `json:"total_pages"`
		} `json:"pagination"`
	} `json:"meta"`
}

type accountPayload struct {
	ID         string `json:"id"`
	Attributes struct {
		Name string `json:"name"`
		Type string `json:"type"`
		IBAN string `json:"iban"`
	} `json:"attributes"`
}

// Accounts fetches the complete account list, following pagination. Any
// non-success response is an error; resolution of every transaction depends
// on this list, so a partial registry cannot be tolerated.
func (c *Client) Accounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	for page := 1; ; page++ {
		resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("accounts?page=%d", page), nil)
		if err != nil {
			return nil, err
		}

		var result accountsPage
		if err := decodeSuccess(resp, &result); err != nil {
			return nil, fmt.Errorf("firefly: listing accounts: %w", err)
		}

		for _, item := range result.Data {
			accounts = append(accounts, models.Account{
				ID:   item.ID,
				Name: item.Attributes.Name,
				Type: models.AccountType(item.Attributes.Type),
				IBAN: item.Attributes.IBAN,
			})
		}

		if page >= result.Meta.Pagination.TotalPages {
			break
		}
	}
	return accounts, nil
}

type transactionsPage struct {
	Data []struct {
		Attributes struct {
			Transactions []struct {
				Type string `json:"type"`
				Date string `json:"date"`
			} `json:"transactions"`
		} `json:"attributes"`
	} `json:"data"`
}

// LastTransactionDate returns the date of the most recent non-transfer
// transaction on the given account, or nil when none exists. Transfers are
// skipped because the paired side may post them out of sequence relative to
// the bank feed.
func (c *Client) LastTransactionDate(ctx context.Context, accountID string) (*time.Time, error) {
	resp, err := c.do(ctx, http.MethodGet, "accounts/"+accountID+"/transactions", nil)
	if err != nil {
		return nil, err
	}

	var result transactionsPage
	if err := decodeSuccess(resp, &result); err != nil {
		return nil, fmt.Errorf("firefly: listing transactions of account %s: %w", accountID, err)
	}

	// Groups arrive most-recent-first; the first split carries the group's
	// type and date.
	for _, group := range result.Data {
		if len(group.Attributes.Transactions) == 0 {
			continue
		}
		split := group.Attributes.Transactions[0]
		if models.TransactionType(split.Type) == models.TypeTransfer {
			continue
		}
		date, err := dateutils.ParseAPIDate(split.Date)
		if err != nil {
			return nil, fmt.Errorf("firefly: transaction date: %w", err)
		}
		return &date, nil
	}
	return nil, nil
}

type storeRequest struct {
	ErrorIfDuplicateHash bool                 `json:"error_if_duplicate_hash"`
	ApplyRules           bool                 `json:"apply_rules"`
	Transactions         []models.Transaction `json:"transactions"`
}

// StoreTransaction submits a single transaction with strict duplicate
// rejection requested, making the ledger the authoritative deduplicator. A
// rejection decodes into an *UploadError for the caller to inspect.
func (c *Client) StoreTransaction(ctx context.Context, tx models.Transaction) error {
	payload := storeRequest{
		ErrorIfDuplicateHash: true,
		ApplyRules:           true,
		Transactions:         []models.Transaction{tx},
	}

	resp, err := c.do(ctx, http.MethodPost, "transactions", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var rejection UploadError
	if err := json.Unmarshal(body, &rejection); err != nil || len(rejection.Errors) == 0 && rejection.Message == "" {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	rejection.StatusCode = resp.StatusCode
	return &rejection
}

// decodeSuccess decodes a 2xx JSON body into out and closes the response.
// Non-2xx responses become a StatusError with the body attached for operator
// diagnosis.
func decodeSuccess(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

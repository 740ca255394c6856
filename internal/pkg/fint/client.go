package fint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ferialink/FeriaLink/internal/pkg/env"
)

const (
	defaultRetries  = 3
	backoffStep     = 2 * time.Second
	defaultCacheTTL = 300 * time.Second
	maxErrorBody    = 64 << 10
)

// APIError is returned for failed Fint mutations. It carries the upstream
// HTTP status so callers can tell a not-found from a validation failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Cache is the read-through cache the client uses for GET responses. A nil
// cache disables caching entirely.
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value string, ttl time.Duration) error
}

// Client talks to the Fint ticketing API. All configuration is explicit;
// there is no package-level client instance.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Cache      Cache
	CacheTTL   time.Duration

	// Sleep overrides the backoff wait, for tests. When nil the client
	// waits on a timer and honors context cancellation.
	Sleep func(d time.Duration)
}

// NewClient creates a client with an explicit base URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		CacheTTL: defaultCacheTTL,
	}
}

// NewClientFromEnv creates a client configured from FINT_API_BASE_URL and
// FINT_API_KEY.
func NewClientFromEnv() *Client {
	return NewClient(
		strings.TrimSpace(env.GetEnv("FINT_API_BASE_URL", "")),
		strings.TrimSpace(env.GetEnv("FINT_API_KEY", "")),
	)
}

// FetchOptions tweak a single fetch. The zero value means the default retry
// budget with caching enabled.
type FetchOptions struct {
	// Retries is the 429 retry budget. Zero means the default of 3; a
	// negative value disables retries.
	Retries int
	// BypassCache skips both the cache read and the cache write.
	BypassCache bool
}

func (o FetchOptions) retryBudget() int {
	if o.Retries == 0 {
		return defaultRetries
	}
	if o.Retries < 0 {
		return 0
	}
	return o.Retries
}

// FetchTicketsByEmail returns the tickets on which the given address is the
// attendee, mapped to the unified shape. Rate-limit responses are retried
// with backoff waits of 2s, 4s, 6s for the default budget.
func (c *Client) FetchTicketsByEmail(ctx context.Context, email string, opts FetchOptions) ([]Ticket, error) {
	var external []ExternalTicket
	if err := c.getJSON(ctx, "/event/ticket/email/"+url.PathEscape(email), "fint:tickets:"+email, opts, &external); err != nil {
		return nil, err
	}

	tickets := make([]Ticket, 0, len(external))
	for _, t := range external {
		tickets = append(tickets, mapTicket(t))
	}
	return tickets, nil
}

// FetchPurchasesByEmail returns the purchases on which the given address is
// the buyer, unmapped, with nested attendees intact. Aggregation needs the
// purchase-level fields to enrich each attendee.
func (c *Client) FetchPurchasesByEmail(ctx context.Context, email string, opts FetchOptions) ([]Purchase, error) {
	var purchases []Purchase
	if err := c.getJSON(ctx, "/event/purchase/email/"+url.PathEscape(email), "fint:purchases:"+email, opts, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// FetchAllUserTickets returns every ticket for which the address is buyer or
// attendee, de-duplicated by external id. Both upstream calls run
// concurrently and both must succeed; no partial result is returned.
//
// Ordering is deterministic: purchase attendees first, in purchase-then-
// attendee order, followed by individual tickets not already seen, in their
// returned order. The purchase-derived version of a duplicated id wins.
func (c *Client) FetchAllUserTickets(ctx context.Context, email string, opts FetchOptions) ([]Ticket, error) {
	var (
		purchases    []Purchase
		tickets      []Ticket
		purchasesErr error
		ticketsErr   error
		wg           sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		purchases, purchasesErr = c.FetchPurchasesByEmail(ctx, email, opts)
	}()
	go func() {
		defer wg.Done()
		tickets, ticketsErr = c.FetchTicketsByEmail(ctx, email, opts)
	}()
	wg.Wait()

	if purchasesErr != nil {
		return nil, fmt.Errorf("fetching purchases for %s: %w", email, purchasesErr)
	}
	if ticketsErr != nil {
		return nil, fmt.Errorf("fetching tickets for %s: %w", email, ticketsErr)
	}

	seen := make(map[int64]struct{})
	result := make([]Ticket, 0, len(tickets))

	for _, p := range purchases {
		for _, a := range p.Attendees {
			if _, ok := seen[a.ID]; ok {
				continue
			}
			seen[a.ID] = struct{}{}
			result = append(result, mapAttendee(a, p))
		}
	}

	for _, t := range tickets {
		if id, err := strconv.ParseInt(t.ID, 10, 64); err == nil {
			if _, ok := seen[id]; ok {
				// Purchase-derived version is authoritative.
				continue
			}
			seen[id] = struct{}{}
		}
		result = append(result, t)
	}

	return result, nil
}

// UpdateTicketByReference changes attendee fields on a ticket. Mutations are
// never retried so a rate-limited or flaky upstream cannot be hit twice with
// the same side effect. The raw provider response is returned as-is.
func (c *Client) UpdateTicketByReference(ctx context.Context, reference string, input UpdateTicketInput) (json.RawMessage, error) {
	if input.Status != nil {
		switch *input.Status {
		case TicketStatusAdmitted, TicketStatusPending, TicketStatusRejected:
		default:
			return nil, fmt.Errorf("invalid ticket status %q", *input.Status)
		}
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	endpoint := c.BaseURL + "/event/ticket/reference/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message: fmt.Sprintf("fint API error: %d %s - %s",
				resp.StatusCode, http.StatusText(resp.StatusCode), readErrorBody(resp.Body)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

// getJSON performs an authenticated GET with the shared retry, caching and
// error contract, decoding the response into out.
func (c *Client) getJSON(ctx context.Context, path, cacheKey string, opts FetchOptions, out interface{}) error {
	if !opts.BypassCache && c.Cache != nil {
		if cached, err := c.Cache.Get(cacheKey); err == nil && cached != "" {
			if err := json.Unmarshal([]byte(cached), out); err == nil {
				return nil
			}
			// Unreadable cache entries fall through to a fresh fetch.
		}
	}

	budget := opts.retryBudget()
	remaining := budget

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("x-api-key", c.APIKey)

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusTooManyRequests && remaining > 0 {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			delay := time.Duration(budget+1-remaining) * backoffStep
			log.Printf("fint: rate limited on %s, retrying in %s", path, delay)
			if err := c.wait(ctx, delay); err != nil {
				return err
			}
			remaining--
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			defer resp.Body.Close()
			return fmt.Errorf("fint API error: %d %s - %s",
				resp.StatusCode, http.StatusText(resp.StatusCode), readErrorBody(resp.Body))
		}

		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return err
		}

		if !opts.BypassCache && c.Cache != nil {
			ttl := c.CacheTTL
			if ttl <= 0 {
				ttl = defaultCacheTTL
			}
			if err := c.Cache.Set(cacheKey, string(raw), ttl); err != nil {
				log.Printf("fint: cache write failed for %s: %v", cacheKey, err)
			}
		}
		return nil
	}
}

func (c *Client) wait(ctx context.Context, d time.Duration) error {
	if c.Sleep != nil {
		c.Sleep(d)
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func readErrorBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(b)) == 0 {
		return "Unknown error"
	}
	return string(bytes.TrimSpace(b))
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

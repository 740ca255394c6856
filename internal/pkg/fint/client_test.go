package fint

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	waits := &[]time.Duration{}
	c := NewClient(srv.URL, "test-api-key")
	c.Sleep = func(d time.Duration) {
		*waits = append(*waits, d)
	}
	return c, waits
}

func TestFetchTicketsByEmail_MapsResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "/event/ticket/email/ana@example.com", r.URL.Path)

		fmt.Fprint(w, `[{
			"id": 101,
			"firstName": "Ana",
			"lastName": "",
			"document": "12345678",
			"email": "ana@example.com",
			"status": "paid",
			"amount": "1500.00",
			"reference": "TK-101",
			"itemName": "General",
			"qrUrl": "",
			"pdfUrl": "https://files.fint.app/101.pdf",
			"purchaseId": 9,
			"purchase": {
				"id": 9,
				"reference": "PU-9",
				"buyerEmail": "buyer@example.com",
				"createdAt": "2026-03-01T10:00:00Z",
				"eventPage": {"id": 1, "name": "Feria 2026", "reference": "FERIA26"}
			}
		}]`)
	})
	c, _ := newTestClient(t, handler)

	tickets, err := c.FetchTicketsByEmail(context.Background(), "ana@example.com", FetchOptions{})
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	tk := tickets[0]
	assert.Equal(t, "101", tk.ID)
	assert.Equal(t, "paid", tk.Status)
	assert.Nil(t, tk.QRURL, "empty qrUrl must map to nil, not empty string")
	require.NotNil(t, tk.PDFURL)
	assert.Equal(t, "https://files.fint.app/101.pdf", *tk.PDFURL)
	assert.Equal(t, "Feria 2026", tk.EventName)
	require.NotNil(t, tk.PurchasedAt)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), tk.PurchasedAt.UTC())
	assert.Equal(t, "ana@example.com", tk.UserEmail)
	require.NotNil(t, tk.FirstName)
	assert.Equal(t, "Ana", *tk.FirstName)
	assert.Nil(t, tk.LastName)
	assert.Equal(t, "PU-9", tk.PurchaseReference)
	assert.Equal(t, "buyer@example.com", tk.BuyerEmail)
}

func TestFetchTicketsByEmail_RetriesOnRateLimit(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `[]`)
	})
	c, waits := newTestClient(t, handler)

	tickets, err := c.FetchTicketsByEmail(context.Background(), "ana@example.com", FetchOptions{})
	require.NoError(t, err)
	assert.Empty(t, tickets)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *waits)
}

func TestFetchTicketsByEmail_RateLimitExhaustsBudget(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	})
	c, waits := newTestClient(t, handler)

	_, err := c.FetchTicketsByEmail(context.Background(), "ana@example.com", FetchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	// Initial call plus the full retry budget.
	assert.EqualValues(t, 4, atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second}, *waits)
}

func TestFetchTicketsByEmail_UpstreamErrorIncludesBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream exploded")
	})
	c, waits := newTestClient(t, handler)

	_, err := c.FetchTicketsByEmail(context.Background(), "ana@example.com", FetchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "Bad Gateway")
	assert.Contains(t, err.Error(), "upstream exploded")
	assert.Empty(t, *waits, "non-429 failures must not be retried")
}

func purchasesAndTicketsHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/event/purchase/email/"):
			fmt.Fprint(w, `[{
				"id": 9,
				"reference": "PU-9",
				"buyerEmail": "buyer@example.com",
				"createdAt": "2026-03-01T10:00:00Z",
				"eventPage": {"id": 1, "name": "Feria 2026", "reference": "FERIA26"},
				"attendees": [
					{"id": 1, "email": "ana@example.com", "status": "paid", "reference": "TK-1", "itemName": "General"},
					{"id": 2, "email": "ben@example.com", "status": "paid", "reference": "TK-2", "itemName": "General"}
				]
			}]`)
		case strings.HasPrefix(r.URL.Path, "/event/ticket/email/"):
			fmt.Fprint(w, `[
				{"id": 2, "email": "ben@example.com", "status": "paid", "reference": "TK-2", "itemName": "Entrada suelta", "purchase": {"eventPage": {"name": ""}}},
				{"id": 3, "email": "ana@example.com", "status": "paid", "reference": "TK-3", "itemName": "VIP Pass", "purchase": {"eventPage": {"name": ""}}}
			]`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestFetchAllUserTickets_MergesAndDeduplicates(t *testing.T) {
	c, _ := newTestClient(t, purchasesAndTicketsHandler(t))

	tickets, err := c.FetchAllUserTickets(context.Background(), "buyer@example.com", FetchOptions{})
	require.NoError(t, err)
	require.Len(t, tickets, 3)

	ids := []string{tickets[0].ID, tickets[1].ID, tickets[2].ID}
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	// id 2 appears in both resources; the purchase-derived version wins.
	assert.Equal(t, "Feria 2026", tickets[1].EventName)
	assert.Equal(t, "PU-9", tickets[1].PurchaseReference)
	assert.Equal(t, "buyer@example.com", tickets[1].BuyerEmail)
	require.NotNil(t, tickets[1].PurchasedAt)

	// id 3 only exists as an individual ticket; item name is the fallback.
	assert.Equal(t, "VIP Pass", tickets[2].EventName)
	assert.Empty(t, tickets[2].BuyerEmail)
}

func TestFetchAllUserTickets_NoDuplicateIDs(t *testing.T) {
	c, _ := newTestClient(t, purchasesAndTicketsHandler(t))

	tickets, err := c.FetchAllUserTickets(context.Background(), "buyer@example.com", FetchOptions{})
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, tk := range tickets {
		assert.False(t, seen[tk.ID], "duplicate id %s", tk.ID)
		seen[tk.ID] = true
	}
}

func TestFetchAllUserTickets_FailsWhenEitherCallFails(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/event/purchase/email/") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `[]`)
	})
	c, _ := newTestClient(t, handler)

	tickets, err := c.FetchAllUserTickets(context.Background(), "buyer@example.com", FetchOptions{})
	require.Error(t, err)
	assert.Nil(t, tickets, "no partial results on upstream failure")
	assert.Contains(t, err.Error(), "500")
}

func TestUpdateTicketByReference(t *testing.T) {
	var gotBody map[string]interface{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/event/ticket/reference/TK-1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"ok": true}`)
	})
	c, _ := newTestClient(t, handler)

	first := "Ana"
	status := TicketStatusAdmitted
	raw, err := c.UpdateTicketByReference(context.Background(), "TK-1", UpdateTicketInput{
		FirstName: &first,
		Status:    &status,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(raw))

	assert.Equal(t, "Ana", gotBody["firstName"])
	assert.Equal(t, "ADMITTED", gotBody["status"])
	_, hasEmail := gotBody["email"]
	assert.False(t, hasEmail, "nil fields must be omitted from the body")
}

func TestUpdateTicketByReference_NonOKReturnsAPIError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "ticket not found")
	})
	c, _ := newTestClient(t, handler)

	_, err := c.UpdateTicketByReference(context.Background(), "TK-404", UpdateTicketInput{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "ticket not found")
}

func TestUpdateTicketByReference_RejectsUnknownStatus(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the upstream")
	}))

	bogus := "CHECKED_IN"
	_, err := c.UpdateTicketByReference(context.Background(), "TK-1", UpdateTicketInput{Status: &bogus})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHECKED_IN")
}

func TestMapTicket_EventNameResolution(t *testing.T) {
	tests := []struct {
		name     string
		ticket   ExternalTicket
		expected string
	}{
		{
			name: "purchase event page name wins",
			ticket: ExternalTicket{
				ItemName: "VIP Pass",
				Purchase: PurchaseSummary{EventPage: EventPage{Name: "Feria 2026"}},
			},
			expected: "Feria 2026",
		},
		{
			name:     "item name is the first fallback",
			ticket:   ExternalTicket{ItemName: "VIP Pass"},
			expected: "VIP Pass",
		},
		{
			name:     "literal default when both are absent",
			ticket:   ExternalTicket{},
			expected: "Evento sin nombre",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapTicket(tt.ticket).EventName)
		})
	}
}

func TestMapTicket_MissingPurchaseDateStaysNil(t *testing.T) {
	tk := mapTicket(ExternalTicket{ID: 1, Purchase: PurchaseSummary{CreatedAt: ""}})
	assert.Nil(t, tk.PurchasedAt)

	tk = mapTicket(ExternalTicket{ID: 1, Purchase: PurchaseSummary{CreatedAt: "not-a-date"}})
	assert.Nil(t, tk.PurchasedAt)
}

type memoryCache struct {
	entries map[string]string
	sets    int
}

func (m *memoryCache) Get(key string) (string, error) {
	v, ok := m.entries[key]
	if !ok {
		return "", errors.New("miss")
	}
	return v, nil
}

func (m *memoryCache) Set(key string, value string, ttl time.Duration) error {
	m.entries[key] = value
	m.sets++
	return nil
}

func TestFetchTicketsByEmail_UsesCache(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `[{"id": 7, "email": "ana@example.com", "status": "paid"}]`)
	})
	c, _ := newTestClient(t, handler)
	c.Cache = &memoryCache{entries: map[string]string{}}

	_, err := c.FetchTicketsByEmail(context.Background(), "ana@example.com", FetchOptions{})
	require.NoError(t, err)
	_, err = c.FetchTicketsByEmail(context.Background(), "ana@example.com", FetchOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "second call must be served from cache")

	_, err = c.FetchTicketsByEmail(context.Background(), "ana@example.com", FetchOptions{BypassCache: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls), "bypass must hit the upstream")
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"event":"ticket.updated"}`)
	secret := "top-secret"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, VerifyWebhookSignature(payload, valid, secret))
	assert.True(t, VerifyWebhookSignature(payload, "sha256="+valid, secret))
	assert.False(t, VerifyWebhookSignature(payload, "deadbeef", secret))
	assert.False(t, VerifyWebhookSignature(payload, valid, "other-secret"))
	assert.False(t, VerifyWebhookSignature(payload, "", secret))
	// Plain equality against the secret must never validate.
	assert.False(t, VerifyWebhookSignature(payload, secret, secret))
}

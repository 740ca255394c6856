package controllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferialink/FeriaLink/app/models"
)

type fakeTicketRepo struct {
	upserted []models.Ticket
	err      error
}

func (f *fakeTicketRepo) Upsert(ticket *models.Ticket) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, *ticket)
	return nil
}

func (f *fakeTicketRepo) GetByExternalID(string) (*models.Ticket, error) { return nil, nil }
func (f *fakeTicketRepo) GetByUserEmail(string) ([]models.Ticket, error) {
	return nil, nil
}
func (f *fakeTicketRepo) GetAll(int, int) ([]models.Ticket, int64, error) {
	return nil, 0, nil
}

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookApp(repo *fakeTicketRepo) *fiber.App {
	app := fiber.New()
	wc := NewWebhookController(repo)
	app.Post("/webhooks/fint", wc.HandleFintWebhook)
	return app
}

func TestFintWebhookUpsertsSnapshot(t *testing.T) {
	t.Setenv("FINT_WEBHOOK_SECRET", "topsecret")

	repo := &fakeTicketRepo{}
	app := newWebhookApp(repo)

	body := []byte(`{"event":"ticket.updated","data":{"id":42,"status":"ADMITTED","email":"ana@example.com","reference":"TK-42","itemName":"Entrada General"}}`)
	req := httptest.NewRequest("POST", "/webhooks/fint", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Fint-Signature", signBody(body, "topsecret"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Len(t, repo.upserted, 1)
	snap := repo.upserted[0]
	assert.Equal(t, "42", snap.ExternalID)
	assert.Equal(t, "ADMITTED", snap.Status)
	assert.Equal(t, "ana@example.com", snap.UserEmail)
	assert.Equal(t, "Entrada General", snap.EventName)
	assert.NotEmpty(t, snap.RawData)
}

func TestFintWebhookRejectsBadSignature(t *testing.T) {
	t.Setenv("FINT_WEBHOOK_SECRET", "topsecret")

	repo := &fakeTicketRepo{}
	app := newWebhookApp(repo)

	body := []byte(`{"event":"ticket.updated","data":{"id":42,"status":"ADMITTED"}}`)
	req := httptest.NewRequest("POST", "/webhooks/fint", bytes.NewReader(body))
	req.Header.Set("X-Fint-Signature", signBody(body, "wrong-secret"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, repo.upserted)
}

func TestFintWebhookRejectsMissingTicket(t *testing.T) {
	t.Setenv("FINT_WEBHOOK_SECRET", "topsecret")

	repo := &fakeTicketRepo{}
	app := newWebhookApp(repo)

	body := []byte(`{"event":"ping"}`)
	req := httptest.NewRequest("POST", "/webhooks/fint", bytes.NewReader(body))
	req.Header.Set("X-Fint-Signature", signBody(body, "topsecret"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, repo.upserted)
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferialink/FeriaLink/internal/pkg/fint"
)

func TestTicketFromFint(t *testing.T) {
	purchased := time.Date(2026, 8, 1, 15, 4, 5, 0, time.UTC)
	qr := "https://fint.example.com/qr/123"
	src := fint.Ticket{
		ID:          "123",
		Status:      fint.TicketStatusAdmitted,
		QRURL:       &qr,
		EventName:   "Feria 2026",
		PurchasedAt: &purchased,
		UserEmail:   "ana@example.com",
		Amount:      "1500.00",
		Reference:   "TK-123",
	}

	snap := TicketFromFint(src, []byte(`{"id":123}`))

	assert.Equal(t, "123", snap.ExternalID)
	assert.Equal(t, fint.TicketStatusAdmitted, snap.Status)
	require.NotNil(t, snap.QRURL)
	assert.Equal(t, qr, *snap.QRURL)
	assert.Nil(t, snap.PDFURL)
	assert.Equal(t, "Feria 2026", snap.EventName)
	require.NotNil(t, snap.PurchasedAt)
	assert.True(t, snap.PurchasedAt.Equal(purchased))
	assert.Equal(t, "ana@example.com", snap.UserEmail)
	assert.JSONEq(t, `{"id":123}`, string(snap.RawData))
}

func TestTicketFromFintWithoutRaw(t *testing.T) {
	snap := TicketFromFint(fint.Ticket{ID: "7", Status: fint.TicketStatusPending}, nil)
	assert.Equal(t, "7", snap.ExternalID)
	assert.Empty(t, snap.RawData)
}

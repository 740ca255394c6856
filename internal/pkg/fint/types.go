package fint

import "time"

// Ticket status values accepted by the Fint ticket update endpoint.
const (
	TicketStatusAdmitted = "ADMITTED"
	TicketStatusPending  = "PENDING"
	TicketStatusRejected = "REJECTED"
)

// DefaultEventName is used when neither the purchase event page nor the
// ticket item carries a name. The literal is user-facing and intentionally
// matches the frontend's Spanish copy.
const DefaultEventName = "Evento sin nombre"

// EventPage is the event summary embedded in purchases and tickets.
type EventPage struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Reference string `json:"reference"`
}

// PurchaseSummary is the purchase envelope embedded in a ticket returned by
// the tickets-by-email resource.
type PurchaseSummary struct {
	ID             int64     `json:"id"`
	Reference      string    `json:"reference"`
	BuyerFirstName string    `json:"buyerFirstName"`
	BuyerLastName  string    `json:"buyerLastName"`
	BuyerEmail     string    `json:"buyerEmail"`
	TotalAmount    string    `json:"totalAmount"`
	CreatedAt      string    `json:"createdAt"`
	OrganizationID int64     `json:"organizationId"`
	EventPageID    int64     `json:"eventPageId"`
	EventPage      EventPage `json:"eventPage"`
}

// ExternalTicket is a ticket as returned by the tickets-by-email resource.
type ExternalTicket struct {
	ID         int64           `json:"id"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Document   string          `json:"document"`
	Email      string          `json:"email"`
	Status     string          `json:"status"`
	Amount     string          `json:"amount"`
	Reference  string          `json:"reference"`
	ItemName   string          `json:"itemName"`
	QRURL      string          `json:"qrUrl"`
	GenerateQR bool            `json:"generateQr"`
	PDFURL     string          `json:"pdfUrl"`
	PurchaseID int64           `json:"purchaseId"`
	Purchase   PurchaseSummary `json:"purchase"`
}

// Attendee is a ticket holder inside a purchase returned by the
// purchases-by-email resource.
type Attendee struct {
	ID                      int64  `json:"id"`
	FirstName               string `json:"firstName"`
	LastName                string `json:"lastName"`
	Document                string `json:"document"`
	Email                   string `json:"email"`
	Status                  string `json:"status"`
	Amount                  string `json:"amount"`
	Reference               string `json:"reference"`
	ItemName                string `json:"itemName"`
	QRURL                   string `json:"qrUrl"`
	PDFURL                  string `json:"pdfUrl"`
	AdditionalInfoRequested bool   `json:"additionalInfoRequested"`
	IsAdditional            bool   `json:"isAdditional"`
}

// Purchase is a purchase with its attendees as returned by the
// purchases-by-email resource.
type Purchase struct {
	ID             int64      `json:"id"`
	Reference      string     `json:"reference"`
	BuyerFirstName string     `json:"buyerFirstName"`
	BuyerLastName  string     `json:"buyerLastName"`
	BuyerDocument  string     `json:"buyerDocument"`
	BuyerEmail     string     `json:"buyerEmail"`
	BuyerPhone     string     `json:"buyerPhone"`
	TotalAmount    string     `json:"totalAmount"`
	CreatedAt      string     `json:"createdAt"`
	PDFURL         string     `json:"pdfUrl"`
	OrganizationID int64      `json:"organizationId"`
	EventPage      EventPage  `json:"eventPage"`
	Attendees      []Attendee `json:"attendees"`
}

// Ticket is the unified internal representation merging both upstream
// shapes. Its identity is the external numeric ticket id rendered as a
// string; when the same id shows up in both resources the purchase-derived
// version wins.
type Ticket struct {
	ID                string     `json:"id"`
	Status            string     `json:"status"`
	QRURL             *string    `json:"qrUrl"`
	PDFURL            *string    `json:"pdfUrl"`
	EventName         string     `json:"eventName"`
	PurchasedAt       *time.Time `json:"purchasedAt"`
	UserEmail         string     `json:"userEmail"`
	FirstName         *string    `json:"firstName"`
	LastName          *string    `json:"lastName"`
	Document          *string    `json:"document"`
	Amount            string     `json:"amount"`
	Reference         string     `json:"reference"`
	ItemName          string     `json:"itemName,omitempty"`
	PurchaseReference string     `json:"purchaseReference,omitempty"`
	BuyerEmail        string     `json:"buyerEmail,omitempty"`
}

// CustomFieldResponse is one answer to an organizer-defined ticket question.
type CustomFieldResponse struct {
	ID            *int64 `json:"id,omitempty"`
	CustomFieldID int64  `json:"customFieldId"`
	Value         string `json:"value"`
}

// UpdateTicketInput carries the subset of attendee fields a caller wants to
// change. Nil fields are omitted from the request body.
type UpdateTicketInput struct {
	FirstName            *string               `json:"firstName,omitempty"`
	LastName             *string               `json:"lastName,omitempty"`
	Email                *string               `json:"email,omitempty"`
	Document             *string               `json:"document,omitempty"`
	Status               *string               `json:"status,omitempty"`
	CustomFieldResponses []CustomFieldResponse `json:"customFieldResponses,omitempty"`
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseCreatedAt parses an upstream purchase timestamp. A missing or
// malformed value maps to nil rather than "now" so data-quality gaps stay
// visible downstream.
func parseCreatedAt(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

// MapExternalTicket converts a raw upstream ticket into the unified shape.
// Used by webhook ingestion, which receives the external representation.
func MapExternalTicket(t ExternalTicket) Ticket {
	return mapTicket(t)
}

// mapTicket converts a tickets-by-email element into the unified shape.
func mapTicket(t ExternalTicket) Ticket {
	eventName := t.Purchase.EventPage.Name
	if eventName == "" {
		eventName = t.ItemName
	}
	if eventName == "" {
		eventName = DefaultEventName
	}

	return Ticket{
		ID:                formatID(t.ID),
		Status:            t.Status,
		QRURL:             nilIfEmpty(t.QRURL),
		PDFURL:            nilIfEmpty(t.PDFURL),
		EventName:         eventName,
		PurchasedAt:       parseCreatedAt(t.Purchase.CreatedAt),
		UserEmail:         t.Email,
		FirstName:         nilIfEmpty(t.FirstName),
		LastName:          nilIfEmpty(t.LastName),
		Document:          nilIfEmpty(t.Document),
		Amount:            t.Amount,
		Reference:         t.Reference,
		ItemName:          t.ItemName,
		PurchaseReference: t.Purchase.Reference,
		BuyerEmail:        t.Purchase.BuyerEmail,
	}
}

// mapAttendee converts a purchase attendee into the unified shape, enriched
// with the purchase-level fields.
func mapAttendee(a Attendee, p Purchase) Ticket {
	eventName := p.EventPage.Name
	if eventName == "" {
		eventName = a.ItemName
	}
	if eventName == "" {
		eventName = DefaultEventName
	}

	return Ticket{
		ID:                formatID(a.ID),
		Status:            a.Status,
		QRURL:             nilIfEmpty(a.QRURL),
		PDFURL:            nilIfEmpty(a.PDFURL),
		EventName:         eventName,
		PurchasedAt:       parseCreatedAt(p.CreatedAt),
		UserEmail:         a.Email,
		FirstName:         nilIfEmpty(a.FirstName),
		LastName:          nilIfEmpty(a.LastName),
		Document:          nilIfEmpty(a.Document),
		Amount:            a.Amount,
		Reference:         a.Reference,
		ItemName:          a.ItemName,
		PurchaseReference: p.Reference,
		BuyerEmail:        p.BuyerEmail,
	}
}

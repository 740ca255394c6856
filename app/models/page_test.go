package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPage() *Page {
	return &Page{
		Title:    "Programa",
		Slug:     "programa",
		Type:     PageTypePrograma,
		Icon:     "Calendar",
		Visible:  true,
		Position: 1,
	}
}

func TestPageValidate(t *testing.T) {
	require.NoError(t, validPage().Validate())
}

func TestPageValidateRejectsUnknownType(t *testing.T) {
	p := validPage()
	p.Type = "WIKI"
	assert.Error(t, p.Validate())
}

func TestPageValidateRejectsUnknownIcon(t *testing.T) {
	p := validPage()
	p.Icon = "Rocket"
	assert.ErrorIs(t, p.Validate(), ErrUnknownIcon)
}

func TestValidPageIcon(t *testing.T) {
	assert.True(t, ValidPageIcon("Home"))
	assert.True(t, ValidPageIcon("Ticket"))
	assert.False(t, ValidPageIcon("home"))
	assert.False(t, ValidPageIcon(""))
}

func TestPageMenuItem(t *testing.T) {
	item := validPage().MenuItem()
	assert.Equal(t, "Programa", item.Name)
	assert.Equal(t, "/programa", item.Href)
	assert.Equal(t, "Calendar", item.Icon)
}

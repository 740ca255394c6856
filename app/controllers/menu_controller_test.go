package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ferialink/FeriaLink/app/models"
)

type fakePageRepo struct {
	pages []models.Page
}

func (f *fakePageRepo) Create(*models.Page) error            { return nil }
func (f *fakePageRepo) Update(*models.Page) error            { return nil }
func (f *fakePageRepo) Delete(string) error                  { return nil }
func (f *fakePageRepo) GetByID(string) (*models.Page, error) { return nil, gorm.ErrRecordNotFound }

func (f *fakePageRepo) GetBySlug(slug string) (*models.Page, error) {
	for i := range f.pages {
		if f.pages[i].Slug == slug && f.pages[i].Visible {
			return &f.pages[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePageRepo) GetAll() ([]models.Page, error) { return f.pages, nil }

func (f *fakePageRepo) GetVisible() ([]models.Page, error) {
	var visible []models.Page
	for _, p := range f.pages {
		if p.Visible {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

func (f *fakePageRepo) SlugExists(slug string) (bool, error) {
	for _, p := range f.pages {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func TestGetMenuProjectsVisiblePages(t *testing.T) {
	repo := &fakePageRepo{pages: []models.Page{
		{Title: "Inicio", Slug: "inicio", Type: models.PageTypeFeed, Icon: "Home", Visible: true, Position: 1},
		{Title: "Borrador", Slug: "borrador", Type: models.PageTypeCustom, Icon: "Info", Visible: false, Position: 2},
		{Title: "Entradas", Slug: "entradas", Type: models.PageTypeEntradas, Icon: "Ticket", Visible: true, Position: 3},
	}}

	app := fiber.New()
	app.Get("/menu", NewMenuController(repo).HandleGetMenu)

	resp, err := app.Test(httptest.NewRequest("GET", "/menu", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "/inicio", items[0].Href)
	assert.Equal(t, "Ticket", items[1].Icon)
}

func TestGetPageHidesUnknownSlug(t *testing.T) {
	repo := &fakePageRepo{}

	app := fiber.New()
	app.Get("/pages/:slug", NewPageController(repo).HandleGetPage)

	resp, err := app.Test(httptest.NewRequest("GET", "/pages/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetPageIncludesBlocksForCustomPages(t *testing.T) {
	repo := &fakePageRepo{pages: []models.Page{
		{
			Title: "Mapa", Slug: "mapa", Type: models.PageTypeCustom,
			Icon: "Map", Visible: true, Position: 1,
			Blocks: []byte(`[{"kind":"image","url":"https://cdn.example.com/mapa.png"}]`),
		},
		{
			Title: "Inicio", Slug: "inicio", Type: models.PageTypeFeed,
			Icon: "Home", Visible: true, Position: 2,
		},
	}}

	app := fiber.New()
	app.Get("/pages/:slug", NewPageController(repo).HandleGetPage)

	resp, err := app.Test(httptest.NewRequest("GET", "/pages/mapa", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Contains(t, payload, "blocks")

	resp, err = app.Test(httptest.NewRequest("GET", "/pages/inicio", nil))
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)

	payload = map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.NotContains(t, payload, "blocks")
}

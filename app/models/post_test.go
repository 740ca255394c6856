package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostBodyRoundTrip(t *testing.T) {
	p := &Post{Title: "Novedades", Kind: PostKindCarousel}
	err := p.SetBody(PostBody{
		Text: "Fotos del primer día",
		Medias: []PostMedia{
			{URL: "https://cdn.example.com/a.jpg", Alt: "Entrada principal"},
			{URL: "https://cdn.example.com/b.jpg", Alt: "Stand central"},
		},
	})
	require.NoError(t, err)

	body, err := p.DecodeBody()
	require.NoError(t, err)
	assert.Equal(t, "Fotos del primer día", body.Text)
	require.Len(t, body.Medias, 2)
	assert.Equal(t, "Stand central", body.Medias[1].Alt)
}

func TestPostDecodeBodyEmpty(t *testing.T) {
	p := &Post{}
	body, err := p.DecodeBody()
	require.NoError(t, err)
	assert.Empty(t, body.Text)
	assert.Nil(t, body.Medias)
}

func TestPostValidateKind(t *testing.T) {
	p := &Post{Title: "Video", Kind: PostKindYoutube}
	assert.NoError(t, p.Validate())

	p.Kind = "TIKTOK"
	assert.Error(t, p.Validate())
}

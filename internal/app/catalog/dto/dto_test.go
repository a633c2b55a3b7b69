package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
)

func TestProductDTO_DecodesWireShape(t *testing.T) {
	raw := `{"id":1,"name":"Mug","count":5,"imageUrl":"u","size":{"width":5,"height":5},"weight":"200g",
		"comments":[{"id":"c1","productId":1,"description":"nice","date":"2026-03-01T10:00:00Z"}]}`

	var d ProductDTO
	require.NoError(t, json.Unmarshal([]byte(raw), &d))

	p := d.ToDomain()
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Mug", p.Name)
	assert.Equal(t, domain.Size{Width: 5, Height: 5}, p.Size)
	require.Len(t, p.Comments, 1)
	assert.Equal(t, "nice", p.Comments[0].Description)
	assert.Equal(t, 2026, p.Comments[0].Date.Year())
}

func TestDraftDTO_EncodesEmptyComments(t *testing.T) {
	b, err := json.Marshal(FromDraft(domain.Draft{Name: "Mug", ImageURL: "u"}))
	require.NoError(t, err)

	assert.Contains(t, string(b), `"comments":[]`)
	assert.NotContains(t, string(b), `"id"`)
}

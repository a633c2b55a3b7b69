package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-mirror/internal/app/catalog/domain"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/dto"
)

const mugJSON = `{"id":1,"name":"Mug","count":5,"imageUrl":"u","size":{"width":5,"height":5},"weight":"200g","comments":[]}`

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", append([]Option{WithoutMetrics()}, opts...)...)
}

func TestListProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, "["+mugJSON+"]")
	})

	got, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Product{
		ID: 1, Name: "Mug", Count: 5, ImageURL: "u",
		Size: domain.Size{Width: 5, Height: 5}, Weight: "200g",
		Comments: []domain.Comment{},
	}, got[0])
}

func TestListProducts_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database down", http.StatusInternalServerError)
	})

	_, err := c.ListProducts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusInternalServerError, gwErr.StatusCode)
	assert.Contains(t, err.Error(), "database down")
}

func TestListProducts_MalformedPayload(t *testing.T) {
	for name, body := range map[string]string{
		"truncated": `[{"id":1,`,
		"object":    mugJSON,
		"null":      `null`,
		"bad type":  `[{"id":"one"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, body)
			})
			_, err := c.ListProducts(context.Background())
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestListProducts_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, WithoutMetrics()).ListProducts(context.Background())
	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, 0, gwErr.StatusCode)
}

func TestCreateProduct_SendsDraft(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var raw map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, hasID := raw["id"]
		assert.False(t, hasID, "draft must not carry an id")
		assert.Equal(t, "Mug", raw["name"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, mugJSON)
	})

	got, err := c.CreateProduct(context.Background(), domain.Draft{Name: "Mug", ImageURL: "u", Count: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "200g", got.Weight)
}

func TestUpdateProduct_SendsFullProduct(t *testing.T) {
	date := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/7", r.URL.Path)

		var in dto.ProductDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Len(t, in.Comments, 1)
		assert.Equal(t, int64(7), in.Comments[0].ProductID)

		_ = json.NewEncoder(w).Encode(in)
	})

	p := domain.Product{ID: 7, Name: "Lamp", ImageURL: "u", Comments: []domain.Comment{
		{ID: "c1", ProductID: 7, Description: "bright", Date: date},
	}}
	got, err := c.UpdateProduct(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestCreateProduct_RejectsShapelessEcho(t *testing.T) {
	for name, body := range map[string]string{
		"null":     `null`,
		"empty":    `{}`,
		"zero id":  `{"id":0,"name":"Mug"}`,
		"negative": `{"id":-4,"name":"Mug"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = io.WriteString(w, body)
			})
			_, err := c.CreateProduct(context.Background(), domain.Draft{Name: "Mug", ImageURL: "u"})
			assert.ErrorIs(t, err, ErrMalformedPayload)

			var gwErr *Error
			require.True(t, errors.As(err, &gwErr))
			assert.Equal(t, http.MethodPost, gwErr.Method)
		})
	}
}

func TestUpdateProduct_RejectsShapelessOrForeignEcho(t *testing.T) {
	for name, body := range map[string]string{
		"null":     `null`,
		"empty":    `{}`,
		"other id": `{"id":8,"name":"Lamp","imageUrl":"u","comments":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, body)
			})
			_, err := c.UpdateProduct(context.Background(), domain.Product{ID: 7, Name: "Lamp", ImageURL: "u"})
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestListProducts_RejectsElementWithoutID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "["+mugJSON+",{}]")
	})

	_, err := c.ListProducts(context.Background())
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestDeleteProduct(t *testing.T) {
	var hit bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hit = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/products/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteProduct(context.Background(), 3))
	assert.True(t, hit)
}

func TestDeleteProduct_NotFoundIsFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.DeleteProduct(context.Background(), 3)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestCancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListProducts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimit_Throttles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "[]")
	}, WithRateLimit(20, 1))

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.ListProducts(context.Background())
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-coopcycle/httpx"
	"github.com/diewo77/go-coopcycle/internal/models"
)

func ptr[T any](v T) *T { return &v }

type recorded struct {
	method      string
	path        string
	query       string
	contentType string
	body        map[string]any
}

// fakeAPI answers every request with status and body and records what it got.
func fakeAPI(t *testing.T, status int, body string, header http.Header) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.contentType = r.Header.Get("Content-Type")
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		for k, v := range header {
			w.Header()[k] = v
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestCreate_PostsWithoutID(t *testing.T) {
	srv, rec := fakeAPI(t, http.StatusCreated, `{"id":1051,"amount":53967,"paymentType":"GOOGLE_PAY"}`, nil)
	c := New[*models.Paiement](srv.Client(), srv.URL, models.PaiementResource)

	got, err := c.Create(context.Background(), &models.Paiement{Amount: ptr(53967.0), PaymentType: ptr(models.PaymentGooglePay)})
	require.NoError(t, err)
	assert.Equal(t, models.ID(1051), got.ID)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/paiements", rec.path)
	assert.Equal(t, "application/json", rec.contentType)
	assert.Nil(t, rec.body["id"])
	assert.Equal(t, "GOOGLE_PAY", rec.body["paymentType"])
}

func TestCreate_RejectsExistingEntity(t *testing.T) {
	c := New[*models.Paiement](nil, "http://unused", models.PaiementResource)
	_, err := c.Create(context.Background(), &models.Paiement{ID: 4})
	assert.ErrorIs(t, err, ErrHasIdentity)
}

func TestUpdate_PutsByID(t *testing.T) {
	srv, rec := fakeAPI(t, http.StatusOK, `{"id":5189,"status":"LIVREE","panier":{"id":82318}}`, nil)
	c := New[*models.Commande](srv.Client(), srv.URL+"/", models.CommandeResource)

	got, err := c.Update(context.Background(), &models.Commande{ID: 5189, Status: ptr(models.CommandeLivree)})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/commandes/5189", rec.path)
	assert.Equal(t, models.ID(82318), got.Panier.IDOf())

	_, err = c.Update(context.Background(), &models.Commande{})
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestPartialUpdate_SendsMergePatch(t *testing.T) {
	srv, rec := fakeAPI(t, http.StatusOK, `{"id":7,"price":12.5}`, nil)
	c := New[*models.Panier](srv.Client(), srv.URL, models.PanierResource)

	_, err := c.PartialUpdate(context.Background(), &models.Panier{ID: 7, Price: ptr(12.5)})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, httpx.MergePatchJSON, rec.contentType)
	_, hasDescription := rec.body["description"]
	assert.False(t, hasDescription, "absent fields must not be sent")
}

func TestFind(t *testing.T) {
	srv, rec := fakeAPI(t, http.StatusOK, `{"id":3,"firstName":"Ada","lastName":"Lovelace","type":"CLIENT"}`, nil)
	c := New[*models.Societaire](srv.Client(), srv.URL, models.SocietaireResource)

	got, err := c.Find(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "/api/societaires/3", rec.path)
	assert.Equal(t, "Ada", *got.FirstName)
	assert.Equal(t, models.SocietaireClient, *got.Type)
}

func TestFind_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"404", http.StatusNotFound, `{"error":"not_found"}`},
		{"empty body", http.StatusOK, ""},
		{"null body", http.StatusOK, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := fakeAPI(t, tt.status, tt.body, nil)
			c := New[*models.Client](srv.Client(), srv.URL, models.ClientResource)
			got, err := c.Find(context.Background(), 9)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Nil(t, got)
		})
	}
}

func TestQuery(t *testing.T) {
	header := http.Header{httpx.TotalCountHeader: []string{"42"}}
	srv, rec := fakeAPI(t, http.StatusOK, `[{"id":82318},{"id":2}]`, header)
	c := New[*models.Panier](srv.Client(), srv.URL, models.PanierResource)

	page, err := c.Query(context.Background(), Request{
		Page:   1,
		Size:   2,
		Sort:   []string{"price,desc"},
		Filter: map[string]string{"restaurant": "7"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, models.ID(82318), page.Items[0].ID)
	assert.Equal(t, "page=1&restaurant.equals=7&size=2&sort=price%2Cdesc", rec.query)
}

func TestQuery_NoParams(t *testing.T) {
	srv, rec := fakeAPI(t, http.StatusOK, `[]`, nil)
	c := New[*models.Panier](srv.Client(), srv.URL, models.PanierResource)
	page, err := c.Query(context.Background(), Request{})
	require.NoError(t, err)
	assert.Empty(t, rec.query)
	assert.Zero(t, page.Total)
}

func TestDelete(t *testing.T) {
	srv, rec := fakeAPI(t, http.StatusNoContent, "", nil)
	c := New[*models.Restaurant](srv.Client(), srv.URL, models.RestaurantResource)
	require.NoError(t, c.Delete(context.Background(), 11))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/restaurants/11", rec.path)
}

func TestStatusError(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusBadRequest, `{"error":"validation_failed","details":{"price":"required"}}`, nil)
	c := New[*models.Panier](srv.Client(), srv.URL, models.PanierResource)

	_, err := c.Create(context.Background(), &models.Panier{})
	var se *StatusError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "validation_failed", se.Code)
	assert.Equal(t, map[string]any{"price": "required"}, se.Details)
}

func TestTransportError(t *testing.T) {
	srv, _ := fakeAPI(t, http.StatusOK, "", nil)
	c := New[*models.Panier](srv.Client(), srv.URL, models.PanierResource)
	srv.Close()
	_, err := c.Query(context.Background(), Request{})
	assert.Error(t, err)
}

func TestIdentityHelpers(t *testing.T) {
	c := New[*models.Panier](nil, "http://unused", models.PanierResource)
	a := &models.Panier{ID: 1}
	b := &models.Panier{ID: 1, Price: ptr(3.0)}

	assert.True(t, c.Compare(a, b))
	assert.True(t, c.Compare(nil, nil))
	assert.False(t, c.Compare(a, nil))
	assert.Equal(t, models.ID(0), c.Identifier(nil))
	assert.Equal(t, models.ID(1), c.Identifier(a))

	collection := []*models.Panier{{ID: 2}, {ID: 3}}
	got := c.AddToCollectionIfMissing(collection, nil, &models.Panier{ID: 82318}, &models.Panier{ID: 3})
	require.Len(t, got, 3)
	assert.Equal(t, models.ID(82318), got[0].ID)
}

func TestNewSet(t *testing.T) {
	s := NewSet(nil, "http://localhost:8080")
	assert.Equal(t, models.CommandeResource, s.Commandes.Resource())
	assert.Equal(t, "http://localhost:8080/api/societaires/5", s.Societaires.apipath("5"))
}

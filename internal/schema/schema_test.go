package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-coopcycle/internal/models"
	"github.com/diewo77/go-coopcycle/validation"
)

func ptr[T any](v T) *T { return &v }

func TestValidate_Client(t *testing.T) {
	valid := map[string]any{
		"firstName": "Jean",
		"lastName":  "Dupont",
		"email":     "jean@coop.fr",
		"phone":     "06 123 45 67",
		"address":   "12 rue des Lilas",
	}
	assert.True(t, Client.Validate(valid).Empty())

	bad := map[string]any{
		"id":        json.Number("7"),
		"firstName": "J",
		"email":     "jean.coop.fr",
		"phone":     "12345",
		"address":   "rue",
	}
	got := Client.Validate(bad)
	assert.Equal(t, validation.Violations{
		"firstName": validation.CodeTooShort,
		"lastName":  validation.CodeRequired,
		"email":     validation.CodeInvalidFormat,
		"phone":     validation.CodeInvalidFormat,
		"address":   validation.CodeTooShort,
	}, got)
}

func TestValidate_CommandeRequiresPanier(t *testing.T) {
	values := map[string]any{
		"dateTime": "2023-03-19T01:10",
		"status":   "PRETE",
		"panier":   nil,
	}
	got := Commande.Validate(values)
	assert.Equal(t, validation.Violations{"panier": validation.CodeRequired}, got)

	values["panier"] = map[string]any{"id": json.Number("82318")}
	assert.True(t, Commande.Validate(values).Empty())

	values["dateTime"] = "19/03/2023"
	values["status"] = "PERDUE"
	got = Commande.Validate(values)
	assert.Equal(t, validation.CodeInvalidFormat, got["dateTime"])
	assert.Equal(t, validation.CodeInvalidChoice, got["status"])
}

func TestValidate_PanierDescriptionOptional(t *testing.T) {
	assert.True(t, Panier.Validate(map[string]any{"price": json.Number("12.5")}).Empty())

	got := Panier.Validate(map[string]any{"description": "abc", "price": json.Number("-1")})
	assert.Equal(t, validation.Violations{
		"description": validation.CodeTooShort,
		"price":       validation.CodeOutOfRange,
	}, got)
}

func TestValidateEntity_Paiement(t *testing.T) {
	p := &models.Paiement{Amount: ptr(53967.0), PaymentType: ptr(models.PaymentGooglePay)}
	v, err := Paiement.ValidateEntity(p)
	require.NoError(t, err)
	assert.True(t, v.Empty(), "unexpected violations %v", v)

	v, err = Paiement.ValidateEntity(&models.Paiement{})
	require.NoError(t, err)
	assert.Equal(t, validation.Violations{
		"amount":      validation.CodeRequired,
		"paymentType": validation.CodeRequired,
	}, v)
}

func TestValues_KeepsReferenceShape(t *testing.T) {
	c := &models.Commande{ID: 5189, Panier: models.RefTo[models.Panier](82318)}
	values, err := Values(c)
	require.NoError(t, err)
	assert.Equal(t, json.Number("5189"), values["id"])
	assert.Equal(t, map[string]any{"id": json.Number("82318")}, values["panier"])
	_, has := values["paiement"]
	assert.False(t, has)

	var back models.Commande
	require.NoError(t, Decode(values, &back))
	assert.Equal(t, models.ID(82318), back.Panier.IDOf())
}

func TestValues_NilEntity(t *testing.T) {
	var p *models.Panier
	values, err := Values(p)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestSchemas_Lookup(t *testing.T) {
	for _, s := range All() {
		got, ok := ByResource(s.Resource)
		require.True(t, ok, s.Resource)
		assert.Same(t, s, got)
		f, ok := s.Field("id")
		require.True(t, ok)
		assert.True(t, f.ReadOnly, "%s id should be read-only", s.Entity)
		assert.Equal(t, "id", s.Names()[0])
	}
	_, ok := ByResource("livreurs")
	assert.False(t, ok)

	f, ok := Restaurant.Field("restaurateur")
	require.True(t, ok)
	assert.Equal(t, KindRef, f.Kind)
	assert.Equal(t, "restaurateur_id", f.Column)
	assert.Equal(t, models.RestaurateurResource, f.Target)
}

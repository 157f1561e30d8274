package client

import (
	"net/http"

	"github.com/diewo77/go-coopcycle/internal/models"
)

// Set groups the clients of every coopcycle resource.
type Set struct {
	Clients       *Client[*models.Client]
	Commandes     *Client[*models.Commande]
	Paiements     *Client[*models.Paiement]
	Paniers       *Client[*models.Panier]
	Restaurants   *Client[*models.Restaurant]
	Restaurateurs *Client[*models.Restaurateur]
	Societaires   *Client[*models.Societaire]
}

func NewSet(httpclient *http.Client, api string) *Set {
	return &Set{
		Clients:       New[*models.Client](httpclient, api, models.ClientResource),
		Commandes:     New[*models.Commande](httpclient, api, models.CommandeResource),
		Paiements:     New[*models.Paiement](httpclient, api, models.PaiementResource),
		Paniers:       New[*models.Panier](httpclient, api, models.PanierResource),
		Restaurants:   New[*models.Restaurant](httpclient, api, models.RestaurantResource),
		Restaurateurs: New[*models.Restaurateur](httpclient, api, models.RestaurateurResource),
		Societaires:   New[*models.Societaire](httpclient, api, models.SocietaireResource),
	}
}

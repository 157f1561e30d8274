package editor

import (
	"time"

	"github.com/diewo77/go-coopcycle/internal/client"
	"github.com/diewo77/go-coopcycle/internal/form"
	"github.com/diewo77/go-coopcycle/internal/models"
)

type ClientEditor struct {
	*Editor[*models.Client]
	Commandes *Options[*models.Client, *models.Commande]
}

func NewClientEditor(set *client.Set, nav Navigator, opts ...Option[*models.Client]) (*ClientEditor, error) {
	ce := &ClientEditor{
		Commandes: NewOptions[*models.Client, *models.Commande](models.CommandeResource, set.Commandes,
			func(c *models.Client) models.ID { return c.Commande.IDOf() }),
	}
	opts = append(opts, WithRelations[*models.Client](ce.Commandes))
	ed, err := New(set.Clients, form.NewClientBinder(), nav, opts...)
	if err != nil {
		return nil, err
	}
	ce.Editor = ed
	return ce, nil
}

type CommandeEditor struct {
	*Editor[*models.Commande]
	Paniers   *Options[*models.Commande, *models.Panier]
	Paiements *Options[*models.Commande, *models.Paiement]
}

// NewCommandeEditor pre-fills new orders with now() as their date-time.
func NewCommandeEditor(set *client.Set, nav Navigator, now func() time.Time, opts ...Option[*models.Commande]) (*CommandeEditor, error) {
	ce := &CommandeEditor{
		Paniers: NewOptions[*models.Commande, *models.Panier](models.PanierResource, set.Paniers,
			func(c *models.Commande) models.ID { return c.Panier.IDOf() }),
		Paiements: NewOptions[*models.Commande, *models.Paiement](models.PaiementResource, set.Paiements,
			func(c *models.Commande) models.ID { return c.Paiement.IDOf() }),
	}
	opts = append(opts, WithRelations[*models.Commande](ce.Paniers, ce.Paiements))
	ed, err := New(set.Commandes, form.NewCommandeBinder(now), nav, opts...)
	if err != nil {
		return nil, err
	}
	ce.Editor = ed
	return ce, nil
}

type PaiementEditor struct {
	*Editor[*models.Paiement]
}

func NewPaiementEditor(set *client.Set, nav Navigator, opts ...Option[*models.Paiement]) (*PaiementEditor, error) {
	ed, err := New(set.Paiements, form.NewPaiementBinder(), nav, opts...)
	if err != nil {
		return nil, err
	}
	return &PaiementEditor{Editor: ed}, nil
}

type PanierEditor struct {
	*Editor[*models.Panier]
	Restaurants *Options[*models.Panier, *models.Restaurant]
}

func NewPanierEditor(set *client.Set, nav Navigator, opts ...Option[*models.Panier]) (*PanierEditor, error) {
	pe := &PanierEditor{
		Restaurants: NewOptions[*models.Panier, *models.Restaurant](models.RestaurantResource, set.Restaurants,
			func(p *models.Panier) models.ID { return p.Restaurant.IDOf() }),
	}
	opts = append(opts, WithRelations[*models.Panier](pe.Restaurants))
	ed, err := New(set.Paniers, form.NewPanierBinder(), nav, opts...)
	if err != nil {
		return nil, err
	}
	pe.Editor = ed
	return pe, nil
}

type RestaurantEditor struct {
	*Editor[*models.Restaurant]
	Restaurateurs *Options[*models.Restaurant, *models.Restaurateur]
}

func NewRestaurantEditor(set *client.Set, nav Navigator, opts ...Option[*models.Restaurant]) (*RestaurantEditor, error) {
	re := &RestaurantEditor{
		Restaurateurs: NewOptions[*models.Restaurant, *models.Restaurateur](models.RestaurateurResource, set.Restaurateurs,
			func(r *models.Restaurant) models.ID { return r.Restaurateur.IDOf() }),
	}
	opts = append(opts, WithRelations[*models.Restaurant](re.Restaurateurs))
	ed, err := New(set.Restaurants, form.NewRestaurantBinder(), nav, opts...)
	if err != nil {
		return nil, err
	}
	re.Editor = ed
	return re, nil
}

type RestaurateurEditor struct {
	*Editor[*models.Restaurateur]
	Commandes   *Options[*models.Restaurateur, *models.Commande]
	Societaires *Options[*models.Restaurateur, *models.Societaire]
}

func NewRestaurateurEditor(set *client.Set, nav Navigator, opts ...Option[*models.Restaurateur]) (*RestaurateurEditor, error) {
	re := &RestaurateurEditor{
		Commandes: NewOptions[*models.Restaurateur, *models.Commande](models.CommandeResource, set.Commandes,
			func(r *models.Restaurateur) models.ID { return r.Commande.IDOf() }),
		Societaires: NewOptions[*models.Restaurateur, *models.Societaire](models.SocietaireResource, set.Societaires,
			func(r *models.Restaurateur) models.ID { return r.Societaire.IDOf() }),
	}
	opts = append(opts, WithRelations[*models.Restaurateur](re.Commandes, re.Societaires))
	ed, err := New(set.Restaurateurs, form.NewRestaurateurBinder(), nav, opts...)
	if err != nil {
		return nil, err
	}
	re.Editor = ed
	return re, nil
}

type SocietaireEditor struct {
	*Editor[*models.Societaire]
}

func NewSocietaireEditor(set *client.Set, nav Navigator, opts ...Option[*models.Societaire]) (*SocietaireEditor, error) {
	ed, err := New(set.Societaires, form.NewSocietaireBinder(), nav, opts...)
	if err != nil {
		return nil, err
	}
	return &SocietaireEditor{Editor: ed}, nil
}

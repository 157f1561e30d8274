package form

import (
	"time"

	"github.com/diewo77/go-coopcycle/internal/models"
	"github.com/diewo77/go-coopcycle/internal/schema"
)

func NewClientBinder() *Binder[*models.Client] {
	return NewBinder[*models.Client](schema.Client, nil)
}

// NewCommandeBinder pre-fills dateTime with now(), to the minute, each time a
// group is built or reset. A nil now uses time.Now.
func NewCommandeBinder(now func() time.Time) *Binder[*models.Commande] {
	if now == nil {
		now = time.Now
	}
	return NewBinder[*models.Commande](schema.Commande, func() map[string]any {
		return map[string]any{"dateTime": models.NewDateTime(now()).String()}
	})
}

func NewPaiementBinder() *Binder[*models.Paiement] {
	return NewBinder[*models.Paiement](schema.Paiement, nil)
}

func NewPanierBinder() *Binder[*models.Panier] {
	return NewBinder[*models.Panier](schema.Panier, nil)
}

func NewRestaurantBinder() *Binder[*models.Restaurant] {
	return NewBinder[*models.Restaurant](schema.Restaurant, nil)
}

func NewRestaurateurBinder() *Binder[*models.Restaurateur] {
	return NewBinder[*models.Restaurateur](schema.Restaurateur, nil)
}

func NewSocietaireBinder() *Binder[*models.Societaire] {
	return NewBinder[*models.Societaire](schema.Societaire, nil)
}

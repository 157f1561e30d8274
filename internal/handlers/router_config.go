package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/diewo77/go-coopcycle/internal/models"
	"github.com/diewo77/go-coopcycle/internal/schema"
	"github.com/diewo77/go-coopcycle/internal/services"
)

// RouterConfig holds the configured resource handlers of the application.
type RouterConfig struct {
	ClientHandler       *ResourceHandler[models.Client, *models.Client]
	CommandeHandler     *ResourceHandler[models.Commande, *models.Commande]
	PaiementHandler     *ResourceHandler[models.Paiement, *models.Paiement]
	PanierHandler       *ResourceHandler[models.Panier, *models.Panier]
	RestaurantHandler   *ResourceHandler[models.Restaurant, *models.Restaurant]
	RestaurateurHandler *ResourceHandler[models.Restaurateur, *models.Restaurateur]
	SocietaireHandler   *ResourceHandler[models.Societaire, *models.Societaire]
}

// NewRouterConfig wires one handler per entity against db.
//
//	cfg := handlers.NewRouterConfig(db, log)
//	cfg.Register(mux)
func NewRouterConfig(db *gorm.DB, log logrus.FieldLogger) *RouterConfig {
	refs := References{
		models.ClientResource:       services.NewRepository[models.Client](db),
		models.CommandeResource:     services.NewRepository[models.Commande](db),
		models.PaiementResource:     services.NewRepository[models.Paiement](db),
		models.PanierResource:       services.NewRepository[models.Panier](db),
		models.RestaurantResource:   services.NewRepository[models.Restaurant](db),
		models.RestaurateurResource: services.NewRepository[models.Restaurateur](db),
		models.SocietaireResource:   services.NewRepository[models.Societaire](db),
	}
	return &RouterConfig{
		ClientHandler:       NewResourceHandler[models.Client, *models.Client](db, schema.Client, refs, log),
		CommandeHandler:     NewResourceHandler[models.Commande, *models.Commande](db, schema.Commande, refs, log),
		PaiementHandler:     NewResourceHandler[models.Paiement, *models.Paiement](db, schema.Paiement, refs, log),
		PanierHandler:       NewResourceHandler[models.Panier, *models.Panier](db, schema.Panier, refs, log),
		RestaurantHandler:   NewResourceHandler[models.Restaurant, *models.Restaurant](db, schema.Restaurant, refs, log),
		RestaurateurHandler: NewResourceHandler[models.Restaurateur, *models.Restaurateur](db, schema.Restaurateur, refs, log),
		SocietaireHandler:   NewResourceHandler[models.Societaire, *models.Societaire](db, schema.Societaire, refs, log),
	}
}

// Register mounts every resource under /api.
func (c *RouterConfig) Register(mux *http.ServeMux) {
	c.ClientHandler.Register(mux)
	c.CommandeHandler.Register(mux)
	c.PaiementHandler.Register(mux)
	c.PanierHandler.Register(mux)
	c.RestaurantHandler.Register(mux)
	c.RestaurateurHandler.Register(mux)
	c.SocietaireHandler.Register(mux)
}

package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-coopcycle/internal/models"
)

func ptr[T any](v T) *T { return &v }

// Seed inserts a small linked sample of every entity, for development.
// Records are looked up by a natural key first, so running it twice adds
// nothing.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		soc := models.Societaire{FirstName: ptr("Camille"), LastName: ptr("Durand"), Type: ptr(models.SocietaireRestaurateur)}
		if err := tx.Where("first_name = ? AND last_name = ?", *soc.FirstName, *soc.LastName).FirstOrCreate(&soc).Error; err != nil {
			return fmt.Errorf("seed societaire: %w", err)
		}
		livreur := models.Societaire{FirstName: ptr("Hugo"), LastName: ptr("Lefebvre"), Type: ptr(models.SocietaireLivreur)}
		if err := tx.Where("first_name = ? AND last_name = ?", *livreur.FirstName, *livreur.LastName).FirstOrCreate(&livreur).Error; err != nil {
			return fmt.Errorf("seed societaire: %w", err)
		}

		rest := models.Restaurateur{FirstName: ptr("Camille"), LastName: ptr("Durand"), Societaire: models.RefTo[models.Societaire](soc.ID)}
		if err := tx.Where("first_name = ? AND last_name = ?", *rest.FirstName, *rest.LastName).FirstOrCreate(&rest).Error; err != nil {
			return fmt.Errorf("seed restaurateur: %w", err)
		}

		resto := models.Restaurant{
			Name:         ptr("Le Vélo Gourmand"),
			Address:      ptr("12 rue des Coopérateurs, Lyon"),
			Menu:         ptr("Salade de saison, quiche, tarte aux pommes"),
			Restaurateur: models.RefTo[models.Restaurateur](rest.ID),
		}
		if err := tx.Where("name = ?", *resto.Name).FirstOrCreate(&resto).Error; err != nil {
			return fmt.Errorf("seed restaurant: %w", err)
		}

		panier := models.Panier{Description: ptr("Menu du jour végétarien"), Price: ptr(14.5), Restaurant: models.RefTo[models.Restaurant](resto.ID)}
		if err := tx.Where("description = ?", *panier.Description).FirstOrCreate(&panier).Error; err != nil {
			return fmt.Errorf("seed panier: %w", err)
		}

		paiement := models.Paiement{Amount: ptr(53967.0), PaymentType: ptr(models.PaymentGooglePay)}
		if err := tx.Where("amount = ? AND payment_type = ?", *paiement.Amount, *paiement.PaymentType).FirstOrCreate(&paiement).Error; err != nil {
			return fmt.Errorf("seed paiement: %w", err)
		}

		commande := models.Commande{
			DateTime: ptr(models.NewDateTime(time.Date(2024, 5, 14, 12, 30, 0, 0, time.UTC))),
			Status:   ptr(models.CommandeEnCours),
			Panier:   models.RefTo[models.Panier](panier.ID),
			Paiement: models.RefTo[models.Paiement](paiement.ID),
		}
		if err := tx.Where("panier_id = ?", panier.ID).FirstOrCreate(&commande).Error; err != nil {
			return fmt.Errorf("seed commande: %w", err)
		}

		client := models.Client{
			FirstName: ptr("Léa"),
			LastName:  ptr("Moreau"),
			Email:     ptr("lea.moreau@example.org"),
			Phone:     ptr("0612345678"),
			Address:   ptr("3 place Bellecour, Lyon"),
			Commande:  models.RefTo[models.Commande](commande.ID),
		}
		if err := tx.Where("email = ?", *client.Email).FirstOrCreate(&client).Error; err != nil {
			return fmt.Errorf("seed client: %w", err)
		}
		return nil
	})
}

package models

// Resource names, as used in api/<resource>.
const (
	ClientResource       = "clients"
	CommandeResource     = "commandes"
	PaiementResource     = "paiements"
	PanierResource       = "paniers"
	RestaurantResource   = "restaurants"
	RestaurateurResource = "restaurateurs"
	SocietaireResource   = "societaires"
)

// Client is a customer of the cooperative.
type Client struct {
	ID        ID             `json:"id" gorm:"primaryKey"`
	FirstName *string        `json:"firstName,omitempty" gorm:"size:50;not null"`
	LastName  *string        `json:"lastName,omitempty" gorm:"size:50;not null"`
	Email     *string        `json:"email,omitempty" gorm:"size:255;not null"`
	Phone     *string        `json:"phone,omitempty" gorm:"size:32;not null"`
	Address   *string        `json:"address,omitempty" gorm:"size:100;not null"`
	Commande  *Ref[Commande] `json:"commande,omitempty" gorm:"column:commande_id"`
}

func (Client) TableName() string    { return "client" }
func (c *Client) Identity() ID      { return c.ID }
func (c *Client) SetIdentity(id ID) { c.ID = id }

// Commande is an order: a basket, its payment and its delivery status.
type Commande struct {
	ID       ID              `json:"id" gorm:"primaryKey"`
	DateTime *DateTime       `json:"dateTime,omitempty" gorm:"column:date_time;not null"`
	Status   *CommandeStatus `json:"status,omitempty" gorm:"size:16;not null"`
	Panier   *Ref[Panier]    `json:"panier,omitempty" gorm:"column:panier_id"`
	Paiement *Ref[Paiement]  `json:"paiement,omitempty" gorm:"column:paiement_id"`
}

func (Commande) TableName() string    { return "commande" }
func (c *Commande) Identity() ID      { return c.ID }
func (c *Commande) SetIdentity(id ID) { c.ID = id }

// Paiement is a payment made for a Commande.
type Paiement struct {
	ID          ID           `json:"id" gorm:"primaryKey"`
	Amount      *float64     `json:"amount,omitempty" gorm:"not null"`
	PaymentType *PaymentType `json:"paymentType,omitempty" gorm:"column:payment_type;size:16;not null"`
}

func (Paiement) TableName() string    { return "paiement" }
func (p *Paiement) Identity() ID      { return p.ID }
func (p *Paiement) SetIdentity(id ID) { p.ID = id }

// Panier is a basket prepared by a Restaurant.
type Panier struct {
	ID          ID               `json:"id" gorm:"primaryKey"`
	Description *string          `json:"description,omitempty" gorm:"size:500"`
	Price       *float64         `json:"price,omitempty" gorm:"not null"`
	Restaurant  *Ref[Restaurant] `json:"restaurant,omitempty" gorm:"column:restaurant_id"`
}

func (Panier) TableName() string    { return "panier" }
func (p *Panier) Identity() ID      { return p.ID }
func (p *Panier) SetIdentity(id ID) { p.ID = id }

// Restaurant is a member restaurant run by a Restaurateur.
type Restaurant struct {
	ID           ID                 `json:"id" gorm:"primaryKey"`
	Name         *string            `json:"name,omitempty" gorm:"size:100;not null"`
	Address      *string            `json:"address,omitempty" gorm:"size:100;not null"`
	Menu         *string            `json:"menu,omitempty" gorm:"size:500"`
	Restaurateur *Ref[Restaurateur] `json:"restaurateur,omitempty" gorm:"column:restaurateur_id"`
}

func (Restaurant) TableName() string    { return "restaurant" }
func (r *Restaurant) Identity() ID      { return r.ID }
func (r *Restaurant) SetIdentity(id ID) { r.ID = id }

// Restaurateur runs restaurants and is a Societaire of the cooperative.
type Restaurateur struct {
	ID         ID               `json:"id" gorm:"primaryKey"`
	FirstName  *string          `json:"firstName,omitempty" gorm:"size:50;not null"`
	LastName   *string          `json:"lastName,omitempty" gorm:"size:50;not null"`
	Commande   *Ref[Commande]   `json:"commande,omitempty" gorm:"column:commande_id"`
	Societaire *Ref[Societaire] `json:"societaire,omitempty" gorm:"column:societaire_id"`
}

func (Restaurateur) TableName() string    { return "restaurateur" }
func (r *Restaurateur) Identity() ID      { return r.ID }
func (r *Restaurateur) SetIdentity(id ID) { r.ID = id }

// Societaire is a member of the cooperative.
type Societaire struct {
	ID        ID              `json:"id" gorm:"primaryKey"`
	FirstName *string         `json:"firstName,omitempty" gorm:"size:50;not null"`
	LastName  *string         `json:"lastName,omitempty" gorm:"size:50;not null"`
	Type      *SocietaireType `json:"type,omitempty" gorm:"column:type;size:16;not null"`
}

func (Societaire) TableName() string    { return "societaire" }
func (s *Societaire) Identity() ID      { return s.ID }
func (s *Societaire) SetIdentity(id ID) { s.ID = id }

// All returns a zero value of every entity, in dependency order, for
// migrations.
func All() []any {
	return []any{
		&Societaire{}, &Restaurateur{}, &Restaurant{}, &Panier{},
		&Paiement{}, &Commande{}, &Client{},
	}
}

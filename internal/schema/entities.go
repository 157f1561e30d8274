package schema

import (
	"github.com/diewo77/go-coopcycle/internal/models"
	"github.com/diewo77/go-coopcycle/validation"
)

const (
	emailPattern = `^[^@\s]+@[^@\s]+\.[^@\s]+$`
	phonePattern = `^(\+\d{1,3})?\s*(\(\d{1,3}\)|\d{1,3})\s*(\d{3})\s*(\d{2})\s*(\d{2})$`
)

func idField() Field {
	return Field{Name: "id", Column: "id", Kind: KindID, ReadOnly: true}
}

func text(name, column string, rules ...validation.Rule) Field {
	return Field{Name: name, Column: column, Kind: KindString, Rules: rules}
}

func person(name, column string) Field {
	return text(name, column, validation.Required, validation.Length(2, 50))
}

func number(name, column string, rules ...validation.Rule) Field {
	return Field{Name: name, Column: column, Kind: KindNumber, Rules: rules}
}

func enum(name, column string, choices []string) Field {
	return Field{
		Name: name, Column: column, Kind: KindEnum, Choices: choices,
		Rules: []validation.Rule{validation.Required, validation.OneOf(choices...)},
	}
}

func ref(name, target string, rules ...validation.Rule) Field {
	return Field{Name: name, Column: name + "_id", Kind: KindRef, Target: target, Rules: rules}
}

func dateTime(name, column string) Field {
	return Field{
		Name: name, Column: column, Kind: KindDateTime,
		Rules: []validation.Rule{
			validation.Required,
			validation.Func(func(s string) error {
				_, err := models.ParseDateTime(s)
				return err
			}),
		},
	}
}

var Client = &Schema{
	Entity:   "client",
	Resource: models.ClientResource,
	Fields: []Field{
		idField(),
		person("firstName", "first_name"),
		person("lastName", "last_name"),
		text("email", "email", validation.Required, validation.Pattern(emailPattern)),
		text("phone", "phone", validation.Required, validation.Pattern(phonePattern)),
		text("address", "address", validation.Required, validation.Length(5, 100)),
		ref("commande", models.CommandeResource),
	},
}

var Commande = &Schema{
	Entity:   "commande",
	Resource: models.CommandeResource,
	Fields: []Field{
		idField(),
		dateTime("dateTime", "date_time"),
		enum("status", "status", models.CommandeStatuses),
		ref("panier", models.PanierResource, validation.Required),
		ref("paiement", models.PaiementResource),
	},
}

var Paiement = &Schema{
	Entity:   "paiement",
	Resource: models.PaiementResource,
	Fields: []Field{
		idField(),
		number("amount", "amount", validation.Required, validation.Min(0)),
		enum("paymentType", "payment_type", models.PaymentTypes),
	},
}

var Panier = &Schema{
	Entity:   "panier",
	Resource: models.PanierResource,
	Fields: []Field{
		idField(),
		text("description", "description", validation.Length(5, 500)),
		number("price", "price", validation.Required, validation.Min(0)),
		ref("restaurant", models.RestaurantResource),
	},
}

var Restaurant = &Schema{
	Entity:   "restaurant",
	Resource: models.RestaurantResource,
	Fields: []Field{
		idField(),
		text("name", "name", validation.Required, validation.Length(2, 100)),
		text("address", "address", validation.Required, validation.Length(5, 100)),
		text("menu", "menu", validation.MaxLength(500)),
		ref("restaurateur", models.RestaurateurResource),
	},
}

var Restaurateur = &Schema{
	Entity:   "restaurateur",
	Resource: models.RestaurateurResource,
	Fields: []Field{
		idField(),
		person("firstName", "first_name"),
		person("lastName", "last_name"),
		ref("commande", models.CommandeResource),
		ref("societaire", models.SocietaireResource),
	},
}

var Societaire = &Schema{
	Entity:   "societaire",
	Resource: models.SocietaireResource,
	Fields: []Field{
		idField(),
		person("firstName", "first_name"),
		person("lastName", "last_name"),
		enum("type", "type", models.SocietaireTypes),
	},
}

// All lists every schema in resource order.
func All() []*Schema {
	return []*Schema{Client, Commande, Paiement, Panier, Restaurant, Restaurateur, Societaire}
}

// ByResource finds a schema by its plural resource name.
func ByResource(resource string) (*Schema, bool) {
	for _, s := range All() {
		if s.Resource == resource {
			return s, true
		}
	}
	return nil, false
}

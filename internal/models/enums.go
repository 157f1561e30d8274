package models

import "slices"

// CommandeStatus is the progress of an order.
type CommandeStatus string

const (
	CommandeEnCours CommandeStatus = "EN_COURS"
	CommandePrete   CommandeStatus = "PRETE"
	CommandeLivree  CommandeStatus = "LIVREE"
)

// CommandeStatuses lists the accepted status codes in display order.
var CommandeStatuses = []string{
	string(CommandeEnCours),
	string(CommandePrete),
	string(CommandeLivree),
}

func (s CommandeStatus) Valid() bool { return slices.Contains(CommandeStatuses, string(s)) }

// PaymentType is the means used to settle a Paiement.
type PaymentType string

const (
	PaymentCB          PaymentType = "CB"
	PaymentMastercard  PaymentType = "MASTERCARD"
	PaymentVisa        PaymentType = "VISA"
	PaymentPaypal      PaymentType = "PAYPAL"
	PaymentApplePay    PaymentType = "APPLE_PAY"
	PaymentGooglePay   PaymentType = "GOOGLE_PAY"
	PaymentChequeRepas PaymentType = "CHEQUE_REPAS"
	PaymentBitcoin     PaymentType = "BITCOIN"
	PaymentIzly        PaymentType = "IZLY"
)

var PaymentTypes = []string{
	string(PaymentCB),
	string(PaymentMastercard),
	string(PaymentVisa),
	string(PaymentPaypal),
	string(PaymentApplePay),
	string(PaymentGooglePay),
	string(PaymentChequeRepas),
	string(PaymentBitcoin),
	string(PaymentIzly),
}

func (p PaymentType) Valid() bool { return slices.Contains(PaymentTypes, string(p)) }

// SocietaireType is the role a cooperative member plays.
type SocietaireType string

const (
	SocietaireClient       SocietaireType = "CLIENT"
	SocietaireLivreur      SocietaireType = "LIVREUR"
	SocietaireRestaurateur SocietaireType = "RESTAURATEUR"
)

var SocietaireTypes = []string{
	string(SocietaireClient),
	string(SocietaireLivreur),
	string(SocietaireRestaurateur),
}

func (t SocietaireType) Valid() bool { return slices.Contains(SocietaireTypes, string(t)) }

package entity

import "time"

// Tipos de contraparte.
const (
	PartnerTypeSupplier = "supplier" // proveedor (recepciones)
	PartnerTypeCustomer = "customer" // cliente (entregas)
)

// Partner proveedor o cliente referenciado por recepciones y entregas.
type Partner struct {
	ID          string
	Type        string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidPartnerType indica si t es un tipo de contraparte conocido.
func ValidPartnerType(t string) bool {
	return t == PartnerTypeSupplier || t == PartnerTypeCustomer
}

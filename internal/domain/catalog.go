package domain

import "github.com/shopspring/decimal"

// ServiceCode identifies a service in the fixed catalog.
type ServiceCode string

const (
	ServiceCorte   ServiceCode = "corte"
	ServiceKids    ServiceCode = "kids"
	ServiceCombo   ServiceCode = "combo"
	ServiceDegrade ServiceCode = "degrade"
)

// ServiceCatalogEntry describes one bookable service. The catalog is static
// and loaded once at startup; appointments copy duration and price from it so
// later edits never affect existing bookings.
type ServiceCatalogEntry struct {
	Code            ServiceCode
	Name            string
	Description     string
	DurationMinutes int
	Price           decimal.Decimal
}

// ServiceCatalog is an immutable set of services keyed by code.
type ServiceCatalog struct {
	entries map[ServiceCode]ServiceCatalogEntry
	order   []ServiceCode
}

// NewServiceCatalog builds a catalog preserving the given order.
func NewServiceCatalog(entries ...ServiceCatalogEntry) *ServiceCatalog {
	c := &ServiceCatalog{entries: make(map[ServiceCode]ServiceCatalogEntry, len(entries))}
	for _, e := range entries {
		c.entries[e.Code] = e
		c.order = append(c.order, e.Code)
	}
	return c
}

// DefaultServiceCatalog returns the barbershop's service list.
func DefaultServiceCatalog() *ServiceCatalog {
	return NewServiceCatalog(
		ServiceCatalogEntry{
			Code:            ServiceCorte,
			Name:            "Corte Social",
			Description:     "Corte tradicional masculino",
			DurationMinutes: 30,
			Price:           decimal.NewFromFloat(45.00),
		},
		ServiceCatalogEntry{
			Code:            ServiceKids,
			Name:            "Corte Kids",
			Description:     "Corte especial para crianças",
			DurationMinutes: 25,
			Price:           decimal.NewFromFloat(35.00),
		},
		ServiceCatalogEntry{
			Code:            ServiceCombo,
			Name:            "Cabelo e Barba",
			Description:     "Corte completo com acabamento na barba",
			DurationMinutes: 50,
			Price:           decimal.NewFromFloat(70.00),
		},
		ServiceCatalogEntry{
			Code:            ServiceDegrade,
			Name:            "Degradê Giletado",
			Description:     "Técnica de degradê com gilete",
			DurationMinutes: 40,
			Price:           decimal.NewFromFloat(60.00),
		},
	)
}

// Get returns the entry for code, if present.
func (c *ServiceCatalog) Get(code ServiceCode) (ServiceCatalogEntry, bool) {
	e, ok := c.entries[code]
	return e, ok
}

// List returns all entries in catalog order.
func (c *ServiceCatalog) List() []ServiceCatalogEntry {
	out := make([]ServiceCatalogEntry, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.entries[code])
	}
	return out
}

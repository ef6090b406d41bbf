package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	Sizes        []string        `json:"sizes"`
	Customizable bool            `json:"customizable"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// HasSize reports whether size belongs to the product's size run.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

package seed

import (
	"context"
	"fmt"

	"fundraiser-store/internal/domain"
	"github.com/shopspring/decimal"
)

// SizeRun is the size list shared by every fundraiser garment.
var SizeRun = []string{"YS", "YM", "YL", "Small", "Medium", "Large", "X-Large", "XXL"}

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// Catalog returns the default fundraiser products.
func Catalog() []domain.Product {
	return []domain.Product{
		{
			ID:          "dcdc-hoodie",
			Name:        "DCDC Hoodie",
			Description: "White DCDC fundraiser sweatshirt",
			Price:       decimal.RequireFromString("36.00"),
			Image:       "/images/WhiteSweatshirtFront.png",
			Sizes:       append([]string(nil), SizeRun...),
		},
		{
			ID:          "dance-mom-white-sweatpants",
			Name:        "Dance Mom White Sweatpants",
			Description: "White \"Dance Mom\" sweatpants",
			Price:       decimal.RequireFromString("34.99"),
			Image:       "/images/DanceMomSweats.png",
			Sizes:       append([]string(nil), SizeRun...),
		},
		{
			ID:           "dcdc-jersey",
			Name:         "DCDC Jersey",
			Description:  "Team jersey printed with your dancer's name",
			Price:        decimal.RequireFromString("45.00"),
			Image:        "/images/DCDCJersey.png",
			Sizes:        append([]string(nil), SizeRun...),
			Customizable: true,
		},
	}
}

// Apply upserts the default catalog. It is idempotent.
func Apply(ctx context.Context, repo ProductWriter) error {
	for _, p := range Catalog() {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	return nil
}

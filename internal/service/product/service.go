package product

import (
	"context"
	"fmt"
	"strings"

	"fundraiser-store/internal/domain"
	productrepo "fundraiser-store/internal/repository/product"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Select runs a size selection for a product through a Selector and returns
// the resulting cart line.
func (s *Service) Select(ctx context.Context, productID string, quantities map[string]int, jerseyName string) (domain.CartLine, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return domain.CartLine{}, err
	}
	sel := NewSelector(*p)
	for size, qty := range quantities {
		if err := sel.Set(size, qty); err != nil {
			return domain.CartLine{}, err
		}
	}
	sel.SetJerseyName(jerseyName)
	return sel.Line()
}

// Selector is the per-product size picker: every size of the product starts
// at zero and quantities never drop below zero.
type Selector struct {
	product    domain.Product
	sizes      []domain.SizeQuantity
	jerseyName string
}

func NewSelector(p domain.Product) *Selector {
	sizes := make([]domain.SizeQuantity, len(p.Sizes))
	for i, size := range p.Sizes {
		sizes[i] = domain.SizeQuantity{Size: size}
	}
	return &Selector{product: p, sizes: sizes}
}

func (s *Selector) Increment(size string) error {
	i, err := s.index(size)
	if err != nil {
		return err
	}
	s.sizes[i].Quantity++
	return nil
}

func (s *Selector) Decrement(size string) error {
	i, err := s.index(size)
	if err != nil {
		return err
	}
	if s.sizes[i].Quantity > 0 {
		s.sizes[i].Quantity--
	}
	return nil
}

func (s *Selector) Set(size string, qty int) error {
	if qty < 0 {
		return domain.ErrInvalidQuantity
	}
	i, err := s.index(size)
	if err != nil {
		return err
	}
	s.sizes[i].Quantity = qty
	return nil
}

func (s *Selector) SetJerseyName(name string) {
	s.jerseyName = strings.TrimSpace(name)
}

// Reset puts every size back to zero.
func (s *Selector) Reset() {
	for i := range s.sizes {
		s.sizes[i].Quantity = 0
	}
	s.jerseyName = ""
}

func (s *Selector) Sizes() []domain.SizeQuantity {
	return append([]domain.SizeQuantity(nil), s.sizes...)
}

func (s *Selector) TotalItems() int {
	total := 0
	for _, sq := range s.sizes {
		total += sq.Quantity
	}
	return total
}

func (s *Selector) TotalPrice() decimal.Decimal {
	return s.product.Price.Mul(decimal.NewFromInt(int64(s.TotalItems())))
}

// Line builds the cart line from the sizes with a positive quantity, in the
// product's size order.
func (s *Selector) Line() (domain.CartLine, error) {
	selected := make([]domain.SizeQuantity, 0, len(s.sizes))
	for _, sq := range s.sizes {
		if sq.Quantity > 0 {
			selected = append(selected, sq)
		}
	}
	if len(selected) == 0 {
		return domain.CartLine{}, fmt.Errorf("%w: no sizes selected", domain.ErrInvalidSelection)
	}
	line := domain.CartLine{
		ProductID:   s.product.ID,
		ProductName: s.product.Name,
		Price:       s.product.Price,
		Sizes:       selected,
		Image:       s.product.Image,
	}
	if s.product.Customizable {
		if s.jerseyName == "" {
			return domain.CartLine{}, fmt.Errorf("%w: jersey name required", domain.ErrInvalidSelection)
		}
		line.JerseyName = s.jerseyName
	}
	return line, nil
}

func (s *Selector) index(size string) (int, error) {
	for i, sq := range s.sizes {
		if sq.Size == size {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: unknown size %q for %s", domain.ErrInvalidSelection, size, s.product.ID)
}

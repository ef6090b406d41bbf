package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"fundraiser-store/internal/domain"
	cartrepo "fundraiser-store/internal/repository/cart"
)

// Service is the cart store: every operation reads the whole cart for a
// session and writes the whole cart back in a single Put.
type Service struct {
	storage cartrepo.Storage
	logger  *log.Logger
}

func New(storage cartrepo.Storage, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{storage: storage, logger: logger}
}

// Load returns the persisted cart. A missing or unparsable cart is an empty
// cart; only storage transport errors are returned.
func (s *Service) Load(ctx context.Context, sessionID string) (domain.Cart, error) {
	data, err := s.storage.Get(ctx, cartrepo.Key(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Cart{Lines: []domain.CartLine{}}, nil
		}
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		s.logger.Printf("cart: session=%s unparsable cart discarded: %v", sessionID, err)
		return domain.Cart{Lines: []domain.CartLine{}}, nil
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return domain.Cart{Lines: lines}, nil
}

func (s *Service) AddLine(ctx context.Context, sessionID string, line domain.CartLine) (domain.Cart, error) {
	if err := line.Validate(); err != nil {
		return domain.Cart{}, err
	}
	if line.Selected().TotalQuantity() == 0 {
		return domain.Cart{}, fmt.Errorf("%w: no sizes selected", domain.ErrInvalidSelection)
	}
	current, err := s.Load(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	next := current.Add(line)
	if err := s.save(ctx, sessionID, next); err != nil {
		return domain.Cart{}, err
	}
	return next, nil
}

func (s *Service) RemoveLine(ctx context.Context, sessionID, productID, jerseyName string) (domain.Cart, error) {
	current, err := s.Load(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	next := current.Remove(domain.LineKey{ProductID: productID, JerseyName: jerseyName})
	if err := s.save(ctx, sessionID, next); err != nil {
		return domain.Cart{}, err
	}
	return next, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.storage.Delete(ctx, cartrepo.Key(sessionID)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *Service) save(ctx context.Context, sessionID string, cart domain.Cart) error {
	data, err := json.Marshal(cart.Persistable().Lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Put(ctx, cartrepo.Key(sessionID), data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type SizeQuantity struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type CartLine struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Sizes       []SizeQuantity  `json:"sizes"`
	Image       string          `json:"image"`
	JerseyName  string          `json:"jerseyName,omitempty"`
}

// LineKey identifies a cart line. Lines of the same product with different
// jersey names are distinct.
type LineKey struct {
	ProductID  string
	JerseyName string
}

func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.ProductID, JerseyName: l.JerseyName}
}

func (l CartLine) TotalQuantity() int {
	total := 0
	for _, s := range l.Sizes {
		total += s.Quantity
	}
	return total
}

// ItemTotal is price times the summed quantity of every size.
func (l CartLine) ItemTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.TotalQuantity())))
}

// Validate rejects negative quantities and lines without a product id.
func (l CartLine) Validate() error {
	if strings.TrimSpace(l.ProductID) == "" {
		return ErrInvalidSelection
	}
	for _, s := range l.Sizes {
		if s.Quantity < 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// Selected returns a copy holding only sizes with a positive quantity.
// Repeated size strings are folded into the first occurrence.
func (l CartLine) Selected() CartLine {
	out := l
	out.Sizes = make([]SizeQuantity, 0, len(l.Sizes))
	for _, s := range l.Sizes {
		if s.Quantity <= 0 {
			continue
		}
		out.Sizes = mergeSize(out.Sizes, s)
	}
	return out
}

func (l CartLine) clone() CartLine {
	out := l
	out.Sizes = append([]SizeQuantity(nil), l.Sizes...)
	return out
}

func mergeSize(sizes []SizeQuantity, add SizeQuantity) []SizeQuantity {
	for i := range sizes {
		if sizes[i].Size == add.Size {
			sizes[i].Quantity += add.Quantity
			return sizes
		}
	}
	return append(sizes, add)
}

// Cart is the ordered list of lines persisted for one cart session.
type Cart struct {
	Lines []CartLine `json:"items"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) TotalItems() int {
	total := 0
	for _, l := range c.Lines {
		total += l.TotalQuantity()
	}
	return total
}

func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.ItemTotal())
	}
	return total
}

// Find returns the index of the line with the given key.
func (c Cart) Find(key LineKey) (int, bool) {
	for i, l := range c.Lines {
		if l.Key() == key {
			return i, true
		}
	}
	return -1, false
}

// Add merges line into the cart and returns the resulting cart; c is not
// modified. Quantities of matching sizes are summed, unmatched sizes are
// appended to the existing line, and an unknown key appends a new line.
// Only sizes with a positive quantity are kept.
func (c Cart) Add(line CartLine) Cart {
	line = line.Selected()
	out := c.clone()
	if len(line.Sizes) == 0 {
		return out
	}
	idx, ok := out.Find(line.Key())
	if !ok {
		out.Lines = append(out.Lines, line)
		return out
	}
	existing := out.Lines[idx]
	for _, s := range line.Sizes {
		existing.Sizes = mergeSize(existing.Sizes, s)
	}
	out.Lines[idx] = existing
	return out
}

// Remove drops exactly the line matching key.
func (c Cart) Remove(key LineKey) Cart {
	out := Cart{Lines: make([]CartLine, 0, len(c.Lines))}
	for _, l := range c.Lines {
		if l.Key() == key {
			continue
		}
		out.Lines = append(out.Lines, l.clone())
	}
	return out
}

// Persistable drops lines whose quantities are all zero.
func (c Cart) Persistable() Cart {
	out := Cart{Lines: make([]CartLine, 0, len(c.Lines))}
	for _, l := range c.Lines {
		if l.TotalQuantity() > 0 {
			out.Lines = append(out.Lines, l.clone())
		}
	}
	return out
}

func (c Cart) clone() Cart {
	out := Cart{Lines: make([]CartLine, 0, len(c.Lines)+1)}
	for _, l := range c.Lines {
		out.Lines = append(out.Lines, l.clone())
	}
	return out
}

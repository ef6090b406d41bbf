package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fundraiser-store/internal/domain"
	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads a catalog CSV and inserts/updates products.
//
// Expected headers: id,name,description,price,image,sizes,customizable.
// Sizes are separated by "|" in their display order.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		if blank(record) {
			continue
		}

		p, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		if _, err := i.productRepo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.ID, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	p := domain.Product{
		ID:          pick(record, index, "id"),
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Image:       pick(record, index, "image"),
	}
	if p.ID == "" || p.Name == "" {
		return domain.Product{}, fmt.Errorf("missing id or name")
	}

	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid price for %q: %w", p.ID, err)
	}
	if !price.IsPositive() {
		return domain.Product{}, fmt.Errorf("price for %q must be positive", p.ID)
	}
	p.Price = price.Round(2)

	for _, size := range strings.Split(pick(record, index, "sizes"), "|") {
		if size = strings.TrimSpace(size); size != "" {
			p.Sizes = append(p.Sizes, size)
		}
	}
	if len(p.Sizes) == 0 {
		return domain.Product{}, fmt.Errorf("product %q has no sizes", p.ID)
	}

	if raw := pick(record, index, "customizable"); raw != "" {
		p.Customizable, err = strconv.ParseBool(raw)
		if err != nil {
			return domain.Product{}, fmt.Errorf("invalid customizable flag for %q: %w", p.ID, err)
		}
	}
	return p, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

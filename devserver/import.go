package devserver

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ImportSummary reports a product import run in the shape the crud layer
// decodes: rows stored, rows failed, and the per-row errors.
type ImportSummary struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// importProducts reads a CSV with a header row and upserts products. sku is
// the match key. With updateExisting false, rows for known SKUs are failures;
// with skipErrors false, the first bad row aborts the run.
func (s *Server) importProducts(r io.Reader, updateExisting, skipErrors bool) (*ImportSummary, error) {
	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[strings.TrimSpace(h)] = i
	}
	if _, ok := colIndex["sku"]; !ok {
		return nil, fmt.Errorf("CSV must contain a 'sku' column")
	}

	field := func(row []string, name string) string {
		i, ok := colIndex[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	summary := &ImportSummary{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			if skipErrors {
				summary.Failed++
				summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: %v", line, err))
				continue
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rowErr := s.importRow(field, row, updateExisting)
		if rowErr != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: %v", line, rowErr))
			if !skipErrors {
				return nil, fmt.Errorf("line %d: %w", line, rowErr)
			}
			continue
		}
		summary.Success++
	}
	return summary, nil
}

func (s *Server) importRow(field func([]string, string) string, row []string, updateExisting bool) error {
	sku := field(row, "sku")
	if sku == "" {
		return fmt.Errorf("missing sku")
	}

	var product Product
	exists := s.db.Where("sku = ?", sku).First(&product).Error == nil
	if exists && !updateExisting {
		return fmt.Errorf("sku %s already exists", sku)
	}

	if name := field(row, "name"); name != "" {
		product.Name = name
	}
	if product.Name == "" {
		return fmt.Errorf("missing name for sku %s", sku)
	}
	product.SKU = sku
	if slug := field(row, "slug"); slug != "" {
		product.Slug = slug
	} else if product.Slug == "" {
		product.Slug = slugify(product.Name)
	}
	if v := field(row, "price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			return fmt.Errorf("invalid price %q", v)
		}
		product.Price = price
	}
	if v := field(row, "stock_quantity"); v != "" {
		qty, err := strconv.Atoi(v)
		if err != nil || qty < 0 {
			return fmt.Errorf("invalid stock_quantity %q", v)
		}
		product.StockQuantity = qty
	}
	if v := field(row, "unit"); v != "" {
		product.Unit = v
	}
	if v := field(row, "brand"); v != "" {
		product.Brand = v
	}
	if v := field(row, "category"); v != "" {
		var category Category
		if err := s.db.Where("slug = ?", v).First(&category).Error; err == nil {
			product.CategoryID = category.ID
		}
	}
	if !exists {
		product.Active = true
	}

	if exists {
		return s.db.Save(&product).Error
	}
	return s.db.Create(&product).Error
}

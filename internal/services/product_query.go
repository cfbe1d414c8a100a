package services

import (
	"math"
	"strconv"
	"strings"

	"catalog/internal/models"
	"catalog/internal/validation"
)

// PageLimits bounds the page size of list queries.
type PageLimits struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPageLimits returns limit=10 with a cap of 100.
func DefaultPageLimits() PageLimits {
	return PageLimits{DefaultLimit: 10, MaxLimit: 100}
}

// BuildProductQuery parses raw list parameters.
// Unparseable or non-positive page/limit fall back to their defaults; limit is clamped
// to MaxLimit. Unparseable prices are reported as validation errors.
func BuildProductQuery(params models.ProductQueryParams, limits PageLimits) (models.ProductQuery, error) {
	q := models.ProductQuery{
		Category: strings.TrimSpace(params.Category),
		Name:     strings.TrimSpace(params.Name),
		Page:     positiveInt(params.Page, 1),
		Limit:    positiveInt(params.Limit, limits.DefaultLimit),
	}
	if limits.MaxLimit > 0 && q.Limit > limits.MaxLimit {
		q.Limit = limits.MaxLimit
	}

	verr := &validation.Errors{}
	q.MinPrice = parsePrice(params.MinPrice, "minPrice", verr)
	q.MaxPrice = parsePrice(params.MaxPrice, "maxPrice", verr)
	if len(verr.Fields) > 0 {
		return models.ProductQuery{}, verr
	}
	return q, nil
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func parsePrice(raw, field string, verr *validation.Errors) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		verr.Add(field, field+" must be a number")
		return nil
	}
	return &f
}

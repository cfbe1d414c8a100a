package models

import (
	"math"
	"strings"
)

// ProductQueryParams holds the raw list parameters as received over HTTP.
type ProductQueryParams struct {
	Category string
	MinPrice string
	MaxPrice string
	Name     string
	Page     string
	Limit    string
}

// ProductQuery is a parsed list query. Only active products are ever matched.
type ProductQuery struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Name     string
	Page     int
	Limit    int
}

// Skip returns the number of records preceding the requested page.
func (q ProductQuery) Skip() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Matches reports whether p satisfies the query filter.
func (q ProductQuery) Matches(p Product) bool {
	if !p.Active {
		return false
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	if q.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Name)) {
		return false
	}
	return true
}

// ProductPage is one page of a list query.
type ProductPage struct {
	Products []Product
	Total    int64
	Page     int
	Limit    int
}

// Pages is ceil(Total/Limit).
func (p ProductPage) Pages() int {
	if p.Limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(p.Total) / float64(p.Limit)))
}

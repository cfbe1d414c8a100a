package models

import (
	"strings"
	"time"
)

// Product categories accepted by the catalog.
const (
	CategoryElectronics = "electronics"
	CategoryClothing    = "clothing"
	CategoryHome        = "home"
	CategorySports      = "sports"
	CategoryBooks       = "books"
	CategoryOther       = "other"
)

// Categories lists every valid category in display order.
var Categories = []string{
	CategoryElectronics,
	CategoryClothing,
	CategoryHome,
	CategorySports,
	CategoryBooks,
	CategoryOther,
}

// Product represents a product in the catalog.
// Active=false marks a soft-deleted product.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null;index"`
	Description string    `json:"description" gorm:"type:varchar(500);not null"`
	Price       float64   `json:"price" gorm:"not null;index"`
	Category    string    `json:"category" gorm:"type:varchar(20);not null;index"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	Image       string    `json:"image" gorm:"type:text;not null;default:''"`
	Active      bool      `json:"active" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateProductRequest is the payload accepted when creating a product.
// Pointer fields distinguish "missing" from zero values.
type CreateProductRequest struct {
	Name        *string  `json:"name" validate:"required,notblank,max=100"`
	Description *string  `json:"description" validate:"required,notblank,max=500"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    *string  `json:"category" validate:"required,oneof=electronics clothing home sports books other"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Image       *string  `json:"image"`
}

// Normalize trims the text fields the same way the store would.
func (r *CreateProductRequest) Normalize() {
	trimPtr(r.Name)
	trimPtr(r.Description)
}

// Product builds a new active product from the request, applying defaults.
func (r CreateProductRequest) Product() *Product {
	p := &Product{Active: true}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	if r.Image != nil {
		p.Image = *r.Image
	}
	return p
}

// UpdateProductRequest is a partial update; nil fields are left untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,notblank,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,notblank,max=500"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,oneof=electronics clothing home sports books other"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Image       *string  `json:"image,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// Normalize trims the text fields the same way the store would.
func (r *UpdateProductRequest) Normalize() {
	trimPtr(r.Name)
	trimPtr(r.Description)
}

// IsEmpty reports whether the request carries no field at all.
func (r UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Price == nil && r.Category == nil &&
		r.Stock == nil && r.Image == nil && r.Active == nil
}

// Fields returns the provided fields keyed by their storage name.
func (r UpdateProductRequest) Fields() map[string]any {
	fields := make(map[string]any)
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Price != nil {
		fields["price"] = *r.Price
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.Stock != nil {
		fields["stock"] = *r.Stock
	}
	if r.Image != nil {
		fields["image"] = *r.Image
	}
	if r.Active != nil {
		fields["active"] = *r.Active
	}
	return fields
}

// Apply copies the provided fields onto p.
func (r UpdateProductRequest) Apply(p *Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	if r.Image != nil {
		p.Image = *r.Image
	}
	if r.Active != nil {
		p.Active = *r.Active
	}
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

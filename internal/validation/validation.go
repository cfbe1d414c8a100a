// Package validation holds the product field rules shared by the API and its clients.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"catalog/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FieldError is a validation failure on a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects field failures. A nil *Errors means the input is valid.
type Errors struct {
	Fields []FieldError
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a failure for field.
func (e *Errors) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Has reports whether field has at least one failure.
func (e *Errors) Has(field string) bool {
	if e == nil {
		return false
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Messages maps each failed field to its first message.
func (e *Errors) Messages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := out[f.Field]; !ok {
			out[f.Field] = f.Message
		}
	}
	return out
}

// AsErrors unwraps err into *Errors if it is one.
func AsErrors(err error) (*Errors, bool) {
	var verr *Errors
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

var messages = map[string]map[string]string{
	"name": {
		"required": "Product name is required",
		"notblank": "Product name is required",
		"max":      "Name cannot exceed 100 characters",
	},
	"description": {
		"required": "Description is required",
		"notblank": "Description is required",
		"max":      "Description cannot exceed 500 characters",
	},
	"price": {
		"required": "Price is required",
		"gte":      "Price cannot be negative",
	},
	"category": {
		"required": "Category is required",
		"oneof":    "Invalid category",
	},
	"stock": {
		"required": "Stock is required",
		"gte":      "Stock cannot be negative",
	},
}

// Validator checks product requests against the catalog rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("validation: failed to register notblank: %v", err))
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateCreate normalizes and validates a create request.
func (v *Validator) ValidateCreate(req *models.CreateProductRequest) *Errors {
	req.Normalize()
	return v.check(req)
}

// ValidateUpdate normalizes and validates the fields present in an update request.
func (v *Validator) ValidateUpdate(req *models.UpdateProductRequest) *Errors {
	req.Normalize()
	return v.check(req)
}

func (v *Validator) check(s any) *Errors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &Errors{Fields: []FieldError{{Field: "", Message: err.Error()}}}
	}
	out := &Errors{}
	for _, e := range validationErrors {
		out.Add(e.Field(), message(e.Field(), e.Tag()))
	}
	return out
}

func message(field, tag string) string {
	if byTag, ok := messages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", field, tag)
}

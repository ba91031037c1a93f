package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProductID = errors.New("invalid product id")
)

const (
	MaxNameLength        = 120
	MaxDescriptionLength = 2000
	MaxCategoryLength    = 120

	DefaultCurrency = "USD"
)

// ValidationError reports a single field constraint violation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name"        json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price"       json:"price"`
	Currency    string             `bson:"currency"    json:"currency"`
	InStock     bool               `bson:"inStock"     json:"inStock"`
	Quantity    int                `bson:"quantity"    json:"quantity"`
	Category    string             `bson:"category"    json:"category"`
	Images      []string           `bson:"images"      json:"images"`
	CreatedAt   time.Time          `bson:"createdAt"   json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"   json:"updatedAt"`
}

// ProductInput carries the mutable fields of a write payload. Pointer
// fields distinguish "absent" from "zero value", so the same type serves
// create, full update and partial update.
type ProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Currency    *string  `json:"currency"`
	InStock     *bool    `json:"inStock"`
	Quantity    *int     `json:"quantity"`
	Category    *string  `json:"category"`
	Images      []string `json:"images"`
}

// Normalize trims text fields and uppercases the currency code in place.
func (in *ProductInput) Normalize() {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(in.Name)
	trim(in.Description)
	trim(in.Category)
	if in.Currency != nil {
		*in.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
}

// RequireCore enforces the fields every create and full update must carry.
func (in *ProductInput) RequireCore() error {
	if in.Name == nil {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if in.Price == nil {
		return &ValidationError{Field: "price", Reason: "is required"}
	}
	return nil
}

// Validate checks every supplied field against the schema constraints.
// Absent fields pass; call RequireCore first where presence matters.
func (in *ProductInput) Validate() error {
	if in.Name != nil {
		if *in.Name == "" {
			return &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		if len(*in.Name) > MaxNameLength {
			return &ValidationError{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", MaxNameLength)}
		}
	}
	if in.Description != nil && len(*in.Description) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("must be at most %d characters", MaxDescriptionLength)}
	}
	if in.Price != nil && *in.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if in.Category != nil && len(*in.Category) > MaxCategoryLength {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("must be at most %d characters", MaxCategoryLength)}
	}
	return nil
}

// NewProduct materializes a validated input into a full record, applying
// schema defaults for absent fields. Both timestamps start equal.
func (in *ProductInput) NewProduct(now time.Time) *Product {
	p := &Product{
		Name:      *in.Name,
		Price:     *in.Price,
		Currency:  DefaultCurrency,
		InStock:   true,
		Images:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Currency != nil && *in.Currency != "" {
		p.Currency = *in.Currency
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	return p
}

// ParseID is the single predicate deciding whether a path segment is a
// well-formed product identifier for the current storage backend.
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidProductID
	}
	return id, nil
}

// ListFilter narrows and orders a product listing. Search is matched as a
// case-insensitive substring of name or category.
type ListFilter struct {
	Search    string
	SortField string
	SortDesc  bool
	Skip      int64
	Limit     int64
}

// ProductRepository is the storage contract for products.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	Find(ctx context.Context, filter ListFilter) ([]Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, in *ProductInput) (*Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Product, error)
}

package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

func TestProductInput_Normalize(t *testing.T) {
	in := &ProductInput{
		Name:     strPtr("  Red Shoe  "),
		Currency: strPtr(" usd "),
		Category: strPtr(" footwear "),
	}

	in.Normalize()

	assert.Equal(t, "Red Shoe", *in.Name)
	assert.Equal(t, "USD", *in.Currency)
	assert.Equal(t, "footwear", *in.Category)
}

func TestProductInput_RequireCore(t *testing.T) {
	tests := []struct {
		name  string
		in    ProductInput
		field string
	}{
		{"missing name", ProductInput{Price: floatPtr(10)}, "name"},
		{"missing price", ProductInput{Name: strPtr("Red Shoe")}, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.RequireCore()
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	valid := ProductInput{Name: strPtr("Red Shoe"), Price: floatPtr(0)}
	assert.NoError(t, valid.RequireCore())
}

func TestProductInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      ProductInput
		wantErr bool
	}{
		{"valid minimal", ProductInput{Name: strPtr("Red Shoe"), Price: floatPtr(59.9)}, false},
		{"zero price is fine", ProductInput{Name: strPtr("Freebie"), Price: floatPtr(0)}, false},
		{"empty name", ProductInput{Name: strPtr("")}, true},
		{"oversize name", ProductInput{Name: strPtr(strings.Repeat("x", MaxNameLength+1))}, true},
		{"oversize description", ProductInput{Description: strPtr(strings.Repeat("x", MaxDescriptionLength+1))}, true},
		{"negative price", ProductInput{Price: floatPtr(-0.01)}, true},
		{"negative quantity", ProductInput{Quantity: intPtr(-1)}, true},
		{"oversize category", ProductInput{Category: strPtr(strings.Repeat("x", MaxCategoryLength+1))}, true},
		{"absent fields pass", ProductInput{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductInput_NewProduct_Defaults(t *testing.T) {
	now := time.Now().UTC()
	in := &ProductInput{Name: strPtr("Red Shoe"), Price: floatPtr(59.9)}

	p := in.NewProduct(now)

	assert.Equal(t, "Red Shoe", p.Name)
	assert.Equal(t, 59.9, p.Price)
	assert.Equal(t, DefaultCurrency, p.Currency)
	assert.True(t, p.InStock)
	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, "", p.Description)
	assert.Equal(t, "", p.Category)
	assert.NotNil(t, p.Images)
	assert.Empty(t, p.Images)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestProductInput_NewProduct_Overrides(t *testing.T) {
	now := time.Now().UTC()
	in := &ProductInput{
		Name:        strPtr("Blue Hat"),
		Description: strPtr("A hat"),
		Price:       floatPtr(12.5),
		Currency:    strPtr("EUR"),
		InStock:     boolPtr(false),
		Quantity:    intPtr(3),
		Category:    strPtr("headwear"),
		Images:      []string{"https://example.com/hat.png"},
	}

	p := in.NewProduct(now)

	assert.Equal(t, "EUR", p.Currency)
	assert.False(t, p.InStock)
	assert.Equal(t, 3, p.Quantity)
	assert.Equal(t, "headwear", p.Category)
	assert.Equal(t, []string{"https://example.com/hat.png"}, p.Images)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("507f1f77bcf86cd799439011")
	assert.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", id.Hex())

	for _, bad := range []string{"", "123", "not-a-hex-identifier-----", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidProductID, "input %q", bad)
	}
}

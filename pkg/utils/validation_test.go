package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name    string          `json:"name" validate:"required,min=2"`
	Price   decimal.Decimal `json:"price" validate:"gt=0"`
	Percent decimal.Decimal `json:"percent" validate:"gte=0,lte=100"`
	Method  string          `json:"method" validate:"required,oneof=pix card cash"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := sampleRequest{Name: "Ana", Price: decimal.RequireFromString("50.00"), Percent: decimal.NewFromInt(10), Method: "pix"}
		assert.Empty(t, ValidateStruct(req))
	})

	t.Run("reports json field names", func(t *testing.T) {
		req := sampleRequest{Name: "A", Price: decimal.Zero, Percent: decimal.NewFromInt(101), Method: "cheque"}
		errs := ValidateStruct(req)

		assert.Equal(t, "Minimum length is 2", errs["name"])
		assert.Equal(t, "Must be greater than 0", errs["price"])
		assert.Equal(t, "Must be at most 100", errs["percent"])
		assert.Equal(t, "Must be one of: pix, card, cash", errs["method"])
	})

	t.Run("formatted errors are stable", func(t *testing.T) {
		msg := FormatValidationErrors(map[string]string{"b": "two", "a": "one"})
		assert.Equal(t, "a: one; b: two", msg)
	})
}

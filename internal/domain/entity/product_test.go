package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

func TestProduct_IsLowStock(t *testing.T) {
	p := &entity.Product{MinimumStock: 5}

	p.StockQuantity = 6
	assert.False(t, p.IsLowStock())

	// El umbral es inclusivo: stock == mínimo es stock bajo.
	p.StockQuantity = 5
	assert.True(t, p.IsLowStock())

	p.StockQuantity = 0
	assert.True(t, p.IsLowStock())
}

func TestValidMovementType(t *testing.T) {
	for _, typ := range []string{
		entity.MovementTypePurchase,
		entity.MovementTypeSale,
		entity.MovementTypeAdjustment,
		entity.MovementTypeReturn,
	} {
		assert.True(t, entity.ValidMovementType(typ), typ)
	}
	assert.False(t, entity.ValidMovementType("transfer"))
	assert.False(t, entity.ValidMovementType(""))
	assert.False(t, entity.ValidMovementType("PURCHASE"), "los tipos son case-sensitive")
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{
		entity.PaymentCash, entity.PaymentCard, entity.PaymentTransfer, entity.PaymentMixed,
	} {
		assert.True(t, entity.ValidPaymentMethod(m), m)
	}
	assert.False(t, entity.ValidPaymentMethod("crypto"))
}

func TestSaleItem_LineTotal(t *testing.T) {
	item := &entity.SaleItem{
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("2500"),
		Discount:  decimal.RequireFromString("500"),
	}
	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("7000")),
		"3*2500 - 500 = 7000")
}

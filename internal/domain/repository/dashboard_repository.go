package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// RecentSaleResult es una venta reciente expandida con el nombre del cajero.
type RecentSaleResult struct {
	Sale        entity.Sale
	CashierName string
}

// DashboardRepository consultas de solo lectura para las estadísticas del
// dashboard. Lecturas read-committed: los números son estimaciones
// puntuales, no cargan invariantes.
type DashboardRepository interface {
	// GetRevenue devuelve ingresos (suma de final_amount) y número de
	// transacciones del rango. Cero cuando no hay filas, nunca null.
	GetRevenue(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error)
	CountLowStock(ctx context.Context) (int, error)
	CountActiveProducts(ctx context.Context) (int, error)
	GetRecentSales(ctx context.Context, limit int) ([]RecentSaleResult, error)
}

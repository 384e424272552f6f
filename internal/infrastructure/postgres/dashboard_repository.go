package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para las estadísticas del dashboard.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador de analítica del dashboard.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// GetRevenue suma final_amount y cuenta ventas dentro del rango [start, end].
// COALESCE garantiza cero (no NULL) cuando el rango no tiene ventas.
func (r *DashboardRepo) GetRevenue(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	const query = `
		SELECT COALESCE(SUM(final_amount), 0), COUNT(*)
		FROM sales
		WHERE created_at >= $1 AND created_at <= $2`

	var revenue decimal.Decimal
	var count int
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&revenue, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("dashboard.GetRevenue: %w", err)
	}
	return revenue, count, nil
}

// CountLowStock cuenta productos activos en o por debajo de su stock mínimo.
func (r *DashboardRepo) CountLowStock(ctx context.Context) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM products
		WHERE is_active = true AND stock_quantity <= minimum_stock`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("dashboard.CountLowStock: %w", err)
	}
	return count, nil
}

// CountActiveProducts cuenta los productos activos del catálogo.
func (r *DashboardRepo) CountActiveProducts(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE is_active = true`,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("dashboard.CountActiveProducts: %w", err)
	}
	return count, nil
}

// GetRecentSales devuelve las últimas ventas con el nombre del cajero resuelto.
func (r *DashboardRepo) GetRecentSales(ctx context.Context, limit int) ([]repository.RecentSaleResult, error) {
	const query = `
		SELECT s.id, s.sale_id, s.cashier_id, s.total_amount, s.discount_amount,
		       s.tax_amount, s.final_amount, s.payment_method, s.customer_name,
		       s.customer_phone, s.notes, s.created_at,
		       COALESCE(u.full_name, '')
		FROM sales s
		LEFT JOIN users u ON u.id = s.cashier_id
		ORDER BY s.created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetRecentSales: %w", err)
	}
	defer rows.Close()

	var results []repository.RecentSaleResult
	for rows.Next() {
		var row repository.RecentSaleResult
		if err := rows.Scan(
			&row.Sale.ID, &row.Sale.SaleID, &row.Sale.CashierID,
			&row.Sale.TotalAmount, &row.Sale.DiscountAmount, &row.Sale.TaxAmount,
			&row.Sale.FinalAmount, &row.Sale.PaymentMethod, &row.Sale.CustomerName,
			&row.Sale.CustomerPhone, &row.Sale.Notes, &row.Sale.CreatedAt,
			&row.CashierName,
		); err != nil {
			return nil, fmt.Errorf("dashboard.GetRecentSales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

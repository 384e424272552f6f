package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// fakeDashboardRepo devuelve valores fijos por rango; la clave de rango
// es la duración start→end redondeada a días.
type fakeDashboardRepo struct {
	revenueByDays map[int]decimal.Decimal
	countByDays   map[int]int
	lowStock      int
	totalProducts int
	recent        []repository.RecentSaleResult
	err           error
}

func rangeDays(start, end time.Time) int {
	return int(end.Sub(start).Round(24*time.Hour) / (24 * time.Hour))
}

func (r *fakeDashboardRepo) GetRevenue(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	if r.err != nil {
		return decimal.Zero, 0, r.err
	}
	days := rangeDays(start, end)
	rev, ok := r.revenueByDays[days]
	if !ok {
		rev = decimal.Zero
	}
	return rev, r.countByDays[days], nil
}

func (r *fakeDashboardRepo) CountLowStock(ctx context.Context) (int, error) {
	return r.lowStock, r.err
}

func (r *fakeDashboardRepo) CountActiveProducts(ctx context.Context) (int, error) {
	return r.totalProducts, r.err
}

func (r *fakeDashboardRepo) GetRecentSales(ctx context.Context, limit int) ([]repository.RecentSaleResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.recent) > limit {
		return r.recent[:limit], nil
	}
	return r.recent, nil
}

func TestGetStats_AgregadosPorRango(t *testing.T) {
	repo := &fakeDashboardRepo{
		revenueByDays: map[int]decimal.Decimal{
			1:  decimal.RequireFromString("1500.505"), // hoy
			8:  decimal.RequireFromString("9000"),     // 7 días + hoy
			31: decimal.RequireFromString("30000"),    // 30 días + hoy
		},
		countByDays:   map[int]int{1: 3, 8: 20, 31: 80},
		lowStock:      4,
		totalProducts: 42,
		recent: []repository.RecentSaleResult{
			{Sale: entity.Sale{ID: "s1", SaleID: "SALE-AAA111BBB222"}, CashierName: "Cajero Uno"},
		},
	}
	uc := analytics.NewDashboardUseCase(repo, time.UTC)

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.TodayRevenue.Equal(decimal.RequireFromString("1500.51")),
		"los ingresos se redondean a 2 decimales: %s", stats.TodayRevenue)
	assert.Equal(t, 3, stats.TodayTransactions)
	assert.True(t, stats.WeekRevenue.Equal(decimal.RequireFromString("9000")))
	assert.True(t, stats.MonthRevenue.Equal(decimal.RequireFromString("30000")))
	assert.Equal(t, 4, stats.LowStockCount)
	assert.Equal(t, 42, stats.TotalProducts)
	require.Len(t, stats.RecentSales, 1)
	assert.Equal(t, "Cajero Uno", stats.RecentSales[0].CashierName)
}

func TestGetStats_SinDatosTodoEnCero(t *testing.T) {
	repo := &fakeDashboardRepo{
		revenueByDays: map[int]decimal.Decimal{},
		countByDays:   map[int]int{},
	}
	uc := analytics.NewDashboardUseCase(repo, time.UTC)

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.TodayRevenue.IsZero(), "sin ventas los ingresos son cero, no null")
	assert.Zero(t, stats.TodayTransactions)
	assert.True(t, stats.WeekRevenue.IsZero())
	assert.True(t, stats.MonthRevenue.IsZero())
	assert.Zero(t, stats.LowStockCount)
	assert.Zero(t, stats.TotalProducts)
	assert.NotNil(t, stats.RecentSales, "la lista vacía se serializa como [], no null")
	assert.Empty(t, stats.RecentSales)
}

func TestGetStats_ErrorDeRepositorio(t *testing.T) {
	repo := &fakeDashboardRepo{err: errors.New("db caída")}
	uc := analytics.NewDashboardUseCase(repo, time.UTC)

	_, err := uc.GetStats(context.Background())
	assert.Error(t, err)
}

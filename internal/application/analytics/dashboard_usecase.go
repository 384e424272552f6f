// Package analytics contiene los casos de uso de reportes del POS y el
// dashboard de la tienda.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

const dashboardRecentSales = 5 // ventas recientes en el widget del dashboard

// DashboardUseCase computa las estadísticas del dashboard: ingresos de
// hoy / 7 días / 30 días, conteos de stock bajo y productos activos, y
// las cinco ventas más recientes.
//
// Solo lectura; no muta nada. "Hoy" se interpreta en la zona horaria
// configurada, fijada una vez al arranque para que el corte de día no
// sea ambiguo.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
	loc           *time.Location
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{dashboardRepo: dashboardRepo, loc: loc}
}

// GetStats construye el DashboardStatsResponse al momento de la petición.
//
// Las consultas de ingresos, conteos y ventas recientes se lanzan en
// paralelo. Todos los agregados son cero cuando no hay filas.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := time.Now().In(uc.loc)

	// ── Rangos de fecha ───────────────────────────────────────────────────────
	// Hoy: 00:00:00.000 – 23:59:59.999 en la zona configurada.
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Semana: 7 días hacia atrás incluyendo hoy; mes: 30 días.
	weekStart := todayStart.AddDate(0, 0, -7)
	monthStart := todayStart.AddDate(0, 0, -30)

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type revenueResult struct {
		revenue decimal.Decimal
		count   int
		err     error
	}
	type countResult struct {
		n   int
		err error
	}
	type recentResult struct {
		sales []repository.RecentSaleResult
		err   error
	}

	todayCh := make(chan revenueResult, 1)
	weekCh := make(chan revenueResult, 1)
	monthCh := make(chan revenueResult, 1)
	lowStockCh := make(chan countResult, 1)
	productsCh := make(chan countResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		rev, count, err := uc.dashboardRepo.GetRevenue(ctx, todayStart, todayEnd)
		todayCh <- revenueResult{rev, count, err}
	}()
	go func() {
		rev, count, err := uc.dashboardRepo.GetRevenue(ctx, weekStart, todayEnd)
		weekCh <- revenueResult{rev, count, err}
	}()
	go func() {
		rev, count, err := uc.dashboardRepo.GetRevenue(ctx, monthStart, todayEnd)
		monthCh <- revenueResult{rev, count, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountLowStock(ctx)
		lowStockCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountActiveProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		sales, err := uc.dashboardRepo.GetRecentSales(ctx, dashboardRecentSales)
		recentCh <- recentResult{sales, err}
	}()

	today := <-todayCh
	week := <-weekCh
	month := <-monthCh
	lowStock := <-lowStockCh
	products := <-productsCh
	recent := <-recentCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos de hoy: %w", today.err)
	}
	if week.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos de la semana: %w", week.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos del mes: %w", month.err)
	}
	if lowStock.err != nil {
		return nil, fmt.Errorf("dashboard: conteo stock bajo: %w", lowStock.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: conteo productos: %w", products.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: ventas recientes: %w", recent.err)
	}

	// ── Construir respuesta ───────────────────────────────────────────────────
	out := &dto.DashboardStatsResponse{
		TodayRevenue:      today.revenue.Round(2),
		TodayTransactions: today.count,
		WeekRevenue:       week.revenue.Round(2),
		MonthRevenue:      month.revenue.Round(2),
		LowStockCount:     lowStock.n,
		TotalProducts:     products.n,
		RecentSales:       make([]*dto.SaleResponse, 0, len(recent.sales)),
	}
	for _, r := range recent.sales {
		sale := r.Sale
		out.RecentSales = append(out.RecentSales, &dto.SaleResponse{
			ID:             sale.ID,
			SaleID:         sale.SaleID,
			CashierID:      sale.CashierID,
			CashierName:    r.CashierName,
			TotalAmount:    sale.TotalAmount,
			DiscountAmount: sale.DiscountAmount,
			TaxAmount:      sale.TaxAmount,
			FinalAmount:    sale.FinalAmount,
			PaymentMethod:  sale.PaymentMethod,
			CustomerName:   sale.CustomerName,
			CustomerPhone:  sale.CustomerPhone,
			Notes:          sale.Notes,
			CreatedAt:      sale.CreatedAt,
		})
	}
	return out, nil
}

package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
// Todos los agregados son cero cuando no hay datos, nunca null.
type DashboardStatsResponse struct {
	TodayRevenue      decimal.Decimal `json:"today_revenue"`
	TodayTransactions int             `json:"today_transactions"`
	WeekRevenue       decimal.Decimal `json:"week_revenue"`
	MonthRevenue      decimal.Decimal `json:"month_revenue"`
	LowStockCount     int             `json:"low_stock_count"`
	TotalProducts     int             `json:"total_products"`
	RecentSales       []*SaleResponse `json:"recent_sales"`
}

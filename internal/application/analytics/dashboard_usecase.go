// Package analytics contiene el dashboard de ventas: consultas de solo lectura sobre
// mov_inventario, transacciones y productos.
package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

const (
	dashboardTopProducts = 10
	dashboardRecentSales = 10
)

// Nombres de sección reportados en DashboardDTO.Unavailable.
const (
	SectionSummary    = "summary"
	SectionDaily      = "daily_sales"
	SectionTop        = "top_products"
	SectionRecent     = "recent_sales"
	SectionLowStock   = "low_stock"
	SectionByCategory = "sales_by_category"
)

// DashboardUseCase arma el dashboard del mes en curso.
//
// Las seis secciones se consultan en paralelo. Una sección que falla se registra en el log y
// se devuelve vacía: el dashboard nunca falla por una consulta.
type DashboardUseCase struct {
	repo repository.DashboardRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, log: log, now: time.Now}
}

// GetDashboard construye el DashboardDTO.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) *dto.DashboardDTO {
	now := uc.now()
	year, month := now.Year(), now.Month()

	var (
		summary  *repository.MonthSummary
		daily    []repository.DailySales
		top      []repository.ProductSold
		recent   []repository.SaleLine
		lowStock []repository.LowStockProduct
		byCat    []repository.CategorySales

		mu          sync.Mutex
		unavailable []string
		wg          sync.WaitGroup
	)
	run := func(section string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				uc.log.Error().Err(err).Str("section", section).Msg("dashboard: sección no disponible")
				mu.Lock()
				unavailable = append(unavailable, section)
				mu.Unlock()
			}
		}()
	}

	run(SectionSummary, func() (err error) { summary, err = uc.repo.MonthSummary(ctx, year, month); return })
	run(SectionDaily, func() (err error) { daily, err = uc.repo.DailySales(ctx, year, month); return })
	run(SectionTop, func() (err error) { top, err = uc.repo.TopProducts(ctx, dashboardTopProducts); return })
	run(SectionRecent, func() (err error) { recent, err = uc.repo.RecentSales(ctx, dashboardRecentSales); return })
	run(SectionLowStock, func() (err error) { lowStock, err = uc.repo.LowStock(ctx); return })
	run(SectionByCategory, func() (err error) { byCat, err = uc.repo.SalesByCategory(ctx, year, month); return })
	wg.Wait()

	out := &dto.DashboardDTO{
		MonthLabel:      monthLabel(now),
		DailySales:      fillMonth(year, month, now.Location(), daily),
		TopProducts:     make([]dto.TopProductDTO, 0, len(top)),
		RecentSales:     make([]dto.SaleDTO, 0, len(recent)),
		LowStock:        make([]dto.LowStockDTO, 0, len(lowStock)),
		SalesByCategory: make([]dto.CategorySalesDTO, 0, len(byCat)),
		Unavailable:     sortedSections(unavailable),
	}
	if summary != nil {
		out.Summary = dto.SummaryDTO{
			SalesMonth:    summary.SalesCount,
			RevenueMonth:  summary.Revenue.Round(2),
			SalesToday:    summary.SalesToday,
			LowStockCount: summary.LowStockCount,
		}
	}
	for _, p := range top {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{ProductName: p.ProductName, TotalSold: p.TotalSold})
	}
	for _, s := range recent {
		out.RecentSales = append(out.RecentSales, dto.SaleDTO{
			Code:        s.Code,
			ProductName: s.ProductName,
			Quantity:    s.Quantity,
			UnitPrice:   s.UnitPrice,
			TotalPrice:  s.TotalPrice.Round(2),
			Date:        s.Date.Format(time.RFC3339),
		})
	}
	for _, p := range lowStock {
		out.LowStock = append(out.LowStock, dto.LowStockDTO{
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			StockActual:  p.StockActual,
			StockMinimum: p.StockMinimum,
		})
	}
	for _, c := range byCat {
		out.SalesByCategory = append(out.SalesByCategory, dto.CategorySalesDTO{Category: c.Category, Total: c.Total.Round(2)})
	}
	return out
}

// fillMonth devuelve un registro por cada día del mes; los días sin ventas van en 0.
func fillMonth(year int, month time.Month, loc *time.Location, rows []repository.DailySales) []dto.DailySalesDTO {
	totals := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		totals[r.Day.Format(time.DateOnly)] = r.Total
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	days := first.AddDate(0, 1, -1).Day()
	out := make([]dto.DailySalesDTO, 0, days)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		total, ok := totals[key]
		if !ok {
			total = decimal.Zero
		}
		out = append(out, dto.DailySalesDTO{Day: key, Total: total.Round(2)})
	}
	return out
}

var sectionOrder = []string{SectionSummary, SectionDaily, SectionTop, SectionRecent, SectionLowStock, SectionByCategory}

func sortedSections(failed []string) []string {
	if len(failed) == 0 {
		return nil
	}
	set := make(map[string]bool, len(failed))
	for _, s := range failed {
		set[s] = true
	}
	out := make([]string, 0, len(failed))
	for _, s := range sectionOrder {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GLSDEV26/CHOWGANN/internal/domain"
)

// DashboardStats is a pure read-side projection over the order list; nothing
// here is persisted.
type DashboardStats struct {
	TodayRevenue   decimal.Decimal `json:"todayRevenue"`
	MonthRevenue   decimal.Decimal `json:"monthRevenue"`
	PendingCount   int             `json:"pendingCount"`
	DeliveredCount int             `json:"deliveredCount"`
	TopProducts    []ProductSales  `json:"topProducts"`
}

type ProductSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ComputeDashboard aggregates revenue and counters relative to now. Revenue
// counts only paid and delivered orders, bucketed by creation time.
func ComputeDashboard(orders []domain.Order, now time.Time) DashboardStats {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := DashboardStats{
		TodayRevenue: decimal.Zero,
		MonthRevenue: decimal.Zero,
	}
	for _, o := range orders {
		switch o.Status {
		case domain.OrderStatusPending:
			stats.PendingCount++
		case domain.OrderStatusDelivered:
			stats.DeliveredCount++
		}
		if !o.Status.CountsAsRevenue() {
			continue
		}
		if !o.CreatedAt.Before(dayStart) {
			stats.TodayRevenue = stats.TodayRevenue.Add(o.TotalAmount)
		}
		if !o.CreatedAt.Before(monthStart) {
			stats.MonthRevenue = stats.MonthRevenue.Add(o.TotalAmount)
		}
	}
	stats.TopProducts = TopProducts(orders, 3)
	return stats
}

// TopProducts ranks revenue-counted item quantities grouped by the
// denormalized product name. Ties keep the order of first encounter while
// walking the order list (stable sort).
func TopProducts(orders []domain.Order, limit int) []ProductSales {
	counts := map[string]int{}
	var names []string
	for _, o := range orders {
		if !o.Status.CountsAsRevenue() {
			continue
		}
		for _, it := range o.Items {
			if _, seen := counts[it.ProductName]; !seen {
				names = append(names, it.ProductName)
			}
			counts[it.ProductName] += it.Quantity
		}
	}
	ranked := make([]ProductSales, 0, len(names))
	for _, name := range names {
		ranked = append(ranked, ProductSales{Name: name, Quantity: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Quantity > ranked[j].Quantity })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// DailyRevenue buckets one calendar month into per-day revenue. The slice
// has one entry per day of that month.
func DailyRevenue(orders []domain.Order, year int, month time.Month) []decimal.Decimal {
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
	buckets := make([]decimal.Decimal, days)
	for i := range buckets {
		buckets[i] = decimal.Zero
	}
	for _, o := range orders {
		if !o.Status.CountsAsRevenue() {
			continue
		}
		c := o.CreatedAt
		if c.Year() != year || c.Month() != month {
			continue
		}
		buckets[c.Day()-1] = buckets[c.Day()-1].Add(o.TotalAmount)
	}
	return buckets
}

// MonthlyRevenue buckets one calendar year into its twelve months.
func MonthlyRevenue(orders []domain.Order, year int) []decimal.Decimal {
	buckets := make([]decimal.Decimal, 12)
	for i := range buckets {
		buckets[i] = decimal.Zero
	}
	for _, o := range orders {
		if !o.Status.CountsAsRevenue() {
			continue
		}
		if o.CreatedAt.Year() != year {
			continue
		}
		buckets[o.CreatedAt.Month()-1] = buckets[o.CreatedAt.Month()-1].Add(o.TotalAmount)
	}
	return buckets
}

// StatsUC reads the order list and hands it to the pure aggregators above.
type StatsUC struct {
	Orders domain.OrderRepo
}

func (uc *StatsUC) Dashboard(ctx context.Context) (*DashboardStats, error) {
	orders, err := uc.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeDashboard(orders, time.Now())
	return &stats, nil
}

func (uc *StatsUC) Daily(ctx context.Context, year int, month time.Month) ([]decimal.Decimal, error) {
	orders, err := uc.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return DailyRevenue(orders, year, month), nil
}

func (uc *StatsUC) Monthly(ctx context.Context, year int) ([]decimal.Decimal, error) {
	orders, err := uc.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return MonthlyRevenue(orders, year), nil
}

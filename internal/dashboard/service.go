package dashboard

import (
	"context"
	"fmt"

	"github.com/adnanyousaf/landtrack-backend/pkg/db/models"
	"github.com/adnanyousaf/landtrack-backend/pkg/enums"
)

// Reader is the store surface the aggregations need.
type Reader interface {
	GetLands(ctx context.Context) ([]models.Land, error)
	GetFarmers(ctx context.Context) ([]models.Farmer, error)
	GetExpenses(ctx context.Context) ([]models.Expense, error)
	GetCropIncomes(ctx context.Context) ([]models.CropIncome, error)
}

// Stats are the headline dashboard totals.
type Stats struct {
	TotalLands    int     `json:"totalLands"`
	TotalFarmers  int     `json:"totalFarmers"`
	TotalExpenses float64 `json:"totalExpenses"`
	TotalIncome   float64 `json:"totalIncome"`
}

// LandSummary compares income and expenses for one land.
type LandSummary struct {
	LandID   string  `json:"landId"`
	Name     string  `json:"name"`
	Expenses float64 `json:"expenses"`
	Income   float64 `json:"income"`
	Profit   float64 `json:"profit"`
}

// Service derives dashboard views from the current store snapshot. Every call
// recomputes from scratch; nothing is cached.
type Service interface {
	Stats(ctx context.Context) (Stats, error)
	LandSummaries(ctx context.Context) ([]LandSummary, error)
	CategoryBreakdown(ctx context.Context) (map[enums.ExpenseCategory]float64, error)
}

type service struct {
	store Reader
}

// NewService wires a dashboard service over the provided store.
func NewService(store Reader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store reader required")
	}
	return &service{store: store}, nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	lands, err := s.store.GetLands(ctx)
	if err != nil {
		return Stats{}, err
	}
	farmers, err := s.store.GetFarmers(ctx)
	if err != nil {
		return Stats{}, err
	}
	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return Stats{}, err
	}
	incomes, err := s.store.GetCropIncomes(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalLands:   len(lands),
		TotalFarmers: len(farmers),
	}
	for _, e := range expenses {
		stats.TotalExpenses += e.Amount
	}
	for _, in := range incomes {
		stats.TotalIncome += in.Amount
	}
	return stats, nil
}

func (s *service) LandSummaries(ctx context.Context) ([]LandSummary, error) {
	lands, err := s.store.GetLands(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return nil, err
	}
	incomes, err := s.store.GetCropIncomes(ctx)
	if err != nil {
		return nil, err
	}

	expenseByLand := map[string]float64{}
	for _, e := range expenses {
		expenseByLand[e.LandID] += e.Amount
	}
	incomeByLand := map[string]float64{}
	for _, in := range incomes {
		incomeByLand[in.LandID] += in.Amount
	}

	summaries := make([]LandSummary, 0, len(lands))
	for _, land := range lands {
		expense := expenseByLand[land.ID]
		income := incomeByLand[land.ID]
		summaries = append(summaries, LandSummary{
			LandID:   land.ID,
			Name:     land.Name,
			Expenses: expense,
			Income:   income,
			Profit:   income - expense,
		})
	}
	return summaries, nil
}

func (s *service) CategoryBreakdown(ctx context.Context) (map[enums.ExpenseCategory]float64, error) {
	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := map[enums.ExpenseCategory]float64{}
	for _, e := range expenses {
		breakdown[e.Category] += e.Amount
	}
	return breakdown, nil
}

// BreakdownWithZeroes fills every canonical category so display code does not
// have to special-case absent ones.
func BreakdownWithZeroes(breakdown map[enums.ExpenseCategory]float64) map[enums.ExpenseCategory]float64 {
	full := make(map[enums.ExpenseCategory]float64, len(enums.ExpenseCategories()))
	for _, c := range enums.ExpenseCategories() {
		full[c] = breakdown[c]
	}
	return full
}

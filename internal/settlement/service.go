// Package settlement divides a land's net profit between landlord and farmer.
// The landlord keeps 75% of net profit; the farmer's 25% gross share is
// reduced by a quarter of the farming expenses and the full lend amount.
package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/adnanyousaf/landtrack-backend/internal/resolver"
	"github.com/adnanyousaf/landtrack-backend/internal/store"
	"github.com/adnanyousaf/landtrack-backend/pkg/db/models"
	"github.com/adnanyousaf/landtrack-backend/pkg/enums"
	pkgerrors "github.com/adnanyousaf/landtrack-backend/pkg/errors"
	"github.com/adnanyousaf/landtrack-backend/pkg/logger"
	"github.com/adnanyousaf/landtrack-backend/pkg/metrics"
	"github.com/adnanyousaf/landtrack-backend/pkg/validation"
)

const (
	landlordShareRate      = 0.75
	farmerShareRate        = 0.25
	farmerExpenseShareRate = 0.25
)

// Store is the record store surface the calculator needs.
type Store interface {
	GetLands(ctx context.Context) ([]models.Land, error)
	GetFarmers(ctx context.Context) ([]models.Farmer, error)
	GetExpensesByLand(ctx context.Context, landID string) ([]models.Expense, error)
	AddCropIncome(ctx context.Context, input store.AddCropIncomeInput) (*models.CropIncome, error)
}

// CalculateInput names the two user-entered values of a settlement run.
type CalculateInput struct {
	LandID     string  `json:"landId" validate:"required"`
	CropIncome float64 `json:"cropIncome" validate:"gte=0"`
}

// Settlement carries every intermediate value of the distribution so display
// and printing never recompute anything.
type Settlement struct {
	Land   models.Land    `json:"land"`
	Farmer *models.Farmer `json:"farmer,omitempty"`

	CropIncome         float64                           `json:"cropIncome"`
	ExpensesByCategory map[enums.ExpenseCategory]float64 `json:"expensesByCategory"`

	FarmingExpenses float64 `json:"farmingExpenses"`
	LendAmount      float64 `json:"lendAmount"`
	TotalExpenses   float64 `json:"totalExpenses"`
	NetProfit       float64 `json:"netProfit"`

	LandlordShare         float64 `json:"landlordShare"`
	FarmerGrossShare      float64 `json:"farmerGrossShare"`
	FarmerExpenseShare    float64 `json:"farmerExpenseShare"`
	FarmerLendDeduction   float64 `json:"farmerLendDeduction"`
	TotalFarmerDeductions float64 `json:"totalFarmerDeductions"`
	FarmerNetProfit       float64 `json:"farmerNetProfit"`

	Season string    `json:"season"`
	Date   time.Time `json:"date"`
}

// FarmerOwes returns the amount the farmer owes the landlord when the
// deductions exceed the gross share, zero otherwise.
func (s *Settlement) FarmerOwes() float64 {
	if s.FarmerNetProfit < 0 {
		return -s.FarmerNetProfit
	}
	return 0
}

// Service computes settlements.
type Service interface {
	Calculate(ctx context.Context, input CalculateInput) (*Settlement, error)
}

// ServiceParams wires a settlement service.
type ServiceParams struct {
	Store   Store
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
	Now     func() time.Time
}

type service struct {
	store   Store
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
	now     func() time.Time
}

// NewService wires a settlement calculator over the provided store.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("settlement store required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		store:   params.Store,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

func (s *service) Calculate(ctx context.Context, input CalculateInput) (*Settlement, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	lands, err := s.store.GetLands(ctx)
	if err != nil {
		return nil, err
	}
	land, ok := resolver.LandByID(lands, input.LandID)
	if !ok {
		// fail before any arithmetic; a dangling land id must not produce
		// a half-filled settlement
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "land not found").
			WithDetails(map[string]string{"landId": input.LandID})
	}

	var farmer *models.Farmer
	if land.FarmerID != "" {
		farmers, err := s.store.GetFarmers(ctx)
		if err != nil {
			return nil, err
		}
		if resolved, ok := resolver.FarmerForLand(farmers, land); ok {
			farmer = &resolved
		}
	}

	expenses, err := s.store.GetExpensesByLand(ctx, land.ID)
	if err != nil {
		return nil, err
	}

	byCategory := map[enums.ExpenseCategory]float64{}
	for _, e := range expenses {
		byCategory[e.Category] += e.Amount
	}

	farmingExpenses := 0.0
	for _, c := range enums.ExpenseCategories() {
		if c.IsFarming() {
			farmingExpenses += byCategory[c]
		}
	}
	lendAmount := byCategory[enums.ExpenseCategoryLend]
	totalExpenses := farmingExpenses + lendAmount

	netProfit := input.CropIncome - totalExpenses
	landlordShare := netProfit * landlordShareRate
	farmerGrossShare := netProfit * farmerShareRate

	farmerExpenseShare := farmingExpenses * farmerExpenseShareRate
	farmerLendDeduction := lendAmount
	totalFarmerDeductions := farmerExpenseShare + farmerLendDeduction
	farmerNetProfit := farmerGrossShare - totalFarmerDeductions

	now := s.now()
	season := seasonLabel(now)

	if _, err := s.store.AddCropIncome(ctx, store.AddCropIncomeInput{
		LandID: land.ID,
		Amount: input.CropIncome,
		Season: season,
		Date:   now,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording crop income")
	}

	result := &Settlement{
		Land:                  land,
		Farmer:                farmer,
		CropIncome:            input.CropIncome,
		ExpensesByCategory:    byCategory,
		FarmingExpenses:       farmingExpenses,
		LendAmount:            lendAmount,
		TotalExpenses:         totalExpenses,
		NetProfit:             netProfit,
		LandlordShare:         landlordShare,
		FarmerGrossShare:      farmerGrossShare,
		FarmerExpenseShare:    farmerExpenseShare,
		FarmerLendDeduction:   farmerLendDeduction,
		TotalFarmerDeductions: totalFarmerDeductions,
		FarmerNetProfit:       farmerNetProfit,
		Season:                season,
		Date:                  now,
	}

	s.metrics.IncSettlement()
	if s.logg != nil {
		lctx := s.logg.WithLandID(ctx, land.ID)
		if farmer != nil {
			lctx = s.logg.WithFarmerID(lctx, farmer.ID)
		}
		lctx = s.logg.WithField(lctx, "net_profit", netProfit)
		s.logg.Info(lctx, "settlement calculated")
	}
	return result, nil
}

// seasonLabel matches the legacy "YYYY-M" crop income label.
func seasonLabel(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
}

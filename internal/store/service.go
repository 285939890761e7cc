package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/adnanyousaf/landtrack-backend/pkg/db/models"
	"github.com/adnanyousaf/landtrack-backend/pkg/enums"
	pkgerrors "github.com/adnanyousaf/landtrack-backend/pkg/errors"
	"github.com/adnanyousaf/landtrack-backend/pkg/logger"
	"github.com/adnanyousaf/landtrack-backend/pkg/metrics"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// payloadVersion is the current slot envelope format. Bump it when the record
// shape changes in a way old readers cannot handle.
const payloadVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Records json.RawMessage `json:"records"`
}

// Service is the record store surface consumed by UI collaborators. Update is
// only exposed for lands and farmers; expenses and crop incomes are
// append/delete-only.
//
// The store performs no field validation; callers check inputs (see
// pkg/validation) before mutating.
type Service interface {
	GetLands(ctx context.Context) ([]models.Land, error)
	AddLand(ctx context.Context, input AddLandInput) (*models.Land, error)
	UpdateLand(ctx context.Context, id string, input UpdateLandInput) (*models.Land, error)
	DeleteLand(ctx context.Context, id string) (bool, error)

	GetFarmers(ctx context.Context) ([]models.Farmer, error)
	AddFarmer(ctx context.Context, input AddFarmerInput) (*models.Farmer, error)
	UpdateFarmer(ctx context.Context, id string, input UpdateFarmerInput) (*models.Farmer, error)
	DeleteFarmer(ctx context.Context, id string) (bool, error)

	GetExpenses(ctx context.Context) ([]models.Expense, error)
	AddExpense(ctx context.Context, input AddExpenseInput) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id string) (bool, error)
	GetExpensesByLand(ctx context.Context, landID string) ([]models.Expense, error)

	GetCropIncomes(ctx context.Context) ([]models.CropIncome, error)
	AddCropIncome(ctx context.Context, input AddCropIncomeInput) (*models.CropIncome, error)
	GetCropIncomesByLand(ctx context.Context, landID string) ([]models.CropIncome, error)
}

// AddLandInput captures the caller-supplied fields of a new land.
type AddLandInput struct {
	Name     string  `json:"name" validate:"required"`
	Location string  `json:"location" validate:"required"`
	Area     float64 `json:"area" validate:"gt=0"`
	FarmerID string  `json:"farmerId,omitempty"`
}

// UpdateLandInput merges into an existing land; nil fields are left unchanged.
// An explicit empty FarmerID clears the assignment.
type UpdateLandInput struct {
	Name     *string  `json:"name,omitempty"`
	Location *string  `json:"location,omitempty"`
	Area     *float64 `json:"area,omitempty" validate:"omitempty,gt=0"`
	FarmerID *string  `json:"farmerId,omitempty"`
}

type AddFarmerInput struct {
	Name  string `json:"name" validate:"required"`
	CNIC  string `json:"cnic" validate:"required"`
	Phone string `json:"phone"`
}

type UpdateFarmerInput struct {
	Name  *string `json:"name,omitempty"`
	CNIC  *string `json:"cnic,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type AddExpenseInput struct {
	LandID   string                `json:"landId" validate:"required"`
	Category enums.ExpenseCategory `json:"category" validate:"required,oneof=seed diesel machinery other lend"`
	Amount   float64               `json:"amount"`
	Date     time.Time             `json:"date"`
	Note     string                `json:"note"`
}

type AddCropIncomeInput struct {
	LandID string    `json:"landId" validate:"required"`
	Amount float64   `json:"amount" validate:"gte=0"`
	Season string    `json:"season"`
	Date   time.Time `json:"date"`
}

// ServiceParams wires a record store service. Tx is optional; without it
// multi-slot mutations fall back to sequential saves.
type ServiceParams struct {
	Repo    Repository
	Tx      TxRunner
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
	Now     func() time.Time
}

type service struct {
	repo    Repository
	tx      TxRunner
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
	now     func() time.Time

	// guards every slot read-modify-write; whole-slot persistence is not
	// atomic on its own
	mu sync.Mutex
}

// NewService wires a record store backed by the provided slot repository.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

// inTx runs fn against a transaction-bound repository when a runner is
// configured, against the plain repository otherwise.
func (s *service) inTx(ctx context.Context, fn func(repo Repository) error) error {
	if s.tx == nil {
		return fn(s.repo)
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return fn(s.repo.WithTx(tx))
	})
}

func loadRecords[T any](ctx context.Context, s *service, slot string) ([]T, error) {
	payload, found, err := s.repo.Load(ctx, slot)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading "+slot)
	}
	if !found {
		return []T{}, nil
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		s.metrics.IncCorruptPayload()
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageCorrupt, err, "decoding "+slot+" payload")
	}
	if env.Version != payloadVersion {
		s.metrics.IncCorruptPayload()
		return nil, pkgerrors.New(pkgerrors.CodeStorageCorrupt,
			fmt.Sprintf("unsupported %s payload version %d", slot, env.Version))
	}
	if len(env.Records) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(env.Records, &records); err != nil {
		s.metrics.IncCorruptPayload()
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageCorrupt, err, "decoding "+slot+" records")
	}
	return records, nil
}

func saveRecords[T any](ctx context.Context, repo Repository, slot string, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding "+slot+" records")
	}
	payload, err := json.Marshal(envelope{Version: payloadVersion, Records: raw})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding "+slot+" payload")
	}
	if err := repo.Save(ctx, slot, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting "+slot)
	}
	return nil
}

// freshID generates an id not present in taken. uuid collisions are
// vanishingly rare; the loop is the insertion-time uniqueness check.
func freshID(taken map[string]struct{}) string {
	for {
		id := uuid.NewString()
		if _, exists := taken[id]; !exists {
			return id
		}
	}
}

// strictlyAfter advances now past prev so updatedAt always moves forward even
// if the clock is coarse.
func strictlyAfter(now, prev time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}

func (s *service) logMutation(ctx context.Context, slot, op, id string) {
	s.metrics.IncMutation(slot, op)
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithSlot(ctx, slot)
	ctx = s.logg.WithFields(ctx, map[string]any{"op": op, "id": id})
	s.logg.Info(ctx, "record store mutation")
}

// Lands

func (s *service) GetLands(ctx context.Context) ([]models.Land, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadRecords[models.Land](ctx, s, SlotLands)
}

func (s *service) AddLand(ctx context.Context, input AddLandInput) (*models.Land, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lands, err := loadRecords[models.Land](ctx, s, SlotLands)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(lands))
	for _, l := range lands {
		taken[l.ID] = struct{}{}
	}

	now := s.now()
	land := models.Land{
		ID:        freshID(taken),
		Name:      input.Name,
		Location:  input.Location,
		Area:      input.Area,
		FarmerID:  input.FarmerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	lands = append(lands, land)

	if err := saveRecords(ctx, s.repo, SlotLands, lands); err != nil {
		return nil, err
	}
	s.logMutation(ctx, SlotLands, "add", land.ID)
	return &land, nil
}

func (s *service) UpdateLand(ctx context.Context, id string, input UpdateLandInput) (*models.Land, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lands, err := loadRecords[models.Land](ctx, s, SlotLands)
	if err != nil {
		return nil, err
	}

	for i := range lands {
		if lands[i].ID != id {
			continue
		}
		if input.Name != nil {
			lands[i].Name = *input.Name
		}
		if input.Location != nil {
			lands[i].Location = *input.Location
		}
		if input.Area != nil {
			lands[i].Area = *input.Area
		}
		if input.FarmerID != nil {
			lands[i].FarmerID = *input.FarmerID
		}
		lands[i].UpdatedAt = strictlyAfter(s.now(), lands[i].UpdatedAt)

		if err := saveRecords(ctx, s.repo, SlotLands, lands); err != nil {
			return nil, err
		}
		s.logMutation(ctx, SlotLands, "update", id)
		updated := lands[i]
		return &updated, nil
	}

	// not found is a sentinel, not an error
	return nil, nil
}

// DeleteLand refuses to orphan dependents: while expenses or crop incomes
// still reference the land it returns a CONFLICT error instead of deleting.
func (s *service) DeleteLand(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lands, err := loadRecords[models.Land](ctx, s, SlotLands)
	if err != nil {
		return false, err
	}

	filtered := lands[:0:0]
	for _, l := range lands {
		if l.ID != id {
			filtered = append(filtered, l)
		}
	}
	if len(filtered) == len(lands) {
		return false, nil
	}

	expenses, err := loadRecords[models.Expense](ctx, s, SlotExpenses)
	if err != nil {
		return false, err
	}
	for _, e := range expenses {
		if e.LandID == id {
			return false, pkgerrors.New(pkgerrors.CodeConflict, "land still has expenses recorded against it").
				WithDetails(map[string]string{"landId": id})
		}
	}
	incomes, err := loadRecords[models.CropIncome](ctx, s, SlotCropIncomes)
	if err != nil {
		return false, err
	}
	for _, in := range incomes {
		if in.LandID == id {
			return false, pkgerrors.New(pkgerrors.CodeConflict, "land still has crop income recorded against it").
				WithDetails(map[string]string{"landId": id})
		}
	}

	if err := saveRecords(ctx, s.repo, SlotLands, filtered); err != nil {
		return false, err
	}
	s.logMutation(ctx, SlotLands, "delete", id)
	return true, nil
}

// Farmers

func (s *service) GetFarmers(ctx context.Context) ([]models.Farmer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadRecords[models.Farmer](ctx, s, SlotFarmers)
}

func (s *service) AddFarmer(ctx context.Context, input AddFarmerInput) (*models.Farmer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	farmers, err := loadRecords[models.Farmer](ctx, s, SlotFarmers)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(farmers))
	for _, f := range farmers {
		taken[f.ID] = struct{}{}
	}

	now := s.now()
	farmer := models.Farmer{
		ID:        freshID(taken),
		Name:      input.Name,
		CNIC:      input.CNIC,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	farmers = append(farmers, farmer)

	if err := saveRecords(ctx, s.repo, SlotFarmers, farmers); err != nil {
		return nil, err
	}
	s.logMutation(ctx, SlotFarmers, "add", farmer.ID)
	return &farmer, nil
}

func (s *service) UpdateFarmer(ctx context.Context, id string, input UpdateFarmerInput) (*models.Farmer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	farmers, err := loadRecords[models.Farmer](ctx, s, SlotFarmers)
	if err != nil {
		return nil, err
	}

	for i := range farmers {
		if farmers[i].ID != id {
			continue
		}
		if input.Name != nil {
			farmers[i].Name = *input.Name
		}
		if input.CNIC != nil {
			farmers[i].CNIC = *input.CNIC
		}
		if input.Phone != nil {
			farmers[i].Phone = *input.Phone
		}
		farmers[i].UpdatedAt = strictlyAfter(s.now(), farmers[i].UpdatedAt)

		if err := saveRecords(ctx, s.repo, SlotFarmers, farmers); err != nil {
			return nil, err
		}
		s.logMutation(ctx, SlotFarmers, "update", id)
		updated := farmers[i]
		return &updated, nil
	}

	return nil, nil
}

// DeleteFarmer clears the assignment on any land still pointing at the farmer
// so no dangling references survive the delete. Both slot writes happen in
// one transaction; a failed write must not leave lands unassigned while the
// farmer survives.
func (s *service) DeleteFarmer(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	farmers, err := loadRecords[models.Farmer](ctx, s, SlotFarmers)
	if err != nil {
		return false, err
	}

	filtered := farmers[:0:0]
	for _, f := range farmers {
		if f.ID != id {
			filtered = append(filtered, f)
		}
	}
	if len(filtered) == len(farmers) {
		return false, nil
	}

	lands, err := loadRecords[models.Land](ctx, s, SlotLands)
	if err != nil {
		return false, err
	}
	landsChanged := false
	for i := range lands {
		if lands[i].FarmerID == id {
			lands[i].FarmerID = ""
			lands[i].UpdatedAt = strictlyAfter(s.now(), lands[i].UpdatedAt)
			landsChanged = true
		}
	}

	err = s.inTx(ctx, func(repo Repository) error {
		if err := saveRecords(ctx, repo, SlotFarmers, filtered); err != nil {
			return err
		}
		if landsChanged {
			return saveRecords(ctx, repo, SlotLands, lands)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	s.logMutation(ctx, SlotFarmers, "delete", id)
	return true, nil
}

// Expenses

func (s *service) GetExpenses(ctx context.Context) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadRecords[models.Expense](ctx, s, SlotExpenses)
}

func (s *service) AddExpense(ctx context.Context, input AddExpenseInput) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := loadRecords[models.Expense](ctx, s, SlotExpenses)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(expenses))
	for _, e := range expenses {
		taken[e.ID] = struct{}{}
	}

	now := s.now()
	expense := models.Expense{
		ID:        freshID(taken),
		LandID:    input.LandID,
		Category:  input.Category,
		Amount:    input.Amount,
		Date:      input.Date,
		Note:      input.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	expenses = append(expenses, expense)

	if err := saveRecords(ctx, s.repo, SlotExpenses, expenses); err != nil {
		return nil, err
	}
	s.logMutation(ctx, SlotExpenses, "add", expense.ID)
	return &expense, nil
}

func (s *service) DeleteExpense(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := loadRecords[models.Expense](ctx, s, SlotExpenses)
	if err != nil {
		return false, err
	}

	filtered := expenses[:0:0]
	for _, e := range expenses {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == len(expenses) {
		return false, nil
	}

	if err := saveRecords(ctx, s.repo, SlotExpenses, filtered); err != nil {
		return false, err
	}
	s.logMutation(ctx, SlotExpenses, "delete", id)
	return true, nil
}

func (s *service) GetExpensesByLand(ctx context.Context, landID string) ([]models.Expense, error) {
	expenses, err := s.GetExpenses(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Expense{}
	for _, e := range expenses {
		if e.LandID == landID {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Crop incomes

func (s *service) GetCropIncomes(ctx context.Context) ([]models.CropIncome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadRecords[models.CropIncome](ctx, s, SlotCropIncomes)
}

func (s *service) AddCropIncome(ctx context.Context, input AddCropIncomeInput) (*models.CropIncome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	incomes, err := loadRecords[models.CropIncome](ctx, s, SlotCropIncomes)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(incomes))
	for _, in := range incomes {
		taken[in.ID] = struct{}{}
	}

	now := s.now()
	income := models.CropIncome{
		ID:        freshID(taken),
		LandID:    input.LandID,
		Amount:    input.Amount,
		Season:    input.Season,
		Date:      input.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	incomes = append(incomes, income)

	if err := saveRecords(ctx, s.repo, SlotCropIncomes, incomes); err != nil {
		return nil, err
	}
	s.logMutation(ctx, SlotCropIncomes, "add", income.ID)
	return &income, nil
}

func (s *service) GetCropIncomesByLand(ctx context.Context, landID string) ([]models.CropIncome, error) {
	incomes, err := s.GetCropIncomes(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.CropIncome{}
	for _, in := range incomes {
		if in.LandID == landID {
			matched = append(matched, in)
		}
	}
	return matched, nil
}

package store

import (
	"context"
	"errors"

	"github.com/adnanyousaf/landtrack-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot names for the four persisted collections.
const (
	SlotLands       = "lands"
	SlotFarmers     = "farmers"
	SlotExpenses    = "expenses"
	SlotCropIncomes = "cropIncomes"
)

// Repository manages persistence for whole record slots. A slot is always
// read and written in one piece.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Load(ctx context.Context, slot string) ([]byte, bool, error)
	Save(ctx context.Context, slot string, payload []byte) error
}

// TxRunner executes fn inside a single database transaction so multi-slot
// writes commit together or not at all. db.Client satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a slot repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Load(ctx context.Context, slot string) ([]byte, bool, error) {
	var row models.Collection
	err := r.db.WithContext(ctx).First(&row, "slot = ?", slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// a slot that was never written is an empty collection
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return row.Payload, true, nil
}

func (r *repository) Save(ctx context.Context, slot string, payload []byte) error {
	row := models.Collection{Slot: slot, Payload: payload}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}

package models

import "time"

// Collection is one named record slot. The whole slot payload is rewritten on
// every mutation; individual records never have rows of their own.
type Collection struct {
	Slot      string    `gorm:"column:slot;primaryKey"`
	Payload   []byte    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Collection) TableName() string {
	return "collections"
}

// Package sql stores slots in a relational database through gorm.
package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"alcyxob/hoops-trainer/internal/repository"
)

// Slot is one persisted slot row.
type Slot struct {
	Key       string `gorm:"column:slot_key;primaryKey;size:255"`
	Value     string `gorm:"column:slot_value;type:text;not null"`
	UpdatedAt time.Time
}

// TableName overrides the table name for Slot
func (Slot) TableName() string {
	return "slots"
}

// Open connects to the database selected by driver ("sqlite" or "postgres").
// For sqlite the dsn is the database file path.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate slots table: %w", err)
	}
	return db, nil
}

// SlotStore implements repository.SlotStore on the slots table.
type SlotStore struct {
	db *gorm.DB
}

var _ repository.SlotStore = (*SlotStore)(nil)

// NewSlotStore wraps a migrated database handle.
func NewSlotStore(db *gorm.DB) *SlotStore {
	return &SlotStore{db: db}
}

func (s *SlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	var slot Slot
	err := s.db.WithContext(ctx).Where("slot_key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return slot.Value, true, nil
}

func (s *SlotStore) Set(ctx context.Context, key, value string) error {
	slot := Slot{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"slot_value", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("%w: slot %q: %v", repository.ErrWriteFailed, key, err)
	}
	return nil
}

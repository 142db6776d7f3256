// Package journal keeps a local SQLite log of submitted transactions.
//
// The journal is informational: it records what this client sent and how
// each transaction ended, and is never consulted for business rules.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ruteri/healthcare-contract-client/interfaces"
)

// Status is the lifecycle of a journaled transaction.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Entry is one submitted transaction.
type Entry struct {
	ID         string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Contract   string    `gorm:"index"                       json:"contract"`
	Operation  string    `json:"operation"`
	RecordHash string    `gorm:"index"                       json:"recordHash"`
	TxHash     string    `gorm:"type:varchar(66)"            json:"txHash"`
	Status     Status    `gorm:"type:varchar(16);index"      json:"status"`
	Block      uint64    `json:"block"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime"              json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"              json:"updatedAt"`
}

func (e *Entry) BeforeSave(tx *gorm.DB) error {
	if e.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		e.ID = id.String()
	}
	return nil
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Contract string
	Hash     interfaces.RecordHash
	Limit    int
}

// Journal is an interfaces.TxJournal backed by SQLite.
type Journal struct {
	db  *gorm.DB
	log *slog.Logger
}

// Open opens or creates the journal at path. ":memory:" gives a private
// in-memory journal.
func Open(path string, log *slog.Logger) (*Journal, error) {
	if path == "" {
		return nil, errors.New("journal path is empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	gormLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelDebug),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get journal database: %w", err)
	}
	// One connection: an in-memory database exists per connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Entry{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}

	log.Debug("journal opened", "path", path)
	return &Journal{db: db, log: log}, nil
}

// RecordSubmitted stores a pending entry and returns its id.
func (j *Journal) RecordSubmitted(ctx context.Context, contract, operation string, hash interfaces.RecordHash, txHash ethcommon.Hash) (string, error) {
	entry := &Entry{
		Contract:   contract,
		Operation:  operation,
		RecordHash: hash.String(),
		TxHash:     txHash.Hex(),
		Status:     StatusPending,
	}
	if err := j.db.WithContext(ctx).Create(entry).Error; err != nil {
		return "", fmt.Errorf("failed to journal %s: %w", operation, err)
	}
	return entry.ID, nil
}

// RecordOutcome closes the entry id as confirmed, or failed when cause is set.
func (j *Journal) RecordOutcome(ctx context.Context, id string, block uint64, cause error) error {
	updates := map[string]interface{}{
		"status": StatusConfirmed,
		"block":  block,
		"error":  "",
	}
	if cause != nil {
		updates["status"] = StatusFailed
		updates["error"] = cause.Error()
	}

	result := j.db.WithContext(ctx).Model(&Entry{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("journal entry %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// List returns entries newest first. Entry ids are uuid v7 and sort by
// creation time.
func (j *Journal) List(ctx context.Context, filter Filter) ([]Entry, error) {
	query := j.db.WithContext(ctx).Order("id DESC")
	if filter.Contract != "" {
		query = query.Where("contract = ?", filter.Contract)
	}
	if !filter.Hash.IsZero() {
		query = query.Where("record_hash = ?", filter.Hash.String())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var entries []Entry
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}
	return entries, nil
}

// Close releases the database.
func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

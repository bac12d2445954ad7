package bridge

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// values stored in TurnRecord.Result, naming which path produced the reply
const (
	ResultSteps          = "steps"
	ResultScan           = "scan"
	ResultSentinel       = "sentinel"
	ResultFallback       = "fallback"
	ResultFallbackFailed = "fallback_failed"
	ResultStatusMessage  = "status_message"
	ResultError          = "error"
)

type Database interface {
	CreateTurnRecord(record *TurnRecord) error
	GetTurnRecordsByThread(threadID string) ([]*TurnRecord, error)
	CountTurnRecordsByResult(since time.Time) (map[string]int64, error)
	PurgeTurnRecordsBefore(cutoff time.Time) (int64, error)
}

// TurnRecord is the audit row written after each turn. It deliberately holds
// no message or reply text: conversation content stays with the remote
// service.
type TurnRecord struct {
	ID        uint `gorm:"primaryKey"`
	TurnID    string
	ThreadID  string
	RunID     string
	RunStatus string
	Result    string
	Duration  time.Duration
	CreatedAt time.Time
}

type DB struct {
	*gorm.DB
}

func NewDB(dsn string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&TurnRecord{}); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

func (db *DB) CreateTurnRecord(record *TurnRecord) error {
	return db.DB.Create(record).Error
}

func (db *DB) GetTurnRecordsByThread(threadID string) ([]*TurnRecord, error) {
	var records []*TurnRecord
	err := db.DB.Where(&TurnRecord{ThreadID: threadID}).Find(&records).Error
	return records, err
}

// CountTurnRecordsByResult groups the records created since the given time by
// their result path.
func (db *DB) CountTurnRecordsByResult(since time.Time) (map[string]int64, error) {
	type resultCount struct {
		Result string
		N      int64
	}

	var rows []resultCount
	err := db.DB.Model(&TurnRecord{}).
		Select("result, count(*) as n").
		Where("created_at >= ?", since).
		Group("result").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Result] = row.N
	}
	return counts, nil
}

func (db *DB) PurgeTurnRecordsBefore(cutoff time.Time) (int64, error) {
	result := db.DB.Where("created_at < ?", cutoff).Delete(&TurnRecord{})
	return result.RowsAffected, result.Error
}

// Close releases the underlying connection pool. Mainly for tests.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

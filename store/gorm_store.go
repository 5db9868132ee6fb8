package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/gcbaptista/go-survey-similarity/internal/errors"
	"github.com/gcbaptista/go-survey-similarity/model"
)

type candidateRow struct {
	ID        uint        `gorm:"primaryKey"`
	Name      string      `gorm:"type:text;uniqueIndex;not null"`
	Answers   []answerRow `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `gorm:"type:timestamp;default:now()"`
}

func (candidateRow) TableName() string {
	return "candidates"
}

type answerRow struct {
	ID          uint   `gorm:"primaryKey"`
	CandidateID uint   `gorm:"index;not null"`
	Position    int    `gorm:"not null"`
	Question    string `gorm:"type:text"`
	Option      string `gorm:"column:option_label;type:text"`
}

func (answerRow) TableName() string {
	return "candidate_answers"
}

// GormStore persists submissions in a relational database through gorm.
// It implements the services.CandidateStore interface.
type GormStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// OpenPostgres connects to PostgreSQL with the given DSN.
func OpenPostgres(dsn string, debug bool) (*gorm.DB, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// NewGormStore migrates the candidate tables and returns a store using db.
func NewGormStore(db *gorm.DB, log *zap.Logger) (*GormStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := db.AutoMigrate(&candidateRow{}, &answerRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("database migration completed")
	return &GormStore{db: db, logger: log}, nil
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// LoadAll returns every candidate in insertion order with answers in
// submission order.
func (s *GormStore) LoadAll(ctx context.Context) ([]model.CandidateRecord, error) {
	var rows []candidateRow
	err := s.db.WithContext(ctx).
		Preload("Answers", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	records := make([]model.CandidateRecord, len(rows))
	for i, row := range rows {
		records[i] = fromRow(row)
	}
	return records, nil
}

// Append inserts the candidate and its answers in one transaction.
func (s *GormStore) Append(ctx context.Context, record model.CandidateRecord) error {
	row := toRow(record)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return createError(record.Name, err)
	}
	s.logger.Debug("candidate stored", zap.String("candidate", record.Name), zap.Uint("id", row.ID))
	return nil
}

// createError maps a failed insert onto the domain error for name.
// TranslateError must be enabled for unique violations to surface as gorm.ErrDuplicatedKey.
func createError(name string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.NewCandidateExistsError(name)
	}
	return fmt.Errorf("failed to create candidate '%s': %w", name, err)
}

func toRow(record model.CandidateRecord) candidateRow {
	answers := make([]answerRow, len(record.Answers))
	for i, a := range record.Answers {
		answers[i] = answerRow{Position: i, Question: a.Question, Option: a.Option}
	}
	return candidateRow{Name: record.Name, Answers: answers}
}

func fromRow(row candidateRow) model.CandidateRecord {
	answers := make([]model.Answer, len(row.Answers))
	for i, a := range row.Answers {
		answers[i] = model.Answer{Question: a.Question, Option: a.Option}
	}
	return model.CandidateRecord{Name: row.Name, Answers: answers}
}

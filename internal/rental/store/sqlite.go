package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

// Document is one persisted document row.
type Document struct {
	Name      string `gorm:"primaryKey"`
	Body      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// SQLite keeps the documents in a single-file SQLite database through gorm.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path and migrates the documents table.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	return NewSQLite(db)
}

func NewSQLite(db *gorm.DB) (*SQLite, error) {
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("migrating documents: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("getting sql handle: %w", err)
	}

	return sqlDB.Close()
}

func (s *SQLite) Load(ctx context.Context) (*rental.State, error) {
	var docs []Document
	if err := s.db.WithContext(ctx).Where("name IN ?", []string{keyUsers, keyAppData}).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	var users, data []byte

	for _, d := range docs {
		switch d.Name {
		case keyUsers:
			users = d.Body
		case keyAppData:
			data = d.Body
		}
	}

	return decodeState(users, data), nil
}

func (s *SQLite) Save(ctx context.Context, st *rental.State) error {
	users, data, err := encodeState(st)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsert(tx, []Document{
			{Name: keyUsers, Body: users},
			{Name: keyAppData, Body: data},
		})
	})
	if err != nil {
		return fmt.Errorf("saving documents: %w", err)
	}

	return nil
}

func upsert(tx *gorm.DB, docs []Document) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&docs).Error
}

func (s *SQLite) Session(ctx context.Context) (int64, bool, error) {
	var doc Document

	err := s.db.WithContext(ctx).Where("name = ?", keySession).Take(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, fmt.Errorf("loading session: %w", err)
	}

	id, ok := decodeSession(doc.Body)

	return id, ok, nil
}

func (s *SQLite) SetSession(ctx context.Context, userID int64) error {
	body, err := encodeSession(userID)
	if err != nil {
		return err
	}

	if err := upsert(s.db.WithContext(ctx), []Document{{Name: keySession, Body: body}}); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	return nil
}

func (s *SQLite) ClearSession(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("name = ?", keySession).Delete(&Document{}).Error; err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	return nil
}

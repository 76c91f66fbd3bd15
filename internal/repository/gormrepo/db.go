// Package gormrepo - встроенное хранилище на SQLite (gorm + glebarez/sqlite, без cgo).
// Реализует те же интерфейсы, что и postgres-репозитории.
package gormrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

// Open открывает (или создает) файл БД и прогоняет миграции
func Open(path string, log logrus.FieldLogger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite не любит конкурентную запись
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	if err := s.db.AutoMigrate(&taskModel{}, &sessionModel{}, &auditModel{}); err != nil {
		return err
	}
	// частичный индекс: не более одной активной сессии на задачу
	return s.db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS session_one_active_per_task ON session (task_id) WHERE ended_at IS NULL`).Error
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// HealthCheck проверяет состояние базы данных
func (s *Store) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package database

import (
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anasir-dev/portfolio-backend/config"
)

type Database struct {
	store       Store
	blogRepo    *BlogRepo
	projectRepo *ProjectRepo
	adminRepo   *AdminRepo
}

// New initializes a new Database struct with each repository sharing one store
func New(store Store) Database {
	return Database{
		store:       store,
		blogRepo:    NewBlogRepo(store),
		projectRepo: NewProjectRepo(store),
		adminRepo:   NewAdminRepo(store),
	}
}

// Accessor methods for each repository

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) AdminRepo() *AdminRepo {
	return d.adminRepo
}

// Kind reports the selected backend for the health endpoint.
func (d Database) Kind() string {
	return d.store.Kind()
}

// Open selects a backend once, at startup, and the choice is sticky for the
// process lifetime. Preference order: DATABASE_URL (Postgres), DATA_DIR (JSON
// files), in-memory. An unreachable database or unusable data directory falls
// back to the next option with a logged warning, since the volatile store is
// the specified fallback.
func Open(c map[string]string) Database {
	if dsn := config.GetString(c, "DATABASE_URL", ""); dsn != "" {
		store, err := openPostgres(dsn)
		if err == nil {
			log.Info().Msg("Storage backend: postgres")
			return New(store)
		}
		log.Warn().Err(err).Msg("Database unreachable, falling back")
	}

	if dir := config.GetString(c, "DATA_DIR", ""); dir != "" {
		store, err := NewFileStore(dir)
		if err == nil {
			log.Info().Str("dir", dir).Msg("Storage backend: file")
			return New(store)
		}
		log.Warn().Err(err).Msg("Data directory unusable, falling back")
	}

	log.Warn().Msg("Storage backend: memory (state is lost on restart)")
	return New(NewMemoryStore())
}

func openPostgres(dsn string) (*PostgresStore, error) {
	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return NewPostgresStore(db)
}

package database

import (
	"github.com/Sandanu06/citf-backend-v1/errs"
	"gorm.io/gorm"
)

type Database struct {
	db               *gorm.DB
	projectRepo      *ProjectRepo
	projectImageRepo *ProjectImageRepo
	scrollImageRepo  *ScrollImageRepo
	videoRepo        *VideoRepo
	userRepo         *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:               db,
		projectRepo:      NewProjectRepo(db),
		projectImageRepo: NewProjectImageRepo(db),
		scrollImageRepo:  NewScrollImageRepo(db),
		videoRepo:        NewVideoRepo(db),
		userRepo:         NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectImageRepo() *ProjectImageRepo {
	return d.projectImageRepo
}

func (d Database) ScrollImageRepo() *ScrollImageRepo {
	return d.scrollImageRepo
}

func (d Database) VideoRepo() *VideoRepo {
	return d.videoRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// Transaction runs fn with repositories bound to a single store transaction.
// Returning an error from fn rolls everything back.
func (d Database) Transaction(fn func(tx Database) error) error {
	if fn == nil {
		return errs.NewInternalError("transaction body cannot be nil")
	}
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Ping checks that a pooled connection can reach the store.
func (d Database) Ping() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close drains the connection pool. Call once on shutdown.
func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Package pgtest starts a throwaway PostgreSQL container with the production
// schema applied. It is imported by integration suites only.
package pgtest

import (
	"context"
	"strings"
	"time"

	"loadboard/internal/adapters/out/postgres"
	"loadboard/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Tables lists every table the schema owns, children first.
var Tables = []string{
	"notifications",
	"lifecycle_events",
	"offer_events",
	"assignments",
	"offers",
	"carrier_bids",
	"awards",
	"bids",
}

// Database is a migrated database inside a running container.
type Database struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and applies all migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, sqlDB, err := postgres.Open(dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err := migrations.Up(sqlDB); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE " + strings.Join(Tables, ", ") + " RESTART IDENTITY CASCADE").Error
}

// Terminate closes the pool and stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if sqlDB, err := d.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return d.Container.Terminate(ctx)
}

// Package databasetest opens throwaway sqlite databases with the full
// schema for tests.
package databasetest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/leesanghooooon/moneymate-sub001/internal/config"
	"github.com/leesanghooooon/moneymate-sub001/internal/database"

	"gorm.io/gorm"
)

var seq atomic.Int64

// New returns a migrated in-memory database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	path := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	db, err := database.Init(config.DatabaseConfig{Driver: "sqlite", Path: path, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// NewSeeded is New plus the common-code reference data.
func NewSeeded(t testing.TB) *gorm.DB {
	t.Helper()
	db := New(t)
	if err := database.Seed(context.Background(), db); err != nil {
		t.Fatalf("seed test db: %v", err)
	}
	return db
}

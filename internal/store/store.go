// Package store holds the data-access layer: every query the HTTP
// handlers run goes through a *Store.
package store

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Store wraps the database handle shared by all requests.
type Store struct {
	db         *gorm.DB
	now        func() time.Time
	bcryptCost int
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithBcryptCost sets the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(s *Store) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now, bcryptCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping runs a round-trip against the database.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	return s.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// today returns the current date as YYYY-MM-DD.
func (s *Store) today() string {
	return s.now().Format("2006-01-02")
}

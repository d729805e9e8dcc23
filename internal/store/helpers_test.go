package store

import (
	"context"
	"testing"
	"time"

	"github.com/leesanghooooon/moneymate-sub001/internal/database/databasetest"
	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	db := databasetest.NewSeeded(t)
	opts = append([]Option{WithBcryptCost(bcrypt.MinCost)}, opts...)
	return New(db, opts...)
}

func fixedClock(ts string) Option {
	now, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return WithClock(func() time.Time { return now })
}

func mustUser(t *testing.T, s *Store, id string) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), SignupInput{
		ID:       id,
		Email:    id + "@example.com",
		Nickname: "nick-" + id,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
	return u
}

func mustWallet(t *testing.T, s *Store, userID, walletType, name string, shared bool) *WalletView {
	t.Helper()
	w, err := s.CreateWallet(context.Background(), userID, WalletInput{
		Type:    walletType,
		Name:    name,
		ShareYN: models.FromBool(shared),
	})
	if err != nil {
		t.Fatalf("create wallet %s: %v", name, err)
	}
	return w
}

func mustTrx(t *testing.T, s *Store, userID string, walletID uint64, trxType, date, amount, category string) TransactionView {
	t.Helper()
	rows, err := s.CreateTransaction(context.Background(), userID, TransactionInput{
		WalletID:     walletID,
		Type:         trxType,
		TrxDate:      date,
		Amount:       decimal.RequireFromString(amount),
		CategoryCode: category,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return rows[0]
}

// mustPartners puts the users into one group with every membership accepted.
func mustPartners(t *testing.T, s *Store, owner string, others ...string) uint64 {
	t.Helper()
	ctx := context.Background()
	g, err := s.CreateShareGroup(ctx, owner, "family")
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range others {
		if _, err := s.InviteMember(ctx, owner, g.ID, id); err != nil {
			t.Fatal(err)
		}
		if _, err := s.RespondInvitation(ctx, id, g.ID, models.MemberAccepted); err != nil {
			t.Fatal(err)
		}
	}
	return g.ID
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

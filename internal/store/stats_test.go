package store

import (
	"context"
	"testing"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/shopspring/decimal"
)

func TestWeeklyExpenses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice01")
	w := mustWallet(t, s, "alice01", models.WalletCash, "cash", false)

	// reference 2025-03-12 (Wed): week of 03-09, one month back 02-12 -> week of 02-09
	mustTrx(t, s, "alice01", w.ID, models.TrxExpense, "2025-03-09", "1000", "FOOD")
	mustTrx(t, s, "alice01", w.ID, models.TrxExpense, "2025-03-12", "3000", "FOOD")
	mustTrx(t, s, "alice01", w.ID, models.TrxIncome, "2025-03-12", "9000", "SALARY")
	mustTrx(t, s, "alice01", w.ID, models.TrxExpense, "2025-02-10", "2000", "CAFE")
	mustTrx(t, s, "alice01", w.ID, models.TrxExpense, "2025-02-16", "5000", "CAFE") // next week

	got, err := s.WeeklyExpenses(ctx, "alice01", mustDate(t, "2025-03-12"))
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentWeekStart != "2025-03-09" || got.PreviousWeekStart != "2025-02-09" {
		t.Errorf("weeks = %s / %s", got.CurrentWeekStart, got.PreviousWeekStart)
	}
	if len(got.Daily) != 7 {
		t.Fatalf("daily = %d, want 7", len(got.Daily))
	}
	if !got.Daily[0].Current.Equal(dec("1000")) || !got.Daily[3].Current.Equal(dec("3000")) || !got.Daily[1].Previous.Equal(dec("2000")) {
		t.Errorf("daily = %+v", got.Daily)
	}
	if got.Daily[6].Date != "2025-03-15" || got.Daily[6].PreviousDate != "2025-02-15" {
		t.Errorf("last day = %+v", got.Daily[6])
	}
	if !got.CurrentWeekTotal.Equal(dec("4000")) || !got.PreviousWeekTotal.Equal(dec("2000")) {
		t.Errorf("totals = %s / %s", got.CurrentWeekTotal, got.PreviousWeekTotal)
	}
	if got.ChangeRate != 100 {
		t.Errorf("changeRate = %v, want 100", got.ChangeRate)
	}

	empty, err := s.WeeklyExpenses(ctx, "alice01", mustDate(t, "2025-06-18"))
	if err != nil {
		t.Fatal(err)
	}
	if len(empty.Daily) != 7 || empty.ChangeRate != 0 {
		t.Errorf("empty weeks = %+v", empty)
	}
}

func TestChangeRate(t *testing.T) {
	tests := []struct {
		current, previous string
		want              float64
	}{
		{"4000", "2000", 100},
		{"1000", "3000", -66.67},
		{"1500", "0", 0},
		{"0", "0", 0},
		{"0", "500", -100},
	}
	for _, tt := range tests {
		if got := ChangeRate(dec(tt.current), dec(tt.previous)); got != tt.want {
			t.Errorf("ChangeRate(%s, %s) = %v, want %v", tt.current, tt.previous, got, tt.want)
		}
	}
}

func TestMonthlyExpensesGrid(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice01")
	w := mustWallet(t, s, "alice01", models.WalletCash, "cash", false)

	mustTrx(t, s, "alice01", w.ID, models.TrxExpense, "2025-03-02", "1000", "FOOD")
	mustTrx(t, s, "alice01", w.ID, models.TrxExpense, "2025-03-20", "500", "FOOD")
	mustTrx(t, s, "alice01", w.ID, models.TrxExpense, "2025-06-01", "300", "CAFE")
	mustTrx(t, s, "alice01", w.ID, models.TrxExpense, "2024-12-01", "700", "TRANSPORT")
	mustTrx(t, s, "alice01", w.ID, models.TrxIncome, "2025-03-25", "50000", "SALARY")

	rows, err := s.MonthlyExpenses(ctx, "alice01", 2025)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 12 {
		t.Fatalf("rows = %d", len(rows))
	}
	for _, r := range rows {
		if len(r.Categories) != 3 {
			t.Fatalf("month %d categories = %v", r.Month, r.Categories)
		}
		if _, ok := r.Categories["SALARY"]; ok {
			t.Fatal("income category in expense grid")
		}
	}

	march := rows[2]
	if march.Month != 3 || !march.Categories["FOOD"].Amount.Equal(dec("1500")) || !march.Total.Equal(dec("1500")) {
		t.Errorf("march = %+v", march)
	}
	jan := rows[0]
	if cafe := jan.Categories["CAFE"]; !cafe.Amount.IsZero() || cafe.CategoryName != "Cafe & snacks" {
		t.Errorf("january cafe = %+v", cafe)
	}
	if !rows[5].Categories["CAFE"].Amount.Equal(dec("300")) {
		t.Errorf("june = %+v", rows[5])
	}
	if !rows[11].Categories["TRANSPORT"].Amount.IsZero() {
		t.Errorf("december 2025 transport = %s", rows[11].Categories["TRANSPORT"].Amount)
	}
}

func TestMonthlyByWallets(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice01")
	cash := mustWallet(t, s, "alice01", models.WalletCash, "cash", false)
	check := mustWallet(t, s, "alice01", models.WalletCheckCard, "check", false)
	visa := mustWallet(t, s, "alice01", models.WalletCreditCard, "visa", false)
	gone := mustWallet(t, s, "alice01", models.WalletCash, "gone", false)

	memo := "bus"
	if _, err := s.CreateTransaction(ctx, "alice01", TransactionInput{
		WalletID: cash.ID, Type: models.TrxExpense, TrxDate: "2025-03-07", Amount: dec("1500"), CategoryCode: "TRANSPORT", Memo: &memo,
	}); err != nil {
		t.Fatal(err)
	}
	mustTrx(t, s, "alice01", cash.ID, models.TrxExpense, "2025-03-21", "2500", "FOOD")
	mustTrx(t, s, "alice01", cash.ID, models.TrxExpense, "2025-04-01", "9999", "FOOD")
	mustTrx(t, s, "alice01", visa.ID, models.TrxExpense, "2025-03-07", "30000", "SHOPPING")
	if err := s.DeleteWallet(ctx, "alice01", gone.ID); err != nil {
		t.Fatal(err)
	}

	got, err := s.MonthlyByWallets(ctx, "alice01", 2025, 3, models.WalletCash)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].WalletID != cash.ID || got[1].WalletID != check.ID {
		t.Fatalf("wallets = %+v", got)
	}
	if len(got[0].Transactions) != 2 || !got[0].Total.Equal(dec("4000")) {
		t.Errorf("cash = %+v", got[0])
	}
	first := got[0].Transactions[0]
	if first.Day != 7 || first.Memo == nil || *first.Memo != "bus" || first.CategoryName == nil || *first.CategoryName != "Transport" {
		t.Errorf("first item = %+v", first)
	}
	if got[1].Transactions == nil || len(got[1].Transactions) != 0 || !got[1].Total.Equal(decimal.Zero) {
		t.Errorf("check = %+v", got[1])
	}

	all, err := s.MonthlyByWallets(ctx, "alice01", 2025, 3, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("all active wallets = %d, want 3", len(all))
	}
}

func TestWalletExpensesSplitsOwnAndShared(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice01")
	mustUser(t, s, "bob0001")
	mustPartners(t, s, "alice01", "bob0001")

	visa := mustWallet(t, s, "alice01", models.WalletCreditCard, "visa", false)
	idle := mustWallet(t, s, "alice01", models.WalletCreditCard, "idle", false)
	cash := mustWallet(t, s, "alice01", models.WalletCash, "cash", false)
	bobCard := mustWallet(t, s, "bob0001", models.WalletCreditCard, "bob card", true)
	bobPrivate := mustWallet(t, s, "bob0001", models.WalletCreditCard, "bob private", false)

	mustTrx(t, s, "alice01", visa.ID, models.TrxExpense, "2025-03-03", "10000", "FOOD")
	mustTrx(t, s, "alice01", visa.ID, models.TrxExpense, "2025-04-03", "5000", "FOOD")
	mustTrx(t, s, "alice01", cash.ID, models.TrxExpense, "2025-03-03", "800", "FOOD")
	mustTrx(t, s, "bob0001", bobCard.ID, models.TrxExpense, "2025-03-15", "7000", "CAFE")
	mustTrx(t, s, "bob0001", bobCard.ID, models.TrxIncome, "2025-03-15", "100", "ETC")
	mustTrx(t, s, "bob0001", bobPrivate.ID, models.TrxExpense, "2025-03-15", "6000", "CAFE")

	got, err := s.WalletExpenses(ctx, "alice01", 2025, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.MyWallets) != 2 || got.MyWallets[0].WalletID != visa.ID || got.MyWallets[1].WalletID != idle.ID {
		t.Fatalf("my wallets = %+v", got.MyWallets)
	}
	if !got.MyWallets[0].TotalAmount.Equal(dec("10000")) || got.MyWallets[0].TrxCount != 1 {
		t.Errorf("visa = %+v", got.MyWallets[0])
	}
	if !got.MyWallets[1].TotalAmount.IsZero() || got.MyWallets[1].TrxCount != 0 {
		t.Errorf("idle = %+v", got.MyWallets[1])
	}
	if len(got.SharedWallets) != 1 {
		t.Fatalf("shared wallets = %+v", got.SharedWallets)
	}
	shared := got.SharedWallets[0]
	if shared.WalletID != bobCard.ID || shared.OwnerNickname != "nick-bob0001" || !shared.TotalAmount.Equal(dec("7000")) || shared.TrxCount != 1 {
		t.Errorf("shared = %+v", shared)
	}
	if !got.MyTotal.Equal(dec("10000")) || !got.SharedTotal.Equal(dec("7000")) || !got.GrandTotal.Equal(dec("17000")) {
		t.Errorf("totals = %s + %s = %s", got.MyTotal, got.SharedTotal, got.GrandTotal)
	}
}

func TestVisibleWallets(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice01")
	mustUser(t, s, "bob0001")
	mustUser(t, s, "dave001")
	mustPartners(t, s, "alice01", "bob0001")
	// dave is only in a group of his own
	mustPartners(t, s, "dave001")

	mustWallet(t, s, "alice01", models.WalletCash, "alice cash", false)
	mustWallet(t, s, "bob0001", models.WalletCash, "bob shared", true)
	mustWallet(t, s, "dave001", models.WalletCash, "dave shared", true)

	got, err := s.VisibleWallets(ctx, "alice01")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Origin != OriginMine || got[1].Origin != OriginShared || got[1].WalletName != "bob shared" {
		t.Errorf("visible = %+v", got)
	}

	cards, err := s.VisibleWallets(ctx, "alice01", models.WalletCreditCard)
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 0 {
		t.Errorf("credit cards = %+v", cards)
	}
}

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"
	"github.com/shopspring/decimal"
)

func TestCreateTransactionRequiresOwnedWallet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice01")
	mustUser(t, s, "bob0001")
	bobs := mustWallet(t, s, "bob0001", models.WalletCash, "bob cash", false)
	deleted := mustWallet(t, s, "alice01", models.WalletCash, "old", false)
	if err := s.DeleteWallet(ctx, "alice01", deleted.ID); err != nil {
		t.Fatal(err)
	}

	inputs := []TransactionInput{
		{WalletID: bobs.ID, Type: models.TrxExpense, TrxDate: "2025-03-01", Amount: dec("1000"), CategoryCode: "FOOD"},
		// other fields invalid too: the wallet check still wins
		{WalletID: bobs.ID, Type: "GIFT", TrxDate: "yesterday", Amount: dec("-1")},
		{WalletID: deleted.ID, Type: models.TrxExpense, TrxDate: "2025-03-01", Amount: dec("1000"), CategoryCode: "FOOD"},
		{WalletID: 9999, Type: models.TrxExpense, TrxDate: "2025-03-01", Amount: dec("1000"), CategoryCode: "FOOD"},
	}
	for i, in := range inputs {
		_, err := s.CreateTransaction(ctx, "alice01", in)
		var verr *util.ValidationError
		if !errors.As(err, &verr) || verr.Field != "wlt_id" {
			t.Errorf("input %d: err = %v, want wlt_id validation error", i, err)
		}
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice01")
	w := mustWallet(t, s, "alice01", models.WalletCash, "cash", false)

	valid := TransactionInput{WalletID: w.ID, Type: models.TrxExpense, TrxDate: "2025-03-01", Amount: dec("1000"), CategoryCode: "FOOD"}
	tests := []struct {
		field  string
		mutate func(*TransactionInput)
	}{
		{"trx_type", func(in *TransactionInput) { in.Type = "GIFT" }},
		{"trx_date", func(in *TransactionInput) { in.TrxDate = "2025/03/01" }},
		{"amount", func(in *TransactionInput) { in.Amount = decimal.Zero }},
		{"category_cd", func(in *TransactionInput) { in.CategoryCode = "" }},
		{"installment_months", func(in *TransactionInput) { in.Type = models.TrxIncome; in.InstallmentMonths = 3 }},
	}
	for _, tt := range tests {
		in := valid
		tt.mutate(&in)
		_, err := s.CreateTransaction(ctx, "alice01", in)
		var verr *util.ValidationError
		if !errors.As(err, &verr) || verr.Field != tt.field {
			t.Errorf("%s: err = %v", tt.field, err)
		}
	}
}

func TestCreateTransaction(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice01")
	w := mustWallet(t, s, "alice01", models.WalletCheckCard, "check", false)

	memo := " lunch "
	rows, err := s.CreateTransaction(ctx, "alice01", TransactionInput{
		WalletID:     w.ID,
		Type:         "expense",
		TrxDate:      "2025-03-01",
		Amount:       dec("12000.50"),
		CategoryCode: "FOOD",
		Memo:         &memo,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	got := rows[0]
	if len(got.ID) != 26 {
		t.Errorf("trx_id = %q, want a ULID", got.ID)
	}
	if got.Type != models.TrxExpense || !got.Amount.Equal(dec("12000.5")) || got.WalletName != "check" {
		t.Errorf("row = %+v", got)
	}
	if got.CategoryName == nil || *got.CategoryName != "Food" {
		t.Errorf("category_nm = %v", got.CategoryName)
	}
	if got.Memo == nil || *got.Memo != "lunch" {
		t.Errorf("memo = %v", got.Memo)
	}
	if got.IsInstallment != models.No || got.InstallmentMonths != nil || got.UseYN != models.Yes {
		t.Errorf("installment defaults = %+v", got.Transaction)
	}

	detail, err := s.GetTransaction(ctx, "alice01", got.ID)
	if err != nil {
		t.Fatal(err)
	}
	if detail.ID != got.ID {
		t.Errorf("detail id = %s", detail.ID)
	}
	if _, err := s.GetTransaction(ctx, "alice01", "missing"); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("missing: err = %v", err)
	}
}

func TestCreateTransactionInstallments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice01")
	w := mustWallet(t, s, "alice01", models.WalletCreditCard, "visa", false)

	rows, err := s.CreateTransaction(ctx, "alice01", TransactionInput{
		WalletID:          w.ID,
		Type:              models.TrxExpense,
		TrxDate:           "2025-01-31",
		Amount:            dec("100000"),
		CategoryCode:      "SHOPPING",
		InstallmentMonths: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	wantDates := []string{"2025-01-31", "2025-02-28", "2025-03-31"}
	wantAmounts := []string{"33333.34", "33333.33", "33333.33"}
	total := decimal.Zero
	for i, r := range rows {
		if r.TrxDate != wantDates[i] || !r.Amount.Equal(dec(wantAmounts[i])) {
			t.Errorf("row %d = %s %s, want %s %s", i, r.TrxDate, r.Amount, wantDates[i], wantAmounts[i])
		}
		if r.InstallmentSeq == nil || *r.InstallmentSeq != i+1 || r.InstallmentMonths == nil || *r.InstallmentMonths != 3 {
			t.Errorf("row %d installment fields = %v/%v", i, r.InstallmentSeq, r.InstallmentMonths)
		}
		if r.InstallmentGroupID == nil || *r.InstallmentGroupID != *rows[0].InstallmentGroupID {
			t.Errorf("row %d group = %v", i, r.InstallmentGroupID)
		}
		total = total.Add(r.Amount)
	}
	if !total.Equal(dec("100000")) {
		t.Errorf("sum of installments = %s", total)
	}
}

func TestListAndDeleteTransactions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustUser(t, s, "alice01")
	cash := mustWallet(t, s, "alice01", models.WalletCash, "cash", false)
	card := mustWallet(t, s, "alice01", models.WalletCreditCard, "card", false)

	a := mustTrx(t, s, "alice01", cash.ID, models.TrxExpense, "2025-03-01", "1000", "FOOD")
	b := mustTrx(t, s, "alice01", card.ID, models.TrxExpense, "2025-03-05", "2000", "CAFE")
	c := mustTrx(t, s, "alice01", cash.ID, models.TrxIncome, "2025-03-03", "50000", "SALARY")
	mustTrx(t, s, "alice01", cash.ID, models.TrxExpense, "2025-04-01", "3000", "FOOD")

	list, err := s.ListTransactions(ctx, TransactionFilter{UserID: "alice01", StartDate: "2025-03-01", EndDate: "2025-03-31"})
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, r := range list {
		ids = append(ids, r.ID)
	}
	if want := []string{b.ID, c.ID, a.ID}; len(ids) != 3 || ids[0] != want[0] || ids[1] != want[1] || ids[2] != want[2] {
		t.Errorf("order = %v, want %v", ids, want)
	}

	filtered, err := s.ListTransactions(ctx, TransactionFilter{UserID: "alice01", Type: models.TrxExpense, WalletID: cash.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 2 {
		t.Errorf("cash expenses = %d, want 2", len(filtered))
	}

	if err := s.DeleteTransaction(ctx, "alice01", a.ID); err != nil {
		t.Fatal(err)
	}
	active, err := s.ListTransactions(ctx, TransactionFilter{UserID: "alice01", UseYN: models.Yes})
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 3 {
		t.Errorf("active = %d, want 3", len(active))
	}
	deleted, err := s.GetTransaction(ctx, "alice01", a.ID)
	if err != nil || deleted.UseYN != models.No {
		t.Errorf("deleted detail = %+v, %v", deleted, err)
	}

	if _, err := s.ListTransactions(ctx, TransactionFilter{UserID: "alice01", StartDate: "March"}); err == nil {
		t.Error("expected error for a bad start_date")
	}
}

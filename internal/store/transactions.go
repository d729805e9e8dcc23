package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maximum number of monthly rows an installment purchase is split into
const maxInstallmentMonths = 60

// TransactionView is a transaction joined with wallet and category names.
type TransactionView struct {
	models.Transaction
	WalletName   string  `gorm:"column:wlt_name" json:"wlt_name"`
	WalletType   string  `gorm:"column:wlt_type" json:"wlt_type"`
	CategoryName *string `gorm:"column:category_nm" json:"category_nm"`
}

const transactionColumns = `t.*, w.wlt_name, w.wlt_type,
	(SELECT c.cd_nm FROM common_codes c WHERE c.grp_cd = 'CATEGORY' AND c.cd = t.category_cd) AS category_nm`

// TransactionFilter narrows ListTransactions. UserID is required; empty
// fields are ignored.
type TransactionFilter struct {
	UserID       string
	Type         string
	StartDate    string
	EndDate      string
	WalletID     uint64
	CategoryCode string
	IsFixed      models.YN
	UseYN        models.YN
}

func (f TransactionFilter) validate() error {
	if f.Type != "" && f.Type != models.TrxIncome && f.Type != models.TrxExpense {
		return util.Invalid("trx_type", "trx_type must be INCOME or EXPENSE")
	}
	if f.StartDate != "" {
		if err := util.ValidateDate("start_date", f.StartDate); err != nil {
			return err
		}
	}
	if f.EndDate != "" {
		if err := util.ValidateDate("end_date", f.EndDate); err != nil {
			return err
		}
	}
	if f.IsFixed != "" && !f.IsFixed.Valid() {
		return util.Invalid("is_fixed", "is_fixed must be Y or N")
	}
	if f.UseYN != "" && !f.UseYN.Valid() {
		return util.Invalid("use_yn", "use_yn must be Y or N")
	}
	return nil
}

func (s *Store) transactions(ctx context.Context) *gorm.DB {
	return s.conn(ctx).Table("transactions t").
		Select(transactionColumns).
		Joins("JOIN wallets w ON w.wlt_id = t.wlt_id")
}

// ListTransactions returns the user's transactions, newest date first.
func (s *Store) ListTransactions(ctx context.Context, f TransactionFilter) ([]TransactionView, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	q := s.transactions(ctx).Where("t.usr_id = ?", f.UserID)
	if f.Type != "" {
		q = q.Where("t.trx_type = ?", f.Type)
	}
	if f.StartDate != "" {
		q = q.Where("t.trx_date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("t.trx_date <= ?", f.EndDate)
	}
	if f.WalletID != 0 {
		q = q.Where("t.wlt_id = ?", f.WalletID)
	}
	if f.CategoryCode != "" {
		q = q.Where("t.category_cd = ?", f.CategoryCode)
	}
	if f.IsFixed != "" {
		q = q.Where("t.is_fixed = ?", f.IsFixed)
	}
	if f.UseYN != "" {
		q = q.Where("t.use_yn = ?", f.UseYN)
	}

	rows := []TransactionView{}
	if err := q.Order("t.trx_date DESC, t.created_at DESC, t.trx_id DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return rows, nil
}

// GetTransaction returns one of the user's transactions, active or not.
func (s *Store) GetTransaction(ctx context.Context, userID, id string) (*TransactionView, error) {
	var rows []TransactionView
	err := s.transactions(ctx).
		Where("t.trx_id = ? AND t.usr_id = ?", id, userID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if len(rows) == 0 {
		return nil, util.NotFound("transaction")
	}
	return &rows[0], nil
}

// TransactionInput is the payload for a new transaction. InstallmentMonths
// of 2 or more splits an expense into monthly rows.
type TransactionInput struct {
	WalletID          uint64
	Type              string
	TrxDate           string
	Amount            decimal.Decimal
	CategoryCode      string
	Memo              *string
	IsFixed           models.YN
	InstallmentMonths int
}

func (in TransactionInput) validate() error {
	if in.Type != models.TrxIncome && in.Type != models.TrxExpense {
		return util.Invalid("trx_type", "trx_type must be INCOME or EXPENSE")
	}
	if err := util.ValidateDate("trx_date", in.TrxDate); err != nil {
		return err
	}
	if err := util.ValidateAmount(in.Amount); err != nil {
		return err
	}
	if err := util.ValidateCode("category_cd", in.CategoryCode); err != nil {
		return err
	}
	if in.IsFixed != "" && !in.IsFixed.Valid() {
		return util.Invalid("is_fixed", "is_fixed must be Y or N")
	}
	if in.Memo != nil && len([]rune(*in.Memo)) > 255 {
		return util.Invalid("memo", "memo too long, max 255 characters")
	}
	if in.InstallmentMonths < 0 || in.InstallmentMonths > maxInstallmentMonths {
		return util.Invalid("installment_months", "installment_months must be between 0 and %d", maxInstallmentMonths)
	}
	if in.InstallmentMonths >= 2 && in.Type != models.TrxExpense {
		return util.Invalid("installment_months", "only expenses can be paid in installments")
	}
	return nil
}

// CreateTransaction records a transaction on one of the user's active
// wallets. The wallet is checked before any other field. The inserted
// rows are returned in installment order.
func (s *Store) CreateTransaction(ctx context.Context, userID string, in TransactionInput) ([]TransactionView, error) {
	if _, err := activeWallet(s.conn(ctx), userID, in.WalletID); err != nil {
		return nil, err
	}

	in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
	in.CategoryCode = strings.TrimSpace(in.CategoryCode)
	in.Memo = trimmed(in.Memo)
	if err := in.validate(); err != nil {
		return nil, err
	}

	rows, err := buildTransactions(userID, in)
	if err != nil {
		return nil, err
	}
	if err := s.conn(ctx).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	created := []TransactionView{}
	err = s.transactions(ctx).
		Where("t.trx_id IN ?", ids).
		Order("t.trx_date, t.trx_id").
		Scan(&created).Error
	if err != nil {
		return nil, fmt.Errorf("load created transaction: %w", err)
	}
	return created, nil
}

// buildTransactions expands in into one row, or one row per installment
// month with the rounding remainder on the first.
func buildTransactions(userID string, in TransactionInput) ([]models.Transaction, error) {
	base := models.Transaction{
		WalletID:      in.WalletID,
		UserID:        userID,
		Type:          in.Type,
		TrxDate:       in.TrxDate,
		Amount:        in.Amount,
		CategoryCode:  in.CategoryCode,
		Memo:          in.Memo,
		IsFixed:       orDefault(in.IsFixed, models.No),
		IsInstallment: models.No,
		UseYN:         models.Yes,
	}
	if in.InstallmentMonths < 2 {
		base.ID = ulid.Make().String()
		return []models.Transaction{base}, nil
	}

	start, err := time.Parse(util.DateLayout, in.TrxDate)
	if err != nil {
		return nil, util.Invalid("trx_date", "trx_date must be YYYY-MM-DD")
	}

	months := in.InstallmentMonths
	n := decimal.NewFromInt(int64(months))
	per := in.Amount.Div(n).Truncate(2)
	if !per.IsPositive() {
		return nil, util.Invalid("installment_months", "amount too small to split into %d installments", months)
	}
	first := in.Amount.Sub(per.Mul(decimal.NewFromInt(int64(months - 1))))
	groupID := uuid.NewString()

	rows := make([]models.Transaction, months)
	for i := range rows {
		seq := i + 1
		row := base
		row.ID = ulid.Make().String()
		row.TrxDate = util.AddMonthsClamped(start, i).Format(util.DateLayout)
		row.Amount = per
		if i == 0 {
			row.Amount = first
		}
		row.IsInstallment = models.Yes
		row.InstallmentMonths = &months
		row.InstallmentSeq = &seq
		row.InstallmentGroupID = &groupID
		rows[i] = row
	}
	return rows, nil
}

// DeleteTransaction soft-deletes one of the user's transactions.
func (s *Store) DeleteTransaction(ctx context.Context, userID, id string) error {
	if _, err := s.GetTransaction(ctx, userID, id); err != nil {
		return err
	}
	err := s.conn(ctx).Model(&models.Transaction{}).
		Where("trx_id = ?", id).
		Update("use_yn", models.No).Error
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

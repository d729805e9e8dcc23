package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TrxIncome  = "INCOME"
	TrxExpense = "EXPENSE"
)

// Transaction is a single income or expense record against a wallet.
// TrxDate is stored as YYYY-MM-DD.
type Transaction struct {
	ID                 string          `gorm:"column:trx_id;primaryKey;size:26" json:"trx_id"`
	WalletID           uint64          `gorm:"column:wlt_id;index;not null" json:"wlt_id"`
	UserID             string          `gorm:"column:usr_id;size:20;index:idx_trx_user_date,priority:1;not null" json:"usr_id"`
	Type               string          `gorm:"column:trx_type;size:10;not null" json:"trx_type"`
	TrxDate            string          `gorm:"column:trx_date;size:10;index:idx_trx_user_date,priority:2;not null" json:"trx_date"`
	Amount             decimal.Decimal `gorm:"column:amount;type:decimal(15,2);not null" json:"amount"`
	CategoryCode       string          `gorm:"column:category_cd;size:30;not null" json:"category_cd"`
	Memo               *string         `gorm:"column:memo;size:255" json:"memo"`
	IsFixed            YN              `gorm:"column:is_fixed;size:1;not null;default:N" json:"is_fixed"`
	IsInstallment      YN              `gorm:"column:is_installment;size:1;not null;default:N" json:"is_installment"`
	InstallmentMonths  *int            `gorm:"column:installment_months" json:"installment_months"`
	InstallmentSeq     *int            `gorm:"column:installment_seq" json:"installment_seq"`
	InstallmentGroupID *string         `gorm:"column:installment_group_id;size:36;index" json:"installment_group_id"`
	UseYN              YN              `gorm:"column:use_yn;size:1;not null;default:Y" json:"use_yn"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	Wallet Wallet `gorm:"foreignKey:WalletID;references:ID" json:"-"`
}

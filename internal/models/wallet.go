package models

import "time"

const (
	WalletCash       = "CASH"
	WalletCheckCard  = "CHECK_CARD"
	WalletCreditCard = "CREDIT_CARD"
	WalletAccount    = "ACCOUNT"
	WalletSimplePay  = "SIMPLE_PAY"
)

// WalletTypes lists the accepted wlt_type values.
var WalletTypes = []string{WalletCash, WalletCheckCard, WalletCreditCard, WalletAccount, WalletSimplePay}

// IsWalletType reports whether t is a known wallet type.
func IsWalletType(t string) bool {
	for _, wt := range WalletTypes {
		if wt == t {
			return true
		}
	}
	return false
}

// Wallet is a payment source owned by one user. Deletion flips UseYN.
type Wallet struct {
	ID         uint64    `gorm:"column:wlt_id;primaryKey;autoIncrement" json:"wlt_id"`
	UserID     string    `gorm:"column:usr_id;size:20;index;not null" json:"usr_id"`
	Type       string    `gorm:"column:wlt_type;size:20;index;not null" json:"wlt_type"`
	Name       string    `gorm:"column:wlt_name;size:100;not null" json:"wlt_name"`
	BankCode   *string   `gorm:"column:bank_cd;size:30" json:"bank_cd"`
	CardNumber *string   `gorm:"column:card_number;size:30" json:"card_number"`
	IsDefault  YN        `gorm:"column:is_default;size:1;not null;default:N" json:"is_default"`
	UseYN      YN        `gorm:"column:use_yn;size:1;index;not null;default:Y" json:"use_yn"`
	ShareYN    YN        `gorm:"column:share_yn;size:1;not null;default:N" json:"share_yn"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

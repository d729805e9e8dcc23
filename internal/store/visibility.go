package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Origin tags whether a visible wallet or transaction is the user's own
// or comes from a share-group partner.
const (
	OriginMine   = "MINE"
	OriginShared = "SHARED"
)

// VisibleWallet is a wallet the user may see: their own active wallets
// and the active shared wallets of accepted share-group partners.
type VisibleWallet struct {
	WalletID      uint64 `gorm:"column:wlt_id" json:"wlt_id"`
	OwnerID       string `gorm:"column:usr_id" json:"usr_id"`
	OwnerNickname string `gorm:"column:owner_nickname" json:"owner_nickname"`
	WalletType    string `gorm:"column:wlt_type" json:"wlt_type"`
	WalletName    string `gorm:"column:wlt_name" json:"wlt_name"`
	Origin        string `gorm:"column:origin" json:"origin"`
}

// VisibleTransaction is an active transaction on a visible wallet.
type VisibleTransaction struct {
	TrxID         string          `gorm:"column:trx_id" json:"trx_id"`
	TrxDate       string          `gorm:"column:trx_date" json:"trx_date"`
	Type          string          `gorm:"column:trx_type" json:"trx_type"`
	Amount        decimal.Decimal `gorm:"column:amount" json:"amount"`
	CategoryCode  string          `gorm:"column:category_cd" json:"category_cd"`
	CategoryName  *string         `gorm:"column:category_nm" json:"category_nm"`
	Memo          *string         `gorm:"column:memo" json:"memo"`
	UserID        string          `gorm:"column:usr_id" json:"usr_id"`
	OwnerNickname string          `gorm:"column:owner_nickname" json:"owner_nickname"`
	WalletID      uint64          `gorm:"column:wlt_id" json:"wlt_id"`
	WalletName    string          `gorm:"column:wlt_name" json:"wlt_name"`
	WalletType    string          `gorm:"column:wlt_type" json:"wlt_type"`
	Origin        string          `gorm:"column:origin" json:"origin"`
}

// VisibilityFilter narrows the visible set. Empty fields are ignored;
// dates are inclusive.
type VisibilityFilter struct {
	WalletTypes []string
	StartDate   string
	EndDate     string
	TrxType     string
}

// partnerSQL selects the users sharing an accepted group with the user.
const partnerSQL = `SELECT p.usr_id FROM share_group_members me
	JOIN share_group_members p ON p.group_id = me.group_id
	WHERE me.usr_id = ? AND me.status = 'ACCEPTED' AND p.status = 'ACCEPTED' AND p.usr_id <> ?`

// visibleWalletsSQL builds the UNION ALL of own and partner wallets.
// Result columns: wlt_id, usr_id, wlt_type, wlt_name, origin.
func visibleWalletsSQL(userID string, walletTypes []string) (string, []interface{}) {
	var typeCond string
	var typeArgs []interface{}
	if len(walletTypes) > 0 {
		typeCond = " AND w.wlt_type IN ?"
		typeArgs = []interface{}{walletTypes}
	}

	var sb strings.Builder
	args := make([]interface{}, 0, 6)

	sb.WriteString(`SELECT w.wlt_id, w.usr_id, w.wlt_type, w.wlt_name, 'MINE' AS origin
	FROM wallets w WHERE w.usr_id = ? AND w.use_yn = 'Y'`)
	args = append(args, userID)
	sb.WriteString(typeCond)
	args = append(args, typeArgs...)

	sb.WriteString(`
	UNION ALL
	SELECT w.wlt_id, w.usr_id, w.wlt_type, w.wlt_name, 'SHARED' AS origin
	FROM wallets w WHERE w.use_yn = 'Y' AND w.share_yn = 'Y' AND w.usr_id IN (` + partnerSQL + `)`)
	args = append(args, userID, userID)
	sb.WriteString(typeCond)
	args = append(args, typeArgs...)

	return sb.String(), args
}

// ownershipCond keeps the owner's rows on MINE wallets and the partners'
// rows on SHARED wallets.
const ownershipCond = `((v.origin = 'MINE' AND t.usr_id = ?) OR (v.origin = 'SHARED' AND t.usr_id <> ?))`

// visibleTransactionsSQL builds the transaction query over the visible
// wallet set.
func visibleTransactionsSQL(userID string, f VisibilityFilter) (string, []interface{}) {
	walletsSQL, args := visibleWalletsSQL(userID, f.WalletTypes)

	var sb strings.Builder
	sb.WriteString(`SELECT t.trx_id, t.trx_date, t.trx_type, t.amount, t.category_cd,
	(SELECT c.cd_nm FROM common_codes c WHERE c.grp_cd = 'CATEGORY' AND c.cd = t.category_cd) AS category_nm,
	t.memo, t.usr_id, u.nickname AS owner_nickname, v.wlt_id, v.wlt_name, v.wlt_type, v.origin, t.created_at
	FROM transactions t
	JOIN (`)
	sb.WriteString(walletsSQL)
	sb.WriteString(`) v ON v.wlt_id = t.wlt_id
	JOIN users u ON u.usr_id = t.usr_id
	WHERE t.use_yn = 'Y' AND `)
	sb.WriteString(ownershipCond)
	args = append(args, userID, userID)

	if f.StartDate != "" {
		sb.WriteString(" AND t.trx_date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		sb.WriteString(" AND t.trx_date <= ?")
		args = append(args, f.EndDate)
	}
	if f.TrxType != "" {
		sb.WriteString(" AND t.trx_type = ?")
		args = append(args, f.TrxType)
	}
	return sb.String(), args
}

// VisibleWallets lists the wallets the user may see, own wallets first.
func (s *Store) VisibleWallets(ctx context.Context, userID string, walletTypes ...string) ([]VisibleWallet, error) {
	walletsSQL, args := visibleWalletsSQL(userID, walletTypes)
	wallets := []VisibleWallet{}
	err := s.conn(ctx).Raw(`SELECT v.*, u.nickname AS owner_nickname FROM (`+walletsSQL+`) v
	JOIN users u ON u.usr_id = v.usr_id
	ORDER BY CASE v.origin WHEN 'MINE' THEN 0 ELSE 1 END, v.wlt_id`, args...).Scan(&wallets).Error
	if err != nil {
		return nil, fmt.Errorf("visible wallets: %w", err)
	}
	return wallets, nil
}

// VisibleTransactions lists the transactions the user may see, ordered by
// date then creation time.
func (s *Store) VisibleTransactions(ctx context.Context, userID string, f VisibilityFilter) ([]VisibleTransaction, error) {
	trxSQL, args := visibleTransactionsSQL(userID, f)
	rows := []VisibleTransaction{}
	err := s.conn(ctx).Raw(trxSQL+" ORDER BY t.trx_date, t.created_at, t.trx_id", args...).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("visible transactions: %w", err)
	}
	return rows, nil
}

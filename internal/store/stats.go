package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"
	"github.com/shopspring/decimal"
)

// ---------- monthly expenses by category ----------

// CategoryAmount is one cell of the month x category grid.
type CategoryAmount struct {
	CategoryName string          `json:"category_nm"`
	Amount       decimal.Decimal `json:"amount"`
}

// MonthlyCategoryRow is one month of the category grid.
type MonthlyCategoryRow struct {
	Month      int                       `json:"month"`
	Categories map[string]CategoryAmount `json:"categories"`
	Total      decimal.Decimal           `json:"total"`
}

// MonthlyExpenses builds the 12 x category grid of the user's expenses in
// year. Categories are those the user has ever used for an expense;
// months without spending report zero.
func (s *Store) MonthlyExpenses(ctx context.Context, userID string, year int) ([]MonthlyCategoryRow, error) {
	db := s.conn(ctx)

	var categories []struct {
		Code string  `gorm:"column:category_cd"`
		Name *string `gorm:"column:category_nm"`
	}
	err := db.Raw(`SELECT u.category_cd,
		(SELECT c.cd_nm FROM common_codes c WHERE c.grp_cd = 'CATEGORY' AND c.cd = u.category_cd) AS category_nm
		FROM (SELECT DISTINCT t.category_cd FROM transactions t
			WHERE t.usr_id = ? AND t.trx_type = 'EXPENSE' AND t.use_yn = 'Y') u
		ORDER BY u.category_cd`, userID).Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("expense categories: %w", err)
	}

	var cells []struct {
		Month        string          `gorm:"column:mm"`
		CategoryCode string          `gorm:"column:category_cd"`
		Amount       decimal.Decimal `gorm:"column:amount"`
	}
	err = db.Raw(`SELECT substr(t.trx_date, 6, 2) AS mm, t.category_cd, SUM(t.amount) AS amount
		FROM transactions t
		WHERE t.usr_id = ? AND t.trx_type = 'EXPENSE' AND t.use_yn = 'Y'
			AND t.trx_date >= ? AND t.trx_date <= ?
		GROUP BY substr(t.trx_date, 6, 2), t.category_cd`,
		userID, fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)).Scan(&cells).Error
	if err != nil {
		return nil, fmt.Errorf("monthly expenses: %w", err)
	}

	rows := make([]MonthlyCategoryRow, 12)
	for i := range rows {
		rows[i] = MonthlyCategoryRow{
			Month:      i + 1,
			Categories: make(map[string]CategoryAmount, len(categories)),
			Total:      decimal.Zero,
		}
		for _, c := range categories {
			name := c.Code
			if c.Name != nil {
				name = *c.Name
			}
			rows[i].Categories[c.Code] = CategoryAmount{CategoryName: name, Amount: decimal.Zero}
		}
	}
	for _, cell := range cells {
		m, err := strconv.Atoi(cell.Month)
		if err != nil || m < 1 || m > 12 {
			continue
		}
		row := &rows[m-1]
		cat := row.Categories[cell.CategoryCode]
		cat.Amount = cell.Amount.Round(2)
		row.Categories[cell.CategoryCode] = cat
		row.Total = row.Total.Add(cat.Amount)
	}
	return rows, nil
}

// ---------- monthly expenses by wallet ----------

// WalletExpenseItem is one expense row under a wallet.
type WalletExpenseItem struct {
	TrxID        string          `json:"trx_id"`
	Day          int             `json:"day"`
	Memo         *string         `json:"memo"`
	CategoryCode string          `json:"category_cd"`
	CategoryName *string         `json:"category_nm"`
	Amount       decimal.Decimal `json:"amount"`
}

// WalletMonthlyExpenses is one wallet with its expenses of the month.
type WalletMonthlyExpenses struct {
	WalletID     uint64              `json:"wlt_id"`
	WalletName   string              `json:"wlt_name"`
	WalletType   string              `json:"wlt_type"`
	Transactions []WalletExpenseItem `json:"transactions"`
	Total        decimal.Decimal     `json:"total"`
}

// walletTypeFilter expands a wallet type filter; CASH also covers check
// cards.
func walletTypeFilter(walletType string) []string {
	switch walletType {
	case "":
		return nil
	case models.WalletCash:
		return []string{models.WalletCash, models.WalletCheckCard}
	default:
		return []string{walletType}
	}
}

// MonthlyByWallets lists every active wallet of the user matching
// walletType, each with its expenses for the month, even when empty.
func (s *Store) MonthlyByWallets(ctx context.Context, userID string, year, month int, walletType string) ([]WalletMonthlyExpenses, error) {
	if month < 1 || month > 12 {
		return nil, util.Invalid("month", "month must be between 1 and 12")
	}
	if walletType != "" && !models.IsWalletType(walletType) {
		return nil, util.Invalid("wlt_type", "unknown wlt_type %q", walletType)
	}
	db := s.conn(ctx)

	var wallets []models.Wallet
	q := db.Where("usr_id = ? AND use_yn = ?", userID, models.Yes)
	if types := walletTypeFilter(walletType); len(types) > 0 {
		q = q.Where("wlt_type IN ?", types)
	}
	if err := q.Order("wlt_id").Find(&wallets).Error; err != nil {
		return nil, fmt.Errorf("wallets: %w", err)
	}

	result := make([]WalletMonthlyExpenses, len(wallets))
	index := make(map[uint64]int, len(wallets))
	ids := make([]uint64, len(wallets))
	for i, w := range wallets {
		result[i] = WalletMonthlyExpenses{
			WalletID:     w.ID,
			WalletName:   w.Name,
			WalletType:   w.Type,
			Transactions: []WalletExpenseItem{},
			Total:        decimal.Zero,
		}
		index[w.ID] = i
		ids[i] = w.ID
	}
	if len(wallets) == 0 {
		return result, nil
	}

	first, last := util.MonthRange(year, month)
	var rows []struct {
		TrxID        string          `gorm:"column:trx_id"`
		WalletID     uint64          `gorm:"column:wlt_id"`
		TrxDate      string          `gorm:"column:trx_date"`
		Memo         *string         `gorm:"column:memo"`
		CategoryCode string          `gorm:"column:category_cd"`
		CategoryName *string         `gorm:"column:category_nm"`
		Amount       decimal.Decimal `gorm:"column:amount"`
	}
	err := db.Raw(`SELECT t.trx_id, t.wlt_id, t.trx_date, t.memo, t.category_cd,
		(SELECT c.cd_nm FROM common_codes c WHERE c.grp_cd = 'CATEGORY' AND c.cd = t.category_cd) AS category_nm,
		t.amount
		FROM transactions t
		WHERE t.usr_id = ? AND t.wlt_id IN ? AND t.trx_type = 'EXPENSE' AND t.use_yn = 'Y'
			AND t.trx_date >= ? AND t.trx_date <= ?
		ORDER BY t.trx_date, t.created_at, t.trx_id`, userID, ids, first, last).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("wallet expenses: %w", err)
	}

	for _, r := range rows {
		w := &result[index[r.WalletID]]
		day, _ := strconv.Atoi(r.TrxDate[len(r.TrxDate)-2:])
		w.Transactions = append(w.Transactions, WalletExpenseItem{
			TrxID:        r.TrxID,
			Day:          day,
			Memo:         r.Memo,
			CategoryCode: r.CategoryCode,
			CategoryName: r.CategoryName,
			Amount:       r.Amount,
		})
		w.Total = w.Total.Add(r.Amount)
	}
	return result, nil
}

// ---------- weekly trend ----------

// DailyPair compares one weekday of the current and the previous week.
type DailyPair struct {
	DayOfWeek    int             `json:"dayOfWeek"`
	Date         string          `json:"date"`
	PreviousDate string          `json:"previousDate"`
	Current      decimal.Decimal `json:"current"`
	Previous     decimal.Decimal `json:"previous"`
}

// WeeklyExpenses is the week-over-month-ago comparison.
type WeeklyExpenses struct {
	CurrentWeekStart  string          `json:"currentWeekStart"`
	PreviousWeekStart string          `json:"previousWeekStart"`
	Daily             []DailyPair     `json:"daily"`
	CurrentWeekTotal  decimal.Decimal `json:"currentWeekTotal"`
	PreviousWeekTotal decimal.Decimal `json:"previousWeekTotal"`
	ChangeRate        float64         `json:"changeRate"`
}

// WeeklyExpenses compares the user's daily expenses in the Sunday-aligned
// week containing ref with the week containing the same date one month
// earlier.
func (s *Store) WeeklyExpenses(ctx context.Context, userID string, ref time.Time) (*WeeklyExpenses, error) {
	curStart := util.WeekStart(ref)
	prevStart := util.WeekStart(util.AddMonthsClamped(ref, -1))

	cur, err := s.dailyExpenses(ctx, userID, curStart)
	if err != nil {
		return nil, err
	}
	prev, err := s.dailyExpenses(ctx, userID, prevStart)
	if err != nil {
		return nil, err
	}

	out := &WeeklyExpenses{
		CurrentWeekStart:  curStart.Format(util.DateLayout),
		PreviousWeekStart: prevStart.Format(util.DateLayout),
		Daily:             make([]DailyPair, 7),
		CurrentWeekTotal:  decimal.Zero,
		PreviousWeekTotal: decimal.Zero,
	}
	for i := 0; i < 7; i++ {
		c, p := cur[i], prev[i]
		out.Daily[i] = DailyPair{
			DayOfWeek:    i,
			Date:         curStart.AddDate(0, 0, i).Format(util.DateLayout),
			PreviousDate: prevStart.AddDate(0, 0, i).Format(util.DateLayout),
			Current:      c,
			Previous:     p,
		}
		out.CurrentWeekTotal = out.CurrentWeekTotal.Add(c)
		out.PreviousWeekTotal = out.PreviousWeekTotal.Add(p)
	}
	out.ChangeRate = ChangeRate(out.CurrentWeekTotal, out.PreviousWeekTotal)
	return out, nil
}

// ChangeRate returns (current-previous)/previous*100 rounded to two
// places, or 0 when previous is zero.
func ChangeRate(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

// dailyExpenses sums the user's expenses for the 7 days from start.
func (s *Store) dailyExpenses(ctx context.Context, userID string, start time.Time) ([7]decimal.Decimal, error) {
	var out [7]decimal.Decimal
	for i := range out {
		out[i] = decimal.Zero
	}

	var rows []struct {
		TrxDate string          `gorm:"column:trx_date"`
		Amount  decimal.Decimal `gorm:"column:amount"`
	}
	err := s.conn(ctx).Raw(`SELECT t.trx_date, SUM(t.amount) AS amount
		FROM transactions t
		WHERE t.usr_id = ? AND t.trx_type = 'EXPENSE' AND t.use_yn = 'Y'
			AND t.trx_date >= ? AND t.trx_date <= ?
		GROUP BY t.trx_date`,
		userID, start.Format(util.DateLayout), start.AddDate(0, 0, 6).Format(util.DateLayout)).Scan(&rows).Error
	if err != nil {
		return out, fmt.Errorf("daily expenses: %w", err)
	}

	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		index[start.AddDate(0, 0, i).Format(util.DateLayout)] = i
	}
	for _, r := range rows {
		if i, ok := index[r.TrxDate]; ok {
			out[i] = r.Amount.Round(2)
		}
	}
	return out, nil
}

// ---------- credit-card wallet breakdown ----------

// WalletExpenseSummary is a visible credit-card wallet with its period
// expense total.
type WalletExpenseSummary struct {
	WalletID      uint64          `gorm:"column:wlt_id" json:"wlt_id"`
	WalletName    string          `gorm:"column:wlt_name" json:"wlt_name"`
	OwnerID       string          `gorm:"column:usr_id" json:"usr_id"`
	OwnerNickname string          `gorm:"column:owner_nickname" json:"owner_nickname"`
	Origin        string          `gorm:"column:origin" json:"origin"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount" json:"totalAmount"`
	TrxCount      int64           `gorm:"column:trx_count" json:"trxCount"`
}

// WalletExpenseBreakdown splits the summaries into own and shared wallets.
type WalletExpenseBreakdown struct {
	MyWallets     []WalletExpenseSummary `json:"myWallets"`
	SharedWallets []WalletExpenseSummary `json:"sharedWallets"`
	MyTotal       decimal.Decimal        `json:"myTotal"`
	SharedTotal   decimal.Decimal        `json:"sharedTotal"`
	GrandTotal    decimal.Decimal        `json:"grandTotal"`
	StartDate     string                 `json:"startDate"`
	EndDate       string                 `json:"endDate"`
}

// WalletExpenses sums the month's expenses on every credit-card wallet
// visible to the user, including wallets without expenses.
func (s *Store) WalletExpenses(ctx context.Context, userID string, year, month int) (*WalletExpenseBreakdown, error) {
	if month < 1 || month > 12 {
		return nil, util.Invalid("month", "month must be between 1 and 12")
	}
	first, last := util.MonthRange(year, month)

	walletsSQL, args := visibleWalletsSQL(userID, []string{models.WalletCreditCard})
	args = append(args, first, last, userID, userID)

	var rows []WalletExpenseSummary
	err := s.conn(ctx).Raw(`SELECT v.wlt_id, v.wlt_name, v.usr_id, u.nickname AS owner_nickname, v.origin,
		COALESCE(SUM(t.amount), 0) AS total_amount, COUNT(t.trx_id) AS trx_count
		FROM (`+walletsSQL+`) v
		JOIN users u ON u.usr_id = v.usr_id
		LEFT JOIN transactions t ON t.wlt_id = v.wlt_id AND t.use_yn = 'Y' AND t.trx_type = 'EXPENSE'
			AND t.trx_date >= ? AND t.trx_date <= ? AND `+ownershipCond+`
		GROUP BY v.wlt_id, v.wlt_name, v.usr_id, u.nickname, v.origin
		ORDER BY CASE v.origin WHEN 'MINE' THEN 0 ELSE 1 END, v.wlt_id`, args...).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("wallet expenses: %w", err)
	}

	out := &WalletExpenseBreakdown{
		MyWallets:     []WalletExpenseSummary{},
		SharedWallets: []WalletExpenseSummary{},
		MyTotal:       decimal.Zero,
		SharedTotal:   decimal.Zero,
		StartDate:     first,
		EndDate:       last,
	}
	for _, r := range rows {
		r.TotalAmount = r.TotalAmount.Round(2)
		if r.Origin == OriginMine {
			out.MyWallets = append(out.MyWallets, r)
			out.MyTotal = out.MyTotal.Add(r.TotalAmount)
		} else {
			out.SharedWallets = append(out.SharedWallets, r)
			out.SharedTotal = out.SharedTotal.Add(r.TotalAmount)
		}
	}
	out.GrandTotal = out.MyTotal.Add(out.SharedTotal)
	return out, nil
}

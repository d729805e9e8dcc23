package store

import (
	"context"
	"fmt"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"
	"github.com/shopspring/decimal"
)

// CalendarEntry is one day of the calendar view.
type CalendarEntry struct {
	Date         string               `json:"date"`
	Day          int                  `json:"day"`
	DayOfWeek    int                  `json:"day_of_week"`
	DayName      string               `json:"day_name"`
	HolidayYN    models.YN            `json:"holiday_yn"`
	HolidayName  string               `json:"holiday_name"`
	Income       decimal.Decimal      `json:"income"`
	Expense      decimal.Decimal      `json:"expense"`
	Transactions []VisibleTransaction `json:"transactions"`
}

type daySums struct {
	TrxDate string          `gorm:"column:trx_date"`
	Income  decimal.Decimal `gorm:"column:income"`
	Expense decimal.Decimal `gorm:"column:expense"`
}

// Calendar returns one entry per day of the month with the income and
// expense sums and the transactions visible to the user.
func (s *Store) Calendar(ctx context.Context, userID string, year, month int) ([]CalendarEntry, error) {
	if month < 1 || month > 12 {
		return nil, util.Invalid("mm", "mm must be between 1 and 12")
	}
	first, last := util.MonthRange(year, month)
	f := VisibilityFilter{StartDate: first, EndDate: last}

	days, err := s.calendarDays(ctx, year, month)
	if err != nil {
		return nil, err
	}

	trxSQL, args := visibleTransactionsSQL(userID, f)
	var sums []daySums
	err = s.conn(ctx).Raw(`SELECT vt.trx_date,
		COALESCE(SUM(CASE WHEN vt.trx_type = 'INCOME' THEN vt.amount ELSE 0 END), 0) AS income,
		COALESCE(SUM(CASE WHEN vt.trx_type = 'EXPENSE' THEN vt.amount ELSE 0 END), 0) AS expense
		FROM (`+trxSQL+`) vt
		GROUP BY vt.trx_date`, args...).Scan(&sums).Error
	if err != nil {
		return nil, fmt.Errorf("calendar sums: %w", err)
	}

	details, err := s.VisibleTransactions(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]VisibleTransaction)
	for _, d := range details {
		byDate[d.TrxDate] = append(byDate[d.TrxDate], d)
	}
	sumByDate := make(map[string]daySums, len(sums))
	for _, sum := range sums {
		sumByDate[sum.TrxDate] = sum
	}

	entries := make([]CalendarEntry, 0, len(days))
	for _, d := range days {
		e := CalendarEntry{
			Date:         d.Date,
			Day:          d.Day,
			DayOfWeek:    d.DayOfWeek,
			DayName:      d.DayName,
			HolidayYN:    d.HolidayYN,
			HolidayName:  d.HolidayName,
			Income:       decimal.Zero,
			Expense:      decimal.Zero,
			Transactions: byDate[d.Date],
		}
		if sum, ok := sumByDate[d.Date]; ok {
			e.Income = sum.Income.Round(2)
			e.Expense = sum.Expense.Round(2)
		}
		if e.Transactions == nil {
			e.Transactions = []VisibleTransaction{}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// calendarDays loads the reference rows of a month, generating any day
// the calendar table is missing.
func (s *Store) calendarDays(ctx context.Context, year, month int) ([]models.CalendarDay, error) {
	var stored []models.CalendarDay
	err := s.conn(ctx).
		Where("year = ? AND month = ?", year, month).
		Order("cal_date").
		Find(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("calendar days: %w", err)
	}

	days := models.CalendarMonth(year, month)
	if len(stored) == len(days) {
		return stored, nil
	}
	byDate := make(map[string]models.CalendarDay, len(stored))
	for _, d := range stored {
		byDate[d.Date] = d
	}
	for i, d := range days {
		if row, ok := byDate[d.Date]; ok {
			days[i] = row
		}
	}
	return days, nil
}

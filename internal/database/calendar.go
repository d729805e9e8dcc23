package database

import (
	"fmt"
	"time"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedCalendar inserts the calendar reference rows for every day of
// fromYear..toYear. Existing dates are left untouched.
func SeedCalendar(db *gorm.DB, fromYear, toYear int) (int64, error) {
	if fromYear > toYear {
		return 0, fmt.Errorf("calendar range %d..%d is empty", fromYear, toYear)
	}

	var inserted int64
	for year := fromYear; year <= toYear; year++ {
		var days []models.CalendarDay
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		for d := start; d.Year() == year; d = d.AddDate(0, 0, 1) {
			days = append(days, models.NewCalendarDay(d))
		}

		res := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(days, 100)
		if res.Error != nil {
			return inserted, fmt.Errorf("seed calendar %d: %w", year, res.Error)
		}
		inserted += res.RowsAffected
	}
	return inserted, nil
}

package models

import "time"

// CalendarDay is one row per date, with weekday and holiday metadata.
type CalendarDay struct {
	Date        string `gorm:"column:cal_date;primaryKey;size:10" json:"date"`
	Year        int    `gorm:"index:idx_cal_ym,priority:1;not null" json:"year"`
	Month       int    `gorm:"index:idx_cal_ym,priority:2;not null" json:"month"`
	Day         int    `gorm:"not null" json:"day"`
	DayOfWeek   int    `gorm:"not null" json:"day_of_week"` // 0 = Sunday
	DayName     string `gorm:"size:3;not null" json:"day_name"`
	HolidayYN   YN     `gorm:"column:holiday_yn;size:1;not null;default:N" json:"holiday_yn"`
	HolidayName string `gorm:"size:50" json:"holiday_name"`
}

// fixed-date public holidays, keyed by MM-DD
var fixedHolidays = map[string]string{
	"01-01": "New Year's Day",
	"03-01": "Independence Movement Day",
	"05-05": "Children's Day",
	"06-06": "Memorial Day",
	"08-15": "Liberation Day",
	"10-03": "National Foundation Day",
	"10-09": "Hangul Day",
	"12-25": "Christmas Day",
}

// NewCalendarDay builds the reference row for t's date.
func NewCalendarDay(t time.Time) CalendarDay {
	day := CalendarDay{
		Date:      t.Format("2006-01-02"),
		Year:      t.Year(),
		Month:     int(t.Month()),
		Day:       t.Day(),
		DayOfWeek: int(t.Weekday()),
		DayName:   t.Weekday().String()[:3],
		HolidayYN: No,
	}
	if name, ok := fixedHolidays[t.Format("01-02")]; ok {
		day.HolidayYN = Yes
		day.HolidayName = name
	}
	return day
}

// CalendarMonth builds the reference rows for every day of a month.
func CalendarMonth(year, month int) []CalendarDay {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	var days []CalendarDay
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, NewCalendarDay(d))
	}
	return days
}

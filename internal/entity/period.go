package entity

import "time"

// MonthCeiling is the last month of year visible on a given day: the current month
// for the current year and December for any other year.
func MonthCeiling(year int, now time.Time) int {
	currentYear, currentMonth := DerivePeriod(now)
	if year == currentYear {
		return currentMonth
	}
	return 12
}

func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

func MonthName(month int) string {
	if !IsValidMonth(month) {
		return ""
	}
	return time.Month(month).String()
}

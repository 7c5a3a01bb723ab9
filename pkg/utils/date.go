package utils

import (
	"time"
)

const monthLayout = "2006-01"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// ParseMonth converte YYYY-MM para o primeiro dia do mês em UTC
func ParseMonth(month string) (time.Time, error) {
	return time.Parse(monthLayout, month)
}

// FirstDayOfMonth trunca a data para o primeiro dia do mês
func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EnumerateMonths lista os meses (YYYY-MM) entre from e to, inclusive
func EnumerateMonths(from, to time.Time) []string {
	if from.After(to) {
		return nil
	}

	months := make([]string, 0)
	current := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !current.After(end) {
		months = append(months, current.Format(monthLayout))
		current = current.AddDate(0, 1, 0)
	}

	return months
}

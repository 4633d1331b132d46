package engine

import (
	"time"

	"rebalancer/types"
)

// NextRebalanceDate returns the next scheduled auto-rebalance date strictly
// after current for the given frequency. The second return is false for
// FrequencyNone (and unknown frequencies), which never auto-rebalance.
func NextRebalanceDate(current time.Time, frequency types.Frequency) (time.Time, bool) {
	current = types.Day(current)
	switch frequency {
	case types.FrequencyDaily:
		return nextDay(current), true
	case types.FrequencyWeekly:
		return nextFriday(current), true
	case types.FrequencyMonthly:
		return nextMonthEnd(current), true
	case types.FrequencyQuarterly:
		return nextQuarterEnd(current), true
	case types.FrequencyAnnually:
		return nextYearEnd(current), true
	}
	return time.Time{}, false
}

func nextDay(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}

// nextFriday returns the Friday strictly after d. A Friday input maps to the
// Friday of the following week.
func nextFriday(d time.Time) time.Time {
	days := (int(time.Friday) - int(d.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return d.AddDate(0, 0, days)
}

// endOfMonth returns the last calendar day of the given month. Month values
// outside 1..12 roll over into adjacent years, which time.Date normalizes.
func endOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// nextMonthEnd returns the last day of d's month, or of the following month
// when d is already on that day.
func nextMonthEnd(d time.Time) time.Time {
	end := endOfMonth(d.Year(), d.Month())
	if !d.Before(end) {
		end = endOfMonth(d.Year(), d.Month()+1)
	}
	return end
}

// nextQuarterEnd returns the last day of d's quarter (quarter-end months
// 3/6/9/12), or of the following quarter when d is on or past that day.
func nextQuarterEnd(d time.Time) time.Time {
	quarter := (int(d.Month())-1)/3 + 1
	end := endOfMonth(d.Year(), time.Month(quarter*3))
	if !d.Before(end) {
		end = endOfMonth(d.Year(), time.Month(quarter*3+3))
	}
	return end
}

// nextYearEnd returns December 31 of d's year, or of the next year when d is
// on or past December 31.
func nextYearEnd(d time.Time) time.Time {
	end := time.Date(d.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	if !d.Before(end) {
		end = end.AddDate(1, 0, 0)
	}
	return end
}

// SPDX-License-Identifier: GPL-3.0-or-later

package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/gridcore/gridcore/pkg/gridvalue"
)

func compileDate(d Descriptor, f *Filter) (func(gridvalue.Value) bool, error) {
	switch d.Op {
	case OpIsToday:
		return dayOffsetBucket(f, 0), nil
	case OpIsYesterday:
		return dayOffsetBucket(f, -1), nil
	case OpIsTomorrow:
		return dayOffsetBucket(f, 1), nil
	case OpIsThisWeek:
		return weekBucket(f, 0), nil
	case OpIsLastWeek:
		return weekBucket(f, -1), nil
	case OpIsNextWeek:
		return weekBucket(f, 1), nil
	case OpIsThisMonth:
		return monthBucket(f, 0), nil
	case OpIsLastMonth:
		return monthBucket(f, -1), nil
	case OpIsNextMonth:
		return monthBucket(f, 1), nil
	case OpIsThisYear:
		return yearBucket(f, 0), nil
	case OpIsLastYear:
		return yearBucket(f, -1), nil
	case OpIsNextYear:
		return yearBucket(f, 1), nil
	case OpIsWeekend:
		return datePredicate(func(t time.Time) bool {
			wd := t.Weekday()
			return wd == time.Saturday || wd == time.Sunday
		}), nil
	case OpIsWeekday:
		return datePredicate(func(t time.Time) bool {
			wd := t.Weekday()
			return wd != time.Saturday && wd != time.Sunday
		}), nil
	case OpRelativeRange:
		return relativeRange(d, f), nil
	case OpQuarter:
		return quarterBucket(d), nil
	case OpSeason:
		return seasonBucket(d), nil
	case OpBefore, OpAfter, OpBetween:
		return dateComparison(d)
	default:
		return dateEquality(d)
	}
}

// dateEquality compares calendar dates; CompareTime opts into exact
// instant comparison. An unparsable operand silently degrades to
// substring matching on the stringified value.
func dateEquality(d Descriptor) (func(gridvalue.Value) bool, error) {
	operand, err := dateparse.ParseAny(strings.TrimSpace(d.Operand))
	if err != nil {
		return substringNumeric(d.Operand), nil
	}
	if d.CompareTime {
		return datePredicate(func(t time.Time) bool { return t.Equal(operand) }), nil
	}
	return datePredicate(func(t time.Time) bool { return sameDay(t, operand) }), nil
}

func dateComparison(d Descriptor) (func(gridvalue.Value) bool, error) {
	lo, err := dateparse.ParseAny(strings.TrimSpace(d.Operand))
	if err != nil {
		return substringNumeric(d.Operand), nil
	}

	switch d.Op {
	case OpBefore:
		return datePredicate(func(t time.Time) bool { return startOfDay(t).Before(startOfDay(lo)) }), nil
	case OpAfter:
		return datePredicate(func(t time.Time) bool { return startOfDay(t).After(startOfDay(lo)) }), nil
	default:
		hi, err := dateparse.ParseAny(strings.TrimSpace(d.Operand2))
		if err != nil {
			return substringNumeric(d.Operand), nil
		}
		if hi.Before(lo) {
			lo, hi = hi, lo
		}
		loDay, hiDay := startOfDay(lo), startOfDay(hi)
		return datePredicate(func(t time.Time) bool {
			day := startOfDay(t)
			return !day.Before(loDay) && !day.After(hiDay)
		}), nil
	}
}

// relativeRange matches calendar days within [now - n*unit, now].
// Both bounds compare at day granularity, like the bucket operators.
func relativeRange(d Descriptor, f *Filter) func(gridvalue.Value) bool {
	n, err := strconv.Atoi(strings.TrimSpace(d.Operand))
	if err != nil || n < 0 {
		return substringNumeric(d.Operand)
	}
	unit := normalize(d.Operand2)

	return datePredicate(func(t time.Time) bool {
		now := f.now()
		var from time.Time
		switch unit {
		case "weeks":
			from = now.AddDate(0, 0, -7*n)
		case "months":
			from = now.AddDate(0, -n, 0)
		case "years":
			from = now.AddDate(-n, 0, 0)
		default: // days
			from = now.AddDate(0, 0, -n)
		}
		day := startOfDay(t)
		return !day.Before(startOfDay(from)) && !day.After(startOfDay(now))
	})
}

func quarterBucket(d Descriptor) func(gridvalue.Value) bool {
	q := normalize(d.Operand)
	return datePredicate(func(t time.Time) bool {
		return q == "q"+strconv.Itoa((int(t.Month())-1)/3+1)
	})
}

// Seasons use fixed month ranges: spring Mar-May, summer Jun-Aug,
// fall Sep-Nov, winter Dec-Feb.
func seasonBucket(d Descriptor) func(gridvalue.Value) bool {
	season := normalize(d.Operand)
	if season == "autumn" {
		season = "fall"
	}
	return datePredicate(func(t time.Time) bool {
		var got string
		switch t.Month() {
		case time.March, time.April, time.May:
			got = "spring"
		case time.June, time.July, time.August:
			got = "summer"
		case time.September, time.October, time.November:
			got = "fall"
		default:
			got = "winter"
		}
		return got == season
	})
}

func dayOffsetBucket(f *Filter, days int) func(gridvalue.Value) bool {
	return datePredicate(func(t time.Time) bool {
		return sameDay(t, f.now().AddDate(0, 0, days))
	})
}

func weekBucket(f *Filter, weeks int) func(gridvalue.Value) bool {
	return datePredicate(func(t time.Time) bool {
		ref := startOfWeek(f.now().AddDate(0, 0, 7*weeks))
		day := startOfDay(t)
		return !day.Before(ref) && day.Before(ref.AddDate(0, 0, 7))
	})
}

func monthBucket(f *Filter, months int) func(gridvalue.Value) bool {
	return datePredicate(func(t time.Time) bool {
		// Month arithmetic, not AddDate: Mar 31 minus one month must
		// land in February, not normalize into March.
		now := f.now()
		want := now.Year()*12 + int(now.Month()) - 1 + months
		return t.Year()*12+int(t.Month())-1 == want
	})
}

func yearBucket(f *Filter, years int) func(gridvalue.Value) bool {
	return datePredicate(func(t time.Time) bool {
		return t.Year() == f.now().Year()+years
	})
}

func datePredicate(pred func(time.Time) bool) func(gridvalue.Value) bool {
	return func(v gridvalue.Value) bool {
		t, ok := v.Time()
		return ok && pred(t)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek truncates to Monday 00:00.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

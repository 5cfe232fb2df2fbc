// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scheduler decides when automatic blog generation fires and runs
// it. Recurrence calculation is pure: IsDue and NextFireTime both take the
// current time explicitly, so they are testable without timers or storage.
package scheduler

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"aidigest/internal/models"
)

// IsDue reports whether the schedule should fire at now. An inactive
// schedule is never due; one that never executed is immediately due. A
// malformed time string degrades toward "generate on the next tick" rather
// than silently toward "never generate".
func IsDue(cfg models.ScheduleConfig, now time.Time) bool {
	if !cfg.IsActive {
		return false
	}
	if cfg.LastExecuted == nil {
		return true
	}
	if _, _, err := parseClock(cfg.Time); err != nil {
		return true
	}
	return !now.Before(NextFireTime(cfg, *cfg.LastExecuted))
}

// NextFireTime computes the next scheduled fire time after last. It is a
// pure function: the same inputs always yield the same timestamp.
//
// Note: monthly schedules do not clamp DayOfMonth to the target month's
// length. time.Date normalizes day 31 in a 30-day month into the first of
// the following month, so such schedules drift forward rather than being
// skipped.
func NextFireTime(cfg models.ScheduleConfig, last time.Time) time.Time {
	h, m, err := parseClock(cfg.Time)
	if err != nil {
		// Unparseable time: treat the schedule as already due.
		return last
	}

	loc := last.Location()

	switch cfg.Frequency {
	case models.FrequencyWeekly:
		return nextWeekly(cfg.DaysOfWeek, last, h, m)

	case models.FrequencyMonthly:
		next := time.Date(last.Year(), last.Month(), cfg.DayOfMonth, h, m, 0, 0, loc)
		if !last.Before(next) {
			next = time.Date(last.Year(), last.Month()+1, cfg.DayOfMonth, h, m, 0, 0, loc)
		}
		return next

	default: // daily
		next := time.Date(last.Year(), last.Month(), last.Day(), h, m, 0, 0, loc)
		if !last.Before(next) {
			next = next.AddDate(0, 0, 1)
		}
		return next
	}
}

// nextWeekly scans forward from last's weekday (inclusive) through the next
// seven days and returns the first configured day whose scheduled time has
// not yet passed.
func nextWeekly(daysOfWeek []int, last time.Time, h, m int) time.Time {
	if len(daysOfWeek) == 0 {
		// Invariant violation (the admin form prevents it); due immediately.
		return last
	}

	days := slices.Clone(daysOfWeek)
	slices.Sort(days)

	for offset := 0; offset <= 7; offset++ {
		cand := time.Date(last.Year(), last.Month(), last.Day()+offset, h, m, 0, 0, last.Location())
		if !slices.Contains(days, int(cand.Weekday())) {
			continue
		}
		if offset == 0 && !last.Before(cand) {
			// Today is configured but the time already passed.
			continue
		}
		return cand
	}

	return last
}

// parseClock parses a "HH:MM" 24-hour time string.
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed time %q", s)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("malformed hour in %q", s)
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("malformed minute in %q", s)
	}

	return hour, minute, nil
}

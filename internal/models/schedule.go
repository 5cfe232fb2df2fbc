// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"
)

// Frequency is how often automatic blog generation fires.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ScheduleConfig is the recurrence configuration governing automatic blog
// generation. It is persisted and replaced as a whole object, with no
// partial updates and no versioning, so concurrent admin edits are
// last-write-wins.
type ScheduleConfig struct {
	IsActive     bool       `json:"is_active"`
	Frequency    Frequency  `json:"frequency"`
	Time         string     `json:"time"`                    // "HH:MM", 24-hour local time
	DaysOfWeek   []int      `json:"days_of_week,omitempty"`  // 0=Sunday..6=Saturday, weekly only
	DayOfMonth   int        `json:"day_of_month,omitempty"`  // 1..31, monthly only
	Categories   []string   `json:"categories"`
	LastExecuted *time.Time `json:"last_executed,omitempty"`
}

// DefaultScheduleConfig returns the configuration created on first load:
// inactive, daily at 09:00, rotating through every known category.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		IsActive:   false,
		Frequency:  FrequencyDaily,
		Time:       "09:00",
		Categories: append([]string(nil), Categories...),
	}
}

// Validate checks the invariants the admin form is supposed to uphold.
func (s ScheduleConfig) Validate() error {
	switch s.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return fmt.Errorf("schedule: unknown frequency %q", s.Frequency)
	}

	if len(s.Categories) == 0 {
		return fmt.Errorf("schedule: at least one category is required")
	}
	for _, c := range s.Categories {
		if !IsKnownCategory(c) {
			return fmt.Errorf("schedule: unknown category %q", c)
		}
	}

	if s.Frequency == FrequencyWeekly {
		if len(s.DaysOfWeek) == 0 {
			return fmt.Errorf("schedule: weekly frequency requires at least one day of week")
		}
		for _, d := range s.DaysOfWeek {
			if d < 0 || d > 6 {
				return fmt.Errorf("schedule: day of week %d out of range 0..6", d)
			}
		}
	}

	if s.Frequency == FrequencyMonthly {
		if s.DayOfMonth < 1 || s.DayOfMonth > 31 {
			return fmt.Errorf("schedule: day of month %d out of range 1..31", s.DayOfMonth)
		}
	}

	return nil
}

// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package humandate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/haminhtu/librarium/pkg/humandate"
)

/*
TestFormat verifies the exact frontend-compatible rendering, including the
absence of leading zeros and the lower-case meridiem suffix.
*/
func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			"afternoon_single_digit_day",
			time.Date(2025, time.July, 5, 15, 4, 0, 0, time.UTC),
			"Sat 5 Jul, 2025, 3:04 p.m.",
		},
		{
			"morning_double_digit_day",
			time.Date(2025, time.December, 25, 9, 30, 0, 0, time.UTC),
			"Thu 25 Dec, 2025, 9:30 a.m.",
		},
		{
			"midnight_renders_twelve",
			time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			"Thu 1 Jan, 2026, 12:00 a.m.",
		},
		{
			"noon_renders_twelve_pm",
			time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC),
			"Tue 3 Mar, 2026, 12:00 p.m.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humandate.Format(tt.in))
		})
	}
}

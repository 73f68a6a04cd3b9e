package budget

import (
	"testing"
	"time"
)

func TestWindowEnd(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		period Period
		want   time.Time
	}{
		{
			name:   "weekly adds seven days",
			start:  time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			period: PeriodWeekly,
			want:   time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "weekly across month boundary",
			start:  time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC),
			period: PeriodWeekly,
			want:   time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "monthly preserves day of month",
			start:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			period: PeriodMonthly,
			want:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "monthly mid-month",
			start:  time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
			period: PeriodMonthly,
			want:   time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "monthly clamps to last day of shorter month",
			start:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			period: PeriodMonthly,
			want:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "monthly clamps to February 28 outside leap years",
			start:  time.Date(2023, 1, 30, 0, 0, 0, 0, time.UTC),
			period: PeriodMonthly,
			want:   time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "monthly across year boundary",
			start:  time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC),
			period: PeriodMonthly,
			want:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "yearly adds one calendar year",
			start:  time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			period: PeriodYearly,
			want:   time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "yearly clamps leap day",
			start:  time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			period: PeriodYearly,
			want:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "unknown period falls back to monthly",
			start:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			period: Period("fortnightly"),
			want:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WindowEnd(tt.start, tt.period); !got.Equal(tt.want) {
				t.Errorf("WindowEnd() = %v, want %v", got, tt.want)
			}
		})
	}
}

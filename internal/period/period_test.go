package period

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Period
		wantErr bool
	}{
		{input: "2024", want: Period{Year: 2024}},
		{input: "2024-Q1", want: Period{Year: 2024, Quarter: 1}},
		{input: " 2023-Q4 ", want: Period{Year: 2023, Quarter: 4}},
		{input: "2024-Q5", wantErr: true},
		{input: "2024-Q0", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	if got := (Period{Year: 2024}).Label(); got != "2024" {
		t.Errorf("expected label 2024, got %s", got)
	}
	if got := (Period{Year: 2024, Quarter: 3}).Label(); got != "2024-Q3" {
		t.Errorf("expected label 2024-Q3, got %s", got)
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		period    Period
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			period:    Period{Year: 2024},
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			period:    Period{Year: 2024, Quarter: 1},
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			period:    Period{Year: 2024, Quarter: 4},
			wantStart: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.period.Label(), func(t *testing.T) {
			start, end := tt.period.Bounds()
			if !start.Equal(tt.wantStart) {
				t.Errorf("expected start %v, got %v", tt.wantStart, start)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("expected end %v, got %v", tt.wantEnd, end)
			}
		})
	}
}

func TestValidateSelectable(t *testing.T) {
	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC) // Q2 2024

	tests := []struct {
		name    string
		period  Period
		wantErr bool
	}{
		{name: "past year quarter", period: Period{Year: 2023, Quarter: 4}},
		{name: "current quarter", period: Period{Year: 2024, Quarter: 2}},
		{name: "earlier quarter this year", period: Period{Year: 2024, Quarter: 1}},
		{name: "future quarter this year", period: Period{Year: 2024, Quarter: 3}, wantErr: true},
		{name: "next year quarter", period: Period{Year: 2025, Quarter: 1}, wantErr: true},
		{name: "whole years always pass", period: Period{Year: 2030}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSelectable(tt.period, now)
			if tt.wantErr {
				if !errors.Is(err, ErrNotSelectable) {
					t.Fatalf("expected ErrNotSelectable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestYears(t *testing.T) {
	periods := []Period{
		{Year: 2024, Quarter: 1},
		{Year: 2024, Quarter: 2},
		{Year: 2023},
		{Year: 2024, Quarter: 3},
	}
	got := Years(periods)
	if len(got) != 2 || got[0] != 2024 || got[1] != 2023 {
		t.Errorf("expected [2024 2023], got %v", got)
	}
}

package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr error
	}{
		{
			name:  "valid date",
			input: "2025-01-15",
			want:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "invalid format",
			input:   "15/01/2025",
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "garbage",
			input:   "soon",
			wantErr: ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDate(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseOptionalDate(t *testing.T) {
	if got := ParseOptionalDate(""); got != nil {
		t.Errorf("ParseOptionalDate(\"\") = %v, want nil", got)
	}
	if got := ParseOptionalDate("not-a-date"); got != nil {
		t.Errorf("ParseOptionalDate(invalid) = %v, want nil", got)
	}
	got := ParseOptionalDate("2025-03-01")
	if got == nil || !got.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseOptionalDate(valid) = %v, want 2025-03-01", got)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "same day",
			a:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "forward",
			a:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
			want: 7,
		},
		{
			name: "backward",
			a:    time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want: -7,
		},
		{
			name: "ignores time of day",
			a:    time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2025, 1, 2, 0, 1, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "across month boundary",
			a:    time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
			want: 6,
		},
		{
			name: "local midnight west of UTC against UTC date",
			a:    time.Date(2026, 8, 29, 0, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)),
			b:    time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "local midnight east of UTC against UTC date",
			a:    time.Date(2026, 8, 29, 0, 0, 0, 0, time.FixedZone("UTC+13", 13*3600)),
			b:    time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2025, 6, 15, 14, 30, 45, 123, time.UTC)
	got := TruncateToDay(in)
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("TruncateToDay(%v) = %v, want %v", in, got, want)
	}
}

func TestMinMaxDate(t *testing.T) {
	a := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if got := MinDate(a, b); !got.Equal(a) {
		t.Errorf("MinDate = %v, want %v", got, a)
	}
	if got := MinDate(b, a); !got.Equal(a) {
		t.Errorf("MinDate reversed = %v, want %v", got, a)
	}
	if got := MaxDate(a, b); !got.Equal(b) {
		t.Errorf("MaxDate = %v, want %v", got, b)
	}
}

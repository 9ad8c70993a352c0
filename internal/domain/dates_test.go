package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseUSDate_Valid(t *testing.T) {
	got, err := ParseUSDate("03/01/2020")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseUSDate_NormalizesPadding(t *testing.T) {
	got, err := ParseUSDate("3/1/2020")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatUSDate(got) != "03/01/2020" {
		t.Errorf("expected zero-padded round trip, got %q", FormatUSDate(got))
	}
}

func TestParseUSDate_Invalid(t *testing.T) {
	for _, bad := range []string{"", "2020-03-01", "13/01/2020", "02/30/2020", "03012020", "garbage"} {
		_, err := ParseUSDate(bad)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("%q: expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestEnumerateDays(t *testing.T) {
	start, _ := ParseUSDate("02/27/2020")
	end, _ := ParseUSDate("03/02/2020")

	days := EnumerateDays(start, end)
	want := []string{"02/27/2020", "02/28/2020", "02/29/2020", "03/01/2020", "03/02/2020"}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d: %v", len(want), len(days), days)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("day %d: expected %q, got %q", i, want[i], days[i])
		}
	}
}

func TestEnumerateDays_SingleDay(t *testing.T) {
	day, _ := ParseUSDate("03/01/2020")

	days := EnumerateDays(day, day)
	if len(days) != 1 || days[0] != "03/01/2020" {
		t.Errorf("expected single day, got %v", days)
	}
}

func TestEnumerateDays_EndBeforeStart(t *testing.T) {
	start, _ := ParseUSDate("03/05/2020")
	end, _ := ParseUSDate("03/01/2020")

	if days := EnumerateDays(start, end); len(days) != 0 {
		t.Errorf("expected no days for inverted range, got %v", days)
	}
}

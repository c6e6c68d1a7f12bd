package dbtime

import (
	"testing"
	"time"
)

func TestParseTod(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:00", "09:00:00", false},
		{" 17:30:15 ", "17:30:15", false},
		{"25:00", "", true},
		{"nine", "", true},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if s := got.Format("15:04:05"); s != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.in, s, tc.want)
		}
	}
}

func TestCombineUsesBusinessLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	date, err := ParseDate("2024-03-04", loc)
	if err != nil {
		t.Fatal(err)
	}
	tod, _ := Parse("09:00")
	got := Combine(date, tod, loc)
	want := time.Date(2024, 3, 4, 2, 0, 0, 0, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("Combine = %v, want %v", got, want)
	}
}

func TestDayBoundsAcrossZone(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 02:00 UTC on the 5th is still the 4th in UTC-5
	start, end := DayBounds(time.Date(2024, 3, 5, 2, 0, 0, 0, time.UTC), loc)
	if got := start.Format(DateLayout); got != "2024-03-04" {
		t.Fatalf("start day = %s", got)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Fatalf("day length = %v", end.Sub(start))
	}
}

func TestStartOfWeekIsSunday(t *testing.T) {
	wed := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	sun := StartOfWeek(wed, time.UTC)
	if sun.Weekday() != time.Sunday || sun.Day() != 3 {
		t.Fatalf("StartOfWeek = %v", sun)
	}
	if !EndOfWeek(wed, time.UTC).Equal(sun.AddDate(0, 0, 7)) {
		t.Fatal("EndOfWeek mismatch")
	}
	if !StartOfWeek(sun, time.UTC).Equal(sun) {
		t.Fatal("Sunday should be its own week start")
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("03/04/2024", time.UTC); err == nil {
		t.Fatal("expected error")
	}
}

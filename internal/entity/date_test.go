package entity

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDateStrict(t *testing.T) {
	valid := []string{"2024-01-01", "2024-02-29", "1999-12-31"}
	for _, raw := range valid {
		if _, err := ParseDate(raw); err != nil {
			t.Errorf("Expected %q to parse, got %v", raw, err)
		}
	}

	invalid := []string{"", "invalid-date", "not-a-date", "2024-13-01", "2024-01-32", "2023-02-29", "2024-1-5", "2024-01-01T00:00:00Z", "01/02/2024"}
	for _, raw := range invalid {
		if _, err := ParseDate(raw); err == nil {
			t.Errorf("Expected %q to be rejected", raw)
		}
	}
}

func TestDateBoundaries(t *testing.T) {
	d, err := ParseDate("2024-03-10")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !d.Start().Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected start %v", d.Start())
	}
	if !d.End().Equal(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected end %v", d.End())
	}
	if got := d.DaysUntil(d.AddDays(30)); got != 30 {
		t.Errorf("Expected 30 days, got %d", got)
	}
}

func TestDaysUntilLongSpans(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{from: "2024-01-01", to: "2024-01-01", want: 0},
		{from: "2024-02-28", to: "2024-03-01", want: 2},
		{from: "1700-01-01", to: "2100-01-01", want: 146097},
		{from: "0001-01-01", to: "9999-12-31", want: 3652058},
	}

	for _, tt := range tests {
		from, err := ParseDate(tt.from)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		to, err := ParseDate(tt.to)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got := from.DaysUntil(to); got != tt.want {
			t.Errorf("%s..%s: expected %d days, got %d", tt.from, tt.to, tt.want, got)
		}
		if !from.AddDays(tt.want).Equal(to) {
			t.Errorf("%s + %d days: expected %s, got %s", tt.from, tt.want, tt.to, from.AddDays(tt.want))
		}
	}
}

func TestDateOfUsesUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2024-01-02 08:00 JST == 2024-01-01 23:00 UTC
	moment := time.Date(2024, 1, 2, 8, 0, 0, 0, tokyo)
	if got := DateOf(moment).String(); got != "2024-01-01" {
		t.Errorf("Expected 2024-01-01, got %s", got)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.January, 5)
	b, err := json.Marshal(d)
	if err != nil || string(b) != `"2024-01-05"` {
		t.Fatalf("Unexpected marshal result %s %v", b, err)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil || !back.Equal(d) {
		t.Errorf("Unexpected unmarshal result %v %v", back, err)
	}
}

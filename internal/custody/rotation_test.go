package custody

import (
	"testing"
	"time"

	"github.com/Rodeztrading/Dashboard/internal/models"
)

func TestResponsibleCycle(t *testing.T) {
	cases := []struct {
		offsetDays int
		want       models.CustodyParty
	}{
		{0, models.CustodyDad},
		{1, models.CustodyDad},
		{2, models.CustodyMom},
		{3, models.CustodyMom},
		{4, models.CustodyDad},
		{5, models.CustodyDad},
		{6, models.CustodyMom},
		{8, models.CustodyDad},
		{-1, models.CustodyMom},
		{-2, models.CustodyMom},
		{-3, models.CustodyDad},
		{-4, models.CustodyDad},
	}

	for _, tc := range cases {
		date := Epoch.AddDate(0, 0, tc.offsetDays)
		got := Responsible(date, time.UTC)
		if got != tc.want {
			t.Errorf("epoch%+d: expected %s, got %s", tc.offsetDays, tc.want, got)
		}
	}
}

func TestResponsibleIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, time.January, 3, 1, 0, 0, 0, time.UTC)
	night := time.Date(2024, time.January, 3, 23, 59, 0, 0, time.UTC)

	if Responsible(morning, time.UTC) != Responsible(night, time.UTC) {
		t.Error("expected same responsible for all times within one day")
	}
}

func TestResponsibleForKey(t *testing.T) {
	got, err := ResponsibleForKey("2024-01-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != models.CustodyMom {
		t.Errorf("expected MOM on 2024-01-05, got %s", got)
	}

	if _, err := ResponsibleForKey("not-a-date"); err == nil {
		t.Error("expected error for malformed key")
	}
}

func TestFlip(t *testing.T) {
	if Flip(models.CustodyMom) != models.CustodyDad {
		t.Error("expected MOM to flip to DAD")
	}
	if Flip(models.CustodyDad) != models.CustodyMom {
		t.Error("expected DAD to flip to MOM")
	}
}

func TestDayKey(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// 02:00 UTC is still the previous civil day in Bogota (UTC-5).
	ts := time.Date(2024, time.March, 10, 2, 0, 0, 0, time.UTC)
	if got := DayKey(ts, bogota); got != "2024-03-09" {
		t.Errorf("expected 2024-03-09, got %s", got)
	}
	if got := DayKey(ts, time.UTC); got != "2024-03-10" {
		t.Errorf("expected 2024-03-10, got %s", got)
	}
}

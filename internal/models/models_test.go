package models

import "testing"

func TestAlertCategoryRank(t *testing.T) {
	tests := []struct {
		category AlertCategory
		want     int
	}{
		{AlertUrgent, 0},
		{AlertAttention, 1},
		{AlertInformational, 2},
		{AlertCategory("bogus"), 3},
		{AlertCategory(""), 3},
	}
	for _, tt := range tests {
		if got := tt.category.Rank(); got != tt.want {
			t.Errorf("Rank(%q) = %d, want %d", tt.category, got, tt.want)
		}
	}
}

func TestAlertCategoryValid(t *testing.T) {
	for _, c := range []AlertCategory{AlertUrgent, AlertAttention, AlertInformational} {
		if !c.Valid() {
			t.Errorf("Valid(%q) = false, want true", c)
		}
	}
	if AlertCategory("weather").Valid() {
		t.Error("Valid(weather) = true, want false")
	}
}

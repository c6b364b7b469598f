package pages

import (
	"testing"

	"pgregory.net/rapid"
)

func TestContainsAll(t *testing.T) {
	tests := []struct {
		name     string
		actual   []string
		expected []string
		want     bool
	}{
		{"both present", []string{"Sauce Labs Backpack", "Sauce Labs Bike Light"}, []string{"Sauce Labs Bike Light", "Sauce Labs Backpack"}, true},
		{"extra items are fine", []string{"A", "B", "C"}, []string{"B"}, true},
		{"nothing expected", []string{"A"}, nil, true},
		{"empty cart", nil, []string{"A"}, false},
		{"exact match only", []string{"sauce labs backpack"}, []string{"Sauce Labs Backpack"}, false},
		{"one missing", []string{"A"}, []string{"A", "B"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := containsAll(tt.actual, tt.expected); got != tt.want {
				t.Errorf("containsAll(%v, %v) = %v, want %v", tt.actual, tt.expected, got, tt.want)
			}
		})
	}
}

func TestContainsAll_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		actual := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), 0, 8).Draw(t, "actual")

		var subset []string
		for _, name := range actual {
			if rapid.Bool().Draw(t, "keep") {
				subset = append(subset, name)
			}
		}
		if !containsAll(actual, subset) {
			t.Fatalf("containsAll(%v, %v) = false for a subset", actual, subset)
		}

		missing := rapid.StringMatching(`[A-Z]{1,6}`).Draw(t, "missing")
		if containsAll(actual, append(subset, missing)) {
			t.Fatalf("containsAll(%v, %v) = true with %q absent", actual, subset, missing)
		}
	})
}

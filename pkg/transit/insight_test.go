package transit

import "testing"

func TestCategoriseDelay(t *testing.T) {
	bands := DefaultDelayBands()

	testCases := []struct {
		minutes  int
		expected string
	}{
		{0, "On Time"},
		{4, "On Time"},
		{5, "Minor Delay"},
		{14, "Minor Delay"},
		{15, "Moderate Delay"},
		{29, "Moderate Delay"},
		{30, "Severe Delay"},
		{120, "Severe Delay"},
	}

	for _, testCase := range testCases {
		if got := CategoriseDelay(testCase.minutes, bands); got != testCase.expected {
			t.Errorf("CategoriseDelay(%d) = %q, expected %q", testCase.minutes, got, testCase.expected)
		}
	}
}

func TestCategoriseDelayCustomBands(t *testing.T) {
	bands := []DelayBand{
		{Name: "Fine", MaxMinutes: 10},
		{Name: "Late"},
	}

	if got := CategoriseDelay(9, bands); got != "Fine" {
		t.Errorf("got %q, expected Fine", got)
	}
	if got := CategoriseDelay(10, bands); got != "Late" {
		t.Errorf("got %q, expected Late", got)
	}
	if got := CategoriseDelay(5, nil); got != "Unknown" {
		t.Errorf("got %q for empty bands, expected Unknown", got)
	}
}

package output

import (
	"math"
	"testing"

	"github.com/iwvelando/vehicle-decision/pkg/testutil"
)

func TestNewDisplay(t *testing.T) {
	result := testutil.NewEngine().Run(testutil.BaselineInputs()).Result
	d := NewDisplay(result)

	if d.Overall != 70 {
		t.Errorf("Overall = %d, expected 70", d.Overall)
	}
	if d.MonthlyPayment != "1302" {
		t.Errorf("MonthlyPayment = %s, expected 1302", d.MonthlyPayment)
	}
	if d.MonthsOfReserves != "3.0" {
		t.Errorf("MonthsOfReserves = %s, expected 3.0", d.MonthsOfReserves)
	}
	if d.MonthlyRunningCost != "650" {
		t.Errorf("MonthlyRunningCost = %s, expected 650", d.MonthlyRunningCost)
	}
	if d.HasLuxuryTax || d.LuxuryTaxAmount != "0" {
		t.Errorf("unexpected luxury tax %v %s", d.HasLuxuryTax, d.LuxuryTaxAmount)
	}
	if d.RiskFlags == nil || d.FbtWarnings == nil {
		t.Error("flag lists should never be nil")
	}

	if NewDisplay(nil) != nil {
		t.Error("nil result should have no display")
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		value    float64
		places   int32
		expected string
	}{
		{1302.47, 0, "1302"},
		{1302.5, 0, "1303"},
		{-2.5, 0, "-3"},
		{2.96, 1, "3.0"},
		{99, 1, "99.0"},
		{math.NaN(), 0, "0"},
		{math.Inf(1), 1, "0"},
	}

	for _, tt := range tests {
		if got := roundTo(tt.value, tt.places); got != tt.expected {
			t.Errorf("roundTo(%v, %d) = %s, expected %s", tt.value, tt.places, got, tt.expected)
		}
	}
}

package fees

import (
	"testing"

	"github.com/the5hc/fitscore/internal/ruleset"
)

func defaultRates() ruleset.FeeRules {
	return ruleset.Default().Fees
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		gross int64
		want  Breakdown
	}{
		{
			// fee = round(100000 * 0.035) = 3500
			// vat = round(96500 * 0.1/1.1) = 8773
			name:  "standard session package",
			gross: 100_000,
			want:  Breakdown{Gross: 100_000, CardFee: 3500, VAT: 8773, Net: 87_727},
		},
		{
			name:  "zero amount",
			gross: 0,
			want:  Breakdown{},
		},
		{
			// fee = round(33333 * 0.035) = 1167
			// vat = round(32166 * 0.1/1.1) = 2924
			name:  "rounding remainder lands in net",
			gross: 33_333,
			want:  Breakdown{Gross: 33_333, CardFee: 1167, VAT: 2924, Net: 29_242},
		},
		{
			name:  "single won",
			gross: 1,
			want:  Breakdown{Gross: 1, CardFee: 0, VAT: 0, Net: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Calculate(tc.gross, defaultRates())
			if err != nil {
				t.Fatalf("Calculate() error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Calculate(%d) = %+v, want %+v", tc.gross, got, tc.want)
			}
		})
	}
}

func TestCalculatePartsSumToGross(t *testing.T) {
	rates := defaultRates()
	for _, gross := range []int64{1, 999, 10_000, 55_555, 100_000, 1_234_567, 999_999_999} {
		b, err := Calculate(gross, rates)
		if err != nil {
			t.Fatal(err)
		}
		if sum := b.Net + b.VAT + b.CardFee; sum != gross {
			t.Errorf("gross %d: parts sum to %d", gross, sum)
		}
		if b.Net < 0 || b.VAT < 0 || b.CardFee < 0 {
			t.Errorf("gross %d: negative component in %+v", gross, b)
		}
	}
}

func TestCalculateRejectsNegative(t *testing.T) {
	if _, err := Calculate(-1, defaultRates()); err == nil {
		t.Fatal("Calculate(-1) = nil error, want rejection")
	}
}

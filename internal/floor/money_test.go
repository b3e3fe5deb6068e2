package floor

import "testing"

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "simple", value: "57.50", want: "R$ 57,50"},
		{name: "zero", value: "0", want: "R$ 0,00"},
		{name: "thousands", value: "1234.56", want: "R$ 1.234,56"},
		{name: "millions", value: "1234567.89", want: "R$ 1.234.567,89"},
		{name: "exactThousand", value: "1000", want: "R$ 1.000,00"},
		{name: "roundsToTwoPlaces", value: "9.999", want: "R$ 10,00"},
		{name: "negative", value: "-12.30", want: "-R$ 12,30"},
		{name: "whitespace", value: "  25.50  ", want: "R$ 25,50"},
		{name: "unparseableFallsBackToZero", value: "not-a-price", want: "R$ 0,00"},
		{name: "empty", value: "", want: "R$ 0,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBRL(tt.value); got != tt.want {
				t.Errorf("FormatBRL(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

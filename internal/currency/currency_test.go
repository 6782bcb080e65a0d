package currency

import "testing"

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		name     string
		centavos int64
		want     string
	}{
		{"zero", 0, "R$0,00"},
		{"cents_only", 99, "R$0,99"},
		{"whole", 45000, "R$450,00"},
		{"thousands_separator", 123456, "R$1.234,56"},
		{"negative", -15000, "-R$150,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBRL(tt.centavos); got != tt.want {
				t.Errorf("FormatBRL(%d) = %q, want %q", tt.centavos, got, tt.want)
			}
		})
	}
}

func TestFormatSignedBRL(t *testing.T) {
	if got := FormatSignedBRL(10000); got != "+R$100,00" {
		t.Errorf("expected explicit plus sign, got %q", got)
	}
	if got := FormatSignedBRL(-10000); got != "-R$100,00" {
		t.Errorf("expected minus sign, got %q", got)
	}
	if got := FormatSignedBRL(0); got != "R$0,00" {
		t.Errorf("zero should carry no sign, got %q", got)
	}
}

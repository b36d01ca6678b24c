package validation

import (
	"errors"
	"testing"
)

type sample string

const (
	first  sample = "first"
	second sample = "second"
)

func TestFormatValidValues(t *testing.T) {
	tests := []struct {
		name   string
		values []sample
		want   string
	}{
		{"two values", []sample{first, second}, "first, second"},
		{"one value", []sample{first}, "first"},
		{"none", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValidValues(tt.values); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatInvalidValueError(t *testing.T) {
	base := errors.New("invalid sample")
	err := FormatInvalidValueError(base, sample("bad"), []sample{first, second})
	if !errors.Is(err, base) {
		t.Fatalf("expected error to wrap %v", base)
	}

	want := "invalid sample: \"bad\" (valid: first, second)"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

package core

import (
	"errors"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{Trace, "trace"},
		{Debug, "debug"},
		{Info, "info"},
		{Warning, "warning"},
		{Error, "error"},
		{Fatal, "fatal"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.sev.String(); got != tt.want {
				t.Errorf("Severity.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeverity_Ordered(t *testing.T) {
	all := Severities()
	if len(all) != 6 {
		t.Fatalf("Expected 6 severities, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Errorf("%v should rank below %v", all[i-1], all[i])
		}
	}
}

func TestSeverity_OutOfRange(t *testing.T) {
	bad := Severity(42)
	if bad.Valid() {
		t.Error("Severity(42) should not be valid")
	}
	if got := bad.String(); got != "Severity(42)" {
		t.Errorf("String() = %q, want %q", got, "Severity(42)")
	}
	if _, err := bad.MarshalText(); !errors.Is(err, ErrInvalidSeverity) {
		t.Errorf("MarshalText() error = %v, want ErrInvalidSeverity", err)
	}
	if _, err := Severity(-1).MarshalText(); err == nil {
		t.Error("MarshalText() of Severity(-1) should fail")
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"trace", Trace},
		{"DEBUG", Debug},
		{" info ", Info},
		{"warn", Warning},
		{"Warning", Warning},
		{"error", Error},
		{"fatal", Fatal},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if err != nil {
			t.Errorf("ParseSeverity(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseSeverity("verbose"); !errors.Is(err, ErrInvalidSeverity) {
		t.Errorf("ParseSeverity(verbose) error = %v, want ErrInvalidSeverity", err)
	}
}

func TestSeverity_TextRoundTrip(t *testing.T) {
	var s Severity
	if err := s.UnmarshalText([]byte("warning")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	out, err := s.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(out) != "warning" {
		t.Errorf("MarshalText() = %q, want %q", out, "warning")
	}
}

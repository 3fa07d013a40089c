package rules

import (
	"errors"
	"testing"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		in      string
		want    Rule
		wantErr bool
	}{
		{"chinese", Chinese, false},
		{" Area ", Chinese, false},
		{"JP", Japanese, false},
		{"territory", Japanese, false},
		{"ing", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseRule(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownRule) {
				t.Errorf("ParseRule(%q) error = %v, want ErrUnknownRule", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseRule(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
		if again, _ := ParseRule(got.String()); again != got {
			t.Errorf("ParseRule(%q.String()) = %v", got, again)
		}
	}
}

func TestParseKoRule(t *testing.T) {
	tests := []struct {
		in      string
		want    KoRule
		wantErr bool
	}{
		{"", SimpleKo, false},
		{"Simple", SimpleKo, false},
		{"superko", PositionalSuperko, false},
		{"positional", PositionalSuperko, false},
		{"situational", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKoRule(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownRule) {
				t.Errorf("ParseKoRule(%q) error = %v, want ErrUnknownRule", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseKoRule(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

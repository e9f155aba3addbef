package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Ahmed", "Ahmed"},
		{"leading and trailing spaces", "  Ahmed  ", "Ahmed"},
		{"internal whitespace collapsed", "Ahmed   Ali", "Ahmed Ali"},
		{"tabs and newlines", "Ahmed\t\nAli", "Ahmed Ali"},
		{"only whitespace", "   ", ""},
		{"empty", "", ""},
		{"arabic preserved", "أحمد علي", "أحمد علي"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"digits only", "01012345678", "01012345678"},
		{"spaces and dashes", "010-1234 5678", "01012345678"},
		{"plus prefix stripped", "+201012345678", "201012345678"},
		{"parentheses", "(010) 1234-5678", "01012345678"},
		{"letters removed", "call01012345678", "01012345678"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSlotTime(t *testing.T) {
	if got := NormalizeSlotTime("14:30:00"); got != "14:30" {
		t.Errorf("expected 14:30, got %q", got)
	}
	if got := NormalizeSlotTime("14:30"); got != "14:30" {
		t.Errorf("expected 14:30 unchanged, got %q", got)
	}
}

func TestIdempotence(t *testing.T) {
	inputs := []string{"  Ahmed  Ali ", "+20 (10) 1234-5678"}
	for _, in := range inputs {
		once := NormalizeName(in)
		if NormalizeName(once) != once {
			t.Errorf("NormalizeName not idempotent for %q", in)
		}
		oncePhone := NormalizePhone(in)
		if NormalizePhone(oncePhone) != oncePhone {
			t.Errorf("NormalizePhone not idempotent for %q", in)
		}
	}
}

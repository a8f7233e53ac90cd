package matchers

import (
	"strings"
	"testing"
)

func TestNormalize_StripsPunctuationAndCase(t *testing.T) {
	got := Normalize("Hello!!!  WORLD, it's 2024?")
	want := "hello world its 2024"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	got := Normalize("  track \t my\n\norder   ")
	want := "track my order"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_OutputCharset(t *testing.T) {
	inputs := []string{
		"Héllo wörld", "100% refund!!", "@#$%^&*()", "tabs\tand\nnewlines",
	}
	for _, in := range inputs {
		out := Normalize(in)
		if out != strings.TrimSpace(out) {
			t.Errorf("Normalize(%q) has leading/trailing space: %q", in, out)
		}
		for _, r := range out {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' '
			if !valid {
				t.Errorf("Normalize(%q) contains invalid rune %q", in, r)
			}
		}
		if strings.Contains(out, "  ") {
			t.Errorf("Normalize(%q) contains double space: %q", in, out)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Hello, World!", "", "   ", "already clean text", "MiXeD  CaSe?!"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
	if got := Normalize("!!!"); got != "" {
		t.Errorf("Normalize(\"!!!\") = %q, want empty", got)
	}
}

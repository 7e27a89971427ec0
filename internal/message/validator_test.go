package message

import (
	"strings"
	"testing"
)

func TestValidate_LengthPolicy(t *testing.T) {
	v := NewValidator(nil)
	cases := []struct {
		name      string
		in        string
		units     int
		wantValid bool
	}{
		{"ascii", "TEAM BONFILET", 13, true},
		{"narrow at limit", strings.Repeat("a", 46), 46, true},
		{"narrow over limit", strings.Repeat("a", 50), 50, false},
		{"wide at limit", strings.Repeat("あ", 23), 46, true},
		{"wide over limit", strings.Repeat("あ", 24), 48, false},
		{"mixed", "GO 日本", 7, true},
		{"latin-1", "café", 4, true},
		{"hangul", "한국", 4, true},
		{"cyrillic over limit", strings.Repeat("Ж", 24), 48, false},
		{"greek over limit", strings.Repeat("α", 24), 48, false},
		{"latin extended over limit", strings.Repeat("Ā", 24), 48, false},
		{"greek at limit", strings.Repeat("α", 23), 46, true},
	}
	for _, tc := range cases {
		res := v.Validate(tc.in)
		if res.Units != tc.units {
			t.Fatalf("%s: expected %d units, got %d", tc.name, tc.units, res.Units)
		}
		if res.IsValid != tc.wantValid {
			t.Fatalf("%s: expected valid=%v, got %v (errors=%v)", tc.name, tc.wantValid, res.IsValid, res.Errors)
		}
		if res.MaxUnits != MaxUnits {
			t.Fatalf("%s: expected maxUnits %d, got %d", tc.name, MaxUnits, res.MaxUnits)
		}
	}
}

func TestValidate_Empty(t *testing.T) {
	v := NewValidator(nil)
	for _, in := range []string{"", "   ", "\t\n", "\x00\x07"} {
		res := v.Validate(in)
		if res.IsValid {
			t.Fatalf("Validate(%q) should be invalid", in)
		}
		if len(res.Errors) != 1 || res.Errors[0] != ErrEmpty {
			t.Fatalf("Validate(%q) expected empty error, got %v", in, res.Errors)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"  hello   world  ", "hello world"},
		{"a\n\tb", "a b"},
		{"a \x00 b", "a b"},
		{"ＴＥＡＭ", "TEAM"},
		{"ｱｲｳ", "アイウ"},
		{"x\u007fy", "xy"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.expected {
			t.Fatalf("Normalize(%q) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestValidate_FullwidthLatinCountsNarrowAfterNormalization(t *testing.T) {
	v := NewValidator(nil)
	res := v.Validate(strings.Repeat("Ａ", 40))
	if res.Units != 40 || !res.IsValid {
		t.Fatalf("expected 40 units and valid, got %d units valid=%v", res.Units, res.IsValid)
	}
}

func TestValidate_ForbiddenWordsFlagWithoutError(t *testing.T) {
	v := NewValidator([]string{"scam", "Hate"})

	res := v.Validate("I HATE Mondays")
	if !res.NeedsReview {
		t.Fatalf("expected needsReview for forbidden substring")
	}
	if !res.IsValid || len(res.Errors) != 0 {
		t.Fatalf("forbidden word must not add errors, got %v", res.Errors)
	}

	res = v.Validate("whatever")
	if !res.NeedsReview {
		t.Fatalf("substring match inside a word should still flag review")
	}

	res = v.Validate("TEAM BONFILET")
	if res.NeedsReview {
		t.Fatalf("clean message must not need review")
	}
}

func TestValidate_ErrorsAreCumulative(t *testing.T) {
	v := NewValidator([]string{"scam"})
	res := v.Validate(strings.Repeat("scam", 13))
	if res.IsValid {
		t.Fatalf("52 units must be invalid")
	}
	if !res.NeedsReview {
		t.Fatalf("review flag must be independent of validity")
	}
	if len(res.Errors) != 1 || !strings.HasPrefix(res.Errors[0], "Message exceeds 46") {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

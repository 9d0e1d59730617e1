package yadirect

import "testing"

func TestStem(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"курсы", "курс"},
		{"курсов", "курс"},
		{"курса", "курс"},
		{"курс", "курс"},
		{"дом", "дом"},
		{"дома", "дома"},
		{"английского", "английск"},
		{"английский", "английск"},
		{"делать", "дел"},
		{"книжечка", "книж"},
		{"кот", "кот"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Stem(tc.in); got != tc.want {
			t.Errorf("Stem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSuffixRulesOrderedLongestFirst(t *testing.T) {
	t.Parallel()
	prev := 1 << 30
	for _, r := range suffixRules {
		n := len([]rune(r.suffix))
		if n > prev {
			t.Fatalf("suffix %q (%d) follows a shorter suffix", r.suffix, n)
		}
		prev = n
	}
}

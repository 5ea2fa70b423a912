package main

import "testing"

func TestDescriptionFromFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-03-01-001-create-users.sql", "create users"},
		{"2026-03-01-004-create-workout-plans.sql", "create workout plans"},
		{"no-prefix.sql", "no prefix"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := descriptionFromFilename(tc.in); got != tc.want {
				t.Errorf("descriptionFromFilename(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

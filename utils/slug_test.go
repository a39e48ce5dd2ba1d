package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Favorites", "favorites"},
		{"Chrono Trigger", "chrono_trigger"},
		{"Baldur's Gate 3", "baldurs_gate_3"},
		{"  Backlog  2024  ", "backlog_2024"},
		{"co-op night", "co_op_night"},
		{"Pokémon", "pokemon"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

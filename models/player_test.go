package models

import "testing"

func TestEligibleForTournaments(t *testing.T) {
	cases := map[string]bool{
		MembershipFree:    false,
		MembershipPremium: true,
		MembershipElite:   true,
		"":                false,
		"Premium":         false,
	}
	for level, want := range cases {
		if got := EligibleForTournaments(level); got != want {
			t.Errorf("EligibleForTournaments(%q) = %v, want %v", level, got, want)
		}
	}
}

func TestValidGenre(t *testing.T) {
	for _, genre := range Genres {
		if !ValidGenre(genre) {
			t.Errorf("expected %q to be valid", genre)
		}
	}
	for _, genre := range []string{"", "Sandbox", "rpg"} {
		if ValidGenre(genre) {
			t.Errorf("expected %q to be invalid", genre)
		}
	}
}

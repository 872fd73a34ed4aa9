package leczair

import (
	"strings"
	"testing"
)

func TestAlternativeNick(t *testing.T) {
	full := strings.Repeat("a", NICK_LENGTH_LIMIT-1)
	var samples = []string{
		"leczair",
		full,
		full + "a",
		full + "_",
		full + "8",
		full + "9",
	}
	var valid = []string{
		"leczair_",
		full + "_",
		full + "_",
		full + "0",
		full + "9",
		full + "_",
	}

	for i, sample := range samples {
		if result := alternativeNick(sample); result != valid[i] {
			t.Fatalf("%q != %q", result, valid[i])
		}
		if err := validateNick(alternativeNick(sample)); err != nil {
			t.Fatalf("%q: %v", sample, err)
		}
	}
}

func TestAlternativeNickTerminates(t *testing.T) {
	nick := strings.Repeat("a", NICK_LENGTH_LIMIT)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		nick = alternativeNick(nick)
		if len(nick) > NICK_LENGTH_LIMIT {
			t.Fatalf("%q longer than %d", nick, NICK_LENGTH_LIMIT)
		}
		seen[nick] = true
	}
	if len(seen) != 11 {
		t.Fatalf("expected 11 distinct nicks, got %d", len(seen))
	}
}

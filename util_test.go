package leczair

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const (
	MLIMIT = 64
)

func TestSplitByLen(t *testing.T) {
	var lines = []string{
		"",
		"abcd",
		"abcdef",
		"abdsd ssddc dsdsdadaadwdwwdef",
		"aaaaabbbdd dfsdfsdf adadsd",
		"addddddddddddddddddddd asssss ss ssssssssssssssssaaa aaa ddddddddddddddddd sssssssssssssss",
		"The quick brown fox jumps over the lazy dog",
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum.",
		"Go - компилируемый многопоточный язык программирования, разработанный внутри компании Google. Разработка Go началась в сентябре 2007 года, его непосредственным проектированием занимались Роберт Гризмер, Роб Пайк и Кен Томпсон, занимавшиеся до этого проектом разработки операционной системы Inferno.",
	}

	for _, line := range lines {
		result := splitByLen(line, MLIMIT, 0)
		for _, subline := range result {
			if len(subline) > MLIMIT {
				t.Fatalf("%q != %q", line, result)
			}
		}
		if strings.Join(result, " ") != line {
			t.Fatalf("%q != %q", line, result)
		}
	}
}

func TestSplitByLenKeepsRunes(t *testing.T) {
	line := strings.Repeat("ж", 100)
	result := splitByLen(line, MLIMIT, 0)
	if len(result) < 2 {
		t.Fatalf("not split: %q", result)
	}
	for _, subline := range result {
		if len(subline) > MLIMIT || !utf8.ValidString(subline) {
			t.Fatalf("bad piece %q in %q", subline, result)
		}
	}
	if strings.Join(result, "") != line {
		t.Fatalf("%q != %q", line, result)
	}
}

func TestSplitByLenCarriesColor(t *testing.T) {
	line := Colorize(Red, strings.TrimSpace(strings.Repeat("warning ", 20)))
	result := splitByLen(line, MLIMIT, 0)
	if len(result) < 2 {
		t.Fatalf("not split: %q", result)
	}
	for _, subline := range result {
		if !strings.HasPrefix(subline, ColorTag+Red.String()) {
			t.Fatalf("%q lost its colour", subline)
		}
		if len(subline) > MLIMIT {
			t.Fatalf("%q longer than %d", subline, MLIMIT)
		}
	}
}

func TestPop(t *testing.T) {
	nick, rest := pop("demsh!~demsh@12a8e790", "!")
	if nick != "demsh" || rest != "~demsh@12a8e790" {
		t.Fatalf("%q %q", nick, rest)
	}
	nick, rest = pop("demsh", "!")
	if nick != "demsh" || rest != "" {
		t.Fatalf("%q %q", nick, rest)
	}
}

package leczair

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// encode turns text into wire bytes. A nil charmap means UTF-8.
func encode(input string, cm *charmap.Charmap) ([]byte, error) {
	if cm == nil {
		return []byte(input), nil
	}
	result := make([]byte, 0, len(input))
	for _, r := range input {
		b, ok := cm.EncodeRune(r)
		if !ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrEncode, r, cm)
		}
		result = append(result, b)
	}
	return result, nil
}

// decode turns wire bytes into text. Without a charmap the input must be
// valid UTF-8; with one every byte maps to a rune.
func decode(input []byte, cm *charmap.Charmap) (string, error) {
	if cm == nil {
		if !utf8.Valid(input) {
			return "", fmt.Errorf("%w: %q", ErrDecode, input)
		}
		return string(input), nil
	}
	runes := make([]rune, 0, len(input))
	for _, b := range input {
		runes = append(runes, cm.DecodeByte(b))
	}
	return string(runes), nil
}

// lookupCharmap resolves a WHATWG charset label. UTF-8 and the empty string
// give a nil charmap.
func lookupCharmap(name string) (*charmap.Charmap, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", name, err)
	}
	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return nil, fmt.Errorf("charset %q is not a single-byte charset", name)
	}
	return cm, nil
}

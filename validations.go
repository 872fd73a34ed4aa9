package leczair

import (
	"errors"
	"strings"
	"unicode"
)

const (
	CHAN_LENGTH_LIMIT = 200
	NICK_LENGTH_LIMIT = 30
	HOST_LENGTH_LIMIT = 63
)

// https://stackoverflow.com/questions/53069040/checking-a-string-contains-only-ascii-characters
func isASCII(s string) bool {
	for _, c := range s {
		if c > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// https://datatracker.ietf.org/doc/html/rfc1459#section-1.3
func validateChannel(channel string) error {
	if len(channel) == 0 {
		return errors.New("empty")
	}
	if len(channel) > CHAN_LENGTH_LIMIT {
		return errors.New("longer than 200 bytes")
	}
	if !isASCII(channel) {
		return errors.New("non-ASCII")
	}
	if strings.ContainsAny(channel, ", \x00\x07\r\n") {
		return errors.New("illegal symbol")
	}
	if !(strings.HasPrefix(channel, "#") || strings.HasPrefix(channel, "&")) {
		return errors.New("does not start with # or &")
	}
	return nil
}

func isChannel(channel string) bool {
	return validateChannel(channel) == nil
}

func validateNick(nick string) error {
	if len(nick) == 0 {
		return errors.New("empty")
	}
	if len(nick) > NICK_LENGTH_LIMIT {
		return errors.New("longer than 30 bytes")
	}
	if !isASCII(nick) {
		return errors.New("non-ASCII")
	}
	if strings.ContainsAny(nick, ", !@\x00\x07\r\n") {
		return errors.New("illegal symbol")
	}
	if strings.HasPrefix(nick, "#") || strings.HasPrefix(nick, "&") || strings.HasPrefix(nick, ":") {
		return errors.New("starts with #, & or :")
	}
	return nil
}

func isNick(nick string) bool {
	return validateNick(nick) == nil
}

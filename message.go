package leczair

import (
	"strings"
)

// Message is one IRC protocol line taken apart. It is a value and none of
// its accessors hand out anything that could change it.
type Message struct {
	source, cmd string
	params      []string
	// last element of params came from the ":" segment
	trailing bool
}

// Parse splits a line (terminator already removed) into source, command and
// parameters.
//
// Separators are exactly one space. Spaces at the very end of the line are
// ignored, any other run of extra spaces fails with ErrMalformedParams.
func Parse(line string) (Message, error) {
	var (
		m    Message
		rest = line
		ok   bool
	)
	if strings.HasPrefix(rest, ":") {
		i := strings.IndexByte(rest, ' ')
		if i < 2 {
			return Message{}, &ParseError{Line: line, Err: ErrNoCommand}
		}
		m.source, rest = rest[1:i], rest[i+1:]
	}
	m.cmd, rest = popToken(rest)
	if m.cmd == "" {
		return Message{}, &ParseError{Line: line, Err: ErrNoCommand}
	}
	m.params, m.trailing, ok = scanParams(rest)
	if !ok {
		return Message{}, &ParseError{Line: line, Err: ErrMalformedParams}
	}
	return m, nil
}

// scanParams consumes " middle" tokens and an optional " :trailing" segment.
func scanParams(rest string) (params []string, trailing bool, ok bool) {
	for len(rest) > 1 && rest[0] == ' ' && rest[1] != ':' && rest[1] != ' ' {
		var param string
		param, rest = popToken(rest[1:])
		params = append(params, param)
	}
	switch {
	case strings.HasPrefix(rest, " :"):
		return append(params, rest[2:]), true, true
	case strings.TrimLeft(rest, " ") == "":
		return params, false, true
	}
	return params, false, false
}

func popToken(s string) (token, rest string) {
	i := strings.IndexByte(s, ' ')
	if i == -1 {
		return s, ""
	}
	return s[:i], s[i:]
}

// NewMessage builds an outbound message. The last parameter is sent as a
// trailing one whenever the wire format requires it.
func NewMessage(cmd string, params ...string) Message {
	return Message{
		cmd:    cmd,
		params: append([]string(nil), params...),
	}
}

// Privmsg builds a PRIVMSG whose text is always sent as a trailing parameter.
func Privmsg(target, text string) Message {
	return Message{
		cmd:      "PRIVMSG",
		params:   []string{target, text},
		trailing: true,
	}
}

// Source returns the prefix without its leading colon; ok is false when the
// line had none.
func (m Message) Source() (source string, ok bool) {
	return m.source, m.source != ""
}

func (m Message) Command() string {
	return m.cmd
}

// Params returns a copy of the parameters, the trailing one last.
func (m Message) Params() []string {
	return append([]string(nil), m.params...)
}

// HasTrailing tells "PING :" (one empty trailing parameter) apart from
// "PING" (none).
func (m Message) HasTrailing() bool {
	return m.trailing
}

// String renders the message in wire form without the line terminator.
func (m Message) String() string {
	var b strings.Builder
	b.Grow(MAXMSGSIZE)
	if m.source != "" {
		b.WriteByte(':')
		b.WriteString(m.source)
		b.WriteByte(' ')
	}
	b.WriteString(m.cmd)
	for i, param := range m.params {
		b.WriteByte(' ')
		if i == len(m.params)-1 && m.needsColon(param) {
			b.WriteByte(':')
		}
		b.WriteString(param)
	}
	return b.String()
}

func (m Message) needsColon(last string) bool {
	return m.trailing || last == "" || strings.HasPrefix(last, ":") ||
		strings.Contains(last, " ")
}

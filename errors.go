package leczair

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionLost marks read and write failures after which the
	// connection is dead: peer reset, broken pipe, abort, refusal, EOF.
	ErrConnectionLost = errors.New("connection lost")
	ErrDecode         = errors.New("invalid text encoding")
	ErrEncode         = errors.New("text not representable in charset")
	ErrInvalidLine    = errors.New("line contains CR, LF or NUL")
	ErrLineTooLong    = errors.New("line too long")

	ErrNoCommand       = errors.New("no command")
	ErrMalformedParams = errors.New("malformed parameters")

	ErrNotChatMessage = errors.New("not a PRIVMSG")
	ErrParamCount     = errors.New("unexpected parameter count")
	ErrNoNick         = errors.New("source carries no nick")

	ErrInvalidSettings = errors.New("invalid settings")
	ErrRestart         = errors.New("restart requested")
	ErrNotStarted      = errors.New("bot not started")
)

// ParseError is returned by Parse for lines that do not follow the
// message grammar.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

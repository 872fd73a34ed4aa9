package leczair

import (
	"context"
	"net"
)

// MAXMSGSIZE is the RFC 1459 limit for a line, CRLF included.
const MAXMSGSIZE = 512

// Logger is what the library logs through. Debug is for wire traffic and
// anything else too chatty for normal operation.
type Logger interface {
	Log(v ...interface{})
	Logf(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// MsgHandler produces the replies to one chat message. It runs on the bot's
// loop goroutine, so it must not block for long.
type MsgHandler func(ctx context.Context, req Request) []Message

// DialFunc opens the connection a session runs on.
type DialFunc func(ctx context.Context, irc IRCSettings) (net.Conn, error)

// Request is everything a MsgHandler gets to see about one chat message.
type Request struct {
	View     ChatView
	MyNick   string
	Settings *Settings
}

package leczair

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func request(source, target, text string, settings *Settings) Request {
	msg, _ := Parse(":" + source + " PRIVMSG " + target + " :" + text)
	view, _ := AsChatView(msg)
	return Request{View: view, MyNick: "leczair", Settings: settings}
}

func TestCommandHandler(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		req  Request
		want []Message
	}{
		{
			name: "say in channel",
			req:  request("alice!a@host", "#test", "!say hello there", nil),
			want: []Message{Privmsg("#test", "hello there")},
		},
		{
			name: "say in private",
			req:  request("alice!a@host", "leczair", "!SAY hi", nil),
			want: []Message{Privmsg("alice", "hi")},
		},
		{
			name: "say without text",
			req:  request("alice!a@host", "#test", "!say", nil),
		},
		{
			name: "ping",
			req:  request("alice!a@host", "#test", "!ping", nil),
			want: []Message{Privmsg("#test", "alice: \x0303pong\x03")},
		},
		{
			name: "plain chatter",
			req:  request("alice!a@host", "#test", "say hello", nil),
		},
		{
			name: "unknown command",
			req:  request("alice!a@host", "#test", "!dance", nil),
		},
		{
			name: "custom prefix",
			req:  request("alice!a@host", "#test", ".say hey", &Settings{Behaviour: map[string]string{"prefix": "."}}),
			want: []Message{Privmsg("#test", "hey")},
		},
		{
			name: "default prefix ignored with custom one",
			req:  request("alice!a@host", "#test", "!say hey", &Settings{Behaviour: map[string]string{"prefix": "."}}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommandHandler(ctx, tt.req))
		})
	}
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core).Sugar())

	logger.Log("connected to ", "irc.demsh.org")
	logger.Logf("joined %s", "#test")
	logger.Debug("--> %s", "PING :x")

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, "connected to irc.demsh.org", entries[0].Message)
		assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
		assert.Equal(t, "joined #test", entries[1].Message)
		assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
		assert.Equal(t, "--> PING :x", entries[2].Message)
	}
}

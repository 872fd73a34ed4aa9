package leczair

import (
	"context"
	"strings"
)

const defaultCommandPrefix = "!"

// CommandHandler is the default MsgHandler. It knows two commands, "say"
// and "ping", introduced by the "prefix" behaviour setting ("!" if unset).
func CommandHandler(ctx context.Context, req Request) []Message {
	prefix := defaultCommandPrefix
	if req.Settings != nil && req.Settings.Behaviour["prefix"] != "" {
		prefix = req.Settings.Behaviour["prefix"]
	}
	text := strings.TrimSpace(req.View.Text)
	if !strings.HasPrefix(text, prefix) {
		return nil
	}
	cmd, arg := pop(strings.TrimPrefix(text, prefix), " ")
	target := req.View.ReplyTarget()
	switch strings.ToLower(cmd) {
	case "say":
		if arg == "" {
			return nil
		}
		return []Message{Privmsg(target, arg)}
	case "ping":
		return []Message{Privmsg(target, req.View.Nick+": "+Colorize(Green, "pong"))}
	}
	return nil
}

package leczair

import (
	"fmt"
	"strings"
)

// ChatView is the PRIVMSG-specific reading of a Message.
type ChatView struct {
	// Source is the full nick!user@host the message came from.
	Source string
	Nick   string
	Target string
	Text   string
}

// AsChatView fails with ErrNotChatMessage for anything but PRIVMSG, with
// ErrParamCount unless there are exactly a target and a text, and with
// ErrNoNick when the source does not name a user.
func AsChatView(m Message) (ChatView, error) {
	if m.cmd != "PRIVMSG" {
		return ChatView{}, fmt.Errorf("%w: %q", ErrNotChatMessage, m.cmd)
	}
	if len(m.params) != 2 {
		return ChatView{}, fmt.Errorf("%w: PRIVMSG with %d parameters", ErrParamCount, len(m.params))
	}
	nick, err := m.Nick()
	if err != nil {
		return ChatView{}, err
	}
	return ChatView{
		Source: m.source,
		Nick:   nick,
		Target: m.params[0],
		Text:   m.params[1],
	}, nil
}

// Nick returns the part of the source before the first '!', without a
// leading '~'.
func (m Message) Nick() (string, error) {
	idx := strings.IndexByte(m.source, '!')
	if idx < 1 {
		return "", fmt.Errorf("%w: %q", ErrNoNick, m.source)
	}
	nick := m.source[:idx]
	if len(nick) > 1 {
		nick = strings.TrimPrefix(nick, "~")
	}
	return nick, nil
}

// ReplyTarget is where an answer goes: the channel, or the sender for a
// private message.
func (v ChatView) ReplyTarget() string {
	if isChannel(v.Target) {
		return v.Target
	}
	return v.Nick
}

// Calculate allowed text length for a PRIVMSG or NOTICE to target, as seen
// by the server once it has prepended our prefix. A prefix ending in "@" has
// no known host yet and is charged HOST_LENGTH_LIMIT for it.
func msgLimit(prefix, target string) int {
	if strings.HasSuffix(prefix, "@") {
		prefix += strings.Repeat("x", HOST_LENGTH_LIMIT)
	}
	// :prefix PRIVMSG target :text\r\n
	limit := MAXMSGSIZE - 1 - len(prefix) - 9 - len(target) - 4
	if limit < 0 {
		return 0
	}
	return limit
}

// wrap splits a PRIVMSG or NOTICE whose text would not fit on one line.
// Other messages are returned untouched.
func wrap(m Message, prefix string) []Message {
	if (m.cmd != "PRIVMSG" && m.cmd != "NOTICE") || len(m.params) != 2 {
		return []Message{m}
	}
	target, text := m.params[0], m.params[1]
	limit := msgLimit(prefix, target)
	if limit == 0 || len(text) <= limit {
		return []Message{m}
	}
	var result []Message
	for _, line := range splitByLen(text, limit, 0) {
		result = append(result, Message{
			cmd:      m.cmd,
			params:   []string{target, line},
			trailing: true,
		})
	}
	return result
}

package leczair

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
)

const handlerTimeout = 10 * time.Second

// errReconnect ends a session whose connection settings changed.
var errReconnect = errors.New("connection settings changed")

type handler func(*session, Message) error

var (
	handlers = map[string]handler{
		"PING":    handlePing,
		"PRIVMSG": handlePrivmsg,
		"NICK":    handleNick,
		"ERROR":   handleError,
		"001":     handleWelcome,
		"396":     handleHostname,
		"433":     handleNickInUse,
	}
)

func (s *session) dispatch(line string) error {
	msg, err := Parse(line)
	if err != nil {
		return err
	}
	handler, exists := handlers[msg.Command()]
	if !exists {
		s.bot.logger.Debug("Unhandled: %s", line)
		return nil
	}
	return handler(s, msg)
}

func handlePing(s *session, msg Message) error {
	return s.send(Message{cmd: "PONG", params: msg.Params(), trailing: msg.HasTrailing()})
}

func handleWelcome(s *session, msg Message) error {
	params := msg.Params()
	if len(params) == 0 {
		return fmt.Errorf("RPL_WELCOME without parameters")
	}
	s.registered = true
	s.nick = params[0]
	words := strings.Split(params[len(params)-1], " ")
	if prefix := words[len(words)-1]; strings.Contains(prefix, "!") && strings.Contains(prefix, "@") {
		s.prefix = prefix
	} else {
		s.setNick(params[0])
	}
	irc := s.settings.IRC
	if irc.NickServPass != "" {
		if err := s.send(Privmsg("NickServ", "identify "+irc.NickServPass)); err != nil {
			return err
		}
	}
	for _, channel := range irc.Channels {
		if err := s.send(NewMessage("JOIN", channel)); err != nil {
			return err
		}
	}
	return nil
}

func handleHostname(s *session, msg Message) error {
	params := msg.Params()
	if len(params) < 2 {
		return fmt.Errorf("RPL_HOSTHIDDEN with %d parameters", len(params))
	}
	s.setHostname(params[1])
	return nil
}

func handleNickInUse(s *session, msg Message) error {
	if s.registered {
		s.bot.logger.Logf("Nick change refused: %s", msg.String())
		return nil
	}
	s.nick = alternativeNick(s.nick)
	return s.send(NewMessage("NICK", s.nick))
}

// alternativeNick appends "_" to nick, or once nick is NICK_LENGTH_LIMIT
// long, cycles its last character through "_0123456789".
func alternativeNick(nick string) string {
	const rotation = "_0123456789"
	if len(nick) < NICK_LENGTH_LIMIT {
		return nick + "_"
	}
	last, size := utf8.DecodeLastRuneInString(nick)
	next := rotation[0]
	if i := strings.IndexRune(rotation, last); i >= 0 {
		next = rotation[(i+1)%len(rotation)]
	}
	return nick[:len(nick)-size] + string(next)
}

func handleNick(s *session, msg Message) error {
	oldnick, err := msg.Nick()
	if err != nil {
		return err
	}
	params := msg.Params()
	if len(params) == 0 || oldnick != s.nick {
		return nil
	}
	s.setNick(params[0])
	return nil
}

func handleError(s *session, msg Message) error {
	return fmt.Errorf("%w: server said %q", ErrConnectionLost, strings.Join(msg.Params(), " "))
}

func handlePrivmsg(s *session, msg Message) error {
	view, err := AsChatView(msg)
	if err != nil {
		return err
	}
	if s.settings.IsAdmin(view.Source) {
		switch view.Text {
		case "reconfigure":
			return s.reconfigure()
		case "reload", "restart":
			return fmt.Errorf("%w by %s", ErrRestart, view.Nick)
		}
	}
	ctx, cancel := context.WithTimeout(s.bot.tomb.Context(nil), handlerTimeout)
	defer cancel()
	replies := s.bot.handler(ctx, Request{View: view, MyNick: s.nick, Settings: s.settings})
	for _, reply := range replies {
		for _, m := range wrap(reply, s.prefix) {
			if err := s.send(m); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *session) reconfigure() error {
	if s.bot.loader == nil {
		s.bot.logger.Log("Reconfigure requested but no settings loader is set")
		return nil
	}
	fresh, err := s.bot.loader()
	if err != nil {
		return fmt.Errorf("reconfigure: %w", err)
	}
	old := s.settings.IRC
	s.settings = fresh
	s.bot.setSettings(fresh)
	if old.Address() != fresh.IRC.Address() || old.SSL != fresh.IRC.SSL || old.Charset != fresh.IRC.Charset {
		return errReconnect
	}
	for _, m := range settingsChanged(old, fresh.IRC) {
		if err := s.send(m); err != nil {
			return err
		}
	}
	return nil
}

// settingsChanged lists what to tell the server so that a running session
// matches the new settings.
func settingsChanged(old, fresh IRCSettings) (msgs []Message) {
	if old.Nick != fresh.Nick {
		msgs = append(msgs, NewMessage("NICK", fresh.Nick))
	}
	parted, joined := lo.Difference(old.Channels, fresh.Channels)
	for _, channel := range joined {
		msgs = append(msgs, NewMessage("JOIN", channel))
	}
	for _, channel := range parted {
		msgs = append(msgs, NewMessage("PART", channel))
	}
	return
}

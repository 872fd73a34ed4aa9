package leczair

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gopkg.in/tomb.v2"
)

// Bot keeps one IRC connection alive: it dials, registers, dispatches what
// the server sends and reconnects when the connection dies.
type Bot struct {
	// the mutex protects settings and tomb
	sync.Mutex
	settings *Settings
	handler  MsgHandler
	logger   Logger
	dial     DialFunc
	loader   func() (*Settings, error)
	outbox   chan Message
	tomb     *tomb.Tomb
}

func NewBot(settings *Settings, opts ...Option) *Bot {
	conf := defaultConfig()
	for _, opt := range opts {
		opt(&conf)
	}
	return &Bot{
		settings: settings,
		handler:  conf.handler,
		logger:   conf.logger,
		dial:     conf.dial,
		loader:   conf.loader,
		outbox:   make(chan Message, 32),
	}
}

// Start runs the bot until ctx is done or Stop is called. Only the first
// call has an effect; Stop, Wait and Send return ErrNotStarted before it.
func (b *Bot) Start(ctx context.Context) {
	b.Lock()
	defer b.Unlock()
	if b.tomb != nil {
		return
	}
	b.tomb, _ = tomb.WithContext(ctx)
	b.tomb.Go(b.serveLoop)
}

func (b *Bot) started() (*tomb.Tomb, error) {
	b.Lock()
	defer b.Unlock()
	if b.tomb == nil {
		return nil, ErrNotStarted
	}
	return b.tomb, nil
}

// Stop says QUIT on the current connection and waits for the bot to finish.
func (b *Bot) Stop() error {
	t, err := b.started()
	if err != nil {
		return err
	}
	t.Kill(nil)
	return t.Wait()
}

func (b *Bot) Wait() error {
	t, err := b.started()
	if err != nil {
		return err
	}
	return t.Wait()
}

// Send queues m for the current connection. Messages queued while the bot
// is reconnecting go out on the next connection.
func (b *Bot) Send(ctx context.Context, m Message) error {
	t, err := b.started()
	if err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.Dying():
		return tomb.ErrDying
	case b.outbox <- m:
		return nil
	}
}

func (b *Bot) Settings() *Settings {
	b.Lock()
	defer b.Unlock()
	return b.settings
}

func (b *Bot) setSettings(settings *Settings) {
	b.Lock()
	b.settings = settings
	b.Unlock()
}

// Meant to run in the tomb
func (b *Bot) serveLoop() error {
	for {
		err := b.runSession()
		if !b.tomb.Alive() {
			return nil
		}
		switch {
		case errors.Is(err, ErrRestart):
			b.logger.Logf("Restarting: %v", err)
			b.reload()
			continue
		case errors.Is(err, errReconnect):
			b.logger.Logf("Reconnecting: %v", err)
			continue
		}
		delay := b.Settings().ReconnectDelay
		b.logger.Logf("Session ended: %v, reconnecting in %s", err, delay)
		select {
		case <-b.tomb.Dying():
			return nil
		case <-time.After(delay):
		}
	}
}

func (b *Bot) reload() {
	if b.loader == nil {
		return
	}
	settings, err := b.loader()
	if err != nil {
		b.logger.Logf("Failed to reload settings, keeping the old ones: %v", err)
		return
	}
	b.setSettings(settings)
}

func (b *Bot) runSession() error {
	settings := b.Settings()
	opts, err := settings.IRC.transportOptions(b.logger)
	if err != nil {
		return err
	}
	conn, err := b.dial(b.tomb.Context(nil), settings.IRC)
	if err != nil {
		return err
	}
	s := newSession(b, NewTransport(conn, opts...), settings)
	defer s.transport.Close()
	b.logger.Logf("Connected to %s", settings.IRC.Address())
	return s.serve()
}

type session struct {
	bot        *Bot
	transport  *Transport
	settings   *Settings
	nick       string
	prefix     string
	registered bool
}

func newSession(bot *Bot, transport *Transport, settings *Settings) *session {
	return &session{
		bot:       bot,
		transport: transport,
		settings:  settings,
		nick:      settings.IRC.Nick,
		prefix:    settings.IRC.Nick + "!" + settings.IRC.Ident + "@",
	}
}

func (s *session) serve() error {
	if err := s.hello(); err != nil {
		return err
	}
	for {
		select {
		case <-s.bot.tomb.Dying():
			s.send(NewMessage("QUIT", "shutting down"))
			return tomb.ErrDying
		case m := <-s.bot.outbox:
			if err := s.send(m); err != nil {
				s.bot.logger.Logf("Failed to send %q: %v", m.String(), err)
			}
		default:
		}
		line, ok, err := s.transport.Poll()
		switch {
		case errors.Is(err, ErrDecode):
			s.bot.logger.Logf("Dropping line: %v", err)
			continue
		case err != nil:
			return err
		case !ok:
			continue
		}
		err = s.dispatch(line)
		switch {
		case err == nil:
		case errors.Is(err, ErrRestart), errors.Is(err, errReconnect), errors.Is(err, ErrConnectionLost):
			return err
		default:
			s.bot.logger.Logf("Failed to handle %q: %v", line, err)
		}
	}
}

func (s *session) send(m Message) error {
	return s.transport.Write(m.String())
}

func (s *session) hello() error {
	irc := s.settings.IRC
	var msgs []Message
	if irc.Password != "" {
		msgs = append(msgs, NewMessage("PASS", irc.Password))
	}
	msgs = append(msgs,
		NewMessage("NICK", irc.Nick),
		Message{cmd: "USER", params: []string{irc.Ident, "0", "*", irc.RealName}, trailing: true},
	)
	for _, m := range msgs {
		if err := s.send(m); err != nil {
			return fmt.Errorf("register: %w", err)
		}
	}
	return nil
}

func (s *session) setNick(nick string) {
	s.nick = nick
	_, identHostname := pop(s.prefix, "!")
	s.prefix = nick + "!" + identHostname
}

func (s *session) setHostname(hostname string) {
	nick, identHostname := pop(s.prefix, "!")
	ident, _ := pop(identHostname, "@")
	s.prefix = nick + "!" + ident + "@" + hostname
}

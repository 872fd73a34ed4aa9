package leczair

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"
)

const dialTimeout = 30 * time.Second

// Dial connects to the configured server, wrapping the connection in TLS
// when irc.SSL is set.
func Dial(ctx context.Context, irc IRCSettings) (net.Conn, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	if !irc.SSL {
		conn, err := dialer.DialContext(ctx, "tcp", irc.Address())
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", irc.Address(), err)
		}
		return conn, nil
	}
	tlsDialer := tls.Dialer{
		NetDialer: &dialer,
		Config:    &tls.Config{ServerName: irc.Host},
	}
	conn, err := tlsDialer.DialContext(ctx, "tcp", irc.Address())
	if err != nil {
		return nil, fmt.Errorf("dial tls %s: %w", irc.Address(), err)
	}
	return conn, nil
}

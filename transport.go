package leczair

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/text/encoding/charmap"
)

const (
	DefaultChunkSize    = 4096
	DefaultReadTimeout  = time.Second
	DefaultWriteTimeout = 10 * time.Second
)

var crlf = []byte("\r\n")

// Transport turns a connection into a sequence of lines. It is meant to be
// driven by a single loop and does no locking of its own.
type Transport struct {
	socket       net.Conn
	buffer       []byte
	chunk        []byte
	readTimeout  time.Duration
	writeTimeout time.Duration
	maxBuffer    int
	charmap      *charmap.Charmap
	logger       Logger
	// once set the connection is unusable and every call returns it
	err error
}

type TransportOption func(*Transport)

// WithReadTimeout bounds how long a single Poll may wait for data. Poll
// never waits without a deadline, so d <= 0 keeps the default.
func WithReadTimeout(d time.Duration) TransportOption {
	return func(t *Transport) {
		if d > 0 {
			t.readTimeout = d
		}
	}
}

func WithWriteTimeout(d time.Duration) TransportOption {
	return func(t *Transport) {
		t.writeTimeout = d
	}
}

func WithChunkSize(n int) TransportOption {
	return func(t *Transport) {
		if n > 0 {
			t.chunk = make([]byte, n)
		}
	}
}

// WithMaxBuffer makes Poll fail once n bytes have piled up without a line
// terminator. Zero means no limit.
func WithMaxBuffer(n int) TransportOption {
	return func(t *Transport) {
		t.maxBuffer = n
	}
}

// WithCharmap switches the wire encoding from UTF-8 to a single-byte charset.
func WithCharmap(cm *charmap.Charmap) TransportOption {
	return func(t *Transport) {
		t.charmap = cm
	}
}

func WithLogger(logger Logger) TransportOption {
	return func(t *Transport) {
		t.logger = logger
	}
}

func NewTransport(socket net.Conn, opts ...TransportOption) *Transport {
	t := &Transport{
		socket:       socket,
		chunk:        make([]byte, DefaultChunkSize),
		readTimeout:  DefaultReadTimeout,
		writeTimeout: DefaultWriteTimeout,
		logger:       nopLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Poll returns the next complete line if one is buffered. Otherwise it
// reads once from the connection, waiting at most the read timeout, and
// reports that no line is available yet.
//
// A line that is not valid text is consumed and reported with ErrDecode;
// the transport stays usable. Read failures other than a timeout leave it
// unusable, and those meaning the peer is gone wrap ErrConnectionLost.
func (t *Transport) Poll() (line string, ok bool, err error) {
	if t.err != nil {
		return "", false, t.err
	}
	if i := bytes.Index(t.buffer, crlf); i != -1 {
		line, err = decode(t.buffer[:i], t.charmap)
		t.buffer = append(t.buffer[:0], t.buffer[i+len(crlf):]...)
		if err != nil {
			return "", false, err
		}
		t.logger.Debug("--> %s", line)
		return line, true, nil
	}
	if t.maxBuffer > 0 && len(t.buffer) >= t.maxBuffer {
		t.err = fmt.Errorf("%w: %d bytes without terminator", ErrLineTooLong, len(t.buffer))
		return "", false, t.err
	}
	if err = t.socket.SetReadDeadline(time.Now().Add(t.readTimeout)); err != nil {
		return "", false, t.fail("read", err)
	}
	n, err := t.socket.Read(t.chunk)
	t.buffer = append(t.buffer, t.chunk[:n]...)
	if err != nil && !isTimeout(err) {
		return "", false, t.fail("read", err)
	}
	return "", false, nil
}

// Write sends text followed by CRLF. Nothing is queued: the write either
// reaches the connection or its error is returned.
func (t *Transport) Write(text string) error {
	if t.err != nil {
		return t.err
	}
	if strings.ContainsAny(text, "\r\n\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidLine, text)
	}
	raw, err := encode(text, t.charmap)
	if err != nil {
		return err
	}
	raw = append(raw, crlf...)
	if t.writeTimeout > 0 {
		if err := t.socket.SetWriteDeadline(time.Now().Add(t.writeTimeout)); err != nil {
			return t.fail("write", err)
		}
	}
	t.logger.Debug("<-- %s", text)
	if _, err := t.socket.Write(raw); err != nil {
		return t.fail("write", err)
	}
	return nil
}

func (t *Transport) Close() error {
	return t.socket.Close()
}

func (t *Transport) fail(op string, err error) error {
	if isConnectionLost(err) {
		t.err = fmt.Errorf("%s: %w: %w", op, ErrConnectionLost, err)
	} else {
		t.err = fmt.Errorf("%s: %w", op, err)
	}
	return t.err
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

var connectionLost = []error{
	io.EOF,
	io.ErrUnexpectedEOF,
	io.ErrClosedPipe,
	net.ErrClosed,
	syscall.ECONNRESET,
	syscall.EPIPE,
	syscall.ECONNABORTED,
	syscall.ECONNREFUSED,
}

func isConnectionLost(err error) bool {
	for _, target := range connectionLost {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

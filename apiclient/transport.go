package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/kbdviz/kbdviz/internal/server/api/auth"
	apierror "github.com/kbdviz/kbdviz/internal/server/api/error"
)

// Config controls dialing, deadlines and authentication of a Transport.
type Config struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Password enables the encrypted handshake when non-empty.
	Password string
}

func defaultConfig() Config {
	return Config{
		DialTimeout:  3 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Responder answers requests of a mock Transport with a raw response line.
type Responder func(path string, payload []byte) (string, error)

// Transport speaks the query protocol: one request per connection, written as
// `<path>[ SP <payload>]\x00`, answered by a single line the server follows
// by closing the connection. Only \x00 ends a request, so payloads may span
// lines.
type Transport struct {
	addr    string
	cfg     Config
	respond Responder
}

// NewTransport creates a transport for the service at addr.
func NewTransport(addr string) *Transport { return NewTransportWithConfig(addr, nil) }

// NewTransportWithPassword creates a transport that authenticates with password.
func NewTransportWithPassword(addr, password string) *Transport {
	cfg := defaultConfig()
	cfg.Password = password
	return NewTransportWithConfig(addr, &cfg)
}

// NewTransportWithConfig creates a transport; a nil cfg uses the defaults.
func NewTransportWithConfig(addr string, cfg *Config) *Transport {
	c := defaultConfig()
	if cfg != nil {
		c = *cfg
	}
	return &Transport{addr: addr, cfg: c}
}

// NewMockTransport creates a transport that never touches the network.
func NewMockTransport(respond Responder) *Transport {
	return &Transport{addr: "mock", cfg: defaultConfig(), respond: respond}
}

// Do sends a request and returns the response without its trailing newline.
//
//	nil    -> no payload
//	[]byte -> sent as-is
//	string -> sent as-is
//	other  -> JSON encoded
func (t *Transport) Do(path string, payload any) (string, error) {
	return t.DoCtx(context.Background(), path, payload)
}

// DoCtx is like Do but honors ctx while dialing.
func (t *Transport) DoCtx(ctx context.Context, path string, payload any) (string, error) {
	body, err := encodePayload(payload)
	if err != nil {
		return "", err
	}
	if t.respond != nil {
		return t.respond(path, body)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("dial: %w", err)
	}

	d := &net.Dialer{Timeout: t.cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return "", fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetNoDelay(true); err != nil {
			slog.Warn("failed to set TCP_NODELAY", "error", err)
		}
	}
	if t.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout))
	}

	if t.cfg.Password != "" {
		if conn, err = t.secure(conn); err != nil {
			return "", err
		}
	}

	if _, err := conn.Write(frame(path, body)); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	if t.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(t.cfg.ReadTimeout))
	}
	resp, err := io.ReadAll(conn)
	if err != nil && len(resp) == 0 {
		return "", fmt.Errorf("read: %w", err)
	}
	return strings.TrimSuffix(string(resp), "\n"), nil
}

// secure runs the client handshake. A server that hangs up instead of
// answering did not accept the key.
func (t *Transport) secure(conn net.Conn) (net.Conn, error) {
	key, err := auth.DeriveKey(t.cfg.Password)
	if err != nil {
		return nil, err
	}
	secure, err := auth.Dial(conn, key)
	if errors.Is(err, io.EOF) {
		return nil, apierror.ErrUnauthorized("invalid password")
	}
	return secure, err
}

func frame(path string, body []byte) []byte {
	out := make([]byte, 0, len(path)+len(body)+2)
	out = append(out, path...)
	if len(body) > 0 {
		out = append(out, ' ')
		out = append(out, body...)
	}
	return append(out, '\x00')
}

func encodePayload(v any) ([]byte, error) {
	switch p := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return p, nil
	case string:
		return []byte(p), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return b, nil
}
